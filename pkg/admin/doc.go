/*
Package admin serves Burrow's HTTP inspection endpoints.

The admin server answers "what is the resolver doing right now" without
tcpdump: which instance is live, what names discovery knows, and the health
and metrics surfaces. It binds its own TCP listener, separate from the DNS
port, and is optional.

# Endpoints

	GET /status    resolver instance, listen address, uptime, active sources
	GET /names     hostname → address map from the discovery snapshot
	GET /health    component health (503 when any component is unhealthy)
	GET /ready     readiness, keyed on the DNS listener alone
	GET /metrics   Prometheus exposition

Example status:

	$ curl -s 127.0.0.1:5380/status
	{
	  "instance": "a3f8c21b",
	  "listen_addr": "127.0.0.1:53",
	  "started_at": "2026-08-22T09:15:04Z",
	  "uptime": "2h31m8s",
	  "sources": ["discovery", "local", "primary"],
	  "discovery": {
	    "hostnames": 3,
	    "snapshot_age": "4.2s"
	  }
	}

Example names:

	$ curl -s 127.0.0.1:5380/names
	{
	  "api.local": "172.18.0.5",
	  "db.local": "172.18.0.7",
	  "web.local": "172.18.0.6"
	}

When discovery is disabled, /status omits the discovery block and /names is
an empty object.

/health and /ready differ on purpose: a dead discovery source makes /health
report unhealthy but leaves /ready serving 200, because the resolver still
answers queries. Readiness follows the DNS listener only.

# Usage

	srv, err := admin.NewServer(admin.Config{
		Addr:      "127.0.0.1:5380",
		Sources:   []string{"local", "primary"},
		Discovery: src.Snapshot, // nil when discovery is off
	})
	if err != nil {
		return err
	}
	defer srv.Close()

	// once the DNS socket is bound
	srv.SetServerInfo(handle.ID(), handle.Addr().String())

The admin server starts before the DNS listener (it is handed to the handle
as an owned closer), so the instance ID and listen address arrive after the
fact via SetServerInfo. Until then /status reports them empty.

# See Also

  - pkg/metrics - the health registry and Prometheus handlers mounted here
  - pkg/lifecycle - constructs and owns the admin server
*/
package admin
