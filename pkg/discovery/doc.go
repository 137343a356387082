/*
Package discovery resolves hostnames to running Docker containers.

The package watches the local Docker engine and maintains an immutable
snapshot mapping hostnames to container IPv4 addresses. Hostnames are taken
from reverse-proxy routing rule labels on the containers, so a container that
is already routed by name in a compose file resolves under that same name
with no extra configuration.

# Architecture

	┌─────────────────────────────────────────────────────────────┐
	│                     Discovery Source                         │
	└─────┬───────────────────────────────────────────────────────┘
	      │
	      ▼
	┌──────────────────────────────────────────────────────────────┐
	│                      Refresh Loop                            │
	│  • One ListContainers call per cycle                         │
	│  • Builds a complete hostname → IP map                       │
	│  • Publishes it as a single atomic pointer swap              │
	└────────┬─────────────────────────────────────────────────────┘
	         │
	         ▼
	┌──────────────────────────────────────────────────────────────┐
	│                   Snapshot (immutable)                        │
	│  api.local   → 172.18.0.5                                    │
	│  web.local   → 172.18.0.6                                    │
	│  db.local    → 172.18.0.7                                    │
	└────────┬─────────────────────────────────────────────────────┘
	         │
	         ▼
	   Lookup(name)        ← lock-free reads from the DNS hot path

## Refresh Flow

 1. NewSource performs one blocking fetch so the first queries already
    see containers (a failed first fetch logs a warning and starts empty)
 2. A background goroutine refreshes on the configured interval
 3. Each refresh replaces the whole snapshot or keeps the previous one;
    a failed fetch never clears known names
 4. Close stops the loop and waits for any in-flight fetch to settle

Readers only ever observe a complete snapshot. A refresh is all-or-nothing:
there is no moment where half the containers have been applied.

# Hostname Extraction

Hostnames come from container labels whose key ends in ".rule", the router
rule convention used by traefik. Both rule generations are understood:

	traefik.http.routers.api.rule = Host(`api.local`)            → api.local
	traefik.http.routers.web.rule = Host(`a.local`, `b.local`)   → a.local, b.local
	traefik.frontend.rule         = Host:api.local,admin.local   → api.local, admin.local

Rules combining hosts with other matchers contribute every Host they name:

	Host(`api.local`) && PathPrefix(`/v1`)                        → api.local
	Host(`x.local`) || Host(`y.local`)                           → x.local, y.local

Names are lowercased and stripped of trailing dots before they enter the
snapshot, matching the normalization applied to incoming queries.

# Container Address Selection

A container's address is the first IPv4 address found among its networks,
with network names visited in sorted order so the choice is stable across
refreshes. Containers with no IPv4 address are skipped. Only running
containers are listed.

# Usage

	src, err := discovery.NewSource(discovery.Config{
		Endpoint: "unix:///var/run/docker.sock",
		Refresh:  10 * time.Second,
	})
	if err != nil {
		return err
	}
	defer src.Close()

	if ip, ok := src.Lookup("api.local"); ok {
		fmt.Printf("api.local → %s\n", ip)
	}

	snap := src.Snapshot()
	fmt.Printf("%d hostnames as of %s\n", snap.Len(), snap.Taken())

NewSource fails only when the endpoint is malformed. An unreachable engine
is a degraded state, not a constructor error: the source starts with an
empty snapshot and keeps retrying on the refresh interval, so Docker can
come up after Burrow does.

# Metrics

  - burrow_discovery_refresh_total{result} counts fetch outcomes
  - burrow_discovery_hostnames gauges the size of the live snapshot

# See Also

  - pkg/resolver - consumes Lookup as the highest-precedence source
  - pkg/admin - exposes the snapshot over HTTP for inspection
*/
package discovery
