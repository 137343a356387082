/*
Package metrics provides Prometheus metrics and health tracking for Burrow.

All metrics register on the default registry at init and are served by the
admin server's /metrics endpoint. The same package tracks component health
for /health and /ready.

# Metrics

	burrow_queries_total{source}             queries answered, by winning source
	burrow_query_duration_seconds            end-to-end resolution latency
	burrow_discovery_refresh_total{result}   snapshot fetches, ok or error
	burrow_discovery_hostnames               hostnames in the live snapshot
	burrow_upstream_errors_total{server}     failed upstream exchanges
	burrow_reloads_total                     configuration reloads applied

The source label on queries_total takes one of discovery, local, primary,
secondary, or none. A healthy development box shows mostly discovery and
local; a climbing primary count usually means a container lost its routing
label.

# Usage

	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.QueryDuration)

	metrics.QueriesTotal.WithLabelValues("discovery").Inc()

Serving the endpoint:

	http.Handle("/metrics", metrics.Handler())

# Health Tracking

Components report their state to a process-wide checker:

	metrics.SetComponent("dns", true, "listening on 127.0.0.1:53")
	metrics.SetComponent("discovery", false, "docker unreachable")
	defer metrics.ClearComponent("discovery")

GetHealth aggregates: any unhealthy component and the whole status is
unhealthy. GetReadiness looks only at the "dns" component, so a degraded
discovery source never takes the resolver out of rotation. HealthHandler
and ReadyHandler serve these as JSON, 200 when good and 503 when not:

	{
	  "status": "unhealthy",
	  "timestamp": "2026-08-22T11:46:12Z",
	  "components": {
	    "dns": "healthy",
	    "discovery": "unhealthy: docker unreachable"
	  },
	  "version": "0.3.0",
	  "uptime": "2h31m8s"
	}

SetVersion stamps the version reported in both payloads; cmd/burrow calls it
with the build-time version at startup.

# See Also

  - pkg/admin - mounts Handler, HealthHandler, and ReadyHandler
  - pkg/lifecycle - reports dns, discovery, and admin component health
*/
package metrics
