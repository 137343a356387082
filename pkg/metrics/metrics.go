package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Query metrics
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "burrow_queries_total",
			Help: "Total number of DNS queries by resolution source",
		},
		[]string{"source"},
	)

	QueryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "burrow_query_duration_seconds",
			Help:    "DNS query handling duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Discovery metrics
	DiscoveryRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "burrow_discovery_refresh_total",
			Help: "Total number of discovery snapshot refreshes by result",
		},
		[]string{"result"},
	)

	DiscoveryHostnames = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "burrow_discovery_hostnames",
			Help: "Number of hostnames in the current discovery snapshot",
		},
	)

	// Upstream metrics
	UpstreamErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "burrow_upstream_errors_total",
			Help: "Total number of failed upstream exchanges by server",
		},
		[]string{"server"},
	)

	// Lifecycle metrics
	ReloadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "burrow_reloads_total",
			Help: "Total number of configuration-driven reloads",
		},
	)
)

func init() {
	// Register all metrics
	prometheus.MustRegister(QueriesTotal)
	prometheus.MustRegister(QueryDuration)
	prometheus.MustRegister(DiscoveryRefreshTotal)
	prometheus.MustRegister(DiscoveryHostnames)
	prometheus.MustRegister(UpstreamErrorsTotal)
	prometheus.MustRegister(ReloadsTotal)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
