package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

// Latency buckets in milliseconds; remote moderation calls sit in the
// 50ms-2.5s range under normal load.
var latencyBuckets = []float64{
	5, 10, 25,
	50, 100, 250,
	500, 1000, 2500,
	5000, 10000, 30000,
}

var (
	EvaluationsTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "modshield_evaluations_total",
			Help: "Total pipeline evaluations by final verdict",
		},
		[]string{"verdict"},
	)

	RemoteCallLatency = promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "modshield_remote_call_latency_ms",
			Help:    "Latency of remote collaborator calls in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"collaborator", "operation"},
	)

	RemoteCallErrors = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "modshield_remote_call_errors_total",
			Help: "Failed remote collaborator calls",
		},
		[]string{"collaborator", "operation"},
	)

	BlocklistWritesTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "modshield_blocklist_writes_total",
			Help: "Exclusion list upserts by result",
		},
		[]string{"result"},
	)
)

// Registry exposes the private registry for the /metrics endpoint.
func Registry() *prometheus.Registry {
	return registry
}
