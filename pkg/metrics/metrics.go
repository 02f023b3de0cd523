package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records admin login attempts by result (success|failure).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orgd_auth_attempts_total",
			Help: "Total number of admin authentication attempts",
		},
		[]string{"result"},
	)

	// OrgOperations counts organization lifecycle operations and their outcome.
	OrgOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orgd_org_operations_total",
			Help: "Total number of organization operations",
		},
		[]string{"operation", "result"},
	)

	// TenantCollections tracks provisioned tenant collections.
	TenantCollections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "orgd_tenant_collections",
			Help: "Number of provisioned tenant collections",
		},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "orgd_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
