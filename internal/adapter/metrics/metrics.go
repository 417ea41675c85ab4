package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RegistryMetrics holds all Prometheus metrics for the registry service.
type RegistryMetrics struct {
	AuthAccepted        prometheus.Counter
	AuthRejections      *prometheus.CounterVec
	RetailerCacheHits   prometheus.Counter
	RetailerCacheMisses prometheus.Counter
	CustomerOps         *prometheus.CounterVec
	RetailerOps         *prometheus.CounterVec
}

// NewRegistryMetrics initializes and registers the Prometheus metrics.
func NewRegistryMetrics() *RegistryMetrics {
	return &RegistryMetrics{
		AuthAccepted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "retailer_registry",
			Subsystem: "auth",
			Name:      "accepted_total",
			Help:      "Total number of requests accepted by the tenant authentication gate.",
		}),
		AuthRejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "retailer_registry",
			Subsystem: "auth",
			Name:      "rejections_total",
			Help:      "Total number of gate rejections by reason.",
		}, []string{"reason"}), // reason: missing_key, unknown_tenant, invalid_key, internal
		RetailerCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "retailer_registry",
			Subsystem: "auth",
			Name:      "retailer_cache_hits_total",
			Help:      "Total number of retailer cache hits.",
		}),
		RetailerCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "retailer_registry",
			Subsystem: "auth",
			Name:      "retailer_cache_misses_total",
			Help:      "Total number of retailer cache misses.",
		}),
		CustomerOps: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "retailer_registry",
			Subsystem: "customer",
			Name:      "operations_total",
			Help:      "Total number of customer operations by type and status.",
		}, []string{"op", "status"}), // op: create, get, list, update, delete
		RetailerOps: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "retailer_registry",
			Subsystem: "retailer",
			Name:      "operations_total",
			Help:      "Total number of admin retailer operations by type and status.",
		}, []string{"op", "status"}),
	}
}
