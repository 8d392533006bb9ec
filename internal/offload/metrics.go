package offload

import "github.com/prometheus/client_golang/prometheus"

var (
	evictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "offloadd",
			Subsystem: "offload",
			Name:      "evictions_total",
			Help:      "Total number of resources evicted to the overflow location",
		},
		[]string{"device"},
	)

	fallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "offloadd",
			Subsystem: "offload",
			Name:      "fallback_total",
			Help:      "Total evict-all fallbacks when no candidate subset covers the deficit",
		},
		[]string{"device"},
	)

	strategySeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "offloadd",
			Subsystem: "offload",
			Name:      "strategy_seconds",
			Help:      "Duration of eviction strategy selection in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"device"},
	)

	managedResources = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "offloadd",
			Subsystem: "offload",
			Name:      "managed_resources",
			Help:      "Number of resources currently registered",
		},
	)
)

func init() {
	prometheus.MustRegister(evictionsTotal, fallbackTotal, strategySeconds, managedResources)
}
