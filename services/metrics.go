package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// decisionsTotal counts finished decisions by source and outcome
	// (yes, no, blocked).
	decisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "food_analyzer_decisions_total",
			Help: "The total number of consumption decisions produced",
		},
		[]string{"source", "outcome"},
	)

	// registryFallbackTotal counts requests where the registry lookup
	// failed or matched nothing and vision extraction took over.
	registryFallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "food_analyzer_registry_fallback_total",
			Help: "The total number of fallbacks from registry lookup to vision extraction",
		},
	)

	// analyzeDuration tracks end-to-end analysis latency.
	analyzeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "food_analyzer_analyze_duration_seconds",
			Help:    "The duration of a full analyze request in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)
)
