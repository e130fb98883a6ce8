package imagegen

import "github.com/prometheus/client_golang/prometheus"

var (
	providerAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aigateway",
			Subsystem: "provider",
			Name:      "attempts_total",
			Help:      "Image provider HTTP attempts by outcome (status code, timeout, error)",
		},
		[]string{"outcome"},
	)

	providerRetriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "aigateway",
			Subsystem: "provider",
			Name:      "retries_total",
			Help:      "Retries issued after a model-loading (503) response",
		},
	)

	generationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aigateway",
			Subsystem: "images",
			Name:      "generation_duration_seconds",
			Help:      "End-to-end image generation time",
			Buckets:   []float64{1, 2, 5, 10, 20, 30, 60, 120, 180, 260},
		},
		[]string{"model", "result"},
	)

	normalizeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aigateway",
			Subsystem: "images",
			Name:      "normalize_total",
			Help:      "Normalizer outcomes (unchanged, resized, degraded)",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(providerAttemptsTotal, providerRetriesTotal, generationDuration, normalizeTotal)
}
