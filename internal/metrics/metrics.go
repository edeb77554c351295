// Package metrics holds the Prometheus collectors for roadmap generation.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waypoint_provider_attempts_total",
			Help: "Provider attempts by outcome (accepted, provider_<kind>, malformed_output, schema_mismatch, transform_failed)",
		},
		[]string{"provider", "outcome"},
	)

	Generations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waypoint_generations_total",
			Help: "Completed generation runs",
		},
		[]string{"outcome", "source"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "waypoint_generation_duration_seconds",
			Help:    "Duration of generation runs in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		},
		[]string{"outcome"},
	)

	Classifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waypoint_classifications_total",
			Help: "Domain classification decisions",
		},
		[]string{"tier", "related"},
	)
)

// RecordAttempt counts one provider attempt.
func RecordAttempt(provider, outcome string) {
	ProviderAttempts.WithLabelValues(provider, outcome).Inc()
}

// RecordGeneration counts a finished run and observes its duration.
func RecordGeneration(outcome, source string, elapsed time.Duration) {
	Generations.WithLabelValues(outcome, source).Inc()
	GenerationDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// RecordClassification counts a classifier decision.
func RecordClassification(tier string, related bool) {
	Classifications.WithLabelValues(tier, strconv.FormatBool(related)).Inc()
}
