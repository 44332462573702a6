// Package metrics registers Prometheus instrumentation for the solver
// service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SolvesTotal counts completed solve requests by method and outcome.
	// Outcomes are "converged", "best_effort", or a failure reason
	// ("no_sign_change", "stalled", "derivative_vanished",
	// "out_of_bounds", "iteration_limit").
	SolvesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rootr",
		Name:      "solves_total",
		Help:      "Completed solve requests by method and outcome.",
	}, []string{"method", "outcome"})

	// SolveIterations observes iterations consumed per solve. The cap
	// is a million, hence the wide exponential buckets.
	SolveIterations = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rootr",
		Name:      "solve_iterations",
		Help:      "Iterations consumed per solve.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 11),
	}, []string{"method"})

	// SolveDuration observes wall-clock time of a solve call.
	SolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "rootr",
		Name:      "solve_duration_seconds",
		Help:      "Wall-clock duration of a solve call.",
		Buckets:   prometheus.DefBuckets,
	})
)

// ObserveSolve records one completed solve.
func ObserveSolve(method, outcome string, iterations int, elapsed time.Duration) {
	SolvesTotal.WithLabelValues(method, outcome).Inc()
	SolveIterations.WithLabelValues(method).Observe(float64(iterations))
	SolveDuration.Observe(elapsed.Seconds())
}
