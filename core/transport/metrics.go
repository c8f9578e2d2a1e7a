package transport

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	solveDuration      *prometheus.HistogramVec
	solutionsTotal     *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.HistogramVec, *prometheus.CounterVec, *prometheus.CounterVec) {
	dur := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "transport_solve_duration_seconds",
			Help:    "Time spent producing a solution",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		},
		[]string{"method"},
	)
	sol := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transport_solutions_total",
			Help: "Number of solutions produced",
		},
		[]string{"method", "truncated"},
	)
	val := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transport_validation_failures_total",
			Help: "Number of problems rejected by validation",
		},
		[]string{"reason"},
	)
	return dur, sol, val
}

func init() {
	solveDuration, solutionsTotal, validationFailures = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers solver metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(solveDuration, solutionsTotal, validationFailures)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	solveDuration, solutionsTotal, validationFailures = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
