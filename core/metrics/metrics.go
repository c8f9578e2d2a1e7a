package metrics

import (
	"time"

	"github.com/kilianp07/transport/core/model"
)

// SolutionEvent describes one solver run.
type SolutionEvent struct {
	Method     model.Method
	Origins    int
	Dests      int
	TotalCost  float64
	BasicCells int
	Degenerate bool
	Truncated  bool
	Duration   time.Duration
	Time       time.Time
}

// MetricsSink records solver results for observability purposes.
type MetricsSink interface {
	RecordSolution(ev SolutionEvent) error
}

// ValidationEvent records a rejected problem.
type ValidationEvent struct {
	Reason string
	Supply float64
	Demand float64
	Time   time.Time
}

// ValidationRecorder records validation failures.
type ValidationRecorder interface {
	RecordValidation(ev ValidationEvent) error
}

// ComparisonEvent records the costs of every method on one problem. Gap is
// the relative distance of each method to the reference optimum and is
// empty when no reference was computed.
type ComparisonEvent struct {
	Costs     map[model.Method]float64
	Reference float64
	Gap       map[model.Method]float64
	Time      time.Time
}

// ComparisonRecorder records comparison runs.
type ComparisonRecorder interface {
	RecordComparison(ev ComparisonEvent) error
}

// Closer is implemented by sinks holding connections.
type Closer interface {
	Close()
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordSolution(SolutionEvent) error     { return nil }
func (NopSink) RecordValidation(ValidationEvent) error { return nil }
func (NopSink) RecordComparison(ComparisonEvent) error { return nil }
