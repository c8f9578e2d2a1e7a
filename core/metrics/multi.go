package metrics

import "errors"

// MultiSink fans out events to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSolution forwards the event to all sinks. Every sink is tried and
// the errors are joined.
func (m *MultiSink) RecordSolution(ev SolutionEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		errs = append(errs, s.RecordSolution(ev))
	}
	return errors.Join(errs...)
}

// RecordValidation forwards to the sinks implementing ValidationRecorder.
func (m *MultiSink) RecordValidation(ev ValidationEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(ValidationRecorder); ok {
			errs = append(errs, rec.RecordValidation(ev))
		}
	}
	return errors.Join(errs...)
}

// RecordComparison forwards to the sinks implementing ComparisonRecorder.
func (m *MultiSink) RecordComparison(ev ComparisonEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(ComparisonRecorder); ok {
			errs = append(errs, rec.RecordComparison(ev))
		}
	}
	return errors.Join(errs...)
}

// Close closes the sinks that hold resources.
func (m *MultiSink) Close() {
	for _, s := range m.Sinks {
		if c, ok := s.(Closer); ok {
			c.Close()
		}
	}
}
