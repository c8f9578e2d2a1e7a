// Package metrics defines the sinks that record solver activity. A sink
// must implement MetricsSink; the optional recorder interfaces are checked
// with type assertions so a sink only implements what it can store.
// NewMetricsSink builds sinks from configuration and wraps several of them
// in a MultiSink.
package metrics
