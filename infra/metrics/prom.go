package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/transport/core/metrics"
)

// PromSink records solver results in Prometheus metrics.
type PromSink struct {
	cost       *prometheus.GaugeVec
	cells      *prometheus.GaugeVec
	degenerate *prometheus.CounterVec
	gap        *prometheus.GaugeVec
}

// NewPromSink registers solver metrics on the default Prometheus registerer.
// The Prometheus server is started separately on Config.PrometheusPort.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Collectors
// that already exist on the registerer are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	cost, err := registerOrReuse(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "transport_solution_cost",
		Help: "Total cost of the latest solution per method",
	}, []string{"method"}))
	if err != nil {
		return nil, err
	}
	cells, err := registerOrReuse(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "transport_solution_basic_cells",
		Help: "Positive cells in the latest solution per method",
	}, []string{"method"}))
	if err != nil {
		return nil, err
	}
	degenerate, err := registerOrReuse(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transport_degenerate_solutions_total",
		Help: "Solutions with fewer than m+n-1 positive cells",
	}, []string{"method", "truncated"}))
	if err != nil {
		return nil, err
	}
	gap, err := registerOrReuse(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "transport_optimality_gap_ratio",
		Help: "Relative distance of each method to the LP optimum in the latest comparison",
	}, []string{"method"}))
	if err != nil {
		return nil, err
	}
	return &PromSink{cost: cost, cells: cells, degenerate: degenerate, gap: gap}, nil
}

func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return c, err
		}
		existing, ok := are.ExistingCollector.(C)
		if !ok {
			return c, err
		}
		return existing, nil
	}
	return c, nil
}

// RecordSolution updates the cost and cell gauges of the method.
func (s *PromSink) RecordSolution(ev coremetrics.SolutionEvent) error {
	key := ev.Method.Key()
	s.cost.WithLabelValues(key).Set(ev.TotalCost)
	s.cells.WithLabelValues(key).Set(float64(ev.BasicCells))
	if ev.Degenerate {
		s.degenerate.WithLabelValues(key, strconv.FormatBool(ev.Truncated)).Inc()
	}
	return nil
}

// RecordComparison sets the gap gauge for every compared method.
func (s *PromSink) RecordComparison(ev coremetrics.ComparisonEvent) error {
	for m, g := range ev.Gap {
		s.gap.WithLabelValues(m.Key()).Set(g)
	}
	return nil
}
