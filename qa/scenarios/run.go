package scenarios

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/transport/core/model"
	"github.com/kilianp07/transport/core/transport"
	"github.com/kilianp07/transport/infra/logger"
	"github.com/kilianp07/transport/infra/metrics"
	"github.com/kilianp07/transport/internal/eventbus"
)

// costTolerance absorbs float noise in the LP reference.
const costTolerance = 1e-6

// Result is the outcome of running a scenario.
type Result struct {
	Comparison model.Comparison
	Err        error
	// Registry holds the Prometheus series recorded while solving.
	Registry *prometheus.Registry
}

// Run compares every heuristic on the scenario's problem through a
// Manager wired to a Prometheus sink on a private registry.
func Run(ctx context.Context, sc *Scenario) (Result, error) {
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		return Result{}, fmt.Errorf("prom sink: %w", err)
	}
	bus := eventbus.New()
	defer bus.Close()

	mgr := transport.NewManager(logger.NopLogger{}, sink, bus)
	cmp, err := mgr.Compare(ctx, sc.Problem.ToModel(), sc.Reference)
	return Result{Comparison: cmp, Err: err, Registry: reg}, nil
}

// Verify checks res against the scenario's expectations and reports every
// mismatch.
func Verify(sc *Scenario, res Result) error {
	var errs []error
	if sc.Expected.Reason != "" {
		if got := transport.Reason(res.Err); got != sc.Expected.Reason {
			errs = append(errs, fmt.Errorf("expected rejection %q, got %q (%v)", sc.Expected.Reason, got, res.Err))
		}
		return errors.Join(errs...)
	}
	if res.Err != nil {
		return fmt.Errorf("unexpected error: %w", res.Err)
	}
	for key, want := range sc.Expected.Costs {
		m, err := model.ParseMethod(key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sol, ok := res.Comparison.Get(m)
		if !ok {
			errs = append(errs, fmt.Errorf("%s: no solution", key))
			continue
		}
		if math.Abs(sol.TotalCost-want) > costTolerance {
			errs = append(errs, fmt.Errorf("%s: expected cost %g, got %g", key, want, sol.TotalCost))
		}
	}
	truncated := make(map[model.Method]bool)
	for _, key := range sc.Expected.Truncated {
		m, err := model.ParseMethod(key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		truncated[m] = true
	}
	for _, s := range res.Comparison.Solutions {
		if s.Truncated != truncated[s.Method] {
			errs = append(errs, fmt.Errorf("%s: truncated=%v", s.Method.Key(), s.Truncated))
		}
	}
	if ref := res.Comparison.Reference; ref != nil {
		for _, s := range res.Comparison.Solutions {
			if s.TotalCost < ref.TotalCost-costTolerance {
				errs = append(errs, fmt.Errorf("%s: cost %g below optimum %g", s.Method.Key(), s.TotalCost, ref.TotalCost))
			}
		}
	} else if sc.Reference {
		errs = append(errs, errors.New("reference optimum missing"))
	}
	return errors.Join(errs...)
}
