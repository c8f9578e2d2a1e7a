package transport

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/kilianp07/transport/core/events"
	"github.com/kilianp07/transport/core/logger"
	"github.com/kilianp07/transport/core/metrics"
	"github.com/kilianp07/transport/core/model"
	"github.com/kilianp07/transport/core/monitoring"
	"github.com/kilianp07/transport/core/transport/history"
	"github.com/kilianp07/transport/internal/eventbus"
)

// DefaultHistoryLimit bounds the in-memory session history.
const DefaultHistoryLimit = 256

// Manager validates problems, runs solvers and reports the outcome to the
// configured logger, metrics sink, event bus and history store. It is safe
// for concurrent use.
type Manager struct {
	logger logger.Logger
	sink   metrics.MetricsSink
	bus    eventbus.EventBus

	mu           sync.Mutex
	store        history.Store
	history      []model.Solution
	historyLimit int
}

// NewManager creates a manager. Nil dependencies are replaced by no-op
// implementations; the event bus is optional.
func NewManager(log logger.Logger, sink metrics.MetricsSink, bus eventbus.EventBus) *Manager {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Manager{
		logger:       logger.OrNop(log),
		sink:         sink,
		bus:          bus,
		historyLimit: DefaultHistoryLimit,
	}
}

// SetStore configures the store used to persist solved problems.
func (m *Manager) SetStore(store history.Store) {
	m.mu.Lock()
	m.store = store
	m.mu.Unlock()
}

// Store returns the configured history store, or nil.
func (m *Manager) Store() history.Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store
}

// SetHistoryLimit bounds the session history. Non-positive values disable
// the bound.
func (m *Manager) SetHistoryLimit(n int) {
	m.mu.Lock()
	m.historyLimit = n
	m.trimLocked()
	m.mu.Unlock()
}

// Solve validates p and runs the given method on it. model.Simplex selects
// the exact LP optimum.
func (m *Manager) Solve(ctx context.Context, method model.Method, p model.Problem) (model.Solution, error) {
	if err := ctx.Err(); err != nil {
		return model.Solution{}, err
	}
	if err := m.validate(p); err != nil {
		return model.Solution{}, err
	}
	sol, err := m.run(method, p)
	if err != nil {
		return model.Solution{}, err
	}
	m.remember(ctx, p, sol)
	return sol, nil
}

// SolveKey resolves a method selector such as "vogel" or "nw" and solves p.
func (m *Manager) SolveKey(ctx context.Context, selector string, p model.Problem) (model.Solution, error) {
	method, err := model.ParseMethod(selector)
	if err != nil {
		return model.Solution{}, err
	}
	return m.Solve(ctx, method, p)
}

// Compare runs every heuristic on p. With withReference set the LP optimum
// is attached; an LP failure is logged and leaves Reference nil.
func (m *Manager) Compare(ctx context.Context, p model.Problem, withReference bool) (model.Comparison, error) {
	if err := ctx.Err(); err != nil {
		return model.Comparison{}, err
	}
	if err := m.validate(p); err != nil {
		return model.Comparison{}, err
	}
	var cmp model.Comparison
	for _, h := range model.Heuristics {
		sol, err := m.run(h, p)
		if err != nil {
			return model.Comparison{}, err
		}
		cmp.Solutions = append(cmp.Solutions, sol)
	}
	if withReference {
		if ref, err := m.run(model.Simplex, p); err != nil {
			m.logger.Warnf("reference optimum unavailable: %v", err)
		} else {
			cmp.Reference = &ref
		}
	}
	for _, s := range cmp.Solutions {
		m.remember(ctx, p, s)
	}
	if cmp.Reference != nil {
		m.remember(ctx, p, *cmp.Reference)
	}
	m.reportComparison(cmp)
	return cmp, nil
}

// History returns a copy of the solutions produced in this session, oldest
// first.
func (m *Manager) History() []model.Solution {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Solution(nil), m.history...)
}

// ClearHistory empties the session history. The persistent store is left
// untouched.
func (m *Manager) ClearHistory() {
	m.mu.Lock()
	m.history = nil
	m.mu.Unlock()
}

// Close releases the event bus and the history store.
func (m *Manager) Close() error {
	if m.bus != nil {
		m.bus.Close()
	}
	if store := m.Store(); store != nil {
		return store.Close()
	}
	return nil
}

func (m *Manager) validate(p model.Problem) error {
	err := Validate(p)
	if err == nil {
		return nil
	}
	reason := Reason(err)
	validationFailures.WithLabelValues(reason).Inc()
	ev := metrics.ValidationEvent{Reason: reason, Time: time.Now()}
	var be *BalanceError
	if errors.As(err, &be) {
		ev.Supply, ev.Demand = be.Supply, be.Demand
	}
	if rec, ok := m.sink.(metrics.ValidationRecorder); ok {
		if rerr := rec.RecordValidation(ev); rerr != nil {
			m.logger.Errorf("metrics validation error: %v", rerr)
		}
	}
	if m.bus != nil {
		m.bus.Publish(events.ValidationEvent{Err: err, Supply: ev.Supply, Demand: ev.Demand})
	}
	m.logger.Warnf("problem rejected: %v", err)
	return err
}

// run executes one method on a validated problem and reports it.
func (m *Manager) run(method model.Method, p model.Problem) (model.Solution, error) {
	start := time.Now()
	var sol model.Solution
	if method == model.Simplex {
		var err error
		sol, err = Optimum(p)
		if err != nil {
			monitoring.CaptureException(err, map[string]string{"method": method.Key()})
			return model.Solution{}, err
		}
	} else {
		s, err := SolverFor(method)
		if err != nil {
			return model.Solution{}, err
		}
		sol = s.Solve(p)
	}
	elapsed := time.Since(start)

	solveDuration.WithLabelValues(method.Key()).Observe(elapsed.Seconds())
	solutionsTotal.WithLabelValues(method.Key(), strconv.FormatBool(sol.Truncated)).Inc()
	a := Analyze(p, sol)
	if err := m.sink.RecordSolution(metrics.SolutionEvent{
		Method:     method,
		Origins:    len(p.Supply),
		Dests:      len(p.Demand),
		TotalCost:  sol.TotalCost,
		BasicCells: a.BasicCells,
		Degenerate: a.Degenerate,
		Truncated:  sol.Truncated,
		Duration:   elapsed,
		Time:       start,
	}); err != nil {
		m.logger.Errorf("metrics solution error: %v", err)
	}
	if m.bus != nil {
		m.bus.Publish(events.SolveEvent{Method: method, TotalCost: sol.TotalCost, Duration: elapsed, Truncated: sol.Truncated})
	}
	if sol.Truncated {
		m.logger.Warnf("%s stopped before exhausting supply and demand", method)
	}
	m.logger.Debugw("solved", map[string]any{
		"method":      method.Key(),
		"total_cost":  sol.TotalCost,
		"basic_cells": a.BasicCells,
		"degenerate":  a.Degenerate,
		"duration_ms": float64(elapsed.Microseconds()) / 1000,
	})
	return sol, nil
}

func (m *Manager) reportComparison(cmp model.Comparison) {
	costs := make(map[model.Method]float64, len(cmp.Solutions))
	for _, s := range cmp.Solutions {
		costs[s.Method] = s.TotalCost
	}
	ev := metrics.ComparisonEvent{Costs: costs, Time: time.Now()}
	if cmp.Reference != nil {
		ev.Reference = cmp.Reference.TotalCost
		if ev.Reference > 0 {
			ev.Gap = make(map[model.Method]float64, len(costs))
			for k, v := range costs {
				ev.Gap[k] = (v - ev.Reference) / ev.Reference
			}
		}
	}
	if rec, ok := m.sink.(metrics.ComparisonRecorder); ok {
		if err := rec.RecordComparison(ev); err != nil {
			m.logger.Errorf("metrics comparison error: %v", err)
		}
	}
	if m.bus != nil {
		m.bus.Publish(events.CompareEvent{Costs: costs, Reference: ev.Reference})
	}
}

// remember appends sol to the session history and the store. Store
// failures are logged, not returned: the solution is already valid.
func (m *Manager) remember(ctx context.Context, p model.Problem, sol model.Solution) {
	m.mu.Lock()
	m.history = append(m.history, sol)
	m.trimLocked()
	store := m.store
	m.mu.Unlock()
	if store == nil {
		return
	}
	if err := store.Append(ctx, history.NewRecord(p.Clone(), sol)); err != nil {
		m.logger.Errorf("history append failed: %v", err)
		monitoring.CaptureException(err, map[string]string{"component": "history"})
	}
}

func (m *Manager) trimLocked() {
	if m.historyLimit > 0 && len(m.history) > m.historyLimit {
		m.history = append([]model.Solution(nil), m.history[len(m.history)-m.historyLimit:]...)
	}
}
