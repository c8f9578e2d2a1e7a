package transport

import (
	"fmt"

	"github.com/kilianp07/transport/core/model"
)

// Solver produces an initial feasible solution for a validated problem.
type Solver interface {
	Method() model.Method
	Solve(p model.Problem) model.Solution
}

// SolverFunc adapts a plain function to the Solver interface.
type SolverFunc struct {
	M  model.Method
	Fn func(model.Problem) model.Solution
}

func (f SolverFunc) Method() model.Method { return f.M }

func (f SolverFunc) Solve(p model.Problem) model.Solution { return f.Fn(p) }

// Solvers returns the three heuristics in comparison order.
func Solvers() []Solver {
	return []Solver{
		SolverFunc{M: model.NorthwestCorner, Fn: NorthwestCorner},
		SolverFunc{M: model.MinimumCost, Fn: MinimumCost},
		SolverFunc{M: model.Vogel, Fn: VogelApproximation},
	}
}

// SolverFor returns the heuristic implementing m.
func SolverFor(m model.Method) (Solver, error) {
	for _, s := range Solvers() {
		if s.Method() == m {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s has no heuristic solver", model.ErrUnknownMethod, m)
}

// CompareAll runs every heuristic on p. It does not rank the results.
func CompareAll(p model.Problem) model.Comparison {
	solvers := Solvers()
	cmp := model.Comparison{Solutions: make([]model.Solution, len(solvers))}
	for i, s := range solvers {
		cmp.Solutions[i] = s.Solve(p)
	}
	return cmp
}
