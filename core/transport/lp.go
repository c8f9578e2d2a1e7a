package transport

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/kilianp07/transport/core/matrix"
	"github.com/kilianp07/transport/core/model"
)

// lpTolerance is the reduced-cost tolerance passed to the simplex.
const lpTolerance = 1e-9

// solveLP runs the simplex on a standard form program.
func solveLP(c []float64, A mat.Matrix, b []float64) ([]float64, error) {
	_, x, err := lp.Simplex(c, A, b, lpTolerance, nil)
	return x, err
}

// lpSolve points to the function used to solve the LP. It can be overridden
// in tests to simulate solver failures.
var lpSolve = solveLP

// Optimum solves p exactly as a linear program and returns the optimal
// allocation labelled model.Simplex. p must be valid.
//
// Variables are x[i*n+j] followed by one slack per line of the side with the
// larger total. That side gets "ships at most" rows, the other side must be
// met exactly, so problems whose totals differ within Tolerance stay
// feasible. The slack columns keep the constraint matrix at full row rank.
func Optimum(p model.Problem) (model.Solution, error) {
	m, n := p.Dims()
	supplyCaps := matrix.Sum(p.Supply) >= matrix.Sum(p.Demand)
	slacks := m
	if !supplyCaps {
		slacks = n
	}
	vars := m*n + slacks
	rows := m + n

	c := make([]float64, vars)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			c[i*n+j] = p.Costs[i][j]
		}
	}
	A := mat.NewDense(rows, vars, nil)
	b := make([]float64, rows)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			A.Set(i, i*n+j, 1)
		}
		if supplyCaps {
			A.Set(i, m*n+i, 1)
		}
		b[i] = p.Supply[i]
	}
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			A.Set(m+j, i*n+j, 1)
		}
		if !supplyCaps {
			A.Set(m+j, m*n+j, 1)
		}
		b[m+j] = p.Demand[j]
	}

	x, err := lpSolve(c, A, b)
	if err != nil {
		return model.Solution{}, fmt.Errorf("%w: %v", ErrLPFailed, err)
	}
	if len(x) != vars {
		return model.Solution{}, fmt.Errorf("%w: got %d values, expected %d", ErrLPFailed, len(x), vars)
	}
	alloc := matrix.Zeros(m, n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			if v := x[i*n+j]; v > lpTolerance {
				alloc[i][j] = v
			}
		}
	}
	return model.Solution{
		Method:     model.Simplex,
		Allocation: alloc,
		TotalCost:  TotalCost(alloc, p.Costs),
	}, nil
}

// CompareWithReference runs every heuristic and attaches the LP optimum.
// The heuristic results are returned even when the LP fails.
func CompareWithReference(p model.Problem) (model.Comparison, error) {
	cmp := CompareAll(p)
	ref, err := Optimum(p)
	if err != nil {
		return cmp, err
	}
	cmp.Reference = &ref
	return cmp, nil
}
