package transport

import (
	"fmt"
	"math"

	"github.com/kilianp07/transport/core/matrix"
	"github.com/kilianp07/transport/core/model"
)

// Validate checks the shape and values of p and then its balance. It must
// run before any solver.
func Validate(p model.Problem) error {
	m, n := p.Dims()
	if m == 0 || n == 0 {
		return fmt.Errorf("%w: need at least one origin and one destination", ErrShape)
	}
	if len(p.Costs) != m {
		return fmt.Errorf("%w: costs has %d rows, expected %d", ErrShape, len(p.Costs), m)
	}
	for i, row := range p.Costs {
		if len(row) != n {
			return fmt.Errorf("%w: costs row %d has %d columns, expected %d", ErrShape, i, len(row), n)
		}
		for j, c := range row {
			if !valid(c) {
				return fmt.Errorf("%w: cost[%d][%d] = %g", ErrInvalidValue, i, j, c)
			}
		}
	}
	if len(p.Origins) != 0 && len(p.Origins) != m {
		return fmt.Errorf("%w: %d origin labels for %d origins", ErrShape, len(p.Origins), m)
	}
	if len(p.Destinations) != 0 && len(p.Destinations) != n {
		return fmt.Errorf("%w: %d destination labels for %d destinations", ErrShape, len(p.Destinations), n)
	}
	for i, s := range p.Supply {
		if !valid(s) {
			return fmt.Errorf("%w: supply[%d] = %g", ErrInvalidValue, i, s)
		}
	}
	for j, d := range p.Demand {
		if !valid(d) {
			return fmt.Errorf("%w: demand[%d] = %g", ErrInvalidValue, j, d)
		}
	}
	return ValidateTotals(p.Supply, p.Demand)
}

// ValidateTotals rejects problems whose totals are zero or differ by more
// than Tolerance. The returned error is a *BalanceError.
func ValidateTotals(supply, demand []float64) error {
	ts, td := matrix.Sum(supply), matrix.Sum(demand)
	if ts == 0 || td == 0 {
		return &BalanceError{Kind: ErrDegenerateProblem, Supply: ts, Demand: td}
	}
	if math.Abs(ts-td) > Tolerance {
		return &BalanceError{Kind: ErrUnbalancedProblem, Supply: ts, Demand: td}
	}
	return nil
}

func valid(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
