package transport

import (
	"fmt"
	"math"

	"github.com/kilianp07/transport/core/matrix"
	"github.com/kilianp07/transport/core/model"
)

// TotalCost returns sum(alloc[i][j] * costs[i][j]). It must be given the
// caller's original cost matrix.
func TotalCost(alloc, costs [][]float64) float64 {
	var total float64
	for i, row := range alloc {
		for j, amt := range row {
			if amt == 0 {
				continue
			}
			total += amt * costs[i][j]
		}
	}
	return total
}

// CheckFeasible verifies that every row of alloc ships its supply and every
// column receives its demand, within Tolerance.
func CheckFeasible(alloc [][]float64, supply, demand []float64) error {
	if len(alloc) != len(supply) {
		return fmt.Errorf("%w: %d rows for %d origins", ErrShape, len(alloc), len(supply))
	}
	for i, got := range matrix.RowSums(alloc) {
		if math.Abs(got-supply[i]) > Tolerance {
			return fmt.Errorf("%w: origin %d ships %g, supply is %g", ErrInfeasible, i, got, supply[i])
		}
	}
	cols := matrix.ColSums(alloc)
	if len(cols) != len(demand) {
		return fmt.Errorf("%w: %d columns for %d destinations", ErrShape, len(cols), len(demand))
	}
	for j, got := range cols {
		if math.Abs(got-demand[j]) > Tolerance {
			return fmt.Errorf("%w: destination %d receives %g, demand is %g", ErrInfeasible, j, got, demand[j])
		}
	}
	return nil
}

// BasicCells counts the positive cells of an allocation.
func BasicCells(alloc [][]float64) int {
	return matrix.CountPositive(alloc)
}

// Analysis summarises the structural quality of a solution.
type Analysis struct {
	Feasible bool   `json:"feasible"`
	Reason   string `json:"reason,omitempty"`
	// BasicCells is the number of positive cells; Expected is m+n-1.
	BasicCells int  `json:"basic_cells"`
	Expected   int  `json:"expected"`
	Degenerate bool `json:"degenerate"`
}

// Analyze checks s against p.
func Analyze(p model.Problem, s model.Solution) Analysis {
	m, n := p.Dims()
	a := Analysis{
		BasicCells: BasicCells(s.Allocation),
		Expected:   m + n - 1,
	}
	a.Degenerate = a.BasicCells < a.Expected
	if err := CheckFeasible(s.Allocation, p.Supply, p.Demand); err != nil {
		a.Reason = err.Error()
	} else {
		a.Feasible = true
	}
	return a
}
