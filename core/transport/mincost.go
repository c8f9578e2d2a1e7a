package transport

import (
	"github.com/kilianp07/transport/core/matrix"
	"github.com/kilianp07/transport/core/model"
)

// MinimumCost repeatedly allocates to the cheapest cell whose origin still
// has supply and whose destination still has demand. Ties go to the first
// cell in row-major order.
//
// Exhausted rows and columns are masked cell by cell. The loop stops after
// m+n-1 allocations or as soon as no eligible cell remains.
func MinimumCost(p model.Problem) model.Solution {
	w := newWorksheet(p)
	masked := matrix.Bools(w.m, w.n)
	for assigned := 0; assigned < w.m+w.n-1; assigned++ {
		i, j, err := w.cheapestCell(masked)
		if err != nil {
			break
		}
		w.allocate(i, j)
		if w.supply[i] == 0 {
			for c := 0; c < w.n; c++ {
				if w.alloc[i][c] == 0 {
					masked[i][c] = true
				}
			}
		}
		if w.demand[j] == 0 {
			for r := 0; r < w.m; r++ {
				if w.alloc[r][j] == 0 {
					masked[r][j] = true
				}
			}
		}
	}
	return w.solution(model.MinimumCost, p.Costs)
}

func (w *worksheet) cheapestCell(masked [][]bool) (int, int, error) {
	i, j, ok := matrix.ArgMin(w.costs, func(i, j int) bool {
		return !masked[i][j] && w.supply[i] > 0 && w.demand[j] > 0
	})
	if !ok {
		return -1, -1, errNoEligibleCell
	}
	return i, j, nil
}
