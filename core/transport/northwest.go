package transport

import "github.com/kilianp07/transport/core/model"

// NorthwestCorner builds an initial feasible solution starting at the top
// left cell and moving right or down as demand or supply runs out. Costs are
// only used to price the result.
//
// When supply and demand run out together the cursor advances diagonally,
// which yields a degenerate solution with fewer than m+n-1 basic cells.
func NorthwestCorner(p model.Problem) model.Solution {
	w := newWorksheet(p)
	row, col := 0, 0
	for row < w.m && col < w.n {
		w.allocate(row, col)
		rowDone, colDone := w.supply[row] == 0, w.demand[col] == 0
		switch {
		case rowDone && colDone:
			row++
			col++
		case rowDone:
			row++
		case colDone:
			col++
		}
	}
	return w.solution(model.NorthwestCorner, p.Costs)
}
