package transport

import (
	"github.com/kilianp07/transport/core/matrix"
	"github.com/kilianp07/transport/core/model"
)

// penalty is the Vogel penalty of a row or column. A line with no available
// cell is not usable this round.
type penalty struct {
	value  float64
	usable bool
}

// pick identifies the line selected by the largest penalty.
type pick struct {
	row   bool
	index int
	value float64
}

// VogelApproximation allocates to the cheapest cell of the row or column with
// the largest penalty, where the penalty is the gap between the two cheapest
// available costs of that line (or the cost itself when only one remains).
//
// Rows win ties over columns and lower indices win within each. Exhausted
// rows and columns are eliminated. The loop is capped at m*n iterations.
func VogelApproximation(p model.Problem) model.Solution {
	w := newWorksheet(p)
	rowDone := make([]bool, w.m)
	colDone := make([]bool, w.n)
	for iter := 0; iter < w.m*w.n; iter++ {
		if matrix.AllTrue(rowDone) || matrix.AllTrue(colDone) {
			break
		}
		sel, err := w.maxPenalty(rowDone, colDone)
		if err != nil {
			break
		}
		var i, j int
		if sel.row {
			i = sel.index
			j = matrix.ArgMinRow(w.costs, i, colDone)
		} else {
			j = sel.index
			i = matrix.ArgMinCol(w.costs, j, rowDone)
		}
		w.allocate(i, j)
		if w.supply[i] == 0 {
			rowDone[i] = true
		}
		if w.demand[j] == 0 {
			colDone[j] = true
		}
	}
	return w.solution(model.Vogel, p.Costs)
}

// maxPenalty scans row penalties then column penalties with a strict
// comparison, so the first maximum encountered wins.
func (w *worksheet) maxPenalty(rowDone, colDone []bool) (pick, error) {
	best := pick{index: -1}
	for i, pen := range w.rowPenalties(rowDone, colDone) {
		if pen.usable && (best.index < 0 || pen.value > best.value) {
			best = pick{row: true, index: i, value: pen.value}
		}
	}
	for j, pen := range w.colPenalties(rowDone, colDone) {
		if pen.usable && (best.index < 0 || pen.value > best.value) {
			best = pick{row: false, index: j, value: pen.value}
		}
	}
	if best.index < 0 {
		return best, errNoEligibleCell
	}
	return best, nil
}

func (w *worksheet) rowPenalties(rowDone, colDone []bool) []penalty {
	out := make([]penalty, w.m)
	avail := make([]float64, 0, w.n)
	for i := 0; i < w.m; i++ {
		if rowDone[i] {
			continue
		}
		avail = avail[:0]
		for j := 0; j < w.n; j++ {
			if !colDone[j] && w.demand[j] > 0 {
				avail = append(avail, w.costs[i][j])
			}
		}
		out[i] = linePenalty(avail)
	}
	return out
}

func (w *worksheet) colPenalties(rowDone, colDone []bool) []penalty {
	out := make([]penalty, w.n)
	avail := make([]float64, 0, w.m)
	for j := 0; j < w.n; j++ {
		if colDone[j] {
			continue
		}
		avail = avail[:0]
		for i := 0; i < w.m; i++ {
			if !rowDone[i] && w.supply[i] > 0 {
				avail = append(avail, w.costs[i][j])
			}
		}
		out[j] = linePenalty(avail)
	}
	return out
}

func linePenalty(costs []float64) penalty {
	first, second, n := matrix.TwoSmallest(costs)
	switch n {
	case 0:
		return penalty{}
	case 1:
		return penalty{value: first, usable: true}
	default:
		return penalty{value: second - first, usable: true}
	}
}
