package transport

import (
	"math"

	"github.com/kilianp07/transport/core/matrix"
	"github.com/kilianp07/transport/core/model"
)

// worksheet holds the private working state of one solver run.
type worksheet struct {
	m, n   int
	costs  [][]float64
	supply []float64
	demand []float64
	alloc  [][]float64
	steps  []model.Step
}

func newWorksheet(p model.Problem) *worksheet {
	m, n := p.Dims()
	return &worksheet{
		m:      m,
		n:      n,
		costs:  matrix.Copy(p.Costs),
		supply: matrix.CopyVec(p.Supply),
		demand: matrix.CopyVec(p.Demand),
		alloc:  matrix.Zeros(m, n),
	}
}

// allocate ships min(supply[i], demand[j]) through cell (i, j).
func (w *worksheet) allocate(i, j int) float64 {
	amount := math.Min(w.supply[i], w.demand[j])
	w.alloc[i][j] = amount
	w.supply[i] -= amount
	w.demand[j] -= amount
	w.steps = append(w.steps, model.Step{Origin: i, Destination: j, Amount: amount})
	return amount
}

// solution prices the allocation against the caller's original costs.
func (w *worksheet) solution(method model.Method, costs [][]float64) model.Solution {
	return model.Solution{
		Method:     method,
		Allocation: w.alloc,
		TotalCost:  TotalCost(w.alloc, costs),
		Steps:      w.steps,
		Truncated:  matrix.Sum(w.supply) > Tolerance || matrix.Sum(w.demand) > Tolerance,
	}
}
