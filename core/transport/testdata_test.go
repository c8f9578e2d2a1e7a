package transport

import (
	"math/rand"

	"github.com/kilianp07/transport/core/model"
)

// textbook is the 3x4 instance used throughout the solver tests.
func textbook() model.Problem {
	return model.Problem{
		Costs: [][]float64{
			{8, 6, 10, 9},
			{9, 12, 13, 7},
			{14, 9, 16, 5},
		},
		Supply: []float64{20, 30, 50},
		Demand: []float64{10, 40, 30, 20},
	}
}

func small() model.Problem {
	return model.Problem{
		Costs:  [][]float64{{4, 6}, {5, 3}},
		Supply: []float64{20, 30},
		Demand: []float64{25, 25},
	}
}

// randomProblem builds a balanced problem with integer quantities so that
// every solver can exhaust supply and demand exactly.
func randomProblem(r *rand.Rand) model.Problem {
	m, n := 1+r.Intn(6), 1+r.Intn(6)
	p := model.Problem{
		Costs:  make([][]float64, m),
		Supply: make([]float64, m),
		Demand: make([]float64, n),
	}
	var total float64
	for i := range p.Supply {
		p.Supply[i] = float64(r.Intn(50))
		total += p.Supply[i]
	}
	if total == 0 {
		p.Supply[0] = 1
		total = 1
	}
	remaining := int(total)
	for j := 0; j < n-1; j++ {
		d := r.Intn(remaining + 1)
		p.Demand[j] = float64(d)
		remaining -= d
	}
	p.Demand[n-1] = float64(remaining)
	for i := range p.Costs {
		p.Costs[i] = make([]float64, n)
		for j := range p.Costs[i] {
			p.Costs[i][j] = float64(1 + r.Intn(20))
		}
	}
	return p
}
