package model

// Step is a single allocation in the order the solver made it.
type Step struct {
	Origin      int     `json:"origin"`
	Destination int     `json:"destination"`
	Amount      float64 `json:"amount"`
}

// Cell describes a positive allocation together with its cost.
type Cell struct {
	Origin      int     `json:"origin"`
	Destination int     `json:"destination"`
	Amount      float64 `json:"amount"`
	UnitCost    float64 `json:"unit_cost"`
	Cost        float64 `json:"cost"`
}

// Solution is the result of one solver invocation. It is never mutated after
// being returned.
type Solution struct {
	Method     Method      `json:"method"`
	Allocation [][]float64 `json:"allocation"`
	TotalCost  float64     `json:"total_cost"`
	Steps      []Step      `json:"steps,omitempty"`
	// Truncated is set when the solver stopped before every supply and
	// demand was exhausted (no eligible cell or iteration cap reached).
	Truncated bool `json:"truncated,omitempty"`
}

// Cells lists the positive cells of the allocation in row-major order,
// priced with the given cost matrix.
func (s Solution) Cells(costs [][]float64) []Cell {
	var cells []Cell
	for i, row := range s.Allocation {
		for j, amt := range row {
			if amt <= 0 {
				continue
			}
			var unit float64
			if i < len(costs) && j < len(costs[i]) {
				unit = costs[i][j]
			}
			cells = append(cells, Cell{Origin: i, Destination: j, Amount: amt, UnitCost: unit, Cost: amt * unit})
		}
	}
	return cells
}

// Comparison holds the heuristic solutions for one problem in the order of
// Heuristics. Reference optionally carries the exact LP optimum.
type Comparison struct {
	Solutions []Solution `json:"solutions"`
	Reference *Solution  `json:"reference,omitempty"`
}

// Get returns the solution produced by m.
func (c Comparison) Get(m Method) (Solution, bool) {
	for _, s := range c.Solutions {
		if s.Method == m {
			return s, true
		}
	}
	if c.Reference != nil && c.Reference.Method == m {
		return *c.Reference, true
	}
	return Solution{}, false
}

// Gap returns how much more the given method costs than the reference
// optimum. ok is false when no reference or no such solution exists.
func (c Comparison) Gap(m Method) (gap float64, ok bool) {
	if c.Reference == nil {
		return 0, false
	}
	s, found := c.Get(m)
	if !found {
		return 0, false
	}
	return s.TotalCost - c.Reference.TotalCost, true
}
