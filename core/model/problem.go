package model

import "fmt"

// Problem is a transportation problem: costs[i][j] is the unit cost of
// shipping from origin i to destination j.
type Problem struct {
	Origins      []string    `json:"origins,omitempty"`
	Destinations []string    `json:"destinations,omitempty"`
	Costs        [][]float64 `json:"costs"`
	Supply       []float64   `json:"supply"`
	Demand       []float64   `json:"demand"`
}

// Dims returns the number of origins and destinations.
func (p Problem) Dims() (int, int) {
	return len(p.Supply), len(p.Demand)
}

// Clone returns a deep copy of the problem.
func (p Problem) Clone() Problem {
	cp := Problem{
		Origins:      append([]string(nil), p.Origins...),
		Destinations: append([]string(nil), p.Destinations...),
		Supply:       append([]float64(nil), p.Supply...),
		Demand:       append([]float64(nil), p.Demand...),
	}
	if p.Costs != nil {
		cp.Costs = make([][]float64, len(p.Costs))
		for i, row := range p.Costs {
			cp.Costs[i] = append([]float64(nil), row...)
		}
	}
	return cp
}

// OriginLabel returns the configured label of origin i or "O<i+1>".
func (p Problem) OriginLabel(i int) string {
	if i < len(p.Origins) && p.Origins[i] != "" {
		return p.Origins[i]
	}
	return fmt.Sprintf("O%d", i+1)
}

// DestinationLabel returns the configured label of destination j or "D<j+1>".
func (p Problem) DestinationLabel(j int) string {
	if j < len(p.Destinations) && p.Destinations[j] != "" {
		return p.Destinations[j]
	}
	return fmt.Sprintf("D%d", j+1)
}
