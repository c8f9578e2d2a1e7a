package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethod(t *testing.T) {
	cases := map[string]Method{
		"northwest": NorthwestCorner,
		"NW":        NorthwestCorner,
		"mincost":   MinimumCost,
		" min ":     MinimumCost,
		"vogel":     Vogel,
		"VAM":       Vogel,
		"lp":        Simplex,
	}
	for in, want := range cases {
		got, err := ParseMethod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseMethod("greedy")
	assert.True(t, errors.Is(err, ErrUnknownMethod))
	assert.Contains(t, err.Error(), "greedy")
}

func TestMethodJSON(t *testing.T) {
	data, err := json.Marshal(Solution{Method: Vogel})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"method":"vogel"`)

	var s Solution
	require.NoError(t, json.Unmarshal([]byte(`{"method":"mincost"}`), &s))
	assert.Equal(t, MinimumCost, s.Method)
	assert.Error(t, json.Unmarshal([]byte(`{"method":"nope"}`), &s))
}

func TestProblemCloneIsDeep(t *testing.T) {
	p := Problem{Costs: [][]float64{{1, 2}}, Supply: []float64{3}, Demand: []float64{1, 2}}
	cp := p.Clone()
	cp.Costs[0][0] = 99
	cp.Supply[0] = 99
	assert.Equal(t, 1.0, p.Costs[0][0])
	assert.Equal(t, 3.0, p.Supply[0])
}

func TestLabels(t *testing.T) {
	p := Problem{Origins: []string{"Bogota"}, Supply: []float64{1, 1}, Demand: []float64{2}}
	assert.Equal(t, "Bogota", p.OriginLabel(0))
	assert.Equal(t, "O2", p.OriginLabel(1))
	assert.Equal(t, "D1", p.DestinationLabel(0))
}

func TestCellsAndGap(t *testing.T) {
	costs := [][]float64{{4, 6}, {5, 3}}
	s := Solution{Method: MinimumCost, Allocation: [][]float64{{20, 0}, {5, 25}}, TotalCost: 180}
	cells := s.Cells(costs)
	require.Len(t, cells, 3)
	assert.Equal(t, Cell{Origin: 1, Destination: 1, Amount: 25, UnitCost: 3, Cost: 75}, cells[2])

	cmp := Comparison{Solutions: []Solution{s}}
	_, ok := cmp.Gap(MinimumCost)
	assert.False(t, ok)
	cmp.Reference = &Solution{Method: Simplex, TotalCost: 170}
	gap, ok := cmp.Gap(MinimumCost)
	assert.True(t, ok)
	assert.InDelta(t, 10, gap, 1e-9)
}
