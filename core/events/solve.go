package events

import (
	"time"

	"github.com/kilianp07/transport/core/model"
)

// SolveEvent is published after a method produced a solution.
type SolveEvent struct {
	Method    model.Method
	TotalCost float64
	Duration  time.Duration
	Truncated bool
}

// CompareEvent is published after a comparison run. Reference is the LP
// optimum cost, or zero when no reference was computed.
type CompareEvent struct {
	Costs     map[model.Method]float64
	Reference float64
}
