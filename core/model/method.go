package model

import (
	"errors"
	"fmt"
	"strings"
)

// Method identifies the allocation method that produced a solution.
type Method int

const (
	NorthwestCorner Method = iota
	MinimumCost
	Vogel
	// Simplex is the exact LP optimum used as a comparison reference.
	Simplex
)

// ErrUnknownMethod is returned by ParseMethod for unrecognized selectors.
var ErrUnknownMethod = errors.New("unknown method")

// Heuristics lists the initial feasible solution methods in comparison order.
var Heuristics = []Method{NorthwestCorner, MinimumCost, Vogel}

// String returns the human-readable label of the method.
func (m Method) String() string {
	switch m {
	case NorthwestCorner:
		return "Northwest Corner"
	case MinimumCost:
		return "Minimum Cost"
	case Vogel:
		return "Vogel (VAM)"
	case Simplex:
		return "Simplex (LP)"
	default:
		return "unknown"
	}
}

// Key returns the selector used by the CLI, HTTP and MQTT surfaces.
func (m Method) Key() string {
	switch m {
	case NorthwestCorner:
		return "northwest"
	case MinimumCost:
		return "mincost"
	case Vogel:
		return "vogel"
	case Simplex:
		return "simplex"
	default:
		return "unknown"
	}
}

// ParseMethod maps a selector to a Method. Matching is case-insensitive and
// accepts a few common aliases.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "northwest", "nw", "northwest_corner", "northwestcorner":
		return NorthwestCorner, nil
	case "mincost", "min", "minimum_cost", "minimumcost":
		return MinimumCost, nil
	case "vogel", "vam":
		return Vogel, nil
	case "simplex", "lp":
		return Simplex, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// MarshalText encodes the method as its selector key.
func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.Key()), nil
}

// UnmarshalText decodes a selector key.
func (m *Method) UnmarshalText(b []byte) error {
	v, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
