package transport

import (
	"errors"
	"fmt"
)

// Tolerance is the absolute tolerance used for balance and feasibility checks.
const Tolerance = 0.01

var (
	// ErrUnbalancedProblem is returned when total supply and total demand
	// differ by more than Tolerance.
	ErrUnbalancedProblem = errors.New("unbalanced problem")
	// ErrDegenerateProblem is returned when total supply or total demand is zero.
	ErrDegenerateProblem = errors.New("degenerate problem")
	// ErrShape is returned for empty problems or inconsistent dimensions.
	ErrShape = errors.New("invalid problem shape")
	// ErrInvalidValue is returned for negative, NaN or infinite inputs.
	ErrInvalidValue = errors.New("invalid value")
	// ErrInfeasible is returned by CheckFeasible when an allocation violates
	// a supply or demand constraint.
	ErrInfeasible = errors.New("infeasible allocation")
	// ErrLPFailed wraps failures of the reference LP solver.
	ErrLPFailed = errors.New("lp solve failed")

	// errNoEligibleCell ends a solver loop early. It never leaves the package:
	// the solver returns the allocation built so far.
	errNoEligibleCell = errors.New("no eligible cell")
)

// BalanceError reports the totals of a problem rejected by ValidateTotals.
// It matches ErrUnbalancedProblem or ErrDegenerateProblem with errors.Is.
type BalanceError struct {
	Kind   error
	Supply float64
	Demand float64
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("%v: total supply %g, total demand %g", e.Kind, e.Supply, e.Demand)
}

func (e *BalanceError) Unwrap() error { return e.Kind }

// Reason maps a validation error to a short label used in metrics.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnbalancedProblem):
		return "unbalanced"
	case errors.Is(err, ErrDegenerateProblem):
		return "degenerate"
	case errors.Is(err, ErrShape):
		return "shape"
	case errors.Is(err, ErrInvalidValue):
		return "invalid_value"
	default:
		return "other"
	}
}
