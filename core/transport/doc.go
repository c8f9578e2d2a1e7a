// Package transport solves balanced transportation problems with the three
// classical initial feasible solution heuristics:
//
//   - NorthwestCorner sweeps the tableau diagonally and ignores costs.
//   - MinimumCost repeatedly fills the cheapest eligible cell.
//   - VogelApproximation fills the cheapest cell of the row or column with
//     the largest penalty (gap between its two cheapest available costs).
//
// None of them improve the initial solution. Optimum solves the same problem
// exactly with gonum's simplex and is only used as a comparison reference.
//
// Problems must pass Validate before being handed to a solver; solvers do
// not re-validate. Every solver works on private copies, so a Problem may be
// shared between goroutines and solved concurrently.
//
// Manager is the host-side layer: it validates, runs the selected method,
// records metrics, publishes events and appends to a history store.
package transport
