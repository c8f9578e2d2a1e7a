// Package events defines the solver related events emitted on the event bus.
//
// Available event types:
//   - SolveEvent: a method finished on a problem
//   - ValidationEvent: a problem was rejected before solving
//   - CompareEvent: every heuristic ran on the same problem
package events
