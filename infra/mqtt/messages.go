package mqtt

import "github.com/kilianp07/transport/core/model"

// MethodCompare asks the responder to run every heuristic.
const MethodCompare = "compare"

// Request is the payload published on the request topic.
type Request struct {
	RequestID string `json:"request_id"`
	// Method is a solver selector ("vogel", "nw", "simplex") or MethodCompare.
	Method string `json:"method"`
	// Reference attaches the LP optimum to a comparison.
	Reference bool          `json:"reference,omitempty"`
	Problem   model.Problem `json:"problem"`
}

// Response is published on <response_prefix>/<request_id>. Exactly one of
// Solution, Comparison or Error is set.
type Response struct {
	RequestID  string            `json:"request_id"`
	Solution   *model.Solution   `json:"solution,omitempty"`
	Comparison *model.Comparison `json:"comparison,omitempty"`
	Error      string            `json:"error,omitempty"`
	// Reason classifies validation errors ("unbalanced", "degenerate", ...).
	Reason string `json:"reason,omitempty"`
}
