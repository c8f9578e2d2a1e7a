package events

// ValidationEvent is published when a problem fails validation. Supply and
// Demand carry the totals when the failure is a balance check.
type ValidationEvent struct {
	Err    error
	Supply float64
	Demand float64
}
