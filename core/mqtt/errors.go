package mqtt

import "errors"

var (
	// ErrResponseTimeout is returned when no response arrives before the timeout.
	ErrResponseTimeout = errors.New("timeout waiting for solve response")
	// ErrRemote wraps an error reported by the responder.
	ErrRemote = errors.New("remote solve failed")
)
