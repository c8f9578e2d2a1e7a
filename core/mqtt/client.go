package mqtt

import (
	"context"

	"github.com/kilianp07/transport/core/model"
)

// Client solves problems on a remote responder reached over MQTT.
type Client interface {
	// Solve runs method on p remotely and waits for the solution.
	Solve(ctx context.Context, method model.Method, p model.Problem) (model.Solution, error)

	// Compare runs every heuristic remotely, optionally with the LP optimum.
	Compare(ctx context.Context, p model.Problem, withReference bool) (model.Comparison, error)

	Disconnect()
}
