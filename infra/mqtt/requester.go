package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/kilianp07/transport/core/model"
	coremqtt "github.com/kilianp07/transport/core/mqtt"
	"github.com/kilianp07/transport/infra/logger"
)

// Errors shared with core/mqtt so callers need not import this package.
var (
	ErrResponseTimeout = coremqtt.ErrResponseTimeout
	ErrRemote          = coremqtt.ErrRemote
)

var _ coremqtt.Client = (*Requester)(nil)

// Requester sends solve requests and waits for the matching response.
type Requester struct {
	cfg Config
	cli pahoClient
	log logger.Logger

	mu      sync.Mutex
	pending map[string]chan Response
}

// NewRequester connects to the broker and subscribes to every response
// topic under the configured prefix.
func NewRequester(cfg Config) (*Requester, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Requester{cfg: cfg, log: logger.New("mqtt_requester"), pending: make(map[string]chan Response)}
	cli, err := connect(cfg, r.log, cfg.ResponsePrefix+"/+", cfg.qos("response"), r.onResponse)
	if err != nil {
		return nil, err
	}
	r.cli = cli
	return r, nil
}

func (r *Requester) onResponse(_ paho.Client, msg paho.Message) {
	var resp Response
	if err := json.Unmarshal(msg.Payload(), &resp); err != nil {
		r.log.Errorf("failed to decode response: %v", err)
		return
	}
	if resp.RequestID == "" {
		resp.RequestID = strings.TrimPrefix(msg.Topic(), r.cfg.ResponsePrefix+"/")
	}
	r.mu.Lock()
	ch, ok := r.pending[resp.RequestID]
	r.mu.Unlock()
	if !ok {
		return
	}
	select {
	case ch <- resp:
	default:
	}
}

// Solve asks the responder to run method on p.
func (r *Requester) Solve(ctx context.Context, method model.Method, p model.Problem) (model.Solution, error) {
	resp, err := r.roundTrip(ctx, Request{Method: method.Key(), Problem: p})
	if err != nil {
		return model.Solution{}, err
	}
	if resp.Solution == nil {
		return model.Solution{}, fmt.Errorf("%w: empty solution", ErrRemote)
	}
	return *resp.Solution, nil
}

// Compare asks the responder to run every heuristic on p.
func (r *Requester) Compare(ctx context.Context, p model.Problem, withReference bool) (model.Comparison, error) {
	resp, err := r.roundTrip(ctx, Request{Method: MethodCompare, Reference: withReference, Problem: p})
	if err != nil {
		return model.Comparison{}, err
	}
	if resp.Comparison == nil {
		return model.Comparison{}, fmt.Errorf("%w: empty comparison", ErrRemote)
	}
	return *resp.Comparison, nil
}

func (r *Requester) roundTrip(ctx context.Context, req Request) (Response, error) {
	req.RequestID = uuid.NewString()
	payload, err := json.Marshal(req)
	if err != nil {
		return Response{}, err
	}
	ch := make(chan Response, 1)
	r.mu.Lock()
	r.pending[req.RequestID] = ch
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		delete(r.pending, req.RequestID)
		r.mu.Unlock()
	}()

	if err := publish(r.cli, r.cfg, r.log, r.cfg.RequestTopic, r.cfg.qos("request"), payload); err != nil {
		return Response{}, err
	}

	timer := time.NewTimer(r.cfg.timeout())
	defer timer.Stop()
	select {
	case resp := <-ch:
		if resp.Error != "" {
			return resp, fmt.Errorf("%w: %s", ErrRemote, resp.Error)
		}
		return resp, nil
	case <-timer.C:
		return Response{}, fmt.Errorf("%w: request %s", ErrResponseTimeout, req.RequestID)
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}

// Disconnect gracefully closes the MQTT connection.
func (r *Requester) Disconnect() {
	if r.cli != nil && r.cli.IsConnected() {
		r.cli.Disconnect(250)
	}
}
