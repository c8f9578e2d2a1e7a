package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/kilianp07/transport/core/model"
	"github.com/kilianp07/transport/core/monitoring"
	"github.com/kilianp07/transport/core/transport"
	"github.com/kilianp07/transport/infra/logger"
)

// Solver is the part of transport.Manager the responder needs.
type Solver interface {
	SolveKey(ctx context.Context, selector string, p model.Problem) (model.Solution, error)
	Compare(ctx context.Context, p model.Problem, withReference bool) (model.Comparison, error)
}

// Responder answers solve requests received over MQTT.
type Responder struct {
	cfg    Config
	cli    pahoClient
	solver Solver
	log    logger.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// NewResponder connects to the broker and subscribes to the request topic.
func NewResponder(cfg Config, solver Solver) (*Responder, error) {
	if solver == nil {
		return nil, errors.New("mqtt: nil solver")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &Responder{cfg: cfg, solver: solver, log: logger.New("mqtt_responder"), ctx: ctx, cancel: cancel}
	cli, err := connect(cfg, r.log, cfg.RequestTopic, cfg.qos("request"), r.onRequest)
	if err != nil {
		cancel()
		return nil, err
	}
	r.cli = cli
	return r, nil
}

func (r *Responder) onRequest(_ paho.Client, msg paho.Message) {
	var req Request
	if err := json.Unmarshal(msg.Payload(), &req); err != nil {
		r.log.Errorf("failed to decode request: %v", err)
		return
	}
	if req.RequestID == "" {
		r.log.Warnf("dropping request without request_id")
		return
	}
	go func() {
		defer monitoring.Recover()
		r.reply(r.handle(req))
	}()
}

func (r *Responder) handle(req Request) Response {
	ctx, cancel := context.WithTimeout(r.ctx, 30*time.Second)
	defer cancel()
	resp := Response{RequestID: req.RequestID}
	var err error
	if req.Method == MethodCompare {
		var cmp model.Comparison
		cmp, err = r.solver.Compare(ctx, req.Problem, req.Reference)
		if err == nil {
			resp.Comparison = &cmp
		}
	} else {
		var sol model.Solution
		sol, err = r.solver.SolveKey(ctx, req.Method, req.Problem)
		if err == nil {
			resp.Solution = &sol
		}
	}
	if err != nil {
		resp.Error = err.Error()
		resp.Reason = transport.Reason(err)
		r.log.Warnf("request %s failed: %v", req.RequestID, err)
	}
	return resp
}

func (r *Responder) reply(resp Response) {
	payload, err := json.Marshal(resp)
	if err != nil {
		r.log.Errorf("encode response %s: %v", resp.RequestID, err)
		return
	}
	topic := r.cfg.ResponseTopic(resp.RequestID)
	if err := publish(r.cli, r.cfg, r.log, topic, r.cfg.qos("response"), payload); err != nil {
		return
	}
	r.log.Debugf("answered %s on %s", resp.RequestID, topic)
}

// Close cancels in-flight requests and disconnects.
func (r *Responder) Close() {
	r.cancel()
	if r.cli != nil && r.cli.IsConnected() {
		r.cli.Disconnect(250)
	}
}
