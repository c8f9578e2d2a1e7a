package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/transport/core/events"
	"github.com/kilianp07/transport/core/logger"
	"github.com/kilianp07/transport/core/transport"
	"github.com/kilianp07/transport/internal/eventbus"
)

// EventCounter counts bus events by type and validation reason.
type EventCounter struct {
	events *prometheus.CounterVec
}

// NewEventCounter registers the transport_events_total collector on reg,
// reusing it when already present.
func NewEventCounter(reg prometheus.Registerer) (*EventCounter, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c, err := registerOrReuse(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transport_events_total",
		Help: "Events observed on the internal bus",
	}, []string{"type", "detail"}))
	if err != nil {
		return nil, err
	}
	return &EventCounter{events: c}, nil
}

func (c *EventCounter) observe(ev eventbus.Event, log logger.Logger) {
	switch e := ev.(type) {
	case events.SolveEvent:
		c.events.WithLabelValues("solve", e.Method.Key()).Inc()
		if e.Truncated {
			log.Warnf("truncated %s solution observed", e.Method)
		}
	case events.ValidationEvent:
		c.events.WithLabelValues("validation", transport.Reason(e.Err)).Inc()
	case events.CompareEvent:
		c.events.WithLabelValues("compare", "").Inc()
		log.Debugw("comparison", map[string]any{"methods": len(e.Costs), "reference": e.Reference})
	}
}

// StartEventCollector subscribes to the event bus and counts events until
// the context is canceled or the bus is closed.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, counter *EventCounter, log logger.Logger) {
	if bus == nil || counter == nil {
		return
	}
	log = logger.OrNop(log)
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				counter.observe(ev, log)
			}
		}
	}()
}
