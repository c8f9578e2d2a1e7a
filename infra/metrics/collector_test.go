package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kilianp07/transport/core/events"
	"github.com/kilianp07/transport/core/logger"
	"github.com/kilianp07/transport/core/model"
	"github.com/kilianp07/transport/core/transport"
	"github.com/kilianp07/transport/internal/eventbus"
)

func TestStartEventCollector(t *testing.T) {
	counter, err := NewEventCounter(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("counter: %v", err)
	}
	bus := eventbus.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartEventCollector(ctx, bus, counter, logger.NopLogger{})

	bus.Publish(events.SolveEvent{Method: model.Vogel, TotalCost: 880})
	bus.Publish(events.ValidationEvent{Err: transport.ValidateTotals([]float64{1}, []float64{2})})
	bus.Publish(events.CompareEvent{Costs: map[model.Method]float64{model.Vogel: 880}})

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if testutil.ToFloat64(counter.events.WithLabelValues("compare", "")) == 1 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if v := testutil.ToFloat64(counter.events.WithLabelValues("solve", "vogel")); v != 1 {
		t.Errorf("solve events expected 1 got %f", v)
	}
	if v := testutil.ToFloat64(counter.events.WithLabelValues("validation", "unbalanced")); v != 1 {
		t.Errorf("validation events expected 1 got %f", v)
	}
	if v := testutil.ToFloat64(counter.events.WithLabelValues("compare", "")); v != 1 {
		t.Errorf("compare events expected 1 got %f", v)
	}
}
