package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/transport/core/metrics"
	"github.com/kilianp07/transport/core/model"
)

type bodyRecorder struct {
	mu     sync.Mutex
	bodies []string
}

func (b *bodyRecorder) server(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.bodies = append(b.bodies, strings.TrimSpace(string(data)))
		b.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestInfluxSink_RecordSolution(t *testing.T) {
	rec := &bodyRecorder{}
	srv := rec.server(t)
	sink := NewInfluxSink(InfluxConfig{URL: srv.URL, Token: "token", Org: "org", Bucket: "bucket"})
	now := time.Now()
	ev := coremetrics.SolutionEvent{
		Method:     model.Vogel,
		Origins:    3,
		Dests:      4,
		TotalCost:  880,
		BasicCells: 6,
		Duration:   1500 * time.Microsecond,
		Time:       now,
	}
	if err := sink.RecordSolution(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}
	p := write.NewPointWithMeasurement("transport_solution").
		AddTag("method", "vogel").
		AddTag("degenerate", "false").
		AddTag("truncated", "false").
		AddField("total_cost", 880.0).
		AddField("origins", 3).
		AddField("destinations", 4).
		AddField("basic_cells", 6).
		AddField("duration_ms", 1.5).
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if len(rec.bodies) != 1 || rec.bodies[0] != expected {
		t.Errorf("unexpected bodies: %#v", rec.bodies)
	}
}

func TestInfluxSink_RecordValidation(t *testing.T) {
	rec := &bodyRecorder{}
	srv := rec.server(t)
	sink := NewInfluxSink(InfluxConfig{URL: srv.URL + "/api/v2/write", Org: "org", Bucket: "bucket"})
	now := time.Now()
	if err := sink.RecordValidation(coremetrics.ValidationEvent{Reason: "unbalanced", Supply: 20, Demand: 10, Time: now}); err != nil {
		t.Fatalf("record: %v", err)
	}
	p := write.NewPointWithMeasurement("transport_rejected").
		AddTag("reason", "unbalanced").
		AddField("total_supply", 20.0).
		AddField("total_demand", 10.0).
		SetTime(now)
	exp := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if len(rec.bodies) != 1 || rec.bodies[0] != exp {
		t.Errorf("bodies: %#v", rec.bodies)
	}
}

func TestInfluxSink_RecordComparison(t *testing.T) {
	rec := &bodyRecorder{}
	srv := rec.server(t)
	sink := NewInfluxSink(InfluxConfig{URL: srv.URL, Org: "org", Bucket: "bucket"})
	now := time.Now()
	ev := coremetrics.ComparisonEvent{
		Costs:     map[model.Method]float64{model.NorthwestCorner: 1080},
		Reference: 800,
		Gap:       map[model.Method]float64{model.NorthwestCorner: 0.35},
		Time:      now,
	}
	if err := sink.RecordComparison(ev); err != nil {
		t.Fatalf("record: %v", err)
	}
	p := write.NewPointWithMeasurement("transport_comparison").
		AddTag("method", "northwest").
		AddField("total_cost", 1080.0).
		AddField("reference_cost", 800.0).
		AddField("gap_ratio", 0.35).
		SetTime(now)
	exp := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if len(rec.bodies) != 1 || rec.bodies[0] != exp {
		t.Errorf("bodies: %#v", rec.bodies)
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(InfluxConfig{URL: srv.URL + "/api/v2/write", Token: "tok", Org: "org", Bucket: "bucket"})
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}
