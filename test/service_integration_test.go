package test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kilianp07/transport/app"
	"github.com/kilianp07/transport/config"
	"github.com/kilianp07/transport/core/factory"
	"github.com/kilianp07/transport/core/model"
	"github.com/kilianp07/transport/core/transport/history"
	"github.com/kilianp07/transport/infra/metrics"
	"github.com/kilianp07/transport/test/util"
)

const problemJSON = `{"costs":[[8,6,10,9],[9,12,13,7],[14,9,16,5]],"supply":[20,30,50],"demand":[10,40,30,20]}`

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := l.Addr().String()
	_ = l.Close()
	return addr
}

// TestServiceEndToEnd runs the service with a rotating jsonl history and a
// Prometheus sink, solves over HTTP and checks the history and metrics.
func TestServiceEndToEnd(t *testing.T) {
	cfg := &config.Config{
		History: config.HistoryConfig{Backend: "jsonl_rotating", Path: filepath.Join(t.TempDir(), "solutions.jsonl")},
		HTTP:    config.HTTPConfig{Address: freeAddr(t), Token: "tok"},
	}
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "prometheus"}}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config: %v", err)
	}

	svc, err := app.New(cfg)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	defer func() { _ = svc.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = svc.Run(ctx) }()

	base := "http://" + cfg.HTTP.Address
	waitCtx, waitCancel := context.WithTimeout(ctx, util.HTTPTimeout)
	defer waitCancel()
	if err := util.WaitForHTTP(waitCtx, base+"/healthz"); err != nil {
		t.Fatal(err)
	}

	req, _ := http.NewRequest(http.MethodPost, base+"/api/compare?reference=true", strings.NewReader(problemJSON))
	req.Header.Set("Authorization", "Bearer tok")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	var cmp model.Comparison
	if err := json.NewDecoder(resp.Body).Decode(&cmp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	_ = resp.Body.Close()
	if len(cmp.Solutions) != 3 || cmp.Reference == nil {
		t.Fatalf("unexpected comparison: %+v", cmp)
	}

	recs, err := svc.Manager.Store().Query(ctx, history.Query{NewestFirst: true})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 4 {
		t.Fatalf("expected 4 history records, got %d", len(recs))
	}

	promSrv := httptest.NewServer(metrics.Handler(nil))
	defer promSrv.Close()
	metricCtx, metricCancel := context.WithTimeout(ctx, util.MetricTimeout)
	defer metricCancel()
	for _, name := range []string{
		`transport_solution_cost{method="vogel"} 880`,
		`transport_solve_duration_seconds_count{method="simplex"}`,
		`transport_events_total{detail="",type="compare"}`,
	} {
		if err := util.WaitForMetric(metricCtx, promSrv.URL, name); err != nil {
			t.Fatal(err)
		}
	}
}
