package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/transport/core/metrics"
	"github.com/kilianp07/transport/infra/logger"
)

// InfluxConfig holds the connection settings of an InfluxSink.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxSink writes solver events to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordSolution writes one transport_solution point.
func (s *InfluxSink) RecordSolution(ev coremetrics.SolutionEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("transport_solution").
		AddTag("method", ev.Method.Key()).
		AddTag("degenerate", strconv.FormatBool(ev.Degenerate)).
		AddTag("truncated", strconv.FormatBool(ev.Truncated)).
		AddField("total_cost", round3(ev.TotalCost)).
		AddField("origins", ev.Origins).
		AddField("destinations", ev.Dests).
		AddField("basic_cells", ev.BasicCells).
		AddField("duration_ms", round3(float64(ev.Duration.Microseconds())/1000)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordValidation writes a transport_rejected point with both totals.
func (s *InfluxSink) RecordValidation(ev coremetrics.ValidationEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("transport_rejected").
		AddTag("reason", ev.Reason).
		AddField("total_supply", round3(ev.Supply)).
		AddField("total_demand", round3(ev.Demand)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordComparison writes one transport_comparison point per method.
func (s *InfluxSink) RecordComparison(ev coremetrics.ComparisonEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for m, cost := range ev.Costs {
		p := write.NewPointWithMeasurement("transport_comparison").
			AddTag("method", m.Key()).
			AddField("total_cost", round3(cost))
		if g, ok := ev.Gap[m]; ok {
			p = p.AddField("reference_cost", round3(ev.Reference)).
				AddField("gap_ratio", round3(g))
		}
		if err := s.writeAPI.WritePoint(ctx, p.SetTime(ev.Time)); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying HTTP client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
