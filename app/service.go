package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	solveapi "github.com/kilianp07/transport/api/solve"
	"github.com/kilianp07/transport/config"
	coremetrics "github.com/kilianp07/transport/core/metrics"
	coremon "github.com/kilianp07/transport/core/monitoring"
	"github.com/kilianp07/transport/core/transport"
	"github.com/kilianp07/transport/core/transport/history"
	"github.com/kilianp07/transport/infra/logger"
	"github.com/kilianp07/transport/infra/metrics"
	"github.com/kilianp07/transport/infra/monitoring"
	"github.com/kilianp07/transport/infra/mqtt"
	"github.com/kilianp07/transport/internal/eventbus"
)

// Service wires the solve manager to its HTTP, MQTT and metrics surfaces.
type Service struct {
	Manager *transport.Manager
	cfg     *config.Config
	bus     *eventbus.Bus
	sink    coremetrics.MetricsSink
	log     logger.Logger

	responder *mqtt.Responder
	server    *http.Server
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logger.Configure(cfg.Log.Options())
	logg := logger.New("service")

	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	store, err := history.Open(cfg.History.Options())
	if err != nil {
		return nil, fmt.Errorf("history store: %w", err)
	}

	bus := eventbus.New()
	manager := transport.NewManager(logger.New("manager"), sink, bus)
	manager.SetStore(store)
	manager.SetHistoryLimit(cfg.Solver.HistoryLimit)

	svc := &Service{Manager: manager, cfg: cfg, bus: bus, sink: sink, log: logg}
	if cfg.MQTTEnabled() {
		resp, err := mqtt.NewResponder(cfg.MQTT, manager)
		if err != nil {
			_ = svc.Close()
			return nil, fmt.Errorf("mqtt responder: %w", err)
		}
		svc.responder = resp
	}
	if cfg.HTTP.Address != "" {
		svc.server = &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           svc.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       cfg.HTTP.Timeout(),
			WriteTimeout:      cfg.HTTP.Timeout(),
		}
	}
	return svc, nil
}

// Handler returns the HTTP routes of the service.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	solveapi.Register(mux, s.Manager, solveapi.Options{
		Token:         s.cfg.HTTP.Token,
		DefaultMethod: s.cfg.Solver.Method(),
		Reference:     s.cfg.Solver.Reference,
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Run starts the servers and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	defer coremon.Recover()

	counter, err := metrics.NewEventCounter(nil)
	if err != nil {
		return fmt.Errorf("event counter: %w", err)
	}
	metrics.StartEventCollector(ctx, s.bus, counter, logger.New("events"))

	if port := s.cfg.Metrics.PrometheusPort; port != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, port); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	if s.server != nil {
		go func() {
			s.log.Infof("serving solve API on %s", s.server.Addr)
			if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("http shutdown: %v", err)
		}
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.responder != nil {
		s.responder.Close()
	}
	err := s.Manager.Close()
	if c, ok := s.sink.(coremetrics.Closer); ok {
		c.Close()
	}
	coremon.Flush(2 * time.Second)
	return err
}
