package metrics

import (
	"fmt"

	"github.com/kilianp07/transport/core/factory"
)

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks" yaml:"sinks"`
	// PrometheusPort exposes /metrics when non-empty, e.g. ":9090".
	PrometheusPort string `json:"prometheus_port" yaml:"prometheus_port"`
}

// Validate checks that every sink names a type.
func (c Config) Validate() error {
	for i, s := range c.Sinks {
		if s.Type == "" {
			return fmt.Errorf("metrics.sinks[%d]: type required", i)
		}
	}
	return nil
}
