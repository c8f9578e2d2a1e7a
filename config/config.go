package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/transport/core/metrics"
	"github.com/kilianp07/transport/infra/monitoring"
	"github.com/kilianp07/transport/infra/mqtt"
)

type Config struct {
	Solver  SolverConfig            `json:"solver"`
	History HistoryConfig           `json:"history"`
	Metrics metrics.Config          `json:"metrics"`
	MQTT    mqtt.Config             `json:"mqtt"`
	HTTP    HTTPConfig              `json:"http"`
	Sentry  monitoring.SentryConfig `json:"sentry"`
	Log     LogConfig               `json:"log"`
}

// Load reads a yaml or json file. An empty path loads defaults and
// environment overrides only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		var parser koanf.Parser
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults applies the defaults of every section.
func (c *Config) SetDefaults() {
	c.Solver.SetDefaults()
	c.History.SetDefaults()
	c.HTTP.SetDefaults()
	c.Log.SetDefaults()
	if c.MQTTEnabled() {
		c.MQTT.SetDefaults()
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Solver.Validate(); err != nil {
		return fmt.Errorf("solver: %w", err)
	}
	if err := c.History.Validate(); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	if c.MQTTEnabled() {
		if err := c.MQTT.Validate(); err != nil {
			return err
		}
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if c.Sentry.TracesSampleRate < 0 || c.Sentry.TracesSampleRate > 1 {
		return fmt.Errorf("sentry: traces_sample_rate %v out of [0,1]", c.Sentry.TracesSampleRate)
	}
	return nil
}

// MQTTEnabled reports whether a broker is configured.
func (c Config) MQTTEnabled() bool { return c.MQTT.Broker != "" }
