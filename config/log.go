package config

import (
	"fmt"
	"strings"

	"github.com/kilianp07/transport/infra/logger"
)

// LogConfig sets the zerolog level and output format.
type LogConfig struct {
	Level   string `json:"level"`
	Console bool   `json:"console"`
}

func (c *LogConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	c.Level = strings.ToLower(c.Level)
}

func (c LogConfig) Validate() error {
	switch c.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
		return nil
	}
	return fmt.Errorf("unknown level %q", c.Level)
}

// Options converts the section for logger.Configure.
func (c LogConfig) Options() logger.Options {
	return logger.Options{Level: c.Level, Console: c.Console}
}
