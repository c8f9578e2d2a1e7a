package config

import (
	"fmt"

	"github.com/kilianp07/transport/core/transport/history"
)

// HistoryConfig defines settings for the solution history store and its rotation.
type HistoryConfig struct {
	// Backend selects the store type: "memory", "jsonl", "jsonl_rotating" or "sqlite".
	Backend string `json:"backend"`
	// Path is the file location of the store.
	Path string `json:"path"`
	// MaxSizeMB triggers rotation when the file exceeds this size in megabytes.
	MaxSizeMB int `json:"max_size_mb"`
	// MaxBackups limits the number of rotated files to keep.
	MaxBackups int `json:"max_backups"`
	// MaxAgeDays removes rotated files older than this number of days.
	MaxAgeDays int `json:"max_age_days"`
}

// SetDefaults applies sane defaults.
func (c *HistoryConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "memory"
	}
	if c.Path == "" {
		switch c.Backend {
		case "sqlite":
			c.Path = "solutions.db"
		case "jsonl", "jsonl_rotating":
			c.Path = "solutions.jsonl"
		}
	}
	if c.Backend == "jsonl_rotating" && c.MaxSizeMB <= 0 {
		c.MaxSizeMB = 10
	}
}

// Validate checks mandatory fields.
func (c HistoryConfig) Validate() error {
	switch c.Backend {
	case "memory":
		return nil
	case "jsonl", "jsonl_rotating", "sqlite":
	default:
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

// Options converts the section for history.Open.
func (c HistoryConfig) Options() history.Options {
	return history.Options{
		Backend:    c.Backend,
		Path:       c.Path,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
	}
}
