package config

import (
	"github.com/kilianp07/transport/core/model"
	"github.com/kilianp07/transport/core/transport"
)

// SolverConfig selects the default method and the session history size.
type SolverConfig struct {
	// DefaultMethod is a selector key such as "vogel" or "nw".
	DefaultMethod string `json:"default_method"`
	// Reference attaches the LP optimum to comparisons by default.
	Reference    bool `json:"reference"`
	HistoryLimit int  `json:"history_limit"`
}

func (c *SolverConfig) SetDefaults() {
	if c.DefaultMethod == "" {
		c.DefaultMethod = model.Vogel.Key()
	}
	if c.HistoryLimit == 0 {
		c.HistoryLimit = transport.DefaultHistoryLimit
	}
}

func (c SolverConfig) Validate() error {
	_, err := model.ParseMethod(c.DefaultMethod)
	return err
}

// Method returns the parsed default method.
func (c SolverConfig) Method() model.Method {
	m, err := model.ParseMethod(c.DefaultMethod)
	if err != nil {
		return model.Vogel
	}
	return m
}
