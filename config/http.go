package config

import "time"

// HTTPConfig configures the solve API.
type HTTPConfig struct {
	// Address is the listen address. Empty disables the server.
	Address string `json:"address"`
	// Token enables bearer authentication when set.
	Token          string `json:"token"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

func (c *HTTPConfig) SetDefaults() {
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
}

// Timeout bounds reading a request and writing its response.
func (c HTTPConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
