package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvGraphEnabled = "APEX_GRAPH_ENABLED"
	EnvGraphBaseURL = "APEX_GRAPH_BASE_URL"
	EnvGraphTimeout = "APEX_GRAPH_TIMEOUT"
)

// GraphConfig holds connection settings for the knowledge graph
// service. When disabled, agent cycles skip graph ingest entirely.
type GraphConfig struct {
	Enabled bool   `toml:"enabled"`
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *GraphConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *GraphConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *GraphConfig) Merge(overlay *GraphConfig) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *GraphConfig) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:8088"
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
}

func (c *GraphConfig) loadEnv() {
	if v := os.Getenv(EnvGraphEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Enabled = enabled
		}
	}
	if v := os.Getenv(EnvGraphBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvGraphTimeout); v != "" {
		c.Timeout = v
	}
}

func (c *GraphConfig) validate() error {
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
