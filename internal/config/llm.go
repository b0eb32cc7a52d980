package config

import (
	"fmt"
	"os"
	"strconv"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/apex-intel/apex/internal/chat"
)

const (
	EnvLLMDemo           = "APEX_LLM_DEMO"
	EnvLLMModelStorePath = "APEX_LLM_MODEL_STORE_PATH"
)

// LLMConfig controls the chat client: demo mode, the runtime model
// override store, the advertised model catalog, and the underlying
// go-agents agent configuration.
type LLMConfig struct {
	Demo           bool                 `toml:"demo"`
	ModelStorePath string               `toml:"model_store_path"`
	Models         []chat.ModelInfo     `toml:"models"`
	Agent          gaconfig.AgentConfig `toml:"agent"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *LLMConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := FinalizeAgent(&c.Agent); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *LLMConfig) Merge(overlay *LLMConfig) {
	if overlay.Demo {
		c.Demo = true
	}
	if overlay.ModelStorePath != "" {
		c.ModelStorePath = overlay.ModelStorePath
	}
	if len(overlay.Models) > 0 {
		c.Models = overlay.Models
	}
	c.Agent.Merge(&overlay.Agent)
}

func (c *LLMConfig) loadDefaults() {
	if c.ModelStorePath == "" {
		c.ModelStorePath = "data/active_model.json"
	}
}

func (c *LLMConfig) loadEnv() {
	if v := os.Getenv(EnvLLMDemo); v != "" {
		if demo, err := strconv.ParseBool(v); err == nil {
			c.Demo = demo
		}
	}
	if v := os.Getenv(EnvLLMModelStorePath); v != "" {
		c.ModelStorePath = v
	}
}

// FallbackModel returns the configured agent model name used when no
// runtime override exists.
func (c *LLMConfig) FallbackModel() string {
	if c.Agent.Model != nil {
		return c.Agent.Model.Name
	}
	return ""
}
