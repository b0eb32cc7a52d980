package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

type client struct {
	cfg    gaconfig.AgentConfig
	store  *ModelStore
	demo   bool
	logger *slog.Logger
}

// New creates the production chat client. The model store, when
// provided, overrides the configured model name on every call so a
// persisted selection survives restarts.
func New(cfg gaconfig.AgentConfig, store *ModelStore, demo bool, logger *slog.Logger) Client {
	return &client{
		cfg:    cfg,
		store:  store,
		demo:   demo,
		logger: logger.With("system", "chat"),
	}
}

func (c *client) Demo() bool {
	return c.demo
}

// Chat flattens the system and user messages into a single prompt for
// the go-agents backend, applying the active-model override first.
func (c *client) Chat(ctx context.Context, system, user string) (string, error) {
	cfg := c.cfg
	if c.store != nil && cfg.Model != nil {
		if active := c.store.Active(); active != "" && active != cfg.Model.Name {
			model := *cfg.Model
			model.Name = active
			cfg.Model = &model
		}
	}

	a, err := agent.New(&cfg)
	if err != nil {
		return "", fmt.Errorf("%w: create agent: %v", ErrChat, err)
	}

	prompt := joinSections(system, user)
	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		c.logger.Warn("chat call failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrChat, err)
	}

	return resp.Content(), nil
}

func joinSections(sections ...string) string {
	var kept []string
	for _, section := range sections {
		if strings.TrimSpace(section) != "" {
			kept = append(kept, section)
		}
	}
	return strings.Join(kept, "\n\n")
}
