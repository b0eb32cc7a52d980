// Package infrastructure provides core service initialization for application startup.
// It assembles the shared dependencies (logging, database, chat client, knowledge
// graph client) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/apex-intel/apex/internal/chat"
	"github.com/apex-intel/apex/internal/config"
	"github.com/apex-intel/apex/internal/kg"
	"github.com/apex-intel/apex/pkg/database"
	"github.com/apex-intel/apex/pkg/lifecycle"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, database access, and external service clients.
type Infrastructure struct {
	Lifecycle  *lifecycle.Coordinator
	Logger     *slog.Logger
	Database   database.System
	Chat       chat.Client
	ModelStore *chat.ModelStore
	Graph      kg.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store := chat.NewModelStore(cfg.LLM.ModelStorePath, cfg.LLM.FallbackModel(), logger)
	chatClient := chat.New(cfg.LLM.Agent, store, cfg.LLM.Demo, logger)

	var graph kg.System
	if cfg.Graph.Enabled {
		graph = kg.NewClient(cfg.Graph.BaseURL, cfg.Graph.TimeoutDuration(), logger)
	}

	return &Infrastructure{
		Lifecycle:  lc,
		Logger:     logger,
		Database:   db,
		Chat:       chatClient,
		ModelStore: store,
		Graph:      graph,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	return nil
}
