package api

import (
	"github.com/apex-intel/apex/internal/config"
	"github.com/apex-intel/apex/internal/infrastructure"
	"github.com/apex-intel/apex/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle:  infra.Lifecycle,
			Logger:     infra.Logger.With("module", "api"),
			Database:   infra.Database,
			Chat:       infra.Chat,
			ModelStore: infra.ModelStore,
			Graph:      infra.Graph,
		},
		Pagination: cfg.API.Pagination,
	}
}
