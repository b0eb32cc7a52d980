package api

import (
	"net/http"

	"github.com/apex-intel/apex/internal/agent"
	"github.com/apex-intel/apex/internal/config"
	"github.com/apex-intel/apex/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		domain.Missions.Handler().Routes(),
		domain.Documents.Handler().Routes(),
		domain.Entities.Handler().Routes(),
		domain.Events.Handler().Routes(),
		domain.Runs.Handler().Routes(),
		agent.NewHandler(domain.Agent, runtime.Logger).Routes(),
		NewReferenceHandler(runtime.Logger).Routes(),
		NewSettingsHandler(runtime.ModelStore, cfg.LLM.Models, runtime.Logger).Routes(),
	)
}
