package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/apex-intel/apex/internal/chat"
	"github.com/apex-intel/apex/pkg/handlers"
	"github.com/apex-intel/apex/pkg/routes"
)

// SettingsHandler exposes the active-model selection and the configured
// model catalog.
type SettingsHandler struct {
	store  *chat.ModelStore
	models []chat.ModelInfo
	logger *slog.Logger
}

// ModelSettings reports the active model alongside the configured catalog.
type ModelSettings struct {
	Active string           `json:"active"`
	Models []chat.ModelInfo `json:"models"`
}

// SetModelRequest selects a new active model.
type SetModelRequest struct {
	Model string `json:"model"`
}

// NewSettingsHandler creates a handler over the model store and catalog.
func NewSettingsHandler(store *chat.ModelStore, models []chat.ModelInfo, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		store:  store,
		models: models,
		logger: logger.With("handler", "settings"),
	}
}

// Routes returns the route group for settings endpoints.
func (h *SettingsHandler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/settings",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/model", Handler: h.GetModel},
			{Method: "PUT", Pattern: "/model", Handler: h.SetModel},
		},
	}
}

// GetModel returns the active model and the available catalog.
func (h *SettingsHandler) GetModel(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, ModelSettings{
		Active: h.store.Active(),
		Models: h.models,
	})
}

// SetModel persists a new active model. When a catalog is configured
// the selection must name one of its entries.
func (h *SettingsHandler) SetModel(w http.ResponseWriter, r *http.Request) {
	var req SetModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}
	if req.Model == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}
	if len(h.models) > 0 && !h.inCatalog(req.Model) {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrUnknownModel)
		return
	}

	if err := h.store.SetActive(req.Model); err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	h.logger.Info("active model updated", "model", req.Model)
	handlers.RespondJSON(w, http.StatusOK, ModelSettings{
		Active: h.store.Active(),
		Models: h.models,
	})
}

func (h *SettingsHandler) inCatalog(name string) bool {
	for _, m := range h.models {
		if m.Name == name {
			return true
		}
	}
	return false
}
