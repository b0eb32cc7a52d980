package agent

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/apex-intel/apex/internal/missions"
	"github.com/apex-intel/apex/pkg/handlers"
	"github.com/apex-intel/apex/pkg/routes"
)

// ErrInvalidBody is returned for unparseable run requests.
var ErrInvalidBody = errors.New("invalid request body")

// RunRequest optionally selects the analysis profile for a cycle.
type RunRequest struct {
	Profile string `json:"profile"`
}

// ReportRequest selects the report template to render.
type ReportRequest struct {
	TemplateKey string `json:"template_key"`
}

// Handler exposes the agent cycle trigger endpoint.
type Handler struct {
	orchestrator *Orchestrator
	logger       *slog.Logger
}

// NewHandler creates a Handler for the given orchestrator.
func NewHandler(orchestrator *Orchestrator, logger *slog.Logger) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		logger:       logger.With("handler", "agent"),
	}
}

// Routes returns the route group definition for agent endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/missions",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/{id}/agent-run", Handler: h.Run},
			{Method: "POST", Pattern: "/{id}/template-report", Handler: h.GenerateReport},
		},
	}
}

// Run executes a full analysis cycle for the mission. The profile can
// come from the JSON body or the profile query parameter; it defaults
// to humint.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	profile := req.Profile
	if profile == "" {
		profile = r.URL.Query().Get("profile")
	}

	result, err := h.orchestrator.Execute(r.Context(), id, profile)
	if err != nil {
		handlers.RespondError(w, h.logger, missions.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// GenerateReport renders a template report for the mission. The
// template key can come from the JSON body or the template query
// parameter.
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	key := req.TemplateKey
	if key == "" {
		key = r.URL.Query().Get("template")
	}

	result, err := h.orchestrator.GenerateReport(r.Context(), id, key)
	if err != nil {
		handlers.RespondError(w, h.logger, reportHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func reportHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnknownTemplate):
		return http.StatusNotFound
	case errors.Is(err, ErrTemplateNotAllowed):
		return http.StatusForbidden
	default:
		return missions.MapHTTPStatus(err)
	}
}
