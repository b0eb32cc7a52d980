package api

import (
	"log/slog"
	"net/http"

	"github.com/apex-intel/apex/internal/authority"
	"github.com/apex-intel/apex/internal/ints"
	"github.com/apex-intel/apex/pkg/handlers"
	"github.com/apex-intel/apex/pkg/routes"
)

// ReferenceHandler serves the static authority, pivot-rule, and
// INT-type registries.
type ReferenceHandler struct {
	logger *slog.Logger
}

// NewReferenceHandler creates a handler over the in-process registries.
func NewReferenceHandler(logger *slog.Logger) *ReferenceHandler {
	return &ReferenceHandler{
		logger: logger.With("handler", "reference"),
	}
}

// Routes returns the route groups for the reference endpoints.
func (h *ReferenceHandler) Routes() routes.Group {
	return routes.Group{
		Children: []routes.Group{
			{
				Prefix: "/authorities",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.ListAuthorities},
					{Method: "GET", Pattern: "/pivot-rules", Handler: h.ListPivotRules},
					{Method: "GET", Pattern: "/{id}", Handler: h.FindAuthority},
					{Method: "GET", Pattern: "/{id}/pivots", Handler: h.AuthorityPivots},
				},
			},
			{
				Prefix: "/int-types",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.ListIntTypes},
					{Method: "GET", Pattern: "/{code}", Handler: h.FindIntType},
				},
			},
		},
	}
}

// ListAuthorities returns every authority lane descriptor.
func (h *ReferenceHandler) ListAuthorities(w http.ResponseWriter, r *http.Request) {
	lanes := authority.All()
	descriptors := make([]authority.Descriptor, 0, len(lanes))
	for _, lane := range lanes {
		descriptors = append(descriptors, authority.DescriptorFor(string(lane)))
	}

	handlers.RespondJSON(w, http.StatusOK, descriptors)
}

// FindAuthority returns a single lane descriptor. Legacy lane aliases
// resolve to their canonical descriptor.
func (h *ReferenceHandler) FindAuthority(w http.ResponseWriter, r *http.Request) {
	descriptor, ok := authority.LookupDescriptor(r.PathValue("id"))
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrUnknownReference)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, descriptor)
}

// ListPivotRules returns the full pivot-rule catalog, blocked
// transitions included.
func (h *ReferenceHandler) ListPivotRules(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, authority.Rules())
}

// AuthorityPivots returns the permitted pivots departing a lane.
func (h *ReferenceHandler) AuthorityPivots(w http.ResponseWriter, r *http.Request) {
	lane, ok := authority.Parse(r.PathValue("id"))
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrUnknownReference)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, authority.AllowedPivotsFrom(lane))
}

// ListIntTypes returns the full INT discipline taxonomy.
func (h *ReferenceHandler) ListIntTypes(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, ints.Registry())
}

// FindIntType returns one INT discipline by code.
func (h *ReferenceHandler) FindIntType(w http.ResponseWriter, r *http.Request) {
	metadata, ok := ints.Lookup(r.PathValue("code"))
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrUnknownReference)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, metadata)
}
