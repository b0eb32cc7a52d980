package api

import (
	"github.com/apex-intel/apex/internal/agent"
	"github.com/apex-intel/apex/internal/documents"
	"github.com/apex-intel/apex/internal/entities"
	"github.com/apex-intel/apex/internal/events"
	"github.com/apex-intel/apex/internal/missions"
	"github.com/apex-intel/apex/internal/runs"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Missions  missions.System
	Documents documents.System
	Entities  entities.System
	Events    events.System
	Runs      runs.System
	Agent     *agent.Orchestrator
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	missionsSystem := missions.New(db, runtime.Logger, runtime.Pagination)
	documentsSystem := documents.New(db, runtime.Logger, runtime.Pagination)
	entitiesSystem := entities.New(db, runtime.Logger, runtime.Pagination)
	eventsSystem := events.New(db, runtime.Logger, runtime.Pagination)
	runsSystem := runs.New(db, runtime.Logger, runtime.Pagination)

	orchestrator := agent.New(agent.Config{
		Missions:  missionsSystem,
		Documents: documentsSystem,
		Entities:  entitiesSystem,
		Events:    eventsSystem,
		Runs:      runsSystem,
		Chat:      runtime.Chat,
		Graph:     runtime.Graph,
		Logger:    runtime.Logger,
	})

	return &Domain{
		Missions:  missionsSystem,
		Documents: documentsSystem,
		Entities:  entitiesSystem,
		Events:    eventsSystem,
		Runs:      runsSystem,
		Agent:     orchestrator,
	}
}
