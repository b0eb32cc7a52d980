package events

import (
	"encoding/json"
	"net/url"

	"github.com/google/uuid"

	"github.com/apex-intel/apex/pkg/query"
	"github.com/apex-intel/apex/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "events", "ev").
	Project("id", "ID").
	Project("mission_id", "MissionID").
	Project("title", "Title").
	Project("description", "Description").
	Project("timestamp", "Timestamp").
	Project("location", "Location").
	Project("involved_entity_ids", "InvolvedEntityIDs").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "Timestamp",
	Descending: false,
}

// Filters contains optional filtering criteria for event queries.
// Nil fields are ignored.
type Filters struct {
	MissionID *uuid.UUID `json:"mission_id,omitempty"`
	Title     *string    `json:"title,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("MissionID", f.MissionID).
		WhereContains("Title", f.Title)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if m := values.Get("mission_id"); m != "" {
		if id, err := uuid.Parse(m); err == nil {
			f.MissionID = &id
		}
	}

	if t := values.Get("title"); t != "" {
		f.Title = &t
	}

	return f
}

func scanEvent(s repository.Scanner) (Event, error) {
	var ev Event
	var involved []byte

	err := s.Scan(
		&ev.ID,
		&ev.MissionID,
		&ev.Title,
		&ev.Description,
		&ev.Timestamp,
		&ev.Location,
		&involved,
		&ev.CreatedAt,
	)
	if err != nil {
		return ev, err
	}

	if involved != nil {
		if err := json.Unmarshal(involved, &ev.InvolvedEntityIDs); err != nil {
			return ev, err
		}
	}
	if ev.InvolvedEntityIDs == nil {
		ev.InvolvedEntityIDs = []uuid.UUID{}
	}

	return ev, nil
}

func marshalEntityIDs(ids []uuid.UUID) ([]byte, error) {
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return json.Marshal(ids)
}
