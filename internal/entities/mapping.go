package entities

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/apex-intel/apex/pkg/query"
	"github.com/apex-intel/apex/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "entities", "e").
	Project("id", "ID").
	Project("mission_id", "MissionID").
	Project("name", "Name").
	Project("type", "Type").
	Project("description", "Description").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "Name",
	Descending: false,
}

// Filters contains optional filtering criteria for entity queries.
// Nil fields are ignored.
type Filters struct {
	MissionID *uuid.UUID `json:"mission_id,omitempty"`
	Type      *string    `json:"type,omitempty"`
	Name      *string    `json:"name,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("MissionID", f.MissionID).
		WhereEquals("Type", f.Type).
		WhereContains("Name", f.Name)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if m := values.Get("mission_id"); m != "" {
		if id, err := uuid.Parse(m); err == nil {
			f.MissionID = &id
		}
	}

	if t := values.Get("type"); t != "" {
		f.Type = &t
	}

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	return f
}

func scanEntity(s repository.Scanner) (Entity, error) {
	var e Entity
	err := s.Scan(
		&e.ID,
		&e.MissionID,
		&e.Name,
		&e.Type,
		&e.Description,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}
