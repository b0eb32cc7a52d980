package documents

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/apex-intel/apex/pkg/query"
	"github.com/apex-intel/apex/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "documents", "d").
	Project("id", "ID").
	Project("mission_id", "MissionID").
	Project("title", "Title").
	Project("content", "Content").
	Project("include_in_analysis", "IncludeInAnalysis").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

var analysisSort = query.SortField{
	Field:      "CreatedAt",
	Descending: false,
}

// Filters contains optional filtering criteria for document queries.
// Nil fields are ignored.
type Filters struct {
	MissionID         *uuid.UUID `json:"mission_id,omitempty"`
	Title             *string    `json:"title,omitempty"`
	IncludeInAnalysis *bool      `json:"include_in_analysis,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("MissionID", f.MissionID).
		WhereContains("Title", f.Title).
		WhereEquals("IncludeInAnalysis", f.IncludeInAnalysis)
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

	if inc := values.Get("include_in_analysis"); inc != "" {
		if v, err := strconv.ParseBool(inc); err == nil {
			f.IncludeInAnalysis = &v
		}
	}

	return f
}

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.MissionID,
		&d.Title,
		&d.Content,
		&d.IncludeInAnalysis,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}
