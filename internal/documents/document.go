// Package documents manages the text documents attached to a mission
// for analysis.
package documents

import (
	"time"

	"github.com/google/uuid"
)

// Document is a single mission source text. Documents flagged with
// IncludeInAnalysis participate in agent cycles; the rest are retained
// but ignored.
type Document struct {
	ID                uuid.UUID `json:"id"`
	MissionID         uuid.UUID `json:"mission_id"`
	Title             *string   `json:"title,omitempty"`
	Content           string    `json:"content"`
	IncludeInAnalysis bool      `json:"include_in_analysis"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CreateCommand carries the fields for registering a document.
// IncludeInAnalysis defaults to true when the field is omitted.
type CreateCommand struct {
	MissionID         uuid.UUID `json:"mission_id"`
	Title             *string   `json:"title,omitempty"`
	Content           string    `json:"content"`
	IncludeInAnalysis *bool     `json:"include_in_analysis,omitempty"`
}

// UpdateCommand carries optional document changes. Nil fields are
// left untouched.
type UpdateCommand struct {
	Title             *string `json:"title,omitempty"`
	Content           *string `json:"content,omitempty"`
	IncludeInAnalysis *bool   `json:"include_in_analysis,omitempty"`
}
