// Package missions implements the mission domain: mission lifecycle,
// authority pivots, and mission-level policy enforcement.
package missions

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/apex-intel/apex/internal/policy"
)

// TemplateReportLimit bounds the retained template reports per mission,
// most recent first.
const TemplateReportLimit = 10

// Mission represents one analysis mission operating under an authority
// lane. OriginalAuthority is set at creation and never changes;
// PrimaryAuthority tracks the current lane and moves only via pivots.
type Mission struct {
	ID                uuid.UUID        `json:"id"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	PrimaryAuthority  string           `json:"primary_authority"`
	OriginalAuthority string           `json:"original_authority"`
	IntTypes          []string         `json:"int_types"`
	KGNamespace       *string          `json:"kg_namespace,omitempty"`
	GapAnalysis       json.RawMessage  `json:"gap_analysis,omitempty"`
	TemplateReports   []TemplateReport `json:"template_reports"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// TemplateReport is one rendered report retained on the mission.
type TemplateReport struct {
	TemplateKey string    `json:"template_key"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuthorityPivot is an immutable audit row recording one authority
// transition. Risk and conditions are copied from the matched pivot
// rule at pivot time.
type AuthorityPivot struct {
	ID            uuid.UUID `json:"id"`
	MissionID     uuid.UUID `json:"mission_id"`
	FromAuthority string    `json:"from_authority"`
	ToAuthority   string    `json:"to_authority"`
	Justification string    `json:"justification"`
	Actor         *string   `json:"actor,omitempty"`
	Risk          string    `json:"risk"`
	Conditions    []string  `json:"conditions"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateCommand carries the data for a new mission. The initial
// authority becomes both primary and original.
type CreateCommand struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	PrimaryAuthority string   `json:"primary_authority"`
	IntTypes         []string `json:"int_types"`
}

// UpdateCommand carries mutable mission fields. Nil fields are left
// unchanged. Authority is deliberately absent; it moves only through
// the pivot operation.
type UpdateCommand struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	IntTypes    *[]string `json:"int_types,omitempty"`
}

// PivotCommand requests an authority transition.
type PivotCommand struct {
	TargetAuthority string  `json:"target_authority"`
	Justification   string  `json:"justification"`
	Actor           *string `json:"actor,omitempty"`
}

// PivotResult returns the updated mission with its new audit row.
type PivotResult struct {
	Mission *Mission        `json:"mission"`
	Pivot   *AuthorityPivot `json:"pivot"`
}

// HistoryPayload pairs structured history entries with their rendered
// prompt lines.
type HistoryPayload struct {
	Entries []policy.HistoryEntry `json:"entries"`
	Lines   []string              `json:"lines"`
}
