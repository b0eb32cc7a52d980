package runs

import (
	"encoding/json"
	"net/url"

	"github.com/google/uuid"

	"github.com/apex-intel/apex/pkg/query"
	"github.com/apex-intel/apex/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "agent_runs", "r").
	Project("id", "ID").
	Project("mission_id", "MissionID").
	Project("status", "Status").
	Project("summary", "Summary").
	Project("next_steps", "NextSteps").
	Project("guardrail_status", "GuardrailStatus").
	Project("guardrail_issues", "GuardrailIssues").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for run queries.
// Nil fields are ignored.
type Filters struct {
	MissionID       *uuid.UUID `json:"mission_id,omitempty"`
	Status          *string    `json:"status,omitempty"`
	GuardrailStatus *string    `json:"guardrail_status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("MissionID", f.MissionID).
		WhereEquals("Status", f.Status).
		WhereEquals("GuardrailStatus", f.GuardrailStatus)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if m := values.Get("mission_id"); m != "" {
		if id, err := uuid.Parse(m); err == nil {
			f.MissionID = &id
		}
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if g := values.Get("guardrail_status"); g != "" {
		f.GuardrailStatus = &g
	}

	return f
}

func scanRun(s repository.Scanner) (AgentRun, error) {
	var r AgentRun
	var issues []byte

	err := s.Scan(
		&r.ID,
		&r.MissionID,
		&r.Status,
		&r.Summary,
		&r.NextSteps,
		&r.GuardrailStatus,
		&issues,
		&r.CreatedAt,
	)
	if err != nil {
		return r, err
	}

	if issues != nil {
		if err := json.Unmarshal(issues, &r.GuardrailIssues); err != nil {
			return r, err
		}
	}
	if r.GuardrailIssues == nil {
		r.GuardrailIssues = []string{}
	}

	return r, nil
}
