// Package runs persists the outcome of each agent analysis cycle.
package runs

import (
	"time"

	"github.com/google/uuid"
)

// Run status values.
const (
	StatusQueued    = "queued"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// AgentRun is the persisted record of one analysis cycle. A run whose
// guardrail verdict is blocked is stored as failed.
type AgentRun struct {
	ID              uuid.UUID `json:"id"`
	MissionID       uuid.UUID `json:"mission_id"`
	Status          string    `json:"status"`
	Summary         string    `json:"summary"`
	NextSteps       string    `json:"next_steps"`
	GuardrailStatus string    `json:"guardrail_status"`
	GuardrailIssues []string  `json:"guardrail_issues"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateCommand carries the fields for recording a completed cycle.
type CreateCommand struct {
	MissionID       uuid.UUID
	Status          string
	Summary         string
	NextSteps       string
	GuardrailStatus string
	GuardrailIssues []string
}
