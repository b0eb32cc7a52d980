// Package agent orchestrates the mission analysis cycle: context
// assembly, model extraction, gap and cross-document analysis,
// summary composition, and guardrail evaluation.
package agent

import (
	"encoding/json"

	"github.com/apex-intel/apex/internal/entities"
	"github.com/apex-intel/apex/internal/events"
	"github.com/apex-intel/apex/internal/guardrail"
	"github.com/apex-intel/apex/internal/runs"
)

// Analysis profiles steering the model's extraction focus.
const (
	ProfileHumint = "humint"
	ProfileSigint = "sigint"
	ProfileOsint  = "osint"
)

// Fact is an atomic statement extracted from mission material.
type Fact struct {
	Statement  string   `json:"statement"`
	Confidence float64  `json:"confidence"`
	SourceRefs []string `json:"source_refs"`
}

// Gap is a single identified collection gap.
type Gap struct {
	Description          string   `json:"description"`
	Priority             string   `json:"priority"`
	RecommendedQuestions []string `json:"recommended_questions"`
}

// GapAnalysis wraps the model's gap detection payload.
type GapAnalysis struct {
	Gaps []Gap `json:"gaps"`
}

// CrossDocument holds the model's cross-document reasoning output.
type CrossDocument struct {
	CorroboratedFindings []string `json:"corroborated_findings"`
	Contradictions       []string `json:"contradictions"`
	NotableTrends        []string `json:"notable_trends"`
}

// ExtractedEntity is the wire form of a model-extracted entity.
type ExtractedEntity struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ExtractedEvent is the wire form of a model-extracted event.
// Timestamp is a raw ISO 8601 string the merge step parses leniently.
type ExtractedEvent struct {
	Title     string  `json:"title"`
	Summary   string  `json:"summary"`
	Timestamp *string `json:"timestamp"`
	Location  *string `json:"location"`
}

// CycleResult is the full output of one analysis cycle. Run is the
// persisted record; the remaining fields are transient artifacts
// returned to the caller but not stored.
type CycleResult struct {
	Run           runs.AgentRun              `json:"run"`
	RawFacts      []Fact                     `json:"raw_facts"`
	Gaps          []Gap                      `json:"gaps"`
	DeltaSummary  string                     `json:"delta_summary"`
	CrossDocument CrossDocument              `json:"cross_document"`
	Verification  guardrail.SelfVerification `json:"verification"`
	Entities      []entities.Entity          `json:"entities"`
	Events        []events.Event             `json:"events"`
	KGIngested    bool                       `json:"kg_ingested"`
}

func normalizeProfile(profile string) string {
	switch profile {
	case ProfileHumint, ProfileSigint, ProfileOsint:
		return profile
	default:
		return ProfileHumint
	}
}

func serializePayload(payload any) string {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
