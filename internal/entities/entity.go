// Package entities manages the named actors, organizations, and
// locations extracted from mission documents.
package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entity is a deduplicated mission actor. Identity is the normalized
// name; repeated extractions enrich rather than replace an entity.
type Entity struct {
	ID          uuid.UUID `json:"id"`
	MissionID   uuid.UUID `json:"mission_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Candidate is an extracted entity prior to merging.
type Candidate struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// NormalizeName lowercases and collapses internal whitespace so
// spelling variants of the same actor collide.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Enrich folds a candidate into an existing entity without discarding
// information: the longer description wins and a missing type is
// filled in. Reports whether anything changed.
func Enrich(existing *Entity, candidate Candidate) bool {
	changed := false

	if len(strings.TrimSpace(candidate.Description)) > len(strings.TrimSpace(existing.Description)) {
		existing.Description = candidate.Description
		changed = true
	}

	if strings.TrimSpace(existing.Type) == "" && strings.TrimSpace(candidate.Type) != "" {
		existing.Type = candidate.Type
		changed = true
	}

	return changed
}

// MergeCandidates collapses a batch of candidates by normalized name,
// enriching earlier entries with later duplicates. Candidates with
// blank names are dropped. Order of first appearance is preserved.
func MergeCandidates(candidates []Candidate) []Candidate {
	merged := make([]Candidate, 0, len(candidates))
	index := make(map[string]int)

	for _, c := range candidates {
		key := NormalizeName(c.Name)
		if key == "" {
			continue
		}

		if i, ok := index[key]; ok {
			prev := &merged[i]
			if len(strings.TrimSpace(c.Description)) > len(strings.TrimSpace(prev.Description)) {
				prev.Description = c.Description
			}
			if strings.TrimSpace(prev.Type) == "" && strings.TrimSpace(c.Type) != "" {
				prev.Type = c.Type
			}
			continue
		}

		index[key] = len(merged)
		merged = append(merged, c)
	}

	return merged
}
