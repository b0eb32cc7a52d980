// Package events manages the timeline events extracted from mission
// documents.
package events

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is a deduplicated timeline entry. Identity is the normalized
// title plus the timestamp truncated to whole seconds in UTC, so
// sub-second and zone variants of the same report collapse.
type Event struct {
	ID                uuid.UUID   `json:"id"`
	MissionID         uuid.UUID   `json:"mission_id"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	Timestamp         *time.Time  `json:"timestamp,omitempty"`
	Location          *string     `json:"location,omitempty"`
	InvolvedEntityIDs []uuid.UUID `json:"involved_entity_ids"`
	CreatedAt         time.Time   `json:"created_at"`
}

// Candidate is an extracted event prior to merging. InvolvedEntities
// holds entity names resolved to IDs during the merge.
type Candidate struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Timestamp        *time.Time `json:"timestamp,omitempty"`
	Location         *string    `json:"location,omitempty"`
	InvolvedEntities []string   `json:"involved_entities,omitempty"`
}

// NormalizeKey derives the dedup key for an event.
func NormalizeKey(title string, ts *time.Time) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(title)), " ")
	if ts == nil {
		return normalized + "|"
	}
	return fmt.Sprintf("%s|%d", normalized, ts.UTC().Truncate(time.Second).Unix())
}

// DedupCandidates drops candidates whose key matches an earlier entry
// or an existing key. Blank titles are dropped. Order is preserved.
func DedupCandidates(candidates []Candidate, existing map[string]struct{}) []Candidate {
	seen := make(map[string]struct{}, len(existing))
	for k := range existing {
		seen[k] = struct{}{}
	}

	kept := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if strings.TrimSpace(c.Title) == "" {
			continue
		}

		key := NormalizeKey(c.Title, c.Timestamp)
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		kept = append(kept, c)
	}

	return kept
}
