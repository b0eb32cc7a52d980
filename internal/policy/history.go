package policy

import (
	"fmt"
	"strings"
	"time"

	"github.com/apex-intel/apex/internal/authority"
)

// Entry types recorded in an authority history.
const (
	EntryOriginal = "original"
	EntryPivot    = "pivot"
)

// PivotRecord is one persisted authority transition on a mission.
type PivotRecord struct {
	From          string    `json:"from"`
	To            string    `json:"to"`
	Justification string    `json:"justification"`
	Actor         string    `json:"actor,omitempty"`
	Risk          string    `json:"risk"`
	Conditions    []string  `json:"conditions"`
	CreatedAt     time.Time `json:"created_at"`
}

// HistoryEntry is a normalized authority-history record: the original
// lane establishment followed by zero or more pivots.
type HistoryEntry struct {
	Type          string   `json:"type"`
	From          string   `json:"from,omitempty"`
	To            string   `json:"to"`
	Justification string   `json:"justification,omitempty"`
	Actor         string   `json:"actor,omitempty"`
	Risk          string   `json:"risk,omitempty"`
	Conditions    []string `json:"conditions"`
	CreatedAt     string   `json:"created_at,omitempty"`
}

// BuildHistory assembles the ordered history for a mission: one
// original entry followed by each pivot in chronological order.
func BuildHistory(originalAuthority string, createdAt time.Time, pivots []PivotRecord) []HistoryEntry {
	if strings.TrimSpace(originalAuthority) == "" {
		return nil
	}

	entries := []HistoryEntry{{
		Type:       EntryOriginal,
		To:         originalAuthority,
		Conditions: []string{},
		CreatedAt:  formatTimestamp(createdAt),
	}}

	for _, pivot := range pivots {
		conditions := pivot.Conditions
		if conditions == nil {
			conditions = []string{}
		}
		entries = append(entries, HistoryEntry{
			Type:          EntryPivot,
			From:          pivot.From,
			To:            pivot.To,
			Justification: pivot.Justification,
			Actor:         pivot.Actor,
			Risk:          pivot.Risk,
			Conditions:    conditions,
			CreatedAt:     formatTimestamp(pivot.CreatedAt),
		})
	}

	return entries
}

// RenderHistoryLines formats history entries as prompt-ready bullets.
func RenderHistoryLines(entries []HistoryEntry) []string {
	var lines []string
	for _, entry := range entries {
		timestamp := entry.CreatedAt
		if timestamp == "" {
			timestamp = "unspecified"
		}

		if entry.Type == EntryOriginal {
			lines = append(lines, fmt.Sprintf(
				"- [%s] Original authority established as %s.",
				timestamp, authority.Label(entry.To),
			))
			continue
		}

		line := fmt.Sprintf(
			"- [%s] Pivot: %s → %s | Risk: %s",
			timestamp,
			authority.Label(entry.From),
			authority.Label(entry.To),
			riskOrNA(entry.Risk),
		)
		if note := joinConditions(entry.Conditions); note != "" {
			line += " | Conditions: " + note
		}
		lines = append(lines, line)
	}
	return lines
}

func riskOrNA(risk string) string {
	if strings.TrimSpace(risk) == "" {
		return "N/A"
	}
	return risk
}

func joinConditions(conditions []string) string {
	var kept []string
	for _, condition := range conditions {
		if strings.TrimSpace(condition) != "" {
			kept = append(kept, condition)
		}
	}
	return strings.Join(kept, "; ")
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
