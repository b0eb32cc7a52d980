package guardrail

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/apex-intel/apex/internal/policy"
)

// Banned terminology blocked in any generated summary or next steps.
var bannedWords = []string{"kill", "classified", "US PERSON", "lethal"}

var isoTimestampPattern = regexp.MustCompile(
	`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})?`,
)

// HeuristicInput carries the generated content and mission context for
// the deterministic guardrail pass.
type HeuristicInput struct {
	Summary           string
	NextSteps         string
	Authority         string
	HistoryLines      []string
	HasDocuments      bool
	OriginalAuthority string
	CurrentAuthority  string
	HasPivots         bool
}

// Result is the outcome of a guardrail pass.
type Result struct {
	Severity          Severity `json:"-"`
	Status            string   `json:"status"`
	Issues            []string `json:"issues"`
	OriginalAuthority string   `json:"original_authority,omitempty"`
	CurrentAuthority  string   `json:"current_authority,omitempty"`
	HasPivots         bool     `json:"has_pivots"`
	HistoryLines      []string `json:"authority_history,omitempty"`
}

// Now is swapped in tests to pin the future-timestamp check.
var Now = time.Now

// RunHeuristics evaluates generated content synchronously, with no
// model call. Banned terms, far-future timestamps, unsupported source
// mentions, and authority-keyword hits block; emptiness alone warns.
func RunHeuristics(in HeuristicInput) Result {
	var issues []string
	severity := SeverityOk

	summary := strings.TrimSpace(in.Summary)
	nextSteps := strings.TrimSpace(in.NextSteps)
	combined := summary + "\n" + nextSteps
	lowered := strings.ToLower(combined)

	var bannedHits []string
	for _, word := range bannedWords {
		if strings.Contains(lowered, strings.ToLower(word)) {
			bannedHits = append(bannedHits, word)
		}
	}
	if len(bannedHits) > 0 {
		unique := slices.Compact(slices.Sorted(slices.Values(bannedHits)))
		issues = append(issues, "Detected banned terminology: "+strings.Join(unique, ", "))
		severity = SeverityBlocked
	}

	if future := findFutureTimestamps(combined); len(future) > 0 {
		issues = append(issues, "References timestamps too far in the future: "+strings.Join(future, ", "))
		severity = SeverityBlocked
	}

	if summary == "" {
		issues = append(issues, "Summary is empty.")
	}
	if nextSteps == "" {
		issues = append(issues, "Next steps are empty.")
	}

	if strings.Contains(lowered, "source:") && !in.HasDocuments {
		issues = append(issues, "Mentions a source despite no mission documents being available.")
		severity = SeverityBlocked
	}

	if in.Authority != "" {
		if hits := policy.KeywordIssues(in.Authority, combined); len(hits) > 0 {
			issues = append(issues, hits...)
			severity = SeverityBlocked
		}
	}

	if len(issues) > 0 && severity == SeverityOk {
		severity = SeverityWarning
	}

	currentAuthority := in.CurrentAuthority
	if currentAuthority == "" {
		currentAuthority = in.Authority
	}

	return Result{
		Severity:          severity,
		Status:            severity.Status(),
		Issues:            issues,
		OriginalAuthority: in.OriginalAuthority,
		CurrentAuthority:  currentAuthority,
		HasPivots:         in.HasPivots || len(in.HistoryLines) > 1,
		HistoryLines:      in.HistoryLines,
	}
}

func findFutureTimestamps(text string) []string {
	threshold := Now().UTC().Add(24 * time.Hour)

	var markers []string
	for _, match := range isoTimestampPattern.FindAllString(text, -1) {
		parsed, ok := parseISOTimestamp(match)
		if !ok {
			continue
		}
		if parsed.After(threshold) {
			markers = append(markers, match)
		}
	}
	return markers
}

// parseISOTimestamp accepts RFC 3339 values plus zone-less timestamps,
// which are assumed UTC.
func parseISOTimestamp(value string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02T15:04:05", value); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse("2006-01-02T15:04:05.999999999", value); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}
