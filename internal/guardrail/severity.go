// Package guardrail evaluates generated mission content with a fast
// heuristic pass and a model-backed analytic pass, fusing both into a
// single three-level severity.
package guardrail

import "strings"

// Severity is the canonical three-level guardrail scale. Both the run
// vocabulary (ok/warning/blocked) and the analytic vocabulary
// (OK/CAUTION/REVIEW) map onto it; escalation only ever raises it.
type Severity int

const (
	SeverityOk Severity = iota
	SeverityWarning
	SeverityBlocked
)

// Status renders the run-facing vocabulary.
func (s Severity) Status() string {
	switch s {
	case SeverityOk:
		return "ok"
	case SeverityWarning:
		return "warning"
	default:
		return "blocked"
	}
}

// Analytic renders the review-facing vocabulary.
func (s Severity) Analytic() string {
	switch s {
	case SeverityOk:
		return "OK"
	case SeverityWarning:
		return "CAUTION"
	default:
		return "REVIEW"
	}
}

// Escalate raises s to at least floor.
func (s Severity) Escalate(floor Severity) Severity {
	if floor > s {
		return floor
	}
	return s
}

// ParseStatus maps a run-status string onto the canonical scale.
// Unknown values resolve to warning so malformed input is never
// silently treated as clean.
func ParseStatus(value string) Severity {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "ok":
		return SeverityOk
	case "warning":
		return SeverityWarning
	case "blocked":
		return SeverityBlocked
	default:
		return SeverityWarning
	}
}

// ParseAnalytic maps a model-reported review status onto the canonical
// scale. Unknown values resolve to blocked (REVIEW) per the
// fail-toward-caution policy.
func ParseAnalytic(value string) Severity {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "OK":
		return SeverityOk
	case "CAUTION":
		return SeverityWarning
	case "REVIEW":
		return SeverityBlocked
	default:
		return SeverityBlocked
	}
}
