package guardrail

import (
	"fmt"
	"math"
	"strings"
)

// SelfVerification is the model's self-check over its own assessment.
type SelfVerification struct {
	InternalConsistency  string   `json:"internal_consistency"`
	ConfidenceAdjustment float64  `json:"confidence_adjustment"`
	Notes                []string `json:"notes"`
}

// Fuse combines the heuristic pass, the analytic pass, and the
// self-verification into the final run verdict. The fused severity is
// monotone: it is never lower than either pass or any escalation.
func Fuse(heuristic, analytic Result, verification SelfVerification) Result {
	severity := heuristic.Severity
	issues := append([]string{}, heuristic.Issues...)

	for _, issue := range analytic.Issues {
		issues = append(issues, "Analytic Review: "+issue)
	}
	severity = severity.Escalate(analytic.Severity)

	consistency := strings.ToLower(strings.TrimSpace(verification.InternalConsistency))
	switch consistency {
	case "questionable":
		issues = append(issues, fmt.Sprintf("Self-check: internal consistency rated %s.", consistency))
		severity = severity.Escalate(SeverityWarning)
	case "poor":
		issues = append(issues, fmt.Sprintf("Self-check: internal consistency rated %s.", consistency))
		severity = severity.Escalate(SeverityBlocked)
	}

	if math.Abs(verification.ConfidenceAdjustment) > 0 {
		issues = append(issues, fmt.Sprintf(
			"Self-check confidence adjustment: %+.2f", verification.ConfidenceAdjustment,
		))
	}

	for _, note := range verification.Notes {
		if trimmed := strings.TrimSpace(note); trimmed != "" {
			issues = append(issues, "Self-check note: "+trimmed)
		}
	}

	return Result{
		Severity:          severity,
		Status:            severity.Status(),
		Issues:            issues,
		OriginalAuthority: heuristic.OriginalAuthority,
		CurrentAuthority:  heuristic.CurrentAuthority,
		HasPivots:         heuristic.HasPivots,
		HistoryLines:      heuristic.HistoryLines,
	}
}
