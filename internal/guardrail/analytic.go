package guardrail

import (
	"context"
	"fmt"
	"strings"

	"github.com/apex-intel/apex/internal/policy"
)

// Review is the model's quality verdict over an assessment.
type Review struct {
	Status string   `json:"status"`
	Issues []string `json:"issues"`
}

// Reviewer performs the model-backed analytic quality review. A nil
// reviewer or a returned error defaults the review to REVIEW.
type Reviewer interface {
	QualityReview(ctx context.Context, in AnalyticInput) (Review, error)
}

// AnalyticInput summarizes a cycle's artifacts for quality scoring.
type AnalyticInput struct {
	Profile           string
	Authority         string
	PolicyBlock       string
	Summary           string
	Estimate          string
	FactCount         int
	EntityCount       int
	EventCount        int
	TimestampedEvents int
	HighPriorityGaps  int
	Contradictions    []string
	GapsPayload       any
	CrossPayload      any
	HistoryLines      []string
	OriginalAuthority string
	CurrentAuthority  string
	HasPivots         bool
}

// EvaluateAnalytic scores analytic quality: completeness heuristics
// raise severity to CAUTION, a model review can raise it further, and
// authority-keyword hits in summary or estimate force REVIEW. A failed
// model review never crashes the cycle; it defaults to REVIEW with a
// manual-inspection issue.
func EvaluateAnalytic(ctx context.Context, reviewer Reviewer, in AnalyticInput) Result {
	var issues []string
	severity := SeverityOk

	flag := func(floor Severity, message string) {
		if message != "" {
			issues = append(issues, message)
		}
		severity = severity.Escalate(floor)
	}

	if in.FactCount == 0 {
		flag(SeverityWarning, "No raw facts extracted; collection may be insufficient.")
	}
	if in.EntityCount == 0 {
		flag(SeverityWarning, "Entity list is empty.")
	}
	if in.EventCount == 0 {
		flag(SeverityWarning, "Event list is empty.")
	} else if in.TimestampedEvents == 0 {
		flag(SeverityWarning, "All events are missing timestamps.")
	}
	if strings.TrimSpace(in.Estimate) == "" {
		flag(SeverityWarning, "Operational estimate is empty.")
	}
	if strings.TrimSpace(in.Summary) == "" {
		flag(SeverityWarning, "Summary is empty.")
	}
	if in.HighPriorityGaps > 0 {
		flag(SeverityWarning, fmt.Sprintf(
			"%d high-priority information gaps remain unresolved.", in.HighPriorityGaps,
		))
	}
	if len(in.Contradictions) > 0 {
		flag(SeverityWarning, "Cross-document contradictions detected.")
	}

	review := runReview(ctx, reviewer, in)
	issues = append(issues, review.Issues...)
	severity = severity.Escalate(ParseAnalytic(review.Status))

	if in.Authority != "" {
		hits := policy.KeywordIssues(in.Authority, in.Summary)
		hits = append(hits, policy.KeywordIssues(in.Authority, in.Estimate)...)
		if len(hits) > 0 {
			issues = append(issues, hits...)
			severity = severity.Escalate(SeverityBlocked)
		}
	}

	currentAuthority := in.CurrentAuthority
	if currentAuthority == "" {
		currentAuthority = in.Authority
	}

	return Result{
		Severity:          severity,
		Status:            severity.Analytic(),
		Issues:            issues,
		OriginalAuthority: in.OriginalAuthority,
		CurrentAuthority:  currentAuthority,
		HasPivots:         in.HasPivots || len(in.HistoryLines) > 1,
		HistoryLines:      in.HistoryLines,
	}
}

func runReview(ctx context.Context, reviewer Reviewer, in AnalyticInput) Review {
	if reviewer == nil {
		return Review{
			Status: SeverityBlocked.Analytic(),
			Issues: []string{"Guardrail LLM review failed; manual inspection required."},
		}
	}

	review, err := reviewer.QualityReview(ctx, in)
	if err != nil {
		return Review{
			Status: SeverityBlocked.Analytic(),
			Issues: []string{"Guardrail LLM review failed; manual inspection required."},
		}
	}

	var kept []string
	for _, issue := range review.Issues {
		if strings.TrimSpace(issue) != "" {
			kept = append(kept, issue)
		}
	}
	review.Issues = kept
	return review
}
