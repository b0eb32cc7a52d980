package guardrail_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/apex-intel/apex/internal/guardrail"
)

func pinNow(t *testing.T, at time.Time) {
	t.Helper()
	guardrail.Now = func() time.Time { return at }
	t.Cleanup(func() { guardrail.Now = time.Now })
}

func TestRunHeuristicsClean(t *testing.T) {
	result := guardrail.RunHeuristics(guardrail.HeuristicInput{
		Summary:      "Mission involves entities: Sentinel Drone.",
		NextSteps:    "Schedule a follow-up briefing.",
		Authority:    "T10_MIL",
		HasDocuments: true,
	})

	if result.Severity != guardrail.SeverityOk {
		t.Errorf("severity = %v, want ok; issues = %v", result.Severity, result.Issues)
	}
	if result.Status != "ok" {
		t.Errorf("status = %q, want ok", result.Status)
	}
}

func TestRunHeuristicsBannedTerminology(t *testing.T) {
	result := guardrail.RunHeuristics(guardrail.HeuristicInput{
		Summary:      "Recommend LETHAL targeting of the convoy.",
		NextSteps:    "Continue monitoring.",
		HasDocuments: true,
	})

	if result.Severity != guardrail.SeverityBlocked {
		t.Fatalf("severity = %v, want blocked", result.Severity)
	}
	if len(result.Issues) != 1 || !strings.Contains(result.Issues[0], "banned terminology") {
		t.Errorf("issues = %v, want single banned-terminology issue", result.Issues)
	}
}

func TestRunHeuristicsFutureTimestamp(t *testing.T) {
	pinNow(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	result := guardrail.RunHeuristics(guardrail.HeuristicInput{
		Summary:      "Strike window opens 2026-03-15T10:00:00Z.",
		NextSteps:    "Confirm with operations.",
		HasDocuments: true,
	})

	if result.Severity != guardrail.SeverityBlocked {
		t.Fatalf("severity = %v, want blocked; issues = %v", result.Severity, result.Issues)
	}
	if !strings.Contains(result.Issues[0], "2026-03-15T10:00:00Z") {
		t.Errorf("issues = %v, want offending timestamp named", result.Issues)
	}
}

func TestRunHeuristicsNearTimestampAllowed(t *testing.T) {
	pinNow(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	result := guardrail.RunHeuristics(guardrail.HeuristicInput{
		Summary:      "Observed activity at 2026-01-01T18:00:00Z.",
		NextSteps:    "Continue monitoring.",
		HasDocuments: true,
	})

	if result.Severity != guardrail.SeverityOk {
		t.Errorf("severity = %v, want ok; issues = %v", result.Severity, result.Issues)
	}
}

func TestRunHeuristicsSourceWithoutDocuments(t *testing.T) {
	in := guardrail.HeuristicInput{
		Summary:   "Per source: field reporting indicates movement.",
		NextSteps: "Task collection.",
	}

	result := guardrail.RunHeuristics(in)
	if result.Severity != guardrail.SeverityBlocked {
		t.Fatalf("severity without documents = %v, want blocked", result.Severity)
	}

	in.HasDocuments = true
	result = guardrail.RunHeuristics(in)
	if result.Severity != guardrail.SeverityOk {
		t.Errorf("severity with documents = %v, want ok; issues = %v", result.Severity, result.Issues)
	}
}

func TestRunHeuristicsEmptyContentWarns(t *testing.T) {
	result := guardrail.RunHeuristics(guardrail.HeuristicInput{HasDocuments: true})

	if result.Severity != guardrail.SeverityWarning {
		t.Fatalf("severity = %v, want warning", result.Severity)
	}
	if len(result.Issues) != 2 {
		t.Errorf("issues = %v, want empty summary and next steps", result.Issues)
	}
}

func TestRunHeuristicsAuthorityKeywords(t *testing.T) {
	result := guardrail.RunHeuristics(guardrail.HeuristicInput{
		Summary:      "Recommend units arrest the suspects.",
		NextSteps:    "Obtain a warrant.",
		Authority:    "T10_MIL",
		HasDocuments: true,
	})

	if result.Severity != guardrail.SeverityBlocked {
		t.Errorf("severity = %v, want blocked; issues = %v", result.Severity, result.Issues)
	}
}

func TestRunHeuristicsAuthorityEcho(t *testing.T) {
	result := guardrail.RunHeuristics(guardrail.HeuristicInput{
		Summary:           "Fine.",
		NextSteps:         "Fine.",
		Authority:         "DSCA",
		OriginalAuthority: "T10_MIL",
		CurrentAuthority:  "DSCA",
		HistoryLines:      []string{"original", "pivot"},
	})

	if result.CurrentAuthority != "DSCA" || result.OriginalAuthority != "T10_MIL" {
		t.Errorf("authority echo = %q/%q", result.OriginalAuthority, result.CurrentAuthority)
	}
	if !result.HasPivots {
		t.Error("HasPivots = false, want true from multi-line history")
	}
}

func TestSeverityVocabularies(t *testing.T) {
	tests := []struct {
		severity guardrail.Severity
		status   string
		analytic string
	}{
		{guardrail.SeverityOk, "ok", "OK"},
		{guardrail.SeverityWarning, "warning", "CAUTION"},
		{guardrail.SeverityBlocked, "blocked", "REVIEW"},
	}

	for _, tt := range tests {
		if got := tt.severity.Status(); got != tt.status {
			t.Errorf("Status() = %q, want %q", got, tt.status)
		}
		if got := tt.severity.Analytic(); got != tt.analytic {
			t.Errorf("Analytic() = %q, want %q", got, tt.analytic)
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		value string
		want  guardrail.Severity
	}{
		{"ok", guardrail.SeverityOk},
		{" Warning ", guardrail.SeverityWarning},
		{"BLOCKED", guardrail.SeverityBlocked},
		{"garbage", guardrail.SeverityWarning},
	}

	for _, tt := range tests {
		if got := guardrail.ParseStatus(tt.value); got != tt.want {
			t.Errorf("ParseStatus(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestParseAnalytic(t *testing.T) {
	tests := []struct {
		value string
		want  guardrail.Severity
	}{
		{"OK", guardrail.SeverityOk},
		{"caution", guardrail.SeverityWarning},
		{"REVIEW", guardrail.SeverityBlocked},
		{"garbage", guardrail.SeverityBlocked},
		{"", guardrail.SeverityBlocked},
	}

	for _, tt := range tests {
		if got := guardrail.ParseAnalytic(tt.value); got != tt.want {
			t.Errorf("ParseAnalytic(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestEscalateNeverLowers(t *testing.T) {
	if got := guardrail.SeverityBlocked.Escalate(guardrail.SeverityOk); got != guardrail.SeverityBlocked {
		t.Errorf("Escalate lowered severity to %v", got)
	}
	if got := guardrail.SeverityOk.Escalate(guardrail.SeverityWarning); got != guardrail.SeverityWarning {
		t.Errorf("Escalate(warning) = %v", got)
	}
}

type reviewerFunc func(ctx context.Context, in guardrail.AnalyticInput) (guardrail.Review, error)

func (f reviewerFunc) QualityReview(ctx context.Context, in guardrail.AnalyticInput) (guardrail.Review, error) {
	return f(ctx, in)
}

func okReviewer() guardrail.Reviewer {
	return reviewerFunc(func(context.Context, guardrail.AnalyticInput) (guardrail.Review, error) {
		return guardrail.Review{Status: "OK"}, nil
	})
}

func fullInput() guardrail.AnalyticInput {
	return guardrail.AnalyticInput{
		Profile:           "humint",
		Authority:         "T10_MIL",
		Summary:           "Routine monitoring of the target area.",
		Estimate:          "Activity will likely continue at current tempo.",
		FactCount:         3,
		EntityCount:       2,
		EventCount:        2,
		TimestampedEvents: 2,
	}
}

func TestEvaluateAnalyticClean(t *testing.T) {
	result := guardrail.EvaluateAnalytic(context.Background(), okReviewer(), fullInput())

	if result.Severity != guardrail.SeverityOk {
		t.Errorf("severity = %v, want ok; issues = %v", result.Severity, result.Issues)
	}
	if result.Status != "OK" {
		t.Errorf("status = %q, want OK", result.Status)
	}
}

func TestEvaluateAnalyticCompleteness(t *testing.T) {
	in := fullInput()
	in.FactCount = 0
	in.TimestampedEvents = 0
	in.HighPriorityGaps = 2
	in.Contradictions = []string{"Report A and Report B disagree on timing."}

	result := guardrail.EvaluateAnalytic(context.Background(), okReviewer(), in)

	if result.Severity != guardrail.SeverityWarning {
		t.Fatalf("severity = %v, want warning", result.Severity)
	}
	if len(result.Issues) != 4 {
		t.Errorf("issues = %v, want 4", result.Issues)
	}
}

func TestEvaluateAnalyticReviewerFailure(t *testing.T) {
	failing := reviewerFunc(func(context.Context, guardrail.AnalyticInput) (guardrail.Review, error) {
		return guardrail.Review{}, errors.New("model unavailable")
	})

	result := guardrail.EvaluateAnalytic(context.Background(), failing, fullInput())

	if result.Severity != guardrail.SeverityBlocked {
		t.Fatalf("severity = %v, want blocked", result.Severity)
	}
	if !strings.Contains(strings.Join(result.Issues, " "), "manual inspection required") {
		t.Errorf("issues = %v, want manual-inspection note", result.Issues)
	}
}

func TestEvaluateAnalyticNilReviewer(t *testing.T) {
	result := guardrail.EvaluateAnalytic(context.Background(), nil, fullInput())
	if result.Severity != guardrail.SeverityBlocked {
		t.Errorf("severity = %v, want blocked", result.Severity)
	}
}

func TestEvaluateAnalyticKeywordHitsBlock(t *testing.T) {
	in := fullInput()
	in.Estimate = "Forces should arrest the cell leadership."

	result := guardrail.EvaluateAnalytic(context.Background(), okReviewer(), in)
	if result.Severity != guardrail.SeverityBlocked {
		t.Errorf("severity = %v, want blocked; issues = %v", result.Severity, result.Issues)
	}
}

func TestFuseMonotonic(t *testing.T) {
	heuristic := guardrail.Result{Severity: guardrail.SeverityOk, Status: "ok"}
	analytic := guardrail.Result{Severity: guardrail.SeverityWarning, Status: "CAUTION", Issues: []string{"thin evidence"}}

	fused := guardrail.Fuse(heuristic, analytic, guardrail.SelfVerification{InternalConsistency: "good"})

	if fused.Severity != guardrail.SeverityWarning {
		t.Errorf("severity = %v, want warning", fused.Severity)
	}
	if len(fused.Issues) != 1 || !strings.HasPrefix(fused.Issues[0], "Analytic Review: ") {
		t.Errorf("issues = %v, want prefixed analytic issue", fused.Issues)
	}
}

func TestFuseSelfVerification(t *testing.T) {
	ok := guardrail.Result{Severity: guardrail.SeverityOk, Status: "ok"}

	t.Run("questionable escalates to warning", func(t *testing.T) {
		fused := guardrail.Fuse(ok, ok, guardrail.SelfVerification{InternalConsistency: "Questionable"})
		if fused.Severity != guardrail.SeverityWarning {
			t.Errorf("severity = %v, want warning", fused.Severity)
		}
	})

	t.Run("poor escalates to blocked", func(t *testing.T) {
		fused := guardrail.Fuse(ok, ok, guardrail.SelfVerification{InternalConsistency: "poor"})
		if fused.Severity != guardrail.SeverityBlocked {
			t.Errorf("severity = %v, want blocked", fused.Severity)
		}
	})

	t.Run("confidence adjustment and notes recorded", func(t *testing.T) {
		fused := guardrail.Fuse(ok, ok, guardrail.SelfVerification{
			InternalConsistency:  "good",
			ConfidenceAdjustment: -0.2,
			Notes:                []string{"Single-source reporting.", " "},
		})
		if fused.Severity != guardrail.SeverityOk {
			t.Errorf("severity = %v, want ok", fused.Severity)
		}
		if len(fused.Issues) != 2 {
			t.Errorf("issues = %v, want adjustment and one note", fused.Issues)
		}
	})
}

func TestFusePreservesAuthorityEcho(t *testing.T) {
	heuristic := guardrail.Result{
		Severity:          guardrail.SeverityOk,
		OriginalAuthority: "T10_MIL",
		CurrentAuthority:  "DSCA",
		HasPivots:         true,
		HistoryLines:      []string{"a", "b"},
	}

	fused := guardrail.Fuse(heuristic, guardrail.Result{}, guardrail.SelfVerification{})
	if fused.OriginalAuthority != "T10_MIL" || fused.CurrentAuthority != "DSCA" || !fused.HasPivots {
		t.Errorf("fused echo = %+v", fused)
	}
	if len(fused.HistoryLines) != 2 {
		t.Errorf("history lines = %v", fused.HistoryLines)
	}
}
