package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/apex-intel/apex/internal/chat"
	"github.com/apex-intel/apex/internal/guardrail"
	"github.com/apex-intel/apex/pkg/formatting"
)

type modelReviewer struct {
	chat   chat.Client
	logger *slog.Logger
}

// NewReviewer creates the model-backed quality reviewer consumed by
// the guardrail's analytic pass. In demo mode it returns the stub
// verdict; call failures surface as errors so the evaluator can flag
// the run for manual inspection.
func NewReviewer(chatClient chat.Client, logger *slog.Logger) guardrail.Reviewer {
	return modelReviewer{
		chat:   chatClient,
		logger: logger.With("system", "reviewer"),
	}
}

func (r modelReviewer) QualityReview(ctx context.Context, in guardrail.AnalyticInput) (guardrail.Review, error) {
	if r.chat == nil || r.chat.Demo() {
		return stubReview(), nil
	}

	payload := map[string]any{
		"profile":  in.Profile,
		"summary":  in.Summary,
		"estimate": in.Estimate,
		"gaps":     in.GapsPayload,
		"cross":    in.CrossPayload,
	}

	c := caller{chat: r.chat, logger: r.logger, policyBlock: in.PolicyBlock, profile: in.Profile}

	raw, err := r.chat.Chat(ctx, c.system(reviewSystemPrompt), reviewPrompt(in.Profile, payload))
	if err != nil {
		return guardrail.Review{}, fmt.Errorf("quality review call: %w", err)
	}

	review, err := formatting.Parse[guardrail.Review](raw)
	if err != nil {
		return guardrail.Review{}, fmt.Errorf("quality review response: %w", err)
	}

	status := strings.ToUpper(strings.TrimSpace(review.Status))
	if status == "" {
		status = "OK"
	}
	switch status {
	case "OK", "CAUTION", "REVIEW":
	default:
		return guardrail.Review{}, fmt.Errorf("quality review status %q not recognized", review.Status)
	}

	issues := make([]string, 0, len(review.Issues))
	for _, issue := range review.Issues {
		if strings.TrimSpace(issue) != "" {
			issues = append(issues, issue)
		}
	}

	return guardrail.Review{Status: status, Issues: issues}, nil
}
