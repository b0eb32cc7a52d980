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

// caller bundles the per-cycle model call state: the chat client, the
// composed policy block prepended to every system prompt, and the
// active analysis profile.
type caller struct {
	chat        chat.Client
	logger      *slog.Logger
	policyBlock string
	profile     string
}

func (c caller) system(prompt string) string {
	parts := make([]string, 0, 2)
	if c.policyBlock != "" {
		parts = append(parts, c.policyBlock)
	}
	if prompt != "" {
		parts = append(parts, prompt)
	}
	return strings.Join(parts, "\n\n")
}

// bare returns a copy with no policy block, for calls whose system
// prompt was already composed with the full mission policy.
func (c caller) bare() caller {
	c.policyBlock = ""
	return c
}

// completeWithFallback runs one model call, falling back to the stub
// in demo mode and on any call or parse failure.
func completeWithFallback[T any](
	ctx context.Context,
	c caller,
	system string,
	prompt string,
	parse func(string) (T, error),
	stub func() T,
) T {
	if c.chat == nil || c.chat.Demo() {
		c.logger.Info("demo mode active, returning stubbed data")
		return stub()
	}

	raw, err := c.chat.Chat(ctx, c.system(system), prompt)
	if err != nil {
		c.logger.Warn("model call failed, falling back to stub", "error", err)
		return stub()
	}

	result, err := parse(raw)
	if err != nil {
		c.logger.Warn("model response invalid, falling back to stub", "error", err)
		return stub()
	}
	return result
}

func passthrough(raw string) (string, error) {
	return raw, nil
}

func (c caller) extractRawFacts(ctx context.Context, text string) []Fact {
	return completeWithFallback(
		ctx, c,
		rawFactsSystemPrompt,
		rawFactsPrompt(text, c.profile),
		formatting.Parse[[]Fact],
		stubFacts,
	)
}

func (c caller) extractEntities(ctx context.Context, text string) []ExtractedEntity {
	return completeWithFallback(
		ctx, c,
		extractionSystemPrompt,
		entityPrompt(text, c.profile),
		formatting.Parse[[]ExtractedEntity],
		stubEntities,
	)
}

func (c caller) extractEvents(ctx context.Context, text string) []ExtractedEvent {
	return completeWithFallback(
		ctx, c,
		extractionSystemPrompt,
		eventPrompt(text, c.profile),
		formatting.Parse[[]ExtractedEvent],
		stubEvents,
	)
}

// detectGaps takes the fully composed system prompt (policy block,
// authority history, and graph summary included) rather than a bare
// task instruction, so it runs on the bare caller.
func (c caller) detectGaps(ctx context.Context, system string, payload any) GapAnalysis {
	parse := func(raw string) (GapAnalysis, error) {
		result, err := formatting.Parse[GapAnalysis](raw)
		if err != nil {
			return result, err
		}
		if result.Gaps == nil {
			return result, fmt.Errorf("gap payload missing gaps list")
		}
		return result, nil
	}

	return completeWithFallback(ctx, c.bare(), system, gapsPrompt(payload), parse, stubGaps)
}

func (c caller) crossDocumentAnalysis(ctx context.Context, payload any) CrossDocument {
	parse := func(raw string) (CrossDocument, error) {
		result, err := formatting.Parse[CrossDocument](raw)
		if err != nil {
			return result, err
		}
		if result.CorroboratedFindings == nil || result.Contradictions == nil || result.NotableTrends == nil {
			return result, fmt.Errorf("cross-document payload missing required lists")
		}
		return result, nil
	}

	return completeWithFallback(
		ctx, c,
		crossDocSystemPrompt,
		crossDocPrompt(c.profile, payload),
		parse,
		stubCrossDocument,
	)
}

func (c caller) generateEstimate(ctx context.Context, payload any) string {
	return completeWithFallback(
		ctx, c,
		estimateSystemPrompt,
		estimatePrompt(c.profile, payload),
		passthrough,
		func() string { return stubOperationalEstimate },
	)
}

func (c caller) summarizeMission(ctx context.Context, contextJSON string, stub func() string) string {
	return completeWithFallback(
		ctx, c,
		summarySystemPrompt,
		summaryPrompt(c.profile, contextJSON),
		passthrough,
		stub,
	)
}

func (c caller) suggestNextSteps(ctx context.Context, contextJSON string, stub func() string) string {
	return completeWithFallback(
		ctx, c,
		nextStepsSystemPrompt,
		nextStepsPrompt(c.profile, contextJSON),
		passthrough,
		stub,
	)
}

func (c caller) generateDelta(ctx context.Context, payload any) string {
	return completeWithFallback(
		ctx, c,
		deltaSystemPrompt,
		deltaPrompt(payload),
		passthrough,
		func() string { return stubDeltaSummary },
	)
}

// renderReport also takes a fully composed system prompt built from
// the selected template and mission policy.
func (c caller) renderReport(ctx context.Context, system string, payload any, stub func() string) string {
	return completeWithFallback(
		ctx, c.bare(),
		system,
		reportPrompt(payload),
		passthrough,
		stub,
	)
}

func (c caller) selfVerify(ctx context.Context, payload any) guardrail.SelfVerification {
	parse := func(raw string) (guardrail.SelfVerification, error) {
		result, err := formatting.Parse[guardrail.SelfVerification](raw)
		if err != nil {
			return result, err
		}
		switch result.InternalConsistency {
		case "good", "questionable", "poor":
		default:
			return result, fmt.Errorf("self-verification payload missing internal_consistency")
		}
		if result.Notes == nil {
			result.Notes = []string{}
		}
		return result, nil
	}

	return completeWithFallback(
		ctx, c,
		selfVerifySystemPrompt,
		selfVerifyPrompt(c.profile, payload),
		parse,
		stubSelfVerify,
	)
}
