package policy

import (
	"strings"
	"time"

	"github.com/apex-intel/apex/internal/kg"
)

// MissionContext carries the mission metadata needed to condition a
// system prompt.
type MissionContext struct {
	Authority         string
	OriginalAuthority string
	IntTypes          []string
	CreatedAt         time.Time
	Pivots            []PivotRecord
}

// Context bundles the inputs to system-prompt composition. Top-level
// Authority and IntTypes override the mission block when set, so
// callers can condition a prompt on a hypothetical lane without
// mutating mission state.
type Context struct {
	Authority string
	IntTypes  []string
	Mission   *MissionContext
	KGMetrics *kg.Metrics
}

func (c Context) resolveAuthority() string {
	if strings.TrimSpace(c.Authority) != "" {
		return c.Authority
	}
	if c.Mission != nil {
		return c.Mission.Authority
	}
	return ""
}

func (c Context) resolveIntTypes() []string {
	if len(c.IntTypes) > 0 {
		return c.IntTypes
	}
	if c.Mission != nil {
		return c.Mission.IntTypes
	}
	return nil
}

func (c Context) historyEntries() []HistoryEntry {
	if c.Mission == nil {
		return nil
	}
	original := c.Mission.OriginalAuthority
	if strings.TrimSpace(original) == "" {
		original = c.Mission.Authority
	}
	return BuildHistory(original, c.Mission.CreatedAt, c.Mission.Pivots)
}

// BuildSystemPrompt composes the unified system prompt: policy block,
// authority history, knowledge-graph summary, then task instructions.
// Empty sections are omitted from the join.
func BuildSystemPrompt(ctx Context, taskInstructions string) string {
	historyLines := RenderHistoryLines(ctx.historyEntries())
	if len(historyLines) == 0 {
		historyLines = []string{"- No authority pivots recorded for this mission."}
	}

	policyBlock := BuildPolicyPrompt(ctx.resolveAuthority(), ctx.resolveIntTypes(), nil)
	historyBlock := "Authority History:\n" + strings.Join(historyLines, "\n")
	kgBlock := "Knowledge Graph Summary:\n" + kg.SummarizeMetrics(ctx.KGMetrics)

	sections := []string{policyBlock, historyBlock, kgBlock, strings.TrimSpace(taskInstructions)}

	var kept []string
	for _, section := range sections {
		if section != "" {
			kept = append(kept, section)
		}
	}
	return strings.Join(kept, "\n\n")
}
