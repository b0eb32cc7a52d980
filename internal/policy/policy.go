// Package policy composes authority-aware prompt blocks and enforces
// lane guardrails over generated content.
package policy

import (
	"fmt"
	"slices"
	"strings"

	"github.com/apex-intel/apex/internal/authority"
	"github.com/apex-intel/apex/internal/ints"
)

const unspecifiedAuthorityBlock = "Authority Lane: Unspecified or Missing\n" +
	"Context: Mission metadata did not specify an authority lane. Keep analysis within documented mission scope and do not assume criminal, military, or intelligence authorities.\n" +
	"Prohibitions: Decline any recommendation that would require unverified legal powers or law-enforcement actions."

// BuildPolicyPrompt produces the reusable policy block: authority lane
// summary with do/don't examples, pivot history when present, INT
// sensitivity guidance, and the compliance reminder closing.
func BuildPolicyPrompt(authorityValue string, intCodes []string, historyLines []string) string {
	var authorityBlock, laneLabel string
	if lane, ok := authority.Parse(authorityValue); ok {
		authorityBlock = authority.PromptBlock(string(lane))
		laneLabel = authority.DescriptorFor(string(lane)).Label
	} else {
		authorityBlock = unspecifiedAuthorityBlock
		laneLabel = "the current mission lane"
	}

	normalized := ints.NormalizeCodes(intCodes)
	intsSection := "INT Sensitivity Notes:\n" + formatSensitivityLines(normalized)

	historySection := ""
	if body := joinNonEmpty(historyLines); body != "" {
		historySection = "Authority History:\n" + body + "\n\n"
	}

	approved := "OSINT defaults"
	if len(normalized) > 0 {
		approved = strings.Join(normalized, ", ")
	}
	closing := fmt.Sprintf(
		"Compliance Reminder: Hard boundaries override creativity. If any request conflicts with "+
			"%s guidance or the approved INT set (%s), "+
			"the assistant must refuse and issue a policy warning. When authority pivots occur, the assistant must "+
			"respect the current authority AND explicitly honor any risks or conditions documented in the pivot history.",
		laneLabel, approved,
	)

	return fmt.Sprintf("%s\n\n%s%s\n\n%s", authorityBlock, historySection, intsSection, closing)
}

func formatSensitivityLines(codes []string) string {
	if len(codes) == 0 {
		return "- Default OSINT posture: rely on publicly releasable information unless " +
			"specific INT authorizations are granted."
	}

	lines := make([]string, 0, len(codes))
	for _, code := range codes {
		if meta, ok := ints.Lookup(code); ok {
			lines = append(lines, fmt.Sprintf("- %s: %s", meta.Label, meta.LegalSensitivityNotes))
			continue
		}
		lines = append(lines, fmt.Sprintf(
			"- %s: Handle using standard minimization and legal review procedures.", code,
		))
	}
	return strings.Join(lines, "\n")
}

// KeywordIssues scans text for lane-specific forbidden terms and
// returns guardrail issue messages. An unrecognized authority yields a
// generic out-of-lane note rather than silent acceptance.
func KeywordIssues(authorityValue, text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lane, ok := authority.Parse(authorityValue)
	if !ok {
		return []string{
			"Note: Some requested content exceeded the mission's specified authority lane. The response has been limited accordingly.",
		}
	}

	hits := authority.KeywordHits(string(lane), text)
	if len(hits) == 0 {
		return nil
	}

	unique := slices.Compact(slices.Sorted(slices.Values(hits)))
	return []string{fmt.Sprintf(
		"Detected out-of-lane request referencing disallowed terms for %s: %s",
		authority.DescriptorFor(string(lane)).Label,
		strings.Join(unique, ", "),
	)}
}

// DisallowedInts reports INT selections not permitted under the
// authority. Unrecognized authorities return nothing; admission is
// enforced only for modeled lanes.
func DisallowedInts(authorityValue string, intCodes []string) []string {
	lane, ok := authority.Parse(authorityValue)
	if !ok {
		return nil
	}
	return authority.DisallowedInts(string(lane), intCodes)
}

func joinNonEmpty(lines []string) string {
	var kept []string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
