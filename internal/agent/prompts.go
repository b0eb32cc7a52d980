package agent

import (
	"fmt"
	"strings"

	"github.com/apex-intel/apex/internal/documents"
	"github.com/apex-intel/apex/internal/missions"
)

var profileFocus = map[string]string{
	ProfileHumint: "Emphasize PERSON, GROUP, ORGANIZATION, LOCATION, FACILITY, and intent relationships.",
	ProfileSigint: "Emphasize PLATFORM, NODE, NETWORK, FREQUENCY, SIGNAL, SENSOR, and technical infrastructure.",
	ProfileOsint:  "Emphasize ORGANIZATION, MEDIA_OUTLET, WEBSITE, COMPANY, EVENT, and public indicators.",
}

func profileHint(profile string) string {
	if hint, ok := profileFocus[strings.ToLower(profile)]; ok {
		return hint
	}
	return profileFocus[ProfileHumint]
}

func profileHeader(profile string) string {
	return fmt.Sprintf("Analysis profile: %s - %s", strings.ToUpper(profile), profileHint(profile))
}

const metaBanRules = "Do NOT mention 'mission text', 'JSON', 'context', 'Agent Run Advisory', internal variable names (e.g., evidence.incidents[0]), or Event IDs in your response."

const (
	extractionSystemPrompt = "You are an intelligence extraction engine supporting mission analysis." +
		" You must return ONLY valid JSON arrays with no commentary, preamble, or explanation."

	rawFactsSystemPrompt = "You are an intelligence analyst extracting atomic facts from mission material." +
		" Output ONLY JSON as instructed."

	gapSystemPrompt = "You are an all-source analyst identifying collection gaps and follow-up questions." +
		" Output ONLY the requested JSON."

	estimateSystemPrompt = "You are producing an operational estimate for the mission. Provide an analytical," +
		" prose narrative grounded only in the supplied context."

	deltaSystemPrompt = "You compare successive intelligence updates and describe what changed, remained" +
		" constant, or escalated. Respond in concise prose."

	crossDocSystemPrompt = "You are an all-source intelligence analyst performing cross-document reasoning." +
		" Respond ONLY with the requested JSON object."

	selfVerifySystemPrompt = "You are reviewing your own intelligence assessment for internal consistency and errors." +
		" Respond ONLY with the requested JSON object."

	reviewSystemPrompt = "You validate intelligence assessments for analytic quality, sourcing, and red flags." +
		" Respond ONLY with the requested JSON object."

	summarySystemPrompt = "You are a strategic intelligence analyst. Produce concise, objective assessments " +
		"based solely on the provided structured context. " + metaBanRules

	nextStepsSystemPrompt = "You are an operations planner. Recommend actionable follow-up steps based on the structured context. " + metaBanRules
)

// BuildMissionContext renders the mission header and its included
// documents as the text block all extraction prompts operate on.
// Returns "" when there is nothing to analyze.
func BuildMissionContext(mission *missions.Mission, docs []documents.Document) string {
	var sections []string

	header := []string{fmt.Sprintf("Mission: %s", mission.Name)}
	if desc := strings.TrimSpace(mission.Description); desc != "" {
		header = append(header, fmt.Sprintf("Description: %s", desc))
	}
	sections = append(sections, strings.Join(header, "\n"))

	idx := 0
	for _, doc := range docs {
		if !doc.IncludeInAnalysis {
			continue
		}
		idx++

		lines := []string{fmt.Sprintf("Document %d:", idx)}
		if doc.Title != nil && *doc.Title != "" {
			lines = append(lines, fmt.Sprintf("Title: %s", *doc.Title))
		}
		lines = append(lines, fmt.Sprintf("Timestamp: %s", doc.CreatedAt.Format("2006-01-02T15:04:05Z07:00")))
		if content := strings.TrimSpace(doc.Content); content != "" {
			lines = append(lines, "Content:", content)
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	var kept []string
	for _, s := range sections {
		if strings.TrimSpace(s) != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "\n\n")
}

func entityPrompt(text, profile string) string {
	return fmt.Sprintf(
		"%s\n"+
			"Extract mission-relevant entities aligned with this focus.\n"+
			"Output MUST be a JSON array. Each entity object requires keys: name (string), type (string), description (string).\n"+
			"Be specific with `type` (e.g., PERSON, FACILITY, NETWORK, PLATFORM).\n"+
			"Mission text to analyze:\n%s\n"+
			"Return ONLY JSON.",
		profileHeader(profile), text,
	)
}

func eventPrompt(text, profile string) string {
	return fmt.Sprintf(
		"%s\n"+
			"Identify discrete mission events (who/what/when/where).\n"+
			"Return a JSON array of objects with keys: title, summary, timestamp (ISO8601 or null), location (string or null).\n"+
			"Infer timestamps and locations when clearly implied (e.g., 'at 0930Z', 'near Bravo checkpoint').\n"+
			"Mission text to analyze:\n%s\n"+
			"Return ONLY JSON.",
		profileHeader(profile), text,
	)
}

func rawFactsPrompt(text, profile string) string {
	return fmt.Sprintf(
		"%s\n"+
			"Extract atomic mission facts. Each fact must be a single statement without conjunctions.\n"+
			"Output MUST be a JSON array of objects with keys: statement (string), confidence (0-1 float), source_refs (array of strings).\n"+
			"Mission text:\n%s\n"+
			"Return ONLY JSON.",
		profileHeader(profile), text,
	)
}

func gapsPrompt(payload any) string {
	return fmt.Sprintf(
		"Identify missing information that would materially improve this analysis.\n"+
			"Return ONLY JSON with the schema: {\"gaps\": [{\"description\": str, \"priority\": \"high|medium|low\", \"recommended_questions\": [str]}]}\n"+
			"Context JSON follows:\n%s",
		serializePayload(payload),
	)
}

func reportPrompt(payload any) string {
	return fmt.Sprintf(
		"Write the full report now, filling every section of the template in order.\n"+
			"Use ONLY the structured mission context below; where data is missing, state 'None available'.\n"+
			"Respond with the finished report text and nothing else.\n"+
			"Context JSON:\n%s",
		serializePayload(payload),
	)
}

func estimatePrompt(profile string, payload any) string {
	return fmt.Sprintf(
		"%s\n"+
			"Produce a 2-3 paragraph operational estimate covering situation, enemy/target, friendly considerations, and risk assessment.\n"+
			"Use ONLY the structured context below:\n%s",
		profileHeader(profile), serializePayload(payload),
	)
}

func summaryPrompt(profile, contextJSON string) string {
	guardBlock := "You are an intelligence analyst supporting this mission." +
		" Use ONLY the entities/events JSON." +
		" Do NOT invent new incidents, locations, or organizations." +
		" Do NOT mention JSON, mission text, context, Agent Run Advisory, or variable names like Event ID 3 or evidence.incidents[0]." +
		" If data is missing, note 'None available'." +
		" Write as a final product, not as an explanation of inputs."

	return fmt.Sprintf(
		"%s\n%s\n"+
			"Task: Produce a concise (<=120 words) analytic summary highlighting intent, capabilities, and assessed risk without referencing JSON or 'context'.\n"+
			"Input JSON (entities + events):\n%s",
		profileHeader(profile), guardBlock, contextJSON,
	)
}

func nextStepsPrompt(profile, contextJSON string) string {
	guardBlock := "You are an intelligence analyst recommending lawful next steps for this mission." +
		" Use ONLY the entities/events JSON." +
		" Do NOT invent new proper nouns or authorities." +
		" Do NOT mention JSON, mission text, context, Agent Run Advisory, or variable names like Event ID 3 or evidence.incidents[0]." +
		" If information is missing, state that a prerequisite is needed." +
		" Write as final tasking guidance, not as meta commentary."

	return fmt.Sprintf(
		"%s\n%s\n"+
			"Task: Recommend 3-7 actionable next steps (collection, coordination, verification, or tasking) tied to the available evidence."+
			" Respond with a brief numbered list or bullet list without referencing JSON.\n"+
			"Input JSON (entities + events):\n%s",
		profileHeader(profile), guardBlock, contextJSON,
	)
}

func deltaPrompt(payload any) string {
	return fmt.Sprintf(
		"Compare the prior and current updates. Describe what is new, what remains unchanged, and any escalation/de-escalation.\n"+
			"Respond with 1-2 short paragraphs.\n"+
			"Context JSON:\n%s",
		serializePayload(payload),
	)
}

func crossDocPrompt(profile string, payload any) string {
	return fmt.Sprintf(
		"%s\n"+
			"Identify corroborated findings, contradictions, and notable trends observed across documents.\n"+
			"Return ONLY JSON with keys: corroborated_findings (list of strings), contradictions (list of strings), notable_trends (list of strings).\n"+
			"Context JSON:\n%s",
		profileHeader(profile), serializePayload(payload),
	)
}

func selfVerifyPrompt(profile string, payload any) string {
	return fmt.Sprintf(
		"%s\n"+
			"Evaluate the internal consistency of this assessment. Identify obvious contradictions or missing logic.\n"+
			"Return ONLY JSON with keys: internal_consistency (good|questionable|poor), confidence_adjustment (float in [-0.5,0.5]), notes (list of strings).\n"+
			"Context JSON:\n%s",
		profileHeader(profile), serializePayload(payload),
	)
}

func reviewPrompt(profile string, payload any) string {
	return fmt.Sprintf(
		"%s\n"+
			"Evaluate this assessment for analytic quality, sourcing, and red flags.\n"+
			"Return ONLY JSON with keys: status (OK|CAUTION|REVIEW) and issues (list of strings).\n"+
			"Context JSON:\n%s",
		profileHeader(profile), serializePayload(payload),
	)
}
