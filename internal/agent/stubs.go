package agent

import (
	"fmt"
	"strings"

	"github.com/apex-intel/apex/internal/entities"
	"github.com/apex-intel/apex/internal/events"
	"github.com/apex-intel/apex/internal/guardrail"
	"github.com/apex-intel/apex/internal/missions"
)

// Stub payloads returned in demo mode and when a model call fails or
// produces an unparseable response. Each function returns a fresh copy
// so callers can mutate results safely.

func stubFacts() []Fact {
	return []Fact{
		{
			Statement:  "Sentinel Drone conducted reconnaissance over Sector 7",
			Confidence: 0.88,
			SourceRefs: []string{"Recon Flight Log"},
		},
		{
			Statement:  "Operative Vega briefed command on anomalies detected",
			Confidence: 0.82,
			SourceRefs: []string{"Briefing Notes"},
		},
		{
			Statement:  "Thermal readings spiked near Bravo checkpoint",
			Confidence: 0.75,
			SourceRefs: []string{"Thermal Scan"},
		},
	}
}

func stubEntities() []ExtractedEntity {
	return []ExtractedEntity{
		{
			Name:        "Sentinel Drone",
			Type:        "asset",
			Description: "Autonomous aerial reconnaissance platform.",
		},
		{
			Name:        "Operative Vega",
			Type:        "person",
			Description: "Field agent overseeing drone deployment.",
		},
	}
}

func stubEvents() []ExtractedEvent {
	ts1 := "2025-11-10T09:30:00+00:00"
	ts2 := "2025-11-11T15:00:00+00:00"
	loc1 := "Sector 7"
	loc2 := "Forward Ops Center"

	return []ExtractedEvent{
		{
			Title:     "Initial recon flight",
			Summary:   "Sentinel Drone captured thermal readings over Sector 7.",
			Timestamp: &ts1,
			Location:  &loc1,
		},
		{
			Title:     "Operator briefing",
			Summary:   "Operative Vega briefed command on reconnaissance anomalies.",
			Timestamp: &ts2,
			Location:  &loc2,
		},
	}
}

func stubGaps() GapAnalysis {
	return GapAnalysis{
		Gaps: []Gap{
			{
				Description: "Need confirmation on hostile presence causing thermal spike",
				Priority:    "high",
				RecommendedQuestions: []string{
					"Can reconnaissance assets obtain visual confirmation of the anomaly?",
					"Are there HUMINT sources near Bravo checkpoint?",
				},
			},
			{
				Description: "Communications route for relaying drone telemetry remains unclear",
				Priority:    "medium",
				RecommendedQuestions: []string{
					"Which network path is carrying the drone feed?",
					"Is there encryption in place on the uplink?",
				},
			},
		},
	}
}

const stubOperationalEstimate = "Sentinel Drone patrols continue to surveil Sector 7, where irregular thermal signatures" +
	" persist near Bravo checkpoint. Operative Vega and the forward detachment remain postured" +
	" to investigate the anomaly once corroborating intelligence is received." +
	"\n\nThe adversary has not revealed overt force dispositions but likely maintains a small" +
	" technical element in the area to mask activity. Friendly reconnaissance capacity" +
	" remains adequate, yet the mission hinges on rapidly validating the anomaly before" +
	" conditions degrade. Risk is moderate given uncertain hostile intent and limited" +
	" communications resiliency."

const stubDeltaSummary = "New reconnaissance sorties identified persistent anomalies in Sector 7, but no direct" +
	" hostile contact has occurred since the prior run. Friendly posture is unchanged," +
	" though emphasis shifted toward validating the unexplained thermal spike. Overall" +
	" risk remains steady pending additional collection."

func stubCrossDocument() CrossDocument {
	return CrossDocument{
		CorroboratedFindings: []string{
			"Thermal anomalies near Bravo checkpoint align with drone telemetry and field notes",
		},
		Contradictions: []string{
			"Briefing claims enemy withdrawal while SIGINT suggests continued transmissions",
		},
		NotableTrends: []string{
			"Increased emphasis on validating anomalies before committing forces",
		},
	}
}

func stubSelfVerify() guardrail.SelfVerification {
	return guardrail.SelfVerification{
		InternalConsistency:  "good",
		ConfidenceAdjustment: 0.0,
		Notes: []string{
			"Assessment aligns with observed facts; no major contradictions detected.",
		},
	}
}

func stubReview() guardrail.Review {
	return guardrail.Review{
		Status: "OK",
		Issues: []string{},
	}
}

// stubSummary derives a deterministic summary from the merged state so
// demo output still reflects the mission's actual records.
func stubSummary(ents []entities.Entity, evs []events.Event) string {
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		names = append(names, e.Name)
	}
	entityNames := strings.Join(names, ", ")
	if entityNames == "" {
		entityNames = "Unknown entities"
	}

	titles := make([]string, 0, len(evs))
	for _, ev := range evs {
		titles = append(titles, ev.Title)
	}
	eventTitles := strings.Join(titles, ", ")
	if eventTitles == "" {
		eventTitles = "no recorded events"
	}

	return fmt.Sprintf("Mission involves entities: %s. Recent events include: %s.", entityNames, eventTitles)
}

// stubTemplateReport renders a skeleton product from the template's
// section list so demo output still follows the requested structure.
func stubTemplateReport(tmpl *ReportTemplate, mission *missions.Mission) string {
	lines := []string{
		fmt.Sprintf("# %s - %s", tmpl.Title, mission.Name),
		fmt.Sprintf("Authority: %s", mission.PrimaryAuthority),
	}
	for _, section := range tmpl.Sections {
		lines = append(lines, fmt.Sprintf("\n## %s\nNone available.", section))
	}
	return strings.Join(lines, "\n")
}

func stubNextSteps(evs []events.Event) string {
	if len(evs) == 0 {
		return "Review mission scope and gather additional field intelligence."
	}

	location := "the field"
	last := evs[len(evs)-1]
	if last.Location != nil && *last.Location != "" {
		location = *last.Location
	}
	return fmt.Sprintf(
		"Deploy Operative Vega to validate drone telemetry anomalies in %s and schedule a follow-up briefing.",
		location,
	)
}
