package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/apex-intel/apex/internal/authority"
	"github.com/apex-intel/apex/internal/missions"
	"github.com/apex-intel/apex/internal/policy"
)

// Report-generation errors.
var (
	ErrUnknownTemplate    = errors.New("unknown report template")
	ErrTemplateNotAllowed = errors.New("template not available under the mission's authority")
)

// ReportTemplate describes one of the built-in report formats. A
// template is only offered to missions whose current authority lane
// appears in Authorities.
type ReportTemplate struct {
	Key         string                `json:"key"`
	Title       string                `json:"title"`
	Purpose     string                `json:"purpose"`
	Sections    []string              `json:"sections"`
	Authorities []authority.Authority `json:"authorities"`
}

var reportTemplates = []ReportTemplate{
	{
		Key:     "leo_case_summary",
		Title:   "LEO Case Summary",
		Purpose: "Structured law-enforcement case narrative with evidence, gaps, and actions.",
		Sections: []string{
			"Key Judgments",
			"Incident Overview",
			"Subjects & Associates",
			"Modus Operandi",
			"Evidence & Corroboration",
			"Gaps & Constraints",
			"Recommended Actions",
			"Risk & Civil Liberties",
		},
		Authorities: []authority.Authority{authority.LEOFed, authority.LEOStateLocal},
	},
	{
		Key:     "osint_pattern_of_life",
		Title:   "OSINT Pattern of Life",
		Purpose: "Open-source behavioral and identity brief for a subject of interest.",
		Sections: []string{
			"Executive Summary",
			"Subject Identifiers",
			"Platform Activity",
			"Temporal & Spatial Patterns",
			"Network & Affiliations",
			"Gaps & Confidence",
			"Recommended Next Steps",
		},
		Authorities: []authority.Authority{authority.LEOFed, authority.LEOStateLocal, authority.DHSHS},
	},
	{
		Key:     "full_intrep",
		Title:   "Full INTREP",
		Purpose: "All-source intelligence report for joint or interagency consumers.",
		Sections: []string{
			"Executive Summary",
			"Situation & Context",
			"Intelligence Picture",
			"Assessment & Judgments",
			"Courses of Action",
			"Gaps & Collection",
			"Risks",
		},
		Authorities: []authority.Authority{
			authority.T10Mil,
			authority.T50Int,
			authority.LEOFed,
			authority.DHSHS,
			authority.NATOCoal,
		},
	},
	{
		Key:     "delta_update",
		Title:   "Delta Update",
		Purpose: "Change log highlighting what shifted since the last approved product.",
		Sections: []string{
			"Executive Summary",
			"New or Changed Facts",
			"Updated Assessments",
			"Updated Gaps",
			"Updated Recommended Actions",
		},
		Authorities: []authority.Authority{
			authority.T10Mil,
			authority.T50Int,
			authority.LEOFed,
			authority.DSCA,
		},
	},
}

const reportTaskInstructions = "You are an intelligence reporting assistant generating a mission-ready product.\n" +
	"- Use the supplied mission context, structured intel, and knowledge graph metrics only.\n" +
	"- Enforce all authority and INT guardrails before writing.\n" +
	"- Follow the selected template's structure and tone exactly, filling every required section."

// findTemplate resolves a template key and checks it against the
// mission's current authority lane.
func findTemplate(key, missionAuthority string) (*ReportTemplate, error) {
	normalized := strings.ToLower(strings.TrimSpace(key))
	var tmpl *ReportTemplate
	for i := range reportTemplates {
		if reportTemplates[i].Key == normalized {
			tmpl = &reportTemplates[i]
			break
		}
	}
	if tmpl == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, key)
	}

	lane := authority.Normalize(missionAuthority)
	for _, allowed := range tmpl.Authorities {
		if allowed == lane {
			return tmpl, nil
		}
	}
	return nil, fmt.Errorf("%w: %s under %s", ErrTemplateNotAllowed, tmpl.Key, lane)
}

func templateInstructions(tmpl *ReportTemplate) string {
	return fmt.Sprintf(
		"Template: %s (key=%s)\nPurpose: %s\nSections: %s\n\n%s",
		tmpl.Title, tmpl.Key, tmpl.Purpose, strings.Join(tmpl.Sections, "; "),
		reportTaskInstructions,
	)
}

// ReportResult is the template-report response payload.
type ReportResult struct {
	MissionID   uuid.UUID               `json:"mission_id"`
	Report      missions.TemplateReport `json:"report"`
	RetainedMax int                     `json:"retained_max"`
	KGIngested  bool                    `json:"kg_ingested"`
}

// GenerateReport renders a template report for the mission: the
// selected template's instructions are composed with the mission's
// policy block, authority history, and current graph summary, the
// mission's structured intel is handed to the model as context, and
// the rendered product is appended to the mission's retained reports.
func (o *Orchestrator) GenerateReport(ctx context.Context, missionID uuid.UUID, templateKey string) (*ReportResult, error) {
	mission, err := o.missions.Find(ctx, missionID)
	if err != nil {
		return nil, err
	}

	tmpl, err := findTemplate(templateKey, mission.PrimaryAuthority)
	if err != nil {
		return nil, err
	}

	policyCtx, err := o.missions.PolicyContext(ctx, missionID)
	if err != nil {
		return nil, err
	}

	ents, err := o.entities.ListForMission(ctx, missionID)
	if err != nil {
		return nil, err
	}
	evs, err := o.events.ListForMission(ctx, missionID)
	if err != nil {
		return nil, err
	}

	system := policy.BuildSystemPrompt(policy.Context{
		Mission:   policyCtx,
		KGMetrics: o.graphMetrics(ctx, mission),
	}, templateInstructions(tmpl))

	payload := map[string]any{
		"mission":  map[string]any{"name": mission.Name, "description": mission.Description},
		"entities": ents,
		"events":   evs,
	}

	call := caller{chat: o.chat, logger: o.logger, profile: ProfileHumint}
	content := call.renderReport(ctx, system, payload, func() string {
		return stubTemplateReport(tmpl, mission)
	})

	report := missions.TemplateReport{
		TemplateKey: tmpl.Key,
		Title:       fmt.Sprintf("%s - %s", tmpl.Title, mission.Name),
		Content:     content,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := o.missions.AppendTemplateReport(ctx, missionID, report); err != nil {
		return nil, err
	}

	ingested := o.ingestReport(ctx, missionID, report)

	o.logger.Info("template report generated",
		"mission_id", missionID,
		"template", tmpl.Key,
		"kg_ingested", ingested,
	)

	return &ReportResult{
		MissionID:   missionID,
		Report:      report,
		RetainedMax: missions.TemplateReportLimit,
		KGIngested:  ingested,
	}, nil
}

// ingestReport pushes the rendered report text to the knowledge graph.
// Best effort, same as cycle artifact ingestion.
func (o *Orchestrator) ingestReport(ctx context.Context, missionID uuid.UUID, report missions.TemplateReport) bool {
	if o.graph == nil {
		return false
	}

	namespace, err := o.missions.EnsureNamespace(ctx, missionID)
	if err != nil {
		o.logger.Warn("failed to resolve graph namespace", "mission_id", missionID, "error", err)
		return false
	}

	if err := o.graph.InitNamespace(ctx, namespace); err != nil {
		o.logger.Warn("graph namespace init failed", "namespace", namespace, "error", err)
		return false
	}

	metadata := map[string]any{
		"mission_id":   missionID.String(),
		"template_key": report.TemplateKey,
		"source":       "template-report",
	}

	if _, err := o.graph.IngestDocument(ctx, namespace, report.Title, report.Content, metadata); err != nil {
		o.logger.Warn("graph ingest failed", "namespace", namespace, "error", err)
		return false
	}
	return true
}
