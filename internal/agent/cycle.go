package agent

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/apex-intel/apex/internal/chat"
	"github.com/apex-intel/apex/internal/documents"
	"github.com/apex-intel/apex/internal/entities"
	"github.com/apex-intel/apex/internal/events"
	"github.com/apex-intel/apex/internal/guardrail"
	"github.com/apex-intel/apex/internal/kg"
	"github.com/apex-intel/apex/internal/missions"
	"github.com/apex-intel/apex/internal/policy"
	"github.com/apex-intel/apex/internal/runs"
)

// Config wires the orchestrator's collaborators.
type Config struct {
	Missions  missions.System
	Documents documents.System
	Entities  entities.System
	Events    events.System
	Runs      runs.System
	Chat      chat.Client
	Graph     kg.System
	Extractor Extractor
	Reviewer  guardrail.Reviewer
	Logger    *slog.Logger
}

// Orchestrator executes the end-to-end analysis cycle for a mission.
type Orchestrator struct {
	missions  missions.System
	documents documents.System
	entities  entities.System
	events    events.System
	runs      runs.System
	chat      chat.Client
	graph     kg.System
	extractor Extractor
	reviewer  guardrail.Reviewer
	logger    *slog.Logger
}

// New creates an Orchestrator. Extractor and Reviewer default to the
// model-backed implementations when left nil.
func New(cfg Config) *Orchestrator {
	logger := cfg.Logger.With("system", "agent")

	extractor := cfg.Extractor
	if extractor == nil {
		extractor = NewExtractor(cfg.Chat, logger)
	}

	reviewer := cfg.Reviewer
	if reviewer == nil {
		reviewer = NewReviewer(cfg.Chat, logger)
	}

	return &Orchestrator{
		missions:  cfg.Missions,
		documents: cfg.Documents,
		entities:  cfg.Entities,
		events:    cfg.Events,
		runs:      cfg.Runs,
		chat:      cfg.Chat,
		graph:     cfg.Graph,
		extractor: extractor,
		reviewer:  reviewer,
		logger:    logger,
	}
}

// Execute runs one full analysis cycle. Every model stage degrades to
// stub output on failure; only a missing mission or a storage failure
// aborts the cycle.
func (o *Orchestrator) Execute(ctx context.Context, missionID uuid.UUID, profile string) (*CycleResult, error) {
	profile = normalizeProfile(profile)

	mission, err := o.missions.Find(ctx, missionID)
	if err != nil {
		return nil, err
	}

	policyCtx, err := o.missions.PolicyContext(ctx, missionID)
	if err != nil {
		return nil, err
	}

	historyEntries := policy.BuildHistory(policyCtx.OriginalAuthority, policyCtx.CreatedAt, policyCtx.Pivots)
	historyLines := policy.RenderHistoryLines(historyEntries)
	policyBlock := policy.BuildPolicyPrompt(mission.PrimaryAuthority, mission.IntTypes, historyLines)

	docs, err := o.documents.ListForAnalysis(ctx, missionID)
	if err != nil {
		return nil, err
	}

	call := caller{
		chat:        o.chat,
		logger:      o.logger,
		policyBlock: policyBlock,
		profile:     profile,
	}

	missionContext := BuildMissionContext(mission, docs)

	var facts []Fact
	if strings.TrimSpace(missionContext) != "" {
		facts = call.extractRawFacts(ctx, missionContext)
	}

	extractedEntities, extractedEvents, err := o.extractor.Extract(ctx, ExtractionInput{
		Mission:     mission,
		Documents:   docs,
		Profile:     profile,
		PolicyBlock: policyBlock,
	})
	if err != nil {
		return nil, err
	}

	previousEvents, err := o.events.ListForMission(ctx, missionID)
	if err != nil {
		return nil, err
	}

	mergedEntities, err := o.entities.Merge(ctx, missionID, entityCandidates(extractedEntities))
	if err != nil {
		return nil, err
	}

	entityIDs := make(map[string]uuid.UUID, len(mergedEntities))
	for _, e := range mergedEntities {
		entityIDs[entities.NormalizeName(e.Name)] = e.ID
	}

	mergedEvents, err := o.events.Merge(ctx, missionID, eventCandidates(extractedEvents), entityIDs)
	if err != nil {
		return nil, err
	}

	analysisPayload := map[string]any{
		"profile":  profile,
		"facts":    facts,
		"entities": mergedEntities,
		"events":   mergedEvents,
	}

	gapSystem := policy.BuildSystemPrompt(policy.Context{
		Mission:   policyCtx,
		KGMetrics: o.graphMetrics(ctx, mission),
	}, gapSystemPrompt)
	gaps := call.detectGaps(ctx, gapSystem, analysisPayload)
	cross := call.crossDocumentAnalysis(ctx, analysisPayload)
	estimate := call.generateEstimate(ctx, analysisPayload)

	contextJSON := serializePayload(map[string]any{
		"entities": mergedEntities,
		"events":   mergedEvents,
	})

	summaryCore := call.summarizeMission(ctx, contextJSON, func() string {
		return stubSummary(mergedEntities, mergedEvents)
	})

	summary := assembleSummary(summaryCore, estimate, cross)

	nextSteps := call.suggestNextSteps(ctx, contextJSON, func() string {
		return stubNextSteps(mergedEvents)
	})

	verification := call.selfVerify(ctx, map[string]any{
		"profile":  profile,
		"facts":    facts,
		"entities": mergedEntities,
		"events":   mergedEvents,
		"summary":  summaryCore,
		"estimate": estimate,
	})

	previousRun, err := o.runs.Latest(ctx, missionID)
	if err != nil {
		return nil, err
	}

	var previousSummary *string
	if previousRun != nil {
		previousSummary = &previousRun.Summary
	}

	delta := call.generateDelta(ctx, map[string]any{
		"previous_summary": previousSummary,
		"previous_events":  previousEvents,
		"current_summary":  summaryCore,
		"current_events":   mergedEvents,
	})

	heuristic := guardrail.RunHeuristics(guardrail.HeuristicInput{
		Summary:           summary,
		NextSteps:         nextSteps,
		Authority:         mission.PrimaryAuthority,
		HistoryLines:      historyLines,
		HasDocuments:      len(docs) > 0,
		OriginalAuthority: mission.OriginalAuthority,
		CurrentAuthority:  mission.PrimaryAuthority,
		HasPivots:         len(policyCtx.Pivots) > 0,
	})

	analytic := guardrail.EvaluateAnalytic(ctx, o.reviewer, guardrail.AnalyticInput{
		Profile:           profile,
		Authority:         mission.PrimaryAuthority,
		PolicyBlock:       policyBlock,
		Summary:           summary,
		Estimate:          estimate,
		FactCount:         len(facts),
		EntityCount:       len(mergedEntities),
		EventCount:        len(mergedEvents),
		TimestampedEvents: countTimestamped(mergedEvents),
		HighPriorityGaps:  countHighPriority(gaps.Gaps),
		Contradictions:    cross.Contradictions,
		GapsPayload:       gaps,
		CrossPayload:      cross,
		HistoryLines:      historyLines,
		OriginalAuthority: mission.OriginalAuthority,
		CurrentAuthority:  mission.PrimaryAuthority,
		HasPivots:         len(policyCtx.Pivots) > 0,
	})

	fused := guardrail.Fuse(heuristic, analytic, verification)

	runStatus := runs.StatusCompleted
	if fused.Severity == guardrail.SeverityBlocked {
		runStatus = runs.StatusFailed
	}

	run, err := o.runs.Create(ctx, runs.CreateCommand{
		MissionID:       missionID,
		Status:          runStatus,
		Summary:         summary,
		NextSteps:       nextSteps,
		GuardrailStatus: fused.Status,
		GuardrailIssues: fused.Issues,
	})
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(gaps); err == nil {
		if err := o.missions.SaveGapAnalysis(ctx, missionID, encoded); err != nil {
			o.logger.Warn("failed to persist gap analysis", "mission_id", missionID, "error", err)
		}
	}

	ingested := o.ingestGraph(ctx, missionID, mergedEntities, mergedEvents)

	o.logger.Info("agent cycle complete",
		"mission_id", missionID,
		"run_id", run.ID,
		"status", run.Status,
		"guardrail_status", run.GuardrailStatus,
	)

	return &CycleResult{
		Run:           *run,
		RawFacts:      facts,
		Gaps:          gaps.Gaps,
		DeltaSummary:  delta,
		CrossDocument: cross,
		Verification:  verification,
		Entities:      mergedEntities,
		Events:        mergedEvents,
		KGIngested:    ingested,
	}, nil
}

// graphMetrics fetches the current graph summary for the mission's
// namespace. Returns nil when the graph service is absent, the mission
// has no namespace yet, or the summary call fails.
func (o *Orchestrator) graphMetrics(ctx context.Context, mission *missions.Mission) *kg.Metrics {
	if o.graph == nil || mission.KGNamespace == nil || *mission.KGNamespace == "" {
		return nil
	}

	metrics, err := o.graph.GraphSummary(ctx, *mission.KGNamespace)
	if err != nil {
		o.logger.Warn("graph summary unavailable", "namespace", *mission.KGNamespace, "error", err)
		return nil
	}
	return metrics
}

// ingestGraph pushes the cycle's structured output to the knowledge
// graph service. Failures are logged and discarded; the cycle result
// never depends on graph availability.
func (o *Orchestrator) ingestGraph(ctx context.Context, missionID uuid.UUID, ents []entities.Entity, evs []events.Event) bool {
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

	payload := map[string]any{
		"entities": ents,
		"events":   evs,
	}
	metadata := map[string]any{
		"mission_id": missionID.String(),
		"source":     "agent-cycle",
	}

	if _, err := o.graph.IngestJSON(ctx, namespace, "Agent Cycle Artifacts", payload, metadata); err != nil {
		o.logger.Warn("graph ingest failed", "namespace", namespace, "error", err)
		return false
	}
	return true
}

func assembleSummary(core, estimate string, cross CrossDocument) string {
	sections := make([]string, 0, 3)

	if trimmed := strings.TrimSpace(core); trimmed != "" {
		sections = append(sections, trimmed)
	}
	sections = append(sections, strings.TrimSpace("Operational Estimate:\n"+estimate))

	var crossSections []string
	appendSection := func(label string, entries []string) {
		var bullets []string
		for _, entry := range entries {
			if strings.TrimSpace(entry) != "" {
				bullets = append(bullets, "- "+entry)
			}
		}
		if len(bullets) > 0 {
			crossSections = append(crossSections, label+":\n"+strings.Join(bullets, "\n"))
		}
	}
	appendSection("Corroborated Findings", cross.CorroboratedFindings)
	appendSection("Contradictions", cross.Contradictions)
	appendSection("Notable Trends", cross.NotableTrends)

	if len(crossSections) > 0 {
		sections = append(sections, "Cross-Document Insights:\n"+strings.Join(crossSections, "\n"))
	}

	return strings.Join(sections, "\n\n")
}

func entityCandidates(items []ExtractedEntity) []entities.Candidate {
	candidates := make([]entities.Candidate, 0, len(items))
	for _, item := range items {
		candidates = append(candidates, entities.Candidate{
			Name:        strings.TrimSpace(item.Name),
			Type:        item.Type,
			Description: item.Description,
		})
	}
	return candidates
}

func eventCandidates(items []ExtractedEvent) []events.Candidate {
	candidates := make([]events.Candidate, 0, len(items))
	for _, item := range items {
		candidates = append(candidates, events.Candidate{
			Title:       strings.TrimSpace(item.Title),
			Description: item.Summary,
			Timestamp:   parseEventTimestamp(item.Timestamp),
			Location:    item.Location,
		})
	}
	return candidates
}

// parseEventTimestamp parses model-produced timestamps leniently:
// RFC 3339 values pass through and zone-less values are assumed UTC.
// Unparseable values become nil rather than failing the cycle.
func parseEventTimestamp(value *string) *time.Time {
	if value == nil {
		return nil
	}

	raw := strings.TrimSpace(*value)
	if raw == "" {
		return nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC().Truncate(time.Second)
		return &t
	}
	if t, err := time.Parse("2006-01-02T15:04:05", raw); err == nil {
		t = t.UTC().Truncate(time.Second)
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		t = t.UTC()
		return &t
	}
	return nil
}

func countTimestamped(evs []events.Event) int {
	count := 0
	for _, ev := range evs {
		if ev.Timestamp != nil {
			count++
		}
	}
	return count
}

func countHighPriority(gaps []Gap) int {
	count := 0
	for _, gap := range gaps {
		if strings.EqualFold(gap.Priority, "high") {
			count++
		}
	}
	return count
}
