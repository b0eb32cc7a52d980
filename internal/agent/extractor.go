package agent

import (
	"context"
	"log/slog"
	"strings"

	"github.com/apex-intel/apex/internal/chat"
	"github.com/apex-intel/apex/internal/documents"
	"github.com/apex-intel/apex/internal/entities"
	"github.com/apex-intel/apex/internal/missions"
)

// ExtractionInput carries everything one extraction pass needs.
type ExtractionInput struct {
	Mission     *missions.Mission
	Documents   []documents.Document
	Profile     string
	PolicyBlock string
}

// Extractor produces structured entities and events from mission
// material. The orchestrator depends on this interface so tests can
// substitute deterministic extraction.
type Extractor interface {
	Extract(ctx context.Context, in ExtractionInput) ([]ExtractedEntity, []ExtractedEvent, error)
}

type llmExtractor struct {
	chat   chat.Client
	logger *slog.Logger
}

// NewExtractor creates the model-backed extractor.
func NewExtractor(chatClient chat.Client, logger *slog.Logger) Extractor {
	return llmExtractor{
		chat:   chatClient,
		logger: logger.With("system", "extractor"),
	}
}

func (e llmExtractor) Extract(ctx context.Context, in ExtractionInput) ([]ExtractedEntity, []ExtractedEvent, error) {
	text := BuildMissionContext(in.Mission, in.Documents)
	if strings.TrimSpace(text) == "" {
		return nil, nil, nil
	}

	c := caller{
		chat:        e.chat,
		logger:      e.logger,
		policyBlock: in.PolicyBlock,
		profile:     normalizeProfile(in.Profile),
	}

	extracted := c.extractEntities(ctx, text)
	extractedEvents := c.extractEvents(ctx, text)

	return dedupeEntities(extracted), extractedEvents, nil
}

// dedupeEntities keeps the first occurrence per normalized name.
func dedupeEntities(items []ExtractedEntity) []ExtractedEntity {
	seen := make(map[string]struct{}, len(items))
	kept := make([]ExtractedEntity, 0, len(items))

	for _, item := range items {
		key := entities.NormalizeName(item.Name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, item)
	}

	return kept
}
