// Package kg provides a narrow client for the knowledge-graph service
// and helpers for summarizing graph state in prompts.
package kg

import (
	"fmt"
	"strings"
)

// TopLabel is one of the most frequent node labels in a namespace.
type TopLabel struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Metrics captures the graph summary returned by the service.
type Metrics struct {
	NodeCount int        `json:"node_count"`
	EdgeCount int        `json:"edge_count"`
	TopLabels []TopLabel `json:"top_labels,omitempty"`
}

// IngestResult reports the outcome of a document ingest call.
type IngestResult struct {
	DocumentID string `json:"document_id,omitempty"`
	Nodes      int    `json:"nodes,omitempty"`
	Edges      int    `json:"edges,omitempty"`
}

// Namespace derives the graph namespace for a mission identifier.
func Namespace(missionID string) string {
	return fmt.Sprintf("mission-%s", missionID)
}

// SummarizeMetrics renders a compact single-line description of graph
// state for prompt conditioning. A nil metrics value means the graph
// was never initialized for the mission.
func SummarizeMetrics(metrics *Metrics) string {
	if metrics == nil {
		return "Knowledge graph has not been initialized yet."
	}

	parts := []string{
		fmt.Sprintf("Nodes: %d", metrics.NodeCount),
		fmt.Sprintf("Edges: %d", metrics.EdgeCount),
	}

	if len(metrics.TopLabels) > 0 {
		labels := make([]string, 0, min(len(metrics.TopLabels), 4))
		for _, top := range metrics.TopLabels {
			if top.Label == "" {
				continue
			}
			labels = append(labels, top.Label)
			if len(labels) == 4 {
				break
			}
		}
		if len(labels) > 0 {
			parts = append(parts, "Top labels: "+strings.Join(labels, ", "))
		}
	}

	return strings.Join(parts, " | ")
}
