package kg_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/apex-intel/apex/internal/kg"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNamespace(t *testing.T) {
	if got := kg.Namespace("abc-123"); got != "mission-abc-123" {
		t.Errorf("Namespace() = %q, want mission-abc-123", got)
	}
}

func TestSummarizeMetrics(t *testing.T) {
	tests := []struct {
		name    string
		metrics *kg.Metrics
		want    string
	}{
		{
			"nil metrics",
			nil,
			"Knowledge graph has not been initialized yet.",
		},
		{
			"counts only",
			&kg.Metrics{NodeCount: 12, EdgeCount: 30},
			"Nodes: 12 | Edges: 30",
		},
		{
			"top labels capped at four",
			&kg.Metrics{
				NodeCount: 5,
				EdgeCount: 8,
				TopLabels: []kg.TopLabel{
					{Label: "Person", Count: 3},
					{Label: "", Count: 2},
					{Label: "Place", Count: 2},
					{Label: "Org", Count: 1},
					{Label: "Asset", Count: 1},
					{Label: "Extra", Count: 1},
				},
			},
			"Nodes: 5 | Edges: 8 | Top labels: Person, Place, Org, Asset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kg.SummarizeMetrics(tt.metrics); got != tt.want {
				t.Errorf("SummarizeMetrics() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInitNamespace(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"created", http.StatusCreated, false},
		{"already exists", http.StatusConflict, false},
		{"server error", http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/kg/namespaces" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client := kg.NewClient(srv.URL, time.Second, testLogger())
			err := client.InitNamespace(context.Background(), "mission-x")
			if (err != nil) != tt.wantErr {
				t.Errorf("InitNamespace() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGraphSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/graph/summary" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("project_id"); got != "mission-x" {
			t.Errorf("project_id = %q", got)
		}
		json.NewEncoder(w).Encode(kg.Metrics{NodeCount: 4, EdgeCount: 7})
	}))
	defer srv.Close()

	client := kg.NewClient(srv.URL, time.Second, testLogger())
	metrics, err := client.GraphSummary(context.Background(), "mission-x")
	if err != nil {
		t.Fatalf("GraphSummary() error: %v", err)
	}
	if metrics.NodeCount != 4 || metrics.EdgeCount != 7 {
		t.Errorf("metrics = %+v", metrics)
	}
}

func TestIngestJSON(t *testing.T) {
	var received struct {
		Namespace string         `json:"namespace"`
		Title     string         `json:"title"`
		Text      string         `json:"text"`
		Metadata  map[string]any `json:"metadata"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/kg/mission-x/documents" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(kg.IngestResult{DocumentID: "doc-1", Nodes: 2, Edges: 1})
	}))
	defer srv.Close()

	client := kg.NewClient(srv.URL, time.Second, testLogger())
	result, err := client.IngestJSON(context.Background(), "mission-x", "Artifacts",
		map[string]any{"facts": []string{"a"}},
		map[string]any{"source": "agent-cycle"},
	)
	if err != nil {
		t.Fatalf("IngestJSON() error: %v", err)
	}
	if result.DocumentID != "doc-1" {
		t.Errorf("result = %+v", result)
	}

	if received.Title != "Artifacts" || received.Namespace != "mission-x" {
		t.Errorf("payload = %+v", received)
	}

	var text map[string]any
	if err := json.Unmarshal([]byte(received.Text), &text); err != nil {
		t.Errorf("ingested text is not JSON: %v", err)
	}
	if received.Metadata["source"] != "agent-cycle" {
		t.Errorf("metadata = %v", received.Metadata)
	}
}

func TestIngestDocumentDefaultTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Title string `json:"title"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.Title != "Mission Document" {
			t.Errorf("title = %q, want default", body.Title)
		}
		json.NewEncoder(w).Encode(kg.IngestResult{})
	}))
	defer srv.Close()

	client := kg.NewClient(srv.URL, time.Second, testLogger())
	if _, err := client.IngestDocument(context.Background(), "ns", "", "text", nil); err != nil {
		t.Fatalf("IngestDocument() error: %v", err)
	}
}
