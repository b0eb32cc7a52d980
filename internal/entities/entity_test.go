package entities_test

import (
	"testing"

	"github.com/apex-intel/apex/internal/entities"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "Operative Vega", "operative vega"},
		{"collapse whitespace", "  Sentinel   Drone ", "sentinel drone"},
		{"tabs and newlines", "Sentinel\tDrone\n", "sentinel drone"},
		{"blank", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entities.NormalizeName(tt.input); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEnrich(t *testing.T) {
	t.Run("longer description wins", func(t *testing.T) {
		existing := entities.Entity{Name: "Operative Vega", Description: "Field agent."}
		changed := entities.Enrich(&existing, entities.Candidate{
			Description: "Field agent operating near the northern sector.",
		})

		if !changed {
			t.Fatal("Enrich() = false, want true")
		}
		if existing.Description != "Field agent operating near the northern sector." {
			t.Errorf("description = %q", existing.Description)
		}
	})

	t.Run("shorter description kept out", func(t *testing.T) {
		existing := entities.Entity{Description: "Field agent operating near the northern sector."}
		if entities.Enrich(&existing, entities.Candidate{Description: "Agent."}) {
			t.Error("Enrich() = true, want false")
		}
	})

	t.Run("missing type filled", func(t *testing.T) {
		existing := entities.Entity{Description: "long enough to not change"}
		if !entities.Enrich(&existing, entities.Candidate{Type: "person"}) {
			t.Fatal("Enrich() = false, want true")
		}
		if existing.Type != "person" {
			t.Errorf("type = %q, want person", existing.Type)
		}
	})

	t.Run("existing type preserved", func(t *testing.T) {
		existing := entities.Entity{Type: "person", Description: "long enough to not change"}
		if entities.Enrich(&existing, entities.Candidate{Type: "organization"}) {
			t.Error("Enrich() = true, want false")
		}
		if existing.Type != "person" {
			t.Errorf("type = %q, want person", existing.Type)
		}
	})
}

func TestMergeCandidates(t *testing.T) {
	merged := entities.MergeCandidates([]entities.Candidate{
		{Name: "Operative Vega", Type: "", Description: "Agent."},
		{Name: "Sentinel Drone", Type: "equipment", Description: "UAV platform."},
		{Name: "operative  VEGA", Type: "person", Description: "Agent operating near the border."},
		{Name: "   "},
	})

	if len(merged) != 2 {
		t.Fatalf("len(merged) = %d, want 2", len(merged))
	}

	vega := merged[0]
	if vega.Name != "Operative Vega" {
		t.Errorf("first candidate = %q, want first-appearance name kept", vega.Name)
	}
	if vega.Type != "person" {
		t.Errorf("type = %q, want filled from duplicate", vega.Type)
	}
	if vega.Description != "Agent operating near the border." {
		t.Errorf("description = %q, want longer variant", vega.Description)
	}
}

func TestMergeCandidatesIdempotent(t *testing.T) {
	input := []entities.Candidate{
		{Name: "Alpha", Type: "person", Description: "First."},
		{Name: "Beta", Type: "org", Description: "Second."},
	}

	once := entities.MergeCandidates(input)
	twice := entities.MergeCandidates(once)

	if len(once) != len(twice) {
		t.Fatalf("merge not idempotent: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("entry %d differs: %+v vs %+v", i, once[i], twice[i])
		}
	}
}
