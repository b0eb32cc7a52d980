package ints_test

import (
	"testing"

	"github.com/apex-intel/apex/internal/ints"
)

func TestRegistry(t *testing.T) {
	registry := ints.Registry()
	if len(registry) != 13 {
		t.Fatalf("len(Registry()) = %d, want 13", len(registry))
	}

	seen := make(map[string]struct{}, len(registry))
	for _, meta := range registry {
		if meta.Code == "" || meta.Label == "" || meta.ShortDescription == "" {
			t.Errorf("registry entry %+v has empty core fields", meta)
		}
		if _, dup := seen[meta.Code]; dup {
			t.Errorf("duplicate code %q", meta.Code)
		}
		seen[meta.Code] = struct{}{}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
		ok   bool
	}{
		{"exact", "OSINT", "OSINT", true},
		{"lowercase", "sigint", "SIGINT", true},
		{"whitespace", " humint ", "HUMINT", true},
		{"unknown", "PSYINT", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, ok := ints.Lookup(tt.code)
			if ok != tt.ok {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.code, ok, tt.ok)
			}
			if meta.Code != tt.want {
				t.Errorf("Lookup(%q).Code = %q, want %q", tt.code, meta.Code, tt.want)
			}
		})
	}
}

func TestNormalizeCodes(t *testing.T) {
	got := ints.NormalizeCodes([]string{" osint ", "", "SIGINT", "madeup"})
	want := []string{"OSINT", "SIGINT", "MADEUP"}

	if len(got) != len(want) {
		t.Fatalf("NormalizeCodes() = %v, want %v", got, want)
	}
	for i, code := range got {
		if code != want[i] {
			t.Errorf("NormalizeCodes()[%d] = %q, want %q", i, code, want[i])
		}
	}
}
