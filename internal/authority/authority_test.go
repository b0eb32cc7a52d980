package authority_test

import (
	"strings"
	"testing"

	"github.com/apex-intel/apex/internal/authority"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  authority.Authority
		ok    bool
	}{
		{"canonical", "T10_MIL", authority.T10Mil, true},
		{"lowercase", "t50_int", authority.T50Int, true},
		{"whitespace", "  DSCA  ", authority.DSCA, true},
		{"legacy title10", "TITLE10", authority.T10Mil, true},
		{"legacy joint", "JOINT", authority.T50Int, true},
		{"legacy civilian", "civilian", authority.CommResearch, true},
		{"unknown", "T99_NOPE", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := authority.Parse(tt.value)
			if ok != tt.ok {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.value, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestNormalizeFallsBackToDefault(t *testing.T) {
	if got := authority.Normalize("NOT_A_LANE"); got != authority.Default {
		t.Errorf("Normalize(NOT_A_LANE) = %q, want %q", got, authority.Default)
	}
	if got := authority.Normalize(""); got != authority.Default {
		t.Errorf("Normalize(\"\") = %q, want %q", got, authority.Default)
	}
}

func TestDescriptorRegistryCoversAllLanes(t *testing.T) {
	for _, lane := range authority.All() {
		t.Run(string(lane), func(t *testing.T) {
			d, ok := authority.LookupDescriptor(string(lane))
			if !ok {
				t.Fatalf("LookupDescriptor(%q) missing", lane)
			}
			if d.Authority != lane {
				t.Errorf("descriptor authority = %q, want %q", d.Authority, lane)
			}
			if d.Label == "" || d.PromptContext == "" || d.Prohibitions == "" {
				t.Errorf("descriptor for %q has empty prompt fields", lane)
			}
		})
	}
}

func TestDescriptorForUnknownUsesDefaultLane(t *testing.T) {
	d := authority.DescriptorFor("UNRECOGNIZED")
	if d.Authority != authority.Default {
		t.Errorf("DescriptorFor(UNRECOGNIZED).Authority = %q, want %q", d.Authority, authority.Default)
	}
}

func TestLabel(t *testing.T) {
	if got := authority.Label("T10_MIL"); !strings.Contains(got, "Title 10") {
		t.Errorf("Label(T10_MIL) = %q, want Title 10 label", got)
	}
	if got := authority.Label("CUSTOM_LANE"); got != "CUSTOM_LANE" {
		t.Errorf("Label(CUSTOM_LANE) = %q, want raw value", got)
	}
	if got := authority.Label(""); got != "Unknown authority" {
		t.Errorf("Label(\"\") = %q, want Unknown authority", got)
	}
}

func TestPivotRuleFor(t *testing.T) {
	rule, ok := authority.PivotRuleFor(authority.T10Mil, authority.DSCA)
	if !ok {
		t.Fatal("PivotRuleFor(T10_MIL, DSCA) missing")
	}
	if !rule.Allowed || rule.Risk != authority.RiskLow {
		t.Errorf("rule = %+v, want allowed low-risk", rule)
	}
	if len(rule.Conditions) == 0 {
		t.Error("rule has no conditions")
	}

	if _, ok := authority.PivotRuleFor(authority.DSCA, authority.T50Int); ok {
		t.Error("PivotRuleFor(DSCA, T50_INT) = ok, want unmodeled")
	}
}

func TestBlockedPivotRule(t *testing.T) {
	rule, ok := authority.PivotRuleFor(authority.CorpSec, authority.T50Int)
	if !ok {
		t.Fatal("PivotRuleFor(CORP_SEC, T50_INT) missing")
	}
	if rule.Allowed || rule.Risk != authority.RiskBlocked {
		t.Errorf("rule = %+v, want blocked", rule)
	}
}

func TestAllowedPivotsFromExcludesBlocked(t *testing.T) {
	for _, rule := range authority.AllowedPivotsFrom(authority.CorpSec) {
		if !rule.Allowed {
			t.Errorf("AllowedPivotsFrom(CORP_SEC) includes blocked rule %+v", rule)
		}
	}

	rules := authority.AllowedPivotsFrom(authority.T10Mil)
	if len(rules) != 5 {
		t.Errorf("len(AllowedPivotsFrom(T10_MIL)) = %d, want 5", len(rules))
	}
}

func TestRulesIncludesBlocked(t *testing.T) {
	var blocked int
	for _, rule := range authority.Rules() {
		if !rule.Allowed {
			blocked++
		}
	}
	if blocked != 2 {
		t.Errorf("blocked rule count = %d, want 2", blocked)
	}
}

func TestDisallowedInts(t *testing.T) {
	tests := []struct {
		name      string
		lane      string
		intTypes  []string
		wantCount int
	}{
		{"all allowed", "T10_MIL", []string{"OSINT", "SIGINT"}, 0},
		{"sigint under state local", "LEO_STATELOCAL", []string{"SIGINT"}, 1},
		{"sigint under commercial research", "COMM_RESEARCH", []string{"OSINT", "SIGINT"}, 1},
		{"case insensitive", "T32_NG", []string{"osint", "sigint"}, 1},
		{"empty selection", "T10_MIL", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := authority.DisallowedInts(tt.lane, tt.intTypes)
			if len(issues) != tt.wantCount {
				t.Errorf("DisallowedInts(%q, %v) = %v, want %d issues", tt.lane, tt.intTypes, issues, tt.wantCount)
			}
		})
	}
}

func TestKeywordHits(t *testing.T) {
	hits := authority.KeywordHits("T10_MIL", "Recommend units ARREST the suspects and obtain a warrant.")
	if len(hits) != 2 {
		t.Fatalf("KeywordHits = %v, want 2 hits", hits)
	}

	if hits := authority.KeywordHits("T10_MIL", ""); hits != nil {
		t.Errorf("KeywordHits on empty text = %v, want nil", hits)
	}
}
