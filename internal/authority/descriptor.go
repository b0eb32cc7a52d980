package authority

import (
	"fmt"
	"slices"
	"strings"
)

// Descriptor carries the metadata and guardrail definitions for one lane.
// Descriptors are immutable; the registry below is the single source of truth.
type Descriptor struct {
	Authority         Authority `json:"authority"`
	Label             string    `json:"label"`
	Description       string    `json:"description"`
	PromptContext     string    `json:"prompt_context"`
	Prohibitions      string    `json:"prohibitions"`
	GuardrailKeywords []string  `json:"guardrail_keywords"`
	AllowedIntTypes   []string  `json:"allowed_int_types"`
	OkExamples        []string  `json:"ok_examples"`
	NotOkExamples     []string  `json:"not_ok_examples"`
}

var registry = map[Authority]Descriptor{
	T10Mil: {
		Authority:     T10Mil,
		Label:         "Title 10 – Military Operations",
		Description:   "Operational ISR and mission analysis for military forces focused on foreign/battlefield threats.",
		PromptContext: "You are supporting Title 10 military operators. Emphasize operational planning, ISR, and effects while respecting civilian control.",
		Prohibitions:  "Do NOT recommend arrests, criminal prosecutions, or covert Title 50 tradecraft. Avoid domestic policing.",
		GuardrailKeywords: []string{
			"warrant", "arrest", "prosecute", "subpoena", "domestic surveillance",
		},
		AllowedIntTypes: []string{"OSINT", "GEOINT", "SIGINT", "HUMINT", "MASINT", "ALL_SOURCE"},
		OkExamples: []string{
			"Planning ISR coverage for an overseas target area",
			"Producing a battlespace intel brief for a deployed unit",
		},
		NotOkExamples: []string{
			"Recommending military units arrest civilians inside CONUS",
			"Drafting domestic criminal case files as if they were law enforcement",
		},
	},
	T32NG: {
		Authority:     T32NG,
		Label:         "Title 32 – National Guard",
		Description:   "State-controlled Guard missions supporting governors during domestic emergencies.",
		PromptContext: "You are supporting National Guard forces under state control. Emphasize domestic support, protection, and coordination with civil authorities.",
		Prohibitions:  "Do NOT propose federal combat operations or unilateral criminal enforcement beyond normal Guard authorities.",
		GuardrailKeywords: []string{
			"federal combat", "arrest", "prosecute", "covert collection",
		},
		AllowedIntTypes: []string{"OSINT", "GEOINT", "HUMINT", "LOGISTICS"},
		OkExamples: []string{
			"Coordinating Guard support to a state emergency operations center",
			"Mapping infrastructure damage for a governor's response staff",
		},
		NotOkExamples: []string{
			"Directing Guard units to conduct federal combat missions",
			"Tasking Guard personnel with criminal investigations",
		},
	},
	T50Int: {
		Authority:     T50Int,
		Label:         "Title 50 – Intelligence",
		Description:   "HUMINT and counterintelligence production focused on foreign targets, spanning overt and clandestine collection in support of national priorities.",
		PromptContext: "You operate under Title 50 HUMINT authorities. Provide foreign intelligence assessments and collection insights grounded in overt or clandestine human reporting, never domestic law-enforcement narratives. Reinforce operator intent, access, and tradecraft considerations without directing arrests or prosecutions.",
		Prohibitions:  "Do NOT recommend domestic arrests, warrant actions, or kinetic targeting orders. Keep outputs within intelligence production, liaison, and collection advisories with no criminal charging guidance.",
		GuardrailKeywords: []string{
			"arrest", "prosecute", "indict", "target package", "kinetic strike",
		},
		AllowedIntTypes: []string{"OSINT", "SIGINT", "HUMINT", "GEOINT", "MASINT", "CI_INT"},
		OkExamples: []string{
			"Foreign adversary network mapping for strategic analysis",
			"Counterintelligence assessment on foreign influence operations",
		},
		NotOkExamples: []string{
			"Suggesting bulk domestic surveillance of U.S. persons",
			"Planning law-enforcement-style arrest operations",
		},
	},
	LEOFed: {
		Authority:     LEOFed,
		Label:         "Federal Law Enforcement",
		Description:   "Federal criminal and national security investigations, evidence development, and investigative analysis.",
		PromptContext: "You are supporting federal law-enforcement investigations. Discuss evidence, leads, legal process, and case building.",
		Prohibitions:  "Do NOT suggest illegal searches, bypassing warrants, or military operations.",
		GuardrailKeywords: []string{
			"kill chain", "air strike", "covert insertion", "warrantless", "tamper evidence",
		},
		AllowedIntTypes: []string{"OSINT", "HUMINT", "GEOINT", "SIGINT", "LEO_CRIMINT", "ALL_SOURCE"},
		OkExamples: []string{
			"Organizing leads for a trafficking ring investigation",
			"Structuring a federal case pack with MLAT requests",
		},
		NotOkExamples: []string{
			"Encouraging bypass of warrant requirements",
			"Telling officers to pull phone records without legal process",
		},
	},
	LEOStateLocal: {
		Authority:     LEOStateLocal,
		Label:         "State & Local Law Enforcement",
		Description:   "State and local case work plus fusion-center reporting that combines intel and law enforcement streams.",
		PromptContext: "You are supporting state or local law enforcement. Balance information sharing with privacy protections and lawful process.",
		Prohibitions:  "Do NOT encourage profiling based on protected classes or indiscriminate collection.",
		GuardrailKeywords: []string{
			"profiling", "indiscriminate", "warrantless",
		},
		AllowedIntTypes: []string{"OSINT", "LEO_CRIMINT", "HUMINT", "DHS_INT"},
		OkExamples: []string{
			"Crime trend analysis across precinct reporting",
			"Integrating local tips and federal warnings",
		},
		NotOkExamples: []string{
			"Encouraging profiling based on protected characteristics",
		},
	},
	DSCA: {
		Authority:         DSCA,
		Label:             "Defense Support of Civil Authorities",
		Description:       "Military support to civil authorities during emergencies under civilian lead.",
		PromptContext:     "You are supporting DSCA missions: logistics, ISR, and analysis to aid civil authorities.",
		Prohibitions:      "Do NOT direct soldiers to conduct arrests or act as domestic police.",
		GuardrailKeywords: []string{"arrest", "detain", "search", "seize evidence"},
		AllowedIntTypes:   []string{"OSINT", "GEOINT", "SIGINT", "LOGISTICS"},
		OkExamples: []string{
			"Mapping flood damage",
			"Suggesting ISR coverage to locate survivors",
		},
		NotOkExamples: []string{
			"Ordering troops to arrest civilians",
			"Directing criminal investigations",
		},
	},
	DHSHS: {
		Authority:         DHSHS,
		Label:             "Homeland Security",
		Description:       "Border, transportation, and infrastructure security missions.",
		PromptContext:     "You are supporting DHS/fusion missions. Emphasize risk mitigation, protection, and preparedness.",
		Prohibitions:      "Do NOT direct military or law-enforcement actions outside DHS authority.",
		GuardrailKeywords: []string{"arrest", "kinetic", "offensive cyber", "extrajudicial"},
		AllowedIntTypes:   []string{"OSINT", "GEOINT", "HUMINT", "SIGINT", "CT_INT"},
		OkExamples: []string{
			"Risk assessment for ports of entry",
			"Pattern analysis of cross-border trafficking routes",
		},
		NotOkExamples: []string{
			"Directing military operations outside remit",
			"Advising arbitrary mass surveillance",
		},
	},
	CTFusion: {
		Authority:         CTFusion,
		Label:             "Counterterrorism / Fusion Center",
		Description:       "Integrative terrorism-related analysis across agencies.",
		PromptContext:     "You are providing CT fusion analysis. Combine data responsibly and protect civil liberties.",
		Prohibitions:      "Do NOT treat broad populations as suspects without basis or design mass surveillance schemes.",
		GuardrailKeywords: []string{"mass surveillance", "profiling"},
		AllowedIntTypes:   []string{"OSINT", "SIGINT", "HUMINT", "GEOINT", "CT_INT", "LEO_CRIMINT"},
		OkExamples: []string{
			"All-source threat overview",
			"Risk scoring for CT threats",
		},
		NotOkExamples: []string{
			"Treating entire communities as suspects",
		},
	},
	CyberDual: {
		Authority:         CyberDual,
		Label:             "Cyber – Dual Hat",
		Description:       "Joint cyber missions where intelligence and operational roles intersect.",
		PromptContext:     "You are supporting dual-hat cyber missions. Keep roles separated and respect approvals.",
		Prohibitions:      "Do NOT recommend unauthorized offensive hacks or mixing data into domestic contexts.",
		GuardrailKeywords: []string{"unauthorized exploit", "hack back"},
		AllowedIntTypes:   []string{"SIGINT", "OSINT", "CYBINT", "TECHINT"},
		OkExamples: []string{
			"Mapping adversary C2 infrastructure",
			"Recommending defensive posture",
		},
		NotOkExamples: []string{
			"Recommending unauthorized offensive hacks",
		},
	},
	NATOCoal: {
		Authority:         NATOCoal,
		Label:             "NATO / Coalition",
		Description:       "Multinational operations and intelligence sharing with releasability caveats.",
		PromptContext:     "You are supporting coalition missions. Respect national caveats and releasability rules.",
		Prohibitions:      "Do NOT mix NOFORN intel into coalition products or violate caveats.",
		GuardrailKeywords: []string{"NOFORN", "unauthorized release"},
		AllowedIntTypes:   []string{"OSINT", "GEOINT", "SIGINT", "HUMINT"},
		OkExamples: []string{
			"Coalition threat picture from releasable sources",
		},
		NotOkExamples: []string{
			"Sharing data contrary to caveats",
		},
	},
	GeointNGA: {
		Authority:         GeointNGA,
		Label:             "GEOINT – NGA",
		Description:       "Geospatial imaging and mapping to support national security decisions.",
		PromptContext:     "You are providing GEOINT insights. Focus on terrain, infrastructure, and non-PII analysis.",
		Prohibitions:      "Do NOT propose persistent tracking of U.S. persons without legal basis.",
		GuardrailKeywords: []string{"track individual", "personally identifiable", "target citizen"},
		AllowedIntTypes:   []string{"GEOINT", "OSINT", "MASINT", "TECHINT"},
		OkExamples: []string{
			"AOI overlays showing threat patterns",
			"Deriving terrain insights",
		},
		NotOkExamples: []string{
			"Persistent individualized tracking of U.S. persons",
		},
	},
	CommResearch: {
		Authority:         CommResearch,
		Label:             "Commercial / Research",
		Description:       "Corporate security, academic research, and tabletop exercises (non-operational).",
		PromptContext:     "You are supporting training or research scenarios. Keep outputs defensive, analytic, and lawful.",
		Prohibitions:      "Do NOT suggest arrests, kinetic strikes, or illegal hacking.",
		GuardrailKeywords: []string{"exploit", "zero-day", "illegal access", "weaponize"},
		AllowedIntTypes:   []string{"OSINT", "CORP_DATA", "SIMULATED"},
		OkExamples: []string{
			"Corporate insider threat risk scoring",
			"Academic analysis of public extremist propaganda",
		},
		NotOkExamples: []string{
			"Directing real-world arrests",
			"Advising illegal hacking",
		},
	},
	CorpSec: {
		Authority:         CorpSec,
		Label:             "Corporate Security / Insider Threat",
		Description:       "Commercial physical/cyber security, employee risk, and fraud detection.",
		PromptContext:     "You are supporting corporate security. Respect labor law, privacy, and policy boundaries.",
		Prohibitions:      "Do NOT advise unlawful monitoring, wiretaps, or privacy violations.",
		GuardrailKeywords: []string{"wiretap", "spy on employee", "illegal surveillance"},
		AllowedIntTypes:   []string{"OSINT", "CORP_DATA", "HR_DATA", "FININT"},
		OkExamples: []string{
			"Insider threat alerts based on corporate policy",
		},
		NotOkExamples: []string{
			"Encouraging unlawful wiretaps",
		},
	},
}

// DescriptorFor resolves a raw authority value to its lane descriptor.
// Unknown values fall back to the default lane; this never fails.
func DescriptorFor(value string) Descriptor {
	return registry[Normalize(value)]
}

// LookupDescriptor resolves a raw authority value without the default
// fallback. Returns false when the value is not a recognized lane.
func LookupDescriptor(value string) (Descriptor, bool) {
	lane, ok := Parse(value)
	if !ok {
		return Descriptor{}, false
	}
	return registry[lane], true
}

// PromptBlock renders the reusable prompt snippet describing the lane:
// label, operating context, prohibitions, and up to two do/don't examples.
func PromptBlock(value string) string {
	d := DescriptorFor(value)
	return fmt.Sprintf(
		"Authority Lane: %s (%s)\nContext: %s\nProhibitions: %s\nDo Examples: %s\nDon't Examples: %s",
		d.Label,
		d.Authority,
		d.PromptContext,
		d.Prohibitions,
		strings.Join(truncate(d.OkExamples, 2), ", "),
		strings.Join(truncate(d.NotOkExamples, 2), ", "),
	)
}

// KeywordHits returns the lane guardrail keywords present in text,
// matched case-insensitively. Order follows the descriptor definition.
func KeywordHits(value, text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	d := DescriptorFor(value)
	lowered := strings.ToLower(text)

	var hits []string
	for _, keyword := range d.GuardrailKeywords {
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			hits = append(hits, keyword)
		}
	}
	return hits
}

// DisallowedInts returns one human-readable issue per requested
// intelligence-type code that the lane does not permit. An empty result
// means the selection is compliant.
func DisallowedInts(value string, intTypes []string) []string {
	d := DescriptorFor(value)
	if len(d.AllowedIntTypes) == 0 || len(intTypes) == 0 {
		return nil
	}

	allowed := make(map[string]struct{}, len(d.AllowedIntTypes))
	for _, code := range d.AllowedIntTypes {
		allowed[strings.ToUpper(code)] = struct{}{}
	}

	var issues []string
	for _, code := range intTypes {
		upper := strings.ToUpper(strings.TrimSpace(code))
		if upper == "" {
			continue
		}
		if _, ok := allowed[upper]; ok {
			continue
		}
		issues = append(issues, fmt.Sprintf(
			"INT %s is not authorized under the %s lane. Remove it or change the mission authority.",
			upper, d.Label,
		))
	}
	return issues
}

func truncate(values []string, n int) []string {
	if len(values) <= n {
		return slices.Clone(values)
	}
	return slices.Clone(values[:n])
}
