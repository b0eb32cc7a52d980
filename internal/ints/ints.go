// Package ints defines the canonical intelligence-discipline taxonomy
// used by mission policy, guardrails, and reference endpoints.
package ints

import "strings"

// Metadata describes one intelligence discipline: its label, sourcing
// profile, and the legal-sensitivity guidance surfaced in policy prompts.
type Metadata struct {
	Code                 string   `json:"code"`
	Label                string   `json:"label"`
	ShortDescription     string   `json:"short_description"`
	TypicalSources       []string `json:"typical_sources"`
	TypicalUseCases      []string `json:"typical_use_cases"`
	LegalSensitivityNotes string  `json:"legal_sensitivity_notes"`
	DefaultAuthorities   []string `json:"default_authorities"`
}

var registry = []Metadata{
	{
		Code:             "OSINT",
		Label:            "OSINT – Open-Source Intelligence",
		ShortDescription: "Intelligence derived from publicly or commercially available information.",
		TypicalSources: []string{
			"News media and press releases",
			"Government public reports and filings",
			"Academic publications and think tank reports",
			"Public websites and online forums",
			"Commercial datasets and feeds",
		},
		TypicalUseCases: []string{
			"Pattern of life and background research",
			"Order of battle and capability assessments",
			"Threat environment baselining",
			"Narrative tracking and influence monitoring",
		},
		LegalSensitivityNotes: "Relies on publicly or commercially available information. Constraints focus on terms of service, privacy, and data protection laws, rather than classified handling rules. Still must avoid unlawful surveillance, harassment, or targeting of protected classes.",
		DefaultAuthorities: []string{
			"T10_MIL", "T50_INT", "LEO_FED", "DHS_HS",
			"COMM_RESEARCH", "NATO_COAL", "LEO_STATELOCAL", "CORP_SEC",
		},
	},
	{
		Code:             "HUMINT",
		Label:            "HUMINT – Human Intelligence",
		ShortDescription: "Intelligence derived from human sources through interviews, debriefs, or liaison.",
		TypicalSources: []string{
			"Source meetings and debriefs",
			"Field reports and contact reports",
			"Debriefings of returning personnel",
			"Liaison reporting from partner organizations",
		},
		TypicalUseCases: []string{
			"Intent, motivation, and plans of actors",
			"Access to denied environments or closed groups",
			"Ground truth on local conditions",
			"Validating or refuting technical reporting",
		},
		LegalSensitivityNotes: "Often subject to strict rules on source handling, consent, and operations (e.g., Title 50 for intelligence activities, agency tradecraft policies, LEO interview and custodial rules, entrapment limits). Not appropriate for automated tasking of human sources without explicit human control.",
		DefaultAuthorities: []string{
			"T50_INT", "T10_MIL", "LEO_FED", "CT_FUSION", "LEO_STATELOCAL",
		},
	},
	{
		Code:             "SIGINT",
		Label:            "SIGINT – Signals Intelligence",
		ShortDescription: "Intelligence derived from intercepted communications or electronic signals.",
		TypicalSources: []string{
			"Communications intercepts (COMINT)",
			"Electronic emissions, radars, beacons (ELINT)",
			"Protocol- and network-layer telemetry",
			"Technical exploitation of RF and cyber systems",
		},
		TypicalUseCases: []string{
			"Network mapping and traffic characterization",
			"Emitter geolocation and pattern analysis",
			"Capability and readiness assessments",
			"Tipping and cueing for other INTs",
		},
		LegalSensitivityNotes: "Highly regulated due to privacy and surveillance concerns. Domestic collection, U.S. person data, and law enforcement use are governed by strict minimization rules, FISA authorities, and agency- or court-approved procedures. Warn whenever a mission description suggests domestic intercepts or U.S. person content.",
		DefaultAuthorities: []string{
			"T50_INT", "T10_MIL", "CYBER_DUAL", "NATO_COAL",
		},
	},
	{
		Code:             "GEOINT",
		Label:            "GEOINT – Geospatial Intelligence",
		ShortDescription: "Intelligence derived from imagery, maps, and geospatial data.",
		TypicalSources: []string{
			"Satellite and aerial imagery",
			"Commercial imagery services",
			"Digital elevation models and terrain data",
			"Foundation geospatial datasets and vector layers",
			"GPS logs and geotagged observations",
		},
		TypicalUseCases: []string{
			"Area of interest (AOI) characterization",
			"Facility mapping and pattern of life",
			"Line-of-sight and terrain analysis",
			"Change detection and damage assessment",
		},
		LegalSensitivityNotes: "Imagery and geospatial data can implicate privacy when focused on individuals, private property, or sensitive facilities. Constraints depend on collection platform and jurisdiction. Domestic targeting is often governed by additional policy and oversight.",
		DefaultAuthorities: []string{
			"T10_MIL", "T50_INT", "GEOINT_NGA", "LEO_FED",
			"DHS_HS", "NATO_COAL", "LEO_STATELOCAL",
		},
	},
	{
		Code:             "MASINT",
		Label:            "MASINT – Measurement & Signature Intelligence",
		ShortDescription: "Intelligence from technical measurements of physical phenomena (signatures).",
		TypicalSources: []string{
			"Acoustic, seismic, or infrasound sensors",
			"Nuclear, chemical, or radiological detectors",
			"Spectral signatures and materials analysis",
			"Radar cross-section and telemetry",
		},
		TypicalUseCases: []string{
			"Weapons testing and characterization",
			"Detection of concealed or masked activity",
			"Environmental and hazard monitoring",
			"Attribution of unusual events or signatures",
		},
		LegalSensitivityNotes: "Typically focused on non-personal physical signatures, but may intersect with arms control treaties, environmental law, or hazardous material regulations. Human-targeted sensing in domestic environments raises privacy and legal concerns and should be flagged.",
		DefaultAuthorities: []string{
			"T10_MIL", "T50_INT", "DHS_HS", "CT_FUSION", "NATO_COAL",
		},
	},
	{
		Code:             "CYBINT",
		Label:            "CYBINT – Cyber / Network Intelligence",
		ShortDescription: "Intelligence focused on cyber terrain, network activity, and digital threats.",
		TypicalSources: []string{
			"Network telemetry and flow data",
			"Endpoint security logs and alerts",
			"Threat intel feeds and malware sandboxes",
			"Dark web and underground forums (where lawfully accessed)",
		},
		TypicalUseCases: []string{
			"Threat actor tracking and campaign analysis",
			"Vulnerability and exposure assessments",
			"Defensive cyber operations support",
			"Attribution support for cyber incidents",
		},
		LegalSensitivityNotes: "Tied to computer crime statutes, privacy law, and rules for monitoring user activity. Offensive operations (exploits, active disruption) are highly authority-dependent and must be clearly distinguished from defensive monitoring and analysis.",
		DefaultAuthorities: []string{
			"CYBER_DUAL", "T50_INT", "T10_MIL", "LEO_FED", "DHS_HS", "CORP_SEC",
		},
	},
	{
		Code:             "FININT",
		Label:            "FININT – Financial Intelligence",
		ShortDescription: "Intelligence derived from financial transactions, holdings, and flows of funds.",
		TypicalSources: []string{
			"Banking and transaction records (where lawfully obtained)",
			"Sanctions and watchlist databases",
			"Corporate filings and ownership registries",
			"Suspicious activity reports (SARs) and CTRs",
		},
		TypicalUseCases: []string{
			"Tracing illicit finance and money laundering",
			"Sanctions and export control enforcement",
			"Threat finance and terrorism support analysis",
			"Network mapping via financial relationships",
		},
		LegalSensitivityNotes: "Contains highly sensitive personal and corporate financial data. Access normally requires specific legal authorities, subpoenas, warrants, or regulatory channels. Always pair with explicit law enforcement or financial regulatory authorities.",
		DefaultAuthorities: []string{
			"LEO_FED", "CT_FUSION", "LEO_STATELOCAL", "CORP_SEC",
		},
	},
	{
		Code:             "TECHINT",
		Label:            "TECHINT – Technical Intelligence",
		ShortDescription: "Intelligence from exploitation and analysis of foreign materiel and systems.",
		TypicalSources: []string{
			"Captured or acquired hardware and software",
			"Weapons systems and platforms",
			"Technical manuals and design documents",
			"Laboratory and reverse engineering reports",
		},
		TypicalUseCases: []string{
			"Understanding adversary capabilities and limitations",
			"Countermeasure development and survivability analysis",
			"Weapon and system performance assessments",
			"Support to acquisition and R&D decisions",
		},
		LegalSensitivityNotes: "Often governed by arms control, export control, and classification rules. Handling foreign materiel in domestic contexts may intersect with law enforcement and evidence handling rules.",
		DefaultAuthorities: []string{
			"T10_MIL", "T50_INT", "NATO_COAL",
		},
	},
	{
		Code:             "SOCMINT",
		Label:            "SOCMINT – Social Media Intelligence",
		ShortDescription: "Intelligence derived from social media platforms and online communities.",
		TypicalSources: []string{
			"Public posts on major social platforms",
			"Messaging apps where access is lawfully obtained",
			"Online groups, forums, and comment threads",
			"Follower graphs and engagement metrics",
		},
		TypicalUseCases: []string{
			"Pattern of life and persona mapping",
			"Narrative analysis and influence tracking",
			"Event and protest monitoring",
			"Threat detection based on online indicators",
		},
		LegalSensitivityNotes: "Sits at the intersection of OSINT, privacy law, and speech protections. Targeting based on protected characteristics, mass monitoring without cause, or covert manipulation is highly sensitive and authority-dependent.",
		DefaultAuthorities: []string{
			"T50_INT", "T10_MIL", "LEO_FED", "DHS_HS",
			"LEO_STATELOCAL", "COMM_RESEARCH", "CORP_SEC",
		},
	},
	{
		Code:             "ALL_SOURCE",
		Label:            "All-Source / Fusion",
		ShortDescription: "Integrated analysis that fuses multiple INTs into a single assessment.",
		TypicalSources: []string{
			"Products and reports from multiple INT disciplines",
			"Partner and allied reporting",
			"Operational and open-source data",
			"Historical mission archives",
		},
		TypicalUseCases: []string{
			"High-level assessments for commanders or executives",
			"Target systems analysis and course-of-action comparisons",
			"Red team / blue team synthesis",
			"Decision support and risk trade-off analysis",
		},
		LegalSensitivityNotes: "Inherits the strictest handling rules from its inputs. All-source products must maintain provenance, caveats, and dissemination controls. Treat ALL_SOURCE as 'combined lanes', not a free pass to ignore individual INT constraints.",
		DefaultAuthorities: []string{
			"T10_MIL", "T50_INT", "LEO_FED", "DHS_HS",
			"CT_FUSION", "LEO_STATELOCAL", "NATO_COAL", "CORP_SEC",
		},
	},
	{
		Code:             "LEO_CRIMINT",
		Label:            "LEO Crime Intelligence",
		ShortDescription: "Operational intelligence supporting investigations, patrol, and crime reduction.",
		TypicalSources: []string{
			"Incident and arrest reports",
			"Records management and case files",
			"Jail and probation data",
			"Community tips and officer observations",
		},
		TypicalUseCases: []string{
			"Case pack preparation for prosecutors",
			"Hot spot and pattern analysis",
			"Link charts and association analysis",
			"Officer safety and warrant planning",
		},
		LegalSensitivityNotes: "Heavily constrained by criminal procedure, evidence rules, and civil rights protections. Use in domestic policing must respect probable cause standards, discovery, and limits on investigative techniques.",
		DefaultAuthorities: []string{
			"LEO_FED", "LEO_STATELOCAL",
		},
	},
	{
		Code:             "CT_INT",
		Label:            "CT – Counterterrorism Intelligence",
		ShortDescription: "Multi-INT focus on preventing, disrupting, and responding to terrorism.",
		TypicalSources: []string{
			"All-source IC reporting",
			"LEO case data and watchlists",
			"OSINT and SOCMINT on extremist networks",
			"Travel, border, and financial data (where authorized)",
		},
		TypicalUseCases: []string{
			"Threat stream triage and prioritization",
			"Target system and network analysis",
			"Attack surface and vulnerability mapping",
			"Threat assessments for venues and events",
		},
		LegalSensitivityNotes: "Very high sensitivity around U.S. person information, profiling, and use of bulk data. Governed by specialized CT frameworks, interagency agreements, and oversight mechanisms.",
		DefaultAuthorities: []string{
			"CT_FUSION", "T50_INT", "LEO_FED", "LEO_STATELOCAL", "DHS_HS",
		},
	},
	{
		Code:             "CI_INT",
		Label:            "CI – Counterintelligence",
		ShortDescription: "Intelligence focused on detecting and mitigating espionage and insider threats.",
		TypicalSources: []string{
			"Personnel and access records",
			"Security incident reports",
			"Insider threat monitoring data (where authorized)",
			"Foreign intelligence service reporting",
		},
		TypicalUseCases: []string{
			"Identifying recruitment and penetration efforts",
			"Protecting sensitive programs and facilities",
			"Insider threat detection and mitigation",
			"Risk assessment for foreign contact and travel",
		},
		LegalSensitivityNotes: "Touches employment law, privacy rules, and insider threat policy. Monitoring employees or contractors requires clear policy, notice, and appropriate legal foundations.",
		DefaultAuthorities: []string{
			"T50_INT", "T10_MIL", "LEO_FED", "LEO_STATELOCAL", "CORP_SEC",
		},
	},
}

var index = func() map[string]Metadata {
	m := make(map[string]Metadata, len(registry))
	for _, meta := range registry {
		m[strings.ToUpper(meta.Code)] = meta
	}
	return m
}()

// Registry returns every discipline in declaration order.
func Registry() []Metadata {
	return registry
}

// Lookup resolves a code case-insensitively.
func Lookup(code string) (Metadata, bool) {
	meta, ok := index[strings.ToUpper(strings.TrimSpace(code))]
	return meta, ok
}

// NormalizeCodes uppercases and trims the provided codes, skipping
// blanks. Unrecognized codes pass through so callers can warn on them.
func NormalizeCodes(codes []string) []string {
	var normalized []string
	for _, code := range codes {
		upper := strings.ToUpper(strings.TrimSpace(code))
		if upper != "" {
			normalized = append(normalized, upper)
		}
	}
	return normalized
}
