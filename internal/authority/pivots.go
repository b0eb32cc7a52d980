package authority

import "slices"

// Risk grades a pivot between authority lanes.
type Risk string

const (
	RiskLow     Risk = "LOW"
	RiskMedium  Risk = "MEDIUM"
	RiskHigh    Risk = "HIGH"
	RiskBlocked Risk = "BLOCKED"
)

// PivotRule defines whether a directed authority transition is permitted
// and under what conditions. Absence of a rule means the pivot is
// unmodeled and must be rejected.
type PivotRule struct {
	From       Authority `json:"from"`
	To         Authority `json:"to"`
	Allowed    bool      `json:"allowed"`
	Risk       Risk      `json:"risk"`
	Conditions []string  `json:"conditions"`
}

var pivotRules = []PivotRule{
	{
		From: T10Mil, To: T32NG, Allowed: true, Risk: RiskMedium,
		Conditions: []string{
			"Guard mission becomes state-controlled.",
			"Do not propose federal combat operations after pivot.",
			"Emphasize domestic support and civil authority lead.",
		},
	},
	{
		From: T10Mil, To: DSCA, Allowed: true, Risk: RiskLow,
		Conditions: []string{
			"Military acts in support of civil authorities.",
			"No direct arrest or law-enforcement actions.",
			"Emphasize logistics, SAR, comms, and protection.",
		},
	},
	{
		From: T10Mil, To: T50Int, Allowed: true, Risk: RiskHigh,
		Conditions: []string{
			"Pivot is driven by long-term intelligence requirements.",
			"Focus moves to foreign-directed networks or actors.",
			"Do not treat this as a law-enforcement mission.",
		},
	},
	{
		From: T10Mil, To: LEOFed, Allowed: true, Risk: RiskHigh,
		Conditions: []string{
			"Criminal prosecution becomes primary objective.",
			"Law enforcement leads; military supports or exits.",
			"Recommendations must respect Posse Comitatus constraints.",
		},
	},
	{
		From: T10Mil, To: LEOStateLocal, Allowed: true, Risk: RiskHigh,
		Conditions: []string{
			"Threat is primarily local/domestic crime.",
			"State/local agencies become lead for enforcement.",
			"Focus on information sharing and evidence handling.",
		},
	},
	{
		From: T32NG, To: T10Mil, Allowed: true, Risk: RiskMedium,
		Conditions: []string{
			"Guard is federalized due to scale or escalation.",
			"Mission may gain overseas or combat implications.",
			"Ensure ROE and command relationships are clearly stated.",
		},
	},
	{
		From: T32NG, To: DSCA, Allowed: true, Risk: RiskLow,
		Conditions: []string{
			"Guard supports civil authorities while remaining state-controlled.",
			"No unilateral criminal enforcement beyond normal Guard authorities.",
		},
	},
	{
		From: T50Int, To: LEOFed, Allowed: true, Risk: RiskHigh,
		Conditions: []string{
			"Domestic criminal case or CT threat requires law enforcement lead.",
			"Respect minimization and domestic collection rules.",
			"Avoid recommending direct IC operational enforcement actions.",
		},
	},
	{
		From: T50Int, To: T10Mil, Allowed: true, Risk: RiskMedium,
		Conditions: []string{
			"Intel product forms basis for foreign or battlefield operations.",
			"Emphasize targeting, ROE, and campaign planning, not arrests.",
		},
	},
	{
		From: LEOStateLocal, To: LEOFed, Allowed: true, Risk: RiskLow,
		Conditions: []string{
			"Case crosses state lines or meets federal thresholds.",
			"Federal statutes or CT frameworks now apply.",
		},
	},
	{
		From: LEOFed, To: DSCA, Allowed: true, Risk: RiskMedium,
		Conditions: []string{
			"Law enforcement remains lead; DoD provides support.",
			"Do not suggest military takes over investigation or prosecution.",
		},
	},
	{
		From: CommResearch, To: LEOFed, Allowed: true, Risk: RiskMedium,
		Conditions: []string{
			"Escalation path is threat reporting, not self-directed enforcement.",
			"Emphasize evidence preservation and legal counsel.",
		},
	},
	{
		From: CorpSec, To: LEOStateLocal, Allowed: true, Risk: RiskMedium,
		Conditions: []string{
			"Clear criminal activity identified.",
			"Recommendations focus on notification and cooperation.",
		},
	},
	{
		From: CorpSec, To: T50Int, Allowed: false, Risk: RiskBlocked,
		Conditions: []string{
			"Private-sector security cannot directly task intelligence authorities.",
			"Escalate via law enforcement or homeland security channels instead.",
		},
	},
	{
		From: CommResearch, To: T10Mil, Allowed: false, Risk: RiskBlocked,
		Conditions: []string{
			"Commercial or academic actors cannot directly task military operations.",
			"Consider notifications to appropriate government entities instead.",
		},
	},
}

// Rules returns every modeled pivot rule, including blocked transitions.
func Rules() []PivotRule {
	return slices.Clone(pivotRules)
}

// PivotRuleFor returns the directed rule between two lanes, if one is
// defined.
func PivotRuleFor(from, to Authority) (PivotRule, bool) {
	for _, rule := range pivotRules {
		if rule.From == from && rule.To == to {
			return rule, true
		}
	}
	return PivotRule{}, false
}

// AllowedPivotsFrom lists the permitted pivots departing a lane,
// excluding blocked rules.
func AllowedPivotsFrom(from Authority) []PivotRule {
	var rules []PivotRule
	for _, rule := range pivotRules {
		if rule.From == from && rule.Allowed {
			rules = append(rules, rule)
		}
	}
	return rules
}
