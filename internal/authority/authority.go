// Package authority defines the mission authority lanes, their guardrail
// descriptors, and the static pivot policy governing lane transitions.
package authority

import "strings"

// Authority identifies a legal authority lane a mission operates under.
type Authority string

// Supported authority lanes.
const (
	T10Mil        Authority = "T10_MIL"
	T32NG         Authority = "T32_NG"
	T50Int        Authority = "T50_INT"
	LEOFed        Authority = "LEO_FED"
	LEOStateLocal Authority = "LEO_STATELOCAL"
	DSCA          Authority = "DSCA"
	DHSHS         Authority = "DHS_HS"
	CTFusion      Authority = "CT_FUSION"
	CyberDual     Authority = "CYBER_DUAL"
	NATOCoal      Authority = "NATO_COAL"
	GeointNGA     Authority = "GEOINT_NGA"
	CommResearch  Authority = "COMM_RESEARCH"
	CorpSec       Authority = "CORP_SEC"
)

// Default is the fallback lane for unrecognized authority values.
const Default = LEOFed

var lanes = []Authority{
	T10Mil,
	T32NG,
	T50Int,
	LEOFed,
	LEOStateLocal,
	DSCA,
	DHSHS,
	CTFusion,
	CyberDual,
	NATOCoal,
	GeointNGA,
	CommResearch,
	CorpSec,
}

// legacyAliases maps historical lane identifiers onto the current set.
var legacyAliases = map[string]Authority{
	"TITLE10":             T10Mil,
	"TITLE_10_MIL":        T10Mil,
	"TITLE50":             T50Int,
	"TITLE_50_IC":         T50Int,
	"JOINT":               T50Int,
	"LEO":                 LEOFed,
	"FBI_DOJ":             LEOFed,
	"STATE_FUSION":        LEOStateLocal,
	"DHS_HOMELAND":        DHSHS,
	"NCTC_CT":             CTFusion,
	"CYBER_DUAL_HAT":      CyberDual,
	"NATO_COALITION":      NATOCoal,
	"NGA_GEO":             GeointNGA,
	"CIVILIAN":            CommResearch,
	"COMMERCIAL_RESEARCH": CommResearch,
	"CORPORATE_SECURITY":  CorpSec,
}

// All returns the supported authority lanes in declaration order.
func All() []Authority {
	return lanes
}

// Parse resolves a raw value to a supported lane, accepting legacy aliases.
// Returns false when the value does not identify any lane.
func Parse(value string) (Authority, bool) {
	cleaned := strings.ToUpper(strings.TrimSpace(value))
	if cleaned == "" {
		return "", false
	}
	for _, lane := range lanes {
		if string(lane) == cleaned {
			return lane, true
		}
	}
	if lane, ok := legacyAliases[cleaned]; ok {
		return lane, true
	}
	return "", false
}

// Normalize resolves a raw value to a supported lane, falling back to the
// default lane for unrecognized or empty values. It never fails: every
// authority referenced anywhere in the system resolves to a descriptor.
func Normalize(value string) Authority {
	if lane, ok := Parse(value); ok {
		return lane
	}
	return Default
}

// Label returns the display label for a lane. Unrecognized values are
// returned unchanged so callers can render raw history data.
func Label(value string) string {
	if lane, ok := Parse(value); ok {
		return DescriptorFor(string(lane)).Label
	}
	if value == "" {
		return "Unknown authority"
	}
	return value
}
