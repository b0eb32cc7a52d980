package missions

import (
	"encoding/json"
	"net/url"

	"github.com/apex-intel/apex/pkg/query"
	"github.com/apex-intel/apex/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "missions", "m").
	Project("id", "ID").
	Project("name", "Name").
	Project("description", "Description").
	Project("primary_authority", "PrimaryAuthority").
	Project("original_authority", "OriginalAuthority").
	Project("int_types", "IntTypes").
	Project("kg_namespace", "KGNamespace").
	Project("gap_analysis", "GapAnalysis").
	Project("template_reports", "TemplateReports").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var pivotProjection = query.
	NewProjectionMap("public", "authority_pivots", "p").
	Project("id", "ID").
	Project("mission_id", "MissionID").
	Project("from_authority", "FromAuthority").
	Project("to_authority", "ToAuthority").
	Project("justification", "Justification").
	Project("actor", "Actor").
	Project("risk", "Risk").
	Project("conditions", "Conditions").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

var pivotSort = query.SortField{
	Field: "CreatedAt",
}

// Filters contains optional criteria for mission queries. Nil fields
// are ignored.
type Filters struct {
	PrimaryAuthority  *string `json:"primary_authority,omitempty"`
	OriginalAuthority *string `json:"original_authority,omitempty"`
	Name              *string `json:"name,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("PrimaryAuthority", f.PrimaryAuthority).
		WhereEquals("OriginalAuthority", f.OriginalAuthority).
		WhereContains("Name", f.Name)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if pa := values.Get("primary_authority"); pa != "" {
		f.PrimaryAuthority = &pa
	}
	if oa := values.Get("original_authority"); oa != "" {
		f.OriginalAuthority = &oa
	}
	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	return f
}

func scanMission(s repository.Scanner) (Mission, error) {
	var (
		m               Mission
		intTypes        []byte
		gapAnalysis     []byte
		templateReports []byte
	)

	err := s.Scan(
		&m.ID,
		&m.Name,
		&m.Description,
		&m.PrimaryAuthority,
		&m.OriginalAuthority,
		&intTypes,
		&m.KGNamespace,
		&gapAnalysis,
		&templateReports,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return m, err
	}

	if err := unmarshalColumn(intTypes, &m.IntTypes); err != nil {
		return m, err
	}
	if len(gapAnalysis) > 0 {
		m.GapAnalysis = json.RawMessage(gapAnalysis)
	}
	if err := unmarshalColumn(templateReports, &m.TemplateReports); err != nil {
		return m, err
	}

	if m.IntTypes == nil {
		m.IntTypes = []string{}
	}
	if m.TemplateReports == nil {
		m.TemplateReports = []TemplateReport{}
	}

	return m, nil
}

func scanPivot(s repository.Scanner) (AuthorityPivot, error) {
	var (
		p          AuthorityPivot
		conditions []byte
	)

	err := s.Scan(
		&p.ID,
		&p.MissionID,
		&p.FromAuthority,
		&p.ToAuthority,
		&p.Justification,
		&p.Actor,
		&p.Risk,
		&conditions,
		&p.CreatedAt,
	)
	if err != nil {
		return p, err
	}

	if err := unmarshalColumn(conditions, &p.Conditions); err != nil {
		return p, err
	}
	if p.Conditions == nil {
		p.Conditions = []string{}
	}

	return p, nil
}

func unmarshalColumn(data []byte, out any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

func marshalColumn(value any) ([]byte, error) {
	if value == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(value)
}
