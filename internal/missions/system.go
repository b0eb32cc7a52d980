package missions

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/apex-intel/apex/internal/authority"
	"github.com/apex-intel/apex/internal/policy"
	"github.com/apex-intel/apex/pkg/pagination"
)

// System defines the public contract for mission domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Mission], error)

	Find(ctx context.Context, id uuid.UUID) (*Mission, error)
	Create(ctx context.Context, cmd CreateCommand) (*Mission, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Mission, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Pivot(ctx context.Context, id uuid.UUID, cmd PivotCommand) (*PivotResult, error)
	Pivots(ctx context.Context, missionID uuid.UUID) ([]AuthorityPivot, error)
	History(ctx context.Context, missionID uuid.UUID) (*HistoryPayload, error)
	AllowedPivots(ctx context.Context, missionID uuid.UUID) ([]authority.PivotRule, error)

	EnsureNamespace(ctx context.Context, id uuid.UUID) (string, error)
	SaveGapAnalysis(ctx context.Context, id uuid.UUID, payload json.RawMessage) error
	AppendTemplateReport(ctx context.Context, id uuid.UUID, report TemplateReport) (*Mission, error)

	PolicyContext(ctx context.Context, id uuid.UUID) (*policy.MissionContext, error)
}

// ValidateInts reports INT selections not permitted under the given
// authority lane. An empty result means the selection is admissible.
func ValidateInts(authorityValue string, intTypes []string) []string {
	return policy.DisallowedInts(authorityValue, intTypes)
}
