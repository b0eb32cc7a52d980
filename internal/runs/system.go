package runs

import (
	"context"

	"github.com/google/uuid"

	"github.com/apex-intel/apex/pkg/pagination"
)

// System defines the public contract for agent run storage.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[AgentRun], error)

	Find(ctx context.Context, id uuid.UUID) (*AgentRun, error)
	Create(ctx context.Context, cmd CreateCommand) (*AgentRun, error)

	// Latest returns the most recent run for a mission, or nil when
	// no cycle has completed yet.
	Latest(ctx context.Context, missionID uuid.UUID) (*AgentRun, error)

	ListForMission(ctx context.Context, missionID uuid.UUID) ([]AgentRun, error)
}
