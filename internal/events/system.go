package events

import (
	"context"

	"github.com/google/uuid"

	"github.com/apex-intel/apex/pkg/pagination"
)

// System defines the public contract for event domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Event], error)

	Find(ctx context.Context, id uuid.UUID) (*Event, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListForMission(ctx context.Context, missionID uuid.UUID) ([]Event, error)

	// Merge inserts candidates that do not collide with an existing
	// event key. EntityIDs maps normalized entity names to their IDs
	// for resolving candidate references. Returns the mission's full
	// event set after merging.
	Merge(ctx context.Context, missionID uuid.UUID, candidates []Candidate, entityIDs map[string]uuid.UUID) ([]Event, error)
}
