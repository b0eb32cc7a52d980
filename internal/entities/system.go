package entities

import (
	"context"

	"github.com/google/uuid"

	"github.com/apex-intel/apex/pkg/pagination"
)

// System defines the public contract for entity domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Entity], error)

	Find(ctx context.Context, id uuid.UUID) (*Entity, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListForMission(ctx context.Context, missionID uuid.UUID) ([]Entity, error)

	// Merge folds extracted candidates into the mission's entity set.
	// Existing entities are enriched in place; new names are inserted.
	// Returns the mission's full entity set after merging.
	Merge(ctx context.Context, missionID uuid.UUID, candidates []Candidate) ([]Entity, error)
}
