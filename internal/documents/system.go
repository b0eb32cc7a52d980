package documents

import (
	"context"

	"github.com/google/uuid"

	"github.com/apex-intel/apex/pkg/pagination"
)

// System defines the public contract for document domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Document], error)

	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	Create(ctx context.Context, cmd CreateCommand) (*Document, error)
	CreateBatch(ctx context.Context, cmds []CreateCommand) ([]Document, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Document, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ListForAnalysis returns the mission's included documents in
	// chronological order.
	ListForAnalysis(ctx context.Context, missionID uuid.UUID) ([]Document, error)
}
