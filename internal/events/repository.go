package events

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/apex-intel/apex/internal/entities"
	"github.com/apex-intel/apex/pkg/pagination"
	"github.com/apex-intel/apex/pkg/query"
	"github.com/apex-intel/apex/pkg/repository"
)

const eventColumns = `id, mission_id, title, description, timestamp, location, involved_entity_ids, created_at`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an event repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "events"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Event], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	results, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEvent)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}

	result := pagination.NewPageResult(results, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Event, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	ev, err := repository.QueryOne(ctx, r.db, q, args, scanEvent)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &ev, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM events WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

func (r *repo) ListForMission(ctx context.Context, missionID uuid.UUID) ([]Event, error) {
	qb := query.NewBuilder(projection, defaultSort).
		WhereEquals("MissionID", missionID)

	q, args := qb.Build()
	results, err := repository.QueryMany(ctx, r.db, q, args, scanEvent)
	if err != nil {
		return nil, fmt.Errorf("query mission events: %w", err)
	}
	return results, nil
}

func (r *repo) Merge(
	ctx context.Context,
	missionID uuid.UUID,
	candidates []Candidate,
	entityIDs map[string]uuid.UUID,
) ([]Event, error) {
	existing, err := r.ListForMission(ctx, missionID)
	if err != nil {
		return nil, err
	}

	keys := make(map[string]struct{}, len(existing))
	for _, ev := range existing {
		keys[NormalizeKey(ev.Title, ev.Timestamp)] = struct{}{}
	}

	fresh := DedupCandidates(candidates, keys)
	if len(fresh) == 0 {
		return existing, nil
	}

	insert := fmt.Sprintf(`
		INSERT INTO events(id, mission_id, title, description, timestamp, location, involved_entity_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, eventColumns)

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		for _, c := range fresh {
			involved, err := marshalEntityIDs(resolveEntityIDs(c.InvolvedEntities, entityIDs))
			if err != nil {
				return struct{}{}, err
			}

			var ts any
			if c.Timestamp != nil {
				ts = c.Timestamp.UTC()
			}

			if _, err := repository.QueryOne(
				ctx, tx, insert,
				[]any{uuid.New(), missionID, c.Title, c.Description, ts, c.Location, involved},
				scanEvent,
			); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("events merged",
		"mission_id", missionID,
		"candidates", len(candidates),
		"inserted", len(fresh),
	)

	return r.ListForMission(ctx, missionID)
}

func resolveEntityIDs(names []string, entityIDs map[string]uuid.UUID) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		if id, ok := entityIDs[entities.NormalizeName(name)]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
