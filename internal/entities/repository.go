package entities

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/apex-intel/apex/pkg/pagination"
	"github.com/apex-intel/apex/pkg/query"
	"github.com/apex-intel/apex/pkg/repository"
)

const entityColumns = `id, mission_id, name, type, description, created_at, updated_at`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an entity repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "entities"),
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
) (*pagination.PageResult[Entity], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count entities: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	results, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEntity)
	if err != nil {
		return nil, fmt.Errorf("query entities: %w", err)
	}

	result := pagination.NewPageResult(results, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Entity, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	e, err := repository.QueryOne(ctx, r.db, q, args, scanEntity)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM entities WHERE id = $1",
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

func (r *repo) ListForMission(ctx context.Context, missionID uuid.UUID) ([]Entity, error) {
	qb := query.NewBuilder(projection, defaultSort).
		WhereEquals("MissionID", missionID)

	q, args := qb.Build()
	results, err := repository.QueryMany(ctx, r.db, q, args, scanEntity)
	if err != nil {
		return nil, fmt.Errorf("query mission entities: %w", err)
	}
	return results, nil
}

// Merge runs in a single transaction so a cycle's extraction lands
// atomically.
func (r *repo) Merge(ctx context.Context, missionID uuid.UUID, candidates []Candidate) ([]Entity, error) {
	existing, err := r.ListForMission(ctx, missionID)
	if err != nil {
		return nil, err
	}

	index := make(map[string]*Entity, len(existing))
	for i := range existing {
		index[NormalizeName(existing[i].Name)] = &existing[i]
	}

	merged := MergeCandidates(candidates)

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		for _, c := range merged {
			key := NormalizeName(c.Name)

			if current, ok := index[key]; ok {
				if !Enrich(current, c) {
					continue
				}
				if err := repository.ExecExpectOne(
					ctx, tx,
					"UPDATE entities SET type = $2, description = $3, updated_at = now() WHERE id = $1",
					current.ID, current.Type, current.Description,
				); err != nil {
					return struct{}{}, err
				}
				continue
			}

			insert := fmt.Sprintf(`
				INSERT INTO entities(id, mission_id, name, type, description)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING %s`, entityColumns)

			e, err := repository.QueryOne(
				ctx, tx, insert,
				[]any{uuid.New(), missionID, c.Name, c.Type, c.Description},
				scanEntity,
			)
			if err != nil {
				return struct{}{}, err
			}

			existing = append(existing, e)
			index[key] = &existing[len(existing)-1]
		}
		return struct{}{}, nil
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("entities merged",
		"mission_id", missionID,
		"candidates", len(candidates),
		"total", len(existing),
	)

	return r.ListForMission(ctx, missionID)
}
