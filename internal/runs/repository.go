package runs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/apex-intel/apex/pkg/pagination"
	"github.com/apex-intel/apex/pkg/query"
	"github.com/apex-intel/apex/pkg/repository"
)

const runColumns = `id, mission_id, status, summary, next_steps, guardrail_status, guardrail_issues, created_at`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an agent run repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "runs"),
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
) (*pagination.PageResult[AgentRun], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Summary", "NextSteps")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count agent runs: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	results, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanRun)
	if err != nil {
		return nil, fmt.Errorf("query agent runs: %w", err)
	}

	result := pagination.NewPageResult(results, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*AgentRun, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	run, err := repository.QueryOne(ctx, r.db, q, args, scanRun)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &run, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*AgentRun, error) {
	issues := cmd.GuardrailIssues
	if issues == nil {
		issues = []string{}
	}

	encoded, err := json.Marshal(issues)
	if err != nil {
		return nil, fmt.Errorf("marshal guardrail issues: %w", err)
	}

	q := fmt.Sprintf(`
		INSERT INTO agent_runs(id, mission_id, status, summary, next_steps, guardrail_status, guardrail_issues)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, runColumns)

	args := []any{
		uuid.New(),
		cmd.MissionID,
		cmd.Status,
		cmd.Summary,
		cmd.NextSteps,
		cmd.GuardrailStatus,
		encoded,
	}

	run, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (AgentRun, error) {
		return repository.QueryOne(ctx, tx, q, args, scanRun)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("agent run recorded",
		"id", run.ID,
		"mission_id", run.MissionID,
		"status", run.Status,
		"guardrail_status", run.GuardrailStatus,
	)
	return &run, nil
}

func (r *repo) Latest(ctx context.Context, missionID uuid.UUID) (*AgentRun, error) {
	qb := query.NewBuilder(projection, defaultSort).
		WhereEquals("MissionID", missionID)

	q, args := qb.BuildSingleOrNull()
	run, err := repository.QueryOne(ctx, r.db, q, args, scanRun)
	if err != nil {
		if errors.Is(repository.MapError(err, ErrNotFound, ErrDuplicate), ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

func (r *repo) ListForMission(ctx context.Context, missionID uuid.UUID) ([]AgentRun, error) {
	qb := query.NewBuilder(projection, defaultSort).
		WhereEquals("MissionID", missionID)

	q, args := qb.Build()
	results, err := repository.QueryMany(ctx, r.db, q, args, scanRun)
	if err != nil {
		return nil, fmt.Errorf("query mission runs: %w", err)
	}
	return results, nil
}
