package missions

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/apex-intel/apex/internal/authority"
	"github.com/apex-intel/apex/internal/kg"
	"github.com/apex-intel/apex/internal/policy"
	"github.com/apex-intel/apex/pkg/pagination"
	"github.com/apex-intel/apex/pkg/query"
	"github.com/apex-intel/apex/pkg/repository"
)

const missionColumns = `id, name, description, primary_authority, original_authority,
	int_types, kg_namespace, gap_analysis, template_reports, created_at, updated_at`

const pivotColumns = `id, mission_id, from_authority, to_authority, justification,
	actor, risk, conditions, created_at`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a mission repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "missions"),
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
) (*pagination.PageResult[Mission], error) {
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
		return nil, fmt.Errorf("count missions: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	missions, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanMission)
	if err != nil {
		return nil, fmt.Errorf("query missions: %w", err)
	}

	result := pagination.NewPageResult(missions, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Mission, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	m, err := repository.QueryOne(ctx, r.db, q, args, scanMission)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &m, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Mission, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, ErrNameEmpty
	}

	lane, ok := authority.Parse(cmd.PrimaryAuthority)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAuthority, cmd.PrimaryAuthority)
	}

	if issues := ValidateInts(string(lane), cmd.IntTypes); len(issues) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrIntNotAllowed, strings.Join(issues, " "))
	}

	intTypes, err := marshalColumn(normalizeInts(cmd.IntTypes))
	if err != nil {
		return nil, fmt.Errorf("marshal int types: %w", err)
	}

	q := fmt.Sprintf(`
		INSERT INTO missions(id, name, description, primary_authority, original_authority, int_types)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`, missionColumns)

	insertArgs := []any{
		uuid.New(),
		cmd.Name,
		cmd.Description,
		string(lane),
		string(lane),
		intTypes,
	}

	m, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Mission, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanMission)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("mission created", "id", m.ID, "authority", m.PrimaryAuthority)
	return &m, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Mission, error) {
	mission, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	name := mission.Name
	if cmd.Name != nil {
		if strings.TrimSpace(*cmd.Name) == "" {
			return nil, ErrNameEmpty
		}
		name = *cmd.Name
	}

	description := mission.Description
	if cmd.Description != nil {
		description = *cmd.Description
	}

	intTypes := mission.IntTypes
	if cmd.IntTypes != nil {
		intTypes = normalizeInts(*cmd.IntTypes)
		if issues := ValidateInts(mission.PrimaryAuthority, intTypes); len(issues) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrIntNotAllowed, strings.Join(issues, " "))
		}
	}

	encoded, err := marshalColumn(intTypes)
	if err != nil {
		return nil, fmt.Errorf("marshal int types: %w", err)
	}

	q := fmt.Sprintf(`
		UPDATE missions
		SET name = $2, description = $3, int_types = $4, updated_at = now()
		WHERE id = $1
		RETURNING %s`, missionColumns)

	m, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Mission, error) {
		return repository.QueryOne(ctx, tx, q, []any{id, name, description, encoded}, scanMission)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("mission updated", "id", m.ID)
	return &m, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM missions WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("mission deleted", "id", id)
	return nil
}

// Pivot transitions the mission's current authority. CheckPivot runs
// the guard chain first; on any rejection no state is mutated.
func (r *repo) Pivot(ctx context.Context, id uuid.UUID, cmd PivotCommand) (*PivotResult, error) {
	mission, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	decision, err := CheckPivot(mission.PrimaryAuthority, cmd.TargetAuthority, cmd.Justification)
	if err != nil {
		return nil, err
	}
	current, target, rule := decision.Current, decision.Target, decision.Rule

	conditions, err := marshalColumn(rule.Conditions)
	if err != nil {
		return nil, fmt.Errorf("marshal pivot conditions: %w", err)
	}

	pivotQuery := fmt.Sprintf(`
		INSERT INTO authority_pivots(id, mission_id, from_authority, to_authority, justification, actor, risk, conditions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s`, pivotColumns)

	pivotArgs := []any{
		uuid.New(),
		mission.ID,
		string(current),
		string(target),
		strings.TrimSpace(cmd.Justification),
		cmd.Actor,
		string(rule.Risk),
		conditions,
	}

	pivot, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (AuthorityPivot, error) {
		p, err := repository.QueryOne(ctx, tx, pivotQuery, pivotArgs, scanPivot)
		if err != nil {
			return p, err
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE missions SET primary_authority = $2, updated_at = now() WHERE id = $1",
			mission.ID, string(target),
		); err != nil {
			return p, err
		}
		return p, nil
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	updated, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	r.logger.Info("authority pivot recorded",
		"mission_id", mission.ID,
		"from", current,
		"to", target,
		"risk", rule.Risk,
	)

	return &PivotResult{Mission: updated, Pivot: &pivot}, nil
}

func (r *repo) Pivots(ctx context.Context, missionID uuid.UUID) ([]AuthorityPivot, error) {
	qb := query.NewBuilder(pivotProjection, pivotSort).
		WhereEquals("MissionID", missionID)

	q, args := qb.Build()
	pivots, err := repository.QueryMany(ctx, r.db, q, args, scanPivot)
	if err != nil {
		return nil, fmt.Errorf("query authority pivots: %w", err)
	}
	return pivots, nil
}

func (r *repo) History(ctx context.Context, missionID uuid.UUID) (*HistoryPayload, error) {
	mc, err := r.PolicyContext(ctx, missionID)
	if err != nil {
		return nil, err
	}

	entries := policy.BuildHistory(mc.OriginalAuthority, mc.CreatedAt, mc.Pivots)
	return &HistoryPayload{
		Entries: entries,
		Lines:   policy.RenderHistoryLines(entries),
	}, nil
}

func (r *repo) AllowedPivots(ctx context.Context, missionID uuid.UUID) ([]authority.PivotRule, error) {
	mission, err := r.Find(ctx, missionID)
	if err != nil {
		return nil, err
	}

	lane, ok := authority.Parse(mission.PrimaryAuthority)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAuthority, mission.PrimaryAuthority)
	}
	return authority.AllowedPivotsFrom(lane), nil
}

// EnsureNamespace lazily assigns and persists the mission's graph
// namespace.
func (r *repo) EnsureNamespace(ctx context.Context, id uuid.UUID) (string, error) {
	mission, err := r.Find(ctx, id)
	if err != nil {
		return "", err
	}

	if mission.KGNamespace != nil && *mission.KGNamespace != "" {
		return *mission.KGNamespace, nil
	}

	namespace := kg.Namespace(mission.ID.String())
	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE missions SET kg_namespace = $2, updated_at = now() WHERE id = $1",
			id, namespace,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	if err != nil {
		return "", repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return namespace, nil
}

func (r *repo) SaveGapAnalysis(ctx context.Context, id uuid.UUID, payload json.RawMessage) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE missions SET gap_analysis = $2, updated_at = now() WHERE id = $1",
			id, []byte(payload),
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

// AppendTemplateReport prepends the report and trims the retained list
// to TemplateReportLimit entries.
func (r *repo) AppendTemplateReport(ctx context.Context, id uuid.UUID, report TemplateReport) (*Mission, error) {
	mission, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	reports := append([]TemplateReport{report}, mission.TemplateReports...)
	if len(reports) > TemplateReportLimit {
		reports = reports[:TemplateReportLimit]
	}

	encoded, err := json.Marshal(reports)
	if err != nil {
		return nil, fmt.Errorf("marshal template reports: %w", err)
	}

	q := fmt.Sprintf(`
		UPDATE missions
		SET template_reports = $2, updated_at = now()
		WHERE id = $1
		RETURNING %s`, missionColumns)

	m, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Mission, error) {
		return repository.QueryOne(ctx, tx, q, []any{id, encoded}, scanMission)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &m, nil
}

// PolicyContext loads the mission state the prompt and guardrail layers
// consume.
func (r *repo) PolicyContext(ctx context.Context, id uuid.UUID) (*policy.MissionContext, error) {
	mission, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	pivots, err := r.Pivots(ctx, id)
	if err != nil {
		return nil, err
	}

	records := make([]policy.PivotRecord, 0, len(pivots))
	for _, pivot := range pivots {
		actor := ""
		if pivot.Actor != nil {
			actor = *pivot.Actor
		}
		records = append(records, policy.PivotRecord{
			From:          pivot.FromAuthority,
			To:            pivot.ToAuthority,
			Justification: pivot.Justification,
			Actor:         actor,
			Risk:          pivot.Risk,
			Conditions:    pivot.Conditions,
			CreatedAt:     pivot.CreatedAt,
		})
	}

	return &policy.MissionContext{
		Authority:         mission.PrimaryAuthority,
		OriginalAuthority: mission.OriginalAuthority,
		IntTypes:          mission.IntTypes,
		CreatedAt:         mission.CreatedAt,
		Pivots:            records,
	}, nil
}

func normalizeInts(codes []string) []string {
	var normalized []string
	seen := make(map[string]struct{})
	for _, code := range codes {
		upper := strings.ToUpper(strings.TrimSpace(code))
		if upper == "" {
			continue
		}
		if _, ok := seen[upper]; ok {
			continue
		}
		seen[upper] = struct{}{}
		normalized = append(normalized, upper)
	}
	if normalized == nil {
		normalized = []string{}
	}
	return normalized
}
