package documents

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/apex-intel/apex/pkg/pagination"
	"github.com/apex-intel/apex/pkg/query"
	"github.com/apex-intel/apex/pkg/repository"
)

const documentColumns = `id, mission_id, title, content, include_in_analysis, created_at, updated_at`

const batchWorkers = 4

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a document repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "documents"),
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
) (*pagination.PageResult[Document], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "Content")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	docs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	result := pagination.NewPageResult(docs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Document, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	doc, err := repository.QueryOne(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &doc, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Document, error) {
	if strings.TrimSpace(cmd.Content) == "" {
		return nil, ErrContentEmpty
	}

	include := true
	if cmd.IncludeInAnalysis != nil {
		include = *cmd.IncludeInAnalysis
	}

	q := fmt.Sprintf(`
		INSERT INTO documents(id, mission_id, title, content, include_in_analysis)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`, documentColumns)

	args := []any{uuid.New(), cmd.MissionID, cmd.Title, cmd.Content, include}

	doc, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Document, error) {
		return repository.QueryOne(ctx, tx, q, args, scanDocument)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("document created", "id", doc.ID, "mission_id", doc.MissionID)
	return &doc, nil
}

// CreateBatch inserts multiple documents with bounded concurrency.
// All commands are validated up front so a bad entry fails the batch
// before any insert runs.
func (r *repo) CreateBatch(ctx context.Context, cmds []CreateCommand) ([]Document, error) {
	for i, cmd := range cmds {
		if strings.TrimSpace(cmd.Content) == "" {
			return nil, fmt.Errorf("%w: entry %d", ErrContentEmpty, i)
		}
	}

	docs := make([]Document, len(cmds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchWorkers)

	for i, cmd := range cmds {
		g.Go(func() error {
			doc, err := r.Create(gctx, cmd)
			if err != nil {
				return err
			}
			docs[i] = *doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return docs, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Document, error) {
	doc, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	title := doc.Title
	if cmd.Title != nil {
		title = cmd.Title
	}

	content := doc.Content
	if cmd.Content != nil {
		if strings.TrimSpace(*cmd.Content) == "" {
			return nil, ErrContentEmpty
		}
		content = *cmd.Content
	}

	include := doc.IncludeInAnalysis
	if cmd.IncludeInAnalysis != nil {
		include = *cmd.IncludeInAnalysis
	}

	q := fmt.Sprintf(`
		UPDATE documents
		SET title = $2, content = $3, include_in_analysis = $4, updated_at = now()
		WHERE id = $1
		RETURNING %s`, documentColumns)

	updated, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Document, error) {
		return repository.QueryOne(ctx, tx, q, []any{id, title, content, include}, scanDocument)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &updated, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM documents WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("document deleted", "id", id)
	return nil
}

func (r *repo) ListForAnalysis(ctx context.Context, missionID uuid.UUID) ([]Document, error) {
	include := true
	qb := query.NewBuilder(projection, analysisSort).
		WhereEquals("MissionID", missionID).
		WhereEquals("IncludeInAnalysis", &include)

	q, args := qb.Build()
	docs, err := repository.QueryMany(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query analysis documents: %w", err)
	}
	return docs, nil
}
