// Package snippet implements the snippet store on PostgreSQL.
package snippet

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/lingosnip/internal/domain"
)

// psql builds queries with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const snippetColumns = "id, raw_text, lemma, part_of_speech, language_code, source_context, tags, difficulty, next_review, review_count, created_at, updated_at"

// Repo provides snippet persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new snippet repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a snippet by primary key.
// Returns domain.ErrNotFound if the snippet does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Snippet, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+snippetColumns+` FROM snippets WHERE id = $1`, id)

	s, err := scanSnippet(row)
	if err != nil {
		return nil, mapError(err, id)
	}
	return s, nil
}

// List returns snippets matching the filter, newest first. The filter is a
// conjunction: language code matches exactly, tag matches membership in the
// tags array. An empty filter returns the full collection.
func (r *Repo) List(ctx context.Context, filter domain.SnippetFilter) ([]*domain.Snippet, error) {
	q := psql.Select(snippetColumns).
		From("snippets").
		OrderBy("created_at DESC", "id DESC")

	if filter.LanguageCode != nil {
		q = q.Where(sq.Eq{"language_code": *filter.LanguageCode})
	}
	if filter.Tag != nil {
		q = q.Where("tags @> ARRAY[?]::text[]", *filter.Tag)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list snippets: %w", err)
	}
	defer rows.Close()

	snippets := make([]*domain.Snippet, 0)
	for rows.Next() {
		s, err := scanSnippet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snippet: %w", err)
		}
		snippets = append(snippets, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list snippets: %w", err)
	}

	return snippets, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new snippet and returns the persisted record.
// The caller supplies identity and timestamps; the insert is all-or-nothing.
func (r *Repo) Create(ctx context.Context, s *domain.Snippet) (*domain.Snippet, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO snippets (`+snippetColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+snippetColumns,
		s.ID, s.RawText, s.Lemma, s.PartOfSpeech, s.LanguageCode, s.SourceContext,
		s.Tags, s.Difficulty, s.NextReview, s.ReviewCount, s.CreatedAt, s.UpdatedAt,
	)

	created, err := scanSnippet(row)
	if err != nil {
		return nil, mapError(err, s.ID)
	}
	return created, nil
}

// Update applies only the provided fields and bumps updated_at.
// Returns domain.ErrNotFound if the snippet does not exist.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, update domain.SnippetUpdate) (*domain.Snippet, error) {
	q := psql.Update("snippets").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + snippetColumns)

	if update.RawText != nil {
		q = q.Set("raw_text", *update.RawText)
	}
	if update.Lemma != nil {
		q = q.Set("lemma", *update.Lemma)
	}
	if update.PartOfSpeech != nil {
		q = q.Set("part_of_speech", *update.PartOfSpeech)
	}
	if update.LanguageCode != nil {
		q = q.Set("language_code", *update.LanguageCode)
	}
	if update.Tags != nil {
		q = q.Set("tags", update.Tags)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update query: %w", err)
	}

	row := r.pool.QueryRow(ctx, sql, args...)
	updated, err := scanSnippet(row)
	if err != nil {
		return nil, mapError(err, id)
	}
	return updated, nil
}

// Delete removes a snippet. Returns domain.ErrNotFound if it does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM snippets WHERE id = $1`, id)
	if err != nil {
		return mapError(err, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("snippet %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("snippet %s: %w", id, err)
	}

	// pgx.ErrNoRows -> domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("snippet %s: %w", id, domain.ErrNotFound)
	}

	// PgError codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23514": // check_violation
			return fmt.Errorf("snippet %s: %w", id, domain.ErrValidation)
		case "23502": // not_null_violation
			return fmt.Errorf("snippet %s: %w", id, domain.ErrValidation)
		}
	}

	// Everything else: wrap with context
	return fmt.Errorf("snippet %s: %w", id, err)
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

// scanSnippet reads one snippet row in snippetColumns order.
func scanSnippet(row pgx.Row) (*domain.Snippet, error) {
	var s domain.Snippet
	err := row.Scan(
		&s.ID, &s.RawText, &s.Lemma, &s.PartOfSpeech, &s.LanguageCode,
		&s.SourceContext, &s.Tags, &s.Difficulty, &s.NextReview, &s.ReviewCount,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}
	return &s, nil
}
