package threads

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophforum/internal/dbx"
	"github.com/dmitrijs2005/gophforum/internal/server/models"
	"github.com/dmitrijs2005/gophforum/internal/server/repositories/pgerr"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const threadColumns = `id, category_id, title, slug, starter_id, starter_name, replies, is_closed, started_at, last_posted_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanThread(row scanner) (*models.Thread, error) {
	t := &models.Thread{}
	err := row.Scan(&t.ID, &t.CategoryID, &t.Title, &t.Slug, &t.StarterID, &t.StarterName,
		&t.Replies, &t.IsClosed, &t.StartedAt, &t.LastPostedAt)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	return t, nil
}

func (r *PostgresRepository) Create(ctx context.Context, thread *models.Thread) (*models.Thread, error) {
	query := `
		INSERT INTO threads (category_id, title, slug, starter_id, starter_name, is_closed)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, started_at, last_posted_at
	`
	err := r.db.QueryRowContext(ctx, query,
		thread.CategoryID, thread.Title, thread.Slug, thread.StarterID, thread.StarterName, thread.IsClosed,
	).Scan(&thread.ID, &thread.StartedAt, &thread.LastPostedAt)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	return thread, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Thread, error) {
	query := `SELECT ` + threadColumns + ` FROM threads WHERE id = $1`
	return scanThread(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) List(ctx context.Context, categoryID string, after *Cursor, limit int) ([]models.Thread, error) {
	var (
		where []string
		args  []any
	)
	if categoryID != "" {
		args = append(args, categoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if after != nil {
		args = append(args, after.LastPostedAt, after.ID)
		where = append(where, fmt.Sprintf("(last_posted_at, id) < ($%d, $%d)", len(args)-1, len(args)))
	}
	args = append(args, limit)

	query := `SELECT ` + threadColumns + ` FROM threads`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(` ORDER BY last_posted_at DESC, id DESC LIMIT $%d`, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	defer rows.Close()

	var out []models.Thread
	for rows.Next() {
		t, err := scanThread(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Wrap(err)
	}
	return out, nil
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return pgerr.Wrap(err)
	}
	if _, err := dbx.ExpectAffected(res); err != nil {
		return pgerr.Wrap(err)
	}
	return nil
}

func (r *PostgresRepository) SetClosed(ctx context.Context, id string, closed bool) error {
	return r.exec(ctx, `UPDATE threads SET is_closed = $2 WHERE id = $1`, id, closed)
}

func (r *PostgresRepository) Move(ctx context.Context, id string, categoryID string) error {
	return r.exec(ctx, `UPDATE threads SET category_id = $2 WHERE id = $1`, id, categoryID)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM threads WHERE id = $1`, id)
}

func (r *PostgresRepository) TouchReply(ctx context.Context, id string, postedAt time.Time) error {
	return r.exec(ctx, `UPDATE threads SET replies = replies + 1, last_posted_at = $2 WHERE id = $1`, id, postedAt)
}
