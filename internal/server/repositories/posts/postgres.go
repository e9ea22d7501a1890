package posts

import (
	"context"

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

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	query := `
		INSERT INTO posts (thread_id, poster_id, poster_name, markup)
		VALUES ($1, $2, $3, $4)
		RETURNING id, posted_at
	`
	err := r.db.QueryRowContext(ctx, query, post.ThreadID, post.PosterID, post.PosterName, post.Markup).
		Scan(&post.ID, &post.PostedAt)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	return post, nil
}

func (r *PostgresRepository) ListByThread(ctx context.Context, threadID string, offset, limit int) ([]models.Post, error) {
	query := `
		SELECT id, thread_id, poster_id, poster_name, markup, posted_at
		FROM posts
		WHERE thread_id = $1
		ORDER BY posted_at, id
		OFFSET $2 LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, threadID, offset, limit)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	defer rows.Close()

	var out []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.ThreadID, &p.PosterID, &p.PosterName, &p.Markup, &p.PostedAt); err != nil {
			return nil, pgerr.Wrap(err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Wrap(err)
	}
	return out, nil
}

func (r *PostgresRepository) CountByThread(ctx context.Context, threadID string) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts WHERE thread_id = $1`, threadID).Scan(&n); err != nil {
		return 0, pgerr.Wrap(err)
	}
	return n, nil
}
