package categories

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

const categoryColumns = `id, parent_id, name, slug, color, icon, banner_key, threads, posts, is_closed, depth`

type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(row scanner) (*models.Category, error) {
	c := &models.Category{}
	err := row.Scan(&c.ID, &c.ParentID, &c.Name, &c.Slug, &c.Color, &c.Icon, &c.BannerKey,
		&c.Threads, &c.Posts, &c.IsClosed, &c.Depth)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY depth, position, name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Wrap(err)
	}
	return treeOrder(out), nil
}

// treeOrder places every child right after its parent, keeping the
// incoming sibling order.
func treeOrder(items []models.Category) []models.Category {
	children := make(map[string][]models.Category)
	var roots []models.Category
	for _, c := range items {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	out := make([]models.Category, 0, len(items))
	var walk func(cs []models.Category)
	walk = func(cs []models.Category) {
		for _, c := range cs {
			out = append(out, c)
			walk(children[c.ID])
		}
	}
	walk(roots)
	return out
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	return scanCategory(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE slug = $1`
	return scanCategory(r.db.QueryRowContext(ctx, query, slug))
}

func (r *PostgresRepository) AdjustCounters(ctx context.Context, id string, threads, posts int64) error {
	query := `
		UPDATE categories
		SET threads = GREATEST(threads + $2, 0), posts = GREATEST(posts + $3, 0)
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, threads, posts)
	if err != nil {
		return pgerr.Wrap(err)
	}
	if _, err := dbx.ExpectAffected(res); err != nil {
		return pgerr.Wrap(err)
	}
	return nil
}
