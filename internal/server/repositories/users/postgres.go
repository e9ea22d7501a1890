package users

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

const userColumns = `id, name, slug, email, salt, password_hash, is_moderator, is_administrator, joined_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Slug, &u.Email, &u.Salt, &u.PasswordHash,
		&u.IsModerator, &u.IsAdministrator, &u.JoinedAt)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	return u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (name, slug, email, salt, password_hash, is_moderator, is_administrator)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, joined_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.Name, user.Slug, user.Email, user.Salt, user.PasswordHash,
		user.IsModerator, user.IsAdministrator,
	).Scan(&user.ID, &user.JoinedAt)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE slug = $1 OR lower(email) = lower($2)`
	return scanUser(r.db.QueryRowContext(ctx, query, login, login))
}

func (r *PostgresRepository) Availability(ctx context.Context, slug, email string) (bool, bool, error) {
	query := `
		SELECT
			EXISTS (SELECT 1 FROM users WHERE slug = $1),
			EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($2))
	`
	var slugTaken, emailTaken bool
	if err := r.db.QueryRowContext(ctx, query, slug, email).Scan(&slugTaken, &emailTaken); err != nil {
		return false, false, pgerr.Wrap(err)
	}
	return slugTaken, emailTaken, nil
}
