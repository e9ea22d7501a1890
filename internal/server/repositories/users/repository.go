// Package users stores forum accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophforum/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills its ID and JoinedAt. A taken slug or
	// e-mail yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByLogin matches login against the user slug or, case-insensitively,
	// the e-mail address.
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	// Availability reports whether slug and email are already used.
	Availability(ctx context.Context, slug, email string) (slugTaken, emailTaken bool, err error)
}
