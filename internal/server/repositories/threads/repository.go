// Package threads stores forum threads and the keyset cursor used to page
// through them.
package threads

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophforum/internal/server/models"
)

type Repository interface {
	// Create inserts thread and fills ID, Slug defaults and timestamps.
	Create(ctx context.Context, thread *models.Thread) (*models.Thread, error)
	GetByID(ctx context.Context, id string) (*models.Thread, error)
	// List returns up to limit threads ordered by last activity, newest
	// first, starting after the cursor. An empty categoryID lists all
	// categories.
	List(ctx context.Context, categoryID string, after *Cursor, limit int) ([]models.Thread, error)
	SetClosed(ctx context.Context, id string, closed bool) error
	Move(ctx context.Context, id string, categoryID string) error
	Delete(ctx context.Context, id string) error
	// TouchReply counts one more reply and bumps the last activity time.
	TouchReply(ctx context.Context, id string, postedAt time.Time) error
}
