// Package categories stores the category tree and its counters.
package categories

import (
	"context"

	"github.com/dmitrijs2005/gophforum/internal/server/models"
)

type Repository interface {
	// List returns all categories in tree order.
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	// AdjustCounters adds the deltas to the thread and post counters.
	AdjustCounters(ctx context.Context, id string, threads, posts int64) error
}
