// Package posts stores thread posts. The first post of a thread is its
// opening message.
package posts

import (
	"context"

	"github.com/dmitrijs2005/gophforum/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	// ListByThread returns posts oldest first.
	ListByThread(ctx context.Context, threadID string, offset, limit int) ([]models.Post, error)
	CountByThread(ctx context.Context, threadID string) (int64, error)
}
