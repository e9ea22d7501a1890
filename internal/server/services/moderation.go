package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophforum/internal/common"
	"github.com/dmitrijs2005/gophforum/internal/dbx"
	"github.com/dmitrijs2005/gophforum/internal/fielderrors"
	"github.com/dmitrijs2005/gophforum/internal/server/config"
	"github.com/dmitrijs2005/gophforum/internal/server/models"
	"github.com/dmitrijs2005/gophforum/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophforum/internal/server/validation"
)

const threadsField = "threads"

// ModerationService applies bulk moderator actions to threads. Every
// action is all-or-nothing: one invalid thread id fails the whole batch.
type ModerationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	limit       int
}

func NewModerationService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *ModerationService {
	return &ModerationService{db: db, repomanager: m, limit: cfg.Forum.BulkActionLimit}
}

// load validates the caller and ids and returns the selected threads in
// input order.
func (s *ModerationService) load(ctx context.Context, user *models.User, ids []string, errs *fielderrors.List) ([]models.Thread, error) {
	if !validation.Moderator(errs, user) {
		return nil, nil
	}

	valid := make(map[string]struct{})
	for _, id := range validation.IDList(errs, threadsField, ids, s.limit) {
		valid[id] = struct{}{}
	}

	repo := s.repomanager.Threads(s.db)
	loaded := make(map[string]struct{})
	var out []models.Thread
	for i, id := range ids {
		if _, ok := valid[id]; !ok {
			continue
		}
		if _, dup := loaded[id]; dup {
			continue
		}
		t, err := repo.GetByID(ctx, id)
		if errors.Is(err, common.ErrorNotFound) {
			validation.ThreadExists(errs, validation.ItemField(threadsField, i), nil)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("error loading thread: %w", err)
		}
		loaded[id] = struct{}{}
		out = append(out, *t)
	}
	return out, nil
}

func (s *ModerationService) setClosed(ctx context.Context, user *models.User, ids []string, closed bool) ([]models.Thread, []fielderrors.FieldError, error) {
	var errs fielderrors.List
	selected, err := s.load(ctx, user, ids, &errs)
	if err != nil {
		return nil, nil, err
	}
	if errs.HasErrors() {
		return nil, errs.Errors(), nil
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Threads(tx)
		for i := range selected {
			if selected[i].IsClosed == closed {
				continue
			}
			if err := repo.SetClosed(ctx, selected[i].ID, closed); err != nil {
				return fmt.Errorf("error updating thread: %w", err)
			}
			selected[i].IsClosed = closed
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return selected, nil, nil
}

func (s *ModerationService) CloseThreads(ctx context.Context, user *models.User, ids []string) ([]models.Thread, []fielderrors.FieldError, error) {
	return s.setClosed(ctx, user, ids, true)
}

func (s *ModerationService) OpenThreads(ctx context.Context, user *models.User, ids []string) ([]models.Thread, []fielderrors.FieldError, error) {
	return s.setClosed(ctx, user, ids, false)
}

// MoveThreads moves threads to categoryID and carries their thread and
// post counts along. Moving threads that all already sit in the target
// is rejected at "category".
func (s *ModerationService) MoveThreads(ctx context.Context, user *models.User, ids []string, categoryID string) ([]models.Thread, []fielderrors.FieldError, error) {
	var errs fielderrors.List
	selected, err := s.load(ctx, user, ids, &errs)
	if err != nil {
		return nil, nil, err
	}

	if validation.UUID(&errs, "category", categoryID) {
		cat, err := s.repomanager.Categories(s.db).GetByID(ctx, categoryID)
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return nil, nil, fmt.Errorf("error loading category: %w", err)
		}
		if validation.CategoryOpen(&errs, "category", cat, user) && len(selected) > 0 {
			same := true
			for _, t := range selected {
				same = same && t.CategoryID == categoryID
			}
			if same {
				errs.AddField("category", validation.CodeCategorySame, "threads are already in this category")
			}
		}
	}
	if errs.HasErrors() {
		return nil, errs.Errors(), nil
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		threadsRepo := s.repomanager.Threads(tx)
		categoriesRepo := s.repomanager.Categories(tx)
		for i := range selected {
			t := &selected[i]
			if t.CategoryID == categoryID {
				continue
			}
			if err := threadsRepo.Move(ctx, t.ID, categoryID); err != nil {
				return fmt.Errorf("error moving thread: %w", err)
			}
			posts := t.Replies + 1
			if err := categoriesRepo.AdjustCounters(ctx, t.CategoryID, -1, -posts); err != nil {
				return fmt.Errorf("error updating category: %w", err)
			}
			if err := categoriesRepo.AdjustCounters(ctx, categoryID, 1, posts); err != nil {
				return fmt.Errorf("error updating category: %w", err)
			}
			t.CategoryID = categoryID
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return selected, nil, nil
}

// DeleteThreads removes threads with their posts and returns the deleted ids.
func (s *ModerationService) DeleteThreads(ctx context.Context, user *models.User, ids []string) ([]string, []fielderrors.FieldError, error) {
	var errs fielderrors.List
	selected, err := s.load(ctx, user, ids, &errs)
	if err != nil {
		return nil, nil, err
	}
	if errs.HasErrors() {
		return nil, errs.Errors(), nil
	}

	deleted, err := dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) ([]string, error) {
		threadsRepo := s.repomanager.Threads(tx)
		categoriesRepo := s.repomanager.Categories(tx)
		out := make([]string, 0, len(selected))
		for _, t := range selected {
			if err := threadsRepo.Delete(ctx, t.ID); err != nil {
				return nil, fmt.Errorf("error deleting thread: %w", err)
			}
			if err := categoriesRepo.AdjustCounters(ctx, t.CategoryID, -1, -(t.Replies + 1)); err != nil {
				return nil, fmt.Errorf("error updating category: %w", err)
			}
			out = append(out, t.ID)
		}
		return out, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return deleted, nil, nil
}
