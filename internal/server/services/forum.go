package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophforum/internal/common"
	"github.com/dmitrijs2005/gophforum/internal/dbx"
	"github.com/dmitrijs2005/gophforum/internal/fielderrors"
	"github.com/dmitrijs2005/gophforum/internal/server/config"
	"github.com/dmitrijs2005/gophforum/internal/server/models"
	"github.com/dmitrijs2005/gophforum/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophforum/internal/server/repositories/threads"
	"github.com/dmitrijs2005/gophforum/internal/server/validation"
)

// ErrInvalidCursor is returned by Threads for a malformed page cursor.
var ErrInvalidCursor = threads.ErrInvalidCursor

// Signer presigns object keys; *BannerSigner implements it.
type Signer interface {
	SignAll(ctx context.Context, keys []string) (map[string]string, error)
}

// CategoryListing is a category with its banner URL resolved.
type CategoryListing struct {
	models.Category
	BannerURL string
}

type PostThreadInput struct {
	Category string
	Title    string
	Markup   string
	IsClosed bool
}

type PostReplyInput struct {
	Thread string
	Markup string
}

// ForumService serves category and thread listings and posting.
type ForumService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	forum       config.Forum
	banners     Signer
}

func NewForumService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, banners Signer) *ForumService {
	return &ForumService{db: db, repomanager: m, forum: cfg.Forum, banners: banners}
}

func (s *ForumService) Settings() config.Forum {
	return s.forum
}

// Categories lists the category tree. A failure to presign banners is not
// fatal: the listing is returned without banner URLs.
func (s *ForumService) Categories(ctx context.Context) ([]CategoryListing, error) {
	cats, err := s.repomanager.Categories(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}

	var keys []string
	for _, c := range cats {
		if c.BannerKey != nil && *c.BannerKey != "" {
			keys = append(keys, *c.BannerKey)
		}
	}

	urls := map[string]string{}
	if len(keys) > 0 && s.banners != nil {
		if signed, err := s.banners.SignAll(ctx, keys); err == nil {
			urls = signed
		}
	}

	out := make([]CategoryListing, 0, len(cats))
	for _, c := range cats {
		l := CategoryListing{Category: c}
		if c.BannerKey != nil {
			l.BannerURL = urls[*c.BannerKey]
		}
		out = append(out, l)
	}
	return out, nil
}

// Threads returns one page of threads, optionally limited to the category
// with the given slug. Unknown slugs yield common.ErrorNotFound.
func (s *ForumService) Threads(ctx context.Context, categorySlug, cursor string) (*models.ThreadPage, error) {
	after, err := threads.DecodeCursor(cursor)
	if err != nil {
		return nil, err
	}

	var categoryID string
	if categorySlug != "" {
		cat, err := s.repomanager.Categories(s.db).GetBySlug(ctx, categorySlug)
		if err != nil {
			return nil, err
		}
		categoryID = cat.ID
	}

	limit := s.forum.ThreadsPerPage
	if limit < 1 {
		limit = 25
	}
	items, err := s.repomanager.Threads(s.db).List(ctx, categoryID, after, limit+1)
	if err != nil {
		return nil, fmt.Errorf("error listing threads: %w", err)
	}

	page := &models.ThreadPage{Items: items}
	if len(items) > limit {
		page.Items = items[:limit]
		page.NextCursor = threads.CursorAfter(page.Items[limit-1]).Encode()
	}
	return page, nil
}

// Thread returns a thread with one page of its posts; page counts from 1.
func (s *ForumService) Thread(ctx context.Context, id string, page int) (*models.Thread, []models.Post, error) {
	thread, err := s.repomanager.Threads(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if page < 1 {
		page = 1
	}
	perPage := s.forum.PostsPerPage
	if perPage < 1 {
		perPage = 50
	}
	posts, err := s.repomanager.Posts(s.db).ListByThread(ctx, id, (page-1)*perPage, perPage)
	if err != nil {
		return nil, nil, fmt.Errorf("error listing posts: %w", err)
	}
	return thread, posts, nil
}

func (s *ForumService) category(ctx context.Context, id string) (*models.Category, error) {
	c, err := s.repomanager.Categories(s.db).GetByID(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	return c, err
}

func (s *ForumService) thread(ctx context.Context, id string) (*models.Thread, error) {
	t, err := s.repomanager.Threads(s.db).GetByID(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	return t, err
}

// PostThread starts a thread with its first post. user is nil for
// anonymous callers.
func (s *ForumService) PostThread(ctx context.Context, user *models.User, in PostThreadInput) (*models.Thread, *models.Post, []fielderrors.FieldError, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Markup = strings.TrimSpace(in.Markup)

	var errs fielderrors.List
	validation.Authorized(&errs, user)
	if validation.UUID(&errs, "category", in.Category) {
		cat, err := s.category(ctx, in.Category)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("error loading category: %w", err)
		}
		validation.CategoryOpen(&errs, "category", cat, user)
	}
	validation.ThreadTitle(&errs, "title", in.Title, s.forum.ThreadTitleMinLength, s.forum.ThreadTitleMaxLength)
	validation.Length(&errs, "markup", in.Markup, s.forum.PostMinLength, 0)
	if user != nil {
		validation.NewThreadIsClosed(&errs, "is_closed", in.IsClosed, user)
	}
	if errs.HasErrors() {
		return nil, nil, errs.Errors(), nil
	}

	type result struct {
		thread *models.Thread
		post   *models.Post
	}
	res, err := dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (result, error) {
		thread, err := s.repomanager.Threads(tx).Create(ctx, &models.Thread{
			CategoryID:  in.Category,
			Title:       in.Title,
			Slug:        common.Slugify(in.Title),
			StarterID:   &user.ID,
			StarterName: user.Name,
			IsClosed:    in.IsClosed,
		})
		if err != nil {
			return result{}, fmt.Errorf("error creating thread: %w", err)
		}
		post, err := s.repomanager.Posts(tx).Create(ctx, &models.Post{
			ThreadID:   thread.ID,
			PosterID:   &user.ID,
			PosterName: user.Name,
			Markup:     in.Markup,
		})
		if err != nil {
			return result{}, fmt.Errorf("error creating post: %w", err)
		}
		if err := s.repomanager.Categories(tx).AdjustCounters(ctx, in.Category, 1, 1); err != nil {
			return result{}, fmt.Errorf("error updating category: %w", err)
		}
		return result{thread, post}, nil
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return res.thread, res.post, nil, nil
}

// PostReply appends a post to an open thread. Moderators may reply to
// closed threads and threads in closed categories.
func (s *ForumService) PostReply(ctx context.Context, user *models.User, in PostReplyInput) (*models.Thread, *models.Post, []fielderrors.FieldError, error) {
	in.Markup = strings.TrimSpace(in.Markup)

	var errs fielderrors.List
	validation.Authorized(&errs, user)
	var thread *models.Thread
	if validation.UUID(&errs, "thread", in.Thread) {
		var err error
		if thread, err = s.thread(ctx, in.Thread); err != nil {
			return nil, nil, nil, fmt.Errorf("error loading thread: %w", err)
		}
		if validation.ThreadOpen(&errs, "thread", thread, user) {
			cat, err := s.category(ctx, thread.CategoryID)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("error loading category: %w", err)
			}
			validation.CategoryOpen(&errs, "thread", cat, user)
		}
	}
	validation.Length(&errs, "markup", in.Markup, s.forum.PostMinLength, 0)
	if errs.HasErrors() {
		return nil, nil, errs.Errors(), nil
	}

	post, err := dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.Post, error) {
		post, err := s.repomanager.Posts(tx).Create(ctx, &models.Post{
			ThreadID:   thread.ID,
			PosterID:   &user.ID,
			PosterName: user.Name,
			Markup:     in.Markup,
		})
		if err != nil {
			return nil, fmt.Errorf("error creating post: %w", err)
		}
		if err := s.repomanager.Threads(tx).TouchReply(ctx, thread.ID, post.PostedAt); err != nil {
			return nil, fmt.Errorf("error updating thread: %w", err)
		}
		if err := s.repomanager.Categories(tx).AdjustCounters(ctx, thread.CategoryID, 0, 1); err != nil {
			return nil, fmt.Errorf("error updating category: %w", err)
		}
		return post, nil
	})
	if err != nil {
		return nil, nil, nil, err
	}

	thread.Replies++
	thread.LastPostedAt = post.PostedAt
	return thread, post, nil, nil
}
