package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophforum/internal/api"
	"github.com/dmitrijs2005/gophforum/internal/client/client"
	"github.com/dmitrijs2005/gophforum/internal/fielderrors"
	"github.com/google/uuid"
)

type ForumService interface {
	Settings(ctx context.Context) (*api.Settings, error)
	Categories(ctx context.Context) ([]api.Category, error)
	CategoryID(ctx context.Context, ref string) (string, error)
	Threads(ctx context.Context, category, cursor string) (*api.ThreadsResponse, error)
	Thread(ctx context.Context, id string, page int) (*api.ThreadResponse, error)

	PostThread(ctx context.Context, req api.PostThreadRequest) (*api.Thread, []fielderrors.FieldError, error)
	PostReply(ctx context.Context, threadID, markup string) (*api.Post, []fielderrors.FieldError, error)

	CloseThreads(ctx context.Context, ids []string) ([]api.Thread, []fielderrors.FieldError, error)
	OpenThreads(ctx context.Context, ids []string) ([]api.Thread, []fielderrors.FieldError, error)
	MoveThreads(ctx context.Context, ids []string, category string) ([]api.Thread, []fielderrors.FieldError, error)
	DeleteThreads(ctx context.Context, ids []string) ([]string, []fielderrors.FieldError, error)
}

type forumService struct {
	client client.Client

	mu       sync.Mutex
	settings *api.Settings
}

func NewForumService(c client.Client) ForumService {
	return &forumService{client: c}
}

// Settings fetches the forum limits once and caches them.
func (f *forumService) Settings(ctx context.Context) (*api.Settings, error) {
	f.mu.Lock()
	cached := f.settings
	f.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	s, err := f.client.Settings(ctx)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.settings = s
	f.mu.Unlock()
	return s, nil
}

func (f *forumService) Categories(ctx context.Context) ([]api.Category, error) {
	return f.client.Categories(ctx)
}

// CategoryID resolves a category slug to its id. Ids and unknown slugs are
// returned unchanged so the server reports them.
func (f *forumService) CategoryID(ctx context.Context, ref string) (string, error) {
	if ref == "" || uuid.Validate(ref) == nil {
		return ref, nil
	}
	cats, err := f.client.Categories(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range cats {
		if c.Slug == ref {
			return c.ID, nil
		}
	}
	return ref, nil
}

func (f *forumService) Threads(ctx context.Context, category, cursor string) (*api.ThreadsResponse, error) {
	return f.client.Threads(ctx, category, cursor)
}

func (f *forumService) Thread(ctx context.Context, id string, page int) (*api.ThreadResponse, error) {
	return f.client.Thread(ctx, id, page)
}

func (f *forumService) PostThread(ctx context.Context, req api.PostThreadRequest) (*api.Thread, []fielderrors.FieldError, error) {
	resp, err := f.client.PostThread(ctx, &req)
	if err != nil {
		return nil, nil, err
	}
	if len(resp.Errors) == 0 && resp.Thread == nil {
		return nil, nil, fmt.Errorf("post thread: %w", client.ErrEmptyResponse)
	}
	return resp.Thread, resp.Errors, nil
}

func (f *forumService) PostReply(ctx context.Context, threadID, markup string) (*api.Post, []fielderrors.FieldError, error) {
	resp, err := f.client.PostReply(ctx, &api.PostReplyRequest{Thread: threadID, Markup: markup})
	if err != nil {
		return nil, nil, err
	}
	if len(resp.Errors) == 0 && resp.Post == nil {
		return nil, nil, fmt.Errorf("post reply: %w", client.ErrEmptyResponse)
	}
	return resp.Post, resp.Errors, nil
}

func (f *forumService) CloseThreads(ctx context.Context, ids []string) ([]api.Thread, []fielderrors.FieldError, error) {
	return bulk(f.client.CloseThreads(ctx, ids))
}

func (f *forumService) OpenThreads(ctx context.Context, ids []string) ([]api.Thread, []fielderrors.FieldError, error) {
	return bulk(f.client.OpenThreads(ctx, ids))
}

func (f *forumService) MoveThreads(ctx context.Context, ids []string, category string) ([]api.Thread, []fielderrors.FieldError, error) {
	return bulk(f.client.MoveThreads(ctx, ids, category))
}

func (f *forumService) DeleteThreads(ctx context.Context, ids []string) ([]string, []fielderrors.FieldError, error) {
	resp, err := f.client.DeleteThreads(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return resp.Deleted, resp.Errors, nil
}

func bulk(resp *api.BulkThreadsResponse, err error) ([]api.Thread, []fielderrors.FieldError, error) {
	if err != nil {
		return nil, nil, err
	}
	return resp.Threads, resp.Errors, nil
}
