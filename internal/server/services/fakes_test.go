package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophforum/internal/common"
	"github.com/dmitrijs2005/gophforum/internal/dbx"
	"github.com/dmitrijs2005/gophforum/internal/server/config"
	"github.com/dmitrijs2005/gophforum/internal/server/models"
	"github.com/dmitrijs2005/gophforum/internal/server/repositories/categories"
	"github.com/dmitrijs2005/gophforum/internal/server/repositories/posts"
	"github.com/dmitrijs2005/gophforum/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gophforum/internal/server/repositories/threads"
	"github.com/dmitrijs2005/gophforum/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "k"
	cfg.Forum.ThreadsPerPage = 2
	cfg.Forum.BulkActionLimit = 3
	return cfg
}

type fakeUsers struct {
	byID      map[string]*models.User
	createErr error
	getErr    error
	taken     [2]bool
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = "u-new"
	u.JoinedAt = time.Now()
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsers) GetByLogin(_ context.Context, login string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Slug == login || u.Email == login {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsers) Availability(context.Context, string, string) (bool, bool, error) {
	if f.getErr != nil {
		return false, false, f.getErr
	}
	return f.taken[0], f.taken[1], nil
}

type fakeRefresh struct {
	tokens    map[string]*models.RefreshToken
	created   []string
	findErr   error
	delErr    error
	createErr error
}

func (f *fakeRefresh) Create(_ context.Context, userID, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, userID)
	return nil
}

func (f *fakeRefresh) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if t, ok := f.tokens[token]; ok {
		return t, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeRefresh) Delete(_ context.Context, token string) error {
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.tokens, token)
	return nil
}

func (f *fakeRefresh) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for k, t := range f.tokens {
		if t.Expired(now) {
			delete(f.tokens, k)
			n++
		}
	}
	return n, nil
}

type counterDelta struct {
	id             string
	threads, posts int64
}

type fakeCategories struct {
	items  []models.Category
	deltas []counterDelta
	err    error
}

func (f *fakeCategories) List(context.Context) ([]models.Category, error) {
	return f.items, f.err
}

func (f *fakeCategories) GetByID(_ context.Context, id string) (*models.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.items {
		if f.items[i].ID == id {
			c := f.items[i]
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeCategories) GetBySlug(_ context.Context, slug string) (*models.Category, error) {
	for i := range f.items {
		if f.items[i].Slug == slug {
			c := f.items[i]
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeCategories) AdjustCounters(_ context.Context, id string, threads, posts int64) error {
	f.deltas = append(f.deltas, counterDelta{id, threads, posts})
	return nil
}

type fakeThreads struct {
	byID    map[string]*models.Thread
	created []*models.Thread
	closed  map[string]bool
	moved   map[string]string
	deleted []string
	touched []string
	listErr error
	lastArg struct {
		categoryID string
		after      *threads.Cursor
		limit      int
	}
}

func newFakeThreads(ts ...models.Thread) *fakeThreads {
	f := &fakeThreads{byID: map[string]*models.Thread{}, closed: map[string]bool{}, moved: map[string]string{}}
	for i := range ts {
		t := ts[i]
		f.byID[t.ID] = &t
	}
	return f
}

func (f *fakeThreads) Create(_ context.Context, t *models.Thread) (*models.Thread, error) {
	t.ID = "t-new"
	t.StartedAt = time.Now()
	t.LastPostedAt = t.StartedAt
	f.created = append(f.created, t)
	return t, nil
}

func (f *fakeThreads) GetByID(_ context.Context, id string) (*models.Thread, error) {
	if t, ok := f.byID[id]; ok {
		c := *t
		return &c, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeThreads) List(_ context.Context, categoryID string, after *threads.Cursor, limit int) ([]models.Thread, error) {
	f.lastArg.categoryID, f.lastArg.after, f.lastArg.limit = categoryID, after, limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Thread
	for _, t := range f.byID {
		if categoryID == "" || t.CategoryID == categoryID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastPostedAt.After(out[j].LastPostedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeThreads) SetClosed(_ context.Context, id string, closed bool) error {
	f.closed[id] = closed
	return nil
}

func (f *fakeThreads) Move(_ context.Context, id, categoryID string) error {
	f.moved[id] = categoryID
	return nil
}

func (f *fakeThreads) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeThreads) TouchReply(_ context.Context, id string, _ time.Time) error {
	f.touched = append(f.touched, id)
	return nil
}

type fakePosts struct {
	created   []*models.Post
	createErr error
	listed    struct{ offset, limit int }
}

func (f *fakePosts) Create(_ context.Context, p *models.Post) (*models.Post, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	p.ID = "p-new"
	p.PostedAt = time.Now()
	f.created = append(f.created, p)
	return p, nil
}

func (f *fakePosts) ListByThread(_ context.Context, threadID string, offset, limit int) ([]models.Post, error) {
	f.listed.offset, f.listed.limit = offset, limit
	return []models.Post{{ID: "p-1", ThreadID: threadID, Markup: "first"}}, nil
}

func (f *fakePosts) CountByThread(context.Context, string) (int64, error) { return 1, nil }

type fakeRepoManager struct {
	u *fakeUsers
	r *fakeRefresh
	c *fakeCategories
	t *fakeThreads
	p *fakePosts
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error     { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.r }
func (m *fakeRepoManager) Categories(dbx.DBTX) categories.Repository       { return m.c }
func (m *fakeRepoManager) Threads(dbx.DBTX) threads.Repository             { return m.t }
func (m *fakeRepoManager) Posts(dbx.DBTX) posts.Repository                 { return m.p }
