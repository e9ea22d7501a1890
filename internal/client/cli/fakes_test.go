package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophforum/internal/api"
	"github.com/dmitrijs2005/gophforum/internal/client/config"
	"github.com/dmitrijs2005/gophforum/internal/client/output"
	"github.com/dmitrijs2005/gophforum/internal/client/services"
	"github.com/dmitrijs2005/gophforum/internal/client/session"
	"github.com/dmitrijs2005/gophforum/internal/fielderrors"
	"github.com/dmitrijs2005/gophforum/internal/i18n"
	"github.com/dmitrijs2005/gophforum/internal/logging"
	"github.com/dmitrijs2005/gophforum/internal/rooterror"
	"github.com/stretchr/testify/require"
)

var (
	_ services.AuthService  = (*fakeAuth)(nil)
	_ services.ForumService = (*fakeForum)(nil)
)

type fakeAuth struct {
	user *session.User

	loginCalls int
	loginUser  string
	loginPass  string
	loginErrs  []fielderrors.FieldError
	loginErr   error

	regErrs []fielderrors.FieldError
	regErr  error

	logoutErr error
	pingErr   error
	closed    bool
}

func (f *fakeAuth) Login(_ context.Context, login, password string) (*session.User, []fielderrors.FieldError, error) {
	f.loginCalls++
	f.loginUser, f.loginPass = login, password
	if f.loginErr != nil || len(f.loginErrs) > 0 {
		return nil, f.loginErrs, f.loginErr
	}
	f.user = &session.User{ID: "u1", Name: login}
	return f.user, nil, nil
}

func (f *fakeAuth) Register(_ context.Context, name, _, _ string) (*session.User, []fielderrors.FieldError, error) {
	if f.regErr != nil || len(f.regErrs) > 0 {
		return nil, f.regErrs, f.regErr
	}
	return &session.User{ID: "u2", Name: name}, nil, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.user = nil
	return f.logoutErr
}

func (f *fakeAuth) Restore(context.Context) (*session.User, error) { return f.user, nil }
func (f *fakeAuth) Current() *session.User                         { return f.user }
func (f *fakeAuth) Ping(context.Context) error                     { return f.pingErr }
func (f *fakeAuth) Close() error                                   { f.closed = true; return nil }

type fakeForum struct {
	settings *api.Settings

	categories    []api.Category
	categoriesErr error

	threads    *api.ThreadsResponse
	threadsArg [2]string
	threadsErr error

	thread    *api.ThreadResponse
	threadErr error

	posted     *api.PostThreadRequest
	postErrs   []fielderrors.FieldError
	replyTo    string
	replyErrs  []fielderrors.FieldError
	bulkIDs    []string
	bulkCalls  []string
	bulkErrs   []fielderrors.FieldError
	bulkErr    error
	moveTarget string
}

func (f *fakeForum) Settings(context.Context) (*api.Settings, error) {
	if f.settings == nil {
		return &api.Settings{BulkActionLimit: 40, ThreadTitleMinLength: 5, ThreadTitleMaxLength: 90}, nil
	}
	return f.settings, nil
}

func (f *fakeForum) Categories(context.Context) ([]api.Category, error) {
	return f.categories, f.categoriesErr
}

func (f *fakeForum) CategoryID(_ context.Context, ref string) (string, error) {
	for _, c := range f.categories {
		if c.Slug == ref {
			return c.ID, nil
		}
	}
	return ref, nil
}

func (f *fakeForum) Threads(_ context.Context, category, cursor string) (*api.ThreadsResponse, error) {
	f.threadsArg = [2]string{category, cursor}
	if f.threadsErr != nil {
		return nil, f.threadsErr
	}
	if f.threads == nil {
		return &api.ThreadsResponse{}, nil
	}
	return f.threads, nil
}

func (f *fakeForum) Thread(context.Context, string, int) (*api.ThreadResponse, error) {
	return f.thread, f.threadErr
}

func (f *fakeForum) PostThread(_ context.Context, req api.PostThreadRequest) (*api.Thread, []fielderrors.FieldError, error) {
	f.posted = &req
	if len(f.postErrs) > 0 {
		return nil, f.postErrs, nil
	}
	return &api.Thread{ID: "t-new", Title: req.Title, CategoryID: req.Category}, nil, nil
}

func (f *fakeForum) PostReply(_ context.Context, threadID, markup string) (*api.Post, []fielderrors.FieldError, error) {
	f.replyTo = threadID
	if len(f.replyErrs) > 0 {
		return nil, f.replyErrs, nil
	}
	return &api.Post{ID: "p1", ThreadID: threadID, Markup: markup}, nil, nil
}

func (f *fakeForum) bulk(name string, ids []string) ([]api.Thread, []fielderrors.FieldError, error) {
	f.bulkCalls = append(f.bulkCalls, name)
	f.bulkIDs = ids
	if f.bulkErr != nil || len(f.bulkErrs) > 0 {
		return nil, f.bulkErrs, f.bulkErr
	}
	out := make([]api.Thread, 0, len(ids))
	for _, id := range ids {
		out = append(out, api.Thread{ID: id, Title: "thread " + id})
	}
	return out, nil, nil
}

func (f *fakeForum) CloseThreads(_ context.Context, ids []string) ([]api.Thread, []fielderrors.FieldError, error) {
	return f.bulk("close", ids)
}

func (f *fakeForum) OpenThreads(_ context.Context, ids []string) ([]api.Thread, []fielderrors.FieldError, error) {
	return f.bulk("open", ids)
}

func (f *fakeForum) MoveThreads(_ context.Context, ids []string, category string) ([]api.Thread, []fielderrors.FieldError, error) {
	f.moveTarget = category
	return f.bulk("move", ids)
}

func (f *fakeForum) DeleteThreads(_ context.Context, ids []string) ([]string, []fielderrors.FieldError, error) {
	_, errs, err := f.bulk("delete", ids)
	if err != nil || len(errs) > 0 {
		return nil, errs, err
	}
	return ids, nil, nil
}

// newTestApp returns an App over fakes that reads input and writes to the
// returned buffer.
func newTestApp(t *testing.T, input string) (*App, *fakeAuth, *fakeForum, *bytes.Buffer) {
	t.Helper()

	catalog, err := i18n.Default()
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.RequestTimeout = time.Second

	auth, forum := &fakeAuth{}, &fakeForum{}
	out := &bytes.Buffer{}
	a := &App{
		config:    cfg,
		logger:    logging.Nop{},
		auth:      auth,
		forum:     forum,
		catalog:   catalog,
		resolver:  rooterror.NewResolver(catalog),
		formatter: output.NewFormatter(config.OutputTable),
		reader:    bufio.NewReader(strings.NewReader(input)),
		out:       out,
		mode:      ModeOffline,
	}
	return a, auth, forum, out
}

// stubCredentials makes password prompts return pw without a terminal.
func stubCredentials(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func silencePrintln(t *testing.T) {
	t.Helper()
	origLn, orig := printlnFn, printFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	printFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn, printFn = origLn, orig })
}
