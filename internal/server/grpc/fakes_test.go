package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophforum/internal/fielderrors"
	"github.com/dmitrijs2005/gophforum/internal/logging"
	"github.com/dmitrijs2005/gophforum/internal/server/config"
	"github.com/dmitrijs2005/gophforum/internal/server/metrics"
	"github.com/dmitrijs2005/gophforum/internal/server/models"
	"github.com/dmitrijs2005/gophforum/internal/server/services"
)

const testSecret = "k"

type fakeUsers struct {
	regUser *models.User
	regErrs []fielderrors.FieldError
	regErr  error
	regIn   services.RegisterInput

	loginUser   *models.User
	loginTokens *services.TokenPair
	loginErrs   []fielderrors.FieldError
	loginErr    error

	logoutErr   error
	refreshResp *services.TokenPair
	refreshErr  error

	current    *models.User
	currentErr error
	currentID  string
}

func (f *fakeUsers) Register(_ context.Context, in services.RegisterInput) (*models.User, []fielderrors.FieldError, error) {
	f.regIn = in
	return f.regUser, f.regErrs, f.regErr
}
func (f *fakeUsers) Login(context.Context, string, string) (*models.User, *services.TokenPair, []fielderrors.FieldError, error) {
	return f.loginUser, f.loginTokens, f.loginErrs, f.loginErr
}
func (f *fakeUsers) Logout(context.Context, string) error { return f.logoutErr }
func (f *fakeUsers) RefreshToken(context.Context, string) (*services.TokenPair, error) {
	return f.refreshResp, f.refreshErr
}
func (f *fakeUsers) CurrentUser(_ context.Context, userID string) (*models.User, error) {
	f.currentID = userID
	return f.current, f.currentErr
}

type fakeForum struct {
	settings config.Forum
	cats     []services.CategoryListing
	catsErr  error
	page     *models.ThreadPage
	pageErr  error

	thread    *models.Thread
	posts     []models.Post
	threadErr error

	post     *models.Post
	postErrs []fielderrors.FieldError
	postErr  error

	gotUser     *models.User
	gotThreadIn services.PostThreadInput
	gotReplyIn  services.PostReplyInput
}

func (f *fakeForum) Settings() config.Forum { return f.settings }
func (f *fakeForum) Categories(context.Context) ([]services.CategoryListing, error) {
	return f.cats, f.catsErr
}
func (f *fakeForum) Threads(context.Context, string, string) (*models.ThreadPage, error) {
	return f.page, f.pageErr
}
func (f *fakeForum) Thread(context.Context, string, int) (*models.Thread, []models.Post, error) {
	return f.thread, f.posts, f.threadErr
}
func (f *fakeForum) PostThread(_ context.Context, user *models.User, in services.PostThreadInput) (*models.Thread, *models.Post, []fielderrors.FieldError, error) {
	f.gotUser, f.gotThreadIn = user, in
	return f.thread, f.post, f.postErrs, f.postErr
}
func (f *fakeForum) PostReply(_ context.Context, user *models.User, in services.PostReplyInput) (*models.Thread, *models.Post, []fielderrors.FieldError, error) {
	f.gotUser, f.gotReplyIn = user, in
	return f.thread, f.post, f.postErrs, f.postErr
}

type fakeModeration struct {
	threads []models.Thread
	deleted []string
	errs    []fielderrors.FieldError
	err     error

	called      string
	gotUser     *models.User
	gotIDs      []string
	gotCategory string
}

func (f *fakeModeration) record(name string, user *models.User, ids []string) {
	f.called, f.gotUser, f.gotIDs = name, user, ids
}
func (f *fakeModeration) CloseThreads(_ context.Context, user *models.User, ids []string) ([]models.Thread, []fielderrors.FieldError, error) {
	f.record("close", user, ids)
	return f.threads, f.errs, f.err
}
func (f *fakeModeration) OpenThreads(_ context.Context, user *models.User, ids []string) ([]models.Thread, []fielderrors.FieldError, error) {
	f.record("open", user, ids)
	return f.threads, f.errs, f.err
}
func (f *fakeModeration) MoveThreads(_ context.Context, user *models.User, ids []string, categoryID string) ([]models.Thread, []fielderrors.FieldError, error) {
	f.record("move", user, ids)
	f.gotCategory = categoryID
	return f.threads, f.errs, f.err
}
func (f *fakeModeration) DeleteThreads(_ context.Context, user *models.User, ids []string) ([]string, []fielderrors.FieldError, error) {
	f.record("delete", user, ids)
	return f.deleted, f.errs, f.err
}

func newServer(u *fakeUsers, f *fakeForum, m *fakeModeration) *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", logging.Nop{}, u, f, m, metrics.New(), testSecret)
}
