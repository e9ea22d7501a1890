package services

import (
	"context"

	"github.com/dmitrijs2005/gophforum/internal/api"
	"github.com/dmitrijs2005/gophforum/internal/client/client"
	"github.com/dmitrijs2005/gophforum/internal/client/session"
)

var (
	_ client.Client = (*fakeClient)(nil)
	_ SessionStore  = (*fakeStore)(nil)
)

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	closeErr error
	pingErr  error

	settings      *api.Settings
	settingsErr   error
	settingsCalls int

	loginResp *api.LoginResponse
	loginErr  error
	regResp   *api.RegisterResponse
	regErr    error
	logoutErr error

	access, refresh string

	cats    []api.Category
	catsErr error

	threads   *api.ThreadsResponse
	thread    *api.ThreadResponse
	postT     *api.PostThreadResponse
	postTReq  *api.PostThreadRequest
	postR     *api.PostReplyResponse
	postRReq  *api.PostReplyRequest
	bulkResp  *api.BulkThreadsResponse
	delResp   *api.DeleteThreadsResponse
	err       error
	bulkCall  string
	bulkIDs   []string
	bulkCatID string
}

func (f *fakeClient) Close() error                 { return f.closeErr }
func (f *fakeClient) Ping(context.Context) error   { return f.pingErr }
func (f *fakeClient) SetTokens(a, r string)        { f.access, f.refresh = a, r }
func (f *fakeClient) Tokens() (string, string)     { return f.access, f.refresh }
func (f *fakeClient) Logout(context.Context) error { return f.logoutErr }

func (f *fakeClient) Settings(context.Context) (*api.Settings, error) {
	f.settingsCalls++
	return f.settings, f.settingsErr
}
func (f *fakeClient) Login(context.Context, string, string) (*api.LoginResponse, error) {
	return f.loginResp, f.loginErr
}
func (f *fakeClient) Register(context.Context, string, string, string) (*api.RegisterResponse, error) {
	return f.regResp, f.regErr
}
func (f *fakeClient) Categories(context.Context) ([]api.Category, error) {
	return f.cats, f.catsErr
}
func (f *fakeClient) Threads(context.Context, string, string) (*api.ThreadsResponse, error) {
	return f.threads, f.err
}
func (f *fakeClient) Thread(context.Context, string, int) (*api.ThreadResponse, error) {
	return f.thread, f.err
}
func (f *fakeClient) PostThread(_ context.Context, req *api.PostThreadRequest) (*api.PostThreadResponse, error) {
	f.postTReq = req
	return f.postT, f.err
}
func (f *fakeClient) PostReply(_ context.Context, req *api.PostReplyRequest) (*api.PostReplyResponse, error) {
	f.postRReq = req
	return f.postR, f.err
}
func (f *fakeClient) CloseThreads(_ context.Context, ids []string) (*api.BulkThreadsResponse, error) {
	f.bulkCall, f.bulkIDs = "close", ids
	return f.bulkResp, f.err
}
func (f *fakeClient) OpenThreads(_ context.Context, ids []string) (*api.BulkThreadsResponse, error) {
	f.bulkCall, f.bulkIDs = "open", ids
	return f.bulkResp, f.err
}
func (f *fakeClient) MoveThreads(_ context.Context, ids []string, category string) (*api.BulkThreadsResponse, error) {
	f.bulkCall, f.bulkIDs, f.bulkCatID = "move", ids, category
	return f.bulkResp, f.err
}
func (f *fakeClient) DeleteThreads(_ context.Context, ids []string) (*api.DeleteThreadsResponse, error) {
	f.bulkCall, f.bulkIDs = "delete", ids
	return f.delResp, f.err
}

type fakeStore struct {
	sess     *session.Session
	loadErr  error
	saveErr  error
	clearErr error
	cleared  bool
}

func (s *fakeStore) Load(context.Context) (*session.Session, error) { return s.sess, s.loadErr }
func (s *fakeStore) Save(_ context.Context, sess *session.Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.sess = sess
	return nil
}
func (s *fakeStore) SaveTokens(_ context.Context, a, r string) error {
	if s.sess != nil {
		s.sess.AccessToken, s.sess.RefreshToken = a, r
	}
	return nil
}
func (s *fakeStore) Clear(context.Context) error {
	s.cleared = true
	s.sess = nil
	return s.clearErr
}
