package grpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophforum/internal/api"
	"github.com/dmitrijs2005/gophforum/internal/common"
	"github.com/dmitrijs2005/gophforum/internal/fielderrors"
	"github.com/dmitrijs2005/gophforum/internal/server/config"
	"github.com/dmitrijs2005/gophforum/internal/server/models"
	"github.com/dmitrijs2005/gophforum/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const threadID = "5f0c6a43-8e0b-4f7e-9a51-0a4c3e8f2b11"

func withUser(id string) context.Context {
	return context.WithValue(context.Background(), UserIDKey, id)
}

func TestPing_OK(t *testing.T) {
	s := newServer(&fakeUsers{}, &fakeForum{}, &fakeModeration{})
	resp, err := s.Ping(context.Background(), &api.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", resp.Status)
}

func TestSettings(t *testing.T) {
	f := &fakeForum{settings: config.Forum{Name: "Forum", BulkActionLimit: 40, ThreadTitleMinLength: 5}}
	s := newServer(&fakeUsers{}, f, &fakeModeration{})

	resp, err := s.Settings(context.Background(), &api.SettingsRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Forum", resp.Settings.ForumName)
	assert.Equal(t, 40, resp.Settings.BulkActionLimit)
	assert.Equal(t, 5, resp.Settings.ThreadTitleMinLength)
}

func TestRegister(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		u := &fakeUsers{regUser: &models.User{ID: "u1", Name: "Bob", Slug: "bob"}}
		s := newServer(u, &fakeForum{}, &fakeModeration{})

		resp, err := s.Register(context.Background(), &api.RegisterRequest{Name: "Bob", Email: "b@x.io", Password: "pw"})
		require.NoError(t, err)
		assert.Equal(t, "u1", resp.User.ID)
		assert.Empty(t, resp.Errors)
		assert.Equal(t, services.RegisterInput{Name: "Bob", Email: "b@x.io", Password: "pw"}, u.regIn)
	})

	t.Run("field errors", func(t *testing.T) {
		errs := []fielderrors.FieldError{fielderrors.New([]string{"email"}, "email.not_available", "taken")}
		s := newServer(&fakeUsers{regErrs: errs}, &fakeForum{}, &fakeModeration{})

		resp, err := s.Register(context.Background(), &api.RegisterRequest{})
		require.NoError(t, err)
		assert.Nil(t, resp.User)
		assert.Equal(t, errs, resp.Errors)
	})

	t.Run("internal", func(t *testing.T) {
		s := newServer(&fakeUsers{regErr: errors.New("db down")}, &fakeForum{}, &fakeModeration{})
		_, err := s.Register(context.Background(), &api.RegisterRequest{})
		assert.Equal(t, codes.Internal, status.Code(err))
	})
}

func TestLogin(t *testing.T) {
	u := &fakeUsers{
		loginUser:   &models.User{ID: "u1", Name: "Bob", IsModerator: true},
		loginTokens: &services.TokenPair{AccessToken: "a", RefreshToken: "r"},
	}
	s := newServer(u, &fakeForum{}, &fakeModeration{})

	resp, err := s.Login(context.Background(), &api.LoginRequest{Login: "bob", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "a", resp.AccessToken)
	assert.Equal(t, "r", resp.RefreshToken)
	assert.True(t, resp.User.IsModerator)

	rejected := &fakeUsers{loginErrs: []fielderrors.FieldError{fielderrors.Root("invalid_credentials", "nope")}}
	resp, err = newServer(rejected, &fakeForum{}, &fakeModeration{}).Login(context.Background(), &api.LoginRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.AccessToken)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "invalid_credentials", resp.Errors[0].Type)

	_, err = newServer(&fakeUsers{loginErr: errors.New("boom")}, &fakeForum{}, &fakeModeration{}).Login(context.Background(), &api.LoginRequest{})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestRefreshToken(t *testing.T) {
	tests := []struct {
		name     string
		users    *fakeUsers
		wantCode codes.Code
		wantMsg  string
	}{
		{"ok", &fakeUsers{refreshResp: &services.TokenPair{AccessToken: "a", RefreshToken: "r"}}, codes.OK, ""},
		{"expired", &fakeUsers{refreshErr: common.ErrRefreshTokenExpired}, codes.Unauthenticated, common.ErrRefreshTokenExpired.Error()},
		{"unknown", &fakeUsers{refreshErr: common.ErrorNotFound}, codes.Unauthenticated, common.ErrInvalidToken.Error()},
		{"internal", &fakeUsers{refreshErr: errors.New("oops")}, codes.Internal, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(tt.users, &fakeForum{}, &fakeModeration{})
			resp, err := s.RefreshToken(context.Background(), &api.RefreshTokenRequest{RefreshToken: "r0"})
			assert.Equal(t, tt.wantCode, status.Code(err))
			if tt.wantCode == codes.OK {
				assert.Equal(t, "a", resp.AccessToken)
				return
			}
			assert.Equal(t, tt.wantMsg, status.Convert(err).Message())
		})
	}
}

func TestLogout(t *testing.T) {
	_, err := newServer(&fakeUsers{}, &fakeForum{}, &fakeModeration{}).Logout(context.Background(), &api.LogoutRequest{RefreshToken: "r"})
	require.NoError(t, err)

	_, err = newServer(&fakeUsers{logoutErr: errors.New("x")}, &fakeForum{}, &fakeModeration{}).Logout(context.Background(), &api.LogoutRequest{})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestCategories(t *testing.T) {
	parent := "p1"
	f := &fakeForum{cats: []services.CategoryListing{
		{Category: models.Category{ID: "p1", Name: "General", Slug: "general"}, BannerURL: "https://s3/banner"},
		{Category: models.Category{ID: "c1", ParentID: &parent, Name: "Sub", Depth: 1, IsClosed: true}},
	}}
	s := newServer(&fakeUsers{}, f, &fakeModeration{})

	resp, err := s.Categories(context.Background(), &api.CategoriesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Categories, 2)
	assert.Equal(t, "https://s3/banner", resp.Categories[0].BannerURL)
	assert.Equal(t, "p1", resp.Categories[1].ParentID)
	assert.True(t, resp.Categories[1].IsClosed)

	_, err = newServer(&fakeUsers{}, &fakeForum{catsErr: errors.New("x")}, &fakeModeration{}).Categories(context.Background(), &api.CategoriesRequest{})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestThreads(t *testing.T) {
	now := time.Now()
	f := &fakeForum{page: &models.ThreadPage{
		Items:      []models.Thread{{ID: "t1", Title: "Hello", LastPostedAt: now}},
		NextCursor: "next",
	}}
	resp, err := newServer(&fakeUsers{}, f, &fakeModeration{}).Threads(context.Background(), &api.ThreadsRequest{})
	require.NoError(t, err)
	assert.Equal(t, "next", resp.NextCursor)
	require.Len(t, resp.Threads, 1)
	assert.Equal(t, "Hello", resp.Threads[0].Title)

	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"bad cursor", services.ErrInvalidCursor, codes.InvalidArgument},
		{"unknown category", common.ErrorNotFound, codes.NotFound},
		{"db", errors.New("x"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newServer(&fakeUsers{}, &fakeForum{pageErr: tt.err}, &fakeModeration{}).Threads(context.Background(), &api.ThreadsRequest{Cursor: "zz"})
			assert.Equal(t, tt.want, status.Code(err))
		})
	}
}

func TestThread(t *testing.T) {
	f := &fakeForum{
		thread: &models.Thread{ID: threadID, Title: "Hello", Replies: 1},
		posts:  []models.Post{{ID: "p1", Markup: "first"}, {ID: "p2", Markup: "second"}},
	}
	s := newServer(&fakeUsers{}, f, &fakeModeration{})

	resp, err := s.Thread(context.Background(), &api.ThreadRequest{ID: threadID})
	require.NoError(t, err)
	assert.Equal(t, "Hello", resp.Thread.Title)
	assert.Len(t, resp.Posts, 2)

	_, err = s.Thread(context.Background(), &api.ThreadRequest{ID: "nope"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = newServer(&fakeUsers{}, &fakeForum{threadErr: common.ErrorNotFound}, &fakeModeration{}).Thread(context.Background(), &api.ThreadRequest{ID: threadID})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestPostThread(t *testing.T) {
	t.Run("anonymous caller reaches the service", func(t *testing.T) {
		errs := []fielderrors.FieldError{fielderrors.Root("auth_error.not_authorized", "sign in")}
		f := &fakeForum{postErrs: errs}
		u := &fakeUsers{}
		resp, err := newServer(u, f, &fakeModeration{}).PostThread(context.Background(), &api.PostThreadRequest{Title: "Hi"})
		require.NoError(t, err)
		assert.Equal(t, errs, resp.Errors)
		assert.Nil(t, f.gotUser)
		assert.Empty(t, u.currentID)
	})

	t.Run("signed in", func(t *testing.T) {
		bob := &models.User{ID: "u1", Name: "Bob"}
		f := &fakeForum{thread: &models.Thread{ID: threadID, Title: "Hello"}, post: &models.Post{ID: "p1"}}
		u := &fakeUsers{current: bob}
		req := &api.PostThreadRequest{Category: "c1", Title: "Hello", Markup: "body", IsClosed: true}

		resp, err := newServer(u, f, &fakeModeration{}).PostThread(withUser("u1"), req)
		require.NoError(t, err)
		assert.Equal(t, "u1", u.currentID)
		assert.Same(t, bob, f.gotUser)
		assert.Equal(t, services.PostThreadInput{Category: "c1", Title: "Hello", Markup: "body", IsClosed: true}, f.gotThreadIn)
		assert.Equal(t, threadID, resp.Thread.ID)
		assert.Equal(t, "p1", resp.Post.ID)
	})

	t.Run("user lookup fails", func(t *testing.T) {
		u := &fakeUsers{currentErr: errors.New("db")}
		_, err := newServer(u, &fakeForum{}, &fakeModeration{}).PostThread(withUser("u1"), &api.PostThreadRequest{})
		assert.Equal(t, codes.Internal, status.Code(err))
	})
}

func TestPostReply(t *testing.T) {
	f := &fakeForum{thread: &models.Thread{ID: threadID, Replies: 3}, post: &models.Post{ID: "p9"}}
	resp, err := newServer(&fakeUsers{current: &models.User{ID: "u1"}}, f, &fakeModeration{}).
		PostReply(withUser("u1"), &api.PostReplyRequest{Thread: threadID, Markup: "reply"})
	require.NoError(t, err)
	assert.Equal(t, services.PostReplyInput{Thread: threadID, Markup: "reply"}, f.gotReplyIn)
	assert.Equal(t, int64(3), resp.Thread.Replies)
	assert.Equal(t, "p9", resp.Post.ID)

	_, err = newServer(&fakeUsers{}, &fakeForum{postErr: errors.New("x")}, &fakeModeration{}).
		PostReply(context.Background(), &api.PostReplyRequest{})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestModeration(t *testing.T) {
	mod := &models.User{ID: "m1", IsModerator: true}
	ids := []string{threadID}

	t.Run("close", func(t *testing.T) {
		m := &fakeModeration{threads: []models.Thread{{ID: threadID, IsClosed: true}}}
		resp, err := newServer(&fakeUsers{current: mod}, &fakeForum{}, m).CloseThreads(withUser("m1"), &api.BulkThreadsRequest{Threads: ids})
		require.NoError(t, err)
		assert.Equal(t, "close", m.called)
		assert.Same(t, mod, m.gotUser)
		assert.True(t, resp.Threads[0].IsClosed)
	})

	t.Run("open", func(t *testing.T) {
		m := &fakeModeration{}
		_, err := newServer(&fakeUsers{current: mod}, &fakeForum{}, m).OpenThreads(withUser("m1"), &api.BulkThreadsRequest{Threads: ids})
		require.NoError(t, err)
		assert.Equal(t, "open", m.called)
		assert.Equal(t, ids, m.gotIDs)
	})

	t.Run("move passes category", func(t *testing.T) {
		m := &fakeModeration{}
		_, err := newServer(&fakeUsers{current: mod}, &fakeForum{}, m).MoveThreads(withUser("m1"), &api.MoveThreadsRequest{Threads: ids, Category: "c2"})
		require.NoError(t, err)
		assert.Equal(t, "move", m.called)
		assert.Equal(t, "c2", m.gotCategory)
	})

	t.Run("delete", func(t *testing.T) {
		m := &fakeModeration{deleted: ids}
		resp, err := newServer(&fakeUsers{current: mod}, &fakeForum{}, m).DeleteThreads(withUser("m1"), &api.BulkThreadsRequest{Threads: ids})
		require.NoError(t, err)
		assert.Equal(t, ids, resp.Deleted)
	})

	t.Run("field errors", func(t *testing.T) {
		errs := []fielderrors.FieldError{fielderrors.Root("auth_error.not_moderator", "no")}
		m := &fakeModeration{errs: errs}
		resp, err := newServer(&fakeUsers{}, &fakeForum{}, m).CloseThreads(context.Background(), &api.BulkThreadsRequest{Threads: ids})
		require.NoError(t, err)
		assert.Empty(t, resp.Threads)
		assert.Equal(t, errs, resp.Errors)

		dresp, err := newServer(&fakeUsers{}, &fakeForum{}, m).DeleteThreads(context.Background(), &api.BulkThreadsRequest{Threads: ids})
		require.NoError(t, err)
		assert.Equal(t, errs, dresp.Errors)
	})

	t.Run("internal", func(t *testing.T) {
		m := &fakeModeration{err: errors.New("tx failed")}
		_, err := newServer(&fakeUsers{}, &fakeForum{}, m).MoveThreads(context.Background(), &api.MoveThreadsRequest{Threads: ids})
		assert.Equal(t, codes.Internal, status.Code(err))
	})
}
