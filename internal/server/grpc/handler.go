package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophforum/internal/api"
	"github.com/dmitrijs2005/gophforum/internal/common"
	"github.com/dmitrijs2005/gophforum/internal/fielderrors"
	"github.com/dmitrijs2005/gophforum/internal/server/models"
	"github.com/dmitrijs2005/gophforum/internal/server/services"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// statusError maps a service failure to a gRPC status. Validation problems
// never get here: they travel in the response Errors field.
func (s *GRPCServer) statusError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, services.ErrInvalidCursor):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	}
	s.logger.Error(ctx, err.Error())
	return status.Error(codes.Internal, "internal error")
}

// caller loads the signed-in user, nil for anonymous calls.
func (s *GRPCServer) caller(ctx context.Context) (*models.User, error) {
	userID := userIDFromContext(ctx)
	if userID == "" {
		return nil, nil
	}
	u, err := s.users.CurrentUser(ctx, userID)
	if err != nil {
		return nil, s.statusError(ctx, err)
	}
	return u, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Settings(ctx context.Context, req *api.SettingsRequest) (*api.SettingsResponse, error) {
	return &api.SettingsResponse{Settings: toAPISettings(s.forum.Settings())}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {

	s.logger.Info(ctx, "Registration request")

	user, errs, err := s.users.Register(ctx, services.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, s.statusError(ctx, err)
	}
	if len(errs) > 0 {
		return &api.RegisterResponse{Errors: errs}, nil
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID)
	return &api.RegisterResponse{User: toAPIUser(user)}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {

	user, tokens, errs, err := s.users.Login(ctx, req.Login, req.Password)
	if err != nil {
		return nil, s.statusError(ctx, err)
	}
	if len(errs) > 0 {
		return &api.LoginResponse{Errors: errs}, nil
	}

	return &api.LoginResponse{
		User:         toAPIUser(user),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.RefreshTokenResponse, error) {

	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRefreshTokenExpired):
			return nil, status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())
		case errors.Is(err, common.ErrorNotFound):
			return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
		}
		return nil, s.statusError(ctx, err)
	}

	return &api.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *api.LogoutRequest) (*api.LogoutResponse, error) {
	if err := s.users.Logout(ctx, req.RefreshToken); err != nil {
		return nil, s.statusError(ctx, err)
	}
	return &api.LogoutResponse{}, nil
}

func (s *GRPCServer) Categories(ctx context.Context, req *api.CategoriesRequest) (*api.CategoriesResponse, error) {
	cats, err := s.forum.Categories(ctx)
	if err != nil {
		return nil, s.statusError(ctx, err)
	}
	out := make([]api.Category, 0, len(cats))
	for _, c := range cats {
		out = append(out, toAPICategory(c))
	}
	return &api.CategoriesResponse{Categories: out}, nil
}

func (s *GRPCServer) Threads(ctx context.Context, req *api.ThreadsRequest) (*api.ThreadsResponse, error) {
	page, err := s.forum.Threads(ctx, req.Category, req.Cursor)
	if err != nil {
		return nil, s.statusError(ctx, err)
	}
	return &api.ThreadsResponse{Threads: toAPIThreads(page.Items), NextCursor: page.NextCursor}, nil
}

func (s *GRPCServer) Thread(ctx context.Context, req *api.ThreadRequest) (*api.ThreadResponse, error) {
	if err := uuid.Validate(req.ID); err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid thread id")
	}

	thread, posts, err := s.forum.Thread(ctx, req.ID, req.Page)
	if err != nil {
		return nil, s.statusError(ctx, err)
	}

	out := make([]api.Post, 0, len(posts))
	for _, p := range posts {
		out = append(out, toAPIPost(p))
	}
	return &api.ThreadResponse{Thread: toAPIThread(*thread), Posts: out}, nil
}

func (s *GRPCServer) PostThread(ctx context.Context, req *api.PostThreadRequest) (*api.PostThreadResponse, error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	thread, post, errs, err := s.forum.PostThread(ctx, user, services.PostThreadInput{
		Category: req.Category,
		Title:    req.Title,
		Markup:   req.Markup,
		IsClosed: req.IsClosed,
	})
	if err != nil {
		return nil, s.statusError(ctx, err)
	}
	if len(errs) > 0 {
		return &api.PostThreadResponse{Errors: errs}, nil
	}
	return &api.PostThreadResponse{Thread: toAPIThreadPtr(thread), Post: toAPIPostPtr(post)}, nil
}

func (s *GRPCServer) PostReply(ctx context.Context, req *api.PostReplyRequest) (*api.PostReplyResponse, error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	thread, post, errs, err := s.forum.PostReply(ctx, user, services.PostReplyInput{Thread: req.Thread, Markup: req.Markup})
	if err != nil {
		return nil, s.statusError(ctx, err)
	}
	if len(errs) > 0 {
		return &api.PostReplyResponse{Errors: errs}, nil
	}
	return &api.PostReplyResponse{Thread: toAPIThreadPtr(thread), Post: toAPIPostPtr(post)}, nil
}

type bulkAction func(ctx context.Context, user *models.User, ids []string) ([]models.Thread, []fielderrors.FieldError, error)

func (s *GRPCServer) bulk(ctx context.Context, ids []string, action bulkAction) (*api.BulkThreadsResponse, error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	threads, errs, err := action(ctx, user, ids)
	if err != nil {
		return nil, s.statusError(ctx, err)
	}
	if len(errs) > 0 {
		return &api.BulkThreadsResponse{Errors: errs}, nil
	}
	return &api.BulkThreadsResponse{Threads: toAPIThreads(threads)}, nil
}

func (s *GRPCServer) CloseThreads(ctx context.Context, req *api.BulkThreadsRequest) (*api.BulkThreadsResponse, error) {
	return s.bulk(ctx, req.Threads, s.moderation.CloseThreads)
}

func (s *GRPCServer) OpenThreads(ctx context.Context, req *api.BulkThreadsRequest) (*api.BulkThreadsResponse, error) {
	return s.bulk(ctx, req.Threads, s.moderation.OpenThreads)
}

func (s *GRPCServer) MoveThreads(ctx context.Context, req *api.MoveThreadsRequest) (*api.BulkThreadsResponse, error) {
	return s.bulk(ctx, req.Threads, func(ctx context.Context, user *models.User, ids []string) ([]models.Thread, []fielderrors.FieldError, error) {
		return s.moderation.MoveThreads(ctx, user, ids, req.Category)
	})
}

func (s *GRPCServer) DeleteThreads(ctx context.Context, req *api.BulkThreadsRequest) (*api.DeleteThreadsResponse, error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	deleted, errs, err := s.moderation.DeleteThreads(ctx, user, req.Threads)
	if err != nil {
		return nil, s.statusError(ctx, err)
	}
	if len(errs) > 0 {
		return &api.DeleteThreadsResponse{Errors: errs}, nil
	}
	return &api.DeleteThreadsResponse{Deleted: deleted}, nil
}
