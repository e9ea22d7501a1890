package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/gophforum/internal/api"
	"github.com/dmitrijs2005/gophforum/internal/common"
	"github.com/dmitrijs2005/gophforum/internal/fielderrors"
	"github.com/dmitrijs2005/gophforum/internal/logging"
	"github.com/dmitrijs2005/gophforum/internal/server/auth"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const UserIDKey ctxKey = "userID"

// publicMethods never look at the access token, so an expired token cannot
// block signing in or refreshing.
var publicMethods = map[string]bool{
	api.MethodPing:         true,
	api.MethodSettings:     true,
	api.MethodLogin:        true,
	api.MethodRegister:     true,
	api.MethodRefreshToken: true,
	api.MethodLogout:       true,
}

func firstValue(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(key); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

func userIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}

// requestLogInterceptor tags the context with a request id, echoes it in the
// response header and logs the outcome of the call.
func (s *GRPCServer) requestLogInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	requestID := firstValue(ctx, common.RequestIDHeaderName)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx = logging.WithRequestID(ctx, requestID)
	_ = grpc.SetHeader(ctx, metadata.Pairs(common.RequestIDHeaderName, requestID))

	start := time.Now()
	resp, err := handler(ctx, req)
	code := status.Code(err)

	args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	switch code {
	case codes.OK, codes.NotFound, codes.InvalidArgument, codes.Unauthenticated:
		s.logger.Info(ctx, "rpc", args...)
	default:
		s.logger.Error(ctx, "rpc", append(args, "error", err)...)
	}
	return resp, err
}

func (s *GRPCServer) metricsInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if s.metrics == nil {
		return handler(ctx, req)
	}
	start := time.Now()
	resp, err := handler(ctx, req)
	s.metrics.ObserveRPC(info.FullMethod, status.Code(err).String(), time.Since(start))
	if err == nil {
		s.metrics.ObserveFieldErrors(info.FullMethod, fieldErrorsOf(resp))
	}
	return resp, err
}

func fieldErrorsOf(resp any) []fielderrors.FieldError {
	switch r := resp.(type) {
	case *api.LoginResponse:
		return r.Errors
	case *api.RegisterResponse:
		return r.Errors
	case *api.PostThreadResponse:
		return r.Errors
	case *api.PostReplyResponse:
		return r.Errors
	case *api.BulkThreadsResponse:
		return r.Errors
	case *api.DeleteThreadsResponse:
		return r.Errors
	}
	return nil
}

// accessTokenInterceptor resolves the caller from the access token. A call
// without a token proceeds anonymously; a bad token is rejected.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	accessToken := firstValue(ctx, common.AccessTokenHeaderName)
	if accessToken == "" {
		return handler(ctx, req)
	}

	userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}

	ctx = context.WithValue(ctx, UserIDKey, userID)
	return handler(ctx, req)
}
