// Package grpc exposes the forum services over gRPC with the JSON codec
// from internal/api.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gophforum/internal/api"
	"github.com/dmitrijs2005/gophforum/internal/fielderrors"
	"github.com/dmitrijs2005/gophforum/internal/logging"
	"github.com/dmitrijs2005/gophforum/internal/server/config"
	"github.com/dmitrijs2005/gophforum/internal/server/metrics"
	"github.com/dmitrijs2005/gophforum/internal/server/models"
	"github.com/dmitrijs2005/gophforum/internal/server/services"
	"google.golang.org/grpc"
)

type userSvc interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, []fielderrors.FieldError, error)
	Login(ctx context.Context, login, password string) (*models.User, *services.TokenPair, []fielderrors.FieldError, error)
	Logout(ctx context.Context, refreshToken string) error
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
}

type forumSvc interface {
	Settings() config.Forum
	Categories(ctx context.Context) ([]services.CategoryListing, error)
	Threads(ctx context.Context, categorySlug, cursor string) (*models.ThreadPage, error)
	Thread(ctx context.Context, id string, page int) (*models.Thread, []models.Post, error)
	PostThread(ctx context.Context, user *models.User, in services.PostThreadInput) (*models.Thread, *models.Post, []fielderrors.FieldError, error)
	PostReply(ctx context.Context, user *models.User, in services.PostReplyInput) (*models.Thread, *models.Post, []fielderrors.FieldError, error)
}

type moderationSvc interface {
	CloseThreads(ctx context.Context, user *models.User, ids []string) ([]models.Thread, []fielderrors.FieldError, error)
	OpenThreads(ctx context.Context, user *models.User, ids []string) ([]models.Thread, []fielderrors.FieldError, error)
	MoveThreads(ctx context.Context, user *models.User, ids []string, categoryID string) ([]models.Thread, []fielderrors.FieldError, error)
	DeleteThreads(ctx context.Context, user *models.User, ids []string) ([]string, []fielderrors.FieldError, error)
}

type GRPCServer struct {
	api.UnimplementedForumServer
	address    string
	users      userSvc
	forum      forumSvc
	moderation moderationSvc
	metrics    *metrics.Metrics
	logger     logging.Logger
	jwtSecret  []byte
}

func NewGRPCServer(a string, l logging.Logger, us userSvc, fs forumSvc, ms moderationSvc, m *metrics.Metrics, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:    a,
		logger:     l.With("module", "grpc_server"),
		users:      us,
		forum:      fs,
		moderation: ms,
		metrics:    m,
		jwtSecret:  []byte(secretKey),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.requestLogInterceptor,
		s.metricsInterceptor,
		s.accessTokenInterceptor,
	))
	api.RegisterForumServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gPRC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
