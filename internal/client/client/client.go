package client

import (
	"context"

	"github.com/dmitrijs2005/gophforum/internal/api"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Settings(ctx context.Context) (*api.Settings, error)

	Login(ctx context.Context, login, password string) (*api.LoginResponse, error)
	Register(ctx context.Context, name, email, password string) (*api.RegisterResponse, error)
	Logout(ctx context.Context) error
	SetTokens(access, refresh string)
	Tokens() (access, refresh string)

	Categories(ctx context.Context) ([]api.Category, error)
	Threads(ctx context.Context, category, cursor string) (*api.ThreadsResponse, error)
	Thread(ctx context.Context, id string, page int) (*api.ThreadResponse, error)
	PostThread(ctx context.Context, req *api.PostThreadRequest) (*api.PostThreadResponse, error)
	PostReply(ctx context.Context, req *api.PostReplyRequest) (*api.PostReplyResponse, error)

	CloseThreads(ctx context.Context, ids []string) (*api.BulkThreadsResponse, error)
	OpenThreads(ctx context.Context, ids []string) (*api.BulkThreadsResponse, error)
	MoveThreads(ctx context.Context, ids []string, category string) (*api.BulkThreadsResponse, error)
	DeleteThreads(ctx context.Context, ids []string) (*api.DeleteThreadsResponse, error)
}

var _ Client = (*GRPCClient)(nil)
