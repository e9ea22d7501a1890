package client

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophforum/internal/api"
	"github.com/dmitrijs2005/gophforum/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// TokenListener is told about every rotated token pair so it can be
// persisted.
type TokenListener func(access, refresh string)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.ForumClient

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	onRefresh    TokenListener
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	access, refresh := s.Tokens()
	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
	if err == nil || method == api.MethodRefreshToken {
		return err
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	if st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if refresh == "" {
		return err
	}

	resp, err := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: refresh})
	if err != nil {
		return err
	}
	s.SetTokens(resp.AccessToken, resp.RefreshToken)
	s.mu.Lock()
	listener := s.onRefresh
	s.mu.Unlock()
	if listener != nil {
		listener(resp.AccessToken, resp.RefreshToken)
	}

	// tokens refreshed, retry with the new access token
	return invoker(withAccessToken(ctx, resp.AccessToken), method, req, reply, cc, opts...)
}

func NewGRPCClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewForumClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) SetTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken, s.refreshToken = access, refresh
}

func (s *GRPCClient) Tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

// OnTokenRefresh registers l to be called after a transparent refresh.
func (s *GRPCClient) OnTokenRefresh(l TokenListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRefresh = l
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return err
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Settings(ctx context.Context) (*api.Settings, error) {
	resp, err := s.client.Settings(ctx, &api.SettingsRequest{})
	if err != nil {
		return nil, err
	}
	return &resp.Settings, nil
}

// Login keeps the issued tokens when the server accepted the credentials.
func (s *GRPCClient) Login(ctx context.Context, login, password string) (*api.LoginResponse, error) {
	resp, err := s.client.Login(ctx, &api.LoginRequest{Login: login, Password: password})
	if err != nil {
		return nil, err
	}
	if len(resp.Errors) == 0 {
		s.SetTokens(resp.AccessToken, resp.RefreshToken)
	}
	return resp, nil
}

func (s *GRPCClient) Register(ctx context.Context, name, email, password string) (*api.RegisterResponse, error) {
	return s.client.Register(ctx, &api.RegisterRequest{Name: name, Email: email, Password: password})
}

// Logout revokes the refresh token and forgets both tokens. The local
// tokens are dropped even when the server call fails.
func (s *GRPCClient) Logout(ctx context.Context) error {
	_, refresh := s.Tokens()
	s.SetTokens("", "")
	if refresh == "" {
		return nil
	}
	_, err := s.client.Logout(ctx, &api.LogoutRequest{RefreshToken: refresh})
	return err
}

func (s *GRPCClient) Categories(ctx context.Context) ([]api.Category, error) {
	resp, err := s.client.Categories(ctx, &api.CategoriesRequest{})
	if err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

func (s *GRPCClient) Threads(ctx context.Context, category, cursor string) (*api.ThreadsResponse, error) {
	return s.client.Threads(ctx, &api.ThreadsRequest{Category: category, Cursor: cursor})
}

func (s *GRPCClient) Thread(ctx context.Context, id string, page int) (*api.ThreadResponse, error) {
	return s.client.Thread(ctx, &api.ThreadRequest{ID: id, Page: page})
}

func (s *GRPCClient) PostThread(ctx context.Context, req *api.PostThreadRequest) (*api.PostThreadResponse, error) {
	return s.client.PostThread(ctx, req)
}

func (s *GRPCClient) PostReply(ctx context.Context, req *api.PostReplyRequest) (*api.PostReplyResponse, error) {
	return s.client.PostReply(ctx, req)
}

func (s *GRPCClient) CloseThreads(ctx context.Context, ids []string) (*api.BulkThreadsResponse, error) {
	return s.client.CloseThreads(ctx, &api.BulkThreadsRequest{Threads: ids})
}

func (s *GRPCClient) OpenThreads(ctx context.Context, ids []string) (*api.BulkThreadsResponse, error) {
	return s.client.OpenThreads(ctx, &api.BulkThreadsRequest{Threads: ids})
}

func (s *GRPCClient) MoveThreads(ctx context.Context, ids []string, category string) (*api.BulkThreadsResponse, error) {
	return s.client.MoveThreads(ctx, &api.MoveThreadsRequest{Threads: ids, Category: category})
}

func (s *GRPCClient) DeleteThreads(ctx context.Context, ids []string) (*api.DeleteThreadsResponse, error) {
	return s.client.DeleteThreads(ctx, &api.BulkThreadsRequest{Threads: ids})
}
