package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "gophforum.Forum"

// Full method names, as seen by interceptors.
const (
	MethodPing          = "/" + ServiceName + "/Ping"
	MethodSettings      = "/" + ServiceName + "/Settings"
	MethodLogin         = "/" + ServiceName + "/Login"
	MethodRegister      = "/" + ServiceName + "/Register"
	MethodRefreshToken  = "/" + ServiceName + "/RefreshToken"
	MethodLogout        = "/" + ServiceName + "/Logout"
	MethodCategories    = "/" + ServiceName + "/Categories"
	MethodThreads       = "/" + ServiceName + "/Threads"
	MethodThread        = "/" + ServiceName + "/Thread"
	MethodPostThread    = "/" + ServiceName + "/PostThread"
	MethodPostReply     = "/" + ServiceName + "/PostReply"
	MethodCloseThreads  = "/" + ServiceName + "/CloseThreads"
	MethodOpenThreads   = "/" + ServiceName + "/OpenThreads"
	MethodMoveThreads   = "/" + ServiceName + "/MoveThreads"
	MethodDeleteThreads = "/" + ServiceName + "/DeleteThreads"
)

// ForumServer is the server API of the forum service.
type ForumServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Settings(context.Context, *SettingsRequest) (*SettingsResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	Categories(context.Context, *CategoriesRequest) (*CategoriesResponse, error)
	Threads(context.Context, *ThreadsRequest) (*ThreadsResponse, error)
	Thread(context.Context, *ThreadRequest) (*ThreadResponse, error)
	PostThread(context.Context, *PostThreadRequest) (*PostThreadResponse, error)
	PostReply(context.Context, *PostReplyRequest) (*PostReplyResponse, error)
	CloseThreads(context.Context, *BulkThreadsRequest) (*BulkThreadsResponse, error)
	OpenThreads(context.Context, *BulkThreadsRequest) (*BulkThreadsResponse, error)
	MoveThreads(context.Context, *MoveThreadsRequest) (*BulkThreadsResponse, error)
	DeleteThreads(context.Context, *BulkThreadsRequest) (*DeleteThreadsResponse, error)
}

// UnimplementedForumServer answers every method with codes.Unimplemented.
// Embed it to keep a server compiling when methods are added.
type UnimplementedForumServer struct{}

func unimplemented(name string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", name)
}

func (UnimplementedForumServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, unimplemented("Ping")
}
func (UnimplementedForumServer) Settings(context.Context, *SettingsRequest) (*SettingsResponse, error) {
	return nil, unimplemented("Settings")
}
func (UnimplementedForumServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, unimplemented("Login")
}
func (UnimplementedForumServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, unimplemented("Register")
}
func (UnimplementedForumServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, unimplemented("RefreshToken")
}
func (UnimplementedForumServer) Logout(context.Context, *LogoutRequest) (*LogoutResponse, error) {
	return nil, unimplemented("Logout")
}
func (UnimplementedForumServer) Categories(context.Context, *CategoriesRequest) (*CategoriesResponse, error) {
	return nil, unimplemented("Categories")
}
func (UnimplementedForumServer) Threads(context.Context, *ThreadsRequest) (*ThreadsResponse, error) {
	return nil, unimplemented("Threads")
}
func (UnimplementedForumServer) Thread(context.Context, *ThreadRequest) (*ThreadResponse, error) {
	return nil, unimplemented("Thread")
}
func (UnimplementedForumServer) PostThread(context.Context, *PostThreadRequest) (*PostThreadResponse, error) {
	return nil, unimplemented("PostThread")
}
func (UnimplementedForumServer) PostReply(context.Context, *PostReplyRequest) (*PostReplyResponse, error) {
	return nil, unimplemented("PostReply")
}
func (UnimplementedForumServer) CloseThreads(context.Context, *BulkThreadsRequest) (*BulkThreadsResponse, error) {
	return nil, unimplemented("CloseThreads")
}
func (UnimplementedForumServer) OpenThreads(context.Context, *BulkThreadsRequest) (*BulkThreadsResponse, error) {
	return nil, unimplemented("OpenThreads")
}
func (UnimplementedForumServer) MoveThreads(context.Context, *MoveThreadsRequest) (*BulkThreadsResponse, error) {
	return nil, unimplemented("MoveThreads")
}
func (UnimplementedForumServer) DeleteThreads(context.Context, *BulkThreadsRequest) (*DeleteThreadsResponse, error) {
	return nil, unimplemented("DeleteThreads")
}

// RegisterForumServer registers srv on s.
func RegisterForumServer(s grpc.ServiceRegistrar, srv ForumServer) {
	s.RegisterService(&ForumServiceDesc, srv)
}

func unaryHandler[Req, Resp any](method string, call func(ForumServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		fs := srv.(ForumServer)
		if interceptor == nil {
			return call(fs, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(fs, ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ForumServiceDesc is the grpc.ServiceDesc of the forum service.
var ForumServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ForumServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unaryHandler(MethodPing, ForumServer.Ping)},
		{MethodName: "Settings", Handler: unaryHandler(MethodSettings, ForumServer.Settings)},
		{MethodName: "Login", Handler: unaryHandler(MethodLogin, ForumServer.Login)},
		{MethodName: "Register", Handler: unaryHandler(MethodRegister, ForumServer.Register)},
		{MethodName: "RefreshToken", Handler: unaryHandler(MethodRefreshToken, ForumServer.RefreshToken)},
		{MethodName: "Logout", Handler: unaryHandler(MethodLogout, ForumServer.Logout)},
		{MethodName: "Categories", Handler: unaryHandler(MethodCategories, ForumServer.Categories)},
		{MethodName: "Threads", Handler: unaryHandler(MethodThreads, ForumServer.Threads)},
		{MethodName: "Thread", Handler: unaryHandler(MethodThread, ForumServer.Thread)},
		{MethodName: "PostThread", Handler: unaryHandler(MethodPostThread, ForumServer.PostThread)},
		{MethodName: "PostReply", Handler: unaryHandler(MethodPostReply, ForumServer.PostReply)},
		{MethodName: "CloseThreads", Handler: unaryHandler(MethodCloseThreads, ForumServer.CloseThreads)},
		{MethodName: "OpenThreads", Handler: unaryHandler(MethodOpenThreads, ForumServer.OpenThreads)},
		{MethodName: "MoveThreads", Handler: unaryHandler(MethodMoveThreads, ForumServer.MoveThreads)},
		{MethodName: "DeleteThreads", Handler: unaryHandler(MethodDeleteThreads, ForumServer.DeleteThreads)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophforum/forum",
}

// ForumClient is the client API of the forum service.
type ForumClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	Settings(ctx context.Context, in *SettingsRequest, opts ...grpc.CallOption) (*SettingsResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error)
	Categories(ctx context.Context, in *CategoriesRequest, opts ...grpc.CallOption) (*CategoriesResponse, error)
	Threads(ctx context.Context, in *ThreadsRequest, opts ...grpc.CallOption) (*ThreadsResponse, error)
	Thread(ctx context.Context, in *ThreadRequest, opts ...grpc.CallOption) (*ThreadResponse, error)
	PostThread(ctx context.Context, in *PostThreadRequest, opts ...grpc.CallOption) (*PostThreadResponse, error)
	PostReply(ctx context.Context, in *PostReplyRequest, opts ...grpc.CallOption) (*PostReplyResponse, error)
	CloseThreads(ctx context.Context, in *BulkThreadsRequest, opts ...grpc.CallOption) (*BulkThreadsResponse, error)
	OpenThreads(ctx context.Context, in *BulkThreadsRequest, opts ...grpc.CallOption) (*BulkThreadsResponse, error)
	MoveThreads(ctx context.Context, in *MoveThreadsRequest, opts ...grpc.CallOption) (*BulkThreadsResponse, error)
	DeleteThreads(ctx context.Context, in *BulkThreadsRequest, opts ...grpc.CallOption) (*DeleteThreadsResponse, error)
}

type forumClient struct {
	cc grpc.ClientConnInterface
}

// NewForumClient returns a stub that sends every call with the JSON codec.
func NewForumClient(cc grpc.ClientConnInterface) ForumClient {
	return &forumClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *forumClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}
func (c *forumClient) Settings(ctx context.Context, in *SettingsRequest, opts ...grpc.CallOption) (*SettingsResponse, error) {
	return invoke[SettingsResponse](ctx, c.cc, MethodSettings, in, opts)
}
func (c *forumClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}
func (c *forumClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, MethodRegister, in, opts)
}
func (c *forumClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}
func (c *forumClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutResponse](ctx, c.cc, MethodLogout, in, opts)
}
func (c *forumClient) Categories(ctx context.Context, in *CategoriesRequest, opts ...grpc.CallOption) (*CategoriesResponse, error) {
	return invoke[CategoriesResponse](ctx, c.cc, MethodCategories, in, opts)
}
func (c *forumClient) Threads(ctx context.Context, in *ThreadsRequest, opts ...grpc.CallOption) (*ThreadsResponse, error) {
	return invoke[ThreadsResponse](ctx, c.cc, MethodThreads, in, opts)
}
func (c *forumClient) Thread(ctx context.Context, in *ThreadRequest, opts ...grpc.CallOption) (*ThreadResponse, error) {
	return invoke[ThreadResponse](ctx, c.cc, MethodThread, in, opts)
}
func (c *forumClient) PostThread(ctx context.Context, in *PostThreadRequest, opts ...grpc.CallOption) (*PostThreadResponse, error) {
	return invoke[PostThreadResponse](ctx, c.cc, MethodPostThread, in, opts)
}
func (c *forumClient) PostReply(ctx context.Context, in *PostReplyRequest, opts ...grpc.CallOption) (*PostReplyResponse, error) {
	return invoke[PostReplyResponse](ctx, c.cc, MethodPostReply, in, opts)
}
func (c *forumClient) CloseThreads(ctx context.Context, in *BulkThreadsRequest, opts ...grpc.CallOption) (*BulkThreadsResponse, error) {
	return invoke[BulkThreadsResponse](ctx, c.cc, MethodCloseThreads, in, opts)
}
func (c *forumClient) OpenThreads(ctx context.Context, in *BulkThreadsRequest, opts ...grpc.CallOption) (*BulkThreadsResponse, error) {
	return invoke[BulkThreadsResponse](ctx, c.cc, MethodOpenThreads, in, opts)
}
func (c *forumClient) MoveThreads(ctx context.Context, in *MoveThreadsRequest, opts ...grpc.CallOption) (*BulkThreadsResponse, error) {
	return invoke[BulkThreadsResponse](ctx, c.cc, MethodMoveThreads, in, opts)
}
func (c *forumClient) DeleteThreads(ctx context.Context, in *BulkThreadsRequest, opts ...grpc.CallOption) (*DeleteThreadsResponse, error) {
	return invoke[DeleteThreadsResponse](ctx, c.cc, MethodDeleteThreads, in, opts)
}
