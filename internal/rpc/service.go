package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "gophtasks.TaskService"

const (
	RegisterFullMethodName       = "/" + ServiceName + "/Register"
	LoginFullMethodName          = "/" + ServiceName + "/Login"
	ListTasksFullMethodName      = "/" + ServiceName + "/ListTasks"
	CreateTaskFullMethodName     = "/" + ServiceName + "/CreateTask"
	UpdateTaskFullMethodName     = "/" + ServiceName + "/UpdateTask"
	DeleteTaskFullMethodName     = "/" + ServiceName + "/DeleteTask"
	ClearCompletedFullMethodName = "/" + ServiceName + "/ClearCompleted"
	PingFullMethodName           = "/" + ServiceName + "/Ping"
)

// PublicMethods can be called without a session token.
var PublicMethods = map[string]bool{
	RegisterFullMethodName: true,
	LoginFullMethodName:    true,
	PingFullMethodName:     true,
}

// TaskServiceServer is implemented by the gRPC server.
type TaskServiceServer interface {
	Register(context.Context, *RegisterRequest) (*AuthResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
	ListTasks(context.Context, *ListTasksRequest) (*ListTasksResponse, error)
	CreateTask(context.Context, *CreateTaskRequest) (*TaskResponse, error)
	UpdateTask(context.Context, *UpdateTaskRequest) (*TaskResponse, error)
	DeleteTask(context.Context, *DeleteTaskRequest) (*SuccessResponse, error)
	ClearCompleted(context.Context, *ClearCompletedRequest) (*SuccessResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// TaskServiceClient is the client side of TaskServiceServer.
type TaskServiceClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	ListTasks(ctx context.Context, in *ListTasksRequest, opts ...grpc.CallOption) (*ListTasksResponse, error)
	CreateTask(ctx context.Context, in *CreateTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error)
	UpdateTask(ctx context.Context, in *UpdateTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error)
	DeleteTask(ctx context.Context, in *DeleteTaskRequest, opts ...grpc.CallOption) (*SuccessResponse, error)
	ClearCompleted(ctx context.Context, in *ClearCompletedRequest, opts ...grpc.CallOption) (*SuccessResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type taskServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewTaskServiceClient returns a stub that always negotiates the JSON codec.
func NewTaskServiceClient(cc grpc.ClientConnInterface) TaskServiceClient {
	return &taskServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *taskServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, RegisterFullMethodName, in, opts)
}

func (c *taskServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, LoginFullMethodName, in, opts)
}

func (c *taskServiceClient) ListTasks(ctx context.Context, in *ListTasksRequest, opts ...grpc.CallOption) (*ListTasksResponse, error) {
	return invoke[ListTasksResponse](ctx, c.cc, ListTasksFullMethodName, in, opts)
}

func (c *taskServiceClient) CreateTask(ctx context.Context, in *CreateTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error) {
	return invoke[TaskResponse](ctx, c.cc, CreateTaskFullMethodName, in, opts)
}

func (c *taskServiceClient) UpdateTask(ctx context.Context, in *UpdateTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error) {
	return invoke[TaskResponse](ctx, c.cc, UpdateTaskFullMethodName, in, opts)
}

func (c *taskServiceClient) DeleteTask(ctx context.Context, in *DeleteTaskRequest, opts ...grpc.CallOption) (*SuccessResponse, error) {
	return invoke[SuccessResponse](ctx, c.cc, DeleteTaskFullMethodName, in, opts)
}

func (c *taskServiceClient) ClearCompleted(ctx context.Context, in *ClearCompletedRequest, opts ...grpc.CallOption) (*SuccessResponse, error) {
	return invoke[SuccessResponse](ctx, c.cc, ClearCompletedFullMethodName, in, opts)
}

func (c *taskServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, PingFullMethodName, in, opts)
}

// unaryHandler adapts a typed server method to a grpc method handler.
func unaryHandler[Req any](method string, call func(TaskServiceServer, context.Context, *Req) (any, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TaskServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(TaskServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// TaskServiceDesc is registered with grpc.Server.RegisterService.
var TaskServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TaskServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(RegisterFullMethodName, func(s TaskServiceServer, ctx context.Context, in *RegisterRequest) (any, error) {
			return s.Register(ctx, in)
		})},
		{MethodName: "Login", Handler: unaryHandler(LoginFullMethodName, func(s TaskServiceServer, ctx context.Context, in *LoginRequest) (any, error) {
			return s.Login(ctx, in)
		})},
		{MethodName: "ListTasks", Handler: unaryHandler(ListTasksFullMethodName, func(s TaskServiceServer, ctx context.Context, in *ListTasksRequest) (any, error) {
			return s.ListTasks(ctx, in)
		})},
		{MethodName: "CreateTask", Handler: unaryHandler(CreateTaskFullMethodName, func(s TaskServiceServer, ctx context.Context, in *CreateTaskRequest) (any, error) {
			return s.CreateTask(ctx, in)
		})},
		{MethodName: "UpdateTask", Handler: unaryHandler(UpdateTaskFullMethodName, func(s TaskServiceServer, ctx context.Context, in *UpdateTaskRequest) (any, error) {
			return s.UpdateTask(ctx, in)
		})},
		{MethodName: "DeleteTask", Handler: unaryHandler(DeleteTaskFullMethodName, func(s TaskServiceServer, ctx context.Context, in *DeleteTaskRequest) (any, error) {
			return s.DeleteTask(ctx, in)
		})},
		{MethodName: "ClearCompleted", Handler: unaryHandler(ClearCompletedFullMethodName, func(s TaskServiceServer, ctx context.Context, in *ClearCompletedRequest) (any, error) {
			return s.ClearCompleted(ctx, in)
		})},
		{MethodName: "Ping", Handler: unaryHandler(PingFullMethodName, func(s TaskServiceServer, ctx context.Context, in *PingRequest) (any, error) {
			return s.Ping(ctx, in)
		})},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophtasks/task_service",
}

// RegisterTaskServiceServer registers srv on s.
func RegisterTaskServiceServer(s grpc.ServiceRegistrar, srv TaskServiceServer) {
	s.RegisterService(&TaskServiceDesc, srv)
}
