package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophtasks/internal/models"
	"github.com/dmitrijs2005/gophtasks/internal/rpc"
)

func (s *GRPCServer) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.AuthResponse, error) {

	s.logger.Info(ctx, "Registration request", "username", req.Username)

	sess, err := s.store.Register(ctx, models.Credentials{Username: req.Username, Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, s.statusError(ctx, err)
	}

	return &rpc.AuthResponse{Token: sess.Token, User: sess.User}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.AuthResponse, error) {

	sess, err := s.store.Login(ctx, models.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, s.statusError(ctx, err)
	}

	s.logger.Info(ctx, "Logged in", "user_id", sess.User.ID)
	return &rpc.AuthResponse{Token: sess.Token, User: sess.User}, nil
}

func (s *GRPCServer) ListTasks(ctx context.Context, req *rpc.ListTasksRequest) (*rpc.ListTasksResponse, error) {

	tasks, err := s.store.ListTasks(ctx, tokenFromContext(ctx))
	if err != nil {
		return nil, s.statusError(ctx, err)
	}

	return &rpc.ListTasksResponse{Tasks: tasks}, nil
}

func (s *GRPCServer) CreateTask(ctx context.Context, req *rpc.CreateTaskRequest) (*rpc.TaskResponse, error) {

	task, err := s.store.CreateTask(ctx, tokenFromContext(ctx), req.Text)
	if err != nil {
		return nil, s.statusError(ctx, err)
	}

	return &rpc.TaskResponse{Task: task}, nil
}

func (s *GRPCServer) UpdateTask(ctx context.Context, req *rpc.UpdateTaskRequest) (*rpc.TaskResponse, error) {

	task, err := s.store.UpdateTask(ctx, tokenFromContext(ctx), req.ID, req.Patch)
	if err != nil {
		return nil, s.statusError(ctx, err)
	}

	return &rpc.TaskResponse{Task: task}, nil
}

func (s *GRPCServer) DeleteTask(ctx context.Context, req *rpc.DeleteTaskRequest) (*rpc.SuccessResponse, error) {

	if err := s.store.DeleteTask(ctx, tokenFromContext(ctx), req.ID); err != nil {
		return nil, s.statusError(ctx, err)
	}

	return &rpc.SuccessResponse{Success: true}, nil
}

func (s *GRPCServer) ClearCompleted(ctx context.Context, req *rpc.ClearCompletedRequest) (*rpc.SuccessResponse, error) {

	if err := s.store.ClearCompleted(ctx, tokenFromContext(ctx), req.IDs); err != nil {
		return nil, s.statusError(ctx, err)
	}

	return &rpc.SuccessResponse{Success: true}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *rpc.PingRequest) (*rpc.PingResponse, error) {

	if err := s.store.Ping(ctx); err != nil {
		return nil, s.statusError(ctx, err)
	}

	return &rpc.PingResponse{Status: "OK"}, nil
}
