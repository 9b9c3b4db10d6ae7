// Package grpc exposes the task store over gRPC using the hand-written
// service descriptor and JSON codec from internal/rpc.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/models"
	"github.com/dmitrijs2005/gophtasks/internal/rpc"
	"google.golang.org/grpc"
)

// Store is the business layer behind the handlers. Every task method
// authorizes its token itself.
type Store interface {
	Register(ctx context.Context, creds models.Credentials) (*models.Session, error)
	Login(ctx context.Context, creds models.Credentials) (*models.Session, error)
	ListTasks(ctx context.Context, token string) ([]models.Task, error)
	CreateTask(ctx context.Context, token, text string) (models.Task, error)
	UpdateTask(ctx context.Context, token, id string, patch models.TaskPatch) (models.Task, error)
	DeleteTask(ctx context.Context, token, id string) error
	ClearCompleted(ctx context.Context, token string, ids []string) error
	Ping(ctx context.Context) error
}

type GRPCServer struct {
	address string
	store   Store
	logger  logging.Logger
}

var _ rpc.TaskServiceServer = (*GRPCServer)(nil)

func NewGRPCServer(address string, l logging.Logger, store Store) *GRPCServer {
	return &GRPCServer{
		address: address,
		logger:  l.With("module", "grpc_server"),
		store:   store,
	}
}

// newServer builds a grpc.Server with the interceptors and the service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	rpc.RegisterTaskServiceServer(srv, s)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
