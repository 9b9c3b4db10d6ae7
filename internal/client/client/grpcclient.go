package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/models"
	"github.com/dmitrijs2005/gophtasks/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpc.TaskServiceClient
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

// NewGRPCClient prepares a connection to endpointURL. No I/O happens until
// the first call.
func NewGRPCClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}

	conn, err := grpc.NewClient(c.endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = rpc.NewTaskServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Register(ctx context.Context, creds models.Credentials) (*models.Session, error) {

	req := &rpc.RegisterRequest{Username: creds.Username, Email: creds.Email, Password: creds.Password}

	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &models.Session{Token: resp.Token, User: resp.User}, nil
}

func (s *GRPCClient) Login(ctx context.Context, creds models.Credentials) (*models.Session, error) {

	req := &rpc.LoginRequest{Email: creds.Email, Password: creds.Password}

	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &models.Session{Token: resp.Token, User: resp.User}, nil
}

func (s *GRPCClient) ListTasks(ctx context.Context, token string) ([]models.Task, error) {

	resp, err := s.client.ListTasks(withAccessToken(ctx, token), &rpc.ListTasksRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}

	return models.CloneTasks(resp.Tasks), nil
}

func (s *GRPCClient) CreateTask(ctx context.Context, token, text string) (models.Task, error) {

	resp, err := s.client.CreateTask(withAccessToken(ctx, token), &rpc.CreateTaskRequest{Text: text})
	if err != nil {
		return models.Task{}, s.mapError(err)
	}

	return resp.Task, nil
}

func (s *GRPCClient) UpdateTask(ctx context.Context, token, id string, patch models.TaskPatch) (models.Task, error) {

	resp, err := s.client.UpdateTask(withAccessToken(ctx, token), &rpc.UpdateTaskRequest{ID: id, Patch: patch})
	if err != nil {
		return models.Task{}, s.mapError(err)
	}

	return resp.Task, nil
}

func (s *GRPCClient) DeleteTask(ctx context.Context, token, id string) error {

	if _, err := s.client.DeleteTask(withAccessToken(ctx, token), &rpc.DeleteTaskRequest{ID: id}); err != nil {
		return s.mapError(err)
	}

	return nil
}

func (s *GRPCClient) ClearCompleted(ctx context.Context, token string, ids []string) error {

	if _, err := s.client.ClearCompleted(withAccessToken(ctx, token), &rpc.ClearCompletedRequest{IDs: ids}); err != nil {
		return s.mapError(err)
	}

	return nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &rpc.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return common.ErrUnavailable
	}

	return nil
}

// mapError turns a gRPC status back into the sentinel the server started from.
func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}

	msg := st.Message()
	switch st.Code() {
	case codes.Unauthenticated:
		if msg == common.ErrInvalidCredentials.Error() {
			return common.ErrInvalidCredentials
		}
		return common.ErrSessionInvalid
	case codes.AlreadyExists:
		if msg == common.ErrDuplicateUsername.Error() {
			return common.ErrDuplicateUsername
		}
		return common.ErrDuplicateEmail
	case codes.NotFound:
		return common.ErrTaskNotFound
	case codes.InvalidArgument:
		return fmt.Errorf("%w%s", common.ErrValidation, strings.TrimPrefix(msg, common.ErrValidation.Error()))
	case codes.ResourceExhausted:
		return common.ErrTooManyAttempts
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return fmt.Errorf("%w: %s", common.ErrUnavailable, msg)
	default:
		return fmt.Errorf("%w: rpc error: %s", common.ErrInternal, msg)
	}
}
