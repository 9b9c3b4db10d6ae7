package client

import (
	"context"

	"github.com/dmitrijs2005/gophtasks/internal/models"
)

// Client is the remote store contract. Calls block until the store answers
// and return either a payload or an error, never both.
type Client interface {
	Register(ctx context.Context, creds models.Credentials) (*models.Session, error)
	Login(ctx context.Context, creds models.Credentials) (*models.Session, error)
	ListTasks(ctx context.Context, token string) ([]models.Task, error)
	CreateTask(ctx context.Context, token, text string) (models.Task, error)
	UpdateTask(ctx context.Context, token, id string, patch models.TaskPatch) (models.Task, error)
	DeleteTask(ctx context.Context, token, id string) error
	ClearCompleted(ctx context.Context, token string, ids []string) error
	Ping(ctx context.Context) error
}
