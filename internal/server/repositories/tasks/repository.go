// Package tasks stores per-user task lists, newest first.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/gophtasks/internal/models"
)

// Repository persists tasks scoped to their owner. Update and Delete fail with
// common.ErrTaskNotFound when the id does not belong to the user.
type Repository interface {
	List(ctx context.Context, userID string) ([]models.Task, error)
	Create(ctx context.Context, userID string, task models.Task) (models.Task, error)
	Update(ctx context.Context, userID, id string, patch models.TaskPatch) (models.Task, error)
	Delete(ctx context.Context, userID, id string) error
	// DeleteMany removes whichever of ids exist and reports how many did.
	DeleteMany(ctx context.Context, userID string, ids []string) (int64, error)
}
