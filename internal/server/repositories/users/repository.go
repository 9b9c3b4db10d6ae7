// Package users stores accounts. Two implementations exist: an in-memory one
// used by default and in tests, and a PostgreSQL one.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophtasks/internal/server/models"
)

// Repository persists users. Create fails with common.ErrDuplicateEmail or
// common.ErrDuplicateUsername; lookups fail with common.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
