// Package metadata is a small key/value table in the client's local database.
// The session manager keeps the session token and user record in it.
package metadata

import (
	"context"
)

// Repository reads and writes values by well-known key. Get reports
// common.ErrNotFound for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
