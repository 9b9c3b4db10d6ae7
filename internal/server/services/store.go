// Package services implements the server-side task store: account rules,
// session tokens and the per-user task operations, each delayed by an
// artificial latency.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/models"
	"github.com/dmitrijs2005/gophtasks/internal/server/auth"
	"github.com/dmitrijs2005/gophtasks/internal/server/config"
	servermodels "github.com/dmitrijs2005/gophtasks/internal/server/models"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TaskStore is the remote store. Its method set matches the client-side
// RemoteStore contract, so it can also be used in process.
type TaskStore struct {
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenIssuer
	latency     Latency
	limiter     *LoginLimiter
	logger      logging.Logger
	hashCost    int
	newID       func() string
}

func NewTaskStore(m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *TaskStore {
	return &TaskStore{
		repomanager: m,
		tokens:      auth.NewTokenIssuer([]byte(cfg.SecretKey), cfg.TokenValidityDuration),
		latency:     Latency{Scale: cfg.LatencyScale},
		limiter:     NewLoginLimiter(cfg.LoginAttemptsPerMinute),
		logger:      logger.With("module", "taskstore"),
		hashCost:    bcrypt.DefaultCost,
		newID:       uuid.NewString,
	}
}

// Authorize resolves token to the id of an existing user.
func (s *TaskStore) Authorize(ctx context.Context, token string) (string, error) {
	userID, err := s.tokens.UserID(token)
	if err != nil {
		return "", err
	}

	if _, err := s.repomanager.Users().GetByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrSessionInvalid
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	return userID, nil
}

func (s *TaskStore) newSession(user *servermodels.User) (*models.Session, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}
	return &models.Session{Token: token, User: user.Public()}, nil
}

// Ping reports that the store is reachable.
func (s *TaskStore) Ping(ctx context.Context) error {
	return ctx.Err()
}
