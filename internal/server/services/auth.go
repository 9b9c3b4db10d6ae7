package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/models"
	servermodels "github.com/dmitrijs2005/gophtasks/internal/server/models"
	"golang.org/x/crypto/bcrypt"
)

// Register creates an account with an empty task list and opens a session
// for it. The email is checked before the username.
func (s *TaskStore) Register(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	if err := s.latency.Wait(ctx, LatencyAuth); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(creds.Username)
	email := strings.TrimSpace(creds.Email)
	if username == "" || email == "" || creds.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", common.ErrValidation)
	}
	if len(creds.Password) < common.MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", common.ErrValidation, common.MinPasswordLength)
	}

	repo := s.repomanager.Users()

	if err := s.ensureFree(repo.GetByEmail(ctx, email)); err != nil {
		return nil, orDuplicate(err, common.ErrDuplicateEmail)
	}
	if err := s.ensureFree(repo.GetByUserName(ctx, username)); err != nil {
		return nil, orDuplicate(err, common.ErrDuplicateUsername)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}

	user, err := repo.Create(ctx, &servermodels.User{
		ID:           s.newID(),
		UserName:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) || errors.Is(err, common.ErrDuplicateUsername) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)

	return s.newSession(user)
}

var errTaken = errors.New("taken")

// ensureFree turns a lookup result into nil when nothing was found.
func (s *TaskStore) ensureFree(_ *servermodels.User, err error) error {
	switch {
	case err == nil:
		return errTaken
	case errors.Is(err, common.ErrNotFound):
		return nil
	default:
		return err
	}
}

func orDuplicate(err, duplicate error) error {
	if errors.Is(err, errTaken) {
		return duplicate
	}
	return fmt.Errorf("error looking up user: %w", err)
}

// Login opens a session for the account registered under creds.Email.
// Unknown emails and wrong passwords are indistinguishable.
func (s *TaskStore) Login(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	if err := s.latency.Wait(ctx, LatencyAuth); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(creds.Email)
	if email == "" || creds.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	if !s.limiter.Allow(email) {
		s.logger.Warn(ctx, "login rate limited", "email", email)
		return nil, common.ErrTooManyAttempts
	}

	user, err := s.repomanager.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(creds.Password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	return s.newSession(user)
}
