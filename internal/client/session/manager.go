// Package session owns the authenticated identity of the terminal session:
// who is logged in, with which token, and its persisted copy.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/models"
)

type Mode int

const (
	Login Mode = iota
	Register
)

func (m Mode) String() string {
	if m == Register {
		return "register"
	}
	return "login"
}

// Authenticator is the part of the remote store that opens sessions.
type Authenticator interface {
	Register(ctx context.Context, creds models.Credentials) (*models.Session, error)
	Login(ctx context.Context, creds models.Credentials) (*models.Session, error)
}

type Manager struct {
	mu      sync.RWMutex
	auth    Authenticator
	store   Store
	logger  logging.Logger
	current *models.Session
}

func NewManager(auth Authenticator, store Store, logger logging.Logger) *Manager {
	return &Manager{auth: auth, store: store, logger: logger.With("module", "session")}
}

// Validate applies the form rules that do not need the remote store.
func Validate(mode Mode, creds models.Credentials) error {
	if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		return fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}
	if mode == Register {
		if strings.TrimSpace(creds.Username) == "" {
			return fmt.Errorf("%w: username is required", common.ErrValidation)
		}
		if len(creds.Password) < common.MinPasswordLength {
			return fmt.Errorf("%w: password must be at least %d characters", common.ErrValidation, common.MinPasswordLength)
		}
	}
	return nil
}

// Authenticate logs in or registers. On success the session is persisted
// before it becomes current; on any failure the current session is untouched.
func (m *Manager) Authenticate(ctx context.Context, mode Mode, creds models.Credentials) (*models.Session, error) {
	if err := Validate(mode, creds); err != nil {
		return nil, err
	}

	var (
		sess *models.Session
		err  error
	)
	if mode == Register {
		sess, err = m.auth.Register(ctx, creds)
	} else {
		sess, err = m.auth.Login(ctx, creds)
	}
	if err != nil {
		return nil, err
	}

	if err := m.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	m.mu.Lock()
	m.current = sess
	m.mu.Unlock()

	m.logger.Info(ctx, "authenticated", "mode", mode.String(), "user_id", sess.User.ID)
	return copySession(sess), nil
}

// Restore makes the persisted session current without checking the token.
// It returns nil, nil when nothing usable is stored; an unreadable record is
// erased.
func (m *Manager) Restore(ctx context.Context) (*models.Session, error) {
	sess, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn(ctx, "discarding unreadable stored session", "error", err)
		if eraseErr := m.store.Erase(ctx); eraseErr != nil {
			return nil, eraseErr
		}
		return nil, nil
	}
	if sess == nil || sess.Token == "" || sess.User.ID == "" {
		return nil, nil
	}

	m.mu.Lock()
	m.current = sess
	m.mu.Unlock()

	return copySession(sess), nil
}

// Clear forgets the session and erases its persisted copy.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	if err := m.store.Erase(ctx); err != nil {
		return fmt.Errorf("erase session: %w", err)
	}
	return nil
}

// Current returns a copy of the active session, or nil.
func (m *Manager) Current() *models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copySession(m.current)
}

func copySession(s *models.Session) *models.Session {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}
