// Package common defines shared constants and sentinel errors used across
// client and server layers of GophTasks. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("an account with this email already exists")
	ErrDuplicateUsername  = errors.New("this username is already taken")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	// Session errors.
	ErrSessionInvalid = errors.New("invalid session")
	ErrNoSession      = errors.New("not logged in")

	// Task errors.
	ErrTaskNotFound = errors.New("task not found")

	// Validation / transport errors.
	ErrValidation  = errors.New("validation error")
	ErrUnavailable = errors.New("server unavailable")
	ErrInternal    = errors.New("internal error")
)

// IsAuthError reports whether err is one of the user-facing authentication
// failures that leave the session untouched.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrDuplicateEmail) ||
		errors.Is(err, ErrDuplicateUsername) ||
		errors.Is(err, ErrTooManyAttempts)
}
