// Package models holds the server-side storage records.
package models

import (
	"time"

	shared "github.com/dmitrijs2005/gophtasks/internal/models"
)

// User is a stored account. PasswordHash is a bcrypt hash and never leaves
// the server.
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Public strips the credentials.
func (u *User) Public() shared.User {
	return shared.User{ID: u.ID, Username: u.UserName, Email: u.Email}
}
