// Package user holds the domain user model shared by the auth engine and
// its storage backends.
package user

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Store lookups when no user matches.
var ErrNotFound = errors.New("user not found")

// User is the persisted account record. PasswordHash is empty for
// externally provisioned accounts that have never set a password; such
// accounts cannot log in with credentials.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
	IsActive     bool
}

// Login returns a copy of the user with LastLoginAt and UpdatedAt stamped.
// The caller persists the copy; the receiver is not mutated.
func (u User) Login(now time.Time) User {
	u.LastLoginAt = &now
	u.UpdatedAt = now
	return u
}

// Store is the user persistence capability consumed by the auth engine.
type Store interface {
	// FindByEmail returns ErrNotFound when no account has this email.
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindByID returns ErrNotFound when the id is unknown.
	FindByID(ctx context.Context, id int64) (*User, error)
	// Create inserts a new account and returns it with ID assigned.
	Create(ctx context.Context, u *User) (*User, error)
	// Save updates an existing account and returns the stored state.
	Save(ctx context.Context, u *User) (*User, error)
}
