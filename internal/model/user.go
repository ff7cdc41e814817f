package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for user accounts.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	// GetByIdentifier resolves a login identifier: case-insensitive match on
	// email (stored lowercased), exact match on username.
	GetByIdentifier(ctx context.Context, identifier string) (User, error)
	// GetByUsernameFold matches the username case-insensitively. Registration
	// uses it for the duplicate check, so "Alice" cannot coexist with "alice".
	GetByUsernameFold(ctx context.Context, username string) (User, error)
	GetByEmailAndRecoveryCode(ctx context.Context, email, code string) (User, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, user User) (User, error)
	// SetRecoveryCode stores a recovery code and its expiry on the account in
	// a single statement. A newer code overwrites the previous one.
	SetRecoveryCode(ctx context.Context, email, code string, expiresAt time.Time) error
	// ResetPassword replaces the password hash and clears the recovery code
	// and expiry atomically.
	ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdatePhoto(ctx context.Context, username, photo string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// User represents a stored account with authentication material.
// Email is always stored lowercased; Username preserves registration casing
// and serves as the access-token subject.
type User struct {
	ID                uuid.UUID
	Username          string
	RealName          string
	Email             string
	PasswordHash      string
	BirthDate         *time.Time
	Gender            string
	Height            *int
	Weight            *float64
	Province          string
	Photo             string
	Visible           bool
	RecoveryCode      *string
	RecoveryExpiresAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RecoveryPending reports whether the account has an active recovery code.
// Code and expiry are set and cleared together; both present means a reset
// request is in flight.
func (u User) RecoveryPending() bool {
	return u.RecoveryCode != nil && u.RecoveryExpiresAt != nil
}
