package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no user matches the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when an insert collides with the
	// unique email constraint.
	ErrDuplicateEmail = errors.New("email already registered")
)

// User is an account record. PasswordHash is nil for accounts created
// through an external provider only; GoogleID is nil until the account
// has completed a Google login.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash *string
	GoogleID     *string
	CreatedAt    time.Time
}

// NewUser carries the fields of a user to be created. Exactly one of
// PasswordHash or GoogleID must be set before the account is usable.
type NewUser struct {
	Email        string
	PasswordHash *string
	GoogleID     *string
}

// Update carries the mutable fields for an existing user. Nil fields
// are left untouched.
type Update struct {
	PasswordHash *string
	GoogleID     *string
}

// Store is the credential store. Implementations must enforce email
// uniqueness and report collisions as ErrDuplicateEmail.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	Insert(ctx context.Context, n NewUser) (*User, error)
	Update(ctx context.Context, id uuid.UUID, u Update) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
