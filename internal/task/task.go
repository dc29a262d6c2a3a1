package task

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no task matches the id for the given user.
var ErrNotFound = errors.New("task not found")

// Task belongs to exactly one user; every store operation is scoped to
// that user's id so one user can never touch another's tasks.
type Task struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
}

// NewTask carries the fields of a task to be created.
type NewTask struct {
	UserID      uuid.UUID
	Title       string
	Description string
}

// Update carries the mutable fields of a task.
type Update struct {
	Title       string
	Description string
	Completed   bool
}

type Store interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Task, error)
	FindByID(ctx context.Context, id, userID uuid.UUID) (*Task, error)
	Insert(ctx context.Context, n NewTask) (*Task, error)
	Update(ctx context.Context, id, userID uuid.UUID, u Update) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
