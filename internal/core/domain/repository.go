package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrHabitConflict = errors.New("habit version conflict")
	ErrUnauthorized  = errors.New("unauthorized")
)

type HabitRepository interface {
	// Create persists a new habit definition in the storage.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a habit by its unique identifier.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// ListByUserID retrieves all habits associated with a specific user.
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// Update modifies the state of an existing habit.
	// Implementations must enforce optimistic locking on Version.
	Update(ctx context.Context, habit *Habit) error

	// Delete performs a soft delete on the habit.
	Delete(ctx context.Context, id string) error

	// GetChanges returns only the deltas occurring after a specific date,
	// for offline-first client synchronization.
	GetChanges(ctx context.Context, userID string, since time.Time) ([]*Habit, error)

	// UpdateStreaks persists recomputed streak counters without bumping
	// the user-facing version.
	UpdateStreaks(ctx context.Context, id string, current, longest int) error
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
