package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCompletionNotFound = errors.New("completion not found")
	ErrCompletionConflict = errors.New("completion version conflict")
	ErrCompletionExists   = errors.New("habit already completed on this date")
)

type CompletionRepository interface {
	// Create persists a new completion. Implementations must reject a second
	// active completion for the same habit and calendar date with
	// ErrCompletionExists.
	Create(ctx context.Context, completion *Completion) error

	// Update modifies an existing completion (notes only; the date is fixed).
	// Implementations must handle optimistic locking on Version.
	Update(ctx context.Context, completion *Completion) error

	// Delete performs a soft delete, un-marking the day. It requires userID
	// to ensure the caller owns the completion.
	Delete(ctx context.Context, id string, userID string) error

	// GetByID retrieves a single active (non-deleted) completion.
	GetByID(ctx context.Context, id string) (*Completion, error)

	// ListByHabitID retrieves completions for a habit within a date range,
	// both bounds inclusive. This is what the status engine is fed with.
	ListByHabitID(ctx context.Context, habitID string, from, to time.Time) ([]*Completion, error)

	// GetChanges returns all changes (creations, edits, soft deletes) after
	// the 'since' timestamp, for offline-first synchronization.
	GetChanges(ctx context.Context, userID string, since time.Time) ([]*Completion, error)
}
