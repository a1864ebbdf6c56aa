package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SyncraLabs/Accountify-sub001/internal/core/schedule"
)

var (
	ErrInvalidCompletion = errors.New("invalid completion data")
)

// Completion records that a habit was marked done on one calendar date.
// At most one active completion exists per (habit, date); the date carries
// no time-of-day semantics and is normalized on construction.
type Completion struct {
	ID      string `json:"id" db:"id"`
	HabitID string `json:"habit_id" db:"habit_id"`
	UserID  string `json:"user_id" db:"user_id"`

	Date  time.Time `json:"date" db:"completion_date"`
	Notes string    `json:"notes" db:"notes"`

	Version   int        `json:"version" db:"version"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func NewCompletion(habitID, userID string, date time.Time) *Completion {
	now := time.Now().UTC()

	return &Completion{
		HabitID: habitID,
		UserID:  userID,
		Date:    schedule.StartOfDay(date),

		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Completion) Validate() error {
	if strings.TrimSpace(c.HabitID) == "" {
		return fmt.Errorf("%w: habit_id is required", ErrInvalidCompletion)
	}
	if strings.TrimSpace(c.UserID) == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidCompletion)
	}
	if c.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidCompletion)
	}
	return nil
}
