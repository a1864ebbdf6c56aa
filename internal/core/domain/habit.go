package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SyncraLabs/Accountify-sub001/internal/core/schedule"
)

var (
	ErrHabitTitleEmpty    = errors.New("habit title cannot be empty")
	ErrHabitTitleTooLong  = errors.New("habit title is too long (max 100 chars)")
	ErrHabitDescTooLong   = errors.New("habit description is too long (max 500 chars)")
	ErrHabitInvalidUserID = errors.New("invalid user id")
	ErrInvalidColor       = errors.New("invalid color format (must be #RRGGBB)")
	ErrHabitArchived      = errors.New("cannot update an archived habit")
)

var colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

const (
	DefaultIcon = "default_icon"
	MaxTitleLen = 100
	MaxDescLen  = 500
)

type Habit struct {
	ID          string `json:"id" db:"id"`
	UserID      string `json:"user_id" db:"user_id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description,omitempty" db:"description"`
	Color       string `json:"color" db:"color"`
	Icon        string `json:"icon" db:"icon"`
	SortOrder   int    `json:"sort_order" db:"sort_order"`

	// Policy governs which days count and how many completions a week
	// requires. Always one of the closed schedule.Policy variants; rows
	// holding anything else are surfaced as errors, never defaulted.
	Policy schedule.Policy `json:"policy" db:"policy"`

	CurrentStreak int `json:"current_streak" db:"current_streak"`
	LongestStreak int `json:"longest_streak" db:"longest_streak"`

	Version    int        `json:"version" db:"version"`
	StartDate  time.Time  `json:"start_date" db:"start_date"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
	ArchivedAt *time.Time `json:"archived_at,omitempty" db:"archived_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func validateHabit(title, desc, color, rawPolicy string) (schedule.Policy, error) {
	trimmedTitle := strings.TrimSpace(title)
	if trimmedTitle == "" {
		return "", ErrHabitTitleEmpty
	}
	if len(trimmedTitle) > MaxTitleLen {
		return "", ErrHabitTitleTooLong
	}

	if len(strings.TrimSpace(desc)) > MaxDescLen {
		return "", ErrHabitDescTooLong
	}

	if color != "" && !colorRegex.MatchString(color) {
		return "", ErrInvalidColor
	}

	policy, err := schedule.ParsePolicy(rawPolicy)
	if err != nil {
		return "", err
	}

	return policy, nil
}

func NewHabit(userID, title, description, color, icon, rawPolicy string) (*Habit, error) {
	if userID == "" {
		return nil, ErrHabitInvalidUserID
	}

	cleanDesc := strings.TrimSpace(description)

	policy, err := validateHabit(title, cleanDesc, color, rawPolicy)
	if err != nil {
		return nil, err
	}

	if icon == "" {
		icon = DefaultIcon
	}

	now := time.Now().UTC()

	return &Habit{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: cleanDesc,
		Color:       color,
		Icon:        icon,
		Policy:      policy,
		SortOrder:   0,
		Version:     1,
		StartDate:   now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (h *Habit) Update(title, description, color, icon, rawPolicy string) error {
	if h.ArchivedAt != nil {
		return ErrHabitArchived
	}

	cleanDesc := strings.TrimSpace(description)

	policy, err := validateHabit(title, cleanDesc, color, rawPolicy)
	if err != nil {
		return err
	}

	if icon == "" {
		icon = DefaultIcon
	}

	h.Title = strings.TrimSpace(title)
	h.Description = cleanDesc
	h.Color = color
	h.Icon = icon
	h.Policy = policy

	h.UpdatedAt = time.Now().UTC()

	return nil
}

func (h *Habit) ChangePosition(newOrder int) error {
	if h.ArchivedAt != nil {
		return ErrHabitArchived
	}

	h.SortOrder = newOrder
	h.UpdatedAt = time.Now().UTC()
	return nil
}

func (h *Habit) UpdateStreak(current, longest int) {
	h.CurrentStreak = current
	h.LongestStreak = longest
	h.UpdatedAt = time.Now().UTC()
}

func (h *Habit) Archive() {
	if h.ArchivedAt != nil {
		return
	}

	now := time.Now().UTC()
	h.ArchivedAt = &now
	h.UpdatedAt = now
}

func (h *Habit) Restore() {
	if h.ArchivedAt == nil {
		return
	}
	h.ArchivedAt = nil
	h.UpdatedAt = time.Now().UTC()
}
