package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SyncraLabs/Accountify-sub001/internal/core/domain"
	"github.com/SyncraLabs/Accountify-sub001/internal/core/schedule"
)

// In-memory implementations of the repository ports, used by unit tests and
// local development without Postgres.

type InMemoryHabitRepository struct {
	store map[string]*domain.Habit

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]*domain.Habit),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[habit.ID] = habit
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok || habit.DeletedAt != nil {
		return nil, domain.ErrHabitNotFound
	}
	return habit, nil
}

func (r *InMemoryHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var habits []*domain.Habit
	for _, h := range r.store {
		if h.UserID == userID && h.DeletedAt == nil {
			habits = append(habits, h)
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].SortOrder < habits[j].SortOrder
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[habit.ID]
	if !ok || existing.DeletedAt != nil {
		return domain.ErrHabitNotFound
	}
	// Mirrors the SQL implementation: a write based on a stale version loses.
	if habit.Version != existing.Version {
		return domain.ErrHabitConflict
	}

	habit.Version++
	r.store[habit.ID] = habit
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	habit, ok := r.store[id]
	if !ok || habit.DeletedAt != nil {
		return domain.ErrHabitNotFound
	}

	now := time.Now().UTC()
	habit.DeletedAt = &now
	habit.UpdatedAt = now
	return nil
}

func (r *InMemoryHabitRepository) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var habits []*domain.Habit
	for _, h := range r.store {
		if h.UserID == userID && h.UpdatedAt.After(since) {
			habits = append(habits, h)
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].UpdatedAt.Before(habits[j].UpdatedAt)
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	habit, ok := r.store[id]
	if !ok || habit.DeletedAt != nil {
		return domain.ErrHabitNotFound
	}

	habit.UpdateStreak(current, longest)
	return nil
}

type InMemoryCompletionRepository struct {
	store map[string]*domain.Completion

	mu sync.RWMutex
}

func NewInMemoryCompletionRepository() *InMemoryCompletionRepository {
	return &InMemoryCompletionRepository{
		store: make(map[string]*domain.Completion),
	}
}

func (r *InMemoryCompletionRepository) Create(ctx context.Context, completion *domain.Completion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.store {
		if c.HabitID == completion.HabitID && c.DeletedAt == nil && schedule.SameDay(c.Date, completion.Date) {
			return domain.ErrCompletionExists
		}
	}

	if completion.ID == "" {
		completion.ID = uuid.NewString()
	}

	r.store[completion.ID] = completion
	return nil
}

func (r *InMemoryCompletionRepository) Update(ctx context.Context, completion *domain.Completion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[completion.ID]
	if !ok || existing.DeletedAt != nil {
		return domain.ErrCompletionNotFound
	}

	r.store[completion.ID] = completion
	return nil
}

func (r *InMemoryCompletionRepository) Delete(ctx context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	completion, ok := r.store[id]
	if !ok || completion.DeletedAt != nil || completion.UserID != userID {
		return domain.ErrCompletionNotFound
	}

	now := time.Now().UTC()
	completion.DeletedAt = &now
	completion.UpdatedAt = now
	completion.Version++
	return nil
}

func (r *InMemoryCompletionRepository) GetByID(ctx context.Context, id string) (*domain.Completion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	completion, ok := r.store[id]
	if !ok || completion.DeletedAt != nil {
		return nil, domain.ErrCompletionNotFound
	}
	return completion, nil
}

func (r *InMemoryCompletionRepository) ListByHabitID(ctx context.Context, habitID string, from, to time.Time) ([]*domain.Completion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var completions []*domain.Completion
	for _, c := range r.store {
		if c.HabitID != habitID || c.DeletedAt != nil {
			continue
		}
		if c.Date.Before(from) || c.Date.After(to) {
			continue
		}
		completions = append(completions, c)
	}

	sort.Slice(completions, func(i, j int) bool {
		return completions[i].Date.Before(completions[j].Date)
	})

	return completions, nil
}

func (r *InMemoryCompletionRepository) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.Completion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var completions []*domain.Completion
	for _, c := range r.store {
		if c.UserID == userID && c.UpdatedAt.After(since) {
			completions = append(completions, c)
		}
	}

	sort.Slice(completions, func(i, j int) bool {
		return completions[i].UpdatedAt.Before(completions[j].UpdatedAt)
	})

	return completions, nil
}

type InMemoryUserRepository struct {
	store map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}

	r.store[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
