package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyncraLabs/Accountify-sub001/internal/core/domain"
)

func newTestHabit(t *testing.T, userID string) *domain.Habit {
	t.Helper()
	h, err := domain.NewHabit(userID, "Test", "", "", "", "daily")
	require.NoError(t, err)
	return h
}

func TestInMemoryHabitRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Soft delete hides the habit from reads", func(t *testing.T) {
		repo := NewInMemoryHabitRepository()
		h := newTestHabit(t, "user-1")
		require.NoError(t, repo.Create(ctx, h))

		require.NoError(t, repo.Delete(ctx, h.ID))

		_, err := repo.GetByID(ctx, h.ID)
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)

		list, err := repo.ListByUserID(ctx, "user-1")
		assert.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("Update bumps the version", func(t *testing.T) {
		repo := NewInMemoryHabitRepository()
		h := newTestHabit(t, "user-1")
		require.NoError(t, repo.Create(ctx, h))

		require.NoError(t, repo.Update(ctx, h))
		assert.Equal(t, 2, h.Version)
	})

	t.Run("Update with a stale version is rejected", func(t *testing.T) {
		repo := NewInMemoryHabitRepository()
		h := newTestHabit(t, "user-1")
		require.NoError(t, repo.Create(ctx, h))
		require.NoError(t, repo.Update(ctx, h)) // stored copy is now at version 2

		stale := *h
		stale.Version = 1
		stale.Title = "From an out-of-date client"

		assert.ErrorIs(t, repo.Update(ctx, &stale), domain.ErrHabitConflict)

		stored, err := repo.GetByID(ctx, h.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, stored.Version)
		assert.NotEqual(t, "From an out-of-date client", stored.Title)
	})

	t.Run("UpdateStreaks keeps the version untouched", func(t *testing.T) {
		repo := NewInMemoryHabitRepository()
		h := newTestHabit(t, "user-1")
		require.NoError(t, repo.Create(ctx, h))

		require.NoError(t, repo.UpdateStreaks(ctx, h.ID, 4, 9))

		stored, err := repo.GetByID(ctx, h.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, stored.CurrentStreak)
		assert.Equal(t, 9, stored.LongestStreak)
		assert.Equal(t, 1, stored.Version)
	})
}

func TestInMemoryCompletionRepository(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

	t.Run("Rejects a second active completion for the same day", func(t *testing.T) {
		repo := NewInMemoryCompletionRepository()

		first := domain.NewCompletion("habit-1", "user-1", day)
		require.NoError(t, repo.Create(ctx, first))

		// Same calendar day at a different clock time is still a duplicate.
		dup := domain.NewCompletion("habit-1", "user-1", day.Add(9*time.Hour))
		assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrCompletionExists)
	})

	t.Run("Allows re-marking a day after the first mark is deleted", func(t *testing.T) {
		repo := NewInMemoryCompletionRepository()

		first := domain.NewCompletion("habit-1", "user-1", day)
		require.NoError(t, repo.Create(ctx, first))
		require.NoError(t, repo.Delete(ctx, first.ID, "user-1"))

		again := domain.NewCompletion("habit-1", "user-1", day)
		assert.NoError(t, repo.Create(ctx, again))
	})

	t.Run("Delete requires the owning user", func(t *testing.T) {
		repo := NewInMemoryCompletionRepository()

		c := domain.NewCompletion("habit-1", "user-1", day)
		require.NoError(t, repo.Create(ctx, c))

		assert.ErrorIs(t, repo.Delete(ctx, c.ID, "user-2"), domain.ErrCompletionNotFound)
	})

	t.Run("ListByHabitID bounds are inclusive", func(t *testing.T) {
		repo := NewInMemoryCompletionRepository()

		for d := 1; d <= 7; d++ {
			c := domain.NewCompletion("habit-1", "user-1", time.Date(2024, 4, d, 0, 0, 0, 0, time.UTC))
			require.NoError(t, repo.Create(ctx, c))
		}

		from := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)

		list, err := repo.ListByHabitID(ctx, "habit-1", from, to)
		require.NoError(t, err)
		require.Len(t, list, 4)
		assert.True(t, list[0].Date.Equal(from))
		assert.True(t, list[3].Date.Equal(to))
	})
}

func TestInMemoryUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejects duplicate emails", func(t *testing.T) {
		repo := NewInMemoryUserRepository()

		u1, err := domain.NewUser("user-1", "same@example.com", "First")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, u1))

		u2, err := domain.NewUser("user-2", "same@example.com", "Second")
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, u2), domain.ErrEmailAlreadyExists)
	})

	t.Run("Finds users by email and ID", func(t *testing.T) {
		repo := NewInMemoryUserRepository()

		u, err := domain.NewUser("user-1", "find@example.com", "Findable")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, u))

		byEmail, err := repo.GetByEmail(ctx, "find@example.com")
		require.NoError(t, err)
		assert.Equal(t, "user-1", byEmail.ID)

		byID, err := repo.GetByID(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "find@example.com", byID.Email)

		_, err = repo.GetByID(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
