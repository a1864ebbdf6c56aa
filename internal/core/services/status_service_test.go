package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyncraLabs/Accountify-sub001/internal/core/domain"
	"github.com/SyncraLabs/Accountify-sub001/internal/core/schedule"
	"github.com/SyncraLabs/Accountify-sub001/internal/core/services"
)

// stubCompletionRepo serves a fixed completion log, filtered by range like the
// real repository does.
type stubCompletionRepo struct {
	completions []*domain.Completion
}

func (s *stubCompletionRepo) Create(ctx context.Context, c *domain.Completion) error {
	s.completions = append(s.completions, c)
	return nil
}

func (s *stubCompletionRepo) Update(ctx context.Context, c *domain.Completion) error {
	return nil
}

func (s *stubCompletionRepo) Delete(ctx context.Context, id string, userID string) error {
	return nil
}

func (s *stubCompletionRepo) GetByID(ctx context.Context, id string) (*domain.Completion, error) {
	return nil, domain.ErrCompletionNotFound
}

func (s *stubCompletionRepo) ListByHabitID(ctx context.Context, habitID string, from, to time.Time) ([]*domain.Completion, error) {
	var out []*domain.Completion
	for _, c := range s.completions {
		if c.HabitID != habitID {
			continue
		}
		if c.Date.Before(from) || c.Date.After(to) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *stubCompletionRepo) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.Completion, error) {
	return nil, nil
}

func seedPolicyHabit(t *testing.T, repo *MockRepo, userID, policy string) *domain.Habit {
	t.Helper()
	h, err := domain.NewHabit(userID, "Test habit", "", "", "", policy)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), h))
	return h
}

func completionOn(habitID, userID string, y int, m time.Month, d int) *domain.Completion {
	return domain.NewCompletion(habitID, userID, time.Date(y, m, d, 12, 0, 0, 0, time.UTC))
}

// Week under test: Monday 2024-04-01 through Sunday 2024-04-07.
var (
	testMonday    = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	testWednesday = time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC)
	testSaturday  = time.Date(2024, 4, 6, 0, 0, 0, 0, time.UTC)
)

func TestStatusService_DayStatus(t *testing.T) {
	t.Run("Completed day reports completed", func(t *testing.T) {
		habitRepo := NewMockRepo()
		completionRepo := &stubCompletionRepo{}
		svc := services.NewStatusService(habitRepo, completionRepo)

		habit := seedPolicyHabit(t, habitRepo, "user-1", "daily")
		completionRepo.completions = []*domain.Completion{
			completionOn(habit.ID, "user-1", 2024, 4, 1),
		}

		report, err := svc.DayStatus(context.Background(), "user-1", habit.ID, testMonday, testWednesday)

		require.NoError(t, err)
		assert.Equal(t, schedule.StatusCompleted, report.Status)
		assert.Equal(t, "2024-04-01", report.Date)
		assert.Equal(t, habit.ID, report.HabitID)
	})

	t.Run("Past uncompleted daily day reports failed", func(t *testing.T) {
		habitRepo := NewMockRepo()
		completionRepo := &stubCompletionRepo{}
		svc := services.NewStatusService(habitRepo, completionRepo)

		habit := seedPolicyHabit(t, habitRepo, "user-1", "daily")

		report, err := svc.DayStatus(context.Background(), "user-1", habit.ID, testMonday, testWednesday)

		require.NoError(t, err)
		assert.Equal(t, schedule.StatusFailed, report.Status)
	})

	t.Run("Weekend under weekdays policy is not required", func(t *testing.T) {
		habitRepo := NewMockRepo()
		completionRepo := &stubCompletionRepo{}
		svc := services.NewStatusService(habitRepo, completionRepo)

		habit := seedPolicyHabit(t, habitRepo, "user-1", "weekdays")

		report, err := svc.DayStatus(context.Background(), "user-1", habit.ID, testSaturday, testWednesday)

		require.NoError(t, err)
		assert.Equal(t, schedule.StatusNotRequired, report.Status)
	})

	t.Run("Fail: Security - another user's habit", func(t *testing.T) {
		habitRepo := NewMockRepo()
		completionRepo := &stubCompletionRepo{}
		svc := services.NewStatusService(habitRepo, completionRepo)

		habit := seedPolicyHabit(t, habitRepo, "user-1", "daily")

		_, err := svc.DayStatus(context.Background(), "user-2", habit.ID, testMonday, testWednesday)

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Fail: Stored habit with corrupted policy surfaces an error", func(t *testing.T) {
		habitRepo := NewMockRepo()
		completionRepo := &stubCompletionRepo{}
		svc := services.NewStatusService(habitRepo, completionRepo)

		habit := seedPolicyHabit(t, habitRepo, "user-1", "daily")
		habitRepo.store[habit.ID].Policy = schedule.Policy("biweekly")

		_, err := svc.DayStatus(context.Background(), "user-1", habit.ID, testMonday, testWednesday)

		assert.ErrorIs(t, err, schedule.ErrUnknownPolicy)
	})
}

func TestStatusService_WeekProgress(t *testing.T) {
	t.Run("Counts distinct completed days against the weekly target", func(t *testing.T) {
		habitRepo := NewMockRepo()
		completionRepo := &stubCompletionRepo{}
		svc := services.NewStatusService(habitRepo, completionRepo)

		habit := seedPolicyHabit(t, habitRepo, "user-1", "3_per_week")
		completionRepo.completions = []*domain.Completion{
			completionOn(habit.ID, "user-1", 2024, 4, 1),
			completionOn(habit.ID, "user-1", 2024, 4, 2),
		}

		progress, err := svc.WeekProgress(context.Background(), "user-1", habit.ID, testWednesday, testWednesday)

		require.NoError(t, err)
		assert.Equal(t, 2, progress.Completed)
		assert.Equal(t, 3, progress.Target)
		assert.Equal(t, 1, progress.Remaining)
		assert.Equal(t, 5, progress.DaysLeft)
	})

	t.Run("Completions outside the week do not count", func(t *testing.T) {
		habitRepo := NewMockRepo()
		completionRepo := &stubCompletionRepo{}
		svc := services.NewStatusService(habitRepo, completionRepo)

		habit := seedPolicyHabit(t, habitRepo, "user-1", "weekly")
		completionRepo.completions = []*domain.Completion{
			completionOn(habit.ID, "user-1", 2024, 3, 31), // previous week's Sunday
		}

		progress, err := svc.WeekProgress(context.Background(), "user-1", habit.ID, testWednesday, testWednesday)

		require.NoError(t, err)
		assert.Equal(t, 0, progress.Completed)
		assert.Equal(t, 1, progress.Remaining)
	})
}

func TestStatusService_WeekOverview(t *testing.T) {
	t.Run("Builds seven statuses per active habit", func(t *testing.T) {
		habitRepo := NewMockRepo()
		completionRepo := &stubCompletionRepo{}
		svc := services.NewStatusService(habitRepo, completionRepo)

		daily := seedPolicyHabit(t, habitRepo, "user-1", "daily")
		weekly := seedPolicyHabit(t, habitRepo, "user-1", "weekly")

		completionRepo.completions = []*domain.Completion{
			completionOn(daily.ID, "user-1", 2024, 4, 1),
			completionOn(daily.ID, "user-1", 2024, 4, 2),
			completionOn(weekly.ID, "user-1", 2024, 4, 2),
		}

		overview, err := svc.WeekOverview(context.Background(), "user-1", testWednesday, testWednesday)

		require.NoError(t, err)
		assert.Equal(t, "2024-04-01", overview.WeekStart)
		assert.Equal(t, "2024-04-07", overview.WeekEnd)
		require.Len(t, overview.Habits, 2)

		byID := make(map[string]domain.WeekReport)
		for _, r := range overview.Habits {
			byID[r.HabitID] = r
		}

		dailyReport := byID[daily.ID]
		require.Len(t, dailyReport.Days, 7)
		assert.Equal(t, schedule.StatusCompleted, dailyReport.Days[0])
		assert.Equal(t, schedule.StatusCompleted, dailyReport.Days[1])
		assert.Equal(t, schedule.StatusPending, dailyReport.Days[2])
		assert.Equal(t, schedule.StatusPending, dailyReport.Days[6])
		assert.Equal(t, 2, dailyReport.Progress.Completed)
		assert.Equal(t, "Every day", dailyReport.PolicyLabel)

		weeklyReport := byID[weekly.ID]
		require.Len(t, weeklyReport.Days, 7)
		assert.Equal(t, schedule.StatusCompleted, weeklyReport.Days[1])
		// Quota met: every other day of the week is a rest day.
		assert.Equal(t, schedule.StatusNotRequired, weeklyReport.Days[0])
		assert.Equal(t, schedule.StatusNotRequired, weeklyReport.Days[6])
		assert.Equal(t, 0, weeklyReport.Progress.Remaining)
	})

	t.Run("Archived habits are excluded", func(t *testing.T) {
		habitRepo := NewMockRepo()
		completionRepo := &stubCompletionRepo{}
		svc := services.NewStatusService(habitRepo, completionRepo)

		active := seedPolicyHabit(t, habitRepo, "user-1", "daily")
		archived := seedPolicyHabit(t, habitRepo, "user-1", "daily")
		habitRepo.store[archived.ID].Archive()

		overview, err := svc.WeekOverview(context.Background(), "user-1", testWednesday, testWednesday)

		require.NoError(t, err)
		require.Len(t, overview.Habits, 1)
		assert.Equal(t, active.ID, overview.Habits[0].HabitID)
	})

	t.Run("Empty week for a user without habits", func(t *testing.T) {
		habitRepo := NewMockRepo()
		completionRepo := &stubCompletionRepo{}
		svc := services.NewStatusService(habitRepo, completionRepo)

		overview, err := svc.WeekOverview(context.Background(), "user-999", testWednesday, testWednesday)

		require.NoError(t, err)
		assert.Empty(t, overview.Habits)
	})
}
