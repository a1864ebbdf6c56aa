package workers

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/SyncraLabs/Accountify-sub001/internal/core/domain"
	"github.com/SyncraLabs/Accountify-sub001/internal/core/schedule"
)

type HabitRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Habit, error)
	UpdateStreaks(ctx context.Context, id string, current, longest int) error
}

type CompletionRepository interface {
	ListByHabitID(ctx context.Context, habitID string, from, to time.Time) ([]*domain.Completion, error)
}

type StreakJob struct {
	HabitID string
}

// StreakWorker recomputes streak counters in the background whenever a
// completion is logged or removed. Streaks are policy-aware: a day only
// breaks a streak when the schedule engine judges it failed, so weekends
// under a weekdays policy or surplus days of a met weekly quota pass through
// untouched.
type StreakWorker struct {
	habitRepo      HabitRepository
	completionRepo CompletionRepository
	jobs           chan StreakJob
	now            func() time.Time
}

func NewStreakWorker(habitRepo HabitRepository, completionRepo CompletionRepository) *StreakWorker {
	return &StreakWorker{
		habitRepo:      habitRepo,
		completionRepo: completionRepo,
		jobs:           make(chan StreakJob, 100),
		now:            time.Now,
	}
}

func (w *StreakWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Streak Worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Streak Worker shutting down...")
				return
			}
		}
	}()
}

func (w *StreakWorker) Enqueue(habitID string) {
	select {
	case w.jobs <- StreakJob{HabitID: habitID}:
	default:
		log.Printf("Streak Worker queue full! Dropping job for habit %s", habitID)
	}
}

func (w *StreakWorker) processJob(ctx context.Context, job StreakJob) {
	habit, err := w.habitRepo.GetByID(ctx, job.HabitID)
	if err != nil {
		log.Printf("Worker Error fetching habit %s: %v", job.HabitID, err)
		return
	}

	now := w.now().UTC()

	completions, err := w.completionRepo.ListByHabitID(ctx, job.HabitID, time.Time{}, now)
	if err != nil {
		log.Printf("Worker Error fetching completions for %s: %v", job.HabitID, err)
		return
	}

	dates := make([]time.Time, 0, len(completions))
	for _, c := range completions {
		dates = append(dates, c.Date)
	}

	current, longest, err := CalculateStreaks(habit.Policy, dates, now)
	if err != nil {
		log.Printf("Worker Error computing streaks for %s: %v", job.HabitID, err)
		return
	}

	if habit.CurrentStreak != current || habit.LongestStreak != longest {
		if err := w.habitRepo.UpdateStreaks(ctx, habit.ID, current, longest); err != nil {
			log.Printf("Worker Failed to update streak for %s: %v", job.HabitID, err)
		} else {
			log.Printf("Streak updated for %s: Current=%d, Longest=%d", habit.Title, current, longest)
		}
	}
}

// CalculateStreaks replays the status engine day by day from the first logged
// completion through today. A completed day extends the running streak, a
// failed day resets it, and not-required or still-pending days pass through
// without effect.
func CalculateStreaks(policy schedule.Policy, dates []time.Time, now time.Time) (int, int, error) {
	if !policy.Valid() {
		return 0, 0, schedule.ErrUnknownPolicy
	}
	if len(dates) == 0 {
		return 0, 0, nil
	}

	sorted := make([]time.Time, len(dates))
	for i, d := range dates {
		sorted[i] = schedule.StartOfDay(d)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})

	today := schedule.StartOfDay(now)
	run := 0
	longest := 0

	for day := sorted[0]; !day.After(today); day = day.AddDate(0, 0, 1) {
		status, err := schedule.StatusForDay(policy, sorted, day, now)
		if err != nil {
			return 0, 0, err
		}

		switch status {
		case schedule.StatusCompleted:
			run++
			if run > longest {
				longest = run
			}
		case schedule.StatusFailed:
			run = 0
		}
	}

	return run, longest, nil
}
