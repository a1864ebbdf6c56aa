package services

import (
	"context"
	"time"

	"github.com/SyncraLabs/Accountify-sub001/internal/core/domain"
	"github.com/SyncraLabs/Accountify-sub001/internal/core/schedule"
)

// StatusService is the read-side facade over the schedule engine: it loads a
// habit and the relevant week's completion log and hands both to the pure
// status functions. The current date is always an explicit parameter so every
// computation can be replayed against any simulated "today".
type StatusService struct {
	habitRepo      domain.HabitRepository
	completionRepo domain.CompletionRepository
}

func NewStatusService(habitRepo domain.HabitRepository, completionRepo domain.CompletionRepository) *StatusService {
	return &StatusService{
		habitRepo:      habitRepo,
		completionRepo: completionRepo,
	}
}

const reportDateFormat = "2006-01-02"

func (s *StatusService) ownedHabit(ctx context.Context, userID, habitID string) (*domain.Habit, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return habit, nil
}

// weekDates loads the completion dates falling inside the week containing ref.
func (s *StatusService) weekDates(ctx context.Context, habitID string, ref time.Time) ([]time.Time, error) {
	completions, err := s.completionRepo.ListByHabitID(ctx, habitID, schedule.WeekStart(ref), schedule.WeekEnd(ref))
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(completions))
	for _, c := range completions {
		dates = append(dates, c.Date)
	}
	return dates, nil
}

// DayStatus answers one (habit, date) query.
func (s *StatusService) DayStatus(ctx context.Context, userID, habitID string, date, now time.Time) (*domain.DayReport, error) {
	habit, err := s.ownedHabit(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	dates, err := s.weekDates(ctx, habit.ID, date)
	if err != nil {
		return nil, err
	}

	status, err := schedule.StatusForDay(habit.Policy, dates, date, now)
	if err != nil {
		return nil, err
	}

	return &domain.DayReport{
		HabitID: habit.ID,
		Date:    schedule.StartOfDay(date).Format(reportDateFormat),
		Status:  status,
	}, nil
}

// WeekProgress answers one (habit, week) query for progress-bar displays.
func (s *StatusService) WeekProgress(ctx context.Context, userID, habitID string, ref, now time.Time) (schedule.Progress, error) {
	habit, err := s.ownedHabit(ctx, userID, habitID)
	if err != nil {
		return schedule.Progress{}, err
	}

	dates, err := s.weekDates(ctx, habit.ID, ref)
	if err != nil {
		return schedule.Progress{}, err
	}

	return schedule.WeekProgress(habit.Policy, dates, ref, now)
}

// WeekOverview builds the weekly dashboard for every active habit of a user:
// progress plus a status for each of the seven days in the window.
func (s *StatusService) WeekOverview(ctx context.Context, userID string, ref, now time.Time) (*domain.WeekOverview, error) {
	habits, err := s.habitRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	weekStart := schedule.WeekStart(ref)
	weekEnd := schedule.WeekEnd(ref)

	overview := &domain.WeekOverview{
		WeekStart: weekStart.Format(reportDateFormat),
		WeekEnd:   weekEnd.Format(reportDateFormat),
		Habits:    make([]domain.WeekReport, 0, len(habits)),
	}

	for _, h := range habits {
		if h.ArchivedAt != nil {
			continue
		}

		dates, err := s.weekDates(ctx, h.ID, ref)
		if err != nil {
			return nil, err
		}

		progress, err := schedule.WeekProgress(h.Policy, dates, ref, now)
		if err != nil {
			return nil, err
		}

		report := domain.WeekReport{
			HabitID:     h.ID,
			HabitTitle:  h.Title,
			Color:       h.Color,
			Icon:        h.Icon,
			Policy:      h.Policy,
			PolicyLabel: h.Policy.Label(),
			Progress:    progress,
			Days:        make([]schedule.DayStatus, 0, 7),
		}

		for day := weekStart; !day.After(weekEnd); day = day.AddDate(0, 0, 1) {
			status, err := schedule.StatusForDay(h.Policy, dates, day, now)
			if err != nil {
				return nil, err
			}
			report.Days = append(report.Days, status)
		}

		overview.Habits = append(overview.Habits, report)
	}

	return overview, nil
}
