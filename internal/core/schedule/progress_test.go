package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/SyncraLabs/Accountify-sub001/internal/core/schedule"
)

func TestWeekProgress(t *testing.T) {
	// Week under test: Mon 2024-04-01 .. Sun 2024-04-07.
	monday := date(2024, time.April, 1)
	wednesday := date(2024, time.April, 3)
	sunday := date(2024, time.April, 7)

	t.Run("Counts only completions inside the week window", func(t *testing.T) {
		completions := []time.Time{
			date(2024, time.March, 31), // previous Sunday, out
			monday,                     // in (inclusive lower bound)
			wednesday,                  // in
			sunday,                     // in (inclusive upper bound)
			date(2024, time.April, 8),  // next Monday, out
		}

		progress, err := schedule.WeekProgress(schedule.PolicyDaily, completions, wednesday, wednesday)

		assert.NoError(t, err)
		assert.Equal(t, 3, progress.Completed)
		assert.Equal(t, 7, progress.Target)
		assert.Equal(t, 4, progress.Remaining)
	})

	t.Run("Deduplicates completions on the same day", func(t *testing.T) {
		completions := []time.Time{
			time.Date(2024, time.April, 3, 8, 0, 0, 0, time.UTC),
			time.Date(2024, time.April, 3, 20, 0, 0, 0, time.UTC),
		}

		progress, err := schedule.WeekProgress(schedule.PolicyThreePerWeek, completions, wednesday, wednesday)

		assert.NoError(t, err)
		assert.Equal(t, 1, progress.Completed)
	})

	t.Run("Remaining clamps at zero when target is exceeded", func(t *testing.T) {
		completions := []time.Time{monday, date(2024, time.April, 2), wednesday}

		progress, err := schedule.WeekProgress(schedule.PolicyWeekly, completions, wednesday, wednesday)

		assert.NoError(t, err)
		assert.Equal(t, 3, progress.Completed)
		assert.Equal(t, 1, progress.Target)
		assert.Equal(t, 0, progress.Remaining)
	})

	t.Run("DaysLeft counts today through Sunday inclusive", func(t *testing.T) {
		tests := []struct {
			name string
			now  time.Time
			want int
		}{
			{"From Monday", monday, 7},
			{"From Wednesday", wednesday, 5},
			{"From Sunday", sunday, 1},
			{"Week already closed", date(2024, time.April, 8), 0},
			{"Week long gone", date(2024, time.May, 1), 0},
			{"Future week seen from the previous one", date(2024, time.March, 27), 12},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				progress, err := schedule.WeekProgress(schedule.PolicyDaily, nil, wednesday, tt.now)
				assert.NoError(t, err)
				assert.Equal(t, tt.want, progress.DaysLeft)
				assert.GreaterOrEqual(t, progress.DaysLeft, 0)
			})
		}
	})

	t.Run("Empty log", func(t *testing.T) {
		progress, err := schedule.WeekProgress(schedule.PolicyFivePerWeek, nil, monday, monday)

		assert.NoError(t, err)
		assert.Equal(t, 0, progress.Completed)
		assert.Equal(t, 5, progress.Target)
		assert.Equal(t, 5, progress.Remaining)
	})

	t.Run("Error: unknown policy", func(t *testing.T) {
		_, err := schedule.WeekProgress(schedule.Policy("monthly"), nil, monday, monday)
		assert.ErrorIs(t, err, schedule.ErrUnknownPolicy)
	})

	t.Run("Deterministic across repeated calls", func(t *testing.T) {
		completions := []time.Time{monday, wednesday}

		first, err1 := schedule.WeekProgress(schedule.PolicyFourPerWeek, completions, wednesday, sunday)
		second, err2 := schedule.WeekProgress(schedule.PolicyFourPerWeek, completions, wednesday, sunday)

		assert.NoError(t, err1)
		assert.NoError(t, err2)
		assert.Equal(t, first, second)
	})
}
