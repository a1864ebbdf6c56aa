package schedule

import "time"

// Progress is the derived weekly completion state for one habit and one week.
// It is recomputed on every call and never persisted.
type Progress struct {
	Completed int `json:"completed"`
	Target    int `json:"target"`
	Remaining int `json:"remaining"`
	DaysLeft  int `json:"days_left"`
}

// WeekProgress counts completions inside the week containing ref and derives
// the remaining obligation. DaysLeft is measured against now, not ref: asking
// about a past week yields 0, asking about a future week can exceed 7.
func WeekProgress(p Policy, completions []time.Time, ref, now time.Time) (Progress, error) {
	if !p.Valid() {
		return Progress{}, ErrUnknownPolicy
	}

	weekStart := WeekStart(ref)
	weekEnd := WeekEnd(ref)

	completed := countCompletedDays(completions, weekStart, weekEnd)
	target := p.WeeklyTarget()

	remaining := target - completed
	if remaining < 0 {
		remaining = 0
	}

	daysLeft := daysBetween(now, weekEnd) + 1
	if daysLeft < 0 {
		daysLeft = 0
	}

	return Progress{
		Completed: completed,
		Target:    target,
		Remaining: remaining,
		DaysLeft:  daysLeft,
	}, nil
}

// countCompletedDays counts distinct calendar days in [from, to] that carry a
// completion. Inputs are deduplicated per day; the log should already hold at
// most one entry per day, but counting keys keeps a dirty log from inflating
// the total.
func countCompletedDays(completions []time.Time, from, to time.Time) int {
	seen := make(map[string]bool)
	for _, c := range completions {
		day := StartOfDay(c)
		if day.Before(from) || day.After(to) {
			continue
		}
		seen[dayKey(day)] = true
	}
	return len(seen)
}
