package schedule

import "time"

// DayStatus classifies a single calendar day for a single habit.
type DayStatus string

const (
	StatusCompleted   DayStatus = "completed"
	StatusPending     DayStatus = "pending"
	StatusNotRequired DayStatus = "not_required"
	StatusFailed      DayStatus = "failed"
)

// StatusForDay decides the status of targetDate for a habit governed by p,
// given the habit's completion log and the authoritative current date.
// Rules are evaluated in strict order; the first match wins.
//
// Fixed-day policies judge each day on its own: a missed required weekday is
// failed the moment it is in the past. Flexible policies judge the whole week:
// a short running count stays pending until either the week closes below
// target or the gap becomes mathematically impossible to close.
func StatusForDay(p Policy, completions []time.Time, targetDate, now time.Time) (DayStatus, error) {
	if !p.Valid() {
		return "", ErrUnknownPolicy
	}

	day := StartOfDay(targetDate)
	today := StartOfDay(now)

	if completedOn(completions, day) {
		return StatusCompleted, nil
	}

	if p.fixedDays() && !p.EligibleDay(day) {
		return StatusNotRequired, nil
	}

	if p.Flexible() {
		return flexibleStatus(p, completions, day, today)
	}

	if day.Before(today) {
		if p == PolicyDaily {
			return StatusFailed, nil
		}
		if p.fixedDays() && p.EligibleDay(day) {
			return StatusFailed, nil
		}
	}

	return StatusPending, nil
}

func flexibleStatus(p Policy, completions []time.Time, day, today time.Time) (DayStatus, error) {
	progress, err := WeekProgress(p, completions, day, today)
	if err != nil {
		return "", err
	}
	weekEnd := WeekEnd(day)

	// Week fully closed short of target.
	if today.After(weekEnd) && progress.Completed < progress.Target {
		return StatusFailed, nil
	}

	// Quota already met; surplus days carry no obligation.
	if progress.Completed >= progress.Target {
		return StatusNotRequired, nil
	}

	// Not enough days remain to close the gap, and the day under evaluation
	// is not in the future.
	if progress.DaysLeft < progress.Remaining && !day.After(today) {
		return StatusFailed, nil
	}

	// Secondary closed-week check for a strictly past day, recounted against
	// the day's own window. Kept as its own code path: the reference date it
	// anchors on differs from the first check at week boundaries.
	if day.Before(today) {
		weekStart := WeekStart(day)
		completed := countCompletedDays(completions, weekStart, weekStart.AddDate(0, 0, 6))
		if today.After(weekStart.AddDate(0, 0, 6)) && completed < p.WeeklyTarget() {
			return StatusFailed, nil
		}
	}

	return StatusPending, nil
}

func completedOn(completions []time.Time, day time.Time) bool {
	for _, c := range completions {
		if SameDay(c, day) {
			return true
		}
	}
	return false
}
