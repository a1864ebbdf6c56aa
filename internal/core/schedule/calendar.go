package schedule

import "time"

// StartOfDay collapses t to its civil calendar date. All engine arithmetic
// runs on these normalized values so two timestamps on the same local day
// always compare equal, regardless of wall-clock time or zone offset.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday of the week containing t, time-of-day zeroed.
// Sunday belongs to the week that started six days earlier.
func WeekStart(t time.Time) time.Time {
	day := StartOfDay(t)
	if day.Weekday() == time.Sunday {
		return day.AddDate(0, 0, -6)
	}
	return day.AddDate(0, 0, -(int(day.Weekday()) - 1))
}

// WeekEnd returns the Sunday closing the week containing t, time-of-day zeroed.
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 6)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SameWeek reports whether a and b share the same Monday-anchored week.
func SameWeek(a, b time.Time) bool {
	return WeekStart(a).Equal(WeekStart(b))
}

// daysBetween is the number of calendar days from a to b (negative if b is
// earlier). Both are normalized first, so the division is exact.
func daysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)).Hours() / 24)
}

const dayKeyFormat = "2006-01-02"

// dayKey is the map key used to deduplicate completions per calendar day.
func dayKey(t time.Time) string {
	return t.Format(dayKeyFormat)
}
