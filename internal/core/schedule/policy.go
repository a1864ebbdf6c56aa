package schedule

import (
	"errors"
	"time"
)

var (
	ErrUnknownPolicy = errors.New("unknown recurrence policy")
)

// Policy is the closed set of recurrence rules a habit can be governed by.
// Values outside this set must be rejected with ErrUnknownPolicy, never
// silently treated as daily.
type Policy string

const (
	PolicyDaily        Policy = "daily"
	PolicyWeekdays     Policy = "weekdays"
	PolicyWeekends     Policy = "weekends"
	PolicyThreePerWeek Policy = "3_per_week"
	PolicyFourPerWeek  Policy = "4_per_week"
	PolicyFivePerWeek  Policy = "5_per_week"
	PolicyWeekly       Policy = "weekly"
)

// ParsePolicy validates a raw policy identifier coming from storage or a client.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(s)
	if !p.Valid() {
		return "", ErrUnknownPolicy
	}
	return p, nil
}

func (p Policy) Valid() bool {
	switch p {
	case PolicyDaily, PolicyWeekdays, PolicyWeekends,
		PolicyThreePerWeek, PolicyFourPerWeek, PolicyFivePerWeek, PolicyWeekly:
		return true
	}
	return false
}

// WeeklyTarget is the number of completions required inside one week window.
func (p Policy) WeeklyTarget() int {
	switch p {
	case PolicyDaily:
		return 7
	case PolicyWeekdays:
		return 5
	case PolicyWeekends:
		return 2
	case PolicyThreePerWeek:
		return 3
	case PolicyFourPerWeek:
		return 4
	case PolicyFivePerWeek:
		return 5
	case PolicyWeekly:
		return 1
	}
	return 0
}

// Flexible reports whether the policy's obligation is a weekly aggregate count
// rather than tied to specific weekdays.
func (p Policy) Flexible() bool {
	switch p {
	case PolicyThreePerWeek, PolicyFourPerWeek, PolicyFivePerWeek, PolicyWeekly:
		return true
	}
	return false
}

// fixedDays reports whether eligibility is decided purely by the weekday.
// Daily is excluded on purpose: every day is eligible, so the weekday
// exclusion rule never applies to it.
func (p Policy) fixedDays() bool {
	return p == PolicyWeekdays || p == PolicyWeekends
}

// EligibleDay reports whether t can count towards the policy at all.
// Flexible policies accept any day of the week.
func (p Policy) EligibleDay(t time.Time) bool {
	switch p {
	case PolicyWeekdays:
		wd := t.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	case PolicyWeekends:
		wd := t.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	}
	return true
}

// Label returns the short human-readable name shown in the UI.
func (p Policy) Label() string {
	switch p {
	case PolicyDaily:
		return "Every day"
	case PolicyWeekdays:
		return "Weekdays"
	case PolicyWeekends:
		return "Weekends"
	case PolicyThreePerWeek:
		return "3 times a week"
	case PolicyFourPerWeek:
		return "4 times a week"
	case PolicyFivePerWeek:
		return "5 times a week"
	case PolicyWeekly:
		return "Once a week"
	}
	return "Unknown"
}
