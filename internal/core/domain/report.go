package domain

import "github.com/SyncraLabs/Accountify-sub001/internal/core/schedule"

// DayReport is the computed classification of one (habit, date) query.
type DayReport struct {
	HabitID string             `json:"habit_id"`
	Date    string             `json:"date"`
	Status  schedule.DayStatus `json:"status"`
}

// WeekReport pairs a habit with its weekly progress and the status of each
// of the seven days in the window. Derived on demand, never stored.
type WeekReport struct {
	HabitID     string               `json:"habit_id"`
	HabitTitle  string               `json:"habit_title"`
	Color       string               `json:"color"`
	Icon        string               `json:"icon"`
	Policy      schedule.Policy      `json:"policy"`
	PolicyLabel string               `json:"policy_label"`
	Progress    schedule.Progress    `json:"progress"`
	Days        []schedule.DayStatus `json:"days"`
}

// WeekOverview is the weekly dashboard for one user: one report per habit,
// all computed against the same Monday-anchored week window.
type WeekOverview struct {
	WeekStart string       `json:"week_start"`
	WeekEnd   string       `json:"week_end"`
	Habits    []WeekReport `json:"habits"`
}
