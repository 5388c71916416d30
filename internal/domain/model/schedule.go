package model

import "time"

// ScheduledWorkout places a generated workout on the calendar.
type ScheduledWorkout struct {
	ID            string    `json:"id"`
	Workout       Workout   `json:"workout"`
	ScheduledDate string    `json:"scheduledDate"` // ISO date, e.g. "2026-09-01"
	Completed     bool      `json:"completed"`
	CompletedAt   time.Time `json:"completedAt,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}
