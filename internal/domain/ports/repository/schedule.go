package repository

import (
	"context"

	"crux-coach/internal/domain/model"
)

// ScheduleRepository stores calendar placements of workouts per user.
type ScheduleRepository interface {
	Save(ctx context.Context, userID string, s *model.ScheduledWorkout) error
	List(ctx context.Context, userID string) ([]model.ScheduledWorkout, error)
	Get(ctx context.Context, userID, scheduleID string) (*model.ScheduledWorkout, error)
	Update(ctx context.Context, userID string, s *model.ScheduledWorkout) error
	Delete(ctx context.Context, userID, scheduleID string) error
}
