package repository

import (
	"context"

	"crux-coach/internal/domain/model"
)

// WorkoutRepository stores generated workouts keyed by owning user.
type WorkoutRepository interface {
	Save(ctx context.Context, userID string, w *model.Workout) error
	List(ctx context.Context, userID string) ([]model.Workout, error)
	Get(ctx context.Context, userID, workoutID string) (*model.Workout, error)
	Delete(ctx context.Context, userID, workoutID string) error
}
