package usecase

import (
	"context"
	"fmt"

	"crux-coach/internal/domain"
	"crux-coach/internal/domain/model"
	"crux-coach/internal/domain/ports/repository"

	"github.com/google/uuid"
)

// Compile-time check
var _ WorkoutUseCase = (*workoutUC)(nil)

type WorkoutUseCase interface {
	Save(ctx context.Context, userID string, w *model.Workout) (*model.Workout, error)
	List(ctx context.Context, userID string) ([]model.Workout, error)
	Get(ctx context.Context, userID, workoutID string) (*model.Workout, error)
	Delete(ctx context.Context, userID, workoutID string) error
}

type workoutUC struct {
	workouts repository.WorkoutRepository
}

func NewWorkoutUseCase(workouts repository.WorkoutRepository) *workoutUC {
	return &workoutUC{workouts: workouts}
}

func (uc *workoutUC) Save(ctx context.Context, userID string, w *model.Workout) (*model.Workout, error) {
	if w.Title == "" {
		return nil, fmt.Errorf("%w: workout title is required", domain.ErrInvalidArgument)
	}
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if err := uc.workouts.Save(ctx, userID, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (uc *workoutUC) List(ctx context.Context, userID string) ([]model.Workout, error) {
	return uc.workouts.List(ctx, userID)
}

func (uc *workoutUC) Get(ctx context.Context, userID, workoutID string) (*model.Workout, error) {
	return uc.workouts.Get(ctx, userID, workoutID)
}

func (uc *workoutUC) Delete(ctx context.Context, userID, workoutID string) error {
	return uc.workouts.Delete(ctx, userID, workoutID)
}
