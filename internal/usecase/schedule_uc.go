package usecase

import (
	"context"
	"fmt"
	"time"

	"crux-coach/internal/domain"
	"crux-coach/internal/domain/model"
	"crux-coach/internal/domain/ports/repository"

	"github.com/google/uuid"
)

// Compile-time check
var _ ScheduleUseCase = (*scheduleUC)(nil)

type ScheduleUseCase interface {
	Schedule(ctx context.Context, userID string, s *model.ScheduledWorkout) (*model.ScheduledWorkout, error)
	List(ctx context.Context, userID string) ([]model.ScheduledWorkout, error)
	Reschedule(ctx context.Context, userID, scheduleID, newDate string) (*model.ScheduledWorkout, error)
	SetCompleted(ctx context.Context, userID, scheduleID string, completed bool) (*model.ScheduledWorkout, error)
	Delete(ctx context.Context, userID, scheduleID string) error
}

type scheduleUC struct {
	schedules repository.ScheduleRepository
}

func NewScheduleUseCase(schedules repository.ScheduleRepository) *scheduleUC {
	return &scheduleUC{schedules: schedules}
}

func (uc *scheduleUC) Schedule(ctx context.Context, userID string, s *model.ScheduledWorkout) (*model.ScheduledWorkout, error) {
	if err := validateISODate(s.ScheduledDate); err != nil {
		return nil, err
	}
	if s.Workout.ID == "" {
		return nil, fmt.Errorf("%w: workout is required", domain.ErrInvalidArgument)
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if err := uc.schedules.Save(ctx, userID, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *scheduleUC) List(ctx context.Context, userID string) ([]model.ScheduledWorkout, error) {
	return uc.schedules.List(ctx, userID)
}

func (uc *scheduleUC) Reschedule(ctx context.Context, userID, scheduleID, newDate string) (*model.ScheduledWorkout, error) {
	if err := validateISODate(newDate); err != nil {
		return nil, err
	}
	s, err := uc.schedules.Get(ctx, userID, scheduleID)
	if err != nil {
		return nil, err
	}
	s.ScheduledDate = newDate
	if err := uc.schedules.Update(ctx, userID, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *scheduleUC) SetCompleted(ctx context.Context, userID, scheduleID string, completed bool) (*model.ScheduledWorkout, error) {
	s, err := uc.schedules.Get(ctx, userID, scheduleID)
	if err != nil {
		return nil, err
	}
	s.Completed = completed
	if completed {
		s.CompletedAt = time.Now()
	} else {
		s.CompletedAt = time.Time{}
	}
	if err := uc.schedules.Update(ctx, userID, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *scheduleUC) Delete(ctx context.Context, userID, scheduleID string) error {
	return uc.schedules.Delete(ctx, userID, scheduleID)
}

func validateISODate(d string) error {
	if _, err := time.Parse("2006-01-02", d); err != nil {
		return fmt.Errorf("%w: scheduledDate must be YYYY-MM-DD", domain.ErrInvalidArgument)
	}
	return nil
}
