// Package memstore provides in-memory repositories so the service can run
// single-process without a database, matching the reference deployment.
package memstore

import (
	"context"
	"sync"
	"time"

	"crux-coach/internal/domain"
	"crux-coach/internal/domain/model"
	"crux-coach/internal/domain/ports/repository"
)

// Compile-time checks
var (
	_ repository.ProfileRepository  = (*ProfileRepo)(nil)
	_ repository.WorkoutRepository  = (*WorkoutRepo)(nil)
	_ repository.ScheduleRepository = (*ScheduleRepo)(nil)
)

type ProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]model.UserProfile
}

func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{profiles: make(map[string]model.UserProfile)}
}

func (r *ProfileRepo) Save(_ context.Context, userID string, p *model.UserProfile) (*model.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	cp.ID = userID
	now := time.Now()
	if existing, ok := r.profiles[userID]; ok {
		cp.CreatedAt = existing.CreatedAt
	} else {
		cp.CreatedAt = now
	}
	cp.UpdatedAt = now
	r.profiles[userID] = cp
	out := cp
	return &out, nil
}

func (r *ProfileRepo) Get(_ context.Context, userID string) (*model.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := p
	return &out, nil
}

func (r *ProfileRepo) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[userID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.profiles, userID)
	return nil
}

type WorkoutRepo struct {
	mu       sync.Mutex
	workouts map[string][]model.Workout // keyed by user id, newest first
}

func NewWorkoutRepo() *WorkoutRepo {
	return &WorkoutRepo{workouts: make(map[string][]model.Workout)}
}

func (r *WorkoutRepo) Save(_ context.Context, userID string, w *model.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.workouts[userID] {
		if existing.ID == w.ID {
			return domain.ErrAlreadyExists
		}
	}
	r.workouts[userID] = append([]model.Workout{*w}, r.workouts[userID]...)
	return nil
}

func (r *WorkoutRepo) List(_ context.Context, userID string) ([]model.Workout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Workout, len(r.workouts[userID]))
	copy(out, r.workouts[userID])
	return out, nil
}

func (r *WorkoutRepo) Get(_ context.Context, userID, workoutID string) (*model.Workout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.workouts[userID] {
		if w.ID == workoutID {
			out := w
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *WorkoutRepo) Delete(_ context.Context, userID, workoutID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.workouts[userID]
	for i, w := range list {
		if w.ID == workoutID {
			r.workouts[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type ScheduleRepo struct {
	mu        sync.Mutex
	schedules map[string][]model.ScheduledWorkout
}

func NewScheduleRepo() *ScheduleRepo {
	return &ScheduleRepo{schedules: make(map[string][]model.ScheduledWorkout)}
}

func (r *ScheduleRepo) Save(_ context.Context, userID string, s *model.ScheduledWorkout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.schedules[userID] {
		if existing.ID == s.ID {
			return domain.ErrAlreadyExists
		}
	}
	r.schedules[userID] = append(r.schedules[userID], *s)
	return nil
}

func (r *ScheduleRepo) List(_ context.Context, userID string) ([]model.ScheduledWorkout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.ScheduledWorkout, len(r.schedules[userID]))
	copy(out, r.schedules[userID])
	return out, nil
}

func (r *ScheduleRepo) Get(_ context.Context, userID, scheduleID string) (*model.ScheduledWorkout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.schedules[userID] {
		if s.ID == scheduleID {
			out := s
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *ScheduleRepo) Update(_ context.Context, userID string, s *model.ScheduledWorkout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.schedules[userID]
	for i, existing := range list {
		if existing.ID == s.ID {
			list[i] = *s
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *ScheduleRepo) Delete(_ context.Context, userID, scheduleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.schedules[userID]
	for i, s := range list {
		if s.ID == scheduleID {
			r.schedules[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
