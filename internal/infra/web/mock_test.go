package web

import (
	"context"

	"crux-coach/internal/domain"
	"crux-coach/internal/domain/model"
	"crux-coach/internal/usecase"
)

// ---- hand-rolled fakes for the handler tests ----

type fakeGenUC struct {
	startFn  func(ctx context.Context, req usecase.GenerateWorkoutsRequest) (string, error)
	statusFn func(ctx context.Context, jobID string) (*model.JobRecord, error)
}

func (f *fakeGenUC) Start(ctx context.Context, req usecase.GenerateWorkoutsRequest) (string, error) {
	return f.startFn(ctx, req)
}

func (f *fakeGenUC) Status(ctx context.Context, jobID string) (*model.JobRecord, error) {
	return f.statusFn(ctx, jobID)
}

type fakeProfileUC struct {
	profiles map[string]*model.UserProfile
}

func newFakeProfileUC() *fakeProfileUC {
	return &fakeProfileUC{profiles: make(map[string]*model.UserProfile)}
}

func (f *fakeProfileUC) Save(_ context.Context, userID string, p *model.UserProfile) (*model.UserProfile, error) {
	if p.Name == "" {
		return nil, domain.ErrInvalidArgument
	}
	cp := *p
	cp.ID = userID
	f.profiles[userID] = &cp
	return &cp, nil
}

func (f *fakeProfileUC) Get(_ context.Context, userID string) (*model.UserProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfileUC) Delete(_ context.Context, userID string) error {
	if _, ok := f.profiles[userID]; !ok {
		return domain.ErrNotFound
	}
	delete(f.profiles, userID)
	return nil
}

type fakeWorkoutUC struct {
	byUser map[string][]model.Workout
}

func newFakeWorkoutUC() *fakeWorkoutUC {
	return &fakeWorkoutUC{byUser: make(map[string][]model.Workout)}
}

func (f *fakeWorkoutUC) Save(_ context.Context, userID string, w *model.Workout) (*model.Workout, error) {
	if w.Title == "" {
		return nil, domain.ErrInvalidArgument
	}
	f.byUser[userID] = append(f.byUser[userID], *w)
	return w, nil
}

func (f *fakeWorkoutUC) List(_ context.Context, userID string) ([]model.Workout, error) {
	return f.byUser[userID], nil
}

func (f *fakeWorkoutUC) Get(_ context.Context, userID, workoutID string) (*model.Workout, error) {
	for _, w := range f.byUser[userID] {
		if w.ID == workoutID {
			return &w, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeWorkoutUC) Delete(_ context.Context, userID, workoutID string) error {
	list := f.byUser[userID]
	for i, w := range list {
		if w.ID == workoutID {
			f.byUser[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeScheduleUC struct {
	byUser map[string][]model.ScheduledWorkout
}

func newFakeScheduleUC() *fakeScheduleUC {
	return &fakeScheduleUC{byUser: make(map[string][]model.ScheduledWorkout)}
}

func (f *fakeScheduleUC) Schedule(_ context.Context, userID string, s *model.ScheduledWorkout) (*model.ScheduledWorkout, error) {
	if s.ScheduledDate == "" {
		return nil, domain.ErrInvalidArgument
	}
	f.byUser[userID] = append(f.byUser[userID], *s)
	return s, nil
}

func (f *fakeScheduleUC) List(_ context.Context, userID string) ([]model.ScheduledWorkout, error) {
	return f.byUser[userID], nil
}

func (f *fakeScheduleUC) Reschedule(_ context.Context, userID, scheduleID, newDate string) (*model.ScheduledWorkout, error) {
	list := f.byUser[userID]
	for i := range list {
		if list[i].ID == scheduleID {
			list[i].ScheduledDate = newDate
			return &list[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeScheduleUC) SetCompleted(_ context.Context, userID, scheduleID string, completed bool) (*model.ScheduledWorkout, error) {
	list := f.byUser[userID]
	for i := range list {
		if list[i].ID == scheduleID {
			list[i].Completed = completed
			return &list[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeScheduleUC) Delete(_ context.Context, userID, scheduleID string) error {
	list := f.byUser[userID]
	for i, s := range list {
		if s.ID == scheduleID {
			f.byUser[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
