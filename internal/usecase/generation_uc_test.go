package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"crux-coach/internal/domain"
	"crux-coach/internal/domain/model"
	"crux-coach/internal/infra/jobstore"

	"github.com/rs/zerolog"
)

// ---- fakes ----

// fakeGenerator returns one canned workout per focus, or the configured error
// when the call index matches failAt.
type fakeGenerator struct {
	calls  []model.TrainingFocus
	failAt int // -1 = never fail
	err    error
}

func newFakeGenerator() *fakeGenerator {
	return &fakeGenerator{failAt: -1}
}

func (g *fakeGenerator) GenerateOne(_ context.Context, _ *model.UserProfile, focus model.TrainingFocus, _ []string, _ string) (*model.Workout, error) {
	idx := len(g.calls)
	g.calls = append(g.calls, focus)
	if idx == g.failAt {
		return nil, g.err
	}
	return &model.Workout{
		ID:         fmt.Sprintf("wk-%d", idx),
		Title:      fmt.Sprintf("%s Session", focus.Label()),
		Focus:      []string{string(focus)},
		Difficulty: model.DifficultyIntermediate,
	}, nil
}

// syncDetacher runs submitted tasks inline so tests observe the finished job
// immediately after Start returns.
type syncDetacher struct{}

func (syncDetacher) Submit(task func(ctx context.Context) error) error {
	return task(context.Background())
}

type rejectingDetacher struct{}

func (rejectingDetacher) Submit(func(ctx context.Context) error) error {
	return errors.New("worker queue full")
}

func newTestUC(gen WorkoutGenerator, det Detacher) (*generationUC, *jobstore.MemoryStore) {
	logger := zerolog.Nop()
	store := jobstore.NewMemoryStore(&logger)
	return NewGenerationUseCase(store, gen, det, 30*time.Minute, &logger), store
}

func validRequest(focuses ...model.TrainingFocus) GenerateWorkoutsRequest {
	return GenerateWorkoutsRequest{
		Profile:       &model.UserProfile{Name: "Alex", WeeklyAvailability: model.WeeklyAvailability{DaysPerWeek: 3, MinutesPerSession: 60}},
		FocusAreas:    focuses,
		PreferredDays: []string{"Monday"},
	}
}

// ---- tests ----

func TestGeneration_AllFocusAreasSucceed(t *testing.T) {
	t.Parallel()

	gen := newFakeGenerator()
	uc, _ := newTestUC(gen, syncDetacher{})

	focuses := []model.TrainingFocus{model.FocusFingerStrength, model.FocusPower, model.FocusEndurance}
	jobID, err := uc.Start(context.Background(), validRequest(focuses...))
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if jobID == "" {
		t.Fatalf("expected a job id")
	}

	job, err := uc.Status(context.Background(), jobID)
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if job.Status != model.JobStatusDone {
		t.Fatalf("status = %q, want done (error: %q)", job.Status, job.Error)
	}
	if job.Progress != "All workouts ready!" {
		t.Fatalf("progress = %q", job.Progress)
	}
	if len(job.Workouts) != len(focuses) {
		t.Fatalf("got %d workouts, want %d", len(job.Workouts), len(focuses))
	}
	// Result order mirrors request order.
	for i, f := range focuses {
		if job.Workouts[i].Focus[0] != string(f) {
			t.Fatalf("workout %d focus = %q, want %q", i, job.Workouts[i].Focus[0], f)
		}
	}
	if len(gen.calls) != len(focuses) {
		t.Fatalf("generator called %d times, want %d", len(gen.calls), len(focuses))
	}
}

func TestGeneration_MidBatchFailureAbortsWithoutPartialResults(t *testing.T) {
	t.Parallel()

	gen := newFakeGenerator()
	gen.failAt = 1
	gen.err = &domain.TruncatedResponseError{Length: 40}
	uc, _ := newTestUC(gen, syncDetacher{})

	focuses := []model.TrainingFocus{model.FocusFingerStrength, model.FocusPower, model.FocusEndurance}
	jobID, err := uc.Start(context.Background(), validRequest(focuses...))
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	job, err := uc.Status(context.Background(), jobID)
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if job.Status != model.JobStatusError {
		t.Fatalf("status = %q, want error", job.Status)
	}
	if job.Workouts != nil {
		t.Fatalf("expected no partial results, got %d workouts", len(job.Workouts))
	}
	// The message names the focus area that failed, by human label.
	if !strings.Contains(job.Error, "Power") {
		t.Fatalf("error %q does not name the failed focus area", job.Error)
	}
	// The third call never happens.
	if len(gen.calls) != 2 {
		t.Fatalf("generator called %d times, want 2", len(gen.calls))
	}
}

func TestGeneration_ValidationRejectsBeforeCreatingJob(t *testing.T) {
	t.Parallel()

	gen := newFakeGenerator()
	uc, _ := newTestUC(gen, syncDetacher{})

	cases := []struct {
		name string
		req  GenerateWorkoutsRequest
	}{
		{"missing profile", GenerateWorkoutsRequest{FocusAreas: []model.TrainingFocus{model.FocusPower}}},
		{"empty focus areas", GenerateWorkoutsRequest{Profile: &model.UserProfile{Name: "A"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Start(context.Background(), tc.req); !errors.Is(err, domain.ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
	if len(gen.calls) != 0 {
		t.Fatalf("generator must not be called for invalid requests")
	}
}

func TestGeneration_SubmitFailureStillReturnsJobID(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUC(newFakeGenerator(), rejectingDetacher{})

	jobID, err := uc.Start(context.Background(), validRequest(model.FocusPower))
	if err != nil {
		t.Fatalf("Start must not fail after the job id is issued: %v", err)
	}

	job, err := uc.Status(context.Background(), jobID)
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if job.Status != model.JobStatusError {
		t.Fatalf("status = %q, want error", job.Status)
	}
	if job.Error == "" {
		t.Fatalf("expected an error message on the record")
	}
}

func TestGeneration_StatusUnknownJob(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUC(newFakeGenerator(), syncDetacher{})
	if _, err := uc.Status(context.Background(), "01JDOESNOTEXIST"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGeneration_JobIDsAreUnique(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUC(newFakeGenerator(), syncDetacher{})
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := uc.Start(context.Background(), validRequest(model.FocusTechnique))
		if err != nil {
			t.Fatalf("Start: %v", err)
		}
		if seen[id] {
			t.Fatalf("job id %q issued twice", id)
		}
		seen[id] = true
	}
}
