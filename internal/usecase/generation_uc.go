package usecase

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"crux-coach/internal/domain"
	"crux-coach/internal/domain/model"
	"crux-coach/internal/domain/ports/repository"
	"crux-coach/internal/infra/metrics"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// Compile-time check
var _ GenerationUseCase = (*generationUC)(nil)

// GenerateWorkoutsRequest is the input to Start.
type GenerateWorkoutsRequest struct {
	Profile       *model.UserProfile    `json:"profile"`
	FocusAreas    []model.TrainingFocus `json:"focusAreas"`
	PreferredDays []string              `json:"preferredDays"`
	Notes         string                `json:"notes,omitempty"`
}

type GenerationUseCase interface {
	// Start validates the request, creates a job record and detaches the
	// generation pipeline. It returns the job id immediately; everything that
	// happens after the id is issued is recorded in the job store, never
	// returned to the caller.
	Start(ctx context.Context, req GenerateWorkoutsRequest) (string, error)

	// Status returns a snapshot of the job or domain.ErrNotFound.
	Status(ctx context.Context, jobID string) (*model.JobRecord, error)
}

// Detacher runs a task independently of the caller's request lifecycle.
// The worker pool satisfies this.
type Detacher interface {
	Submit(task func(ctx context.Context) error) error
}

type generationUC struct {
	jobs     repository.JobStore
	gen      WorkoutGenerator
	detacher Detacher
	ttl      time.Duration
	log      *zerolog.Logger
}

func NewGenerationUseCase(jobs repository.JobStore, gen WorkoutGenerator, detacher Detacher, ttl time.Duration, logger *zerolog.Logger) *generationUC {
	ucLog := logger.With().Str("component", "GenerationUC").Logger()
	return &generationUC{jobs: jobs, gen: gen, detacher: detacher, ttl: ttl, log: &ucLog}
}

func (uc *generationUC) Start(ctx context.Context, req GenerateWorkoutsRequest) (string, error) {
	// Opportunistic cleanup on every inbound request to the job subsystem.
	metrics.AddJobsSwept(uc.jobs.SweepExpired(ctx, uc.ttl))

	if req.Profile == nil {
		return "", fmt.Errorf("%w: missing profile", domain.ErrInvalidRequest)
	}
	if len(req.FocusAreas) == 0 {
		return "", fmt.Errorf("%w: focusAreas must not be empty", domain.ErrInvalidRequest)
	}

	jobID := ulid.Make().String()
	if _, err := uc.jobs.Create(ctx, jobID); err != nil {
		return "", err
	}
	uc.log.Info().Str("job_id", jobID).Int("focus_areas", len(req.FocusAreas)).Msg("generation job started")

	// Fire-and-forget: the pipeline runs on the pool's context, not the
	// request's. From here on failures become store updates.
	if err := uc.detacher.Submit(func(taskCtx context.Context) error {
		uc.runPipeline(taskCtx, jobID, req)
		return nil
	}); err != nil {
		uc.log.Error().Err(err).Str("job_id", jobID).Msg("could not detach pipeline")
		uc.failJob(jobID, fmt.Sprintf("Failed to start generation: %v", err), "")
	}

	return jobID, nil
}

func (uc *generationUC) Status(ctx context.Context, jobID string) (*model.JobRecord, error) {
	metrics.AddJobsSwept(uc.jobs.SweepExpired(ctx, uc.ttl))
	return uc.jobs.Get(ctx, jobID)
}

// runPipeline iterates the requested focus areas strictly in order, one model
// call in flight at a time. The first failure of any kind aborts the batch:
// partial results are never surfaced. The pipeline boundary converts every
// failure, panics included, into a store update.
func (uc *generationUC) runPipeline(ctx context.Context, jobID string, req GenerateWorkoutsRequest) {
	metrics.JobStarted()
	defer metrics.JobFinished()

	defer func() {
		if r := recover(); r != nil {
			uc.log.Error().Str("job_id", jobID).Interface("panic", r).Msg("pipeline panicked")
			uc.failJob(jobID, fmt.Sprintf("Internal error: %v", r), string(debug.Stack()))
		}
	}()

	n := len(req.FocusAreas)
	workouts := make([]model.Workout, 0, n)

	for i, focus := range req.FocusAreas {
		progress := fmt.Sprintf("Creating workout %d/%d: %s...", i+1, n, focus.Label())
		if _, err := uc.jobs.Update(ctx, jobID, model.JobUpdate{Progress: &progress}); err != nil {
			// Job already evicted; nobody is listening.
			uc.log.Warn().Err(err).Str("job_id", jobID).Msg("progress update on unknown job, aborting")
			return
		}

		w, err := uc.gen.GenerateOne(ctx, req.Profile, focus, req.PreferredDays, req.Notes)
		if err != nil {
			msg := fmt.Sprintf("Failed to generate workout for %s: %v", focus.Label(), err)
			uc.log.Error().Err(err).Str("job_id", jobID).Str("focus", string(focus)).Msg("generation failed, batch aborted")
			uc.failJob(jobID, msg, "")
			return
		}
		workouts = append(workouts, *w)
	}

	done := model.JobStatusDone
	progress := "All workouts ready!"
	if _, err := uc.jobs.Update(ctx, jobID, model.JobUpdate{
		Status:   &done,
		Progress: &progress,
		Workouts: workouts,
	}); err != nil {
		uc.log.Warn().Err(err).Str("job_id", jobID).Msg("final update on unknown job")
		return
	}
	metrics.IncGenerationJob("done")
	uc.log.Info().Str("job_id", jobID).Int("workouts", len(workouts)).Msg("generation job finished")
}

func (uc *generationUC) failJob(jobID, msg, stack string) {
	errStatus := model.JobStatusError
	progress := "Error occurred"
	upd := model.JobUpdate{Status: &errStatus, Progress: &progress, Error: &msg}
	if stack != "" {
		upd.ErrorStack = &stack
	}
	// Background context: the job record must reflect the failure even when
	// the originating context is gone.
	if _, err := uc.jobs.Update(context.Background(), jobID, upd); err != nil {
		uc.log.Error().Err(err).Str("job_id", jobID).Msg("could not record job failure")
		return
	}
	metrics.IncGenerationJob("error")
}
