package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"crux-coach/internal/domain"
	"crux-coach/internal/domain/model"
	"crux-coach/internal/domain/ports/repository"
)

// Compile-time check
var _ repository.JobStore = (*JobStore)(nil)

// JobStore keeps job records in Redis as JSON values with a native TTL.
// Intended for deployments where the process is not the only owner of job
// state; the in-memory store remains the single-process default.
type JobStore struct {
	client RedisClient
	ttl    time.Duration
}

func NewJobStore(client RedisClient, ttl time.Duration) *JobStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &JobStore{client: client, ttl: ttl}
}

func (s *JobStore) key(jobID string) string {
	return fmt.Sprintf("generation_job:%s", jobID)
}

func (s *JobStore) Create(ctx context.Context, jobID string) (*model.JobRecord, error) {
	now := time.Now()
	job := &model.JobRecord{
		JobID:     jobID,
		Status:    model.JobStatusRunning,
		CreatedAt: now,
		UpdatedAt: now,
		Progress:  "Initializing workout generation...",
	}
	data, err := json.Marshal(job)
	if err != nil {
		return nil, err
	}
	ok, err := s.client.SetNX(ctx, s.key(jobID), data, s.ttl)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAlreadyExists
	}
	return job, nil
}

// Update is a read-modify-write. The detached pipeline is the sole writer
// after creation, so the non-atomic merge is safe.
func (s *JobStore) Update(ctx context.Context, jobID string, upd model.JobUpdate) (*model.JobRecord, error) {
	job, err := s.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if upd.Status != nil && !job.Status.Terminal() {
		job.Status = *upd.Status
	}
	if upd.Progress != nil {
		job.Progress = *upd.Progress
	}
	if upd.Workouts != nil {
		job.Workouts = upd.Workouts
	}
	if upd.Error != nil {
		job.Error = *upd.Error
	}
	if upd.ErrorStack != nil {
		job.ErrorStack = *upd.ErrorStack
	}
	job.UpdatedAt = time.Now()

	data, err := json.Marshal(job)
	if err != nil {
		return nil, err
	}
	// Refresh the TTL on every update so liveness is keyed off UpdatedAt.
	if err := s.client.Set(ctx, s.key(jobID), data, s.ttl); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobStore) Get(ctx context.Context, jobID string) (*model.JobRecord, error) {
	data, err := s.client.Get(ctx, s.key(jobID))
	if err != nil {
		if IsNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var job model.JobRecord
	if err := json.Unmarshal([]byte(data), &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// SweepExpired is a no-op: Redis expires records natively.
func (s *JobStore) SweepExpired(context.Context, time.Duration) int { return 0 }
