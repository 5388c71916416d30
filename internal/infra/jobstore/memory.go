package jobstore

import (
	"context"
	"sync"
	"time"

	"crux-coach/internal/domain"
	"crux-coach/internal/domain/model"
	"crux-coach/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ repository.JobStore = (*MemoryStore)(nil)

// MemoryStore is the single-process job store of the reference design.
// Handlers and the detached pipeline run on real goroutines, so the map is
// guarded with a mutex; reads hand out snapshot copies.
type MemoryStore struct {
	mu   sync.Mutex
	jobs map[string]*model.JobRecord
	log  *zerolog.Logger
}

func NewMemoryStore(logger *zerolog.Logger) *MemoryStore {
	storeLog := logger.With().Str("component", "JobStore").Logger()
	return &MemoryStore{jobs: make(map[string]*model.JobRecord), log: &storeLog}
}

func (s *MemoryStore) Create(_ context.Context, jobID string) (*model.JobRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[jobID]; ok {
		return nil, domain.ErrAlreadyExists
	}
	now := time.Now()
	job := &model.JobRecord{
		JobID:     jobID,
		Status:    model.JobStatusRunning,
		CreatedAt: now,
		UpdatedAt: now,
		Progress:  "Initializing workout generation...",
	}
	s.jobs[jobID] = job
	return job.Clone(), nil
}

func (s *MemoryStore) Update(_ context.Context, jobID string, upd model.JobUpdate) (*model.JobRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	merge(job, upd)
	job.UpdatedAt = time.Now()
	return job.Clone(), nil
}

func (s *MemoryStore) Get(_ context.Context, jobID string) (*model.JobRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return job.Clone(), nil
}

func (s *MemoryStore) SweepExpired(_ context.Context, ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	removed := 0
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > ttl {
			delete(s.jobs, id)
			removed++
			s.log.Debug().Str("job_id", id).Msg("evicted expired job")
		}
	}
	if removed > 0 {
		s.log.Info().Int("count", removed).Msg("swept expired jobs")
	}
	return removed
}

// merge applies the non-nil fields of upd. Status moves strictly forward:
// once a record is terminal its status never changes again.
func merge(job *model.JobRecord, upd model.JobUpdate) {
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
}
