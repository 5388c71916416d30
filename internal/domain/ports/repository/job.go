package repository

import (
	"context"
	"time"

	"crux-coach/internal/domain/model"
)

// JobStore is the process-wide mapping from job id to job record. Exactly one
// record exists per id; ids are never reused. Implementations must be safe for
// concurrent use and must hand out snapshot copies, never the stored record.
type JobStore interface {
	// Create inserts a fresh running record. Fails with domain.ErrAlreadyExists
	// if the id is taken.
	Create(ctx context.Context, jobID string) (*model.JobRecord, error)

	// Update merges the partial fields into the record and refreshes UpdatedAt.
	// Returns domain.ErrNotFound when the job is unknown (e.g. already evicted).
	Update(ctx context.Context, jobID string, upd model.JobUpdate) (*model.JobRecord, error)

	// Get returns a snapshot of the record or domain.ErrNotFound.
	Get(ctx context.Context, jobID string) (*model.JobRecord, error)

	// SweepExpired evicts every record whose UpdatedAt is older than ttl and
	// reports how many were removed.
	SweepExpired(ctx context.Context, ttl time.Duration) int
}
