package model

import "time"

type JobStatus string

const (
	JobStatusRunning JobStatus = "running"
	JobStatusDone    JobStatus = "done"
	JobStatusError   JobStatus = "error"
)

// Terminal reports whether s can no longer change.
func (s JobStatus) Terminal() bool {
	return s == JobStatusDone || s == JobStatusError
}

// JobRecord tracks one generation job. Status only ever moves forward:
// running -> done | error. After creation the record is mutated solely by the
// detached pipeline, and evicted by the TTL sweep keyed off UpdatedAt.
type JobRecord struct {
	JobID      string    `json:"jobId"`
	Status     JobStatus `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Progress   string    `json:"progress,omitempty"`
	Workouts   []Workout `json:"workouts,omitempty"` // present iff status=done
	Error      string    `json:"error,omitempty"`    // present iff status=error
	ErrorStack string    `json:"errorStack,omitempty"`
}

// JobUpdate carries a partial update; nil fields are left untouched.
type JobUpdate struct {
	Status     *JobStatus
	Progress   *string
	Workouts   []Workout
	Error      *string
	ErrorStack *string
}

// Clone returns a snapshot copy so readers never alias the stored record.
func (j *JobRecord) Clone() *JobRecord {
	cp := *j
	if j.Workouts != nil {
		cp.Workouts = make([]Workout, len(j.Workouts))
		copy(cp.Workouts, j.Workouts)
	}
	return &cp
}
