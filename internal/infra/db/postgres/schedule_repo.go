package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"crux-coach/internal/domain"
	"crux-coach/internal/domain/model"
	"crux-coach/internal/domain/ports/repository"
)

// Compile-time check
var _ repository.ScheduleRepository = (*ScheduleRepo)(nil)

type ScheduleRepo struct {
	pool *pgxpool.Pool
}

func NewScheduleRepo(pool *pgxpool.Pool) *ScheduleRepo {
	return &ScheduleRepo{pool: pool}
}

func (r *ScheduleRepo) Save(ctx context.Context, userID string, s *model.ScheduledWorkout) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	const sql = `
INSERT INTO scheduled_workouts (id, user_id, scheduled_date, completed, payload)
VALUES ($1, $2, $3, $4, $5::jsonb);`

	if _, err := r.pool.Exec(ctx, sql, s.ID, userID, s.ScheduledDate, s.Completed, payload); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("postgres: saving scheduled workout: %w", err)
	}
	return nil
}

func (r *ScheduleRepo) List(ctx context.Context, userID string) ([]model.ScheduledWorkout, error) {
	const sql = `
SELECT payload
  FROM scheduled_workouts
 WHERE user_id = $1
 ORDER BY scheduled_date;`

	rows, err := r.pool.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing scheduled workouts: %w", err)
	}
	defer rows.Close()

	out := make([]model.ScheduledWorkout, 0)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var s model.ScheduledWorkout
		if err := json.Unmarshal(payload, &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ScheduleRepo) Get(ctx context.Context, userID, scheduleID string) (*model.ScheduledWorkout, error) {
	const sql = `
SELECT payload
  FROM scheduled_workouts
 WHERE user_id = $1 AND id = $2;`

	var payload []byte
	if err := r.pool.QueryRow(ctx, sql, userID, scheduleID).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("postgres: querying scheduled workout: %w", err)
	}
	var s model.ScheduledWorkout
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleRepo) Update(ctx context.Context, userID string, s *model.ScheduledWorkout) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	const sql = `
UPDATE scheduled_workouts
   SET scheduled_date = $3, completed = $4, payload = $5::jsonb
 WHERE user_id = $1 AND id = $2;`

	tag, err := r.pool.Exec(ctx, sql, userID, s.ID, s.ScheduledDate, s.Completed, payload)
	if err != nil {
		return fmt.Errorf("postgres: updating scheduled workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ScheduleRepo) Delete(ctx context.Context, userID, scheduleID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM scheduled_workouts WHERE user_id = $1 AND id = $2;`, userID, scheduleID)
	if err != nil {
		return fmt.Errorf("postgres: deleting scheduled workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
