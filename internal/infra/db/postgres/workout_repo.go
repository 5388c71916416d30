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
var _ repository.WorkoutRepository = (*WorkoutRepo)(nil)

type WorkoutRepo struct {
	pool *pgxpool.Pool
}

func NewWorkoutRepo(pool *pgxpool.Pool) *WorkoutRepo {
	return &WorkoutRepo{pool: pool}
}

func (r *WorkoutRepo) Save(ctx context.Context, userID string, w *model.Workout) error {
	payload, err := json.Marshal(w)
	if err != nil {
		return err
	}
	const sql = `
INSERT INTO workouts (id, user_id, title, payload, created_at)
VALUES ($1, $2, $3, $4::jsonb, $5);`

	if _, err := r.pool.Exec(ctx, sql, w.ID, userID, w.Title, payload, w.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("postgres: saving workout: %w", err)
	}
	return nil
}

func (r *WorkoutRepo) List(ctx context.Context, userID string) ([]model.Workout, error) {
	const sql = `
SELECT payload
  FROM workouts
 WHERE user_id = $1
 ORDER BY created_at DESC;`

	rows, err := r.pool.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing workouts: %w", err)
	}
	defer rows.Close()

	out := make([]model.Workout, 0)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var w model.Workout
		if err := json.Unmarshal(payload, &w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *WorkoutRepo) Get(ctx context.Context, userID, workoutID string) (*model.Workout, error) {
	const sql = `
SELECT payload
  FROM workouts
 WHERE user_id = $1 AND id = $2;`

	var payload []byte
	if err := r.pool.QueryRow(ctx, sql, userID, workoutID).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("postgres: querying workout: %w", err)
	}
	var w model.Workout
	if err := json.Unmarshal(payload, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WorkoutRepo) Delete(ctx context.Context, userID, workoutID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM workouts WHERE user_id = $1 AND id = $2;`, userID, workoutID)
	if err != nil {
		return fmt.Errorf("postgres: deleting workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
