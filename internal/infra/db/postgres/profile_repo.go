package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"crux-coach/internal/domain"
	"crux-coach/internal/domain/model"
	"crux-coach/internal/domain/ports/repository"
)

// Compile-time check
var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo stores one profile row per user; the structured sub-fields live
// in jsonb columns mirroring the way the original schema kept them.
type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func (r *ProfileRepo) Save(ctx context.Context, userID string, p *model.UserProfile) (*model.UserProfile, error) {
	levels, err := json.Marshal(p.ClimbingLevels)
	if err != nil {
		return nil, err
	}
	goals, err := json.Marshal(p.Goals)
	if err != nil {
		return nil, err
	}
	equipment, err := json.Marshal(p.AvailableEquipment)
	if err != nil {
		return nil, err
	}
	availability, err := json.Marshal(p.WeeklyAvailability)
	if err != nil {
		return nil, err
	}
	limitations, err := json.Marshal(p.Limitations)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	const sql = `
INSERT INTO profiles (user_id, name, experience_years, climbing_levels, goals, available_equipment, weekly_availability, limitations, created_at, updated_at)
VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6::jsonb, $7::jsonb, $8::jsonb, $9, $9)
ON CONFLICT (user_id) DO UPDATE
  SET name                = EXCLUDED.name,
      experience_years    = EXCLUDED.experience_years,
      climbing_levels     = EXCLUDED.climbing_levels,
      goals               = EXCLUDED.goals,
      available_equipment = EXCLUDED.available_equipment,
      weekly_availability = EXCLUDED.weekly_availability,
      limitations         = EXCLUDED.limitations,
      updated_at          = EXCLUDED.updated_at;`

	if _, err := r.pool.Exec(ctx, sql,
		userID, p.Name, p.ExperienceYears, levels, goals, equipment, availability, limitations, now,
	); err != nil {
		return nil, fmt.Errorf("postgres: saving profile: %w", err)
	}
	return r.Get(ctx, userID)
}

func (r *ProfileRepo) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	const sql = `
SELECT user_id, name, experience_years, climbing_levels, goals, available_equipment, weekly_availability, limitations, created_at, updated_at
  FROM profiles
 WHERE user_id = $1;`

	row := r.pool.QueryRow(ctx, sql, userID)

	var (
		p                                                  model.UserProfile
		levels, goals, equipment, availability, limitation []byte
	)
	if err := row.Scan(&p.ID, &p.Name, &p.ExperienceYears, &levels, &goals, &equipment, &availability, &limitation, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("postgres: querying profile: %w", err)
	}
	if err := json.Unmarshal(levels, &p.ClimbingLevels); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(goals, &p.Goals); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(equipment, &p.AvailableEquipment); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(availability, &p.WeeklyAvailability); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(limitation, &p.Limitations); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepo) Delete(ctx context.Context, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1;`, userID)
	if err != nil {
		return fmt.Errorf("postgres: deleting profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
