package repository

import (
	"context"

	"crux-coach/internal/domain/model"
)

// ProfileRepository stores one profile per owning user.
type ProfileRepository interface {
	Save(ctx context.Context, userID string, p *model.UserProfile) (*model.UserProfile, error)
	Get(ctx context.Context, userID string) (*model.UserProfile, error)
	Delete(ctx context.Context, userID string) error
}
