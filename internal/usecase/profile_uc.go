package usecase

import (
	"context"
	"fmt"
	"strings"

	"crux-coach/internal/domain"
	"crux-coach/internal/domain/model"
	"crux-coach/internal/domain/ports/repository"
)

// Compile-time check
var _ ProfileUseCase = (*profileUC)(nil)

type ProfileUseCase interface {
	Save(ctx context.Context, userID string, p *model.UserProfile) (*model.UserProfile, error)
	Get(ctx context.Context, userID string) (*model.UserProfile, error)
	Delete(ctx context.Context, userID string) error
}

type profileUC struct {
	profiles repository.ProfileRepository
}

func NewProfileUseCase(profiles repository.ProfileRepository) *profileUC {
	return &profileUC{profiles: profiles}
}

func (uc *profileUC) Save(ctx context.Context, userID string, p *model.UserProfile) (*model.UserProfile, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("%w: profile name is required", domain.ErrInvalidArgument)
	}
	if p.WeeklyAvailability.MinutesPerSession <= 0 {
		return nil, fmt.Errorf("%w: minutesPerSession must be positive", domain.ErrInvalidArgument)
	}
	return uc.profiles.Save(ctx, userID, p)
}

func (uc *profileUC) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	return uc.profiles.Get(ctx, userID)
}

func (uc *profileUC) Delete(ctx context.Context, userID string) error {
	return uc.profiles.Delete(ctx, userID)
}
