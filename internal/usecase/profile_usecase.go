package usecase

import (
	"context"

	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/entity"
	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/policy"
	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/repository"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/errors"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewProfileUseCase(profileRepo repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
	}
}

type UpdateProfileInput struct {
	FullName  string
	AvatarURL string
	Bio       string
}

// GetProfile serves the public profile view; any caller may read any row.
func (uc *ProfileUseCase) GetProfile(ctx context.Context, id string) (*entity.Profile, error) {
	return uc.profileRepo.GetByID(ctx, id)
}

func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, callerID, profileID string, input UpdateProfileInput) (*entity.Profile, error) {
	existing, err := uc.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if !policy.CanUpdateProfile(callerID, existing) {
		return nil, errors.Forbidden("You can only update your own profile", nil)
	}

	if input.FullName != "" {
		existing.FullName = input.FullName
	}
	if input.AvatarURL != "" {
		existing.AvatarURL = input.AvatarURL
	}
	if input.Bio != "" {
		existing.Bio = input.Bio
	}

	if err := uc.profileRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}
