package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/entity"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/errors"
)

func TestGetProfilePublic(t *testing.T) {
	profileRepo := newFakeProfileRepo()
	uc := NewProfileUseCase(profileRepo)
	ctx := context.Background()

	require.NoError(t, profileRepo.Upsert(ctx, &entity.Profile{
		ID:       "seller-1",
		FullName: "Ravi Kumar",
		Bio:      "Selling my engineering textbooks",
	}))

	// Any caller can read any profile, no identity needed
	profile, err := uc.GetProfile(ctx, "seller-1")
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", profile.FullName)

	_, err = uc.GetProfile(ctx, "missing")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestUpdateProfileOwnerOnly(t *testing.T) {
	profileRepo := newFakeProfileRepo()
	uc := NewProfileUseCase(profileRepo)
	ctx := context.Background()

	require.NoError(t, profileRepo.Upsert(ctx, &entity.Profile{
		ID:       "seller-1",
		FullName: "Ravi Kumar",
	}))

	_, err := uc.UpdateProfile(ctx, "someone-else", "seller-1", UpdateProfileInput{Bio: "hijacked"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	updated, err := uc.UpdateProfile(ctx, "seller-1", "seller-1", UpdateProfileInput{
		Bio:       "Selling my engineering textbooks",
		AvatarURL: "https://storage.googleapis.com/avatars/ravi.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", updated.FullName)
	assert.Equal(t, "Selling my engineering textbooks", updated.Bio)
}
