package repository

import (
	"context"

	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/entity"
)

type ProfileRepository interface {
	// Upsert writes the profile keyed by its ID. Provisioning the same
	// account twice is a no-op apart from the timestamp.
	Upsert(ctx context.Context, profile *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) error
}
