package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/entity"
	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/repository"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/errors"
)

type firestoreProfileRepository struct {
	client *firestore.Client
}

func NewFirestoreProfileRepository(client *firestore.Client) repository.ProfileRepository {
	return &firestoreProfileRepository{
		client: client,
	}
}

func (r *firestoreProfileRepository) Upsert(ctx context.Context, profile *entity.Profile) error {
	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	// Doc ID equals the auth UID, so a second provisioning run rewrites
	// the same document instead of duplicating it.
	_, err := r.client.Collection("profiles").Doc(profile.ID).Set(ctx, profile)
	if err != nil {
		return errors.Internal("Failed to upsert profile", err)
	}

	return nil
}

func (r *firestoreProfileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	doc, err := r.client.Collection("profiles").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Profile", err)
		}
		return nil, errors.Internal("Failed to get profile", err)
	}

	var profile entity.Profile
	if err := doc.DataTo(&profile); err != nil {
		return nil, errors.Internal("Failed to parse profile data", err)
	}

	return &profile, nil
}

func (r *firestoreProfileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	updateData := map[string]interface{}{
		"updatedAt": time.Now(),
	}
	if profile.FullName != "" {
		updateData["fullName"] = profile.FullName
	}
	if profile.AvatarURL != "" {
		updateData["avatarURL"] = profile.AvatarURL
	}
	if profile.Bio != "" {
		updateData["bio"] = profile.Bio
	}

	_, err := r.client.Collection("profiles").Doc(profile.ID).Set(ctx, updateData, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update profile", err)
	}

	return nil
}
