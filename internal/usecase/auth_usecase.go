package usecase

import (
	"context"

	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/entity"
	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/repository"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/errors"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/logger"
)

type AuthUseCase struct {
	profileRepo  repository.ProfileRepository
	firebaseAuth FirebaseAuthClient
}

func NewAuthUseCase(profileRepo repository.ProfileRepository, firebaseAuth FirebaseAuthClient) *AuthUseCase {
	return &AuthUseCase{
		profileRepo:  profileRepo,
		firebaseAuth: firebaseAuth,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

type AuthResult struct {
	Profile      *entity.Profile
	Token        string
	RefreshToken string
}

// Register creates the auth account and provisions its profile row. The
// profile is keyed by the new account's UID and carries the signup
// full_name, so the client never issues an explicit profile insert.
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	uid, err := uc.firebaseAuth.CreateUser(ctx, input.Email, input.Password, input.FullName)
	if err != nil {
		return nil, errors.BadRequest("Failed to create account", err)
	}

	profile, err := uc.provisionProfile(ctx, uid, input.Email, input.FullName)
	if err != nil {
		return nil, err
	}

	token, refreshToken, err := uc.firebaseAuth.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	return &AuthResult{
		Profile:      profile,
		Token:        token,
		RefreshToken: refreshToken,
	}, nil
}

// provisionProfile is the post-registration hook replacing the store-side
// trigger. Upserting by UID makes it idempotent: a rerun for the same
// account rewrites the same row.
func (uc *AuthUseCase) provisionProfile(ctx context.Context, uid, email, fullName string) (*entity.Profile, error) {
	profile := &entity.Profile{
		ID:       uid,
		Email:    email,
		FullName: fullName,
	}

	if err := uc.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, errors.Internal("Failed to provision profile", err)
	}

	return profile, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	token, refreshToken, err := uc.firebaseAuth.SignInWithEmailPassword(email, password)
	if err != nil {
		logger.Warn("Login failed for %s: %v", email, err)
		return nil, errors.Unauthorized("Invalid credentials", err)
	}

	uid, err := uc.firebaseAuth.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Internal("Failed to verify token", err)
	}

	profile, err := uc.profileRepo.GetByID(ctx, uid)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}

		// Accounts that predate provisioning, or whose provisioning was
		// interrupted, get their profile backfilled on first login.
		record, recordErr := uc.firebaseAuth.GetUser(ctx, uid)
		fullName := ""
		if recordErr == nil {
			fullName = record.DisplayName
		}
		profile, err = uc.provisionProfile(ctx, uid, email, fullName)
		if err != nil {
			return nil, err
		}
	}

	return &AuthResult{
		Profile:      profile,
		Token:        token,
		RefreshToken: refreshToken,
	}, nil
}

func (uc *AuthUseCase) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	token, newRefreshToken, err := uc.firebaseAuth.RefreshIDToken(refreshToken)
	if err != nil {
		return "", "", errors.Unauthorized("Invalid refresh token", err)
	}

	return token, newRefreshToken, nil
}
