package usecase

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	SignInWithEmailPassword(email, password string) (string, string, error)
	RefreshIDToken(refreshToken string) (string, string, error)
}
