package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Identity is what an Authenticator hands back for accepted credentials.
type Identity struct {
	UserID string
	Email  string
}

// Authenticator checks credentials for the profile store. Implementations
// return ErrAuthenticationFailed for rejected credentials.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (Identity, error)
	SignUp(ctx context.Context, email, password string) (Identity, error)
}

// MockAuthenticator accepts any credentials and issues a fresh id each time.
// The password is never inspected or kept.
type MockAuthenticator struct{}

func (MockAuthenticator) SignIn(_ context.Context, email, _ string) (Identity, error) {
	return Identity{UserID: uuid.NewString(), Email: strings.TrimSpace(email)}, nil
}

func (MockAuthenticator) SignUp(_ context.Context, email, _ string) (Identity, error) {
	return Identity{UserID: uuid.NewString(), Email: strings.TrimSpace(email)}, nil
}
