package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	// ResolvePrincipal re-reads the token subject from storage and confirms
	// the role claim still holds. It never serves a cached answer.
	ResolvePrincipal(ctx context.Context, subject string, role string) (Principal, error)
}
