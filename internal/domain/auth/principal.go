package auth

import (
	"context"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/user"
)

// Principal is the authenticated caller for the rest of a request.
type Principal struct {
	UserID int64     `json:"user_id"`
	Name   string    `json:"name"`
	Role   user.Role `json:"role"`
}

type principalCtxKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(Principal)
	return p, ok
}
