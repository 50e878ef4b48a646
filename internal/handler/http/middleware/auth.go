package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/auth"
	"github.com/cmlabs-hris/leave-tracker/internal/handler/http/response"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// Authenticate runs after jwtauth.Verifier. It rejects anything but a valid
// access token, then re-resolves the subject against storage on every request
// and stores the resulting auth.Principal in the context.
func Authenticate(authService auth.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				if errors.Is(err, jwtauth.ErrExpired) {
					response.HandleError(w, auth.ErrTokenExpired)
					return
				}
				response.HandleError(w, auth.ErrUnauthenticated)
				return
			}
			if token == nil {
				response.HandleError(w, auth.ErrUnauthenticated)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != jwt.TokenTypeAccess {
				response.HandleError(w, auth.ErrUnauthenticated)
				return
			}

			role, _ := claims["role"].(string)
			principal, err := authService.ResolvePrincipal(r.Context(), token.Subject(), role)
			if err != nil {
				if errors.Is(err, auth.ErrPrincipalMismatch) {
					slog.Warn("Rejected stale token", "sub", token.Subject(), "role", role)
				}
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		}
		return http.HandlerFunc(hfn)
	}
}
