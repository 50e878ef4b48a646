package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/auth"
	"github.com/cmlabs-hris/leave-tracker/internal/domain/user"
	"github.com/cmlabs-hris/leave-tracker/internal/handler/http/response"
)

// RequirePermission admits principals whose role grants permission. Must run
// after Authenticate.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.PrincipalFromContext(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrUnauthenticated)
				return
			}

			if !user.HasPermission(principal.Role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, principal.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
