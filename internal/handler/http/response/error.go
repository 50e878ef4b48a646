package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-tracker/internal/domain/auth"
	"github.com/cmlabs-hris/leave-tracker/internal/domain/directory"
	"github.com/cmlabs-hris/leave-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/leave-tracker/internal/domain/user"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrMalformedToken),
		errors.Is(err, auth.ErrUnauthenticated):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrPrincipalMismatch):
		Forbidden(w, err.Error())

	// User domain errors
	case errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUserNameExists):
		Conflict(w, "Name already taken")

	// Directory lookups
	case errors.Is(err, directory.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, directory.ErrRoleNotFound):
		NotFound(w, "Role not found")
	case errors.Is(err, directory.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, directory.ErrLeaveStatusNotFound):
		NotFound(w, "Leave status not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyMarked):
		Conflict(w, "Attendance already marked for today")
	case errors.Is(err, attendance.ErrInvalidDate):
		BadRequest(w, err.Error(), nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestNotFoundOrImmutable):
		NotFound(w, "Leave request not found or no longer pending")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		AlreadyProcessed(w, "Leave request already processed")
	case errors.Is(err, leave.ErrNotDirectReport):
		Forbidden(w, err.Error())
	case errors.Is(err, leave.ErrCannotProcessToPending),
		errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
