package attendance

import (
	"context"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/auth"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// MarkAttendance records today's Present mark for the user.
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)

	// ListAttendance lists the user's own marks
	ListAttendance(ctx context.Context, userID int64) ([]AttendanceResponse, error)

	// ListMonthlyAttendance builds the month report visible to the principal
	ListMonthlyAttendance(ctx context.Context, principal auth.Principal, req MonthlyAttendanceRequest) ([]AttendanceResponse, error)
}
