package attendance

import (
	"context"
)

type AttendanceRepository interface {
	// Create inserts a single mark. A duplicate (user, date) surfaces as the
	// storage unique-violation error, unwrapped by the caller.
	Create(ctx context.Context, newAttendance Attendance) (Attendance, error)
	// ListByUser returns a user's marks, newest date first.
	ListByUser(ctx context.Context, userID int64) ([]Attendance, error)
	// ListMonthly returns marks in the month ordered by user, then date ascending.
	ListMonthly(ctx context.Context, filter MonthlyFilter) ([]Attendance, error)
}
