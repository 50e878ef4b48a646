package attendance

import (
	"time"
)

// Attendance is one user's mark for one calendar day. Storage holds at most
// one row per (UserID, Date).
type Attendance struct {
	ID       int64
	UserID   int64
	Date     time.Time
	StatusID int64

	// DTO
	UserName   *string
	StatusName *string
}

// Scope narrows the monthly report. A nil field means "no restriction".
type Scope struct {
	// UserID restricts rows to a single user.
	UserID *int64
	// ManagerID restricts rows to the manager and their direct reports.
	ManagerID *int64
}

type MonthlyFilter struct {
	Month int
	Year  int
	Scope Scope
}

// Range returns the half-open date interval [first day, first day of next month).
func (f MonthlyFilter) Range(loc *time.Location) (time.Time, time.Time) {
	from := time.Date(f.Year, time.Month(f.Month), 1, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 1, 0)
}
