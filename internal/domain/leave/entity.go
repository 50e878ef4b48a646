package leave

import (
	"time"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/directory"
)

// LeaveRequest entity. ProcessedStatusID is directory.StatusPending until the
// request is processed, after which the row is frozen.
type LeaveRequest struct {
	ID                int64
	UserID            int64
	LeaveTypeID       int64
	StartDate         time.Time
	EndDate           time.Time
	Reason            string
	ProcessedStatusID int64
	SubmittedAt       time.Time
	ApprovedBy        *int64
	ProcessedAt       *time.Time

	// Relationships (for responses)
	UserName       *string
	LeaveTypeName  *string
	StatusName     *string
	OwnerManagerID *int64
}

// MaxLeaveDays bounds a single request, both ends inclusive.
const MaxLeaveDays = 366

// DaysCovered counts the calendar days in [start, end].
func DaysCovered(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func (r LeaveRequest) IsPending() bool {
	return r.ProcessedStatusID == directory.StatusPending
}

// ProcessParams describes a terminal transition. CoverAttendance asks the
// repository to write attendance rows for every day of the request in the
// same transaction.
type ProcessParams struct {
	RequestID       int64
	StatusID        int64
	ApprovedBy      int64
	CoverAttendance bool
}
