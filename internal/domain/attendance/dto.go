package attendance

import (
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/validator"
)

// MarkAttendanceRequest marks the caller present. UserID always comes from
// the authenticated principal; Date defaults to today when empty.
type MarkAttendanceRequest struct {
	UserID int64  `json:"-" validate:"gt=0"`
	Date   string `json:"date,omitempty" validate:"omitempty,date"`
}

func (r *MarkAttendanceRequest) Validate() error {
	return validator.Struct(r)
}

type MonthlyAttendanceRequest struct {
	Month int `json:"month" validate:"min=1,max=12"`
	Year  int `json:"year" validate:"min=1,max=9999"`
}

func (r *MonthlyAttendanceRequest) Validate() error {
	return validator.Struct(r)
}

type AttendanceResponse struct {
	ID         int64  `json:"attendance_id"`
	UserID     int64  `json:"user_id"`
	UserName   string `json:"user_name,omitempty"`
	Date       string `json:"date"`
	StatusID   int64  `json:"attendance_status_id"`
	StatusName string `json:"status,omitempty"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:       a.ID,
		UserID:   a.UserID,
		Date:     a.Date.Format(validator.DateLayout),
		StatusID: a.StatusID,
	}
	if a.UserName != nil {
		resp.UserName = *a.UserName
	}
	if a.StatusName != nil {
		resp.StatusName = *a.StatusName
	}
	return resp
}
