package leave

import (
	"time"

	"github.com/cmlabs-hris/leave-tracker/internal/pkg/validator"
)

type SubmitLeaveRequest struct {
	RequesterName string `json:"-" validate:"notblank"`
	LeaveTypeName string `json:"leave_type_name" validate:"notblank"`
	StartDate     string `json:"start_date" validate:"required,date"`
	EndDate       string `json:"end_date" validate:"required,date"`
	Reason        string `json:"reason" validate:"max=1000"`
}

func (r *SubmitLeaveRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	_, _, err := parseRange(r.StartDate, r.EndDate)
	return err
}

// Dates returns the parsed range. Call after Validate.
func (r *SubmitLeaveRequest) Dates() (time.Time, time.Time) {
	start, end, _ := parseRange(r.StartDate, r.EndDate)
	return start, end
}

// EditLeaveRequest replaces every editable field; all of them are required.
type EditLeaveRequest struct {
	RequestID     int64  `json:"-" validate:"gt=0"`
	UserID        int64  `json:"-" validate:"gt=0"`
	LeaveTypeName string `json:"leave_type_name" validate:"notblank"`
	StartDate     string `json:"start_date" validate:"required,date"`
	EndDate       string `json:"end_date" validate:"required,date"`
	Reason        string `json:"reason" validate:"notblank,max=1000"`
}

func (r *EditLeaveRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	_, _, err := parseRange(r.StartDate, r.EndDate)
	return err
}

// Dates returns the parsed range. Call after Validate.
func (r *EditLeaveRequest) Dates() (time.Time, time.Time) {
	start, end, _ := parseRange(r.StartDate, r.EndDate)
	return start, end
}

type ProcessLeaveRequest struct {
	RequestID  int64  `json:"-" validate:"gt=0"`
	StatusName string `json:"status" validate:"notblank"`
	ApprovedBy int64  `json:"-" validate:"gt=0"`
}

func (r *ProcessLeaveRequest) Validate() error {
	return validator.Struct(r)
}

type LeaveRequestResponse struct {
	ID                int64      `json:"request_id"`
	UserID            int64      `json:"user_id"`
	UserName          string     `json:"user_name,omitempty"`
	LeaveTypeID       int64      `json:"leave_id"`
	LeaveTypeName     string     `json:"leave_type_name,omitempty"`
	StartDate         string     `json:"start_date"`
	EndDate           string     `json:"end_date"`
	Reason            string     `json:"reason"`
	ProcessedStatusID int64      `json:"processed_status_id"`
	StatusName        string     `json:"status,omitempty"`
	SubmittedAt       time.Time  `json:"submitted_at"`
	ApprovedBy        *int64     `json:"approved_by"`
	ProcessedAt       *time.Time `json:"processed_at"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:                r.ID,
		UserID:            r.UserID,
		LeaveTypeID:       r.LeaveTypeID,
		StartDate:         r.StartDate.Format(validator.DateLayout),
		EndDate:           r.EndDate.Format(validator.DateLayout),
		Reason:            r.Reason,
		ProcessedStatusID: r.ProcessedStatusID,
		SubmittedAt:       r.SubmittedAt,
		ApprovedBy:        r.ApprovedBy,
		ProcessedAt:       r.ProcessedAt,
	}
	if r.UserName != nil {
		resp.UserName = *r.UserName
	}
	if r.LeaveTypeName != nil {
		resp.LeaveTypeName = *r.LeaveTypeName
	}
	if r.StatusName != nil {
		resp.StatusName = *r.StatusName
	}
	return resp
}

func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, _ := validator.IsValidDate(startStr)
	end, _ := validator.IsValidDate(endStr)
	if end.Before(start) {
		return time.Time{}, time.Time{}, validator.ValidationErrors{{
			Field:   "end_date",
			Message: ErrInvalidDateRange.Error(),
		}}
	}
	// Approval writes one attendance row per covered day.
	if DaysCovered(start, end) > MaxLeaveDays {
		return time.Time{}, time.Time{}, validator.ValidationErrors{{
			Field:   "end_date",
			Message: ErrLeaveRangeTooLong.Error(),
		}}
	}
	return start, end, nil
}
