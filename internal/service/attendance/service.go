package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-tracker/internal/domain/auth"
	"github.com/cmlabs-hris/leave-tracker/internal/domain/directory"
	"github.com/cmlabs-hris/leave-tracker/internal/domain/user"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/database"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	directory.Repository

	loc *time.Location
	now func() time.Time
}

// NewAttendanceService builds the service. loc decides which calendar day
// "today" is; a nil loc means time.Local.
func NewAttendanceService(attendanceRepository attendance.AttendanceRepository, directoryRepository directory.Repository, loc *time.Location) attendance.AttendanceService {
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		Repository:           directoryRepository,
		loc:                  loc,
		now:                  time.Now,
	}
}

// today returns the server's calendar date as a UTC midnight value, which is
// how DATE columns round-trip through pgx.
func (a *AttendanceServiceImpl) today() time.Time {
	y, m, d := a.now().In(a.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MarkAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	today := a.today()
	if req.Date != "" {
		date, _ := validator.IsValidDate(req.Date)
		if !date.Equal(today) {
			return attendance.AttendanceResponse{}, attendance.ErrInvalidDate
		}
	}

	presentID, err := a.Repository.LeaveTypeIDByName(ctx, directory.LeaveTypePresent)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	// No pre-check: the (user_id, date) constraint decides concurrent marks.
	created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		UserID:   req.UserID,
		Date:     today,
		StatusID: presentID,
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyMarked
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to mark attendance: %w", err)
	}

	present := directory.LeaveTypePresent
	created.StatusName = &present
	return attendance.NewAttendanceResponse(created), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, userID int64) ([]attendance.AttendanceResponse, error) {
	rows, err := a.AttendanceRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return toResponses(rows), nil
}

// ListMonthlyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListMonthlyAttendance(ctx context.Context, principal auth.Principal, req attendance.MonthlyAttendanceRequest) ([]attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	filter := attendance.MonthlyFilter{Month: req.Month, Year: req.Year}
	switch principal.Role {
	case user.RoleAdmin:
	case user.RoleManager:
		filter.Scope.ManagerID = &principal.UserID
	default:
		filter.Scope.UserID = &principal.UserID
	}

	rows, err := a.AttendanceRepository.ListMonthly(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly attendance: %w", err)
	}
	return toResponses(rows), nil
}

func toResponses(rows []attendance.Attendance) []attendance.AttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, attendance.NewAttendanceResponse(row))
	}
	return responses
}
