package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	// No existence pre-check: the (user_id, date) unique constraint decides.
	query := `
		INSERT INTO attendance (user_id, date, attendance_status_id)
		VALUES ($1, $2, $3)
		RETURNING attendance_id
	`

	err := q.QueryRow(ctx, query,
		newAttendance.UserID,
		newAttendance.Date,
		newAttendance.StatusID,
	).Scan(&newAttendance.ID)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// ListByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUser(ctx context.Context, userID int64) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT a.attendance_id, a.user_id, a.date, a.attendance_status_id,
			   u.name, lt.leave_type_name
		FROM attendance a
		JOIN users u ON u.user_id = a.user_id
		JOIN leave_types lt ON lt.leave_type_id = a.attendance_status_id
		WHERE a.user_id = $1
		ORDER BY a.date DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return collectAttendance(rows)
}

// ListMonthly implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListMonthly(ctx context.Context, filter attendance.MonthlyFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	from, to := filter.Range(time.UTC)

	query := `
		SELECT a.attendance_id, a.user_id, a.date, a.attendance_status_id,
			   u.name, lt.leave_type_name
		FROM attendance a
		JOIN users u ON u.user_id = a.user_id
		JOIN leave_types lt ON lt.leave_type_id = a.attendance_status_id
		WHERE a.date >= $1 AND a.date < $2
		  AND ($3::bigint IS NULL OR a.user_id = $3)
		  AND ($4::bigint IS NULL OR a.user_id = $4 OR u.manager_id = $4)
		ORDER BY a.user_id ASC, a.date ASC
	`

	rows, err := q.Query(ctx, query, from, to, filter.Scope.UserID, filter.Scope.ManagerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly attendance: %w", err)
	}
	return collectAttendance(rows)
}

func collectAttendance(rows pgx.Rows) ([]attendance.Attendance, error) {
	defer rows.Close()

	records := []attendance.Attendance{}
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID,
			&att.UserID,
			&att.Date,
			&att.StatusID,
			&att.UserName,
			&att.StatusName,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
