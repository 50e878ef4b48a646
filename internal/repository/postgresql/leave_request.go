package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestSelect = `
	SELECT lr.request_id, lr.user_id, lr.leave_id,
		   lr.start_date, lr.end_date, lr.reason,
		   lr.processed_status_id, lr.submitted_at, lr.approved_by, lr.processed_at,
		   u.name, lt.leave_type_name, ls.status_name, u.manager_id
	FROM leave_requests lr
	JOIN users u ON u.user_id = lr.user_id
	JOIN leave_types lt ON lt.leave_type_id = lr.leave_id
	JOIN leave_status ls ON ls.processed_status_id = lr.processed_status_id
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.UserID,
		&lr.LeaveTypeID,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Reason,
		&lr.ProcessedStatusID,
		&lr.SubmittedAt,
		&lr.ApprovedBy,
		&lr.ProcessedAt,
		&lr.UserName,
		&lr.LeaveTypeName,
		&lr.StatusName,
		&lr.OwnerManagerID,
	)
	return lr, err
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			user_id, leave_id, start_date, end_date, reason,
			processed_status_id, submitted_at
		) VALUES (
			$1, $2, $3, $4, $5,
			0, NOW()
		) RETURNING request_id, processed_status_id, submitted_at
	`

	err := q.QueryRow(ctx, query,
		request.UserID, request.LeaveTypeID,
		request.StartDate, request.EndDate, request.Reason,
	).Scan(&request.ID, &request.ProcessedStatusID, &request.SubmittedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id int64) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	req, err := scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+` WHERE lr.request_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return req, nil
}

func (r *leaveRequestRepositoryImpl) ListByUser(ctx context.Context, userID int64) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := leaveRequestSelect + `
		WHERE lr.user_id = $1
		ORDER BY lr.submitted_at DESC, lr.request_id DESC
	`
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return collectLeaveRequests(rows)
}

func (r *leaveRequestRepositoryImpl) ListByManager(ctx context.Context, managerID int64) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := leaveRequestSelect + `
		WHERE u.manager_id = $1
		ORDER BY lr.submitted_at DESC, lr.request_id DESC
	`
	rows, err := q.Query(ctx, query, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team leave requests: %w", err)
	}
	return collectLeaveRequests(rows)
}

func (r *leaveRequestRepositoryImpl) UpdatePending(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET leave_id = $1, start_date = $2, end_date = $3, reason = $4
		WHERE request_id = $5 AND user_id = $6 AND processed_status_id = 0
		RETURNING request_id, user_id, leave_id, start_date, end_date, reason,
				  processed_status_id, submitted_at, approved_by, processed_at
	`

	var updated leave.LeaveRequest
	err := q.QueryRow(ctx, query,
		request.LeaveTypeID, request.StartDate, request.EndDate, request.Reason,
		request.ID, request.UserID,
	).Scan(
		&updated.ID, &updated.UserID, &updated.LeaveTypeID,
		&updated.StartDate, &updated.EndDate, &updated.Reason,
		&updated.ProcessedStatusID, &updated.SubmittedAt, &updated.ApprovedBy, &updated.ProcessedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, false, nil
		}
		return leave.LeaveRequest{}, false, fmt.Errorf("failed to update leave request: %w", err)
	}
	return updated, true, nil
}

func (r *leaveRequestRepositoryImpl) DeletePending(ctx context.Context, id int64, userID int64) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		DELETE FROM leave_requests
		WHERE request_id = $1 AND user_id = $2 AND processed_status_id = 0
	`
	commandTag, err := q.Exec(ctx, query, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete leave request: %w", err)
	}
	return commandTag.RowsAffected() == 1, nil
}

// Process applies a terminal status. The pending guard and the direct-report
// check sit in the UPDATE itself, so of two concurrent calls only one can match.
func (r *leaveRequestRepositoryImpl) Process(ctx context.Context, params leave.ProcessParams) (leave.LeaveRequest, bool, error) {
	var processed leave.LeaveRequest
	matched := false

	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		query := `
			UPDATE leave_requests lr
			SET processed_status_id = $1, approved_by = $2, processed_at = NOW()
			FROM users u
			WHERE lr.request_id = $3
			  AND lr.processed_status_id = 0
			  AND u.user_id = lr.user_id
			  AND u.manager_id = $2
			RETURNING lr.request_id, lr.user_id, lr.leave_id, lr.start_date, lr.end_date, lr.reason,
					  lr.processed_status_id, lr.submitted_at, lr.approved_by, lr.processed_at
		`
		err := q.QueryRow(txCtx, query, params.StatusID, params.ApprovedBy, params.RequestID).Scan(
			&processed.ID, &processed.UserID, &processed.LeaveTypeID,
			&processed.StartDate, &processed.EndDate, &processed.Reason,
			&processed.ProcessedStatusID, &processed.SubmittedAt, &processed.ApprovedBy, &processed.ProcessedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("failed to process leave request: %w", err)
		}
		matched = true

		if !params.CoverAttendance {
			return nil
		}

		// Days the user already marked keep their existing row.
		coverQuery := `
			INSERT INTO attendance (user_id, date, attendance_status_id)
			SELECT $1::bigint, d::date, $2::bigint
			FROM generate_series($3::date::timestamp, $4::date::timestamp, interval '1 day') AS d
			ON CONFLICT (user_id, date) DO NOTHING
		`
		if _, err := q.Exec(txCtx, coverQuery, processed.UserID, processed.LeaveTypeID, processed.StartDate, processed.EndDate); err != nil {
			return fmt.Errorf("failed to record leave attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, false, err
	}

	return processed, matched, nil
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	defer rows.Close()

	requests := []leave.LeaveRequest{}
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}
