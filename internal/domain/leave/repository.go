package leave

import (
	"context"
)

// LeaveRequestRepository - interface for leave_requests table. Every mutation
// carries the pending guard in the same statement; the returned bool reports
// whether the guard matched.
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id int64) (LeaveRequest, error)
	ListByUser(ctx context.Context, userID int64) ([]LeaveRequest, error)
	ListByManager(ctx context.Context, managerID int64) ([]LeaveRequest, error)
	UpdatePending(ctx context.Context, request LeaveRequest) (LeaveRequest, bool, error)
	DeletePending(ctx context.Context, id int64, userID int64) (bool, error)
	Process(ctx context.Context, params ProcessParams) (LeaveRequest, bool, error)
}
