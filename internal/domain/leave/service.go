package leave

import (
	"context"
)

type LeaveService interface {
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	Edit(ctx context.Context, req EditLeaveRequest) (LeaveRequestResponse, error)
	Delete(ctx context.Context, requestID int64, userID int64) error
	ListMine(ctx context.Context, userID int64) ([]LeaveRequestResponse, error)
	ListForManager(ctx context.Context, managerName string) ([]LeaveRequestResponse, error)
	Process(ctx context.Context, req ProcessLeaveRequest) (LeaveRequestResponse, error)
}
