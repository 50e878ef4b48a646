package leave

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/directory"
	"github.com/cmlabs-hris/leave-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/leave-tracker/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	directory.Repository
}

func NewLeaveService(leaveRequestRepository leave.LeaveRequestRepository, directoryRepository directory.Repository) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepository,
		Repository:             directoryRepository,
	}
}

// Submit implements leave.LeaveService. Both lookups must resolve before the
// insert is issued.
func (s *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	req.Reason = strings.TrimSpace(req.Reason)
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var (
		requester   directory.UserRef
		leaveTypeID int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		requester, err = s.Repository.ResolveUser(gctx, req.RequesterName)
		return err
	})
	g.Go(func() error {
		var err error
		leaveTypeID, err = s.Repository.LeaveTypeIDByName(gctx, req.LeaveTypeName)
		return err
	})
	if err := g.Wait(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	startDate, endDate := req.Dates()
	created, err := s.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		UserID:      requester.ID,
		LeaveTypeID: leaveTypeID,
		StartDate:   startDate,
		EndDate:     endDate,
		Reason:      req.Reason,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to submit leave request: %w", err)
	}

	return s.load(ctx, created.ID)
}

// Edit implements leave.LeaveService.
func (s *LeaveServiceImpl) Edit(ctx context.Context, req leave.EditLeaveRequest) (leave.LeaveRequestResponse, error) {
	req.Reason = strings.TrimSpace(req.Reason)
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	leaveTypeID, err := s.Repository.LeaveTypeIDByName(ctx, req.LeaveTypeName)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	startDate, endDate := req.Dates()
	_, updated, err := s.LeaveRequestRepository.UpdatePending(ctx, leave.LeaveRequest{
		ID:          req.RequestID,
		UserID:      req.UserID,
		LeaveTypeID: leaveTypeID,
		StartDate:   startDate,
		EndDate:     endDate,
		Reason:      req.Reason,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !updated {
		return leave.LeaveRequestResponse{}, s.explainEditMiss(ctx, req.RequestID, req.UserID)
	}

	return s.load(ctx, req.RequestID)
}

// explainEditMiss reads the row after a guarded update matched nothing.
func (s *LeaveServiceImpl) explainEditMiss(ctx context.Context, requestID, userID int64) error {
	existing, err := s.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return user.ErrInsufficientPermissions
	}
	return leave.ErrLeaveRequestAlreadyProcessed
}

// Delete implements leave.LeaveService.
func (s *LeaveServiceImpl) Delete(ctx context.Context, requestID int64, userID int64) error {
	deleted, err := s.LeaveRequestRepository.DeletePending(ctx, requestID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return leave.ErrLeaveRequestNotFoundOrImmutable
	}
	return nil
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context, userID int64) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.LeaveRequestRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toResponses(requests), nil
}

// ListForManager implements leave.LeaveService.
func (s *LeaveServiceImpl) ListForManager(ctx context.Context, managerName string) ([]leave.LeaveRequestResponse, error) {
	manager, err := s.Repository.ResolveUser(ctx, managerName)
	if err != nil {
		return nil, err
	}
	if manager.RoleName != user.RoleManager {
		return nil, user.ErrManagerAccessRequired
	}

	requests, err := s.LeaveRequestRepository.ListByManager(ctx, manager.ID)
	if err != nil {
		return nil, err
	}
	return toResponses(requests), nil
}

// Process implements leave.LeaveService. Approval also writes attendance for
// every covered day, inside the same transaction as the status change.
func (s *LeaveServiceImpl) Process(ctx context.Context, req leave.ProcessLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	statusID, err := s.Repository.StatusIDByName(ctx, req.StatusName)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if statusID == directory.StatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrCannotProcessToPending
	}

	_, processed, err := s.LeaveRequestRepository.Process(ctx, leave.ProcessParams{
		RequestID:       req.RequestID,
		StatusID:        statusID,
		ApprovedBy:      req.ApprovedBy,
		CoverAttendance: req.StatusName == directory.StatusApproved,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !processed {
		return leave.LeaveRequestResponse{}, s.explainProcessMiss(ctx, req.RequestID, req.ApprovedBy)
	}

	return s.load(ctx, req.RequestID)
}

// explainProcessMiss reads the row after a guarded process matched nothing.
// Membership is checked before state so outsiders learn nothing about it.
func (s *LeaveServiceImpl) explainProcessMiss(ctx context.Context, requestID, approvedBy int64) error {
	existing, err := s.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if existing.OwnerManagerID == nil || *existing.OwnerManagerID != approvedBy {
		return leave.ErrNotDirectReport
	}
	return leave.ErrLeaveRequestAlreadyProcessed
}

func (s *LeaveServiceImpl) load(ctx context.Context, requestID int64) (leave.LeaveRequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveRequestResponse{}, err
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to load leave request: %w", err)
	}
	return leave.NewLeaveRequestResponse(request), nil
}

func toResponses(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(r))
	}
	return responses
}
