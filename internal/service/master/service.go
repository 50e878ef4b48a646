package master

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/directory"
)

type masterServiceImpl struct {
	directoryRepo directory.Repository
}

func NewMasterService(directoryRepo directory.Repository) directory.Service {
	return &masterServiceImpl{
		directoryRepo: directoryRepo,
	}
}

func (s *masterServiceImpl) ListRoles(ctx context.Context) ([]directory.Role, error) {
	roles, err := s.directoryRepo.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

func (s *masterServiceImpl) ListLeaveTypes(ctx context.Context) ([]directory.LeaveType, error) {
	leaveTypes, err := s.directoryRepo.ListLeaveTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	return leaveTypes, nil
}

func (s *masterServiceImpl) ListLeaveStatuses(ctx context.Context) ([]directory.LeaveStatus, error) {
	statuses, err := s.directoryRepo.ListLeaveStatuses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave statuses: %w", err)
	}
	return statuses, nil
}
