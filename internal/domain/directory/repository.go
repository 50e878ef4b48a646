package directory

import "context"

// Repository resolves human-facing names into storage keys. Every lookup is
// a bound-parameter query and fails with the matching NotFound error when no
// row exists.
type Repository interface {
	ResolveUser(ctx context.Context, name string) (UserRef, error)
	RoleIDByName(ctx context.Context, roleName string) (int64, error)
	LeaveTypeIDByName(ctx context.Context, leaveTypeName string) (int64, error)
	StatusIDByName(ctx context.Context, statusName string) (int64, error)

	ListRoles(ctx context.Context) ([]Role, error)
	ListLeaveTypes(ctx context.Context) ([]LeaveType, error)
	ListLeaveStatuses(ctx context.Context) ([]LeaveStatus, error)
}

// Service exposes the closed vocabularies to clients.
type Service interface {
	ListRoles(ctx context.Context) ([]Role, error)
	ListLeaveTypes(ctx context.Context) ([]LeaveType, error)
	ListLeaveStatuses(ctx context.Context) ([]LeaveStatus, error)
}
