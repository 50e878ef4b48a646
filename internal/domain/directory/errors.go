package directory

import "errors"

var (
	ErrUserNotFound        = errors.New("no user with that name")
	ErrRoleNotFound        = errors.New("role not found")
	ErrLeaveTypeNotFound   = errors.New("leave type not found")
	ErrLeaveStatusNotFound = errors.New("leave status not found")
)
