package directory

import "github.com/cmlabs-hris/leave-tracker/internal/domain/user"

// StatusPending is the processed status of every request that has not been
// approved or denied yet.
const StatusPending int64 = 0

// Vocabulary names the lifecycle depends on.
const (
	LeaveTypePresent = "Present"
	StatusApproved   = "Approved"
)

type Role struct {
	ID   int64  `json:"role_id"`
	Name string `json:"role_name"`
}

type LeaveType struct {
	ID   int64  `json:"leave_type_id"`
	Name string `json:"leave_type_name"`
}

type LeaveStatus struct {
	ID   int64  `json:"processed_status_id"`
	Name string `json:"status_name"`
}

// UserRef is the result of resolving a user by name.
type UserRef struct {
	ID       int64
	RoleID   int64
	RoleName user.Role
}
