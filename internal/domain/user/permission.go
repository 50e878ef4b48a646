package user

type Permission string

const (
	// Attendance
	PermissionAttendanceMark    Permission = "attendance.mark"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceReport  Permission = "attendance.report"

	// Leave
	PermissionLeaveCreate   Permission = "leave.create"
	PermissionLeaveViewOwn  Permission = "leave.view_own"
	PermissionLeaveViewTeam Permission = "leave.view_team"
	PermissionLeaveProcess  Permission = "leave.process"

	// User Management
	PermissionUserManage Permission = "user.manage"
)

var selfService = []Permission{
	PermissionAttendanceMark,
	PermissionAttendanceViewOwn,
	PermissionAttendanceReport,
	PermissionLeaveCreate,
	PermissionLeaveViewOwn,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleEmployee: selfService,
	RoleManager: append(append([]Permission{}, selfService...),
		PermissionLeaveViewTeam,
		PermissionLeaveProcess,
	),
	RoleAdmin: append(append([]Permission{}, selfService...),
		PermissionUserManage,
	),
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
