package user

type Role string

const (
	RoleEmployee Role = "Employee" // Marks own attendance, files own leave
	RoleManager  Role = "Manager"  // Reviews leave filed by direct reports
	RoleAdmin    Role = "Admin"    // Provisions users
)

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	RoleID       int64
	ManagerID    *int64

	// Join
	RoleName Role
}

// IsManager checks if user holds the manager role
func (u *User) IsManager() bool {
	return u.RoleName == RoleManager
}

// IsAdmin checks if user holds the admin role
func (u *User) IsAdmin() bool {
	return u.RoleName == RoleAdmin
}
