package user

import (
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        int64  `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ManagerID *int64 `json:"manager_id,omitempty"`
}

// CreateUserRequest represents request to provision a new user
type CreateUserRequest struct {
	Name        string  `json:"name" validate:"notblank,max=255"`
	Email       string  `json:"email" validate:"required,email,max=254"`
	Password    string  `json:"password" validate:"required,min=8,max=72"`
	RoleName    string  `json:"role" validate:"notblank"`
	ManagerName *string `json:"manager_name,omitempty" validate:"omitnil,notblank"`
}

func (r *CreateUserRequest) Validate() error {
	return validator.Struct(r)
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.RoleName),
		ManagerID: u.ManagerID,
	}
}
