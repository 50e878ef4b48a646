package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/directory"
	"github.com/cmlabs-hris/leave-tracker/internal/domain/user"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/database"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	user.UserRepository
	directory.Repository
}

func NewUserService(userRepository user.UserRepository, directoryRepository directory.Repository) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepository,
		Repository:     directoryRepository,
	}
}

func (s *UserServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CreateUser implements user.UserService. A new account has no reports yet,
// so assigning its manager cannot close a cycle in the reporting tree.
func (s *UserServiceImpl) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	roleID, err := s.Repository.RoleIDByName(ctx, req.RoleName)
	if err != nil {
		return user.UserResponse{}, err
	}

	var managerID *int64
	if req.ManagerName != nil {
		manager, err := s.Repository.ResolveUser(ctx, strings.TrimSpace(*req.ManagerName))
		if err != nil {
			return user.UserResponse{}, err
		}
		if manager.RoleName != user.RoleManager {
			return user.UserResponse{}, validator.ValidationErrors{{
				Field:   "manager_name",
				Message: "manager_name must name a user with the Manager role",
			}}
		}
		managerID = &manager.ID
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		RoleID:       roleID,
		ManagerID:    managerID,
	})
	if err != nil {
		if constraint, ok := database.UniqueViolation(err); ok {
			// Names are lookup keys for leave filing, so they are unique too.
			if constraint == "users_name_key" {
				return user.UserResponse{}, user.ErrUserNameExists
			}
			return user.UserResponse{}, user.ErrUserEmailExists
		}
		return user.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user.NewUserResponse(created), nil
}
