package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/directory"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type directoryRepositoryImpl struct {
	db *database.DB
}

func NewDirectoryRepository(db *database.DB) directory.Repository {
	return &directoryRepositoryImpl{db: db}
}

// ResolveUser implements directory.Repository. users.name is unique; the
// ORDER BY keeps the answer stable on databases created before that constraint.
func (d *directoryRepositoryImpl) ResolveUser(ctx context.Context, name string) (directory.UserRef, error) {
	q := GetQuerier(ctx, d.db)
	query := `
		SELECT u.user_id, u.role_id, r.role_name
		FROM users u
		JOIN roles r ON r.role_id = u.role_id
		WHERE u.name = $1
		ORDER BY u.user_id
		LIMIT 1
	`

	var ref directory.UserRef
	err := q.QueryRow(ctx, query, name).Scan(&ref.ID, &ref.RoleID, &ref.RoleName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return directory.UserRef{}, directory.ErrUserNotFound
		}
		return directory.UserRef{}, fmt.Errorf("failed to resolve user: %w", err)
	}
	return ref, nil
}

// RoleIDByName implements directory.Repository.
func (d *directoryRepositoryImpl) RoleIDByName(ctx context.Context, roleName string) (int64, error) {
	return d.lookupID(ctx, `SELECT role_id FROM roles WHERE role_name = $1`, roleName, directory.ErrRoleNotFound)
}

// LeaveTypeIDByName implements directory.Repository.
func (d *directoryRepositoryImpl) LeaveTypeIDByName(ctx context.Context, leaveTypeName string) (int64, error) {
	return d.lookupID(ctx, `SELECT leave_type_id FROM leave_types WHERE leave_type_name = $1`, leaveTypeName, directory.ErrLeaveTypeNotFound)
}

// StatusIDByName implements directory.Repository.
func (d *directoryRepositoryImpl) StatusIDByName(ctx context.Context, statusName string) (int64, error) {
	return d.lookupID(ctx, `SELECT processed_status_id FROM leave_status WHERE status_name = $1`, statusName, directory.ErrLeaveStatusNotFound)
}

func (d *directoryRepositoryImpl) lookupID(ctx context.Context, query string, name string, notFound error) (int64, error) {
	q := GetQuerier(ctx, d.db)

	var id int64
	if err := q.QueryRow(ctx, query, name).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, notFound
		}
		return 0, fmt.Errorf("directory lookup failed: %w", err)
	}
	return id, nil
}

// ListRoles implements directory.Repository.
func (d *directoryRepositoryImpl) ListRoles(ctx context.Context) ([]directory.Role, error) {
	q := GetQuerier(ctx, d.db)

	rows, err := q.Query(ctx, `SELECT role_id, role_name FROM roles ORDER BY role_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	roles := []directory.Role{}
	for rows.Next() {
		var role directory.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// ListLeaveTypes implements directory.Repository.
func (d *directoryRepositoryImpl) ListLeaveTypes(ctx context.Context) ([]directory.LeaveType, error) {
	q := GetQuerier(ctx, d.db)

	rows, err := q.Query(ctx, `SELECT leave_type_id, leave_type_name FROM leave_types ORDER BY leave_type_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	defer rows.Close()

	types := []directory.LeaveType{}
	for rows.Next() {
		var lt directory.LeaveType
		if err := rows.Scan(&lt.ID, &lt.Name); err != nil {
			return nil, err
		}
		types = append(types, lt)
	}
	return types, rows.Err()
}

// ListLeaveStatuses implements directory.Repository.
func (d *directoryRepositoryImpl) ListLeaveStatuses(ctx context.Context) ([]directory.LeaveStatus, error) {
	q := GetQuerier(ctx, d.db)

	rows, err := q.Query(ctx, `SELECT processed_status_id, status_name FROM leave_status ORDER BY processed_status_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave statuses: %w", err)
	}
	defer rows.Close()

	statuses := []directory.LeaveStatus{}
	for rows.Next() {
		var st directory.LeaveStatus
		if err := rows.Scan(&st.ID, &st.Name); err != nil {
			return nil, err
		}
		statuses = append(statuses, st)
	}
	return statuses, rows.Err()
}
