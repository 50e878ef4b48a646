package fixtures

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/directory"
	"github.com/cmlabs-hris/leave-tracker/internal/domain/user"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/database"
)

// ==========================================
// DEFAULT VOCABULARIES
// ==========================================

// DefaultRoles are the roles every installation needs.
func DefaultRoles() []string {
	return []string{string(user.RoleEmployee), string(user.RoleManager), string(user.RoleAdmin)}
}

// DefaultLeaveTypes double as attendance statuses, so Present comes first.
func DefaultLeaveTypes() []string {
	return []string{directory.LeaveTypePresent, "Sick", "Vacation"}
}

// DefaultLeaveStatuses carry fixed ids: 0 is the pending sentinel.
func DefaultLeaveStatuses() []directory.LeaveStatus {
	return []directory.LeaveStatus{
		{ID: directory.StatusPending, Name: "Pending"},
		{ID: 1, Name: directory.StatusApproved},
		{ID: 2, Name: "Denied"},
	}
}

// ==========================================
// SEEDING
// ==========================================

// SeedVocabularies inserts the default roles, leave types and statuses.
// Rows that already exist are left alone, so it is safe to run repeatedly.
func SeedVocabularies(ctx context.Context, q database.Querier) error {
	for _, name := range DefaultRoles() {
		if _, err := q.Exec(ctx, `INSERT INTO roles (role_name) VALUES ($1) ON CONFLICT (role_name) DO NOTHING`, name); err != nil {
			return fmt.Errorf("failed to seed role %s: %w", name, err)
		}
	}

	for _, name := range DefaultLeaveTypes() {
		if _, err := q.Exec(ctx, `INSERT INTO leave_types (leave_type_name) VALUES ($1) ON CONFLICT (leave_type_name) DO NOTHING`, name); err != nil {
			return fmt.Errorf("failed to seed leave type %s: %w", name, err)
		}
	}

	for _, status := range DefaultLeaveStatuses() {
		if _, err := q.Exec(ctx,
			`INSERT INTO leave_status (processed_status_id, status_name) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			status.ID, status.Name,
		); err != nil {
			return fmt.Errorf("failed to seed leave status %s: %w", status.Name, err)
		}
	}

	return nil
}
