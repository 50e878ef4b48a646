package master

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/directory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	directory.Repository
	err error
}

func (f *fakeDirectory) ListRoles(ctx context.Context) ([]directory.Role, error) {
	return []directory.Role{{ID: 1, Name: "Employee"}, {ID: 2, Name: "Manager"}, {ID: 3, Name: "Admin"}}, f.err
}

func (f *fakeDirectory) ListLeaveTypes(ctx context.Context) ([]directory.LeaveType, error) {
	return []directory.LeaveType{{ID: 1, Name: "Present"}, {ID: 2, Name: "Sick"}}, f.err
}

func (f *fakeDirectory) ListLeaveStatuses(ctx context.Context) ([]directory.LeaveStatus, error) {
	return []directory.LeaveStatus{{ID: 0, Name: "Pending"}, {ID: 1, Name: "Approved"}}, f.err
}

func TestMasterService_Lists(t *testing.T) {
	ctx := context.Background()
	svc := NewMasterService(&fakeDirectory{})

	roles, err := svc.ListRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 3)

	leaveTypes, err := svc.ListLeaveTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Present", leaveTypes[0].Name)

	statuses, err := svc.ListLeaveStatuses(ctx)
	require.NoError(t, err)
	assert.Equal(t, directory.StatusPending, statuses[0].ID)
}

func TestMasterService_WrapsRepositoryErrors(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewMasterService(&fakeDirectory{err: boom})

	_, err := svc.ListRoles(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = svc.ListLeaveTypes(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = svc.ListLeaveStatuses(context.Background())
	assert.ErrorIs(t, err, boom)
}
