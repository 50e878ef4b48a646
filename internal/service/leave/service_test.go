package leave

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/directory"
	"github.com/cmlabs-hris/leave-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/leave-tracker/internal/domain/user"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testUser struct {
	id        int64
	name      string
	role      user.Role
	managerID *int64
}

// store is a single-mutex stand-in for the database: every method runs as
// one atomic statement, which is the guarantee the real repository relies on.
type store struct {
	mu         sync.Mutex
	users      []testUser
	leaveTypes map[string]int64
	statuses   map[string]int64
	requests   map[int64]leave.LeaveRequest
	nextID     int64
	clock      time.Time
	attendance map[int64]map[string]int64 // user -> date -> status
}

func int64Ptr(v int64) *int64 { return &v }

func newStore() *store {
	return &store{
		users: []testUser{
			{id: 1, name: "Root", role: user.RoleAdmin},
			{id: 2, name: "Mona", role: user.RoleManager},
			{id: 3, name: "Alice", role: user.RoleEmployee, managerID: int64Ptr(2)},
			{id: 4, name: "Bob", role: user.RoleEmployee, managerID: int64Ptr(2)},
			{id: 5, name: "Carol", role: user.RoleEmployee, managerID: int64Ptr(6)},
			{id: 6, name: "Max", role: user.RoleManager},
		},
		leaveTypes: map[string]int64{"Present": 1, "Sick": 2, "Vacation": 3},
		statuses:   map[string]int64{"Pending": 0, "Approved": 1, "Denied": 2},
		requests:   make(map[int64]leave.LeaveRequest),
		clock:      time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC),
		attendance: make(map[int64]map[string]int64),
	}
}

func (s *store) userByID(id int64) (testUser, bool) {
	for _, u := range s.users {
		if u.id == id {
			return u, true
		}
	}
	return testUser{}, false
}

func (s *store) hydrate(r leave.LeaveRequest) leave.LeaveRequest {
	if u, ok := s.userByID(r.UserID); ok {
		name := u.name
		r.UserName = &name
		r.OwnerManagerID = u.managerID
	}
	for name, id := range s.leaveTypes {
		if id == r.LeaveTypeID {
			n := name
			r.LeaveTypeName = &n
		}
	}
	for name, id := range s.statuses {
		if id == r.ProcessedStatusID {
			n := name
			r.StatusName = &n
		}
	}
	return r
}

func (s *store) sorted(keep func(leave.LeaveRequest) bool) []leave.LeaveRequest {
	result := []leave.LeaveRequest{}
	for _, r := range s.requests {
		if keep(r) {
			result = append(result, s.hydrate(r))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].SubmittedAt.Equal(result[j].SubmittedAt) {
			return result[i].SubmittedAt.After(result[j].SubmittedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result
}

// leave.LeaveRequestRepository

func (s *store) Create(ctx context.Context, r leave.LeaveRequest) (leave.LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.clock = s.clock.Add(time.Minute)
	r.ID = s.nextID
	r.ProcessedStatusID = directory.StatusPending
	r.SubmittedAt = s.clock
	s.requests[r.ID] = r
	return r, nil
}

func (s *store) GetByID(ctx context.Context, id int64) (leave.LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return s.hydrate(r), nil
}

func (s *store) ListByUser(ctx context.Context, userID int64) ([]leave.LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted(func(r leave.LeaveRequest) bool { return r.UserID == userID }), nil
}

func (s *store) ListByManager(ctx context.Context, managerID int64) ([]leave.LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted(func(r leave.LeaveRequest) bool {
		u, _ := s.userByID(r.UserID)
		return u.managerID != nil && *u.managerID == managerID
	}), nil
}

func (s *store) UpdatePending(ctx context.Context, r leave.LeaveRequest) (leave.LeaveRequest, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.requests[r.ID]
	if !ok || existing.UserID != r.UserID || !existing.IsPending() {
		return leave.LeaveRequest{}, false, nil
	}
	existing.LeaveTypeID = r.LeaveTypeID
	existing.StartDate = r.StartDate
	existing.EndDate = r.EndDate
	existing.Reason = r.Reason
	s.requests[r.ID] = existing
	return existing, true, nil
}

func (s *store) DeletePending(ctx context.Context, id int64, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.requests[id]
	if !ok || existing.UserID != userID || !existing.IsPending() {
		return false, nil
	}
	delete(s.requests, id)
	return true, nil
}

func (s *store) Process(ctx context.Context, p leave.ProcessParams) (leave.LeaveRequest, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.requests[p.RequestID]
	if !ok || !existing.IsPending() {
		return leave.LeaveRequest{}, false, nil
	}
	owner, _ := s.userByID(existing.UserID)
	if owner.managerID == nil || *owner.managerID != p.ApprovedBy {
		return leave.LeaveRequest{}, false, nil
	}
	s.clock = s.clock.Add(time.Minute)
	processedAt := s.clock
	existing.ProcessedStatusID = p.StatusID
	existing.ApprovedBy = int64Ptr(p.ApprovedBy)
	existing.ProcessedAt = &processedAt
	s.requests[p.RequestID] = existing

	if p.CoverAttendance {
		days := s.attendance[existing.UserID]
		if days == nil {
			days = make(map[string]int64)
			s.attendance[existing.UserID] = days
		}
		for d := existing.StartDate; !d.After(existing.EndDate); d = d.AddDate(0, 0, 1) {
			key := d.Format(validator.DateLayout)
			if _, marked := days[key]; !marked {
				days[key] = existing.LeaveTypeID
			}
		}
	}
	return existing, true, nil
}

// directory.Repository

func (s *store) ResolveUser(ctx context.Context, name string) (directory.UserRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.name == name {
			return directory.UserRef{ID: u.id, RoleName: u.role}, nil
		}
	}
	return directory.UserRef{}, directory.ErrUserNotFound
}

func (s *store) RoleIDByName(ctx context.Context, roleName string) (int64, error) {
	return 0, directory.ErrRoleNotFound
}

func (s *store) LeaveTypeIDByName(ctx context.Context, name string) (int64, error) {
	if id, ok := s.leaveTypes[name]; ok {
		return id, nil
	}
	return 0, directory.ErrLeaveTypeNotFound
}

func (s *store) StatusIDByName(ctx context.Context, name string) (int64, error) {
	if id, ok := s.statuses[name]; ok {
		return id, nil
	}
	return 0, directory.ErrLeaveStatusNotFound
}

func (s *store) ListRoles(ctx context.Context) ([]directory.Role, error) { return nil, nil }

func (s *store) ListLeaveTypes(ctx context.Context) ([]directory.LeaveType, error) { return nil, nil }

func (s *store) ListLeaveStatuses(ctx context.Context) ([]directory.LeaveStatus, error) {
	return nil, nil
}

func newTestLeaveService() (leave.LeaveService, *store) {
	s := newStore()
	return NewLeaveService(s, s), s
}

func submitVacation(t *testing.T, svc leave.LeaveService, requester string) leave.LeaveRequestResponse {
	t.Helper()
	resp, err := svc.Submit(context.Background(), leave.SubmitLeaveRequest{
		RequesterName: requester,
		LeaveTypeName: "Vacation",
		StartDate:     "2024-01-10",
		EndDate:       "2024-01-12",
		Reason:        "trip",
	})
	require.NoError(t, err)
	return resp
}

func TestLeaveService_SubmitThenApprove(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestLeaveService()

	submitted := submitVacation(t, svc, "Alice")
	assert.Equal(t, int64(3), submitted.UserID)
	assert.Equal(t, int64(0), submitted.ProcessedStatusID)
	assert.Equal(t, "Pending", submitted.StatusName)
	assert.Equal(t, "Vacation", submitted.LeaveTypeName)
	assert.Equal(t, "2024-01-10", submitted.StartDate)
	assert.False(t, submitted.SubmittedAt.IsZero())
	assert.Nil(t, submitted.ApprovedBy)

	mine, err := svc.ListMine(ctx, 3)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, submitted.ID, mine[0].ID)
	assert.Equal(t, int64(0), mine[0].ProcessedStatusID)

	processed, err := svc.Process(ctx, leave.ProcessLeaveRequest{RequestID: submitted.ID, StatusName: "Approved", ApprovedBy: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(1), processed.ProcessedStatusID)
	assert.Equal(t, "Approved", processed.StatusName)
	require.NotNil(t, processed.ApprovedBy)
	assert.Equal(t, int64(2), *processed.ApprovedBy)
	assert.NotNil(t, processed.ProcessedAt)

	for _, status := range []string{"Approved", "Denied"} {
		_, err = svc.Process(ctx, leave.ProcessLeaveRequest{RequestID: submitted.ID, StatusName: status, ApprovedBy: 2})
		assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
	}

	// Approval covers every day of the range with the leave type.
	assert.Equal(t, map[string]int64{"2024-01-10": 3, "2024-01-11": 3, "2024-01-12": 3}, s.attendance[3])
}

func TestLeaveService_ApprovalKeepsExistingMarks(t *testing.T) {
	svc, s := newTestLeaveService()
	s.attendance[3] = map[string]int64{"2024-01-11": 1}

	submitted := submitVacation(t, svc, "Alice")
	_, err := svc.Process(context.Background(), leave.ProcessLeaveRequest{RequestID: submitted.ID, StatusName: "Approved", ApprovedBy: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(1), s.attendance[3]["2024-01-11"])
	assert.Equal(t, int64(3), s.attendance[3]["2024-01-10"])
}

func TestLeaveService_DenialWritesNoAttendance(t *testing.T) {
	svc, s := newTestLeaveService()

	submitted := submitVacation(t, svc, "Alice")
	processed, err := svc.Process(context.Background(), leave.ProcessLeaveRequest{RequestID: submitted.ID, StatusName: "Denied", ApprovedBy: 2})
	require.NoError(t, err)
	assert.Equal(t, "Denied", processed.StatusName)
	assert.Empty(t, s.attendance[3])
}

func TestLeaveService_Submit_LookupFailuresAbortBeforeWrite(t *testing.T) {
	svc, s := newTestLeaveService()
	ctx := context.Background()

	_, err := svc.Submit(ctx, leave.SubmitLeaveRequest{
		RequesterName: "Nobody", LeaveTypeName: "Vacation", StartDate: "2024-01-10", EndDate: "2024-01-12",
	})
	assert.ErrorIs(t, err, directory.ErrUserNotFound)

	_, err = svc.Submit(ctx, leave.SubmitLeaveRequest{
		RequesterName: "Alice", LeaveTypeName: "Sabbatical", StartDate: "2024-01-10", EndDate: "2024-01-12",
	})
	assert.ErrorIs(t, err, directory.ErrLeaveTypeNotFound)

	assert.Empty(t, s.requests)
}

func TestLeaveService_Submit_InvalidInput(t *testing.T) {
	svc, _ := newTestLeaveService()

	tests := []struct {
		name  string
		req   leave.SubmitLeaveRequest
		field string
	}{
		{"missing type", leave.SubmitLeaveRequest{RequesterName: "Alice", StartDate: "2024-01-10", EndDate: "2024-01-12"}, "leave_type_name"},
		{"bad date", leave.SubmitLeaveRequest{RequesterName: "Alice", LeaveTypeName: "Sick", StartDate: "2024-13-01", EndDate: "2024-01-12"}, "start_date"},
		{"reversed range", leave.SubmitLeaveRequest{RequesterName: "Alice", LeaveTypeName: "Sick", StartDate: "2024-01-12", EndDate: "2024-01-10"}, "end_date"},
		{"longer than a year", leave.SubmitLeaveRequest{RequesterName: "Alice", LeaveTypeName: "Vacation", StartDate: "2024-01-01", EndDate: "2025-01-01"}, "end_date"},
		{"whole calendar", leave.SubmitLeaveRequest{RequesterName: "Alice", LeaveTypeName: "Vacation", StartDate: "0001-01-01", EndDate: "9999-12-31"}, "end_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tt.req)
			var validationErrs validator.ValidationErrors
			require.ErrorAs(t, err, &validationErrs)
			assert.Contains(t, validationErrs.ToMap(), tt.field)
		})
	}
}

func TestLeaveService_EditWhilePending(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLeaveService()
	submitted := submitVacation(t, svc, "Alice")

	edited, err := svc.Edit(ctx, leave.EditLeaveRequest{
		RequestID: submitted.ID, UserID: 3, LeaveTypeName: "Sick",
		StartDate: "2024-01-11", EndDate: "2024-01-11", Reason: "flu",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sick", edited.LeaveTypeName)
	assert.Equal(t, "2024-01-11", edited.StartDate)
	assert.Equal(t, "flu", edited.Reason)
	assert.Equal(t, int64(0), edited.ProcessedStatusID)
}

func TestLeaveService_Edit_RequiresAllFields(t *testing.T) {
	svc, _ := newTestLeaveService()
	submitted := submitVacation(t, svc, "Alice")

	_, err := svc.Edit(context.Background(), leave.EditLeaveRequest{
		RequestID: submitted.ID, UserID: 3, LeaveTypeName: "Sick", StartDate: "2024-01-11", EndDate: "2024-01-11",
	})
	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "reason")
}

func TestLeaveService_EditAndDeleteAfterProcessing(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestLeaveService()
	submitted := submitVacation(t, svc, "Alice")

	_, err := svc.Process(ctx, leave.ProcessLeaveRequest{RequestID: submitted.ID, StatusName: "Denied", ApprovedBy: 2})
	require.NoError(t, err)

	_, err = svc.Edit(ctx, leave.EditLeaveRequest{
		RequestID: submitted.ID, UserID: 3, LeaveTypeName: "Sick",
		StartDate: "2024-01-11", EndDate: "2024-01-11", Reason: "flu",
	})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	err = svc.Delete(ctx, submitted.ID, 3)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFoundOrImmutable)
	assert.Contains(t, s.requests, submitted.ID)
}

func TestLeaveService_EditOtherUsersRequest(t *testing.T) {
	svc, _ := newTestLeaveService()
	submitted := submitVacation(t, svc, "Alice")

	_, err := svc.Edit(context.Background(), leave.EditLeaveRequest{
		RequestID: submitted.ID, UserID: 4, LeaveTypeName: "Sick",
		StartDate: "2024-01-11", EndDate: "2024-01-11", Reason: "mine now",
	})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestLeaveService_EditMissingRequest(t *testing.T) {
	svc, _ := newTestLeaveService()

	_, err := svc.Edit(context.Background(), leave.EditLeaveRequest{
		RequestID: 99, UserID: 3, LeaveTypeName: "Sick",
		StartDate: "2024-01-11", EndDate: "2024-01-11", Reason: "flu",
	})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestLeaveService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestLeaveService()
	submitted := submitVacation(t, svc, "Alice")

	assert.ErrorIs(t, svc.Delete(ctx, submitted.ID, 4), leave.ErrLeaveRequestNotFoundOrImmutable)
	require.NoError(t, svc.Delete(ctx, submitted.ID, 3))
	assert.NotContains(t, s.requests, submitted.ID)
	assert.ErrorIs(t, svc.Delete(ctx, submitted.ID, 3), leave.ErrLeaveRequestNotFoundOrImmutable)
}

func TestLeaveService_ListMine_NewestFirst(t *testing.T) {
	svc, _ := newTestLeaveService()
	first := submitVacation(t, svc, "Alice")
	second := submitVacation(t, svc, "Alice")
	submitVacation(t, svc, "Bob")

	mine, err := svc.ListMine(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)
}

func TestLeaveService_ListForManager(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLeaveService()
	alice := submitVacation(t, svc, "Alice")
	bob := submitVacation(t, svc, "Bob")
	submitVacation(t, svc, "Carol")

	team, err := svc.ListForManager(ctx, "Mona")
	require.NoError(t, err)
	require.Len(t, team, 2)
	assert.Equal(t, bob.ID, team[0].ID)
	assert.Equal(t, alice.ID, team[1].ID)

	_, err = svc.ListForManager(ctx, "Alice")
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)

	_, err = svc.ListForManager(ctx, "Nobody")
	assert.ErrorIs(t, err, directory.ErrUserNotFound)
}

func TestLeaveService_Process_UnknownStatusLeavesRowUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestLeaveService()
	submitted := submitVacation(t, svc, "Alice")

	_, err := svc.Process(ctx, leave.ProcessLeaveRequest{RequestID: submitted.ID, StatusName: "Maybe", ApprovedBy: 2})
	assert.ErrorIs(t, err, directory.ErrLeaveStatusNotFound)
	assert.True(t, s.requests[submitted.ID].IsPending())
	assert.Nil(t, s.requests[submitted.ID].ApprovedBy)
}

func TestLeaveService_Process_BackToPendingRejected(t *testing.T) {
	svc, s := newTestLeaveService()
	submitted := submitVacation(t, svc, "Alice")

	_, err := svc.Process(context.Background(), leave.ProcessLeaveRequest{RequestID: submitted.ID, StatusName: "Pending", ApprovedBy: 2})
	assert.ErrorIs(t, err, leave.ErrCannotProcessToPending)
	assert.Nil(t, s.requests[submitted.ID].ApprovedBy)
}

func TestLeaveService_Process_OnlyOwnDirectReports(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestLeaveService()
	carol := submitVacation(t, svc, "Carol")

	_, err := svc.Process(ctx, leave.ProcessLeaveRequest{RequestID: carol.ID, StatusName: "Approved", ApprovedBy: 2})
	assert.ErrorIs(t, err, leave.ErrNotDirectReport)
	assert.True(t, s.requests[carol.ID].IsPending())

	_, err = svc.Process(ctx, leave.ProcessLeaveRequest{RequestID: 404, StatusName: "Approved", ApprovedBy: 2})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestLeaveService_Process_ConcurrentCallsYieldOneSuccess(t *testing.T) {
	svc, s := newTestLeaveService()
	submitted := submitVacation(t, svc, "Alice")

	const callers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		already   int
	)
	for i := 0; i < callers; i++ {
		status := "Approved"
		if i%2 == 1 {
			status = "Denied"
		}
		wg.Add(1)
		go func(status string) {
			defer wg.Done()
			_, err := svc.Process(context.Background(), leave.ProcessLeaveRequest{RequestID: submitted.ID, StatusName: status, ApprovedBy: 2})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
				already++
			}
		}(status)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, callers-1, already)
	assert.False(t, s.requests[submitted.ID].IsPending())
}
