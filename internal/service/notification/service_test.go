package notification

import (
	"context"
	"testing"

	"github.com/crewtrack/crewtrack-backend-go/internal/domain/notification"
	"github.com/crewtrack/crewtrack-backend-go/internal/domain/timesheet"
	"github.com/crewtrack/crewtrack-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	managers    []user.User
	clientUsers map[string][]user.User
	byEmployee  map[string]user.User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	return newUser, nil
}

func (f *fakeUserRepo) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	if role == user.RoleManager {
		return f.managers, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) ListByClientID(ctx context.Context, clientID string) ([]user.User, error) {
	return f.clientUsers[clientID], nil
}

func (f *fakeUserRepo) GetByEmployeeID(ctx context.Context, employeeID string) (user.User, error) {
	u, ok := f.byEmployee[employeeID]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func testEvent(action timesheet.Action) notification.TransitionEvent {
	clientID := "client-1"
	chiefEmployeeID := "employee-1"
	return notification.TransitionEvent{
		Action:              action,
		TimesheetID:         "ts-1",
		ShiftID:             "shift-1",
		JobName:             "Warehouse Setup",
		ClientName:          "Acme Events",
		ShiftDate:           "2025-06-14",
		ClientID:            &clientID,
		CrewChiefEmployeeID: &chiefEmployeeID,
	}
}

func newTestService() *service {
	repo := &fakeUserRepo{
		managers: []user.User{{ID: "manager-user"}},
		clientUsers: map[string][]user.User{
			"client-1": {{ID: "client-user-a"}, {ID: "client-user-b"}},
		},
		byEmployee: map[string]user.User{
			"employee-1": {ID: "chief-user", Role: user.RoleCrewChief},
		},
	}
	return &service{userRepo: repo}
}

func TestResolveRecipients(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	cases := []struct {
		action timesheet.Action
		want   []string
	}{
		{timesheet.ActionFinalize, []string{"client-user-a", "client-user-b", "manager-user"}},
		{timesheet.ActionResubmit, []string{"client-user-a", "client-user-b", "manager-user"}},
		{timesheet.ActionClientApprove, []string{"manager-user"}},
		{timesheet.ActionManagerApprove, []string{"client-user-a", "client-user-b", "chief-user"}},
		{timesheet.ActionReject, []string{"chief-user", "manager-user"}},
	}

	for _, c := range cases {
		t.Run(string(c.action), func(t *testing.T) {
			recipients, err := s.resolveRecipients(ctx, testEvent(c.action))
			require.NoError(t, err)

			got := make([]string, 0, len(recipients))
			for id := range recipients {
				got = append(got, id)
			}
			assert.ElementsMatch(t, c.want, got)
		})
	}
}

func TestResolveRecipientsWithoutCrewChiefAccount(t *testing.T) {
	s := newTestService()
	event := testEvent(timesheet.ActionReject)
	missing := "employee-without-login"
	event.CrewChiefEmployeeID = &missing

	recipients, err := s.resolveRecipients(context.Background(), event)
	require.NoError(t, err)

	_, hasChief := recipients["chief-user"]
	assert.False(t, hasChief)
	_, hasManager := recipients["manager-user"]
	assert.True(t, hasManager)
}

func TestResolveRecipientsSkipsNonChiefLogin(t *testing.T) {
	s := newTestService()
	repo := s.userRepo.(*fakeUserRepo)
	repo.byEmployee["employee-2"] = user.User{ID: "worker-user", Role: user.RoleClient}

	event := testEvent(timesheet.ActionReject)
	workerEmployee := "employee-2"
	event.CrewChiefEmployeeID = &workerEmployee

	recipients, err := s.resolveRecipients(context.Background(), event)
	require.NoError(t, err)

	_, hasWorker := recipients["worker-user"]
	assert.False(t, hasWorker)
}

func TestExpandBuildsOneNotificationPerRecipient(t *testing.T) {
	s := newTestService()

	notifications, err := s.expand(context.Background(), testEvent(timesheet.ActionReject))
	require.NoError(t, err)
	require.Len(t, notifications, 2)

	for _, n := range notifications {
		assert.NotEmpty(t, n.ID)
		assert.Equal(t, notification.TypeTimesheetRejected, n.Type)
		assert.Equal(t, "ts-1", n.Data["timesheet_id"])
		assert.False(t, n.IsRead)
	}
}

func TestComposeContent(t *testing.T) {
	reason := "hours look wrong"
	event := testEvent(timesheet.ActionReject)
	event.Reason = &reason

	notificationType, title, message := composeContent(event)
	assert.Equal(t, notification.TypeTimesheetRejected, notificationType)
	assert.Equal(t, "Timesheet rejected", title)
	assert.Contains(t, message, "Warehouse Setup on 2025-06-14")
	assert.Contains(t, message, reason)

	notificationType, _, message = composeContent(testEvent(timesheet.ActionManagerApprove))
	assert.Equal(t, notification.TypeTimesheetCompleted, notificationType)
	assert.Contains(t, message, "completed")

	notificationType, _, _ = composeContent(testEvent(timesheet.ActionFinalize))
	assert.Equal(t, notification.TypeTimesheetSubmitted, notificationType)

	notificationType, _, _ = composeContent(testEvent(timesheet.ActionClientApprove))
	assert.Equal(t, notification.TypeTimesheetClientApproved, notificationType)
}
