package workspace_test

import (
	"context"
	"testing"
	"time"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/mocks"
	"nexus-dashboard/internal/pkg/appctx"
	"nexus-dashboard/internal/pkg/clock"
	"nexus-dashboard/internal/service/feed"
	"nexus-dashboard/internal/service/persistence"
	"nexus-dashboard/internal/service/reconcile"
	"nexus-dashboard/internal/service/workspace"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var seed = workspace.SeedAdmin{Username: "admin", Password: "admin", Name: "Admin"}

type fixture struct {
	ws      *workspace.Workspace
	persist *mocks.Persistence
	clock   *clock.Fake
	admin   appctx.Context
}

func newFixture(t *testing.T, local, remote *domain.Snapshot) *fixture {
	t.Helper()
	if local == nil {
		local = &domain.Snapshot{}
	}
	p := new(mocks.Persistence)
	p.On("LoadLocal", mock.Anything).Return(local, nil)
	if remote != nil {
		p.On("Load", mock.Anything).Return(remote, true)
	} else {
		p.On("Load", mock.Anything).Return(nil, false)
	}
	p.On("Setting", mock.Anything, domain.SettingLanguage).Return("", nil)
	p.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	p.On("SaveSetting", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	fc := clock.NewFake(time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC))
	ws := workspace.New(p, fc)
	require.NoError(t, ws.Bootstrap(context.Background(), seed))

	var admin *domain.User
	for _, u := range ws.Users() {
		if u.Role == domain.RoleAdmin {
			u := u
			admin = &u
			break
		}
	}
	require.NotNil(t, admin)

	return &fixture{ws: ws, persist: p, clock: fc, admin: appctx.New(admin, "en", fc)}
}

func (f *fixture) worker(t *testing.T, username string) appctx.Context {
	t.Helper()
	u, err := f.ws.CreateUser(context.Background(), f.admin, domain.CreateUserInput{
		Username: username, Password: "pw", Name: username, Role: domain.RoleWorker,
	})
	require.NoError(t, err)
	return appctx.New(u, "en", f.clock)
}

func TestBootstrap_SeedsAdmin(t *testing.T) {
	f := newFixture(t, nil, nil)

	users := f.ws.Users()
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)
	assert.Equal(t, domain.RoleAdmin, users[0].Role)
	f.persist.AssertCalled(t, "Save", mock.Anything, domain.PartitionUsers, mock.Anything)
}

func TestBootstrap_RemoteWinsPerPartition(t *testing.T) {
	local := &domain.Snapshot{
		Projects: []domain.Project{{ID: "local-p", Name: "Local"}},
		Users:    []domain.User{{ID: "u1", Username: "boss", Role: domain.RoleAdmin}},
	}
	remote := &domain.Snapshot{
		Projects: []domain.Project{{ID: "remote-p", Name: "Remote", Clients: []domain.Sale{{ID: "c1", ClientName: "Ali"}}}},
	}
	f := newFixture(t, local, remote)

	projects := f.ws.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, "Remote", projects[0].Name)
	require.Len(t, projects[0].Clients, 1)
	assert.Equal(t, domain.StatusLead, projects[0].Clients[0].Status)
	assert.NotNil(t, projects[0].Clients[0].Items)

	users := f.ws.Users()
	require.Len(t, users, 1)
	assert.Equal(t, "boss", users[0].Username)
	f.persist.AssertNotCalled(t, "Save", mock.Anything, domain.PartitionUsers, mock.Anything)
}

func TestCreateProject_ValidationBlocksMutation(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	rev := f.ws.Revision()

	_, err := f.ws.CreateProject(ctx, f.admin, domain.CreateProjectInput{Name: "  ", Cost: 10})
	assert.ErrorIs(t, err, workspace.ErrEmptyProjectName)

	_, err = f.ws.CreateProject(ctx, f.admin, domain.CreateProjectInput{Name: "Summer", Cost: -1})
	assert.ErrorIs(t, err, workspace.ErrNegativeCost)

	assert.Empty(t, f.ws.Projects())
	assert.Equal(t, rev, f.ws.Revision())
	f.persist.AssertNotCalled(t, "Save", mock.Anything, domain.PartitionProjects, mock.Anything)
}

func TestClients_SequenceAndItems(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	p, err := f.ws.CreateProject(ctx, f.admin, domain.CreateProjectInput{Name: "Eid", Cost: 300})
	require.NoError(t, err)

	first, err := f.ws.CreateClient(ctx, f.admin, p.ID, domain.SaleInput{ClientName: "Ali", Price: 100, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, first.SequenceNumber)
	assert.Equal(t, domain.StatusLead, first.Status)
	assert.Equal(t, domain.NewDate(f.clock.Now()), first.LeadDate)
	require.Len(t, first.Items, 3)
	assert.Equal(t, "Task 1", first.Items[0].Name)
	assert.Equal(t, domain.ItemPending, first.Items[2].Status)

	second, err := f.ws.CreateClient(ctx, f.admin, p.ID, domain.SaleInput{ClientName: "Mona", Price: 50, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, second.SequenceNumber)

	require.NoError(t, f.ws.DeleteClient(ctx, p.ID, first.ID))
	third, err := f.ws.CreateClient(ctx, f.admin, p.ID, domain.SaleInput{ClientName: "Omar", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, third.SequenceNumber)

	_, err = f.ws.CreateClient(ctx, f.admin, p.ID, domain.SaleInput{ClientName: "", Price: 10})
	assert.ErrorIs(t, err, workspace.ErrEmptyClientName)
	_, err = f.ws.CreateClient(ctx, f.admin, p.ID, domain.SaleInput{ClientName: "Neg", Price: -5})
	assert.ErrorIs(t, err, workspace.ErrNegativePrice)
	_, err = f.ws.CreateClient(ctx, f.admin, "missing", domain.SaleInput{ClientName: "X"})
	assert.ErrorIs(t, err, workspace.ErrProjectNotFound)

	project, err := f.ws.Project(p.ID)
	require.NoError(t, err)
	assert.Len(t, project.Clients, 2)
}

func TestUpdateClient_PreservesIdentity(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	p, _ := f.ws.CreateProject(ctx, f.admin, domain.CreateProjectInput{Name: "Eid"})
	c, err := f.ws.CreateClient(ctx, f.admin, p.ID, domain.SaleInput{ClientName: "Ali", Price: 100, Quantity: 2})
	require.NoError(t, err)
	_, err = f.ws.ToggleItemPaid(ctx, p.ID, c.ID, 0)
	require.NoError(t, err)

	updated, err := f.ws.UpdateClient(ctx, f.admin, p.ID, c.ID, domain.SaleInput{
		ClientName: "Ali Hassan",
		Price:      120,
		Status:     domain.StatusContacted,
		LeadDate:   c.LeadDate,
	})
	require.NoError(t, err)

	assert.Equal(t, c.ID, updated.ID)
	assert.Equal(t, c.SequenceNumber, updated.SequenceNumber)
	assert.Equal(t, "Ali Hassan", updated.ClientName)
	assert.Equal(t, 2, updated.Quantity)
	require.Len(t, updated.Items, 2)
	assert.True(t, updated.Items[0].IsPaid)

	_, err = f.ws.UpdateClient(ctx, f.admin, p.ID, c.ID, domain.SaleInput{ClientName: "Ali", Status: "Unknown"})
	assert.ErrorIs(t, err, workspace.ErrInvalidSaleStatus)
}

func TestDeleteProject_Cascades(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	p, _ := f.ws.CreateProject(ctx, f.admin, domain.CreateProjectInput{Name: "Eid"})
	c, _ := f.ws.CreateClient(ctx, f.admin, p.ID, domain.SaleInput{ClientName: "Ali", Quantity: 1})

	require.NoError(t, f.ws.DeleteProject(ctx, p.ID))
	assert.Empty(t, f.ws.Projects())

	_, err := f.ws.Client(p.ID, c.ID)
	assert.ErrorIs(t, err, workspace.ErrProjectNotFound)

	rev := f.ws.Revision()
	assert.NoError(t, f.ws.DeleteProject(ctx, p.ID))
	assert.NoError(t, f.ws.DeleteClient(ctx, p.ID, c.ID))
	assert.Equal(t, rev, f.ws.Revision())
}

func TestUpdateItemStatus(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	sara := f.worker(t, "sara")
	omar := f.worker(t, "omar")

	p, _ := f.ws.CreateProject(ctx, f.admin, domain.CreateProjectInput{Name: "Eid"})
	c, err := f.ws.CreateClient(ctx, f.admin, p.ID, domain.SaleInput{
		ClientName:        "Ali",
		Quantity:          2,
		Items:             []domain.SaleItem{{Name: "Logo"}, {Name: "Banner"}},
		AssignedWorkerIDs: []string{sara.User.ID},
	})
	require.NoError(t, err)

	_, err = f.ws.UpdateItemStatus(ctx, omar, p.ID, c.ID, reconcile.ItemStatusChange{Index: 0, Status: domain.ItemInProgress})
	assert.ErrorIs(t, err, workspace.ErrNotAssigned)

	s, err := f.ws.UpdateItemStatus(ctx, sara, p.ID, c.ID, reconcile.ItemStatusChange{Index: 0, Status: domain.ItemInProgress})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, s.Status)
	require.Len(t, s.Reminders, 1)
	assert.Equal(t, `sara changed "Logo" to In Progress`, s.Reminders[0].Note)
	assert.False(t, s.Reminders[0].IsCompleted)

	_, err = f.ws.UpdateItemStatus(ctx, f.admin, p.ID, c.ID, reconcile.ItemStatusChange{Index: 0, Status: domain.ItemDelivered})
	require.NoError(t, err)
	s, err = f.ws.UpdateItemStatus(ctx, f.admin, p.ID, c.ID, reconcile.ItemStatusChange{Index: 1, Status: domain.ItemDelivered})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, s.Status)
	assert.Len(t, s.Reminders, 3)

	_, err = f.ws.UpdateItemStatus(ctx, f.admin, p.ID, c.ID, reconcile.ItemStatusChange{Index: 5, Status: domain.ItemDelivered})
	assert.ErrorIs(t, err, reconcile.ErrItemNotFound)
}

func TestAssignWorkers_NotifiesAndFeeds(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	sara := f.worker(t, "sara")

	p, _ := f.ws.CreateProject(ctx, f.admin, domain.CreateProjectInput{Name: "Eid"})
	c, _ := f.ws.CreateClient(ctx, f.admin, p.ID, domain.SaleInput{ClientName: "Ali", Quantity: 1})

	_, err := f.ws.AssignWorkers(ctx, f.admin, p.ID, c.ID, []string{"ghost"}, "")
	assert.ErrorIs(t, err, workspace.ErrUserNotFound)

	s, err := f.ws.AssignWorkers(ctx, f.admin, p.ID, c.ID, []string{sara.User.ID, sara.User.ID}, " rush ")
	require.NoError(t, err)
	assert.Equal(t, []string{sara.User.ID}, s.AssignedWorkerIDs)
	assert.Equal(t, "rush", s.TeamInstructions)

	_, err = f.ws.AssignWorkers(ctx, f.admin, p.ID, c.ID, []string{sara.User.ID}, "rush")
	require.NoError(t, err)

	entries := f.ws.Feed(sara)
	require.Len(t, entries, 1)
	assert.Equal(t, feed.SourceNotification, entries[0].Source)
	assert.Equal(t, "Admin assigned you to Ali", entries[0].Text)

	assigned := f.ws.AssignedTo(sara.User.ID)
	require.Len(t, assigned, 1)
	assert.Equal(t, "Ali", assigned[0].Sale.ClientName)

	require.NoError(t, f.ws.MarkFeedRead(ctx, sara, entries[0].Ref()))
	assert.Empty(t, f.ws.Feed(sara))
}

func TestFeed_AdminSeesRemindersAndCompletes(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	p, _ := f.ws.CreateProject(ctx, f.admin, domain.CreateProjectInput{Name: "Eid"})
	c, _ := f.ws.CreateClient(ctx, f.admin, p.ID, domain.SaleInput{ClientName: "Ali", Quantity: 1})

	now := f.clock.Now()
	_, err := f.ws.AddReminder(ctx, p.ID, c.ID, domain.CreateReminderInput{Date: now.AddDate(0, 0, 5), Note: "call back"})
	require.NoError(t, err)
	r, err := f.ws.AddReminder(ctx, p.ID, c.ID, domain.CreateReminderInput{Date: now.AddDate(0, 0, -3), Note: "send invoice"})
	require.NoError(t, err)

	entries := f.ws.Feed(f.admin)
	require.Len(t, entries, 2)
	assert.Equal(t, feed.KindOverdue, entries[0].Kind)
	assert.Equal(t, feed.KindUpcoming, entries[1].Kind)

	require.NoError(t, f.ws.MarkFeedRead(ctx, f.admin, feed.Ref{Source: feed.SourceReminder, ID: r.ID, ProjectID: p.ID, ClientID: c.ID}))
	assert.Len(t, f.ws.Feed(f.admin), 1)

	assert.NoError(t, f.ws.MarkFeedRead(ctx, f.admin, feed.Ref{Source: feed.SourceReminder, ID: "stale", ProjectID: p.ID, ClientID: c.ID}))
	assert.NoError(t, f.ws.MarkFeedRead(ctx, f.admin, feed.Ref{Source: feed.SourceNotification, ID: "stale"}))
}

func TestBroadcastNotification(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	sara := f.worker(t, "sara")

	_, err := f.ws.SendNotification(ctx, f.admin, domain.SendNotificationInput{TargetUserID: "nobody", Message: "hi"})
	assert.ErrorIs(t, err, workspace.ErrInvalidRecipient)

	n, err := f.ws.SendNotification(ctx, f.admin, domain.SendNotificationInput{TargetUserID: domain.BroadcastTarget, Message: "Meeting at 5", Type: domain.NotifAlert})
	require.NoError(t, err)
	assert.Equal(t, "Admin", n.FromUserName)

	require.Len(t, f.ws.Feed(sara), 1)
	require.NoError(t, f.ws.MarkNotificationRead(ctx, sara, n.ID))
	assert.Empty(t, f.ws.Feed(sara))
	assert.Empty(t, f.ws.Feed(f.admin))
}

func TestMarkNotificationRead_OnlyRecipient(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	sara := f.worker(t, "sara")
	omar := f.worker(t, "omar")

	n, err := f.ws.SendNotification(ctx, f.admin, domain.SendNotificationInput{TargetUserID: sara.User.ID, Message: "Call Ali"})
	require.NoError(t, err)

	err = f.ws.MarkNotificationRead(ctx, omar, n.ID)
	assert.ErrorIs(t, err, workspace.ErrNotRecipient)
	require.Len(t, f.ws.Feed(sara), 1)

	err = f.ws.MarkFeedRead(ctx, omar, feed.Ref{Source: feed.SourceReminder, ID: "r1", ProjectID: "p1", ClientID: "c1"})
	assert.ErrorIs(t, err, workspace.ErrNotRecipient)

	require.NoError(t, f.ws.MarkNotificationRead(ctx, sara, n.ID))
	assert.Empty(t, f.ws.Feed(sara))

	n, err = f.ws.SendNotification(ctx, f.admin, domain.SendNotificationInput{TargetUserID: omar.User.ID, Message: "Invoice"})
	require.NoError(t, err)
	require.NoError(t, f.ws.MarkNotificationRead(ctx, f.admin, n.ID))
	assert.Empty(t, f.ws.Feed(omar))
}

func TestChat(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	sara := f.worker(t, "sara")

	_, err := f.ws.SendMessage(ctx, f.admin, domain.SendMessageInput{ReceiverID: f.admin.User.ID, Text: "self"})
	assert.ErrorIs(t, err, workspace.ErrInvalidRecipient)
	_, err = f.ws.SendMessage(ctx, f.admin, domain.SendMessageInput{ReceiverID: sara.User.ID, Text: "  "})
	assert.ErrorIs(t, err, workspace.ErrEmptyMessage)

	_, err = f.ws.SendMessage(ctx, f.admin, domain.SendMessageInput{ReceiverID: sara.User.ID, Text: "hello"})
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	_, err = f.ws.SendMessage(ctx, sara, domain.SendMessageInput{ReceiverID: f.admin.User.ID, Text: "hi"})
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	_, err = f.ws.SendMessage(ctx, f.admin, domain.SendMessageInput{ReceiverID: sara.User.ID, Text: "logo ready?"})
	require.NoError(t, err)

	conv := f.ws.Conversation(sara.User.ID, f.admin.User.ID)
	require.Len(t, conv, 3)
	assert.Equal(t, "hello", conv[0].Text)
	assert.Equal(t, "logo ready?", conv[2].Text)

	assert.Equal(t, map[string]int{f.admin.User.ID: 2}, f.ws.UnreadCounts(sara.User.ID))

	n, err := f.ws.MarkConversationRead(ctx, sara.User.ID, f.admin.User.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, f.ws.UnreadCounts(sara.User.ID))
	assert.Equal(t, 1, f.ws.UnreadCounts(f.admin.User.ID)[sara.User.ID])
}

func TestGoals(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	_, err := f.ws.CreateGoal(ctx, f.admin, domain.CreateGoalInput{Type: "yearly", TargetAmount: 10})
	assert.ErrorIs(t, err, workspace.ErrInvalidGoal)

	_, err = f.ws.CreateGoal(ctx, f.admin, domain.CreateGoalInput{
		Type:         domain.GoalWeekly,
		TargetAmount: 100,
		StartDate:    domain.Date{Year: 2024, Month: time.June, Day: 10},
		EndDate:      domain.Date{Year: 2024, Month: time.June, Day: 9},
	})
	assert.ErrorIs(t, err, workspace.ErrInvalidGoal)

	g, err := f.ws.CreateGoal(ctx, f.admin, domain.CreateGoalInput{
		Type:         domain.GoalWeekly,
		TargetAmount: 1000,
		StartDate:    domain.Date{Year: 2024, Month: time.June, Day: 10},
		EndDate:      domain.Date{Year: 2024, Month: time.June, Day: 16},
	})
	require.NoError(t, err)
	assert.Len(t, f.ws.Goals(), 1)

	require.NoError(t, f.ws.DeleteGoal(ctx, g.ID))
	require.NoError(t, f.ws.DeleteGoal(ctx, g.ID))
	assert.Empty(t, f.ws.Goals())
}

func TestUsers(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	sara := f.worker(t, "sara")
	assert.Equal(t, domain.WorkerAvailable, sara.User.WorkerStatus)

	_, err := f.ws.CreateUser(ctx, f.admin, domain.CreateUserInput{Username: "SARA", Role: domain.RoleWorker})
	assert.ErrorIs(t, err, workspace.ErrDuplicateUsername)
	_, err = f.ws.CreateUser(ctx, f.admin, domain.CreateUserInput{Username: "x", Role: "owner"})
	assert.ErrorIs(t, err, workspace.ErrInvalidRole)

	u, err := f.ws.SetWorkerStatus(ctx, sara.User.ID, domain.WorkerBusy)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkerBusy, u.WorkerStatus)

	got, err := f.ws.Authenticate("sara", "pw")
	require.NoError(t, err)
	assert.Equal(t, sara.User.ID, got.ID)
	_, err = f.ws.Authenticate("sara", "PW")
	assert.ErrorIs(t, err, workspace.ErrInvalidCredentials)

	p, _ := f.ws.CreateProject(ctx, f.admin, domain.CreateProjectInput{Name: "Eid"})
	c, _ := f.ws.CreateClient(ctx, f.admin, p.ID, domain.SaleInput{ClientName: "Ali", AssignedWorkerIDs: []string{sara.User.ID}})

	require.NoError(t, f.ws.DeleteUser(ctx, sara.User.ID))
	_, err = f.ws.User(sara.User.ID)
	assert.ErrorIs(t, err, workspace.ErrUserNotFound)

	s, err := f.ws.Client(p.ID, c.ID)
	require.NoError(t, err)
	assert.Empty(t, s.AssignedWorkerIDs)
}

func TestImportExport(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	p, _ := f.ws.CreateProject(ctx, f.admin, domain.CreateProjectInput{Name: "Eid", Cost: 50})
	_, _ = f.ws.CreateClient(ctx, f.admin, p.ID, domain.SaleInput{ClientName: "Ali", Price: 20, Quantity: 1})

	err := f.ws.Import(ctx, &domain.ImportPayload{
		Users:    []domain.User{{ID: "u9", Username: "imported", Role: domain.RoleAdmin}},
		HasUsers: true,
	})
	require.NoError(t, err)

	backup := f.ws.Export()
	require.Len(t, backup.Users, 1)
	assert.Equal(t, "imported", backup.Users[0].Username)
	require.Len(t, backup.Projects, 1)
	assert.Equal(t, "Eid", backup.Projects[0].Name)
	assert.NotNil(t, backup.GlobalNotifications)

	err = f.ws.Import(ctx, &domain.ImportPayload{Projects: []domain.Project{}, HasProjects: true, Legacy: true})
	require.NoError(t, err)
	assert.Empty(t, f.ws.Projects())
	assert.Len(t, f.ws.Users(), 1)
}

func TestImportExport_RoundTripWithMixedPayments(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	p, err := f.ws.CreateProject(ctx, f.admin, domain.CreateProjectInput{Name: "Ramadan", Cost: 300})
	require.NoError(t, err)
	c, err := f.ws.CreateClient(ctx, f.admin, p.ID, domain.SaleInput{ClientName: "Huda", Price: 100, Quantity: 3})
	require.NoError(t, err)
	_, err = f.ws.ToggleItemPaid(ctx, p.ID, c.ID, 1)
	require.NoError(t, err)

	first, err := persistence.EncodeBackup(f.ws.Export())
	require.NoError(t, err)

	payload, err := persistence.DecodeImport(first)
	require.NoError(t, err)

	other := newFixture(t, nil, nil)
	require.NoError(t, other.ws.Import(ctx, payload))

	second, err := persistence.EncodeBackup(other.ws.Export())
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))

	restored, err := other.ws.Client(p.ID, c.ID)
	require.NoError(t, err)
	require.Len(t, restored.Items, 3)
	assert.False(t, restored.Items[0].IsPaid)
	assert.True(t, restored.Items[1].IsPaid)
	assert.False(t, restored.Items[2].IsPaid)
}

func TestImport_NullCollectionLeavesStateUntouched(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	_, err := f.ws.CreateProject(ctx, f.admin, domain.CreateProjectInput{Name: "Eid"})
	require.NoError(t, err)

	payload, err := persistence.DecodeImport([]byte(`{"users":null,"projects":null,"goals":[]}`))
	require.NoError(t, err)
	require.NoError(t, f.ws.Import(ctx, payload))

	assert.Len(t, f.ws.Users(), 1)
	assert.Len(t, f.ws.Projects(), 1)
	assert.Empty(t, f.ws.Goals())
}

func TestLanguage(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	assert.Equal(t, "en", f.ws.Language())
	assert.Empty(t, f.ws.StoredLanguage())

	locale, err := f.ws.SetLanguage(ctx, "ar-EG")
	require.NoError(t, err)
	assert.Equal(t, "ar", locale)
	assert.Equal(t, "ar", f.ws.Language())
	assert.Equal(t, "ar", f.ws.StoredLanguage())
	f.persist.AssertCalled(t, "SaveSetting", mock.Anything, domain.SettingLanguage, "ar")

	_, err = f.ws.SetLanguage(ctx, "fr")
	assert.ErrorIs(t, err, workspace.ErrInvalidLanguage)
}
