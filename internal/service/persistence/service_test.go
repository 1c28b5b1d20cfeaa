package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/mocks"
	"nexus-dashboard/internal/pkg/clock"
	"nexus-dashboard/internal/remote"
	"nexus-dashboard/internal/repository"
	"nexus-dashboard/internal/service/persistence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func bytesEq(s string) any {
	return mock.MatchedBy(func(b []byte) bool { return string(b) == s })
}

func newService(t *testing.T) (persistence.Service, *mocks.StateRepository, *mocks.Remote, *clock.Fake) {
	t.Helper()
	local := new(mocks.StateRepository)
	rem := new(mocks.Remote)
	fc := clock.NewFake(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	return persistence.NewService(local, rem, fc, 2*time.Second), local, rem, fc
}

func TestSave_DebouncesRemoteSync(t *testing.T) {
	svc, local, rem, fc := newService(t)
	ctx := context.Background()

	local.On("Put", ctx, domain.PartitionProjects, mock.Anything).Return(nil).Times(3)

	require.NoError(t, svc.Save(ctx, domain.PartitionProjects, []int{1}))
	fc.Advance(500 * time.Millisecond)
	require.NoError(t, svc.Save(ctx, domain.PartitionProjects, []int{2}))
	fc.Advance(500 * time.Millisecond)
	require.NoError(t, svc.Save(ctx, domain.PartitionProjects, []int{3}))

	local.AssertNumberOfCalls(t, "Put", 3)

	fc.Advance(1999 * time.Millisecond)
	rem.AssertNotCalled(t, "Push", mock.Anything, mock.Anything, mock.Anything)

	rem.On("Push", mock.Anything, domain.PartitionProjects, bytesEq("[3]")).Return(nil).Once()
	fc.Advance(time.Millisecond)

	rem.AssertExpectations(t)
	rem.AssertNumberOfCalls(t, "Push", 1)
	local.AssertExpectations(t)
}

func TestSave_PartitionsSyncIndependently(t *testing.T) {
	svc, local, rem, fc := newService(t)
	ctx := context.Background()

	local.On("Put", ctx, mock.Anything, mock.Anything).Return(nil)
	rem.On("Push", mock.Anything, domain.PartitionUsers, bytesEq(`["u"]`)).Return(nil).Once()
	rem.On("Push", mock.Anything, domain.PartitionGoals, bytesEq(`["g"]`)).Return(nil).Once()

	require.NoError(t, svc.Save(ctx, domain.PartitionUsers, []string{"u"}))
	fc.Advance(time.Second)
	require.NoError(t, svc.Save(ctx, domain.PartitionGoals, []string{"g"}))
	fc.Advance(time.Second)

	rem.AssertNumberOfCalls(t, "Push", 1)
	fc.Advance(time.Second)
	rem.AssertExpectations(t)
}

func TestSave_RemoteFailureIsSwallowed(t *testing.T) {
	svc, local, rem, fc := newService(t)
	ctx := context.Background()

	local.On("Put", ctx, domain.PartitionMessages, mock.Anything).Return(nil)
	rem.On("Push", mock.Anything, domain.PartitionMessages, mock.Anything).Return(errors.New("connection refused")).Once()

	err := svc.Save(ctx, domain.PartitionMessages, []string{})
	assert.NoError(t, err)

	assert.NotPanics(t, func() { fc.Advance(3 * time.Second) })
	rem.AssertExpectations(t)
}

func TestSave_LocalFailureSkipsSync(t *testing.T) {
	svc, local, rem, fc := newService(t)
	ctx := context.Background()

	local.On("Put", ctx, domain.PartitionProjects, mock.Anything).Return(errors.New("disk full"))

	err := svc.Save(ctx, domain.PartitionProjects, []int{1})
	assert.Error(t, err)

	fc.Advance(5 * time.Second)
	rem.AssertNotCalled(t, "Push", mock.Anything, mock.Anything, mock.Anything)
}

func TestFlush_PushesPendingImmediately(t *testing.T) {
	svc, local, rem, fc := newService(t)
	ctx := context.Background()

	local.On("Put", ctx, domain.PartitionGoals, mock.Anything).Return(nil)
	rem.On("Push", mock.Anything, domain.PartitionGoals, bytesEq("[7]")).Return(nil).Once()

	require.NoError(t, svc.Save(ctx, domain.PartitionGoals, []int{7}))
	svc.Flush()
	rem.AssertExpectations(t)

	fc.Advance(5 * time.Second)
	rem.AssertNumberOfCalls(t, "Push", 1)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("Unavailable", func(t *testing.T) {
		svc, _, rem, _ := newService(t)
		rem.On("Fetch", ctx).Return(nil, remote.ErrBadStatus).Once()

		snap, ok := svc.Load(ctx)
		assert.False(t, ok)
		assert.Nil(t, snap)
	})

	t.Run("MirrorsLocally", func(t *testing.T) {
		svc, local, rem, _ := newService(t)
		remoteSnap := &domain.Snapshot{
			Users: []domain.User{{ID: "u1", Username: "admin", Role: domain.RoleAdmin}},
			Goals: []domain.Goal{},
		}
		rem.On("Fetch", ctx).Return(remoteSnap, nil).Once()
		local.On("Put", ctx, domain.PartitionUsers, mock.Anything).Return(nil).Once()
		local.On("Put", ctx, domain.PartitionGoals, bytesEq("[]")).Return(nil).Once()

		snap, ok := svc.Load(ctx)
		assert.True(t, ok)
		assert.Equal(t, remoteSnap, snap)
		local.AssertExpectations(t)
		local.AssertNumberOfCalls(t, "Put", 2)
	})
}

func TestLoadLocal(t *testing.T) {
	svc, local, _, _ := newService(t)
	ctx := context.Background()

	local.On("Get", ctx, domain.PartitionProjects).Return([]byte(`[{"id":"p1","name":"Spring","cost":100,"clients":[]}]`), nil)
	local.On("Get", ctx, domain.PartitionUsers).Return(nil, repository.ErrNotFound)
	local.On("Get", ctx, domain.PartitionNotifications).Return([]byte(`not json`), nil)
	local.On("Get", ctx, domain.PartitionMessages).Return(nil, repository.ErrNotFound)
	local.On("Get", ctx, domain.PartitionGoals).Return(nil, repository.ErrNotFound)

	snap, err := svc.LoadLocal(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Projects, 1)
	assert.Equal(t, "Spring", snap.Projects[0].Name)
	assert.Nil(t, snap.Users)
	assert.Nil(t, snap.Notifications)
}

func TestSettings(t *testing.T) {
	svc, local, rem, fc := newService(t)
	ctx := context.Background()

	local.On("Put", ctx, domain.SettingLanguage, []byte("ar")).Return(nil).Once()
	local.On("Get", ctx, domain.SettingLanguage).Return([]byte("ar"), nil).Once()
	local.On("Get", ctx, domain.SettingSessionUser).Return(nil, repository.ErrNotFound).Once()

	require.NoError(t, svc.SaveSetting(ctx, domain.SettingLanguage, "ar"))

	lang, err := svc.Setting(ctx, domain.SettingLanguage)
	require.NoError(t, err)
	assert.Equal(t, "ar", lang)

	user, err := svc.Setting(ctx, domain.SettingSessionUser)
	require.NoError(t, err)
	assert.Empty(t, user)

	fc.Advance(5 * time.Second)
	rem.AssertNotCalled(t, "Push", mock.Anything, mock.Anything, mock.Anything)
}
