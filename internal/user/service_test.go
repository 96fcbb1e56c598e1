package user

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Fukolomka/Sitea/internal/domain"
	"github.com/Fukolomka/Sitea/internal/testing/fakestore"
)

func steamProfile(id, name string) domain.SteamProfile {
	return domain.SteamProfile{SteamID: id, PersonaName: name, AvatarFull: "https://avatars/" + name + ".jpg"}
}

func TestLoginWithSteam_CreatesUser(t *testing.T) {
	ctx := context.Background()
	store := fakestore.New()
	svc := NewService(store, Config{})

	u, err := svc.LoginWithSteam(ctx, steamProfile("765", "alice"))

	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "765", u.SteamID)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "https://avatars/alice.jpg", u.Avatar)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.True(t, u.IsActive)
	assert.True(t, u.Balance.IsZero())
}

func TestLoginWithSteam_AdminOnCreation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(fakestore.New(), Config{AdminSteamIDs: []string{"999"}})

	admin, err := svc.LoginWithSteam(ctx, steamProfile("999", "root"))
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)

	regular, err := svc.LoginWithSteam(ctx, steamProfile("111", "bob"))
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, regular.Role)
}

func TestLoginWithSteam_ExistingUserRefreshed(t *testing.T) {
	ctx := context.Background()
	store := fakestore.New()
	existing := store.AddUser(domain.User{SteamID: "765", Username: "old", Balance: decimal.NewFromInt(10), IsActive: true})
	svc := NewService(store, Config{AdminSteamIDs: []string{"765"}})

	u, err := svc.LoginWithSteam(ctx, steamProfile("765", "new"))

	require.NoError(t, err)
	assert.Equal(t, existing.ID, u.ID)
	assert.Equal(t, "new", u.Username)
	assert.Equal(t, domain.RoleUser, u.Role, "admin list only applies on creation")
	assert.True(t, u.Balance.Equal(decimal.NewFromInt(10)))

	again, err := svc.LoginWithSteam(ctx, steamProfile("765", "newer"))
	require.NoError(t, err)
	assert.Equal(t, existing.ID, again.ID)
	assert.Equal(t, "newer", again.Username)
}

func TestLoginWithSteam_CacheSkipsLookup(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	u := &domain.User{ID: "u1", SteamID: "765", Username: "alice", IsActive: true}
	repo.On("GetUserBySteamID", mock.Anything, "765").Return(u, nil).Once()
	repo.On("UpdateSteamProfile", mock.Anything, "u1", "alice", mock.Anything).Return(u, nil)
	svc := NewService(repo, Config{})

	_, err := svc.LoginWithSteam(ctx, steamProfile("765", "alice"))
	require.NoError(t, err)
	_, err = svc.LoginWithSteam(ctx, steamProfile("765", "alice"))
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "GetUserBySteamID", 1)
	repo.AssertNumberOfCalls(t, "UpdateSteamProfile", 2)
}

func TestLoginWithSteam_StaleCacheEntry(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	fresh := &domain.User{ID: "u2", SteamID: "765", IsActive: true}
	repo.On("UpdateSteamProfile", mock.Anything, "u1", mock.Anything, mock.Anything).Return(nil, domain.ErrUserNotFound)
	repo.On("GetUserBySteamID", mock.Anything, "765").Return(fresh, nil)
	repo.On("UpdateSteamProfile", mock.Anything, "u2", mock.Anything, mock.Anything).Return(fresh, nil)
	svc := NewService(repo, Config{}).(*service)
	svc.logins.Set("765", "u1")

	u, err := svc.LoginWithSteam(ctx, steamProfile("765", "alice"))

	require.NoError(t, err)
	assert.Equal(t, "u2", u.ID)
	id, _ := svc.logins.Get("765")
	assert.Equal(t, "u2", id)
}

func TestLoginWithSteam_CreateRace(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	winner := &domain.User{ID: "u1", SteamID: "765", IsActive: true}
	repo.On("GetUserBySteamID", mock.Anything, "765").Return(nil, domain.ErrUserNotFound).Once()
	repo.On("CreateUser", mock.Anything, mock.Anything).Return(domain.ErrUserExists)
	repo.On("GetUserBySteamID", mock.Anything, "765").Return(winner, nil).Once()
	repo.On("UpdateSteamProfile", mock.Anything, "u1", "alice", mock.Anything).Return(winner, nil)
	svc := NewService(repo, Config{})

	u, err := svc.LoginWithSteam(ctx, steamProfile("765", "alice"))

	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	repo.AssertExpectations(t)
}

func TestLoginWithSteam_Errors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	t.Run("missing steam id", func(t *testing.T) {
		svc := NewService(new(MockRepository), Config{})
		_, err := svc.LoginWithSteam(ctx, domain.SteamProfile{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("lookup failure", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetUserBySteamID", mock.Anything, "765").Return(nil, boom)
		svc := NewService(repo, Config{})

		_, err := svc.LoginWithSteam(ctx, steamProfile("765", "a"))

		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), ErrMsgGetUserFailed)
	})

	t.Run("create failure", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetUserBySteamID", mock.Anything, "765").Return(nil, domain.ErrUserNotFound)
		repo.On("CreateUser", mock.Anything, mock.Anything).Return(boom)
		svc := NewService(repo, Config{})

		_, err := svc.LoginWithSteam(ctx, steamProfile("765", "a"))

		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), ErrMsgCreateUserFailed)
	})
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	store := fakestore.New()
	active := store.AddUser(domain.User{SteamID: "1", Username: "a", IsActive: true})
	inactive := store.AddUser(domain.User{SteamID: "2", Username: "b", IsActive: false})
	svc := NewService(store, Config{})

	u, err := svc.GetProfile(ctx, active.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", u.Username)

	_, err = svc.GetProfile(ctx, inactive.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.GetProfile(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestHistoryQueries(t *testing.T) {
	ctx := context.Background()
	store := fakestore.New()
	u := store.AddUser(domain.User{SteamID: "1", IsActive: true})
	svc := NewService(store, Config{})

	inv, err := svc.GetInventory(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, inv)
	assert.Empty(t, inv)

	openings, err := svc.GetOpenings(ctx, u.ID, 0)
	require.NoError(t, err)
	assert.NotNil(t, openings)

	stats, err := svc.GetStats(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalOpenings)
	assert.True(t, stats.TotalSpent.IsZero())
	assert.Nil(t, stats.BestItem)

	for _, call := range []func() error{
		func() error { _, err := svc.GetInventory(ctx, "missing"); return err },
		func() error { _, err := svc.GetOpenings(ctx, "missing", 10); return err },
		func() error { _, err := svc.GetStats(ctx, "missing"); return err },
	} {
		assert.ErrorIs(t, call(), domain.ErrUserNotFound)
	}
}

func TestGetOpenings_ClampsLimit(t *testing.T) {
	ctx := context.Background()
	u := &domain.User{ID: "u1", IsActive: true}

	tests := []struct {
		requested, want int
	}{
		{0, DefaultOpeningsLimit},
		{-5, DefaultOpeningsLimit},
		{7, 7},
		{MaxOpeningsLimit, MaxOpeningsLimit},
		{500, MaxOpeningsLimit},
	}
	for _, tt := range tests {
		repo := new(MockRepository)
		repo.On("GetUserByID", mock.Anything, "u1").Return(u, nil)
		repo.On("GetOpenings", mock.Anything, "u1", tt.want).Return([]domain.OpeningRecord{}, nil)
		svc := NewService(repo, Config{})

		_, err := svc.GetOpenings(ctx, "u1", tt.requested)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	}
}
