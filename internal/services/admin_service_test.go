package services

import (
	"context"
	"testing"

	"VaultStoreAPI/internal/model"
	"VaultStoreAPI/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAdminRepo struct {
	admins map[int64]*model.Admin
	nextID int64
}

func (m *mockAdminRepo) GetByDiscordID(_ context.Context, discordID string) (*model.Admin, error) {
	for _, a := range m.admins {
		if a.DiscordID == discordID {
			return a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockAdminRepo) GetByID(_ context.Context, adminID int64) (*model.Admin, error) {
	a, ok := m.admins[adminID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func (m *mockAdminRepo) List(context.Context) ([]model.Admin, error) {
	out := make([]model.Admin, 0, len(m.admins))
	for _, a := range m.admins {
		out = append(out, *a)
	}
	return out, nil
}

func (m *mockAdminRepo) Create(_ context.Context, discordID, role string, rank int) (int64, error) {
	m.nextID++
	m.admins[m.nextID] = &model.Admin{AdminID: m.nextID, DiscordID: discordID, Role: role, Rank: rank}
	return m.nextID, nil
}

func (m *mockAdminRepo) Delete(_ context.Context, adminID int64) error {
	delete(m.admins, adminID)
	return nil
}

func newAdminFixture() (*AdminService, *mockAdminRepo) {
	repo := &mockAdminRepo{admins: map[int64]*model.Admin{
		1: {AdminID: 1, DiscordID: "100", Role: "owner", Rank: 3},
		2: {AdminID: 2, DiscordID: "200", Role: "support", Rank: 1},
	}, nextID: 2}
	return NewAdminService(repo), repo
}

func TestCanManage(t *testing.T) {
	assert.True(t, CanManage(3, 1))
	assert.False(t, CanManage(1, 1))
	assert.False(t, CanManage(1, 3))
}

func TestAdminLookup(t *testing.T) {
	svc, _ := newAdminFixture()
	ctx := context.Background()

	a, err := svc.Lookup(ctx, "100")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, 3, a.Rank)

	// unknown discord ids are regular users, not errors
	a, err = svc.Lookup(ctx, "999")
	require.NoError(t, err)
	assert.Nil(t, a)
}

func TestAdminCreateRankChecks(t *testing.T) {
	svc, repo := newAdminFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, 3, "", "mod", 1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, 3, "300", "mod", 0)
	assert.ErrorIs(t, err, ErrValidation)

	// cannot grant a rank equal to or above your own
	_, err = svc.Create(ctx, 2, "300", "mod", 2)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Create(ctx, 2, "300", "mod", 3)
	assert.ErrorIs(t, err, ErrForbidden)

	id, err := svc.Create(ctx, 3, "300", "mod", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.admins[id].Rank)
}

func TestAdminDeleteRequiresOutranking(t *testing.T) {
	svc, repo := newAdminFixture()
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, 1, 2), ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, 3, 99), ErrNotFound)

	require.NoError(t, svc.Delete(ctx, 3, 2))
	_, ok := repo.admins[2]
	assert.False(t, ok)
}
