package services

import (
	"context"
	"testing"

	"VaultStoreAPI/internal/model"
	"VaultStoreAPI/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockNotificationRepo struct {
	rows map[int64]*model.Notification // keyed by notification id
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID int64) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range m.rows {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, notificationID, userID int64) error {
	n, ok := m.rows[notificationID]
	if !ok || n.UserID != userID {
		return repository.ErrNotFound
	}
	n.IsRead = true
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID int64) error {
	for _, n := range m.rows {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (m *mockNotificationRepo) UnreadCount(_ context.Context, userID int64) (int, error) {
	count := 0
	for _, n := range m.rows {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func newNotificationFixture() (*NotificationService, *mockNotificationRepo) {
	repo := &mockNotificationRepo{rows: map[int64]*model.Notification{
		1: {NotificationID: 1, UserID: 7, OrderID: 1, Message: "Your order ORD-A is now being processed."},
		2: {NotificationID: 2, UserID: 7, OrderID: 1, Message: "Your order ORD-A has been delivered.", IsRead: true},
		3: {NotificationID: 3, UserID: 8, OrderID: 2, Message: "Your order ORD-B has been cancelled."},
	}}
	return NewNotificationService(repo), repo
}

func TestNotificationListScopedToUser(t *testing.T) {
	svc, _ := newNotificationFixture()

	out, err := svc.List(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, out, 2)

	_, err = svc.List(context.Background(), 0)
	assert.ErrorIs(t, err, ErrAuth)
}

func TestNotificationListNeverNil(t *testing.T) {
	svc := NewNotificationService(&mockNotificationRepo{rows: map[int64]*model.Notification{}})

	out, err := svc.List(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	svc, repo := newNotificationFixture()
	ctx := context.Background()

	require.NoError(t, svc.MarkRead(ctx, 1, 7))
	assert.True(t, repo.rows[1].IsRead)

	// marking again succeeds and changes nothing
	require.NoError(t, svc.MarkRead(ctx, 1, 7))
	assert.True(t, repo.rows[1].IsRead)
}

func TestMarkReadOwnershipAndMissing(t *testing.T) {
	svc, repo := newNotificationFixture()
	ctx := context.Background()

	// someone else's notification is invisible
	assert.ErrorIs(t, svc.MarkRead(ctx, 3, 7), ErrNotFound)
	assert.False(t, repo.rows[3].IsRead)

	assert.ErrorIs(t, svc.MarkRead(ctx, 99, 7), ErrNotFound)
	assert.ErrorIs(t, svc.MarkRead(ctx, 1, 0), ErrAuth)
}

func TestMarkAllReadAndUnreadCount(t *testing.T) {
	svc, _ := newNotificationFixture()
	ctx := context.Background()

	n, err := svc.UnreadCount(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, svc.MarkAllRead(ctx, 7))

	n, err = svc.UnreadCount(ctx, 7)
	require.NoError(t, err)
	assert.Zero(t, n)

	// other users untouched
	n, err = svc.UnreadCount(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
