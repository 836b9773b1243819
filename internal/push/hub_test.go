package push

import (
	"testing"

	"VaultStoreAPI/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesOwnerOnly(t *testing.T) {
	h := NewHub()
	alice, cancelAlice := h.Subscribe(7)
	defer cancelAlice()
	bob, cancelBob := h.Subscribe(8)
	defer cancelBob()

	h.Publish(model.Notification{NotificationID: 1, UserID: 7, Message: "hi"})

	select {
	case n := <-alice:
		assert.Equal(t, int64(1), n.NotificationID)
	default:
		t.Fatal("expected a delivery for user 7")
	}
	assert.Empty(t, bob)
}

func TestPublishFansOutToAllSubscriptions(t *testing.T) {
	h := NewHub()
	first, cancel1 := h.Subscribe(7)
	defer cancel1()
	second, cancel2 := h.Subscribe(7)
	defer cancel2()

	h.Publish(model.Notification{NotificationID: 1, UserID: 7})

	assert.Len(t, first, 1)
	assert.Len(t, second, 1)
}

func TestCancelIsIdempotent(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe(7)

	require.Equal(t, 1, h.Subscribers(7))
	cancel()
	cancel()
	assert.Zero(t, h.Subscribers(7))

	// channel is closed after cancel
	_, open := <-ch
	assert.False(t, open)

	// publishing with no subscribers is a no-op
	h.Publish(model.Notification{NotificationID: 1, UserID: 7})
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe(7)
	defer cancel()

	for i := 0; i < subscriberBuffer+10; i++ {
		h.Publish(model.Notification{NotificationID: int64(i), UserID: 7})
	}

	// publisher never blocked; the overflow was dropped
	assert.Len(t, ch, subscriberBuffer)
}
