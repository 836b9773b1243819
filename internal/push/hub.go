// Package push fans notifications out to connected users. Subscriptions
// are torn down and recreated freely (tab refocus, reconnect); delivery
// resumes from "now", there is no replay.
package push

import (
	"sync"

	"VaultStoreAPI/internal/model"
)

const subscriberBuffer = 16

type Hub struct {
	mu   sync.RWMutex
	subs map[int64]map[chan model.Notification]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int64]map[chan model.Notification]struct{})}
}

// Subscribe registers a channel for the user and returns it with a
// cancel func. Cancel is safe to call more than once.
func (h *Hub) Subscribe(userID int64) (<-chan model.Notification, func()) {
	ch := make(chan model.Notification, subscriberBuffer)

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan model.Notification]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[userID], ch)
			if len(h.subs[userID]) == 0 {
				delete(h.subs, userID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers to every live subscription of the notification's
// owner. A slow subscriber's full buffer drops the message rather than
// blocking the publisher; the feed endpoint remains the authority.
func (h *Hub) Publish(n model.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[n.UserID] {
		select {
		case ch <- n:
		default:
		}
	}
}

// Subscribers reports how many channels a user currently has open.
func (h *Hub) Subscribers(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
