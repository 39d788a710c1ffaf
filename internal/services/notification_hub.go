package services

import (
	"sync"

	"SchemePortalAPI/internal/model"
)

const (
	EventInsert = "insert"
	EventUpdate = "update"

	subscriptionBuffer = 16
)

// NotificationEvent is one change to a recipient's notifications. For
// updates, WasRead carries the row's read flag before the change so
// consumers can detect the unread-to-read transition.
type NotificationEvent struct {
	Type    string             `json:"type"`
	Row     model.Notification `json:"row"`
	WasRead bool               `json:"was_read"`
}

// Subscription is a cancellable handle on one recipient's event stream.
// Stop is idempotent and closes the event channel.
type Subscription struct {
	userID int64
	ch     chan NotificationEvent
	hub    *NotificationHub
	once   sync.Once
}

func (s *Subscription) Events() <-chan NotificationEvent {
	return s.ch
}

func (s *Subscription) Stop() {
	s.once.Do(func() {
		s.hub.unsubscribe(s)
	})
}

// NotificationHub fans notification events out to per-recipient
// subscriptions. Publish never blocks; a subscriber that falls
// subscriptionBuffer events behind starts dropping.
type NotificationHub struct {
	mu   sync.Mutex
	subs map[int64][]*Subscription
}

func NewNotificationHub() *NotificationHub {
	return &NotificationHub{subs: map[int64][]*Subscription{}}
}

func (h *NotificationHub) Subscribe(userID int64) *Subscription {
	sub := &Subscription{
		userID: userID,
		ch:     make(chan NotificationEvent, subscriptionBuffer),
		hub:    h,
	}
	h.mu.Lock()
	h.subs[userID] = append(h.subs[userID], sub)
	h.mu.Unlock()
	return sub
}

// unsubscribe removes sub from the fan-out and closes its channel. The
// close happens under h.mu so it can never race a send in Publish.
func (h *NotificationHub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.subs[sub.userID]
	for i, s := range subs {
		if s == sub {
			h.subs[sub.userID] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(h.subs[sub.userID]) == 0 {
		delete(h.subs, sub.userID)
	}
	close(sub.ch)
}

func (h *NotificationHub) Publish(ev NotificationEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subs[ev.Row.UserID] {
		select {
		case sub.ch <- ev:
		default: // slow subscriber, drop
		}
	}
}
