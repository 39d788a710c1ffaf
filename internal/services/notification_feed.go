package services

import (
	"context"
	"sync"

	"SchemePortalAPI/internal/model"
)

const feedRecentCap = 50

// Feed keeps one recipient's unread counter and recent-notifications list
// current against live events. Counter rules: an insert with is_read=false
// increments; an update that transitions unread-to-read decrements; everything
// else is a no-op. MarkAsRead/MarkAllAsRead adjust the counter locally
// before the store round trip.
type Feed struct {
	svc    *NotificationService
	userID int64

	mu       sync.Mutex
	unread   int
	suppress int // decrements already applied optimistically
	recent   []model.Notification

	sub  *Subscription
	done chan struct{}
}

func newFeed(svc *NotificationService, userID int64, unread int, recent []model.Notification) *Feed {
	return &Feed{
		svc:    svc,
		userID: userID,
		unread: unread,
		recent: recent,
		done:   make(chan struct{}),
	}
}

func (f *Feed) start(sub *Subscription) {
	f.sub = sub
	go func() {
		defer close(f.done)
		for ev := range sub.Events() {
			f.apply(ev)
		}
	}()
}

// Stop cancels the subscription and waits for the event loop to drain.
// Idempotent.
func (f *Feed) Stop() {
	if f.sub == nil {
		return
	}
	f.sub.Stop()
	<-f.done
}

func (f *Feed) apply(ev NotificationEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch ev.Type {
	case EventInsert:
		if !ev.Row.IsRead {
			f.unread++
		}
		f.recent = append([]model.Notification{ev.Row}, f.recent...)
		if len(f.recent) > feedRecentCap {
			f.recent = f.recent[:feedRecentCap]
		}
	case EventUpdate:
		if !ev.WasRead && ev.Row.IsRead {
			if f.suppress > 0 {
				f.suppress-- // transition already counted optimistically
			} else if f.unread > 0 {
				f.unread--
			}
		}
		for i := range f.recent {
			if f.recent[i].ID == ev.Row.ID {
				f.recent[i] = ev.Row
				break
			}
		}
	}
}

func (f *Feed) Unread() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unread
}

func (f *Feed) Recent() []model.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Notification, len(f.recent))
	copy(out, f.recent)
	return out
}

// MarkAsRead optimistically decrements, then issues the mutation. The
// suppress count keeps the echoed hub event from decrementing a second time.
// A failed mutation rolls the local adjustment back, otherwise the leftover
// suppress would swallow the next genuine read transition.
func (f *Feed) MarkAsRead(ctx context.Context, id string) error {
	f.mu.Lock()
	adjusted := false
	for i := range f.recent {
		if f.recent[i].ID == id && !f.recent[i].IsRead {
			f.recent[i].IsRead = true
			if f.unread > 0 {
				f.unread--
				f.suppress++
				adjusted = true
			}
			break
		}
	}
	f.mu.Unlock()

	err := f.svc.MarkRead(ctx, id, f.userID)
	if err != nil && adjusted {
		f.mu.Lock()
		f.unread++
		f.suppress--
		for i := range f.recent {
			if f.recent[i].ID == id {
				f.recent[i].IsRead = false
				break
			}
		}
		f.mu.Unlock()
	}
	return err
}

// MarkAllAsRead zeroes the counter locally, then flips the rows. Every
// transition echoed back is suppressed; a failed flip restores the counter.
func (f *Feed) MarkAllAsRead(ctx context.Context) error {
	f.mu.Lock()
	was := f.unread
	flipped := map[string]bool{}
	for i := range f.recent {
		if !f.recent[i].IsRead {
			flipped[f.recent[i].ID] = true
			f.recent[i].IsRead = true
		}
	}
	f.suppress += was
	f.unread = 0
	f.mu.Unlock()

	err := f.svc.MarkAllRead(ctx, f.userID)
	if err != nil {
		f.mu.Lock()
		f.suppress -= was
		f.unread += was
		for i := range f.recent {
			if flipped[f.recent[i].ID] {
				f.recent[i].IsRead = false
			}
		}
		f.mu.Unlock()
	}
	return err
}
