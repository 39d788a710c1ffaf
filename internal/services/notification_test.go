package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"SchemePortalAPI/internal/model"

	"github.com/stretchr/testify/require"
)

type fakeNotificationStore struct {
	mu      sync.Mutex
	rows    map[string]*model.Notification
	failure error // returned by the mark mutations when set
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{rows: map[string]*model.Notification{}}
}

func (f *fakeNotificationStore) Insert(ctx context.Context, n *model.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *n
	f.rows[n.ID] = &cp
	return nil
}

func (f *fakeNotificationStore) ListByUser(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Notification{}
	for _, n := range f.rows {
		if n.UserID == userID && len(out) < limit {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) CountUnread(ctx context.Context, userID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, n := range f.rows {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationStore) MarkRead(ctx context.Context, id string, userID int64) (*model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failure != nil {
		return nil, f.failure
	}
	n, ok := f.rows[id]
	if !ok || n.UserID != userID || n.IsRead {
		return nil, nil
	}
	n.IsRead = true
	cp := *n
	return &cp, nil
}

func (f *fakeNotificationStore) MarkAllRead(ctx context.Context, userID int64) ([]model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failure != nil {
		return nil, f.failure
	}
	flipped := []model.Notification{}
	for _, n := range f.rows {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			flipped = append(flipped, *n)
		}
	}
	return flipped, nil
}

func (f *fakeNotificationStore) unreadOnDisk(userID int64) int {
	count, _ := f.CountUnread(context.Background(), userID)
	return count
}

func newNotificationFixture() (*NotificationService, *fakeNotificationStore) {
	store := newFakeNotificationStore()
	return NewNotificationService(store, NewNotificationHub()), store
}

func TestHubDeliversOnlyToRecipient(t *testing.T) {
	hub := NewNotificationHub()
	subA := hub.Subscribe(1)
	subB := hub.Subscribe(2)
	defer subA.Stop()
	defer subB.Stop()

	hub.Publish(NotificationEvent{Type: EventInsert, Row: model.Notification{ID: "n1", UserID: 1}})

	select {
	case ev := <-subA.Events():
		require.Equal(t, "n1", ev.Row.ID)
	case <-time.After(time.Second):
		t.Fatal("recipient subscription got no event")
	}

	select {
	case ev := <-subB.Events():
		t.Fatalf("unexpected event for other user: %+v", ev)
	default:
	}
}

func TestSubscriptionStopIsIdempotent(t *testing.T) {
	hub := NewNotificationHub()
	sub := hub.Subscribe(1)
	sub.Stop()
	sub.Stop() // must not panic

	// publishing after stop must not block or panic
	hub.Publish(NotificationEvent{Type: EventInsert, Row: model.Notification{ID: "n1", UserID: 1}})

	_, ok := <-sub.Events()
	require.False(t, ok, "events channel should be closed")
}

func TestPublishRacingStopIsSafe(t *testing.T) {
	hub := NewNotificationHub()
	ev := NotificationEvent{Type: EventInsert, Row: model.Notification{ID: "n1", UserID: 1}}

	for i := 0; i < 200; i++ {
		sub := hub.Subscribe(1)

		var wg sync.WaitGroup
		wg.Add(3)
		go func() {
			defer wg.Done()
			hub.Publish(ev)
		}()
		go func() {
			defer wg.Done()
			hub.Publish(ev)
		}()
		go func() {
			defer wg.Done()
			sub.Stop()
		}()
		wg.Wait()

		// drain whatever landed before the close
		for range sub.Events() {
		}
	}
}

func TestFeedCounterInvariant(t *testing.T) {
	svc, store := newNotificationFixture()
	ctx := context.Background()

	feed, err := svc.OpenFeed(ctx, 1)
	require.NoError(t, err)
	defer feed.Stop()

	const n = 5
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		notif, err := svc.Create(ctx, 1, "title", "body", nil, "", "")
		require.NoError(t, err)
		ids = append(ids, notif.ID)
	}

	require.Eventually(t, func() bool { return feed.Unread() == n }, time.Second, 5*time.Millisecond)

	// M distinct markAsRead calls leave N-M unread
	const m = 3
	for i := 0; i < m; i++ {
		require.NoError(t, feed.MarkAsRead(ctx, ids[i]))
	}

	require.Eventually(t, func() bool { return feed.Unread() == n-m }, time.Second, 5*time.Millisecond)
	require.Equal(t, n-m, store.unreadOnDisk(1))

	// marking an already-read row changes nothing
	require.NoError(t, feed.MarkAsRead(ctx, ids[0]))
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, n-m, feed.Unread())
}

func TestMarkAllAsRead(t *testing.T) {
	svc, store := newNotificationFixture()
	ctx := context.Background()

	feed, err := svc.OpenFeed(ctx, 1)
	require.NoError(t, err)
	defer feed.Stop()

	_, err = svc.Create(ctx, 1, "first", "body", nil, "", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, "second", "body", nil, "", "")
	require.NoError(t, err)

	require.Eventually(t, func() bool { return feed.Unread() == 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, feed.MarkAllAsRead(ctx))
	require.Equal(t, 0, feed.Unread())
	require.Equal(t, 0, store.unreadOnDisk(1))

	// the echoed read-transitions must not drive the counter negative or back up
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, 0, feed.Unread())
	for _, n := range feed.Recent() {
		require.True(t, n.IsRead)
	}
}

func TestFailedMarkAsReadRollsBackCounter(t *testing.T) {
	svc, store := newNotificationFixture()
	ctx := context.Background()

	feed, err := svc.OpenFeed(ctx, 1)
	require.NoError(t, err)
	defer feed.Stop()

	notif, err := svc.Create(ctx, 1, "title", "body", nil, "", "")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return feed.Unread() == 1 }, time.Second, 5*time.Millisecond)

	store.failure = errors.New("store unavailable")
	require.Error(t, feed.MarkAsRead(ctx, notif.ID))
	require.Equal(t, 1, feed.Unread(), "failed mutation must restore the counter")

	// no leftover suppression: the next genuine transition still counts
	store.failure = nil
	require.NoError(t, svc.MarkRead(ctx, notif.ID, 1))
	require.Eventually(t, func() bool { return feed.Unread() == 0 }, time.Second, 5*time.Millisecond)
}

func TestFailedMarkAllAsReadRollsBackCounter(t *testing.T) {
	svc, store := newNotificationFixture()
	ctx := context.Background()

	feed, err := svc.OpenFeed(ctx, 1)
	require.NoError(t, err)
	defer feed.Stop()

	_, err = svc.Create(ctx, 1, "first", "body", nil, "", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, "second", "body", nil, "", "")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return feed.Unread() == 2 }, time.Second, 5*time.Millisecond)

	store.failure = errors.New("store unavailable")
	require.Error(t, feed.MarkAllAsRead(ctx))
	require.Equal(t, 2, feed.Unread())

	store.failure = nil
	require.NoError(t, feed.MarkAllAsRead(ctx))
	require.Equal(t, 0, feed.Unread())
	require.Equal(t, 0, store.unreadOnDisk(1))
}

func TestFeedInitialStateFromStore(t *testing.T) {
	svc, store := newNotificationFixture()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, &model.Notification{ID: "a", UserID: 7}))
	require.NoError(t, store.Insert(ctx, &model.Notification{ID: "b", UserID: 7, IsRead: true}))

	feed, err := svc.OpenFeed(ctx, 7)
	require.NoError(t, err)
	defer feed.Stop()

	require.Equal(t, 1, feed.Unread())
	require.Len(t, feed.Recent(), 2)
}

func TestReadTransitionOnlyCountsOnce(t *testing.T) {
	svc, _ := newNotificationFixture()
	ctx := context.Background()

	feed, err := svc.OpenFeed(ctx, 1)
	require.NoError(t, err)
	defer feed.Stop()

	notif, err := svc.Create(ctx, 1, "title", "body", nil, "", "")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return feed.Unread() == 1 }, time.Second, 5*time.Millisecond)

	// a second session marks it read; this feed only observes the event
	require.NoError(t, svc.MarkRead(ctx, notif.ID, 1))
	require.Eventually(t, func() bool { return feed.Unread() == 0 }, time.Second, 5*time.Millisecond)

	// repeating the mutation produces no transition, counter stays at zero
	require.NoError(t, svc.MarkRead(ctx, notif.ID, 1))
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, 0, feed.Unread())
}
