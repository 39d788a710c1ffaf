package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeFeed struct {
	unread  int
	stopped bool
}

func (f *fakeFeed) Unread() int { return f.unread }
func (f *fakeFeed) Stop()       { f.stopped = true }

type feedTracker struct {
	opened []*fakeFeed
	err    error
}

func (ft *feedTracker) open(ctx context.Context, id *Identity) (Feed, error) {
	if ft.err != nil {
		return nil, ft.err
	}
	f := &fakeFeed{unread: 3}
	ft.opened = append(ft.opened, f)
	return f, nil
}

func newTestManager(t *testing.T) (*Manager, *feedTracker, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	tracker := &feedTracker{}
	return NewManager(path, tracker.open), tracker, path
}

func TestSetUserPersistsAndOpensFeed(t *testing.T) {
	m, tracker, path := newTestManager(t)
	ctx := context.Background()

	id := &Identity{UserID: 1, Name: "Asha", Email: "a@x.com", Role: "citizen"}
	require.NoError(t, m.SetUser(ctx, id))
	require.Equal(t, id, m.Current())
	require.Equal(t, 3, m.Unread())
	require.Len(t, tracker.opened, 1)

	_, err := os.Stat(path)
	require.NoError(t, err, "identity must be persisted")
}

func TestReplacingIdentityTearsDownOldFeed(t *testing.T) {
	m, tracker, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.SetUser(ctx, &Identity{UserID: 1, Role: "citizen"}))
	require.NoError(t, m.SetUser(ctx, &Identity{UserID: 2, Role: "agency"}))

	require.Len(t, tracker.opened, 2)
	require.True(t, tracker.opened[0].stopped, "old feed must be stopped before the new one opens")
	require.False(t, tracker.opened[1].stopped)
}

func TestLogoutClearsEverything(t *testing.T) {
	m, tracker, path := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.SetUser(ctx, &Identity{UserID: 1, Role: "citizen"}))
	require.NoError(t, m.Logout(ctx))

	require.Nil(t, m.Current())
	require.Equal(t, 0, m.Unread())
	require.True(t, tracker.opened[0].stopped)

	_, err := os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist, "persisted identity must be removed")
}

func TestRestoreFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	tracker := &feedTracker{}

	first := NewManager(path, tracker.open)
	require.NoError(t, first.SetUser(context.Background(), &Identity{UserID: 9, Name: "Asha", Role: "citizen"}))

	second := NewManager(path, tracker.open)
	require.NoError(t, second.Restore(context.Background()))
	require.NotNil(t, second.Current())
	require.Equal(t, int64(9), second.Current().UserID)
	require.Len(t, tracker.opened, 2, "restore re-establishes the subscription")
}

func TestRestoreWithNoStateIsSignedOut(t *testing.T) {
	m, tracker, _ := newTestManager(t)
	require.NoError(t, m.Restore(context.Background()))
	require.Nil(t, m.Current())
	require.Empty(t, tracker.opened)
}

func TestRestoreDropsCorruptState(t *testing.T) {
	m, tracker, path := newTestManager(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	require.NoError(t, m.Restore(context.Background()))
	require.Nil(t, m.Current())
	require.Empty(t, tracker.opened)

	_, err := os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)
}
