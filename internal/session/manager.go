// Package session holds the signed-in identity for a portal client runtime:
// who is logged in, persisted across restarts, with one live notification
// feed per identity.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
)

// Identity is the authenticated user as the client keeps it.
type Identity struct {
	UserID int64  `json:"userid"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Token  string `json:"token"`
}

// Feed is the slice of the notification feed the manager needs: the live
// unread counter and its teardown.
type Feed interface {
	Unread() int
	Stop()
}

// FeedOpener starts a notification feed for an identity. Remote openers
// authenticate with id.Token; an in-process opener can wrap
// (*services.NotificationService).OpenFeed with id.UserID.
type FeedOpener func(ctx context.Context, id *Identity) (Feed, error)

// Manager is the dependency-injected session holder. At most one feed is
// live at a time; replacing the identity stops the old feed before opening
// the next one.
type Manager struct {
	path string
	open FeedOpener

	current *Identity
	feed    Feed
}

// NewManager stores identity state at path. The manager is meant for a
// single client event loop and is not safe for concurrent use.
func NewManager(path string, open FeedOpener) *Manager {
	return &Manager{path: path, open: open}
}

// Restore loads a persisted identity, if any, and re-opens its feed.
func (m *Manager) Restore(ctx context.Context) error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		// corrupt blob: start signed out
		return os.Remove(m.path)
	}
	return m.SetUser(ctx, &id)
}

// SetUser replaces the identity. Non-nil: persist and open a feed. Nil:
// clear persisted state and tear the feed down.
func (m *Manager) SetUser(ctx context.Context, id *Identity) error {
	if m.feed != nil {
		m.feed.Stop()
		m.feed = nil
	}
	m.current = id

	if id == nil {
		if err := os.Remove(m.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}

	data, err := json.Marshal(id)
	if err != nil {
		return err
	}
	if err := os.WriteFile(m.path, data, 0o600); err != nil {
		return err
	}

	feed, err := m.open(ctx, id)
	if err != nil {
		return err
	}
	m.feed = feed
	return nil
}

// Logout clears the identity and the unread counter along with it.
func (m *Manager) Logout(ctx context.Context) error {
	return m.SetUser(ctx, nil)
}

func (m *Manager) Current() *Identity {
	return m.current
}

// Unread reports the live unread-notification count, zero when signed out.
func (m *Manager) Unread() int {
	if m.feed == nil {
		return 0
	}
	return m.feed.Unread()
}
