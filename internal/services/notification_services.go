package services

import (
	"context"
	"errors"
	"time"

	"SchemePortalAPI/internal/model"

	"github.com/google/uuid"
)

// NotificationStore is the notifications persistence surface.
type NotificationStore interface {
	Insert(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]model.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, id string, userID int64) (*model.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) ([]model.Notification, error)
}

type NotificationService struct {
	Store NotificationStore
	Hub   *NotificationHub
}

func NewNotificationService(store NotificationStore, hub *NotificationHub) *NotificationService {
	return &NotificationService{Store: store, Hub: hub}
}

// Create inserts a notification and publishes the insert event to any live
// subscription of the recipient.
func (s *NotificationService) Create(ctx context.Context, userID int64, title, message string, link *string, category, priority string) (*model.Notification, error) {
	if title == "" || message == "" {
		return nil, errors.New("title and message are required")
	}
	if category == "" {
		category = "general"
	}
	if priority == "" {
		priority = "normal"
	}

	n := &model.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Link:      link,
		Category:  category,
		Priority:  priority,
		CreatedAt: time.Now(),
	}
	if err := s.Store.Insert(ctx, n); err != nil {
		return nil, err
	}
	s.Hub.Publish(NotificationEvent{Type: EventInsert, Row: *n})
	return n, nil
}

func (s *NotificationService) List(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.Store.ListByUser(ctx, userID, limit)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.Store.CountUnread(ctx, userID)
}

// MarkRead flips one notification. Publishing only happens on an actual
// unread-to-read transition; re-reading an already-read row is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, id string, userID int64) error {
	n, err := s.Store.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if n == nil {
		return nil
	}
	s.Hub.Publish(NotificationEvent{Type: EventUpdate, Row: *n, WasRead: false})
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	flipped, err := s.Store.MarkAllRead(ctx, userID)
	if err != nil {
		return err
	}
	for _, n := range flipped {
		s.Hub.Publish(NotificationEvent{Type: EventUpdate, Row: n, WasRead: false})
	}
	return nil
}

// Subscribe opens a raw event stream for the recipient.
func (s *NotificationService) Subscribe(userID int64) *Subscription {
	return s.Hub.Subscribe(userID)
}

// OpenFeed builds a live Feed for the recipient: initial unread count and
// recent list from the store, then events applied as they arrive until the
// feed is stopped.
func (s *NotificationService) OpenFeed(ctx context.Context, userID int64) (*Feed, error) {
	count, err := s.Store.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.Store.ListByUser(ctx, userID, feedRecentCap)
	if err != nil {
		return nil, err
	}

	f := newFeed(s, userID, count, recent)
	f.start(s.Hub.Subscribe(userID))
	return f, nil
}
