package repository

import (
	"context"
	"errors"

	"SchemePortalAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	DB *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Insert(ctx context.Context, n *model.Notification) error {
	query := `INSERT INTO notifications (id, userid, title, message, link, category, priority, is_read, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.Exec(ctx, query, n.ID, n.UserID, n.Title, n.Message, n.Link, n.Category, n.Priority, n.IsRead, n.CreatedAt)
	return err
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	query := `SELECT id, userid, title, message, link, category, priority, is_read, created_at
			FROM notifications
			WHERE userid=$1
			ORDER BY created_at DESC
			LIMIT $2`
	rows, err := r.DB.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Notification{}
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Link, &n.Category, &n.Priority, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE userid=$1 AND is_read=false`
	if err := r.DB.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// MarkRead flips a single unread notification and returns the updated row.
// (nil, nil) when the row is missing, someone else's, or already read;
// callers use that to skip the read-transition event.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string, userID int64) (*model.Notification, error) {
	var n model.Notification
	query := `UPDATE notifications SET is_read=true
			WHERE id=$1 AND userid=$2 AND is_read=false
			RETURNING id, userid, title, message, link, category, priority, is_read, created_at`
	err := r.DB.QueryRow(ctx, query, id, userID).
		Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Link, &n.Category, &n.Priority, &n.IsRead, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

// MarkAllRead flips every unread notification for the user and returns the
// affected rows so each read-transition can be published.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) ([]model.Notification, error) {
	query := `UPDATE notifications SET is_read=true
			WHERE userid=$1 AND is_read=false
			RETURNING id, userid, title, message, link, category, priority, is_read, created_at`
	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Notification{}
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Link, &n.Category, &n.Priority, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
