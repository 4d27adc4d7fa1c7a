package storage

import (
	"context"
	"fmt"

	"peels/internal/models"
)

type NotificationStorage struct {
	db DB
}

func NewNotificationStorage(db DB) *NotificationStorage {
	return &NotificationStorage{db: db}
}

func (s *NotificationStorage) CreateNotification(ctx context.Context, n *models.Notification) error {
	op := "internal/storage/notification.go CreateNotification"

	query := `
	INSERT INTO notifications (user_id, type, message)
	VALUES ($1, $2, $3)
	RETURNING id, is_read, created_at`

	if err := s.db.QueryRow(ctx, query, n.UserID, n.Type, n.Message).Scan(&n.ID, &n.IsRead, &n.CreatedAt); err != nil {
		return mapErr(op, err)
	}
	return nil
}

// ListNotifications returns unread notifications first, newest first.
func (s *NotificationStorage) ListNotifications(ctx context.Context, userID, limit int) ([]models.Notification, error) {
	op := "internal/storage/notification.go ListNotifications"

	rows, err := s.db.Query(ctx, `
	SELECT id, user_id, type, message, is_read, created_at
	FROM notifications
	WHERE user_id = $1
	ORDER BY is_read, created_at DESC
	LIMIT $2`, userID, limit)
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer rows.Close()

	list := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		list = append(list, n)
	}
	return list, mapErr(op, rows.Err())
}

func (s *NotificationStorage) UnreadCount(ctx context.Context, userID int) (int, error) {
	op := "internal/storage/notification.go UnreadCount"

	var n int
	err := s.db.QueryRow(ctx, `SELECT count(*) FROM notifications WHERE user_id = $1 AND NOT is_read`, userID).Scan(&n)
	if err != nil {
		return 0, mapErr(op, err)
	}
	return n, nil
}

func (s *NotificationStorage) MarkRead(ctx context.Context, id, userID int) error {
	op := "internal/storage/notification.go MarkRead"

	tag, err := s.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	return expectOne(op, tag, err)
}

func (s *NotificationStorage) MarkAllRead(ctx context.Context, userID int) (int64, error) {
	op := "internal/storage/notification.go MarkAllRead"

	tag, err := s.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read`, userID)
	if err != nil {
		return 0, mapErr(op, err)
	}
	return tag.RowsAffected(), nil
}

func (s *NotificationStorage) DeleteNotification(ctx context.Context, id, userID int) error {
	op := "internal/storage/notification.go DeleteNotification"

	tag, err := s.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	return expectOne(op, tag, err)
}
