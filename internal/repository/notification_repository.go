package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"exercise-tracker/internal/model"
)

// NotificationRepository stores the activity log and the per-session
// read marks that partition it into unread and read views.
type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Insert(ctx context.Context, n *model.Notification) error {
	res, err := r.db.ExecContext(
		ctx,
		`INSERT INTO activity_log (activity_type, action, entity_id, entity_name, message, user_id, priority, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.Type,
		n.Action,
		n.EntityID,
		n.EntityName,
		n.Message,
		n.UserID,
		n.Priority,
		n.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("notification insert id: %w", err)
	}
	n.ID = int(id)
	return nil
}

// ListUnread returns the page of notifications the session has not
// marked read, newest first.
func (r *NotificationRepository) ListUnread(ctx context.Context, userID string, limit, offset int) ([]model.Notification, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT al.id, al.activity_type, al.action, al.entity_id, al.entity_name, al.message, al.user_id, al.priority, al.created_at
		 FROM activity_log al
		 LEFT JOIN user_notifications un ON al.id = un.notification_id AND un.user_id = ?
		 WHERE un.notification_id IS NULL
		 ORDER BY al.created_at DESC, al.id DESC
		 LIMIT ? OFFSET ?`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list unread notifications: %w", err)
	}
	return collectNotifications(rows)
}

// ListRead returns the page of notifications the session has already
// marked read, newest first.
func (r *NotificationRepository) ListRead(ctx context.Context, userID string, limit, offset int) ([]model.Notification, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT al.id, al.activity_type, al.action, al.entity_id, al.entity_name, al.message, al.user_id, al.priority, al.created_at
		 FROM activity_log al
		 JOIN user_notifications un ON al.id = un.notification_id
		 WHERE un.user_id = ?
		 ORDER BY al.created_at DESC, al.id DESC
		 LIMIT ? OFFSET ?`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list read notifications: %w", err)
	}
	return collectNotifications(rows)
}

// MarkRead records a read mark for one notification. Returns false when
// the mark already existed.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID string, notificationID int) (bool, error) {
	res, err := r.db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO user_notifications (notification_id, user_id, read_at) VALUES (?, ?, ?)`,
		notificationID, userID, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}
	return affected > 0, nil
}

// ClearAll marks every currently-unread notification read for the
// session and returns how many it marked.
func (r *NotificationRepository) ClearAll(ctx context.Context, userID string) (int, error) {
	res, err := r.db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO user_notifications (notification_id, user_id, read_at)
		 SELECT al.id, ?, ?
		 FROM activity_log al
		 LEFT JOIN user_notifications un ON al.id = un.notification_id AND un.user_id = ?
		 WHERE un.notification_id IS NULL`,
		userID, time.Now().UTC().Format(time.RFC3339Nano), userID,
	)
	if err != nil {
		return 0, fmt.Errorf("clear notifications: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear notifications: %w", err)
	}
	return int(affected), nil
}

// UnreadCount is the authoritative badge value pushed to clients.
func (r *NotificationRepository) UnreadCount(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*)
		 FROM activity_log al
		 LEFT JOIN user_notifications un ON al.id = un.notification_id AND un.user_id = ?
		 WHERE un.notification_id IS NULL`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

func collectNotifications(rows *sql.Rows) ([]model.Notification, error) {
	defer rows.Close()

	notifications := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		var createdAt string
		err := rows.Scan(&n.ID, &n.Type, &n.Action, &n.EntityID, &n.EntityName, &n.Message, &n.UserID, &n.Priority, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		if n.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parse notification created_at: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}
	return notifications, nil
}
