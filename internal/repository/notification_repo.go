package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nilecart/storefront_api/internal/models"
)

// NotificationRepository handles data access for admin notifications.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a notification record.
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	const q = `
        INSERT INTO notifications (type, title, message, is_read)
        VALUES ($1, $2, $3, false)
        RETURNING id, created_at`

	return r.db.QueryRowxContext(ctx, q, n.Type, n.Title, n.Message).Scan(&n.ID, &n.CreatedAt)
}

// List returns notifications newest-first, optionally unread only, paginated,
// plus the total count.
func (r *NotificationRepository) List(ctx context.Context, unreadOnly bool, page, limit int) ([]models.Notification, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	offset := (page - 1) * limit

	const baseWhere = `WHERE ($1 = false OR is_read = false)`

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(1) FROM notifications `+baseWhere, unreadOnly); err != nil {
		return nil, 0, err
	}

	const listQuery = `SELECT * FROM notifications ` + baseWhere + ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	var notifications []models.Notification
	if err := r.db.SelectContext(ctx, &notifications, listQuery, unreadOnly, limit, offset); err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// UnreadCount returns the number of unread notifications for the bell badge.
func (r *NotificationRepository) UnreadCount(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(1) FROM notifications WHERE is_read = false`)
	return n, err
}

// MarkRead flags a single notification as read. Returns the number of rows
// updated: 0 means the id does not exist.
func (r *NotificationRepository) MarkRead(ctx context.Context, id int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = true WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// MarkAllRead flags every unread notification as read.
func (r *NotificationRepository) MarkAllRead(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = true WHERE is_read = false`)
	return err
}

// DeleteReadBefore removes read notifications created before the cutoff.
// Returns how many rows were deleted.
func (r *NotificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE is_read = true AND created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
