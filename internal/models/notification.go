package models

import "time"

// NotificationType identifies which entity kind produced a notification.
type NotificationType string

const (
	NotificationOrder   NotificationType = "order"
	NotificationAd      NotificationType = "ad"
	NotificationBrand   NotificationType = "brand"
	NotificationProduct NotificationType = "product"
)

// Notification is a fan-in record created whenever an entity changes state,
// consumed by the admin bell. Creation is best-effort: a failed insert never
// rolls back the state change that produced it.
type Notification struct {
	ID        int              `db:"id" json:"id"`
	Type      NotificationType `db:"type" json:"type"`
	Title     string           `db:"title" json:"title"`
	Message   string           `db:"message" json:"message"`
	IsRead    bool             `db:"is_read" json:"isRead"`
	CreatedAt time.Time        `db:"created_at" json:"createdAt"`
}
