package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nilecart/storefront_api/internal/models"
	"github.com/nilecart/storefront_api/internal/sse"
	"github.com/nilecart/storefront_api/internal/utils"
	"github.com/nilecart/storefront_api/internal/workflow"
)

// NotificationStore is the persistence surface the notification service needs.
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	List(ctx context.Context, unreadOnly bool, page, limit int) ([]models.Notification, int, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id int) (int64, error)
	MarkAllRead(ctx context.Context) error
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// recorder is what the other services use to report state changes. Recording
// is best-effort by contract: implementations never propagate failures back
// to the primary state change.
type recorder interface {
	RecordSubmission(ctx context.Context, kind models.NotificationType, entityID int, name string)
	RecordStatusChange(ctx context.Context, kind models.NotificationType, entityID int, name string, status workflow.Status)
}

// NotificationService persists admin notifications and mirrors them onto the
// SSE feed.
type NotificationService struct {
	repo     NotificationStore
	notifier sse.EventNotifier
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(repo NotificationStore, notifier sse.EventNotifier) *NotificationService {
	if notifier == nil {
		notifier = &sse.NopNotifier{}
	}
	return &NotificationService{repo: repo, notifier: notifier}
}

// RecordSubmission notes that a new entity arrived for moderation (or a new
// order was placed). Failures are logged and swallowed.
func (s *NotificationService) RecordSubmission(ctx context.Context, kind models.NotificationType, entityID int, name string) {
	n := &models.Notification{
		Type:    kind,
		Title:   fmt.Sprintf("New %s submitted", kind),
		Message: fmt.Sprintf("%s #%d (%s) is awaiting review", kind, entityID, name),
	}
	if kind == models.NotificationOrder {
		n.Title = "New order placed"
		n.Message = fmt.Sprintf("Order #%d from %s is awaiting confirmation", entityID, name)
	}
	if err := s.repo.Create(ctx, n); err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Int("entity_id", entityID).Msg("Failed to record submission notification")
	}
	s.notifier.NotifySubmission(kind, entityID, name)
}

// RecordStatusChange notes that an entity moved to a new status. Failures are
// logged and swallowed so the status change itself is never rolled back.
func (s *NotificationService) RecordStatusChange(ctx context.Context, kind models.NotificationType, entityID int, name string, status workflow.Status) {
	n := &models.Notification{
		Type:    kind,
		Title:   fmt.Sprintf("%s %s", kind, status),
		Message: fmt.Sprintf("%s #%d (%s) is now %s", kind, entityID, name, status),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Int("entity_id", entityID).Msg("Failed to record status notification")
	}
	s.notifier.NotifyStatusChange(kind, entityID, name, status)
}

// List returns notifications plus total and unread counts.
func (s *NotificationService) List(ctx context.Context, unreadOnly bool, page, limit int) ([]models.Notification, int, int, error) {
	notifications, total, err := s.repo.List(ctx, unreadOnly, page, limit)
	if err != nil {
		return nil, 0, 0, err
	}
	unread, err := s.repo.UnreadCount(ctx)
	if err != nil {
		return nil, 0, 0, err
	}
	return notifications, total, unread, nil
}

// MarkRead flags a single notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id int) error {
	n, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// MarkAllRead flags every unread notification as read.
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	return s.repo.MarkAllRead(ctx)
}

// PruneRead removes read notifications older than the retention window.
func (s *NotificationService) PruneRead(ctx context.Context, retention time.Duration) (int64, error) {
	return s.repo.DeleteReadBefore(ctx, time.Now().Add(-retention))
}
