package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nilecart/storefront_api/internal/service"
)

// NotificationPruneWorker deletes old read notifications on a fixed interval.
type NotificationPruneWorker struct {
	notificationService *service.NotificationService
	interval            time.Duration
	retention           time.Duration
}

// NewNotificationPruneWorker constructs a NotificationPruneWorker.
func NewNotificationPruneWorker(notificationService *service.NotificationService, interval, retention time.Duration) *NotificationPruneWorker {
	return &NotificationPruneWorker{
		notificationService: notificationService,
		interval:            interval,
		retention:           retention,
	}
}

// Start begins the prune loop and listens for context cancellation.
func (w *NotificationPruneWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Dur("retention", w.retention).Msg("Starting notification prune worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Notification prune worker stopped")
			return
		}
	}
}

func (w *NotificationPruneWorker) run(ctx context.Context) {
	pruned, err := w.notificationService.PruneRead(ctx, w.retention)
	if err != nil {
		log.Error().Err(err).Msg("Failed to prune notifications")
		return
	}
	if pruned > 0 {
		log.Info().Int64("count", pruned).Msg("Pruned read notifications")
	}
}
