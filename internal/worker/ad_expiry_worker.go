package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nilecart/storefront_api/internal/service"
)

// AdExpiryWorker deactivates ads past their end date on a fixed interval.
type AdExpiryWorker struct {
	adService *service.AdService
	interval  time.Duration
}

// NewAdExpiryWorker constructs an AdExpiryWorker.
func NewAdExpiryWorker(adService *service.AdService, interval time.Duration) *AdExpiryWorker {
	return &AdExpiryWorker{
		adService: adService,
		interval:  interval,
	}
}

// Start begins the expiry loop and listens for context cancellation.
func (w *AdExpiryWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting ad expiry worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Ad expiry worker stopped")
			return
		}
	}
}

func (w *AdExpiryWorker) run(ctx context.Context) {
	expired, err := w.adService.ExpireDue(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to expire ads")
		return
	}
	if expired > 0 {
		log.Info().Int64("count", expired).Msg("Deactivated expired ads")
	}
}
