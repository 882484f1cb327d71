package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nilecart/storefront_api/internal/models"
	"github.com/nilecart/storefront_api/internal/utils"
	"github.com/nilecart/storefront_api/internal/workflow"
)

// AdStore is the persistence surface the ad service needs.
type AdStore interface {
	Create(ctx context.Context, a *models.Ad) error
	GetByID(ctx context.Context, id int) (*models.Ad, error)
	ListRunning(ctx context.Context, now time.Time) ([]models.Ad, error)
	ListAdmin(ctx context.Context, status string, page, limit int) ([]models.Ad, int, error)
	UpdateStatus(ctx context.Context, id int, from, to workflow.Status) (int64, error)
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

// SubmitAdRequest is the payload for an ad submission.
type SubmitAdRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Budget      float64   `json:"budget"`
	ImageURL    string    `json:"imageUrl"`
	StartsAt    time.Time `json:"startsAt" binding:"required"`
	EndsAt      time.Time `json:"endsAt" binding:"required"`
}

// AdService handles ad submission, moderation and expiry.
type AdService struct {
	ads      AdStore
	screener Screener
	recorder recorder
}

// NewAdService constructs an AdService. screener may be nil to disable image
// screening.
func NewAdService(ads AdStore, screener Screener, rec recorder) *AdService {
	return &AdService{ads: ads, screener: screener, recorder: rec}
}

// Submit registers an ad campaign for moderation. Fresh submissions always
// start pending and active, so acceptance alone makes them live inside the
// date window.
func (s *AdService) Submit(ctx context.Context, req *SubmitAdRequest) (*models.Ad, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, validationError("Ad title is required")
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		return nil, validationError("Image URL is required")
	}
	if req.Budget <= 0 {
		return nil, validationError("Budget must be positive")
	}
	if req.EndsAt.Before(req.StartsAt) {
		return nil, validationError("End date must not be before start date")
	}

	ad := &models.Ad{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Budget:      req.Budget,
		ImageURL:    req.ImageURL,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		IsActive:    true,
		Status:      workflow.StatusPending,
	}
	if err := s.ads.Create(ctx, ad); err != nil {
		return nil, err
	}

	s.recorder.RecordSubmission(ctx, models.NotificationAd, ad.ID, ad.Title)
	s.screenImage(ctx, ad.ID, ad.Title, ad.ImageURL)
	return ad, nil
}

func (s *AdService) screenImage(ctx context.Context, id int, title, imageURL string) {
	if s.screener == nil {
		return
	}
	labels, err := s.screener.ScreenURL(ctx, imageURL)
	if err != nil {
		log.Warn().Err(err).Int("ad_id", id).Msg("Image screening failed")
		return
	}
	if len(labels) > 0 {
		log.Warn().Int("ad_id", id).Strs("labels", labels).Msg("Image flagged by screening")
		s.recorder.RecordSubmission(ctx, models.NotificationAd, id, title+" (image flagged: "+strings.Join(labels, ", ")+")")
	}
}

// ListRunning returns ads to show on the storefront right now.
func (s *AdService) ListRunning(ctx context.Context) ([]models.Ad, error) {
	return s.ads.ListRunning(ctx, time.Now())
}

// ListAdmin returns ads for the moderation panel.
func (s *AdService) ListAdmin(ctx context.Context, status string, page, limit int) ([]models.Ad, int, error) {
	return s.ads.ListAdmin(ctx, status, page, limit)
}

// Moderate moves an ad from pending to accepted or rejected.
func (s *AdService) Moderate(ctx context.Context, id int, to workflow.Status) (*models.Ad, error) {
	ad, err := s.ads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	if err := workflow.Moderate(ad.Status, to); err != nil {
		return nil, err
	}

	n, err := s.ads.UpdateStatus(ctx, id, ad.Status, to)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, utils.ErrStatusConflict
	}
	ad.Status = to

	log.Info().Int("ad_id", id).Str("status", string(to)).Msg("Ad moderated")
	s.recorder.RecordStatusChange(ctx, models.NotificationAd, ad.ID, ad.Title, to)
	return ad, nil
}

// ExpireDue deactivates ads whose window has closed. Called by the expiry
// worker.
func (s *AdService) ExpireDue(ctx context.Context) (int64, error) {
	return s.ads.DeactivateExpired(ctx, time.Now())
}
