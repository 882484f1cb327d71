package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/nilecart/storefront_api/internal/models"
	"github.com/nilecart/storefront_api/internal/utils"
	"github.com/nilecart/storefront_api/internal/workflow"
)

// BrandStore is the persistence surface the brand service needs.
type BrandStore interface {
	Create(ctx context.Context, b *models.Brand) error
	GetByID(ctx context.Context, id int) (*models.Brand, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ListAccepted(ctx context.Context) ([]models.Brand, error)
	ListAdmin(ctx context.Context, status string, page, limit int) ([]models.Brand, int, error)
	UpdateStatus(ctx context.Context, id int, from, to workflow.Status) (int64, error)
}

// SubmitBrandRequest is the payload for a brand submission.
type SubmitBrandRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	ContactEmail string `json:"contactEmail" binding:"required,email"`
	ContactPhone string `json:"contactPhone"`
}

// BrandService handles brand submission and moderation.
type BrandService struct {
	brands   BrandStore
	recorder recorder
}

// NewBrandService constructs a BrandService.
func NewBrandService(brands BrandStore, rec recorder) *BrandService {
	return &BrandService{brands: brands, recorder: rec}
}

// Submit registers a brand for moderation. Fresh submissions always start
// pending.
func (s *BrandService) Submit(ctx context.Context, req *SubmitBrandRequest) (*models.Brand, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationError("Brand name is required")
	}
	taken, err := s.brands.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, utils.ErrBrandNameTaken
	}

	brand := &models.Brand{
		Name:         name,
		Description:  req.Description,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Status:       workflow.StatusPending,
	}
	if err := s.brands.Create(ctx, brand); err != nil {
		return nil, err
	}

	s.recorder.RecordSubmission(ctx, models.NotificationBrand, brand.ID, brand.Name)
	return brand, nil
}

// ListAccepted returns the accepted brands shown publicly and offered to
// product submitters.
func (s *BrandService) ListAccepted(ctx context.Context) ([]models.Brand, error) {
	return s.brands.ListAccepted(ctx)
}

// ListAdmin returns brands for the moderation panel.
func (s *BrandService) ListAdmin(ctx context.Context, status string, page, limit int) ([]models.Brand, int, error) {
	return s.brands.ListAdmin(ctx, status, page, limit)
}

// Moderate moves a brand from pending to accepted or rejected. Transitions
// out of a terminal status are rejected; a concurrent moderation losing the
// compare-and-set surfaces as a status conflict.
func (s *BrandService) Moderate(ctx context.Context, id int, to workflow.Status) (*models.Brand, error) {
	brand, err := s.brands.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	if err := workflow.Moderate(brand.Status, to); err != nil {
		return nil, err
	}

	n, err := s.brands.UpdateStatus(ctx, id, brand.Status, to)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, utils.ErrStatusConflict
	}
	brand.Status = to

	log.Info().Int("brand_id", id).Str("status", string(to)).Msg("Brand moderated")
	s.recorder.RecordStatusChange(ctx, models.NotificationBrand, brand.ID, brand.Name, to)
	return brand, nil
}
