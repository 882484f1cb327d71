package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/nilecart/storefront_api/internal/cache"
	"github.com/nilecart/storefront_api/internal/models"
	"github.com/nilecart/storefront_api/internal/repository"
	"github.com/nilecart/storefront_api/internal/utils"
	"github.com/nilecart/storefront_api/internal/workflow"
)

// ProductStore is the persistence surface the product service needs.
type ProductStore interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id int) (*models.Product, error)
	ListPublic(ctx context.Context, category, search string, page, limit int) ([]models.Product, int, error)
	ListAdmin(ctx context.Context, filter *repository.AdminProductFilter) ([]models.Product, int, error)
	UpdateStatus(ctx context.Context, id int, from, to workflow.Status) (int64, error)
	Delete(ctx context.Context, id int) error
	GetDistinctCategories(ctx context.Context) ([]string, error)
}

// ListingCache caches public catalog pages. A nil cache disables caching.
type ListingCache interface {
	GetListing(ctx context.Context, category, search string, page, limit int) (*cache.CatalogPage, error)
	SetListing(ctx context.Context, category, search string, page, limit int, data *cache.CatalogPage) error
	Invalidate(ctx context.Context) error
}

// Screener screens a submitted image URL and returns the names of any unsafe
// content labels found. A nil screener disables screening.
type Screener interface {
	ScreenURL(ctx context.Context, imageURL string) ([]string, error)
}

// SubmitProductRequest is the payload for a product submission.
type SubmitProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category" binding:"required"`
	ImageURL    string  `json:"imageUrl"`
	BrandID     int     `json:"brandId" binding:"required"`
	Stock       int     `json:"stock"`
}

// ProductService handles catalog listing, product submission and moderation.
type ProductService struct {
	products ProductStore
	brands   BrandStore
	listings ListingCache
	screener Screener
	recorder recorder
}

// NewProductService constructs a ProductService. listings and screener may be
// nil to disable catalog caching and image screening respectively.
func NewProductService(products ProductStore, brands BrandStore, listings ListingCache, screener Screener, rec recorder) *ProductService {
	return &ProductService{
		products: products,
		brands:   brands,
		listings: listings,
		screener: screener,
		recorder: rec,
	}
}

// Submit registers a product for moderation. Fresh submissions always start
// pending, and the referenced brand must already be accepted.
func (s *ProductService) Submit(ctx context.Context, req *SubmitProductRequest) (*models.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, validationError("Product name is required")
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		return nil, validationError("Image URL is required")
	}
	if req.Price <= 0 {
		return nil, validationError("Price must be positive")
	}
	if req.Stock < 0 {
		return nil, validationError("Stock must not be negative")
	}

	brand, err := s.brands.GetByID(ctx, req.BrandID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, validationError("Brand not found")
		}
		return nil, err
	}
	if brand.Status != workflow.StatusAccepted {
		return nil, utils.ErrBrandNotAccepted
	}

	product := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		BrandID:     req.BrandID,
		Stock:       req.Stock,
		Status:      workflow.StatusPending,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	product.BrandName = brand.Name

	s.recorder.RecordSubmission(ctx, models.NotificationProduct, product.ID, product.Name)
	s.screenImage(ctx, product.ID, product.Name, product.ImageURL)
	return product, nil
}

// screenImage runs the optional unsafe-content check. Best-effort: a screener
// failure never blocks the submission, a hit only produces a notification for
// the moderator reviewing the product anyway.
func (s *ProductService) screenImage(ctx context.Context, id int, name, imageURL string) {
	if s.screener == nil {
		return
	}
	labels, err := s.screener.ScreenURL(ctx, imageURL)
	if err != nil {
		log.Warn().Err(err).Int("product_id", id).Msg("Image screening failed")
		return
	}
	if len(labels) > 0 {
		log.Warn().Int("product_id", id).Strs("labels", labels).Msg("Image flagged by screening")
		s.recorder.RecordSubmission(ctx, models.NotificationProduct, id, name+" (image flagged: "+strings.Join(labels, ", ")+")")
	}
}

// ListPublic returns the publicly visible catalog page, served from the
// listing cache when possible. Cache failures fall through to the database.
func (s *ProductService) ListPublic(ctx context.Context, category, search string, page, limit int) ([]models.Product, int, error) {
	if s.listings != nil {
		if cached, err := s.listings.GetListing(ctx, category, search, page, limit); err != nil {
			log.Warn().Err(err).Msg("Catalog cache read failed")
		} else if cached != nil {
			return cached.Products, cached.Total, nil
		}
	}

	products, total, err := s.products.ListPublic(ctx, category, search, page, limit)
	if err != nil {
		return nil, 0, err
	}

	if s.listings != nil {
		if err := s.listings.SetListing(ctx, category, search, page, limit, &cache.CatalogPage{Products: products, Total: total}); err != nil {
			log.Warn().Err(err).Msg("Catalog cache write failed")
		}
	}
	return products, total, nil
}

// GetPublic returns a product by id if it is publicly listed.
func (s *ProductService) GetPublic(ctx context.Context, id int) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	if product.Status != workflow.StatusAccepted {
		return nil, utils.ErrProductNotListed
	}
	return product, nil
}

// GetByID returns a product by id regardless of status (admin view).
func (s *ProductService) GetByID(ctx context.Context, id int) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

// ListAdmin returns products for the moderation panel.
func (s *ProductService) ListAdmin(ctx context.Context, filter *repository.AdminProductFilter) ([]models.Product, int, error) {
	return s.products.ListAdmin(ctx, filter)
}

// Categories returns the distinct categories of listed products.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.products.GetDistinctCategories(ctx)
}

// Moderate moves a product from pending to accepted or rejected.
func (s *ProductService) Moderate(ctx context.Context, id int, to workflow.Status) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	if err := workflow.Moderate(product.Status, to); err != nil {
		return nil, err
	}

	n, err := s.products.UpdateStatus(ctx, id, product.Status, to)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, utils.ErrStatusConflict
	}
	product.Status = to

	log.Info().Int("product_id", id).Str("status", string(to)).Msg("Product moderated")
	s.recorder.RecordStatusChange(ctx, models.NotificationProduct, product.ID, product.Name, to)
	s.invalidateListings(ctx)
	return product, nil
}

// Delete removes a product from the catalog entirely.
func (s *ProductService) Delete(ctx context.Context, id int) error {
	if _, err := s.products.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrNotFound
		}
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateListings(ctx)
	return nil
}

func (s *ProductService) invalidateListings(ctx context.Context) {
	if s.listings == nil {
		return
	}
	if err := s.listings.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("Catalog cache invalidation failed")
	}
}
