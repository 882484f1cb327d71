package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nilecart/storefront_api/internal/models"
	"github.com/nilecart/storefront_api/internal/workflow"
)

// AdRepository handles data access for ad campaigns.
type AdRepository struct {
	db *sqlx.DB
}

// NewAdRepository creates a new AdRepository.
func NewAdRepository(db *sqlx.DB) *AdRepository {
	return &AdRepository{db: db}
}

// Create inserts a new ad submission.
func (r *AdRepository) Create(ctx context.Context, a *models.Ad) error {
	const q = `
        INSERT INTO ads (title, description, budget, image_url, starts_at, ends_at, is_active, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, q,
		a.Title, a.Description, a.Budget, a.ImageURL, a.StartsAt, a.EndsAt, a.IsActive, a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// GetByID returns a single ad by id.
func (r *AdRepository) GetByID(ctx context.Context, id int) (*models.Ad, error) {
	var a models.Ad
	if err := r.db.GetContext(ctx, &a, `SELECT * FROM ads WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListRunning returns accepted, active ads currently inside their date window.
func (r *AdRepository) ListRunning(ctx context.Context, now time.Time) ([]models.Ad, error) {
	const q = `
        SELECT * FROM ads
        WHERE status = 'accepted' AND is_active = true
        AND starts_at <= $1 AND ends_at >= $1
        ORDER BY budget DESC`

	var ads []models.Ad
	if err := r.db.SelectContext(ctx, &ads, q, now); err != nil {
		return nil, err
	}
	return ads, nil
}

// ListAdmin returns ads for the moderation panel, optionally filtered by
// status, paginated, plus the total count.
func (r *AdRepository) ListAdmin(ctx context.Context, status string, page, limit int) ([]models.Ad, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	offset := (page - 1) * limit

	baseWhere := `WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(1) FROM ads `+baseWhere, args...); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(`SELECT * FROM ads %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	var ads []models.Ad
	if err := r.db.SelectContext(ctx, &ads, listQuery, args...); err != nil {
		return nil, 0, err
	}
	return ads, total, nil
}

// UpdateStatus moves an ad between statuses with a compare-and-set on the
// current status. Returns the number of rows updated.
func (r *AdRepository) UpdateStatus(ctx context.Context, id int, from, to workflow.Status) (int64, error) {
	const q = `UPDATE ads SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`
	res, err := r.db.ExecContext(ctx, q, id, from, to)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeactivateExpired flips the active flag off for accepted ads whose window
// has closed. Returns how many ads were deactivated.
func (r *AdRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	const q = `UPDATE ads SET is_active = false, updated_at = NOW() WHERE is_active = true AND ends_at < $1`
	res, err := r.db.ExecContext(ctx, q, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
