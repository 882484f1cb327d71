package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nilecart/storefront_api/internal/models"
	"github.com/nilecart/storefront_api/internal/workflow"
)

// BrandRepository handles data access for brands.
type BrandRepository struct {
	db *sqlx.DB
}

// NewBrandRepository creates a new BrandRepository.
func NewBrandRepository(db *sqlx.DB) *BrandRepository {
	return &BrandRepository{db: db}
}

// Create inserts a new brand submission.
func (r *BrandRepository) Create(ctx context.Context, b *models.Brand) error {
	const q = `
        INSERT INTO brands (name, description, contact_email, contact_phone, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, q,
		b.Name, b.Description, b.ContactEmail, b.ContactPhone, b.Status,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// GetByID returns a single brand by id.
func (r *BrandRepository) GetByID(ctx context.Context, id int) (*models.Brand, error) {
	var b models.Brand
	if err := r.db.GetContext(ctx, &b, `SELECT * FROM brands WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &b, nil
}

// ExistsByName reports whether a brand with the given name already exists.
// Names are compared case-insensitively.
func (r *BrandRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var id int
	err := r.db.GetContext(ctx, &id, `SELECT id FROM brands WHERE LOWER(name) = LOWER($1)`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListAccepted returns all accepted brands, the set offered to product
// submitters and shown on the storefront.
func (r *BrandRepository) ListAccepted(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	const q = `SELECT * FROM brands WHERE status = 'accepted' ORDER BY name`
	if err := r.db.SelectContext(ctx, &brands, q); err != nil {
		return nil, err
	}
	return brands, nil
}

// ListAdmin returns brands for the moderation panel, optionally filtered by
// status, paginated, plus the total count.
func (r *BrandRepository) ListAdmin(ctx context.Context, status string, page, limit int) ([]models.Brand, int, error) {
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
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(1) FROM brands `+baseWhere, args...); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(`SELECT * FROM brands %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	var brands []models.Brand
	if err := r.db.SelectContext(ctx, &brands, listQuery, args...); err != nil {
		return nil, 0, err
	}
	return brands, total, nil
}

// UpdateStatus moves a brand between statuses with a compare-and-set on the
// current status. Returns the number of rows updated.
func (r *BrandRepository) UpdateStatus(ctx context.Context, id int, from, to workflow.Status) (int64, error) {
	const q = `UPDATE brands SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`
	res, err := r.db.ExecContext(ctx, q, id, from, to)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
