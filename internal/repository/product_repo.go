package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nilecart/storefront_api/internal/models"
	"github.com/nilecart/storefront_api/internal/workflow"
)

// ProductRepository handles data access for products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product submission. Status is set by the caller
// (always pending for fresh submissions).
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	const q = `
        INSERT INTO products (name, description, price, category, image_url, brand_id, stock, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, q,
		p.Name, p.Description, p.Price, p.Category, p.ImageURL, p.BrandID, p.Stock, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetByID returns a single product with its brand name joined.
func (r *ProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	const q = `
        SELECT p.*, b.name AS brand_name
        FROM products p
        JOIN brands b ON b.id = p.brand_id
        WHERE p.id = $1`

	var p models.Product
	if err := r.db.GetContext(ctx, &p, q, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPublic returns accepted products of accepted brands with optional
// category and name-search filters, paginated, plus the total count.
func (r *ProductRepository) ListPublic(ctx context.Context, category, search string, page, limit int) ([]models.Product, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	offset := (page - 1) * limit

	const baseWhere = `
        FROM products p
        JOIN brands b ON b.id = p.brand_id
        WHERE p.status = 'accepted'
        AND b.status = 'accepted'
        AND ($1 = '' OR p.category = $1)
        AND ($2 = '' OR p.name ILIKE '%' || $2 || '%')`

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(1) `+baseWhere, category, search); err != nil {
		return nil, 0, err
	}

	listQuery := `SELECT p.*, b.name AS brand_name ` + baseWhere + `
        ORDER BY p.category, b.name, p.name LIMIT $3 OFFSET $4`
	var products []models.Product
	if err := r.db.SelectContext(ctx, &products, listQuery, category, search, limit, offset); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// AdminProductFilter holds filters for admin product queries.
type AdminProductFilter struct {
	Status   string
	Category string
	BrandID  int
	Search   string
	Page     int
	Limit    int
}

// ListAdmin returns products for the moderation panel with filters and
// pagination, regardless of status.
func (r *ProductRepository) ListAdmin(ctx context.Context, filter *AdminProductFilter) ([]models.Product, int, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	offset := (filter.Page - 1) * filter.Limit

	baseWhere := `WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Category != "" {
		baseWhere += fmt.Sprintf(" AND p.category = $%d", argIdx)
		args = append(args, filter.Category)
		argIdx++
	}
	if filter.BrandID != 0 {
		baseWhere += fmt.Sprintf(" AND p.brand_id = $%d", argIdx)
		args = append(args, filter.BrandID)
		argIdx++
	}
	if filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND p.name ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	countQuery := `SELECT COUNT(1) FROM products p ` + baseWhere
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(`
        SELECT p.*, b.name AS brand_name
        FROM products p
        JOIN brands b ON b.id = p.brand_id
        %s
        ORDER BY p.created_at DESC
        LIMIT $%d OFFSET $%d`, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	var products []models.Product
	if err := r.db.SelectContext(ctx, &products, listQuery, args...); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// UpdateStatus moves a product between statuses with a compare-and-set on the
// current status. Returns the number of rows updated: 0 means the product was
// missing or no longer in the expected status.
func (r *ProductRepository) UpdateStatus(ctx context.Context, id int, from, to workflow.Status) (int64, error) {
	const q = `UPDATE products SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`
	res, err := r.db.ExecContext(ctx, q, id, from, to)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete deletes a product by ID.
func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}

// GetDistinctCategories returns all distinct categories of listed products.
func (r *ProductRepository) GetDistinctCategories(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT category FROM products WHERE category != '' AND status = 'accepted' ORDER BY category`
	var categories []string
	if err := r.db.SelectContext(ctx, &categories, q); err != nil {
		return nil, err
	}
	return categories, nil
}
