package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nilecart/storefront_api/internal/models"
	"github.com/nilecart/storefront_api/internal/utils"
	"github.com/nilecart/storefront_api/internal/workflow"
)

// OrderRepository handles data access for orders and their line items.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts an order with its line items and decrements product stock in
// a single transaction. The stock decrement is guarded: if any product lacks
// sufficient stock, the whole order is rolled back with ErrInsufficientStock.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const orderQ = `
        INSERT INTO orders (customer_name, customer_email, customer_phone, address, city,
                            subtotal, shipping_cost, total, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at`

	if err := tx.QueryRowxContext(ctx, orderQ,
		o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.Address, o.City,
		o.Subtotal, o.ShippingCost, o.Total, o.Status,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return err
	}

	const itemQ = `
        INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`
	const stockQ = `UPDATE products SET stock = stock - $2, updated_at = NOW() WHERE id = $1 AND stock >= $2`

	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		if err := tx.QueryRowxContext(ctx, itemQ,
			it.OrderID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice,
		).Scan(&it.ID); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, stockQ, it.ProductID, it.Quantity)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return utils.ErrInsufficientStock
		}
	}

	return tx.Commit()
}

// GetByID returns an order with its line items.
func (r *OrderRepository) GetByID(ctx context.Context, id int) (*models.Order, error) {
	var o models.Order
	if err := r.db.GetContext(ctx, &o, `SELECT * FROM orders WHERE id = $1`, id); err != nil {
		return nil, err
	}

	const itemsQ = `SELECT * FROM order_items WHERE order_id = $1 ORDER BY id`
	if err := r.db.SelectContext(ctx, &o.Items, itemsQ, id); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListAdmin returns orders for the admin panel, optionally filtered by
// status, paginated, plus the total count. Line items are not loaded for
// list views.
func (r *OrderRepository) ListAdmin(ctx context.Context, status string, page, limit int) ([]models.Order, int, error) {
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
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(1) FROM orders `+baseWhere, args...); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(`SELECT * FROM orders %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	var orders []models.Order
	if err := r.db.SelectContext(ctx, &orders, listQuery, args...); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus moves an order between statuses with a compare-and-set on the
// current status. Returns the number of rows updated.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int, from, to workflow.Status) (int64, error) {
	const q = `UPDATE orders SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`
	res, err := r.db.ExecContext(ctx, q, id, from, to)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// RestoreStock returns the line-item quantities of an order to product stock.
// Used when an order is cancelled before shipping.
func (r *OrderRepository) RestoreStock(ctx context.Context, orderID int) error {
	const q = `
        UPDATE products p SET stock = p.stock + oi.quantity, updated_at = NOW()
        FROM order_items oi
        WHERE oi.order_id = $1 AND oi.product_id = p.id`
	_, err := r.db.ExecContext(ctx, q, orderID)
	return err
}

// Stats aggregates order counts by status plus delivered revenue.
func (r *OrderRepository) Stats(ctx context.Context) (*models.OrderStats, error) {
	const q = `
        SELECT
            COUNT(1) AS total,
            COUNT(1) FILTER (WHERE status = 'pending')   AS pending,
            COUNT(1) FILTER (WHERE status = 'confirmed') AS confirmed,
            COUNT(1) FILTER (WHERE status = 'shipped')   AS shipped,
            COUNT(1) FILTER (WHERE status = 'delivered') AS delivered,
            COUNT(1) FILTER (WHERE status = 'cancelled') AS cancelled,
            COALESCE(SUM(total) FILTER (WHERE status = 'delivered'), 0) AS revenue
        FROM orders`

	var stats models.OrderStats
	if err := r.db.GetContext(ctx, &stats, q); err != nil {
		return nil, err
	}
	return &stats, nil
}
