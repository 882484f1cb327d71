package models

import (
	"time"

	"github.com/nilecart/storefront_api/internal/workflow"
)

// Order is a checkout result. Shipping cost, subtotal and total are derived
// server-side at creation and never recomputed afterwards.
type Order struct {
	ID            int             `db:"id" json:"id"`
	CustomerName  string          `db:"customer_name" json:"customerName"`
	CustomerEmail string          `db:"customer_email" json:"customerEmail"`
	CustomerPhone string          `db:"customer_phone" json:"customerPhone"`
	Address       string          `db:"address" json:"address"`
	City          string          `db:"city" json:"city"`
	Subtotal      float64         `db:"subtotal" json:"subtotal"`
	ShippingCost  float64         `db:"shipping_cost" json:"shippingCost"`
	Total         float64         `db:"total" json:"total"`
	Status        workflow.Status `db:"status" json:"status"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updatedAt"`

	Items []OrderItem `db:"-" json:"items,omitempty"`
}

// OrderItem is a line item with name and unit price snapshotted at order
// creation. Later catalog price changes must not alter historical orders.
type OrderItem struct {
	ID          int     `db:"id" json:"-"`
	OrderID     int     `db:"order_id" json:"-"`
	ProductID   int     `db:"product_id" json:"productId"`
	ProductName string  `db:"product_name" json:"productName"`
	Quantity    int     `db:"quantity" json:"quantity"`
	UnitPrice   float64 `db:"unit_price" json:"unitPrice"`
}

// OrderStats aggregates order counts and revenue for the admin dashboard.
type OrderStats struct {
	Total     int     `db:"total" json:"total"`
	Pending   int     `db:"pending" json:"pending"`
	Confirmed int     `db:"confirmed" json:"confirmed"`
	Shipped   int     `db:"shipped" json:"shipped"`
	Delivered int     `db:"delivered" json:"delivered"`
	Cancelled int     `db:"cancelled" json:"cancelled"`
	Revenue   float64 `db:"revenue" json:"revenue"`
}
