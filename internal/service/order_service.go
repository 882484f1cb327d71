package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/nilecart/storefront_api/internal/models"
	"github.com/nilecart/storefront_api/internal/pricing"
	"github.com/nilecart/storefront_api/internal/utils"
	"github.com/nilecart/storefront_api/internal/workflow"
)

// OrderStore is the persistence surface the order service needs.
type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id int) (*models.Order, error)
	ListAdmin(ctx context.Context, status string, page, limit int) ([]models.Order, int, error)
	UpdateStatus(ctx context.Context, id int, from, to workflow.Status) (int64, error)
	RestoreStock(ctx context.Context, orderID int) error
	Stats(ctx context.Context) (*models.OrderStats, error)
}

// CatalogReader is the slice of the product store checkout needs.
type CatalogReader interface {
	GetByID(ctx context.Context, id int) (*models.Product, error)
}

// CheckoutItem is one requested line in a checkout.
type CheckoutItem struct {
	ProductID int `json:"productId" binding:"required"`
	Quantity  int `json:"quantity" binding:"required"`
}

// CheckoutRequest is the payload for placing an order.
type CheckoutRequest struct {
	CustomerName  string         `json:"customerName" binding:"required"`
	CustomerEmail string         `json:"customerEmail" binding:"required,email"`
	CustomerPhone string         `json:"customerPhone" binding:"required"`
	Address       string         `json:"address" binding:"required"`
	City          string         `json:"city" binding:"required"`
	Items         []CheckoutItem `json:"items" binding:"required"`
}

// OrderService handles checkout and the order fulfilment workflow.
type OrderService struct {
	orders   OrderStore
	catalog  CatalogReader
	recorder recorder
}

// NewOrderService constructs an OrderService.
func NewOrderService(orders OrderStore, catalog CatalogReader, rec recorder) *OrderService {
	return &OrderService{orders: orders, catalog: catalog, recorder: rec}
}

// Checkout validates the cart against the live catalog, snapshots names and
// unit prices, derives shipping and totals, and persists the order. Unit
// prices always come from the catalog, never from the client.
func (s *OrderService) Checkout(ctx context.Context, req *CheckoutRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, pricing.ErrEmptyOrder
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	priced := make([]pricing.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		product, err := s.catalog.GetByID(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, validationError(fmt.Sprintf("Product %d not found", it.ProductID))
			}
			return nil, err
		}
		if product.Status != workflow.StatusAccepted {
			return nil, utils.ErrProductNotListed
		}
		if product.Stock < it.Quantity {
			return nil, utils.ErrInsufficientStock
		}
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    it.Quantity,
			UnitPrice:   product.Price,
		})
		priced = append(priced, pricing.LineItem{Quantity: it.Quantity, UnitPrice: product.Price})
	}

	shipping := pricing.ShippingCost(req.City)
	quote, err := pricing.OrderTotal(priced, shipping)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Address:       req.Address,
		City:          req.City,
		Subtotal:      quote.Subtotal,
		ShippingCost:  quote.ShippingCost,
		Total:         quote.Total,
		Status:        workflow.StatusPending,
		Items:         items,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	log.Info().Int("order_id", order.ID).Float64("total", order.Total).Str("city", order.City).Msg("Order placed")
	s.recorder.RecordSubmission(ctx, models.NotificationOrder, order.ID, order.CustomerName)
	return order, nil
}

// GetByID returns an order with its line items.
func (s *OrderService) GetByID(ctx context.Context, id int) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// ListAdmin returns orders for the admin panel.
func (s *OrderService) ListAdmin(ctx context.Context, status string, page, limit int) ([]models.Order, int, error) {
	return s.orders.ListAdmin(ctx, status, page, limit)
}

// UpdateStatus advances an order through the fulfilment workflow. The
// transition table is enforced here, never left to the caller. Cancelling an
// unshipped order returns its line items to stock.
func (s *OrderService) UpdateStatus(ctx context.Context, id int, to workflow.Status) (*models.Order, error) {
	if !workflow.ValidOrderStatus(to) {
		return nil, validationError(fmt.Sprintf("Unknown order status '%s'", to))
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	if err := workflow.AdvanceOrder(order.Status, to); err != nil {
		return nil, err
	}

	n, err := s.orders.UpdateStatus(ctx, id, order.Status, to)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, utils.ErrStatusConflict
	}
	order.Status = to

	if to == workflow.StatusCancelled {
		// Best-effort: a failed restock is logged, the cancellation stands.
		if err := s.orders.RestoreStock(ctx, id); err != nil {
			log.Error().Err(err).Int("order_id", id).Msg("Failed to restore stock after cancellation")
		}
	}

	log.Info().Int("order_id", id).Str("status", string(to)).Msg("Order status updated")
	s.recorder.RecordStatusChange(ctx, models.NotificationOrder, order.ID, order.CustomerName, to)
	return order, nil
}

// Stats aggregates order counts and revenue for the admin dashboard.
func (s *OrderService) Stats(ctx context.Context) (*models.OrderStats, error) {
	return s.orders.Stats(ctx)
}
