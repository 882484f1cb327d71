package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilecart/storefront_api/internal/models"
	"github.com/nilecart/storefront_api/internal/pricing"
	"github.com/nilecart/storefront_api/internal/utils"
	"github.com/nilecart/storefront_api/internal/workflow"
)

func seedProduct(t *testing.T, store *fakeProductStore, name string, price float64, stock int) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: price, Stock: stock, Status: workflow.StatusAccepted}
	require.NoError(t, store.Create(context.Background(), p))
	return p
}

func checkoutRequest(city string, items ...CheckoutItem) *CheckoutRequest {
	return &CheckoutRequest{
		CustomerName:  "Salma Farouk",
		CustomerEmail: "salma@example.com",
		CustomerPhone: "+201000000000",
		Address:       "12 Tahrir St",
		City:          city,
		Items:         items,
	}
}

func TestCheckoutComputesTotals(t *testing.T) {
	catalog := newFakeProductStore()
	scarab := seedProduct(t, catalog, "Scarab mug", 150, 10)
	papyrus := seedProduct(t, catalog, "Papyrus print", 200, 5)

	orders := newFakeOrderStore()
	rec := &fakeRecorder{}
	svc := NewOrderService(orders, catalog, rec)

	order, err := svc.Checkout(context.Background(), checkoutRequest("Cairo",
		CheckoutItem{ProductID: scarab.ID, Quantity: 2},
		CheckoutItem{ProductID: papyrus.ID, Quantity: 1},
	))
	require.NoError(t, err)

	assert.Equal(t, 500.0, order.Subtotal)
	assert.Equal(t, 70.0, order.ShippingCost)
	assert.Equal(t, 570.0, order.Total)
	assert.Equal(t, workflow.StatusPending, order.Status)

	require.Len(t, order.Items, 2)
	assert.Equal(t, "Scarab mug", order.Items[0].ProductName)
	assert.Equal(t, 150.0, order.Items[0].UnitPrice)

	require.Len(t, rec.submissions, 1)
	assert.Equal(t, models.NotificationOrder, rec.submissions[0].kind)
}

func TestCheckoutShippingTiers(t *testing.T) {
	catalog := newFakeProductStore()
	p := seedProduct(t, catalog, "Scarab mug", 100, 100)
	svc := NewOrderService(newFakeOrderStore(), catalog, &fakeRecorder{})

	tests := []struct {
		city string
		want float64
	}{
		{"Cairo", 70},
		{"alexandria", 70},
		{"Giza", 100},
		{"Luxor", 100},
	}

	for _, tt := range tests {
		order, err := svc.Checkout(context.Background(), checkoutRequest(tt.city, CheckoutItem{ProductID: p.ID, Quantity: 1}))
		require.NoError(t, err)
		assert.Equal(t, tt.want, order.ShippingCost, "city %s", tt.city)
	}
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	svc := NewOrderService(newFakeOrderStore(), newFakeProductStore(), &fakeRecorder{})
	_, err := svc.Checkout(context.Background(), checkoutRequest("Cairo"))
	assert.ErrorIs(t, err, pricing.ErrEmptyOrder)
}

func TestCheckoutRejectsUnknownProduct(t *testing.T) {
	svc := NewOrderService(newFakeOrderStore(), newFakeProductStore(), &fakeRecorder{})
	_, err := svc.Checkout(context.Background(), checkoutRequest("Cairo", CheckoutItem{ProductID: 42, Quantity: 1}))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Product 42 not found", vErr.Message)
}

func TestCheckoutRejectsUnlistedProduct(t *testing.T) {
	catalog := newFakeProductStore()
	hidden := &models.Product{Name: "Hidden", Price: 10, Stock: 5, Status: workflow.StatusPending}
	require.NoError(t, catalog.Create(context.Background(), hidden))

	svc := NewOrderService(newFakeOrderStore(), catalog, &fakeRecorder{})
	_, err := svc.Checkout(context.Background(), checkoutRequest("Cairo", CheckoutItem{ProductID: hidden.ID, Quantity: 1}))
	assert.ErrorIs(t, err, utils.ErrProductNotListed)
}

func TestCheckoutRejectsInsufficientStock(t *testing.T) {
	catalog := newFakeProductStore()
	p := seedProduct(t, catalog, "Scarab mug", 100, 1)

	svc := NewOrderService(newFakeOrderStore(), catalog, &fakeRecorder{})
	_, err := svc.Checkout(context.Background(), checkoutRequest("Cairo", CheckoutItem{ProductID: p.ID, Quantity: 2}))
	assert.ErrorIs(t, err, utils.ErrInsufficientStock)
}

func TestCheckoutIgnoresClientPrice(t *testing.T) {
	catalog := newFakeProductStore()
	p := seedProduct(t, catalog, "Scarab mug", 150, 10)

	svc := NewOrderService(newFakeOrderStore(), catalog, &fakeRecorder{})
	order, err := svc.Checkout(context.Background(), checkoutRequest("Giza", CheckoutItem{ProductID: p.ID, Quantity: 1}))
	require.NoError(t, err)

	// Catalog price changes after checkout must not alter the snapshot.
	catalog.products[p.ID].Price = 999
	assert.Equal(t, 150.0, order.Items[0].UnitPrice)
	assert.Equal(t, 250.0, order.Total)
}

func TestOrderUpdateStatusFollowsWorkflow(t *testing.T) {
	orders := newFakeOrderStore()
	o := &models.Order{CustomerName: "Salma Farouk", Status: workflow.StatusPending}
	require.NoError(t, orders.Create(context.Background(), o))

	rec := &fakeRecorder{}
	svc := NewOrderService(orders, newFakeProductStore(), rec)

	for _, to := range []workflow.Status{workflow.StatusConfirmed, workflow.StatusShipped, workflow.StatusDelivered} {
		got, err := svc.UpdateStatus(context.Background(), o.ID, to)
		require.NoError(t, err)
		assert.Equal(t, to, got.Status)
	}

	// Delivered is terminal.
	_, err := svc.UpdateStatus(context.Background(), o.ID, workflow.StatusCancelled)
	var tErr *workflow.ErrInvalidTransition
	assert.ErrorAs(t, err, &tErr)

	assert.Len(t, rec.statusChanges, 3)
}

func TestOrderUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := NewOrderService(newFakeOrderStore(), newFakeProductStore(), &fakeRecorder{})
	_, err := svc.UpdateStatus(context.Background(), 1, workflow.Status("packed"))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Unknown order status 'packed'", vErr.Message)
}

func TestOrderCancelRestoresStock(t *testing.T) {
	orders := newFakeOrderStore()
	o := &models.Order{CustomerName: "Salma Farouk", Status: workflow.StatusPending}
	require.NoError(t, orders.Create(context.Background(), o))

	svc := NewOrderService(orders, newFakeProductStore(), &fakeRecorder{})
	got, err := svc.UpdateStatus(context.Background(), o.ID, workflow.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusCancelled, got.Status)
	assert.Equal(t, []int{o.ID}, orders.restored)
}

func TestOrderUpdateStatusConflict(t *testing.T) {
	orders := newFakeOrderStore()
	o := &models.Order{CustomerName: "Salma Farouk", Status: workflow.StatusPending}
	require.NoError(t, orders.Create(context.Background(), o))

	var zero int64
	orders.casRows = &zero

	svc := NewOrderService(orders, newFakeProductStore(), &fakeRecorder{})
	_, err := svc.UpdateStatus(context.Background(), o.ID, workflow.StatusConfirmed)
	assert.ErrorIs(t, err, utils.ErrStatusConflict)
}
