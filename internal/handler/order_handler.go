package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nilecart/storefront_api/internal/service"
	"github.com/nilecart/storefront_api/internal/utils"
	"github.com/nilecart/storefront_api/internal/workflow"
)

// OrderHandler handles checkout and order management endpoints.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Checkout handles POST /v1/orders
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req service.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	order, err := h.orderService.Checkout(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err, "Failed to place order")
		return
	}
	utils.Success(c, 201, "Order placed", order)
}

// Get handles GET /v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "Failed to retrieve order")
		return
	}
	utils.Success(c, 200, "Order retrieved", order)
}

// ListAdmin handles GET /v1/admin/orders
func (h *OrderHandler) ListAdmin(c *gin.Context) {
	page, limit := parsePaging(c)
	orders, total, err := h.orderService.ListAdmin(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve orders")
		return
	}
	utils.SuccessWithPagination(c, 200, "Orders retrieved", orders, page, limit, total)
}

// UpdateStatus handles PATCH /v1/admin/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid order ID")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, workflow.Status(req.Status))
	if err != nil {
		writeServiceError(c, err, "Failed to update order status")
		return
	}
	utils.Success(c, 200, "Order status updated", order)
}

// Stats handles GET /v1/admin/orders/stats
func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.orderService.Stats(c.Request.Context())
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve order stats")
		return
	}
	utils.Success(c, 200, "Order stats retrieved", stats)
}
