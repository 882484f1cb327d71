package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nilecart/storefront_api/internal/repository"
	"github.com/nilecart/storefront_api/internal/service"
	"github.com/nilecart/storefront_api/internal/utils"
	"github.com/nilecart/storefront_api/internal/workflow"
)

// ProductHandler handles catalog and product moderation HTTP endpoints.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListPublic handles GET /v1/products
func (h *ProductHandler) ListPublic(c *gin.Context) {
	page, limit := parsePaging(c)
	products, total, err := h.productService.ListPublic(c.Request.Context(), c.Query("category"), c.Query("search"), page, limit)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve products")
		return
	}
	utils.SuccessWithPagination(c, 200, "Products retrieved", products, page, limit, total)
}

// GetPublic handles GET /v1/products/:id
func (h *ProductHandler) GetPublic(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return
	}

	product, err := h.productService.GetPublic(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "Failed to retrieve product")
		return
	}
	utils.Success(c, 200, "Product retrieved", product)
}

// Categories handles GET /v1/products/categories
func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.productService.Categories(c.Request.Context())
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve categories")
		return
	}
	utils.Success(c, 200, "Categories retrieved", categories)
}

// Submit handles POST /v1/products
func (h *ProductHandler) Submit(c *gin.Context) {
	var req service.SubmitProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := h.productService.Submit(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err, "Failed to submit product")
		return
	}
	utils.Success(c, 201, "Product submitted for review", product)
}

// ListAdmin handles GET /v1/admin/products
func (h *ProductHandler) ListAdmin(c *gin.Context) {
	page, limit := parsePaging(c)
	filter := &repository.AdminProductFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     page,
		Limit:    limit,
	}
	if v := c.Query("brandId"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			filter.BrandID = id
		}
	}

	products, total, err := h.productService.ListAdmin(c.Request.Context(), filter)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve products")
		return
	}
	utils.SuccessWithPagination(c, 200, "Products retrieved", products, filter.Page, filter.Limit, total)
}

// GetAdmin handles GET /v1/admin/products/:id
func (h *ProductHandler) GetAdmin(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "Failed to retrieve product")
		return
	}
	utils.Success(c, 200, "Product retrieved", product)
}

// Approve handles PATCH /v1/admin/products/:id/approve
func (h *ProductHandler) Approve(c *gin.Context) {
	h.moderate(c, workflow.StatusAccepted, "Product approved")
}

// Reject handles PATCH /v1/admin/products/:id/reject
func (h *ProductHandler) Reject(c *gin.Context) {
	h.moderate(c, workflow.StatusRejected, "Product rejected")
}

func (h *ProductHandler) moderate(c *gin.Context, to workflow.Status, message string) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return
	}

	product, err := h.productService.Moderate(c.Request.Context(), id, to)
	if err != nil {
		writeServiceError(c, err, "Failed to update product status")
		return
	}
	utils.Success(c, 200, message, product)
}

// Delete handles DELETE /v1/admin/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, "Failed to delete product")
		return
	}
	utils.Success(c, 200, "Product deleted", nil)
}

// parsePaging reads page/limit query parameters with defaults.
func parsePaging(c *gin.Context) (int, int) {
	page, limit := 1, 50
	if v := c.Query("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}
	if v := c.Query("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 {
			limit = l
		}
	}
	return page, limit
}
