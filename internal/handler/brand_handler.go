package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nilecart/storefront_api/internal/service"
	"github.com/nilecart/storefront_api/internal/utils"
	"github.com/nilecart/storefront_api/internal/workflow"
)

// BrandHandler handles brand listing, submission and moderation endpoints.
type BrandHandler struct {
	brandService *service.BrandService
}

// NewBrandHandler constructs a BrandHandler.
func NewBrandHandler(brandService *service.BrandService) *BrandHandler {
	return &BrandHandler{brandService: brandService}
}

// ListAccepted handles GET /v1/brands
func (h *BrandHandler) ListAccepted(c *gin.Context) {
	brands, err := h.brandService.ListAccepted(c.Request.Context())
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve brands")
		return
	}
	utils.Success(c, 200, "Brands retrieved", brands)
}

// Submit handles POST /v1/brands
func (h *BrandHandler) Submit(c *gin.Context) {
	var req service.SubmitBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	brand, err := h.brandService.Submit(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err, "Failed to submit brand")
		return
	}
	utils.Success(c, 201, "Brand submitted for review", brand)
}

// ListAdmin handles GET /v1/admin/brands
func (h *BrandHandler) ListAdmin(c *gin.Context) {
	page, limit := parsePaging(c)
	brands, total, err := h.brandService.ListAdmin(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve brands")
		return
	}
	utils.SuccessWithPagination(c, 200, "Brands retrieved", brands, page, limit, total)
}

// Accept handles PATCH /v1/admin/brands/:id/accept
func (h *BrandHandler) Accept(c *gin.Context) {
	h.moderate(c, workflow.StatusAccepted, "Brand accepted")
}

// Reject handles PATCH /v1/admin/brands/:id/reject
func (h *BrandHandler) Reject(c *gin.Context) {
	h.moderate(c, workflow.StatusRejected, "Brand rejected")
}

func (h *BrandHandler) moderate(c *gin.Context, to workflow.Status, message string) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid brand ID")
		return
	}

	brand, err := h.brandService.Moderate(c.Request.Context(), id, to)
	if err != nil {
		writeServiceError(c, err, "Failed to update brand status")
		return
	}
	utils.Success(c, 200, message, brand)
}
