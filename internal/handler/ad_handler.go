package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nilecart/storefront_api/internal/service"
	"github.com/nilecart/storefront_api/internal/utils"
	"github.com/nilecart/storefront_api/internal/workflow"
)

// AdHandler handles ad campaign submission, listing and moderation endpoints.
type AdHandler struct {
	adService *service.AdService
}

// NewAdHandler constructs an AdHandler.
func NewAdHandler(adService *service.AdService) *AdHandler {
	return &AdHandler{adService: adService}
}

// ListRunning handles GET /v1/ads
func (h *AdHandler) ListRunning(c *gin.Context) {
	ads, err := h.adService.ListRunning(c.Request.Context())
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve ads")
		return
	}
	utils.Success(c, 200, "Ads retrieved", ads)
}

// Submit handles POST /v1/ads
func (h *AdHandler) Submit(c *gin.Context) {
	var req service.SubmitAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	ad, err := h.adService.Submit(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err, "Failed to submit ad")
		return
	}
	utils.Success(c, 201, "Ad submitted for review", ad)
}

// ListAdmin handles GET /v1/admin/ads
func (h *AdHandler) ListAdmin(c *gin.Context) {
	page, limit := parsePaging(c)
	ads, total, err := h.adService.ListAdmin(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve ads")
		return
	}
	utils.SuccessWithPagination(c, 200, "Ads retrieved", ads, page, limit, total)
}

// Accept handles PATCH /v1/admin/ads/:id/accept
func (h *AdHandler) Accept(c *gin.Context) {
	h.moderate(c, workflow.StatusAccepted, "Ad accepted")
}

// Reject handles PATCH /v1/admin/ads/:id/reject
func (h *AdHandler) Reject(c *gin.Context) {
	h.moderate(c, workflow.StatusRejected, "Ad rejected")
}

func (h *AdHandler) moderate(c *gin.Context, to workflow.Status, message string) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid ad ID")
		return
	}

	ad, err := h.adService.Moderate(c.Request.Context(), id, to)
	if err != nil {
		writeServiceError(c, err, "Failed to update ad status")
		return
	}
	utils.Success(c, 200, message, ad)
}
