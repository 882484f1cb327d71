package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nilecart/storefront_api/internal/pricing"
	"github.com/nilecart/storefront_api/internal/service"
	"github.com/nilecart/storefront_api/internal/utils"
	"github.com/nilecart/storefront_api/internal/workflow"
)

// writeServiceError maps service-layer errors onto the response envelope.
// fallback is the generic 500 message when the error is not recognized.
func writeServiceError(c *gin.Context, err error, fallback string) {
	var validation *service.ValidationError
	var transition *workflow.ErrInvalidTransition

	switch {
	case errors.As(err, &validation):
		utils.Error(c, 400, "VALIDATION_ERROR", validation.Message)
	case errors.Is(err, pricing.ErrEmptyOrder),
		errors.Is(err, pricing.ErrInvalidQuantity),
		errors.Is(err, pricing.ErrInvalidPrice):
		utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, utils.ErrNotFound):
		utils.Error(c, 404, "NOT_FOUND", "Resource not found")
	case errors.Is(err, utils.ErrEmailTaken):
		utils.Error(c, 400, "EMAIL_TAKEN", "An account with this email already exists")
	case errors.Is(err, utils.ErrBrandNameTaken):
		utils.Error(c, 400, "BRAND_NAME_TAKEN", "A brand with this name already exists")
	case errors.Is(err, utils.ErrBrandNotAccepted):
		utils.Error(c, 400, "BRAND_NOT_ACCEPTED", "Brand has not been accepted")
	case errors.Is(err, utils.ErrProductNotListed):
		utils.Error(c, 400, "PRODUCT_NOT_LISTED", "Product is not publicly listed")
	case errors.Is(err, utils.ErrInsufficientStock):
		utils.Error(c, 400, "INSUFFICIENT_STOCK", "Not enough stock for one of the items")
	case errors.As(err, &transition):
		utils.Error(c, 409, "INVALID_TRANSITION", transition.Error())
	case errors.Is(err, utils.ErrStatusConflict):
		utils.Error(c, 409, "STATUS_CONFLICT", "Status changed concurrently, reload and retry")
	default:
		utils.Error(c, 500, "INTERNAL_ERROR", fallback)
	}
}
