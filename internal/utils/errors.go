package utils

import "errors"

// Common application errors used across services.
var (
	ErrNotFound           = errors.New("NOT_FOUND")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrEmailTaken         = errors.New("EMAIL_TAKEN")
	ErrBrandNameTaken     = errors.New("BRAND_NAME_TAKEN")
	ErrBrandNotAccepted   = errors.New("BRAND_NOT_ACCEPTED")
	ErrProductNotListed   = errors.New("PRODUCT_NOT_LISTED")
	ErrInsufficientStock  = errors.New("INSUFFICIENT_STOCK")
	ErrStatusConflict     = errors.New("STATUS_CONFLICT")
)
