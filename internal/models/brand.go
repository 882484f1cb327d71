package models

import (
	"time"

	"github.com/nilecart/storefront_api/internal/workflow"
)

// Brand is a seller profile. A product can only be publicly listed once its
// brand has been accepted.
type Brand struct {
	ID           int             `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	Description  string          `db:"description" json:"description"`
	ContactEmail string          `db:"contact_email" json:"contactEmail"`
	ContactPhone string          `db:"contact_phone" json:"contactPhone"`
	Status       workflow.Status `db:"status" json:"status"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updatedAt"`
}
