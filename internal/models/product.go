package models

import (
	"time"

	"github.com/nilecart/storefront_api/internal/workflow"
)

// Product is a catalog entry submitted by a brand and moderated by an admin.
// Only accepted products of accepted brands are publicly listed.
type Product struct {
	ID          int             `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Price       float64         `db:"price" json:"price"`
	Category    string          `db:"category" json:"category"`
	ImageURL    string          `db:"image_url" json:"imageUrl"`
	BrandID     int             `db:"brand_id" json:"brandId"`
	Stock       int             `db:"stock" json:"stock"`
	Status      workflow.Status `db:"status" json:"status"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`

	// Joined from brands on reads
	BrandName string `db:"brand_name" json:"brandName,omitempty"`
}
