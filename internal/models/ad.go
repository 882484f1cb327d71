package models

import (
	"time"

	"github.com/nilecart/storefront_api/internal/workflow"
)

// Ad is a paid campaign submitted by a brand. It is only shown while accepted,
// active and inside its date window.
type Ad struct {
	ID          int             `db:"id" json:"id"`
	Title       string          `db:"title" json:"title"`
	Description string          `db:"description" json:"description"`
	Budget      float64         `db:"budget" json:"budget"`
	ImageURL    string          `db:"image_url" json:"imageUrl"`
	StartsAt    time.Time       `db:"starts_at" json:"startsAt"`
	EndsAt      time.Time       `db:"ends_at" json:"endsAt"`
	IsActive    bool            `db:"is_active" json:"isActive"`
	Status      workflow.Status `db:"status" json:"status"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}
