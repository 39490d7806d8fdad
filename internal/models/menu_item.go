package models

import "time"

// Display categories with a fixed listing order. Anything outside this set
// sorts after drinks, alphabetically.
const (
	CategoryStarters = "Starters"
	CategoryMains    = "Mains"
	CategoryDesserts = "Desserts"
	CategoryDrinks   = "Drinks"
)

type MenuItem struct {
	ID            int64     `json:"id" db:"id"`
	TenantID      int64     `json:"tenant_id" db:"tenant_id"`
	Name          string    `json:"name" db:"name"`
	Description   *string   `json:"description" db:"description"`
	Price         float64   `json:"price" db:"price"`
	Category      string    `json:"category" db:"category"`
	ImageKey      *string   `json:"image_key,omitempty" db:"image_key"`
	IsVegetarian  bool      `json:"is_vegetarian" db:"is_vegetarian"`
	IsSpicy       bool      `json:"is_spicy" db:"is_spicy"`
	IsOutOfStock  bool      `json:"is_out_of_stock" db:"is_out_of_stock"`
	RatingAverage float64   `json:"rating_average" db:"rating_average"`
	RatingCount   int       `json:"rating_count" db:"rating_count"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	// ImageURL is resolved from ImageKey at read time and never persisted.
	ImageURL string `json:"image_url,omitempty" db:"-"`
}
