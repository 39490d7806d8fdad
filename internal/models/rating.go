package models

import "time"

// Rating is one customer rating for one menu item on one order. At most one
// row exists per (order, menu item) pair; resubmissions update in place.
type Rating struct {
	ID         int64     `json:"id" db:"id"`
	TenantID   int64     `json:"tenant_id" db:"tenant_id"`
	MenuItemID int64     `json:"menu_item_id" db:"menu_item_id"`
	OrderID    int64     `json:"order_id" db:"order_id"`
	CustomerID *int64    `json:"customer_id" db:"customer_id"`
	Rating     int       `json:"rating" db:"rating"`
	Review     *string   `json:"review" db:"review"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// RatingEntry is one element of a rating submission batch.
type RatingEntry struct {
	MenuItemID int64   `json:"menu_item_id"`
	Rating     int     `json:"rating"`
	Review     *string `json:"review,omitempty"`
}
