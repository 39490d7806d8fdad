package models

import "time"

// Order lifecycle states. PENDING_PAYMENT is the initial state and SERVED is
// terminal; the ledger does not force forward-only progression for trusted
// staff callers, but no order may return to PENDING_PAYMENT.
const (
	StatusPendingPayment = "PENDING_PAYMENT"
	StatusPaid           = "PAID"
	StatusInProgress     = "IN_PROGRESS"
	StatusReadyForPickup = "READY_FOR_PICKUP"
	StatusServed         = "SERVED"
)

var orderStatuses = map[string]bool{
	StatusPendingPayment: true,
	StatusPaid:           true,
	StatusInProgress:     true,
	StatusReadyForPickup: true,
	StatusServed:         true,
}

// RevenueStatuses are the states whose orders count toward revenue and order
// totals. Unpaid orders never do.
var RevenueStatuses = []string{StatusPaid, StatusInProgress, StatusReadyForPickup, StatusServed}

// ValidOrderStatus reports whether s is a recognized order status.
func ValidOrderStatus(s string) bool {
	return orderStatuses[s]
}

// LineItem is a snapshot of a menu item at the time of ordering. Price and
// name are frozen here so later catalog edits never change what the customer
// was quoted.
type LineItem struct {
	MenuItemID int64   `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

type Order struct {
	ID               int64      `json:"id" db:"id"`
	TenantID         int64      `json:"tenant_id" db:"tenant_id"`
	TableID          string     `json:"table_id" db:"table_id"`
	CustomerID       *int64     `json:"customer_id" db:"customer_id"`
	CustomerName     *string    `json:"customer_name" db:"customer_name"`
	LineItems        []LineItem `json:"line_items" db:"line_items"`
	TotalAmount      float64    `json:"total_amount" db:"total_amount"`
	Status           string     `json:"status" db:"status"`
	PaymentReference *string    `json:"payment_reference" db:"payment_reference"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// ContainsItem reports whether the order has a line item for the given menu item.
func (o *Order) ContainsItem(menuItemID int64) bool {
	for _, li := range o.LineItems {
		if li.MenuItemID == menuItemID {
			return true
		}
	}
	return false
}
