package models

import "time"

// TableSession is a customer interaction scoped to one physical table at one
// tenant, opened by scanning the table's QR code. The token is the only
// credential a customer needs for menu reads and order creation.
type TableSession struct {
	Token       string    `json:"token"`
	TenantID    int64     `json:"tenant_id"`
	TableNumber int       `json:"table_number"`
	StartedAt   time.Time `json:"started_at"`
}
