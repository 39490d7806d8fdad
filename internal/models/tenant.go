package models

import "time"

// DefaultTableCount is used when a tenant has no explicit table count configured.
const DefaultTableCount = 20

type Tenant struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	TableCount int       `json:"table_count" db:"table_count"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Tables returns the configured table count, falling back to the default
// when the stored value is unset.
func (t *Tenant) Tables() int {
	if t.TableCount <= 0 {
		return DefaultTableCount
	}
	return t.TableCount
}
