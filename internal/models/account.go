package models

import "time"

type Account struct {
	ID        int64     `json:"id" db:"id"`
	TenantID  *int64    `json:"tenant_id" db:"tenant_id"`
	Role      Role      `json:"role" db:"role"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
