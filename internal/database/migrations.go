package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema statements are idempotent and run at startup. Every non-tenant table
// carries a NOT NULL tenant reference with cascade delete, so a row without
// an owning tenant cannot exist.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tenants (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		table_count INT NOT NULL DEFAULT 20 CHECK (table_count > 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id BIGSERIAL PRIMARY KEY,
		tenant_id BIGINT REFERENCES tenants(id) ON DELETE CASCADE,
		role TEXT NOT NULL CHECK (role IN ('owner', 'staff', 'kitchen', 'customer')),
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (role = 'customer' OR tenant_id IS NOT NULL)
	)`,
	`CREATE TABLE IF NOT EXISTS menu_items (
		id BIGSERIAL PRIMARY KEY,
		tenant_id BIGINT NOT NULL REFERENCES tenants(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		description TEXT,
		price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
		category TEXT NOT NULL DEFAULT '',
		image_key TEXT,
		is_vegetarian BOOLEAN NOT NULL DEFAULT FALSE,
		is_spicy BOOLEAN NOT NULL DEFAULT FALSE,
		is_out_of_stock BOOLEAN NOT NULL DEFAULT FALSE,
		rating_average DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (rating_average >= 0 AND rating_average <= 5),
		rating_count INT NOT NULL DEFAULT 0 CHECK (rating_count >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_menu_items_tenant ON menu_items(tenant_id)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		tenant_id BIGINT NOT NULL REFERENCES tenants(id) ON DELETE CASCADE,
		table_id TEXT NOT NULL,
		customer_id BIGINT REFERENCES accounts(id) ON DELETE SET NULL,
		customer_name TEXT,
		line_items JSONB NOT NULL,
		total_amount NUMERIC(10,2) NOT NULL CHECK (total_amount >= 0),
		status TEXT NOT NULL DEFAULT 'PENDING_PAYMENT',
		payment_reference TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_tenant_created ON orders(tenant_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		id BIGSERIAL PRIMARY KEY,
		tenant_id BIGINT NOT NULL REFERENCES tenants(id) ON DELETE CASCADE,
		menu_item_id BIGINT NOT NULL REFERENCES menu_items(id) ON DELETE CASCADE,
		order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		customer_id BIGINT REFERENCES accounts(id) ON DELETE SET NULL,
		rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
		review TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (order_id, menu_item_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ratings_menu_item ON ratings(menu_item_id)`,
}

// Migrate applies the schema. Safe to run on every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
