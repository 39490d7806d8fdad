package testhelpers

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"dinetap/internal/models"
)

// TestDB holds the database connection for integration tests.
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB creates a pooled connection for testing. Tests that need it are
// skipped when TEST_DATABASE_URL is not set.
func SetupTestDB(t *testing.T, connString string) *TestDB {
	t.Helper()

	if connString == "" {
		connString = os.Getenv("TEST_DATABASE_URL")
		if connString == "" {
			t.Skip("TEST_DATABASE_URL not set")
		}
	}

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	return &TestDB{
		Pool: pool,
		Cleanup: func() error {
			pool.Close()
			return nil
		},
	}
}

// SetupTestTenant creates a restaurant row for testing and returns its ID.
func SetupTestTenant(t *testing.T, db *TestDB) int64 {
	t.Helper()

	var tenantID int64
	query := `
		INSERT INTO tenants (name, table_count, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id
	`
	if err := db.Pool.QueryRow(context.Background(), query, "Test Restaurant", 20).Scan(&tenantID); err != nil {
		t.Fatalf("Failed to create test tenant: %v", err)
	}
	return tenantID
}

// SetupTestMenuItem creates a menu item for testing.
func SetupTestMenuItem(t *testing.T, db *TestDB, tenantID int64) *models.MenuItem {
	t.Helper()

	description := "Tomato, mozzarella, basil"
	item := &models.MenuItem{
		TenantID:    tenantID,
		Name:        "Test Margherita",
		Description: &description,
		Category:    models.CategoryMains,
		Price:       11.50,
	}

	query := `
		INSERT INTO menu_items (tenant_id, name, description, category, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id
	`
	err := db.Pool.QueryRow(context.Background(), query,
		item.TenantID, item.Name, item.Description, item.Category, item.Price).Scan(&item.ID)
	if err != nil {
		t.Fatalf("Failed to create test menu item: %v", err)
	}
	return item
}

// SetupTestOrder creates a served order containing the given menu item.
func SetupTestOrder(t *testing.T, db *TestDB, tenantID int64, item *models.MenuItem) *models.Order {
	t.Helper()

	order := &models.Order{
		TenantID: tenantID,
		TableID:  "4",
		Status:   models.StatusServed,
		LineItems: []models.LineItem{
			{MenuItemID: item.ID, Name: item.Name, Price: item.Price, Quantity: 2},
		},
		TotalAmount: item.Price * 2,
	}

	lineItems, err := json.Marshal(order.LineItems)
	if err != nil {
		t.Fatalf("Failed to marshal line items: %v", err)
	}

	query := `
		INSERT INTO orders (tenant_id, table_id, status, line_items, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id
	`
	err = db.Pool.QueryRow(context.Background(), query,
		order.TenantID, order.TableID, order.Status, lineItems, order.TotalAmount).Scan(&order.ID)
	if err != nil {
		t.Fatalf("Failed to create test order: %v", err)
	}
	return order
}
