package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"dinetap/internal/models"
)

const menuItemColumns = `id, tenant_id, name, description, price, category, image_key,
		is_vegetarian, is_spicy, is_out_of_stock, rating_average, rating_count, created_at, updated_at`

type MenuItemRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	// GetByID is deliberately unscoped so callers can tell "absent" from
	// "owned by someone else"; every mutation below re-checks ownership in
	// its WHERE clause.
	GetByID(ctx context.Context, id int64) (*models.MenuItem, error)
	Update(ctx context.Context, item *models.MenuItem) error
	SetOutOfStock(ctx context.Context, tenantID, id int64, outOfStock bool) error
	Delete(ctx context.Context, tenantID, id int64) error
	ListByTenant(ctx context.Context, tenantID int64) ([]*models.MenuItem, error)
}

type menuItemRepo struct {
	db Database
}

func NewMenuItemRepo(db Database) MenuItemRepository {
	return &menuItemRepo{db: db}
}

func scanMenuItem(row pgx.Row) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	err := row.Scan(&item.ID, &item.TenantID, &item.Name, &item.Description, &item.Price,
		&item.Category, &item.ImageKey, &item.IsVegetarian, &item.IsSpicy, &item.IsOutOfStock,
		&item.RatingAverage, &item.RatingCount, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *menuItemRepo) Create(ctx context.Context, item *models.MenuItem) error {
	query := `
		INSERT INTO menu_items (tenant_id, name, description, price, category, image_key,
			is_vegetarian, is_spicy, is_out_of_stock, rating_average, rating_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, 0, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, item.TenantID, item.Name, item.Description, item.Price,
		item.Category, item.ImageKey, item.IsVegetarian, item.IsSpicy, item.IsOutOfStock).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *menuItemRepo) GetByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	query := `
		SELECT ` + menuItemColumns + `
		FROM menu_items
		WHERE id = $1
	`
	item, err := scanMenuItem(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return item, err
}

// Update never touches the rating columns; those belong to the rating
// aggregation path alone.
func (r *menuItemRepo) Update(ctx context.Context, item *models.MenuItem) error {
	query := `
		UPDATE menu_items
		SET name = $1, description = $2, price = $3, category = $4, image_key = $5,
			is_vegetarian = $6, is_spicy = $7, is_out_of_stock = $8, updated_at = NOW()
		WHERE tenant_id = $9 AND id = $10
	`
	_, err := r.db.Exec(ctx, query, item.Name, item.Description, item.Price, item.Category,
		item.ImageKey, item.IsVegetarian, item.IsSpicy, item.IsOutOfStock, item.TenantID, item.ID)
	return err
}

func (r *menuItemRepo) SetOutOfStock(ctx context.Context, tenantID, id int64, outOfStock bool) error {
	query := `
		UPDATE menu_items
		SET is_out_of_stock = $1, updated_at = NOW()
		WHERE tenant_id = $2 AND id = $3
	`
	_, err := r.db.Exec(ctx, query, outOfStock, tenantID, id)
	return err
}

func (r *menuItemRepo) Delete(ctx context.Context, tenantID, id int64) error {
	query := `DELETE FROM menu_items WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

// ListByTenant returns the tenant's items in the fixed display order:
// Starters, Mains, Desserts, Drinks, then everything else, name within.
// The ordering is a user-facing contract, so it lives in the query rather
// than whatever the caller happens to do.
func (r *menuItemRepo) ListByTenant(ctx context.Context, tenantID int64) ([]*models.MenuItem, error) {
	query := `
		SELECT ` + menuItemColumns + `
		FROM menu_items
		WHERE tenant_id = $1
		ORDER BY CASE category
			WHEN 'Starters' THEN 0
			WHEN 'Mains' THEN 1
			WHEN 'Desserts' THEN 2
			WHEN 'Drinks' THEN 3
			ELSE 4
		END, name
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.MenuItem
	for rows.Next() {
		item := &models.MenuItem{}
		if err := rows.Scan(&item.ID, &item.TenantID, &item.Name, &item.Description, &item.Price,
			&item.Category, &item.ImageKey, &item.IsVegetarian, &item.IsSpicy, &item.IsOutOfStock,
			&item.RatingAverage, &item.RatingCount, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
