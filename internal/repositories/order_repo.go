package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"dinetap/internal/models"
)

const orderColumns = `id, tenant_id, table_id, customer_id, customer_name, line_items,
		total_amount, status, payment_reference, created_at, updated_at`

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	// GetByID is unscoped; services compare the row's tenant against the
	// caller to produce Forbidden instead of NotFound.
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	UpdateStatus(ctx context.Context, tenantID, id int64, status string, paymentReference *string) error
	ListByTenant(ctx context.Context, tenantID int64, status *string, limit, offset int) ([]*models.Order, error)
	ListByCustomer(ctx context.Context, customerID int64, status *string, limit, offset int) ([]*models.Order, error)
	ListRevenueEligibleByDateRange(ctx context.Context, tenantID int64, from, to time.Time) ([]*models.Order, error)
	RevenueStatsByDateRange(ctx context.Context, tenantID int64, from, to time.Time) (revenue float64, orders int, err error)
}

type orderRepo struct {
	db Database
}

func NewOrderRepo(db Database) OrderRepository {
	return &orderRepo{db: db}
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	order := &models.Order{}
	var lineItems []byte
	err := row.Scan(&order.ID, &order.TenantID, &order.TableID, &order.CustomerID, &order.CustomerName,
		&lineItems, &order.TotalAmount, &order.Status, &order.PaymentReference, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(lineItems, &order.LineItems); err != nil {
		return nil, fmt.Errorf("decode line items for order %d: %w", order.ID, err)
	}
	return order, nil
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	lineItems, err := json.Marshal(order.LineItems)
	if err != nil {
		return fmt.Errorf("encode line items: %w", err)
	}
	query := `
		INSERT INTO orders (tenant_id, table_id, customer_id, customer_name, line_items,
			total_amount, status, payment_reference, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, order.TenantID, order.TableID, order.CustomerID, order.CustomerName,
		lineItems, order.TotalAmount, order.Status, order.PaymentReference).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1
	`
	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return order, err
}

// UpdateStatus is last-write-wins; concurrent updates converge to whichever
// commits last. A non-nil paymentReference is recorded alongside the status.
func (r *orderRepo) UpdateStatus(ctx context.Context, tenantID, id int64, status string, paymentReference *string) error {
	query := `
		UPDATE orders
		SET status = $1, payment_reference = COALESCE($2, payment_reference), updated_at = NOW()
		WHERE tenant_id = $3 AND id = $4
	`
	_, err := r.db.Exec(ctx, query, status, paymentReference, tenantID, id)
	return err
}

func (r *orderRepo) listOrders(ctx context.Context, query string, args ...interface{}) ([]*models.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		var lineItems []byte
		if err := rows.Scan(&order.ID, &order.TenantID, &order.TableID, &order.CustomerID, &order.CustomerName,
			&lineItems, &order.TotalAmount, &order.Status, &order.PaymentReference, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(lineItems, &order.LineItems); err != nil {
			return nil, fmt.Errorf("decode line items for order %d: %w", order.ID, err)
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *orderRepo) ListByTenant(ctx context.Context, tenantID int64, status *string, limit, offset int) ([]*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE tenant_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	return r.listOrders(ctx, query, tenantID, status, limit, offset)
}

func (r *orderRepo) ListByCustomer(ctx context.Context, customerID int64, status *string, limit, offset int) ([]*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	return r.listOrders(ctx, query, customerID, status, limit, offset)
}

// ListRevenueEligibleByDateRange returns the tenant's paid-or-later orders
// created inside [from, to), oldest first.
func (r *orderRepo) ListRevenueEligibleByDateRange(ctx context.Context, tenantID int64, from, to time.Time) ([]*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE tenant_id = $1
			AND created_at >= $2 AND created_at < $3
			AND status = ANY($4)
		ORDER BY created_at
	`
	return r.listOrders(ctx, query, tenantID, from, to, models.RevenueStatuses)
}

func (r *orderRepo) RevenueStatsByDateRange(ctx context.Context, tenantID int64, from, to time.Time) (float64, int, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM orders
		WHERE tenant_id = $1
			AND created_at >= $2 AND created_at < $3
			AND status = ANY($4)
	`
	var revenue float64
	var count int
	err := r.db.QueryRow(ctx, query, tenantID, from, to, models.RevenueStatuses).Scan(&revenue, &count)
	if err != nil {
		return 0, 0, err
	}
	return revenue, count, nil
}
