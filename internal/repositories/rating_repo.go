package repositories

import (
	"context"
	"sort"
	"time"

	"dinetap/internal/models"
)

const ratingUpsertQuery = `
		INSERT INTO ratings (tenant_id, menu_item_id, order_id, customer_id, rating, review, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (order_id, menu_item_id)
		DO UPDATE SET rating = EXCLUDED.rating, review = EXCLUDED.review, updated_at = NOW()
`

// ratingRecomputeQuery rebuilds a menu item's aggregate from the full rating
// set rather than nudging a running average, so repeated upserts cannot
// drift the stored numbers.
const ratingRecomputeQuery = `
		UPDATE menu_items m
		SET rating_average = s.avg_rating, rating_count = s.cnt, updated_at = NOW()
		FROM (
			SELECT COALESCE(AVG(rating), 0)::double precision AS avg_rating, COUNT(*)::int AS cnt
			FROM ratings
			WHERE menu_item_id = $1
		) s
		WHERE m.id = $1
`

type RatingRepository interface {
	// SubmitBatch upserts every entry and recomputes each touched menu
	// item's aggregate in one transaction; either all of it lands or none.
	SubmitBatch(ctx context.Context, tenantID, orderID int64, customerID *int64, entries []models.RatingEntry) error
	ListByOrder(ctx context.Context, orderID int64) ([]*models.Rating, error)
	AverageForOrderWindow(ctx context.Context, tenantID int64, from, to time.Time) (float64, error)
	ReconcileAggregates(ctx context.Context, tenantID int64) error
}

type ratingRepo struct {
	db Database
}

func NewRatingRepo(db Database) RatingRepository {
	return &ratingRepo{db: db}
}

func (r *ratingRepo) SubmitBatch(ctx context.Context, tenantID, orderID int64, customerID *int64, entries []models.RatingEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	touched := make(map[int64]bool, len(entries))
	for _, entry := range entries {
		if _, err := tx.Exec(ctx, ratingUpsertQuery,
			tenantID, entry.MenuItemID, orderID, customerID, entry.Rating, entry.Review); err != nil {
			return err
		}
		touched[entry.MenuItemID] = true
	}
	// Recompute in ascending item order so concurrent batches touching the
	// same items take their row locks in the same sequence.
	menuItemIDs := make([]int64, 0, len(touched))
	for menuItemID := range touched {
		menuItemIDs = append(menuItemIDs, menuItemID)
	}
	sort.Slice(menuItemIDs, func(i, j int) bool { return menuItemIDs[i] < menuItemIDs[j] })
	for _, menuItemID := range menuItemIDs {
		if _, err := tx.Exec(ctx, ratingRecomputeQuery, menuItemID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *ratingRepo) ListByOrder(ctx context.Context, orderID int64) ([]*models.Rating, error) {
	query := `
		SELECT id, tenant_id, menu_item_id, order_id, customer_id, rating, review, created_at, updated_at
		FROM ratings
		WHERE order_id = $1
		ORDER BY menu_item_id
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []*models.Rating
	for rows.Next() {
		rating := &models.Rating{}
		if err := rows.Scan(&rating.ID, &rating.TenantID, &rating.MenuItemID, &rating.OrderID,
			&rating.CustomerID, &rating.Rating, &rating.Review, &rating.CreatedAt, &rating.UpdatedAt); err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}

// AverageForOrderWindow is the mean of ratings whose parent order was created
// inside [from, to), not the all-time mean.
func (r *ratingRepo) AverageForOrderWindow(ctx context.Context, tenantID int64, from, to time.Time) (float64, error) {
	query := `
		SELECT COALESCE(AVG(r.rating), 0)::double precision
		FROM ratings r
		JOIN orders o ON o.id = r.order_id
		WHERE r.tenant_id = $1
			AND o.created_at >= $2 AND o.created_at < $3
	`
	var avg float64
	if err := r.db.QueryRow(ctx, query, tenantID, from, to).Scan(&avg); err != nil {
		return 0, err
	}
	return avg, nil
}

// ReconcileAggregates rebuilds every menu item aggregate for a tenant from
// the rating set, including resetting items whose ratings are gone.
func (r *ratingRepo) ReconcileAggregates(ctx context.Context, tenantID int64) error {
	recompute := `
		UPDATE menu_items m
		SET rating_average = s.avg_rating, rating_count = s.cnt, updated_at = NOW()
		FROM (
			SELECT menu_item_id, AVG(rating)::double precision AS avg_rating, COUNT(*)::int AS cnt
			FROM ratings
			WHERE tenant_id = $1
			GROUP BY menu_item_id
		) s
		WHERE m.id = s.menu_item_id AND m.tenant_id = $1
	`
	if _, err := r.db.Exec(ctx, recompute, tenantID); err != nil {
		return err
	}

	reset := `
		UPDATE menu_items m
		SET rating_average = 0, rating_count = 0, updated_at = NOW()
		WHERE m.tenant_id = $1
			AND (m.rating_average <> 0 OR m.rating_count <> 0)
			AND NOT EXISTS (SELECT 1 FROM ratings r WHERE r.menu_item_id = m.id)
	`
	_, err := r.db.Exec(ctx, reset, tenantID)
	return err
}
