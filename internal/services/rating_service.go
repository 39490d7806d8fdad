package services

import (
	"context"
	"log"

	"dinetap/internal/caching"
	"dinetap/internal/common"
	"dinetap/internal/models"
	"dinetap/internal/repositories"
)

// RatingService records per-(order, menu item) ratings and keeps each menu
// item's stored aggregate equal to the mean and count of its rating rows.
type RatingService interface {
	Submit(ctx context.Context, tenantID, orderID int64, customerID *int64, entries []models.RatingEntry) error
	GetForOrder(ctx context.Context, tenantID, orderID int64) (map[int64]OrderRating, error)
}

// OrderRating is one rating as seen from an order's perspective.
type OrderRating struct {
	Rating int     `json:"rating"`
	Review *string `json:"review,omitempty"`
}

type ratingService struct {
	ratingRepo repositories.RatingRepository
	orderRepo  repositories.OrderRepository
	tenantSvc  TenantService
	cacheSvc   caching.CacheService
}

func NewRatingService(ratingRepo repositories.RatingRepository, orderRepo repositories.OrderRepository, tenantSvc TenantService, cacheSvc caching.CacheService) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		orderRepo:  orderRepo,
		tenantSvc:  tenantSvc,
		cacheSvc:   cacheSvc,
	}
}

// Submit applies the whole batch or none of it: one bad entry rejects the
// submission before anything is written.
func (s *ratingService) Submit(ctx context.Context, tenantID, orderID int64, customerID *int64, entries []models.RatingEntry) error {
	if _, err := s.tenantSvc.Resolve(ctx, tenantID); err != nil {
		return err
	}
	if len(entries) == 0 {
		return common.Validationf("ratings cannot be empty")
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return common.Internal("get order", err)
	}
	if order == nil {
		return common.NotFoundf("order %d not found", orderID)
	}
	if order.TenantID != tenantID {
		return common.Forbiddenf("order %d does not belong to this restaurant", orderID)
	}
	if order.CustomerID != nil && customerID != nil && *order.CustomerID != *customerID {
		return common.Forbiddenf("order %d belongs to a different customer", orderID)
	}

	for i, entry := range entries {
		if entry.Rating < 1 || entry.Rating > 5 {
			return common.Validationf("ratings[%d].rating must be between 1 and 5", i)
		}
		if !order.ContainsItem(entry.MenuItemID) {
			return common.Validationf("ratings[%d]: menu item %d was not part of this order", i, entry.MenuItemID)
		}
		if err := common.ValidateOptionalString(entry.Review, "review", 2000); err != nil {
			return err
		}
	}

	// The rating's tenant is taken from the order, never from the caller.
	if err := s.ratingRepo.SubmitBatch(ctx, order.TenantID, orderID, customerID, entries); err != nil {
		return common.Internal("submit ratings", err)
	}

	// Stored aggregates changed, so both the cached menu and dashboards are stale.
	if err := s.cacheSvc.InvalidateTenantCache(ctx, tenantID); err != nil {
		log.Printf("WARN: cache invalidation failed for tenant %d: %v", tenantID, err)
	}
	return nil
}

func (s *ratingService) GetForOrder(ctx context.Context, tenantID, orderID int64) (map[int64]OrderRating, error) {
	if _, err := s.tenantSvc.Resolve(ctx, tenantID); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, common.Internal("get order", err)
	}
	if order == nil {
		return nil, common.NotFoundf("order %d not found", orderID)
	}
	if order.TenantID != tenantID {
		return nil, common.Forbiddenf("order %d does not belong to this restaurant", orderID)
	}

	ratings, err := s.ratingRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, common.Internal("list order ratings", err)
	}

	result := make(map[int64]OrderRating, len(ratings))
	for _, r := range ratings {
		result[r.MenuItemID] = OrderRating{Rating: r.Rating, Review: r.Review}
	}
	return result, nil
}
