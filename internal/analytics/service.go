package analytics

import (
	"context"
	"log"
	"time"

	"dinetap/internal/caching"
	"dinetap/internal/common"
	"dinetap/internal/repositories"
)

const dashboardCacheTTL = 2 * time.Minute

// TrendPoint is one bucket of the revenue trend. Value is 0 for empty
// buckets; the trend always has the full label set for its granularity.
type TrendPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type Dashboard struct {
	TotalRevenue     float64      `json:"total_revenue"`
	TotalOrders      int          `json:"total_orders"`
	AverageRating    float64      `json:"average_rating"`
	RevenueTrend     []TrendPoint `json:"revenue_trend"`
	RevenueChangePct float64      `json:"revenue_change_pct"`
	OrdersChangePct  float64      `json:"orders_change_pct"`
}

// Service computes tenant dashboards on demand from the order and rating
// stores. Results are cached in redis briefly; every order or rating write
// invalidates them.
type Service struct {
	tenantRepo repositories.TenantRepository
	orderRepo  repositories.OrderRepository
	ratingRepo repositories.RatingRepository
	cacheSvc   caching.CacheService
	now        func() time.Time
}

func NewService(tenantRepo repositories.TenantRepository, orderRepo repositories.OrderRepository, ratingRepo repositories.RatingRepository, cacheSvc caching.CacheService) *Service {
	return &Service{
		tenantRepo: tenantRepo,
		orderRepo:  orderRepo,
		ratingRepo: ratingRepo,
		cacheSvc:   cacheSvc,
		now:        time.Now,
	}
}

func (s *Service) ComputeDashboard(ctx context.Context, tenantID int64, rng Range) (*Dashboard, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, common.Internal("resolve tenant", err)
	}
	if tenant == nil {
		return nil, common.TenantNotFoundf("tenant %d not found", tenantID)
	}

	if s.cacheSvc != nil {
		var cached Dashboard
		hit, err := s.cacheSvc.GetDashboard(ctx, tenantID, string(rng), &cached)
		if err != nil {
			log.Printf("WARN: dashboard cache read failed for tenant %d: %v", tenantID, err)
		} else if hit {
			return &cached, nil
		}
	}

	dashboard, err := s.compute(ctx, tenantID, rng)
	if err != nil {
		return nil, err
	}

	if s.cacheSvc != nil {
		if err := s.cacheSvc.SetDashboard(ctx, tenantID, string(rng), dashboard, dashboardCacheTTL); err != nil {
			log.Printf("WARN: dashboard cache write failed for tenant %d: %v", tenantID, err)
		}
	}
	return dashboard, nil
}

func (s *Service) compute(ctx context.Context, tenantID int64, rng Range) (*Dashboard, error) {
	now := s.now()
	start := rng.WindowStart(now)
	duration := now.Sub(start)
	prevStart := start.Add(-duration)

	orders, err := s.orderRepo.ListRevenueEligibleByDateRange(ctx, tenantID, start, now)
	if err != nil {
		return nil, common.Internal("load orders for dashboard", err)
	}

	bucketer := NewBucketer(rng)
	labels := bucketer.Labels()
	trend := make([]TrendPoint, len(labels))
	for i, label := range labels {
		trend[i] = TrendPoint{Label: label}
	}

	totalRevenue := 0.0
	for _, order := range orders {
		totalRevenue += order.TotalAmount
		if idx := bucketer.Index(order.CreatedAt); idx >= 0 {
			trend[idx].Value += order.TotalAmount
		}
	}

	prevRevenue, prevOrders, err := s.orderRepo.RevenueStatsByDateRange(ctx, tenantID, prevStart, start)
	if err != nil {
		return nil, common.Internal("load comparison window for dashboard", err)
	}

	avgRating, err := s.ratingRepo.AverageForOrderWindow(ctx, tenantID, start, now)
	if err != nil {
		return nil, common.Internal("load rating average for dashboard", err)
	}

	return &Dashboard{
		TotalRevenue:     totalRevenue,
		TotalOrders:      len(orders),
		AverageRating:    avgRating,
		RevenueTrend:     trend,
		RevenueChangePct: percentChange(totalRevenue, prevRevenue),
		OrdersChangePct:  percentChange(float64(len(orders)), float64(prevOrders)),
	}, nil
}

// percentChange is 0 when the previous period is empty; a dashboard has no
// use for infinities.
func percentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
