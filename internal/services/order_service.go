package services

import (
	"context"
	"log"

	"dinetap/internal/caching"
	"dinetap/internal/common"
	"dinetap/internal/models"
	"dinetap/internal/repositories"
)

// OrderService drives the order lifecycle. Totals are locked in at creation
// from the quoted line-item prices; later catalog edits never re-price an
// existing order.
type OrderService interface {
	Create(ctx context.Context, tenantID int64, req *CreateOrderRequest) (*models.Order, error)
	GetByID(ctx context.Context, tenantID, orderID int64) (*models.Order, error)
	UpdateStatus(ctx context.Context, tenantID, orderID int64, newStatus string) (*models.Order, error)
	MarkPaid(ctx context.Context, tenantID, orderID int64, paymentReference string) (*models.Order, error)
	ListForTenant(ctx context.Context, tenantID int64, status *string, limit, offset int) ([]*models.Order, error)
	ListForCustomer(ctx context.Context, customerID int64, status *string, limit, offset int) ([]*models.Order, error)
}

type CreateOrderRequest struct {
	TableID      string            `json:"table_id"`
	LineItems    []models.LineItem `json:"line_items"`
	CustomerID   *int64            `json:"customer_id"`
	CustomerName *string           `json:"customer_name"`
}

type orderService struct {
	orderRepo repositories.OrderRepository
	menuRepo  repositories.MenuItemRepository
	tenantSvc TenantService
	cacheSvc  caching.CacheService
}

func NewOrderService(orderRepo repositories.OrderRepository, menuRepo repositories.MenuItemRepository, tenantSvc TenantService, cacheSvc caching.CacheService) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
		tenantSvc: tenantSvc,
		cacheSvc:  cacheSvc,
	}
}

func (s *orderService) Create(ctx context.Context, tenantID int64, req *CreateOrderRequest) (*models.Order, error) {
	if _, err := s.tenantSvc.Resolve(ctx, tenantID); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.TableID, "table_id"); err != nil {
		return nil, err
	}
	if len(req.LineItems) == 0 {
		return nil, common.Validationf("line_items cannot be empty")
	}
	if err := common.ValidateOptionalString(req.CustomerName, "customer_name", 200); err != nil {
		return nil, err
	}

	// The quoted price and quantity come from the caller; the catalog is only
	// consulted for availability and a name fallback.
	total := 0.0
	lineItems := make([]models.LineItem, 0, len(req.LineItems))
	for i, li := range req.LineItems {
		if li.MenuItemID <= 0 {
			return nil, common.Validationf("line_items[%d].menu_item_id is required", i)
		}
		if err := common.ValidatePositiveInteger(li.Quantity, "quantity", 100); err != nil {
			return nil, err
		}
		if err := common.ValidateNonNegativeFloat(li.Price, "price", maxPrice); err != nil {
			return nil, err
		}

		item, err := s.menuRepo.GetByID(ctx, li.MenuItemID)
		if err != nil {
			return nil, common.Internal("check menu item availability", err)
		}
		if item == nil || item.TenantID != tenantID {
			return nil, common.Validationf("menu item %d is not orderable at this restaurant", li.MenuItemID)
		}
		if item.IsOutOfStock {
			return nil, common.Validationf("menu item %q is out of stock", item.Name)
		}
		if li.Name == "" {
			li.Name = item.Name
		}

		total += li.Price * float64(li.Quantity)
		lineItems = append(lineItems, li)
	}

	order := &models.Order{
		TenantID:     tenantID,
		TableID:      req.TableID,
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
		LineItems:    lineItems,
		TotalAmount:  total,
		Status:       models.StatusPendingPayment,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, common.Internal("create order", err)
	}

	s.invalidateDashboards(ctx, tenantID)
	return order, nil
}

func (s *orderService) GetByID(ctx context.Context, tenantID, orderID int64) (*models.Order, error) {
	if _, err := s.tenantSvc.Resolve(ctx, tenantID); err != nil {
		return nil, err
	}
	return s.ownedOrder(ctx, tenantID, orderID)
}

func (s *orderService) UpdateStatus(ctx context.Context, tenantID, orderID int64, newStatus string) (*models.Order, error) {
	if !models.ValidOrderStatus(newStatus) {
		return nil, common.InvalidStatusf("unknown order status %q", newStatus)
	}
	if _, err := s.tenantSvc.Resolve(ctx, tenantID); err != nil {
		return nil, err
	}

	order, err := s.ownedOrder(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	// Trusted staff callers may move an order between recognized states, but
	// nothing returns to the initial unpaid state.
	if newStatus == models.StatusPendingPayment && order.Status != models.StatusPendingPayment {
		return nil, common.InvalidStatusf("order cannot return to %s", models.StatusPendingPayment)
	}

	if err := s.orderRepo.UpdateStatus(ctx, tenantID, orderID, newStatus, nil); err != nil {
		return nil, common.Internal("update order status", err)
	}
	order.Status = newStatus

	s.invalidateDashboards(ctx, tenantID)
	return order, nil
}

// MarkPaid records the opaque payment reference and moves the order to PAID.
// Invoked from the payment provider's webhook, never from customer input.
func (s *orderService) MarkPaid(ctx context.Context, tenantID, orderID int64, paymentReference string) (*models.Order, error) {
	if err := common.ValidateRequiredString(paymentReference, "payment_reference"); err != nil {
		return nil, err
	}
	if _, err := s.tenantSvc.Resolve(ctx, tenantID); err != nil {
		return nil, err
	}

	order, err := s.ownedOrder(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(ctx, tenantID, orderID, models.StatusPaid, &paymentReference); err != nil {
		return nil, common.Internal("mark order paid", err)
	}
	order.Status = models.StatusPaid
	order.PaymentReference = &paymentReference

	s.invalidateDashboards(ctx, tenantID)
	return order, nil
}

func (s *orderService) ListForTenant(ctx context.Context, tenantID int64, status *string, limit, offset int) ([]*models.Order, error) {
	if _, err := s.tenantSvc.Resolve(ctx, tenantID); err != nil {
		return nil, err
	}
	if status != nil && !models.ValidOrderStatus(*status) {
		return nil, common.InvalidStatusf("unknown order status %q", *status)
	}
	limit, offset = common.ValidatePaginationParams(limit, offset)

	orders, err := s.orderRepo.ListByTenant(ctx, tenantID, status, limit, offset)
	if err != nil {
		return nil, common.Internal("list orders", err)
	}
	return orders, nil
}

func (s *orderService) ListForCustomer(ctx context.Context, customerID int64, status *string, limit, offset int) ([]*models.Order, error) {
	if customerID <= 0 {
		return nil, common.Validationf("customer id is required")
	}
	if status != nil && !models.ValidOrderStatus(*status) {
		return nil, common.InvalidStatusf("unknown order status %q", *status)
	}
	limit, offset = common.ValidatePaginationParams(limit, offset)

	orders, err := s.orderRepo.ListByCustomer(ctx, customerID, status, limit, offset)
	if err != nil {
		return nil, common.Internal("list customer orders", err)
	}
	return orders, nil
}

func (s *orderService) ownedOrder(ctx context.Context, tenantID, orderID int64) (*models.Order, error) {
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
	return order, nil
}

func (s *orderService) invalidateDashboards(ctx context.Context, tenantID int64) {
	if err := s.cacheSvc.DeleteDashboards(ctx, tenantID); err != nil {
		log.Printf("WARN: dashboard cache invalidation failed for tenant %d: %v", tenantID, err)
	}
}
