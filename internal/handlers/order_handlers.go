package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"dinetap/internal/common"
	"dinetap/internal/services"
)

type OrderHandlers struct {
	orderSvc   services.OrderService
	sessionSvc services.SessionService
}

func NewOrderHandlers(orderSvc services.OrderService, sessionSvc services.SessionService) *OrderHandlers {
	return &OrderHandlers{orderSvc: orderSvc, sessionSvc: sessionSvc}
}

func paginationFromQuery(c echo.Context) (int, int) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	return common.ValidatePaginationParams(limit, offset)
}

// CreateOrder handles POST /orders. The tenant and table come from the table
// session token, so a customer cannot place an order into another restaurant.
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	session, err := h.sessionSvc.Resolve(ctx, c.Request().Header.Get(SessionTokenHeader))
	if err != nil {
		return common.SendError(c, err)
	}

	var req services.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.Validationf("invalid request format"))
	}
	req.TableID = fmt.Sprintf("%d", session.TableNumber)
	if accountID, ok := common.GetAccountIDFromContext(ctx); ok {
		req.CustomerID = &accountID
	}

	order, err := h.orderSvc.Create(ctx, session.TenantID, &req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

// GetOrder handles GET /orders/:id via a table session.
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	session, err := h.sessionSvc.Resolve(ctx, c.Request().Header.Get(SessionTokenHeader))
	if err != nil {
		return common.SendError(c, err)
	}
	orderID, err := common.ParseID(c.Param("id"), "order id")
	if err != nil {
		return common.SendError(c, err)
	}

	order, err := h.orderSvc.GetByID(ctx, session.TenantID, orderID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// ListOrders handles GET /staff/orders with an optional ?status= filter.
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not resolved")
	}
	limit, offset := paginationFromQuery(c)

	var status *string
	if s := c.QueryParam("status"); s != "" {
		status = &s
	}

	orders, err := h.orderSvc.ListForTenant(ctx, tenantID, status, limit, offset)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// GetOrderForStaff handles GET /staff/orders/:id.
func (h *OrderHandlers) GetOrderForStaff(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not resolved")
	}
	orderID, err := common.ParseID(c.Param("id"), "order id")
	if err != nil {
		return common.SendError(c, err)
	}

	order, err := h.orderSvc.GetByID(ctx, tenantID, orderID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus handles PUT /staff/orders/:id/status.
func (h *OrderHandlers) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not resolved")
	}
	orderID, err := common.ParseID(c.Param("id"), "order id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.Validationf("invalid request format"))
	}

	order, err := h.orderSvc.UpdateStatus(ctx, tenantID, orderID, req.Status)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// ListMyOrders handles GET /me/orders for authenticated customers.
func (h *OrderHandlers) ListMyOrders(c echo.Context) error {
	ctx := c.Request().Context()
	accountID, ok := common.GetAccountIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Account not resolved")
	}
	limit, offset := paginationFromQuery(c)

	var status *string
	if s := c.QueryParam("status"); s != "" {
		status = &s
	}

	orders, err := h.orderSvc.ListForCustomer(ctx, accountID, status, limit, offset)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}
