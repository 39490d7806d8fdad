package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dinetap/internal/common"
	"dinetap/internal/services"
)

type MenuHandlers struct {
	menuSvc    services.MenuService
	sessionSvc services.SessionService
}

func NewMenuHandlers(menuSvc services.MenuService, sessionSvc services.SessionService) *MenuHandlers {
	return &MenuHandlers{menuSvc: menuSvc, sessionSvc: sessionSvc}
}

// ListMenu handles GET /menu for customers; the tenant comes from the table
// session, never from the request body.
func (h *MenuHandlers) ListMenu(c echo.Context) error {
	ctx := c.Request().Context()
	session, err := h.sessionSvc.Resolve(ctx, c.Request().Header.Get(SessionTokenHeader))
	if err != nil {
		return common.SendError(c, err)
	}

	items, err := h.menuSvc.ListForTenant(ctx, session.TenantID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// ListMenuForStaff handles GET /staff/menu
func (h *MenuHandlers) ListMenuForStaff(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not resolved")
	}

	items, err := h.menuSvc.ListForTenant(ctx, tenantID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// CreateMenuItem handles POST /staff/menu
func (h *MenuHandlers) CreateMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not resolved")
	}

	var req services.MenuItemRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.Validationf("invalid request format"))
	}

	item, err := h.menuSvc.CreateItem(ctx, tenantID, &req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// UpdateMenuItem handles PUT /staff/menu/:id
func (h *MenuHandlers) UpdateMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not resolved")
	}
	itemID, err := common.ParseID(c.Param("id"), "menu item id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req services.MenuItemRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.Validationf("invalid request format"))
	}

	item, err := h.menuSvc.UpdateItem(ctx, tenantID, itemID, &req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// SetMenuItemStock handles PUT /staff/menu/:id/stock
func (h *MenuHandlers) SetMenuItemStock(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not resolved")
	}
	itemID, err := common.ParseID(c.Param("id"), "menu item id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req struct {
		IsOutOfStock bool `json:"is_out_of_stock"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.Validationf("invalid request format"))
	}

	if err := h.menuSvc.SetOutOfStock(ctx, tenantID, itemID, req.IsOutOfStock); err != nil {
		return common.SendError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteMenuItem handles DELETE /staff/menu/:id
func (h *MenuHandlers) DeleteMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not resolved")
	}
	itemID, err := common.ParseID(c.Param("id"), "menu item id")
	if err != nil {
		return common.SendError(c, err)
	}

	if err := h.menuSvc.DeleteItem(ctx, tenantID, itemID); err != nil {
		return common.SendError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
