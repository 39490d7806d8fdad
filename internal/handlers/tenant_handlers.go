package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dinetap/internal/common"
	"dinetap/internal/services"
)

// TenantHandlers exposes restaurant onboarding plus the lookups the customer
// surface needs before a session exists.
type TenantHandlers struct {
	tenantSvc services.TenantService
}

func NewTenantHandlers(tenantSvc services.TenantService) *TenantHandlers {
	return &TenantHandlers{tenantSvc: tenantSvc}
}

// GetTenant handles GET /tenants/:id
func (h *TenantHandlers) GetTenant(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "tenant id")
	if err != nil {
		return common.SendError(c, err)
	}

	tenant, err := h.tenantSvc.Resolve(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, tenant)
}

// CreateTenant handles POST /tenants. Onboarding is open; the restaurant is
// created first and its owner account follows through the staff flow.
func (h *TenantHandlers) CreateTenant(c echo.Context) error {
	var req services.CreateTenantRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.Validationf("invalid request format"))
	}

	tenant, err := h.tenantSvc.Create(c.Request().Context(), &req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, tenant)
}

// UpdateTenant handles PUT /staff/tenant for the caller's own restaurant.
func (h *TenantHandlers) UpdateTenant(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not resolved")
	}

	var req services.UpdateTenantRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.Validationf("invalid request format"))
	}

	tenant, err := h.tenantSvc.Update(ctx, tenantID, &req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, tenant)
}

// DeleteTenant handles DELETE /staff/tenant. Closing a restaurant cascades
// to its menu, orders, ratings, and staff accounts.
func (h *TenantHandlers) DeleteTenant(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not resolved")
	}

	if err := h.tenantSvc.Delete(ctx, tenantID); err != nil {
		return common.SendError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetTableCount handles GET /tenants/:id/tables
func (h *TenantHandlers) GetTableCount(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "tenant id")
	if err != nil {
		return common.SendError(c, err)
	}

	count, err := h.tenantSvc.TableCount(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"tenant_id":   id,
		"table_count": count,
	})
}
