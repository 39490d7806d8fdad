package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dinetap/internal/common"
	"dinetap/internal/models"
	"dinetap/internal/services"
)

type AccountHandlers struct {
	accountSvc services.AccountService
}

func NewAccountHandlers(accountSvc services.AccountService) *AccountHandlers {
	return &AccountHandlers{accountSvc: accountSvc}
}

// RegisterCustomer handles POST /accounts. Credentials are handled by the
// identity provider; this only creates the account record tokens reference.
func (h *AccountHandlers) RegisterCustomer(c echo.Context) error {
	var req services.RegisterAccountRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.Validationf("invalid request format"))
	}

	account, err := h.accountSvc.RegisterCustomer(c.Request().Context(), &req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, account)
}

// GetProfile handles GET /me/profile.
func (h *AccountHandlers) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	accountID, ok := common.GetAccountIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Account not resolved")
	}

	account, err := h.accountSvc.GetProfile(ctx, accountID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, account)
}

// CreateStaff handles POST /staff/accounts.
func (h *AccountHandlers) CreateStaff(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not resolved")
	}

	var req services.CreateStaffRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.Validationf("invalid request format"))
	}

	account, err := h.accountSvc.CreateStaff(ctx, tenantID, &req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, account)
}

// ListStaff handles GET /staff/accounts?role=staff|kitchen|owner.
func (h *AccountHandlers) ListStaff(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not resolved")
	}

	role, err := models.ParseRole(c.QueryParam("role"))
	if err != nil {
		role = models.RoleStaff
	}
	limit, offset := paginationFromQuery(c)

	accounts, err := h.accountSvc.ListStaff(ctx, tenantID, role, limit, offset)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, accounts)
}

// RemoveStaff handles DELETE /staff/accounts/:id.
func (h *AccountHandlers) RemoveStaff(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not resolved")
	}
	accountID, err := common.ParseID(c.Param("id"), "account id")
	if err != nil {
		return common.SendError(c, err)
	}

	if err := h.accountSvc.RemoveStaff(ctx, tenantID, accountID); err != nil {
		return common.SendError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
