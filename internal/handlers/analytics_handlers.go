package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dinetap/internal/analytics"
	"dinetap/internal/common"
)

type AnalyticsHandlers struct {
	analyticsSvc *analytics.Service
}

func NewAnalyticsHandlers(analyticsSvc *analytics.Service) *AnalyticsHandlers {
	return &AnalyticsHandlers{analyticsSvc: analyticsSvc}
}

// GetDashboard handles GET /staff/analytics/dashboard?range=today|week|month|year.
func (h *AnalyticsHandlers) GetDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not resolved")
	}

	rng := analytics.ParseRange(c.QueryParam("range"))
	dashboard, err := h.analyticsSvc.ComputeDashboard(ctx, tenantID, rng)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, dashboard)
}
