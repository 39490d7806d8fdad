package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dinetap/internal/common"
	"dinetap/internal/models"
	"dinetap/internal/services"
)

type RatingHandlers struct {
	ratingSvc  services.RatingService
	sessionSvc services.SessionService
}

func NewRatingHandlers(ratingSvc services.RatingService, sessionSvc services.SessionService) *RatingHandlers {
	return &RatingHandlers{ratingSvc: ratingSvc, sessionSvc: sessionSvc}
}

// SubmitRatings handles POST /orders/:id/ratings. The whole batch is validated
// before anything is written, so a bad entry rejects the submission as a unit.
func (h *RatingHandlers) SubmitRatings(c echo.Context) error {
	ctx := c.Request().Context()
	session, err := h.sessionSvc.Resolve(ctx, c.Request().Header.Get(SessionTokenHeader))
	if err != nil {
		return common.SendError(c, err)
	}
	orderID, err := common.ParseID(c.Param("id"), "order id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req struct {
		Ratings []models.RatingEntry `json:"ratings"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.Validationf("invalid request format"))
	}

	var customerID *int64
	if accountID, ok := common.GetAccountIDFromContext(ctx); ok {
		customerID = &accountID
	}

	if err := h.ratingSvc.Submit(ctx, session.TenantID, orderID, customerID, req.Ratings); err != nil {
		return common.SendError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetOrderRatings handles GET /orders/:id/ratings.
func (h *RatingHandlers) GetOrderRatings(c echo.Context) error {
	ctx := c.Request().Context()
	session, err := h.sessionSvc.Resolve(ctx, c.Request().Header.Get(SessionTokenHeader))
	if err != nil {
		return common.SendError(c, err)
	}
	orderID, err := common.ParseID(c.Param("id"), "order id")
	if err != nil {
		return common.SendError(c, err)
	}

	ratings, err := h.ratingSvc.GetForOrder(ctx, session.TenantID, orderID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, ratings)
}
