package handlers

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"dinetap/internal/common"
	"dinetap/internal/services"
)

// PaymentEventClaims is the payload the payment provider signs into its
// webhook token. Keys are verified against the provider's JWKS endpoint.
type PaymentEventClaims struct {
	OrderID          int64  `json:"order_id"`
	TenantID         int64  `json:"tenant_id"`
	PaymentReference string `json:"payment_reference"`
	jwt.RegisteredClaims
}

type WebhookHandlers struct {
	orderSvc services.OrderService
	keyFunc  jwt.Keyfunc
}

func NewWebhookHandlers(orderSvc services.OrderService, keyFunc jwt.Keyfunc) *WebhookHandlers {
	return &WebhookHandlers{orderSvc: orderSvc, keyFunc: keyFunc}
}

// PaymentCompleted handles POST /webhooks/payments. A verified event marks
// the referenced order as paid; replays are harmless because the payment
// reference is written last-write-wins.
func (h *WebhookHandlers) PaymentCompleted(c echo.Context) error {
	ctx := c.Request().Context()

	raw := strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
	if raw == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing webhook token")
	}

	claims := &PaymentEventClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, h.keyFunc)
	if err != nil || !token.Valid {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid webhook token")
	}
	if claims.OrderID <= 0 || claims.TenantID <= 0 || claims.PaymentReference == "" {
		return common.SendError(c, common.Validationf("webhook payload is missing order, tenant or payment reference"))
	}

	order, err := h.orderSvc.MarkPaid(ctx, claims.TenantID, claims.OrderID, claims.PaymentReference)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}
