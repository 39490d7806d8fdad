package middleware

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"dinetap/internal/common"
	"dinetap/internal/models"
)

// JWTCustomClaims are the claims issued to restaurant accounts. The role is
// validated against the closed role set when the token is parsed, never
// passed through as a raw string.
type JWTCustomClaims struct {
	AccountID int64  `json:"account_id"`
	TenantID  int64  `json:"tenant_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// ParseJWTPayload validates claims and loads the caller's identity into the
// request context for the service layer.
func ParseJWTPayload(c echo.Context, claims *JWTCustomClaims) (*JWTCustomClaims, error) {
	if claims.AccountID <= 0 {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Missing account in token")
	}
	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unknown role in token")
	}
	if role.TenantScoped() && claims.TenantID <= 0 {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Missing tenant in token")
	}

	ctx := context.WithValue(c.Request().Context(), common.AccountIDKey, claims.AccountID)
	ctx = context.WithValue(ctx, common.TenantIDKey, claims.TenantID)
	ctx = context.WithValue(ctx, common.RoleKey, role)
	c.SetRequest(c.Request().WithContext(ctx))

	return claims, nil
}

// LoadClaims runs after the echo-jwt signature check and moves the verified
// claims into the request context.
func LoadClaims() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}
			claims, ok := token.Claims.(*JWTCustomClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid claims")
			}
			if _, err := ParseJWTPayload(c, claims); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// LoadClaimsIfPresent is the tolerant variant used on customer routes: a
// verified token loads the caller's identity, an absent one leaves the
// request anonymous. Tokens that fail validation still carry bad claims
// shapes here, so those are rejected rather than downgraded.
func LoadClaimsIfPresent() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return next(c)
			}
			claims, ok := token.Claims.(*JWTCustomClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid claims")
			}
			if _, err := ParseJWTPayload(c, claims); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// RequireRole rejects callers whose parsed role is outside the allowed set.
func RequireRole(allowed ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := common.GetRoleFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Caller role not resolved")
			}
			for _, a := range allowed {
				if role == a {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}
