package common

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"dinetap/internal/models"
)

type contextKey string

const (
	AccountIDKey contextKey = "account_id"
	TenantIDKey  contextKey = "tenant_id"
	RoleKey      contextKey = "role"
)

// ErrorResponse is the standard error envelope returned by every handler.
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse builds a response envelope for the given code and message.
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendError maps a service error onto the response envelope. Untyped errors
// surface as a generic internal error so infrastructure details never leak.
func SendError(c echo.Context, err error) error {
	kind := KindOf(err)
	message := "operation could not be completed"
	var e *Error
	if errors.As(err, &e) && kind != KindInternal {
		message = e.Message
	}
	return c.JSON(HTTPStatus(kind), CreateErrorResponse(string(kind), message, nil))
}

// SendValidationError reports a single-field validation failure.
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{
		field: message,
	}
	return c.JSON(HTTPStatus(KindValidation), CreateErrorResponse(string(KindValidation), "Validation failed", details))
}

// ValidateRequiredString validates required string fields.
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return Validationf("%s is required", fieldName)
	}
	return nil
}

// ValidateNonNegativeFloat validates decimal fields that may be zero but
// never negative, with an upper bound.
func ValidateNonNegativeFloat(value float64, fieldName string, maxValue float64) error {
	if value < 0 {
		return Validationf("%s cannot be negative", fieldName)
	}
	if value > maxValue {
		return Validationf("%s cannot exceed %.2f", fieldName, maxValue)
	}
	return nil
}

// ValidatePositiveInteger validates positive integer values with an upper bound.
func ValidatePositiveInteger(value int, fieldName string, maxValue int) error {
	if value <= 0 {
		return Validationf("%s must be positive", fieldName)
	}
	if value > maxValue {
		return Validationf("%s cannot exceed %d", fieldName, maxValue)
	}
	return nil
}

// ValidateOptionalString trims and bounds optional text fields in place.
func ValidateOptionalString(value *string, fieldName string, maxLength int) error {
	if value != nil {
		if len(*value) > maxLength {
			return Validationf("%s cannot exceed %d characters", fieldName, maxLength)
		}
		*value = strings.TrimSpace(*value)
	}
	return nil
}

// ValidatePaginationParams clamps pagination parameters to safe bounds.
func ValidatePaginationParams(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// SafeString safely dereferences string pointers.
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetAccountIDFromContext extracts the authenticated account ID from the request context.
func GetAccountIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(AccountIDKey).(int64)
	return id, ok
}

// GetTenantIDFromContext extracts the tenant ID from the request context.
func GetTenantIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(TenantIDKey).(int64)
	return id, ok
}

// GetRoleFromContext extracts the caller role from the request context.
func GetRoleFromContext(ctx context.Context) (models.Role, bool) {
	role, ok := ctx.Value(RoleKey).(models.Role)
	return role, ok
}

// ParseID parses a positive integer identifier from a path or query parameter.
func ParseID(raw, fieldName string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, Validationf("%s must be a positive integer", fieldName)
	}
	return id, nil
}
