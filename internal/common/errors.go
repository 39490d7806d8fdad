package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for callers that need to distinguish failure
// classes without parsing messages.
type Kind string

const (
	KindValidation     Kind = "VALIDATION_ERROR"
	KindTenantNotFound Kind = "TENANT_NOT_FOUND"
	KindNotFound       Kind = "NOT_FOUND"
	KindForbidden      Kind = "FORBIDDEN"
	KindConflict       Kind = "CONFLICT"
	KindInvalidStatus  Kind = "INVALID_STATUS"
	KindInternal       Kind = "INTERNAL_ERROR"
)

// Error carries a kind plus a caller-facing message. Infrastructure causes
// are wrapped but never exposed in the message.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func Validationf(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func TenantNotFoundf(format string, args ...interface{}) error {
	return &Error{Kind: KindTenantNotFound, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbiddenf(format string, args ...interface{}) error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...interface{}) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func InvalidStatusf(format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidStatus, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an infrastructure failure. The operation name is the only
// detail surfaced to callers; the cause stays available for logging via
// errors.Unwrap.
func Internal(operation string, cause error) error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf("failed to %s", operation), cause: cause}
}

// KindOf extracts the kind from err, defaulting to KindInternal for
// untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error kind to a response status. Tenant-isolation
// violations intentionally share statuses with plain lookup failures.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation, KindInvalidStatus:
		return http.StatusBadRequest
	case KindTenantNotFound, KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
