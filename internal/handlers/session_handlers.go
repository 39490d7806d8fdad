package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dinetap/internal/common"
	"dinetap/internal/services"
)

// SessionTokenHeader carries the table-session token on customer requests.
const SessionTokenHeader = "X-Session-Token"

type SessionHandlers struct {
	sessionSvc services.SessionService
}

func NewSessionHandlers(sessionSvc services.SessionService) *SessionHandlers {
	return &SessionHandlers{sessionSvc: sessionSvc}
}

// StartSession handles POST /table-sessions, the landing call behind a
// table's QR code.
func (h *SessionHandlers) StartSession(c echo.Context) error {
	var req struct {
		TenantID    int64 `json:"tenant_id"`
		TableNumber int   `json:"table_number"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.Validationf("invalid request format"))
	}

	session, err := h.sessionSvc.Start(c.Request().Context(), req.TenantID, req.TableNumber)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, session)
}

// EndSession handles DELETE /table-sessions
func (h *SessionHandlers) EndSession(c echo.Context) error {
	token := c.Request().Header.Get(SessionTokenHeader)
	if err := h.sessionSvc.End(c.Request().Context(), token); err != nil {
		return common.SendError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
