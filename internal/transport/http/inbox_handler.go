package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roadtrippi/roadtrippi-backend/internal/service"
	"github.com/roadtrippi/roadtrippi-backend/internal/util"
)

type InboxHandler struct {
	inbox *service.InboxService
}

func RegisterInbox(e *echo.Echo, auth *service.AuthService, inbox *service.InboxService) {
	handler := &InboxHandler{inbox: inbox}

	protected := e.Group("/api/users/me", RequireAuth(auth))
	protected.GET("/inbox", handler.getInbox)
}

func (h *InboxHandler) getInbox(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	limit, _ := parsePagination(c, 20, 0)
	items, err := h.inbox.Inbox(c.Request().Context(), user.ID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load inbox"))
	}

	return c.JSON(http.StatusOK, util.Data("items", items))
}
