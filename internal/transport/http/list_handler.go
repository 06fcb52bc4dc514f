package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
	"github.com/roadtrippi/roadtrippi-backend/internal/service"
	"github.com/roadtrippi/roadtrippi-backend/internal/util"
)

type ListHandler struct {
	lists *service.ListService
}

type listRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Public      bool    `json:"public"`
}

type listItemRequest struct {
	AttractionID uuid.UUID `json:"attraction_id"`
	Position     int       `json:"position"`
	Notes        *string   `json:"notes"`
}

func RegisterLists(e *echo.Echo, auth *service.AuthService, lists *service.ListService) {
	handler := &ListHandler{lists: lists}

	protected := e.Group("/api/lists", RequireAuth(auth))
	protected.POST("", handler.create)
	protected.PUT("/:id", handler.update)
	protected.DELETE("/:id", handler.delete)
	protected.POST("/:id/items", handler.addItem)
	protected.DELETE("/:id/items/:attractionId", handler.removeItem)

	public := e.Group("/api/lists", OptionalAuth(auth))
	public.GET("/:id", handler.get)

	e.GET("/api/users/:id/lists", handler.listByUser, OptionalAuth(auth))
}

func (h *ListHandler) create(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req listRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	list, err := h.lists.Create(c.Request().Context(), &domain.List{
		UserID:      user.ID,
		Title:       req.Title,
		Description: req.Description,
		Public:      req.Public,
	})
	if err != nil {
		if errors.Is(err, service.ErrListTitleRequired) {
			return c.JSON(http.StatusBadRequest, util.Error("title is required"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to create list"))
	}
	return c.JSON(http.StatusCreated, util.Data("list", list))
}

func (h *ListHandler) update(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("list id must be a valid UUID"))
	}

	var req listRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	list, err := h.lists.Update(c.Request().Context(), user.ID, &domain.List{
		ID:          id,
		UserID:      user.ID,
		Title:       req.Title,
		Description: req.Description,
		Public:      req.Public,
	})
	if err != nil {
		return h.listError(c, err, "unable to update list")
	}
	return c.JSON(http.StatusOK, util.Data("list", list))
}

func (h *ListHandler) delete(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("list id must be a valid UUID"))
	}

	if err := h.lists.Delete(c.Request().Context(), user.ID, id); err != nil {
		return h.listError(c, err, "unable to delete list")
	}
	return c.JSON(http.StatusOK, util.Message("list deleted"))
}

func (h *ListHandler) get(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("list id must be a valid UUID"))
	}

	viewerID := uuid.Nil
	if user, ok := CurrentUser(c); ok && user != nil {
		viewerID = user.ID
	}

	list, err := h.lists.Get(c.Request().Context(), viewerID, id)
	if err != nil {
		if errors.Is(err, service.ErrListNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("list not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load list"))
	}
	return c.JSON(http.StatusOK, util.Data("list", list))
}

func (h *ListHandler) listByUser(c echo.Context) error {
	userID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("user id must be a valid UUID"))
	}

	viewerID := uuid.Nil
	if user, ok := CurrentUser(c); ok && user != nil {
		viewerID = user.ID
	}

	limit, offset := parsePagination(c, 20, 0)
	lists, err := h.lists.ListByUser(c.Request().Context(), viewerID, userID, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load lists"))
	}
	return c.JSON(http.StatusOK, util.Data("items", lists))
}

func (h *ListHandler) addItem(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	listID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("list id must be a valid UUID"))
	}

	var req listItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if req.AttractionID == uuid.Nil {
		return c.JSON(http.StatusBadRequest, util.Error("attraction_id is required"))
	}

	item, err := h.lists.AddItem(c.Request().Context(), user.ID, &domain.ListItem{
		ListID:       listID,
		AttractionID: req.AttractionID,
		Position:     req.Position,
		Notes:        req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListItemExists):
			return c.JSON(http.StatusConflict, util.Error("attraction already on the list"))
		case errors.Is(err, service.ErrAttractionNotFound):
			return c.JSON(http.StatusNotFound, util.Error("attraction not found"))
		default:
			return h.listError(c, err, "unable to add list item")
		}
	}
	return c.JSON(http.StatusCreated, util.Data("item", item))
}

func (h *ListHandler) removeItem(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	listID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("list id must be a valid UUID"))
	}
	attractionID, err := parseUUIDParam(c, "attractionId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("attraction id must be a valid UUID"))
	}

	if err := h.lists.RemoveItem(c.Request().Context(), user.ID, listID, attractionID); err != nil {
		if errors.Is(err, service.ErrListItemNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("attraction is not on the list"))
		}
		return h.listError(c, err, "unable to remove list item")
	}
	return c.JSON(http.StatusOK, util.Message("list item removed"))
}

func (h *ListHandler) listError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrListNotFound):
		return c.JSON(http.StatusNotFound, util.Error("list not found"))
	case errors.Is(err, service.ErrListForbidden):
		return c.JSON(http.StatusForbidden, util.Error("list belongs to another user"))
	case errors.Is(err, service.ErrListTitleRequired):
		return c.JSON(http.StatusBadRequest, util.Error("title is required"))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error(fallback))
	}
}
