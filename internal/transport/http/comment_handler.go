package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
	"github.com/roadtrippi/roadtrippi-backend/internal/service"
	"github.com/roadtrippi/roadtrippi-backend/internal/util"
)

type CommentHandler struct {
	comments *service.CommentService
}

type commentRequest struct {
	Text string `json:"text"`
}

func RegisterComments(e *echo.Echo, auth *service.AuthService, comments *service.CommentService) {
	handler := &CommentHandler{comments: comments}

	e.POST("/api/check-ins/:id/comments", handler.createOnCheckIn, RequireAuth(auth))
	e.GET("/api/check-ins/:id/comments", handler.listForCheckIn)
	e.DELETE("/api/check-ins/comments/:id", handler.deleteCheckInComment, RequireAuth(auth))

	e.POST("/api/lists/:id/comments", handler.createOnList, RequireAuth(auth))
	e.GET("/api/lists/:id/comments", handler.listForList)
	e.DELETE("/api/lists/comments/:id", handler.deleteListComment, RequireAuth(auth))
}

func (h *CommentHandler) createOnCheckIn(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	checkInID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("check-in id must be a valid UUID"))
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	comment, err := h.comments.CommentOnCheckIn(c.Request().Context(), &domain.CheckInComment{
		CheckInID: checkInID,
		UserID:    user.ID,
		Text:      req.Text,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentTextRequired):
			return c.JSON(http.StatusBadRequest, util.Error("text is required"))
		case errors.Is(err, service.ErrCheckInNotFound):
			return c.JSON(http.StatusNotFound, util.Error("check-in not found"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to add comment"))
		}
	}
	return c.JSON(http.StatusCreated, util.Data("comment", comment))
}

func (h *CommentHandler) createOnList(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	listID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("list id must be a valid UUID"))
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	comment, err := h.comments.CommentOnList(c.Request().Context(), &domain.ListComment{
		ListID: listID,
		UserID: user.ID,
		Text:   req.Text,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentTextRequired):
			return c.JSON(http.StatusBadRequest, util.Error("text is required"))
		case errors.Is(err, service.ErrListNotFound):
			return c.JSON(http.StatusNotFound, util.Error("list not found"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to add comment"))
		}
	}
	return c.JSON(http.StatusCreated, util.Data("comment", comment))
}

func (h *CommentHandler) listForCheckIn(c echo.Context) error {
	checkInID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("check-in id must be a valid UUID"))
	}

	limit, offset := parsePagination(c, 20, 0)
	comments, err := h.comments.ListForCheckIn(c.Request().Context(), checkInID, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load comments"))
	}
	return c.JSON(http.StatusOK, util.Data("items", comments))
}

func (h *CommentHandler) listForList(c echo.Context) error {
	listID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("list id must be a valid UUID"))
	}

	limit, offset := parsePagination(c, 20, 0)
	comments, err := h.comments.ListForList(c.Request().Context(), listID, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load comments"))
	}
	return c.JSON(http.StatusOK, util.Data("items", comments))
}

func (h *CommentHandler) deleteCheckInComment(c echo.Context) error {
	return h.deleteComment(c, h.comments.DeleteCheckInComment)
}

func (h *CommentHandler) deleteListComment(c echo.Context) error {
	return h.deleteComment(c, h.comments.DeleteListComment)
}

func (h *CommentHandler) deleteComment(c echo.Context, remove func(ctx context.Context, userID, id uuid.UUID) error) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("comment id must be a valid UUID"))
	}

	if err := remove(c.Request().Context(), user.ID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			return c.JSON(http.StatusNotFound, util.Error("comment not found"))
		case errors.Is(err, service.ErrCommentForbidden):
			return c.JSON(http.StatusForbidden, util.Error("comment belongs to another user"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to delete comment"))
		}
	}
	return c.JSON(http.StatusOK, util.Message("comment deleted"))
}
