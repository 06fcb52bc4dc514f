package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roadtrippi/roadtrippi-backend/internal/service"
	"github.com/roadtrippi/roadtrippi-backend/internal/util"
)

type FollowHandler struct {
	follows *service.FollowService
}

func RegisterFollows(e *echo.Echo, auth *service.AuthService, follows *service.FollowService) {
	handler := &FollowHandler{follows: follows}

	protected := e.Group("/api/users/:id/follow", RequireAuth(auth))
	protected.POST("", handler.follow)
	protected.DELETE("", handler.unfollow)

	e.GET("/api/users/:id/followers", handler.followers)
	e.GET("/api/users/:id/following", handler.following)
}

func (h *FollowHandler) follow(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	targetID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("user id must be a valid UUID"))
	}

	follow, err := h.follows.Follow(c.Request().Context(), user.ID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFollowSelf):
			return c.JSON(http.StatusBadRequest, util.Error("cannot follow yourself"))
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, util.Error("user not found"))
		case errors.Is(err, service.ErrFollowAlreadyExists):
			return c.JSON(http.StatusConflict, util.Error("already following this user"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to follow user"))
		}
	}
	return c.JSON(http.StatusCreated, util.Data("follow", follow))
}

func (h *FollowHandler) unfollow(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	targetID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("user id must be a valid UUID"))
	}

	if err := h.follows.Unfollow(c.Request().Context(), user.ID, targetID); err != nil {
		if errors.Is(err, service.ErrFollowNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("follow not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to unfollow user"))
	}
	return c.JSON(http.StatusOK, util.Message("unfollowed"))
}

func (h *FollowHandler) followers(c echo.Context) error {
	userID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("user id must be a valid UUID"))
	}

	limit, offset := parsePagination(c, 20, 0)
	entries, err := h.follows.Followers(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load followers"))
	}
	return c.JSON(http.StatusOK, util.Data("items", entries))
}

func (h *FollowHandler) following(c echo.Context) error {
	userID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("user id must be a valid UUID"))
	}

	limit, offset := parsePagination(c, 20, 0)
	entries, err := h.follows.Following(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load following"))
	}
	return c.JSON(http.StatusOK, util.Data("items", entries))
}
