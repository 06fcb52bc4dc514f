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

type LikeHandler struct {
	likes *service.LikeService
}

type likeRequest struct {
	TargetType string    `json:"target_type"`
	TargetID   uuid.UUID `json:"target_id"`
}

func RegisterLikes(e *echo.Echo, auth *service.AuthService, likes *service.LikeService) {
	handler := &LikeHandler{likes: likes}

	protected := e.Group("/api/likes", RequireAuth(auth))
	protected.POST("", handler.like)
	protected.DELETE("", handler.unlike)

	e.GET("/api/likes/count", handler.count)
}

func (h *LikeHandler) like(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	targetType, targetID, err := bindLikeTarget(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	like, err := h.likes.Like(c.Request().Context(), user.ID, targetType, targetID)
	if err != nil {
		return h.likeError(c, err, "unable to add like")
	}
	return c.JSON(http.StatusCreated, util.Data("like", like))
}

func (h *LikeHandler) unlike(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	targetType, targetID, err := bindLikeTarget(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	if err := h.likes.Unlike(c.Request().Context(), user.ID, targetType, targetID); err != nil {
		if errors.Is(err, service.ErrLikeNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("like not found"))
		}
		return h.likeError(c, err, "unable to remove like")
	}
	return c.JSON(http.StatusOK, util.Message("like removed"))
}

func (h *LikeHandler) count(c echo.Context) error {
	targetType, err := domain.ParseLikeTargetType(c.QueryParam("target_type"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("target_type must be review or list"))
	}
	targetID, err := uuid.Parse(c.QueryParam("target_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("target_id must be a valid UUID"))
	}

	count, err := h.likes.Count(c.Request().Context(), targetType, targetID)
	if err != nil {
		return h.likeError(c, err, "unable to count likes")
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"target_type": targetType,
		"target_id":   targetID,
		"count":       count,
	})
}

func bindLikeTarget(c echo.Context) (domain.LikeTargetType, uuid.UUID, error) {
	var req likeRequest
	if err := c.Bind(&req); err != nil {
		return "", uuid.Nil, errors.New("invalid request body")
	}
	targetType, err := domain.ParseLikeTargetType(req.TargetType)
	if err != nil {
		return "", uuid.Nil, errors.New("target_type must be review or list")
	}
	if req.TargetID == uuid.Nil {
		return "", uuid.Nil, errors.New("target_id is required")
	}
	return targetType, req.TargetID, nil
}

func (h *LikeHandler) likeError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrLikeAlreadyExists):
		return c.JSON(http.StatusConflict, util.Error("already liked"))
	case errors.Is(err, service.ErrLikeTargetMissing):
		return c.JSON(http.StatusNotFound, util.Error("like target not found"))
	case errors.Is(err, domain.ErrInvalidLikeTarget):
		return c.JSON(http.StatusBadRequest, util.Error("target_type must be review or list"))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error(fallback))
	}
}
