package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
	"github.com/roadtrippi/roadtrippi-backend/internal/service"
	"github.com/roadtrippi/roadtrippi-backend/internal/util"
)

type CheckInHandler struct {
	checkIns *service.CheckInService
}

type createCheckInRequest struct {
	AttractionID uuid.UUID `json:"attraction_id"`
	Rating       *float64  `json:"rating"`
	Review       *string   `json:"review"`
	VisitDate    string    `json:"visit_date"`
}

func RegisterCheckIns(e *echo.Echo, auth *service.AuthService, checkIns *service.CheckInService) {
	handler := &CheckInHandler{checkIns: checkIns}

	protected := e.Group("/api/check-ins", RequireAuth(auth))
	protected.POST("", handler.create)
	protected.DELETE("/:id", handler.delete)

	e.GET("/api/check-ins/:id", handler.get)
	e.GET("/api/attractions/:id/check-ins", handler.listByAttraction)
	e.GET("/api/users/:id/check-ins", handler.listByUser)
}

func (h *CheckInHandler) create(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req createCheckInRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if req.AttractionID == uuid.Nil {
		return c.JSON(http.StatusBadRequest, util.Error("attraction_id is required"))
	}

	visitDate := time.Now().UTC()
	if req.VisitDate != "" {
		parsed, err := time.Parse("2006-01-02", req.VisitDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("visit_date must be YYYY-MM-DD"))
		}
		visitDate = parsed
	}

	checkIn, err := h.checkIns.Create(c.Request().Context(), &domain.CheckIn{
		UserID:       user.ID,
		AttractionID: req.AttractionID,
		Rating:       req.Rating,
		Review:       req.Review,
		VisitDate:    visitDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCheckInInvalidRating):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, service.ErrAttractionNotFound):
			return c.JSON(http.StatusNotFound, util.Error("attraction not found"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to create check-in"))
		}
	}

	return c.JSON(http.StatusCreated, util.Data("check_in", checkIn))
}

func (h *CheckInHandler) get(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("check-in id must be a valid UUID"))
	}

	checkIn, err := h.checkIns.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCheckInNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("check-in not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load check-in"))
	}
	return c.JSON(http.StatusOK, util.Data("check_in", checkIn))
}

func (h *CheckInHandler) delete(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("check-in id must be a valid UUID"))
	}

	if err := h.checkIns.Delete(c.Request().Context(), user.ID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrCheckInNotFound):
			return c.JSON(http.StatusNotFound, util.Error("check-in not found"))
		case errors.Is(err, service.ErrCheckInForbidden):
			return c.JSON(http.StatusForbidden, util.Error("check-in belongs to another user"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to delete check-in"))
		}
	}
	return c.JSON(http.StatusOK, util.Message("check-in deleted"))
}

func (h *CheckInHandler) listByAttraction(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("attraction id must be a valid UUID"))
	}

	limit, offset := parsePagination(c, 20, 0)
	items, err := h.checkIns.ListByAttraction(c.Request().Context(), id, limit, offset)
	if err != nil {
		if errors.Is(err, service.ErrAttractionNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("attraction not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load check-ins"))
	}
	return c.JSON(http.StatusOK, util.Data("items", items))
}

func (h *CheckInHandler) listByUser(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("user id must be a valid UUID"))
	}

	limit, offset := parsePagination(c, 20, 0)
	items, err := h.checkIns.ListByUser(c.Request().Context(), id, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load check-ins"))
	}
	return c.JSON(http.StatusOK, util.Data("items", items))
}
