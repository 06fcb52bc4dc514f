package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
	"github.com/roadtrippi/roadtrippi-backend/internal/service"
	"github.com/roadtrippi/roadtrippi-backend/internal/util"
)

type AttractionHandler struct {
	attractions *service.AttractionService
	viewStats   *service.ViewStatsService
}

func RegisterAttractions(e *echo.Echo, attractions *service.AttractionService, viewStats *service.ViewStatsService) {
	handler := &AttractionHandler{
		attractions: attractions,
		viewStats:   viewStats,
	}

	public := e.Group("/api/attractions")
	public.GET("", handler.list)
	public.GET("/map", handler.mapPins)
	public.GET("/categories", handler.categories)
	public.GET("/trending", handler.trending)
	public.GET("/:id", handler.get)
	public.GET("/:id/view-stats", handler.getViewStats)
}

var sortFields = map[string]domain.AttractionSortField{
	"name":       domain.AttractionSortName,
	"state":      domain.AttractionSortState,
	"city":       domain.AttractionSortCity,
	"createdAt":  domain.AttractionSortCreatedAt,
	"visitCount": domain.AttractionSortVisitCount,
	"rating":     domain.AttractionSortRating,
	"distance":   domain.AttractionSortDistance,
}

func (h *AttractionHandler) list(c echo.Context) error {
	query := domain.AttractionQuery{
		State:    queryStringPtr(c, "state"),
		City:     queryStringPtr(c, "city"),
		Search:   queryStringPtr(c, "search"),
		Category: queryStringPtr(c, "category"),
	}

	if raw := strings.TrimSpace(c.QueryParam("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return c.JSON(http.StatusBadRequest, util.Error("page must be a positive integer"))
		}
		query.Page = page
	}
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return c.JSON(http.StatusBadRequest, util.Error("limit must be a positive integer"))
		}
		query.Limit = limit
	}

	if raw := strings.TrimSpace(c.QueryParam("sortBy")); raw != "" {
		sortBy, ok := sortFields[raw]
		if !ok {
			return c.JSON(http.StatusBadRequest, util.Error("unknown sortBy value"))
		}
		query.SortBy = sortBy
	}
	switch strings.TrimSpace(c.QueryParam("sortOrder")) {
	case "", "asc":
		query.SortOrder = domain.SortOrderAsc
	case "desc":
		query.SortOrder = domain.SortOrderDesc
	default:
		return c.JSON(http.StatusBadRequest, util.Error("sortOrder must be asc or desc"))
	}

	viewerLat, viewerLng, err := parseViewerCoords(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	query.ViewerLat = viewerLat
	query.ViewerLng = viewerLng

	if query.SortBy == domain.AttractionSortDistance && (viewerLat == nil || viewerLng == nil) {
		return c.JSON(http.StatusBadRequest, util.Error("distance sort requires lat and lng"))
	}

	result, err := h.attractions.Query(c.Request().Context(), query)
	if err != nil {
		if errors.Is(err, service.ErrAttractionValidation) {
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load attractions"))
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"items": result.Items,
		"total": result.Total,
		"page":  result.Page,
		"limit": result.Limit,
	})
}

func (h *AttractionHandler) get(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("attraction id must be a valid UUID"))
	}

	viewerLat, viewerLng, err := parseViewerCoords(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	attraction, err := h.attractions.GetByID(c.Request().Context(), id, viewerLat, viewerLng)
	if err != nil {
		if errors.Is(err, service.ErrAttractionNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("attraction not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load attraction"))
	}

	return c.JSON(http.StatusOK, util.Data("attraction", attraction))
}

func (h *AttractionHandler) mapPins(c echo.Context) error {
	viewerLat, viewerLng, err := parseViewerCoords(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	items, err := h.attractions.Map(c.Request().Context(), viewerLat, viewerLng)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load map attractions"))
	}
	return c.JSON(http.StatusOK, util.Data("items", items))
}

func (h *AttractionHandler) categories(c echo.Context) error {
	categories, err := h.attractions.Categories(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load categories"))
	}
	return c.JSON(http.StatusOK, util.Data("categories", categories))
}

func (h *AttractionHandler) trending(c echo.Context) error {
	rangeKey := domain.ViewRange(strings.TrimSpace(c.QueryParam("range")))
	limit, _ := parsePagination(c, 10, 0)

	trending, err := h.viewStats.Trending(c.Request().Context(), rangeKey, limit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAttractionValidation):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, service.ErrViewStatsUnavailable):
			return c.JSON(http.StatusServiceUnavailable, util.Error("trending data temporarily unavailable"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to load trending attractions"))
		}
	}
	return c.JSON(http.StatusOK, util.Data("items", trending))
}

func (h *AttractionHandler) getViewStats(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("attraction id must be a valid UUID"))
	}

	forceRefresh := strings.EqualFold(strings.TrimSpace(c.QueryParam("refresh")), "true")
	stats, err := h.viewStats.GetViewStats(c.Request().Context(), id, forceRefresh)
	if err != nil {
		if errors.Is(err, service.ErrViewStatsUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, util.Error("view stats temporarily unavailable"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load view stats"))
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"attraction_id": id,
		"ranges":        stats,
	})
}

func parseViewerCoords(c echo.Context) (*float64, *float64, error) {
	var lat, lng *float64

	if raw := strings.TrimSpace(c.QueryParam("lat")); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, nil, errors.New("lat must be numeric")
		}
		lat = &value
	}
	if raw := strings.TrimSpace(c.QueryParam("lng")); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, nil, errors.New("lng must be numeric")
		}
		lng = &value
	}
	return lat, lng, nil
}
