package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
	"github.com/roadtrippi/roadtrippi-backend/internal/geo"
	"github.com/roadtrippi/roadtrippi-backend/internal/repository/ports"
)

var (
	ErrAttractionNotFound   = errors.New("attraction not found")
	ErrAttractionValidation = errors.New("invalid attraction query")
)

// AttractionService is the read model for the attraction catalogue. It owns
// the three sort strategies and the per-request enrichment (check-in
// aggregates, categories, resolved city/state, viewer distance).
type AttractionService struct {
	attractions ports.AttractionRepository
}

func NewAttractionService(attractionRepo ports.AttractionRepository) *AttractionService {
	return &AttractionService{attractions: attractionRepo}
}

func (s *AttractionService) Query(ctx context.Context, query domain.AttractionQuery) (*domain.AttractionListResult, error) {
	page, limit := normalizePageLimit(query.Page, query.Limit)
	offset := (page - 1) * limit

	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = domain.AttractionSortName
	}
	order := query.SortOrder
	if order != domain.SortOrderDesc {
		order = domain.SortOrderAsc
	}

	filter := query.Filter()

	var (
		items []domain.Attraction
		total int
		err   error
	)

	switch sortBy {
	case domain.AttractionSortRating:
		items, total, err = s.pageByRating(ctx, filter, order, limit, offset)
	case domain.AttractionSortDistance:
		if query.ViewerLat == nil || query.ViewerLng == nil {
			return nil, fmt.Errorf("%w: distance sort requires lat and lng", ErrAttractionValidation)
		}
		items, total, err = s.pageByDistance(ctx, filter, order, *query.ViewerLat, *query.ViewerLng, limit, offset)
	default:
		items, err = s.attractions.List(ctx, filter, sortBy, order, limit, offset)
		if err == nil {
			total, err = s.attractions.Count(ctx, filter)
		}
	}
	if err != nil {
		return nil, err
	}

	if err := s.enrich(ctx, items, query.ViewerLat, query.ViewerLng); err != nil {
		return nil, err
	}

	return &domain.AttractionListResult{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// pageByRating ranks the full filtered id set by derived average rating,
// slices the page, then fetches and re-orders the page's records. Unrated
// attractions carry a 0 sort key; ties keep natural row order because the
// keys arrive in id order and the sort is stable.
func (s *AttractionService) pageByRating(ctx context.Context, filter domain.AttractionFilter, order domain.SortOrder, limit, offset int) ([]domain.Attraction, int, error) {
	keys, err := s.attractions.ListRatingKeys(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	sort.SliceStable(keys, func(i, j int) bool {
		if order == domain.SortOrderDesc {
			return keys[i].AvgRating > keys[j].AvgRating
		}
		return keys[i].AvgRating < keys[j].AvgRating
	})

	ids := make([]uuid.UUID, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, key.ID)
	}

	pageItems, err := s.fetchPage(ctx, ids, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return pageItems, len(ids), nil
}

// pageByDistance ranks every coordinate-bearing filtered attraction by
// haversine distance from the viewer. Rows without coordinates never enter
// the ranking, so they are absent from every page and from the total.
func (s *AttractionService) pageByDistance(ctx context.Context, filter domain.AttractionFilter, order domain.SortOrder, viewerLat, viewerLng float64, limit, offset int) ([]domain.Attraction, int, error) {
	keys, err := s.attractions.ListGeoKeys(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	type ranked struct {
		id       uuid.UUID
		distance float64
	}
	rankedKeys := make([]ranked, 0, len(keys))
	for _, key := range keys {
		rankedKeys = append(rankedKeys, ranked{
			id:       key.ID,
			distance: geo.DistanceMiles(viewerLat, viewerLng, key.Latitude, key.Longitude),
		})
	}

	sort.SliceStable(rankedKeys, func(i, j int) bool {
		if order == domain.SortOrderDesc {
			return rankedKeys[i].distance > rankedKeys[j].distance
		}
		return rankedKeys[i].distance < rankedKeys[j].distance
	})

	ids := make([]uuid.UUID, 0, len(rankedKeys))
	for _, key := range rankedKeys {
		ids = append(ids, key.id)
	}

	pageItems, err := s.fetchPage(ctx, ids, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return pageItems, len(ids), nil
}

// fetchPage slices one page out of a fully ranked id list, fetches the
// records, and restores the ranked order. The store returns rows in its own
// order, so the re-sort by remembered rank is required, not defensive.
func (s *AttractionService) fetchPage(ctx context.Context, rankedIDs []uuid.UUID, limit, offset int) ([]domain.Attraction, error) {
	if offset >= len(rankedIDs) {
		return []domain.Attraction{}, nil
	}
	end := offset + limit
	if end > len(rankedIDs) {
		end = len(rankedIDs)
	}
	pageIDs := rankedIDs[offset:end]

	items, err := s.attractions.FindByIDs(ctx, pageIDs)
	if err != nil {
		return nil, err
	}

	rank := make(map[uuid.UUID]int, len(pageIDs))
	for i, id := range pageIDs {
		rank[id] = i
	}
	sort.SliceStable(items, func(i, j int) bool {
		return rank[items[i].ID] < rank[items[j].ID]
	})
	return items, nil
}

func (s *AttractionService) GetByID(ctx context.Context, id uuid.UUID, viewerLat, viewerLng *float64) (*domain.Attraction, error) {
	attraction, err := s.attractions.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAttractionNotFound
		}
		return nil, err
	}

	items := []domain.Attraction{*attraction}
	if err := s.enrich(ctx, items, viewerLat, viewerLng); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// Map returns every geocoded attraction, enriched the same way as the
// paginated listing so pins and list rows never disagree.
func (s *AttractionService) Map(ctx context.Context, viewerLat, viewerLng *float64) ([]domain.Attraction, error) {
	items, err := s.attractions.ListWithCoordinates(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.enrich(ctx, items, viewerLat, viewerLng); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *AttractionService) Categories(ctx context.Context) ([]domain.CategoryCount, error) {
	return s.attractions.ListCategories(ctx)
}

// enrich attaches the derived fields to each attraction in place: check-in
// aggregates, categories, resolved city/state, and viewer distance when both
// ends have coordinates. AvgRating stays nil for unrated attractions even
// though the rating sort ranks them as 0.
func (s *AttractionService) enrich(ctx context.Context, items []domain.Attraction, viewerLat, viewerLng *float64) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	stats, err := s.attractions.StatsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	categories, err := s.attractions.CategoriesByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for i := range items {
		item := &items[i]

		if stat, ok := stats[item.ID]; ok {
			item.VisitCount = stat.VisitCount
			item.RatingCount = stat.RatingCount
			if stat.RatingCount > 0 {
				avg := stat.AvgRating
				item.AvgRating = &avg
			}
		}
		item.Categories = categories[item.ID]

		item.City, item.State = geo.ResolveCityState(item.City, item.State, item.Address)

		if viewerLat != nil && viewerLng != nil && item.Latitude != nil && item.Longitude != nil {
			distance := geo.DistanceMiles(*viewerLat, *viewerLng, *item.Latitude, *item.Longitude)
			item.DistanceMiles = &distance
		}
	}
	return nil
}

func normalizePageLimit(page, limit int) (int, int) {
	const (
		defaultLimit = 20
		maxLimit     = 100
	)

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
