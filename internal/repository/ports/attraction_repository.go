package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
)

type AttractionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Attraction, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Attraction, error)
	List(ctx context.Context, filter domain.AttractionFilter, sortBy domain.AttractionSortField, order domain.SortOrder, limit, offset int) ([]domain.Attraction, error)
	Count(ctx context.Context, filter domain.AttractionFilter) (int, error)
	ListRatingKeys(ctx context.Context, filter domain.AttractionFilter) ([]domain.AttractionRatingKey, error)
	ListGeoKeys(ctx context.Context, filter domain.AttractionFilter) ([]domain.AttractionGeoKey, error)
	StatsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.AttractionStats, error)
	CategoriesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]domain.Category, error)
	ListWithCoordinates(ctx context.Context) ([]domain.Attraction, error)
	ListCategories(ctx context.Context) ([]domain.CategoryCount, error)
}
