package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
	"github.com/roadtrippi/roadtrippi-backend/internal/repository/ports"
)

type AttractionRepository struct {
	db *sqlx.DB
}

func NewAttractionRepo(db *sqlx.DB) *AttractionRepository {
	return &AttractionRepository{db: db}
}

const attractionColumns = `
	a.id, a.name, a.description, a.city, a.state, a.address,
	a.latitude, a.longitude, a.image_url, a.source_url, a.created_at
`

// appendFilter writes the shared WHERE fragment for an attraction filter and
// returns the updated bind params. Every query path (column sort, rating
// keys, geo keys, count) goes through this so they all select the same rows.
func appendFilter(builder *strings.Builder, params []any, filter domain.AttractionFilter) []any {
	if filter.State != nil {
		if state := strings.TrimSpace(*filter.State); state != "" {
			params = append(params, strings.ToUpper(state))
			fmt.Fprintf(builder, "\n\tAND a.state = $%d", len(params))
		}
	}
	if filter.City != nil {
		if city := strings.TrimSpace(*filter.City); city != "" {
			params = append(params, "%"+city+"%")
			fmt.Fprintf(builder, "\n\tAND a.city ILIKE $%d", len(params))
		}
	}
	if filter.Search != nil {
		if search := strings.TrimSpace(*filter.Search); search != "" {
			params = append(params, "%"+search+"%")
			fmt.Fprintf(builder, "\n\tAND a.name ILIKE $%d", len(params))
		}
	}
	if filter.Category != nil {
		if slug := strings.TrimSpace(*filter.Category); slug != "" {
			params = append(params, slug)
			fmt.Fprintf(builder, `
	AND EXISTS (
		SELECT 1
		FROM attraction_categories ac
		JOIN categories c ON c.id = ac.category_id
		WHERE ac.attraction_id = a.id AND c.slug = $%d
	)`, len(params))
		}
	}
	return params
}

func (r *AttractionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Attraction, error) {
	query := `SELECT ` + attractionColumns + ` FROM attractions a WHERE a.id = $1`
	var attraction domain.Attraction
	if err := r.db.GetContext(ctx, &attraction, query, id); err != nil {
		return nil, err
	}
	return &attraction, nil
}

func (r *AttractionRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Attraction, error) {
	if len(ids) == 0 {
		return []domain.Attraction{}, nil
	}
	query := `SELECT ` + attractionColumns + ` FROM attractions a WHERE a.id = ANY($1)`
	attractions := make([]domain.Attraction, 0, len(ids))
	if err := r.db.SelectContext(ctx, &attractions, query, pq.Array(ids)); err != nil {
		return nil, err
	}
	return attractions, nil
}

func (r *AttractionRepository) List(ctx context.Context, filter domain.AttractionFilter, sortBy domain.AttractionSortField, order domain.SortOrder, limit, offset int) ([]domain.Attraction, error) {
	var builder strings.Builder
	builder.WriteString(`SELECT ` + attractionColumns + ` FROM attractions a WHERE TRUE`)
	params := appendFilter(&builder, nil, filter)

	direction := "ASC"
	if order == domain.SortOrderDesc {
		direction = "DESC"
	}

	builder.WriteString("\n\tORDER BY ")
	switch sortBy {
	case domain.AttractionSortState:
		builder.WriteString("a.state " + direction + ", a.id")
	case domain.AttractionSortCity:
		builder.WriteString("a.city " + direction + ", a.id")
	case domain.AttractionSortCreatedAt:
		builder.WriteString("a.created_at " + direction + ", a.id")
	case domain.AttractionSortVisitCount:
		builder.WriteString(`(
			SELECT COUNT(*) FROM check_ins ci WHERE ci.attraction_id = a.id
		) ` + direction + ", a.id")
	default:
		builder.WriteString("a.name " + direction + ", a.id")
	}

	params = append(params, limit, offset)
	fmt.Fprintf(&builder, "\n\tLIMIT $%d OFFSET $%d", len(params)-1, len(params))

	attractions := make([]domain.Attraction, 0)
	if err := r.db.SelectContext(ctx, &attractions, builder.String(), params...); err != nil {
		return nil, err
	}
	return attractions, nil
}

func (r *AttractionRepository) Count(ctx context.Context, filter domain.AttractionFilter) (int, error) {
	var builder strings.Builder
	builder.WriteString(`SELECT COUNT(*) FROM attractions a WHERE TRUE`)
	params := appendFilter(&builder, nil, filter)

	var count int
	if err := r.db.GetContext(ctx, &count, builder.String(), params...); err != nil {
		return 0, err
	}
	return count, nil
}

// ListRatingKeys returns every filtered attraction id with its average of
// non-null check-in ratings, zero when unrated, in natural row order.
func (r *AttractionRepository) ListRatingKeys(ctx context.Context, filter domain.AttractionFilter) ([]domain.AttractionRatingKey, error) {
	var builder strings.Builder
	builder.WriteString(`
		SELECT
			a.id,
			COALESCE(AVG(ci.rating)::float8, 0) AS avg_rating
		FROM attractions a
		LEFT JOIN check_ins ci ON ci.attraction_id = a.id AND ci.rating IS NOT NULL
		WHERE TRUE`)
	params := appendFilter(&builder, nil, filter)
	builder.WriteString("\n\tGROUP BY a.id\n\tORDER BY a.id")

	keys := make([]domain.AttractionRatingKey, 0)
	if err := r.db.SelectContext(ctx, &keys, builder.String(), params...); err != nil {
		return nil, err
	}
	return keys, nil
}

// ListGeoKeys returns the filtered attractions that have coordinates;
// rows without coordinates never participate in distance ranking.
func (r *AttractionRepository) ListGeoKeys(ctx context.Context, filter domain.AttractionFilter) ([]domain.AttractionGeoKey, error) {
	var builder strings.Builder
	builder.WriteString(`
		SELECT a.id, a.latitude, a.longitude
		FROM attractions a
		WHERE a.latitude IS NOT NULL AND a.longitude IS NOT NULL`)
	params := appendFilter(&builder, nil, filter)
	builder.WriteString("\n\tORDER BY a.id")

	keys := make([]domain.AttractionGeoKey, 0)
	if err := r.db.SelectContext(ctx, &keys, builder.String(), params...); err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *AttractionRepository) StatsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.AttractionStats, error) {
	result := make(map[uuid.UUID]domain.AttractionStats, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	const query = `
		SELECT
			ci.attraction_id,
			COUNT(*)::int AS visit_count,
			COUNT(ci.rating)::int AS rating_count,
			COALESCE(AVG(ci.rating)::float8, 0) AS avg_rating
		FROM check_ins ci
		WHERE ci.attraction_id = ANY($1)
		GROUP BY ci.attraction_id
	`

	rows, err := r.db.QueryxContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var stats domain.AttractionStats
		if err := rows.StructScan(&stats); err != nil {
			return nil, err
		}
		result[stats.AttractionID] = stats
	}
	return result, rows.Err()
}

func (r *AttractionRepository) CategoriesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]domain.Category, error) {
	result := make(map[uuid.UUID][]domain.Category, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	const query = `
		SELECT ac.attraction_id, c.id, c.name, c.slug
		FROM attraction_categories ac
		JOIN categories c ON c.id = ac.category_id
		WHERE ac.attraction_id = ANY($1)
		ORDER BY c.name
	`

	rows, err := r.db.QueryxContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var attractionID uuid.UUID
		var category domain.Category
		if err := rows.Scan(&attractionID, &category.ID, &category.Name, &category.Slug); err != nil {
			return nil, err
		}
		result[attractionID] = append(result[attractionID], category)
	}
	return result, rows.Err()
}

func (r *AttractionRepository) ListWithCoordinates(ctx context.Context) ([]domain.Attraction, error) {
	query := `
		SELECT ` + attractionColumns + `
		FROM attractions a
		WHERE a.latitude IS NOT NULL AND a.longitude IS NOT NULL
		ORDER BY a.name
	`
	attractions := make([]domain.Attraction, 0)
	if err := r.db.SelectContext(ctx, &attractions, query); err != nil {
		return nil, err
	}
	return attractions, nil
}

func (r *AttractionRepository) ListCategories(ctx context.Context) ([]domain.CategoryCount, error) {
	const query = `
		SELECT
			c.id, c.name, c.slug,
			COUNT(ac.attraction_id)::int AS attraction_count
		FROM categories c
		LEFT JOIN attraction_categories ac ON ac.category_id = c.id
		GROUP BY c.id
		ORDER BY c.name
	`
	categories := make([]domain.CategoryCount, 0)
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, err
	}
	return categories, nil
}

var _ ports.AttractionRepository = (*AttractionRepository)(nil)
