package domain

import (
	"time"

	"github.com/google/uuid"
)

// StateUnknown is a legacy sentinel left behind by the importer for rows
// whose state could not be determined. Treated as absent everywhere.
const StateUnknown = "US"

type Attraction struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	City        *string   `db:"city" json:"city,omitempty"`
	State       *string   `db:"state" json:"state,omitempty"`
	Address     *string   `db:"address" json:"address,omitempty"`
	Latitude    *float64  `db:"latitude" json:"latitude,omitempty"`
	Longitude   *float64  `db:"longitude" json:"longitude,omitempty"`
	ImageURL    *string   `db:"image_url" json:"image_url,omitempty"`
	SourceURL   *string   `db:"source_url" json:"source_url,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	// Derived per request, never persisted.
	VisitCount    int        `db:"-" json:"visit_count"`
	RatingCount   int        `db:"-" json:"rating_count"`
	AvgRating     *float64   `db:"-" json:"avg_rating"`
	DistanceMiles *float64   `db:"-" json:"distance_miles,omitempty"`
	Categories    []Category `db:"-" json:"categories,omitempty"`
}

type Category struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
	Slug string    `db:"slug" json:"slug"`
}

type CategoryCount struct {
	Category
	AttractionCount int `db:"attraction_count" json:"attraction_count"`
}

type AttractionSortField string

const (
	AttractionSortName       AttractionSortField = "name"
	AttractionSortState      AttractionSortField = "state"
	AttractionSortCity       AttractionSortField = "city"
	AttractionSortCreatedAt  AttractionSortField = "createdAt"
	AttractionSortVisitCount AttractionSortField = "visitCount"
	AttractionSortRating     AttractionSortField = "rating"
	AttractionSortDistance   AttractionSortField = "distance"
)

type AttractionQuery struct {
	Page      int
	Limit     int
	State     *string
	City      *string
	Search    *string
	Category  *string
	SortBy    AttractionSortField
	SortOrder SortOrder
	ViewerLat *float64
	ViewerLng *float64
}

// Filter carries only the row-selection part of an AttractionQuery; the
// three sort strategies share it so every path ranks the same candidate set.
type AttractionFilter struct {
	State    *string
	City     *string
	Search   *string
	Category *string
}

func (q AttractionQuery) Filter() AttractionFilter {
	return AttractionFilter{
		State:    q.State,
		City:     q.City,
		Search:   q.Search,
		Category: q.Category,
	}
}

type AttractionListResult struct {
	Items []Attraction `json:"items"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

// AttractionRatingKey is one row of the full ranked set for the rating sort:
// the id plus its sort key, in natural row order.
type AttractionRatingKey struct {
	ID        uuid.UUID `db:"id"`
	AvgRating float64   `db:"avg_rating"`
}

// AttractionGeoKey is one coordinate-bearing row for the distance sort.
type AttractionGeoKey struct {
	ID        uuid.UUID `db:"id"`
	Latitude  float64   `db:"latitude"`
	Longitude float64   `db:"longitude"`
}

// AttractionStats are the check-in aggregates for one attraction.
// AvgRating is the mean of non-null ratings only; zero-valued when
// RatingCount is zero.
type AttractionStats struct {
	AttractionID uuid.UUID `db:"attraction_id"`
	VisitCount   int       `db:"visit_count"`
	RatingCount  int       `db:"rating_count"`
	AvgRating    float64   `db:"avg_rating"`
}

type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)
