package domain

import (
	"time"

	"github.com/google/uuid"
)

type ViewRange string

const (
	ViewRange24h ViewRange = "24h"
	ViewRange7d  ViewRange = "7d"
	ViewRange30d ViewRange = "30d"
	ViewRangeAll ViewRange = "all"
)

var ViewRangesOrdered = []ViewRange{
	ViewRange24h,
	ViewRange7d,
	ViewRange30d,
	ViewRangeAll,
}

func (r ViewRange) Duration() (time.Duration, bool) {
	switch r {
	case ViewRange24h:
		return 24 * time.Hour, true
	case ViewRange7d:
		return 7 * 24 * time.Hour, true
	case ViewRange30d:
		return 30 * 24 * time.Hour, true
	case ViewRangeAll:
		return 0, true
	default:
		return 0, false
	}
}

type ViewStatBucket struct {
	AttractionID uuid.UUID
	RangeKey     ViewRange
	BucketStart  time.Time
	BucketEnd    time.Time
	TotalViews   int64
	UniqueUsers  int
	UpdatedAt    time.Time
}

type ViewStatValue struct {
	TotalViews  int64     `json:"total_views"`
	UniqueUsers int       `json:"unique_users"`
	BucketEnd   time.Time `json:"bucket_end"`
}

type TrendingAttraction struct {
	AttractionID uuid.UUID `db:"attraction_id" json:"attraction_id"`
	Name         string    `db:"name" json:"name"`
	City         *string   `db:"city" json:"city,omitempty"`
	State        *string   `db:"state" json:"state,omitempty"`
	ImageURL     *string   `db:"image_url" json:"image_url,omitempty"`
	TotalViews   int64     `db:"total_views" json:"total_views"`
	UniqueUsers  int       `db:"unique_users" json:"unique_users"`
}
