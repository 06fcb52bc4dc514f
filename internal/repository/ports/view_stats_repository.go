package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
)

type ViewStatsRepository interface {
	UpsertBuckets(ctx context.Context, buckets []domain.ViewStatBucket) error
	GetStats(ctx context.Context, attractionID uuid.UUID) (map[domain.ViewRange]domain.ViewStatValue, time.Time, error)
	ListTopByRange(ctx context.Context, rangeKey domain.ViewRange, limit int) ([]domain.TrendingAttraction, error)
	ListAttractionIDs(ctx context.Context) ([]uuid.UUID, error)
}
