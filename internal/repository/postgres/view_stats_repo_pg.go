package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
	"github.com/roadtrippi/roadtrippi-backend/internal/repository/ports"
)

type ViewStatsRepository struct {
	db *sqlx.DB
}

func NewViewStatsRepo(db *sqlx.DB) *ViewStatsRepository {
	return &ViewStatsRepository{db: db}
}

func (r *ViewStatsRepository) UpsertBuckets(ctx context.Context, buckets []domain.ViewStatBucket) error {
	if len(buckets) == 0 {
		return nil
	}

	const query = `
		INSERT INTO attraction_view_stats (
			attraction_id, range_key, bucket_start, bucket_end,
			total_views, unique_users, updated_at
		) VALUES (
			:attraction_id, :range_key, :bucket_start, :bucket_end,
			:total_views, :unique_users, :updated_at
		)
		ON CONFLICT (attraction_id, range_key)
		DO UPDATE SET
			bucket_start = EXCLUDED.bucket_start,
			bucket_end = EXCLUDED.bucket_end,
			total_views = EXCLUDED.total_views,
			unique_users = EXCLUDED.unique_users,
			updated_at = EXCLUDED.updated_at
	`

	rows := make([]map[string]any, 0, len(buckets))
	for _, bucket := range buckets {
		rows = append(rows, map[string]any{
			"attraction_id": bucket.AttractionID,
			"range_key":     bucket.RangeKey,
			"bucket_start":  bucket.BucketStart,
			"bucket_end":    bucket.BucketEnd,
			"total_views":   bucket.TotalViews,
			"unique_users":  bucket.UniqueUsers,
			"updated_at":    bucket.UpdatedAt,
		})
	}
	_, err := r.db.NamedExecContext(ctx, query, rows)
	return err
}

func (r *ViewStatsRepository) GetStats(ctx context.Context, attractionID uuid.UUID) (map[domain.ViewRange]domain.ViewStatValue, time.Time, error) {
	const query = `
		SELECT range_key, bucket_end, total_views, unique_users
		FROM attraction_view_stats
		WHERE attraction_id = $1
	`

	rows := []struct {
		RangeKey    string    `db:"range_key"`
		BucketEnd   time.Time `db:"bucket_end"`
		TotalViews  int64     `db:"total_views"`
		UniqueUsers int       `db:"unique_users"`
	}{}

	if err := r.db.SelectContext(ctx, &rows, query, attractionID); err != nil {
		return nil, time.Time{}, err
	}

	stats := make(map[domain.ViewRange]domain.ViewStatValue, len(rows))
	var latest time.Time
	for _, row := range rows {
		stats[domain.ViewRange(row.RangeKey)] = domain.ViewStatValue{
			TotalViews:  row.TotalViews,
			UniqueUsers: row.UniqueUsers,
			BucketEnd:   row.BucketEnd,
		}
		if row.BucketEnd.After(latest) {
			latest = row.BucketEnd
		}
	}
	return stats, latest, nil
}

func (r *ViewStatsRepository) ListTopByRange(ctx context.Context, rangeKey domain.ViewRange, limit int) ([]domain.TrendingAttraction, error) {
	if limit <= 0 {
		limit = 10
	}

	const query = `
		SELECT a.id AS attraction_id, a.name, a.city, a.state, a.image_url,
		       avs.total_views, avs.unique_users
		FROM attraction_view_stats avs
		JOIN attractions a ON a.id = avs.attraction_id
		WHERE avs.range_key = $1
		ORDER BY avs.total_views DESC, a.name ASC
		LIMIT $2
	`

	trending := make([]domain.TrendingAttraction, 0)
	if err := r.db.SelectContext(ctx, &trending, query, string(rangeKey), limit); err != nil {
		return nil, err
	}
	return trending, nil
}

func (r *ViewStatsRepository) ListAttractionIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM attractions`); err != nil {
		return nil, err
	}
	return ids, nil
}

var _ ports.ViewStatsRepository = (*ViewStatsRepository)(nil)
