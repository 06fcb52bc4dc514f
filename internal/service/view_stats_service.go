package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
	"github.com/roadtrippi/roadtrippi-backend/internal/repository/ports"
)

var ErrViewStatsUnavailable = errors.New("attraction view stats unavailable")

type ViewStatsConfig struct {
	LogIndex       string
	CacheTTL       time.Duration
	RequestTimeout time.Duration
}

// ViewStatsService mines attraction page views out of the request logs in
// Elasticsearch and rolls them up into per-range buckets in Postgres. The
// trending endpoint reads only the rolled-up buckets, never ES directly.
type ViewStatsService struct {
	repo           ports.ViewStatsRepository
	es             *elasticsearch.Client
	logIndex       string
	cacheTTL       time.Duration
	requestTimeout time.Duration
}

func NewViewStatsService(repo ports.ViewStatsRepository, es *elasticsearch.Client, cfg ViewStatsConfig) *ViewStatsService {
	return &ViewStatsService{
		repo:           repo,
		es:             es,
		logIndex:       cfg.LogIndex,
		cacheTTL:       cfg.CacheTTL,
		requestTimeout: cfg.RequestTimeout,
	}
}

func (s *ViewStatsService) GetViewStats(ctx context.Context, attractionID uuid.UUID, forceRefresh bool) (map[domain.ViewRange]domain.ViewStatValue, error) {
	stats, latest, err := s.repo.GetStats(ctx, attractionID)
	if err != nil {
		return nil, err
	}

	needsRefresh := forceRefresh || s.isStale(latest) || len(stats) == 0
	if needsRefresh {
		if err := s.refreshAttractions(ctx, []uuid.UUID{attractionID}); err != nil {
			if len(stats) == 0 {
				return nil, err
			}
			log.Printf("view stats: refresh fallback for %s failed: %v", attractionID, err)
		} else {
			stats, latest, err = s.repo.GetStats(ctx, attractionID)
			if err != nil {
				return nil, err
			}
		}
	}

	result := make(map[domain.ViewRange]domain.ViewStatValue, len(domain.ViewRangesOrdered))
	for _, key := range domain.ViewRangesOrdered {
		if val, ok := stats[key]; ok {
			result[key] = val
			continue
		}
		result[key] = domain.ViewStatValue{BucketEnd: latest}
	}
	return result, nil
}

func (s *ViewStatsService) Trending(ctx context.Context, rangeKey domain.ViewRange, limit int) ([]domain.TrendingAttraction, error) {
	if rangeKey == "" {
		rangeKey = domain.ViewRange24h
	}
	if _, ok := rangeKey.Duration(); !ok {
		return nil, fmt.Errorf("%w: unknown range %q", ErrAttractionValidation, rangeKey)
	}
	return s.repo.ListTopByRange(ctx, rangeKey, limit)
}

func (s *ViewStatsService) refreshAttractions(ctx context.Context, attractionIDs []uuid.UUID) error {
	if len(attractionIDs) == 0 {
		return nil
	}
	if s.es == nil {
		return fmt.Errorf("%w: elasticsearch client not configured", ErrViewStatsUnavailable)
	}

	const chunkSize = 200
	now := time.Now().UTC()
	for start := 0; start < len(attractionIDs); start += chunkSize {
		end := start + chunkSize
		if end > len(attractionIDs) {
			end = len(attractionIDs)
		}
		chunk := attractionIDs[start:end]

		buckets := make([]domain.ViewStatBucket, 0, len(chunk)*len(domain.ViewRangesOrdered))
		for _, rangeKey := range domain.ViewRangesOrdered {
			rangeStats, err := s.fetchRangeStats(ctx, chunk, rangeKey, now)
			if err != nil {
				return err
			}
			for _, id := range chunk {
				value := rangeStats[id]
				if value.BucketEnd.IsZero() {
					value.BucketEnd = now
				}
				duration, _ := rangeKey.Duration()
				var bucketStart time.Time
				if duration > 0 {
					bucketStart = value.BucketEnd.Add(-duration)
				}
				buckets = append(buckets, domain.ViewStatBucket{
					AttractionID: id,
					RangeKey:     rangeKey,
					BucketStart:  bucketStart,
					BucketEnd:    value.BucketEnd,
					TotalViews:   value.TotalViews,
					UniqueUsers:  value.UniqueUsers,
					UpdatedAt:    now,
				})
			}
		}

		if err := s.repo.UpsertBuckets(ctx, buckets); err != nil {
			return err
		}
	}
	return nil
}

func (s *ViewStatsService) fetchRangeStats(ctx context.Context, attractionIDs []uuid.UUID, rangeKey domain.ViewRange, now time.Time) (map[uuid.UUID]domain.ViewStatValue, error) {
	result := make(map[uuid.UUID]domain.ViewStatValue, len(attractionIDs))
	if len(attractionIDs) == 0 {
		return result, nil
	}
	if s.es == nil {
		return result, fmt.Errorf("%w: elasticsearch client not configured", ErrViewStatsUnavailable)
	}

	ids := make([]string, 0, len(attractionIDs))
	for _, id := range attractionIDs {
		ids = append(ids, id.String())
	}

	mustFilters := []map[string]any{
		{"term": map[string]any{"request.method.keyword": "GET"}},
		{"term": map[string]any{"response.status": 200}},
		{"prefix": map[string]any{"request.uri.keyword": "/api/attractions/"}},
		{"terms": map[string]any{"response.body.attraction.id.keyword": ids}},
	}

	mustNotFilters := []map[string]any{
		{"term": map[string]any{"request.uri.keyword": "/api/attractions"}},
		{"prefix": map[string]any{"ip.keyword": "10."}},
	}

	if duration, ok := rangeKey.Duration(); ok && duration > 0 {
		gte := now.Add(-duration).UTC().Format(time.RFC3339)
		mustFilters = append(mustFilters, map[string]any{
			"range": map[string]any{
				"@timestamp": map[string]any{"gte": gte},
			},
		})
	}

	body := map[string]any{
		"size": 0,
		"query": map[string]any{
			"bool": map[string]any{
				"must":     mustFilters,
				"must_not": mustNotFilters,
			},
		},
		"aggs": map[string]any{
			"attractions": map[string]any{
				"terms": map[string]any{
					"field": "response.body.attraction.id.keyword",
					"size":  len(attractionIDs),
				},
				"aggs": map[string]any{
					"unique_users": map[string]any{"cardinality": map[string]any{"field": "user_uuid.keyword"}},
				},
			},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if s.requestTimeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	resp, err := s.es.Search(
		s.es.Search.WithContext(reqCtx),
		s.es.Search.WithIndex(s.logIndex),
		s.es.Search.WithBody(bytes.NewReader(payload)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrViewStatsUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("%w: elasticsearch search error: %s", ErrViewStatsUnavailable, resp.String())
	}

	var parsed esSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrViewStatsUnavailable, err)
	}

	for _, bucket := range parsed.Aggregations.Attractions.Buckets {
		id, err := uuid.Parse(bucket.Key)
		if err != nil {
			continue
		}
		result[id] = domain.ViewStatValue{
			TotalViews:  bucket.DocCount,
			UniqueUsers: int(bucket.UniqueUsers.Value),
			BucketEnd:   now,
		}
	}

	for _, id := range attractionIDs {
		if _, ok := result[id]; !ok {
			result[id] = domain.ViewStatValue{BucketEnd: now}
		}
	}

	return result, nil
}

func (s *ViewStatsService) isStale(latest time.Time) bool {
	if s.cacheTTL <= 0 {
		return false
	}
	if latest.IsZero() {
		return true
	}
	return time.Since(latest) > s.cacheTTL
}

// RunRollup refreshes every attraction's buckets on a fixed interval until
// the context is cancelled. Intended to run in its own goroutine from main.
func (s *ViewStatsService) RunRollup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ids, err := s.repo.ListAttractionIDs(ctx)
			if err != nil {
				log.Printf("view stats rollup: list attractions: %v", err)
				continue
			}
			if err := s.refreshAttractions(ctx, ids); err != nil {
				log.Printf("view stats rollup: refresh failed: %v", err)
			}
		}
	}
}

type esSearchResponse struct {
	Aggregations struct {
		Attractions struct {
			Buckets []struct {
				Key         string `json:"key"`
				DocCount    int64  `json:"doc_count"`
				UniqueUsers struct {
					Value float64 `json:"value"`
				} `json:"unique_users"`
			} `json:"buckets"`
		} `json:"attractions"`
	} `json:"aggregations"`
}
