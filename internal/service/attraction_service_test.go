package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
	"github.com/roadtrippi/roadtrippi-backend/internal/repository/ports"
)

type memoryAttractionRepo struct {
	items      []domain.Attraction
	stats      map[uuid.UUID]domain.AttractionStats
	categories map[uuid.UUID][]domain.Category
}

func newMemoryAttractionRepo() *memoryAttractionRepo {
	return &memoryAttractionRepo{
		stats:      make(map[uuid.UUID]domain.AttractionStats),
		categories: make(map[uuid.UUID][]domain.Category),
	}
}

func (r *memoryAttractionRepo) add(item domain.Attraction) {
	r.items = append(r.items, item)
}

func (r *memoryAttractionRepo) matches(filter domain.AttractionFilter, item domain.Attraction) bool {
	if filter.State != nil {
		if item.State == nil || !strings.EqualFold(*item.State, *filter.State) {
			return false
		}
	}
	if filter.City != nil {
		if item.City == nil || !strings.Contains(strings.ToLower(*item.City), strings.ToLower(*filter.City)) {
			return false
		}
	}
	if filter.Search != nil && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(*filter.Search)) {
		return false
	}
	if filter.Category != nil {
		found := false
		for _, category := range r.categories[item.ID] {
			if category.Slug == *filter.Category {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (r *memoryAttractionRepo) filtered(filter domain.AttractionFilter) []domain.Attraction {
	out := make([]domain.Attraction, 0, len(r.items))
	for _, item := range r.items {
		if r.matches(filter, item) {
			out = append(out, item)
		}
	}
	return out
}

func (r *memoryAttractionRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Attraction, error) {
	for _, item := range r.items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memoryAttractionRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Attraction, error) {
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]domain.Attraction, 0, len(ids))
	for _, item := range r.items {
		if want[item.ID] {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memoryAttractionRepo) List(ctx context.Context, filter domain.AttractionFilter, sortBy domain.AttractionSortField, order domain.SortOrder, limit, offset int) ([]domain.Attraction, error) {
	items := r.filtered(filter)

	compare := func(a, b domain.Attraction) int {
		switch sortBy {
		case domain.AttractionSortState:
			return strings.Compare(deref(a.State), deref(b.State))
		case domain.AttractionSortCity:
			return strings.Compare(deref(a.City), deref(b.City))
		case domain.AttractionSortCreatedAt:
			return a.CreatedAt.Compare(b.CreatedAt)
		case domain.AttractionSortVisitCount:
			return r.stats[a.ID].VisitCount - r.stats[b.ID].VisitCount
		default:
			return strings.Compare(a.Name, b.Name)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		c := compare(items[i], items[j])
		if order == domain.SortOrderDesc {
			return c > 0
		}
		return c < 0
	})

	if offset >= len(items) {
		return []domain.Attraction{}, nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], nil
}

func (r *memoryAttractionRepo) Count(ctx context.Context, filter domain.AttractionFilter) (int, error) {
	return len(r.filtered(filter)), nil
}

func (r *memoryAttractionRepo) ListRatingKeys(ctx context.Context, filter domain.AttractionFilter) ([]domain.AttractionRatingKey, error) {
	items := r.filtered(filter)
	keys := make([]domain.AttractionRatingKey, 0, len(items))
	for _, item := range items {
		avg := 0.0
		if stat, ok := r.stats[item.ID]; ok && stat.RatingCount > 0 {
			avg = stat.AvgRating
		}
		keys = append(keys, domain.AttractionRatingKey{ID: item.ID, AvgRating: avg})
	}
	return keys, nil
}

func (r *memoryAttractionRepo) ListGeoKeys(ctx context.Context, filter domain.AttractionFilter) ([]domain.AttractionGeoKey, error) {
	items := r.filtered(filter)
	keys := make([]domain.AttractionGeoKey, 0, len(items))
	for _, item := range items {
		if item.Latitude == nil || item.Longitude == nil {
			continue
		}
		keys = append(keys, domain.AttractionGeoKey{
			ID:        item.ID,
			Latitude:  *item.Latitude,
			Longitude: *item.Longitude,
		})
	}
	return keys, nil
}

func (r *memoryAttractionRepo) StatsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.AttractionStats, error) {
	out := make(map[uuid.UUID]domain.AttractionStats, len(ids))
	for _, id := range ids {
		if stat, ok := r.stats[id]; ok {
			out[id] = stat
		}
	}
	return out, nil
}

func (r *memoryAttractionRepo) CategoriesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]domain.Category, error) {
	out := make(map[uuid.UUID][]domain.Category, len(ids))
	for _, id := range ids {
		if categories, ok := r.categories[id]; ok {
			out[id] = categories
		}
	}
	return out, nil
}

func (r *memoryAttractionRepo) ListWithCoordinates(ctx context.Context) ([]domain.Attraction, error) {
	out := make([]domain.Attraction, 0, len(r.items))
	for _, item := range r.items {
		if item.Latitude != nil && item.Longitude != nil {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memoryAttractionRepo) ListCategories(ctx context.Context) ([]domain.CategoryCount, error) {
	return []domain.CategoryCount{}, nil
}

var _ ports.AttractionRepository = (*memoryAttractionRepo)(nil)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func seedAttraction(repo *memoryAttractionRepo, name string, lat, lng *float64) domain.Attraction {
	item := domain.Attraction{
		ID:        uuid.New(),
		Name:      name,
		Latitude:  lat,
		Longitude: lng,
		CreatedAt: time.Now(),
	}
	repo.add(item)
	return item
}

func TestAttractionService_RatingSortOrderAndDisplay(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryAttractionRepo()
	svc := NewAttractionService(repo)

	top := seedAttraction(repo, "Cadillac Ranch", floatPtr(35.1850), floatPtr(-101.9898))
	mid := seedAttraction(repo, "Blue Whale", floatPtr(36.2362), floatPtr(-95.7419))
	unratedA := seedAttraction(repo, "Mystery Spot", nil, nil)
	unratedB := seedAttraction(repo, "World's Largest Ball of Twine", nil, nil)

	repo.stats[top.ID] = domain.AttractionStats{AttractionID: top.ID, VisitCount: 2, RatingCount: 2, AvgRating: 4.5}
	repo.stats[mid.ID] = domain.AttractionStats{AttractionID: mid.ID, VisitCount: 1, RatingCount: 1, AvgRating: 3.0}

	result, err := svc.Query(ctx, domain.AttractionQuery{
		SortBy:    domain.AttractionSortRating,
		SortOrder: domain.SortOrderDesc,
	})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if result.Total != 4 {
		t.Fatalf("expected total 4, got %d", result.Total)
	}
	if len(result.Items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(result.Items))
	}

	if result.Items[0].ID != top.ID || result.Items[1].ID != mid.ID {
		t.Fatalf("expected rated attractions first, got %s then %s", result.Items[0].Name, result.Items[1].Name)
	}
	// Unrated attractions rank as 0 and keep natural row order among themselves.
	if result.Items[2].ID != unratedA.ID || result.Items[3].ID != unratedB.ID {
		t.Fatalf("expected unrated attractions in natural order, got %s then %s", result.Items[2].Name, result.Items[3].Name)
	}

	if result.Items[0].AvgRating == nil || *result.Items[0].AvgRating != 4.5 {
		t.Fatalf("expected avg rating 4.5, got %v", result.Items[0].AvgRating)
	}
	if result.Items[0].RatingCount != 2 {
		t.Fatalf("expected rating count 2, got %d", result.Items[0].RatingCount)
	}
	// Unrated displays as null even though it ranked as 0.
	if result.Items[2].AvgRating != nil {
		t.Fatalf("expected nil avg rating for unrated attraction, got %v", *result.Items[2].AvgRating)
	}
	if result.Items[2].RatingCount != 0 {
		t.Fatalf("expected rating count 0, got %d", result.Items[2].RatingCount)
	}
}

func TestAttractionService_PaginationCoversAllPagesOnce(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryAttractionRepo()
	svc := NewAttractionService(repo)

	for i := 0; i < 7; i++ {
		item := seedAttraction(repo, string(rune('A'+i))+" Stop", nil, nil)
		repo.stats[item.ID] = domain.AttractionStats{
			AttractionID: item.ID,
			RatingCount:  1,
			AvgRating:    float64(i%3) + 1,
		}
	}

	seen := make(map[uuid.UUID]bool)
	total := 0
	for page := 1; page <= 3; page++ {
		result, err := svc.Query(ctx, domain.AttractionQuery{
			Page:      page,
			Limit:     3,
			SortBy:    domain.AttractionSortRating,
			SortOrder: domain.SortOrderDesc,
		})
		if err != nil {
			t.Fatalf("Query page %d returned error: %v", page, err)
		}
		if len(result.Items) > 3 {
			t.Fatalf("page %d exceeds limit: %d items", page, len(result.Items))
		}
		for _, item := range result.Items {
			if seen[item.ID] {
				t.Fatalf("attraction %s appeared on more than one page", item.Name)
			}
			seen[item.ID] = true
		}
		total = result.Total
	}
	if total != 7 || len(seen) != 7 {
		t.Fatalf("expected 7 distinct items across pages, got total=%d seen=%d", total, len(seen))
	}
}

func TestAttractionService_DistanceSortExcludesUngeocodedRows(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryAttractionRepo()
	svc := NewAttractionService(repo)

	atViewer := seedAttraction(repo, "Cadillac Ranch", floatPtr(35.1850), floatPtr(-101.9898))
	farther := seedAttraction(repo, "Blue Whale", floatPtr(36.2362), floatPtr(-95.7419))
	seedAttraction(repo, "Ungeocoded Diner", nil, nil)

	result, err := svc.Query(ctx, domain.AttractionQuery{
		SortBy:    domain.AttractionSortDistance,
		SortOrder: domain.SortOrderAsc,
		ViewerLat: floatPtr(35.1850),
		ViewerLng: floatPtr(-101.9898),
	})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}

	if result.Total != 2 || len(result.Items) != 2 {
		t.Fatalf("expected the ungeocoded row excluded, got total=%d items=%d", result.Total, len(result.Items))
	}
	if result.Items[0].ID != atViewer.ID || result.Items[1].ID != farther.ID {
		t.Fatalf("expected closest first, got %s then %s", result.Items[0].Name, result.Items[1].Name)
	}

	first := result.Items[0].DistanceMiles
	second := result.Items[1].DistanceMiles
	if first == nil || second == nil {
		t.Fatalf("expected distances on both items")
	}
	if math.Abs(*first) > 1e-9 {
		t.Fatalf("expected zero distance for the attraction at the viewer, got %f", *first)
	}
	if *second < *first {
		t.Fatalf("expected non-decreasing distances, got %f then %f", *first, *second)
	}
}

func TestAttractionService_DistanceSortRequiresViewerCoordinates(t *testing.T) {
	ctx := context.Background()
	svc := NewAttractionService(newMemoryAttractionRepo())

	_, err := svc.Query(ctx, domain.AttractionQuery{
		SortBy:    domain.AttractionSortDistance,
		ViewerLng: floatPtr(-101.9898),
	})
	if !errors.Is(err, ErrAttractionValidation) {
		t.Fatalf("expected ErrAttractionValidation without lat, got %v", err)
	}
}

func TestAttractionService_ResolvesCityStateFromAddress(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryAttractionRepo()
	svc := NewAttractionService(repo)

	item := domain.Attraction{
		ID:      uuid.New(),
		Name:    "Cozy Dog Drive In",
		State:   strPtr(domain.StateUnknown),
		Address: strPtr("2935 S 6th St, Springfield, IL"),
	}
	repo.add(item)

	got, err := svc.GetByID(ctx, item.ID, nil, nil)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.City == nil || *got.City != "Springfield" {
		t.Fatalf("expected city Springfield, got %v", got.City)
	}
	if got.State == nil || *got.State != "IL" {
		t.Fatalf("expected state IL, got %v", got.State)
	}
}

func TestAttractionService_ColumnSortDefaultsToNameAscending(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryAttractionRepo()
	svc := NewAttractionService(repo)

	seedAttraction(repo, "Wigwam Motel", nil, nil)
	seedAttraction(repo, "Bluebird Cafe", nil, nil)
	seedAttraction(repo, "Leaning Tower of Niles", nil, nil)

	result, err := svc.Query(ctx, domain.AttractionQuery{})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	names := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		names = append(names, item.Name)
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("expected names sorted ascending, got %v", names)
	}
	if result.Page != 1 || result.Limit != 20 {
		t.Fatalf("expected normalized page=1 limit=20, got page=%d limit=%d", result.Page, result.Limit)
	}
}

func TestAttractionService_CategoryFilterIsExistential(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryAttractionRepo()
	svc := NewAttractionService(repo)

	muffler := seedAttraction(repo, "Muffler Man", nil, nil)
	seedAttraction(repo, "Plain Rest Stop", nil, nil)
	repo.categories[muffler.ID] = []domain.Category{
		{ID: uuid.New(), Name: "Giants", Slug: "giants"},
		{ID: uuid.New(), Name: "Statues", Slug: "statues"},
	}

	result, err := svc.Query(ctx, domain.AttractionQuery{Category: strPtr("giants")})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if result.Total != 1 || len(result.Items) != 1 || result.Items[0].ID != muffler.ID {
		t.Fatalf("expected only the categorized attraction, got %d items", len(result.Items))
	}
}
