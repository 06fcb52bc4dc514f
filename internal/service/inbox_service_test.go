package service

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
	"github.com/roadtrippi/roadtrippi-backend/internal/repository/ports"
)

type inboxCheckInRepo struct {
	byUser map[uuid.UUID][]uuid.UUID
}

func (r *inboxCheckInRepo) Create(ctx context.Context, checkIn *domain.CheckIn) (*domain.CheckIn, error) {
	return checkIn, nil
}

func (r *inboxCheckInRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CheckIn, error) {
	return nil, sql.ErrNoRows
}

func (r *inboxCheckInRepo) Delete(ctx context.Context, id uuid.UUID) error { return sql.ErrNoRows }

func (r *inboxCheckInRepo) ListByAttraction(ctx context.Context, attractionID uuid.UUID, limit, offset int) ([]domain.CheckIn, error) {
	return nil, nil
}

func (r *inboxCheckInRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.CheckIn, error) {
	return nil, nil
}

func (r *inboxCheckInRepo) IDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return r.byUser[userID], nil
}

var _ ports.CheckInRepository = (*inboxCheckInRepo)(nil)

type inboxListRepo struct {
	byUser map[uuid.UUID][]uuid.UUID
}

func (r *inboxListRepo) Create(ctx context.Context, list *domain.List) (*domain.List, error) {
	return list, nil
}

func (r *inboxListRepo) Update(ctx context.Context, list *domain.List) (*domain.List, error) {
	return list, nil
}

func (r *inboxListRepo) Delete(ctx context.Context, id uuid.UUID) error { return sql.ErrNoRows }

func (r *inboxListRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.List, error) {
	return nil, sql.ErrNoRows
}

func (r *inboxListRepo) ListByUser(ctx context.Context, userID uuid.UUID, publicOnly bool, limit, offset int) ([]domain.List, error) {
	return nil, nil
}

func (r *inboxListRepo) IDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return r.byUser[userID], nil
}

func (r *inboxListRepo) AddItem(ctx context.Context, item *domain.ListItem) (*domain.ListItem, error) {
	return item, nil
}

func (r *inboxListRepo) RemoveItem(ctx context.Context, listID, attractionID uuid.UUID) error {
	return sql.ErrNoRows
}

func (r *inboxListRepo) ItemsByList(ctx context.Context, listID uuid.UUID) ([]domain.ListItem, error) {
	return nil, nil
}

var _ ports.ListRepository = (*inboxListRepo)(nil)

type inboxLikeRepo struct {
	reviewLikes []domain.ReviewLikeActivity
	listLikes   []domain.ListLikeActivity
}

func (r *inboxLikeRepo) Add(ctx context.Context, userID uuid.UUID, targetType domain.LikeTargetType, targetID uuid.UUID) (*domain.Like, error) {
	return nil, nil
}

func (r *inboxLikeRepo) Remove(ctx context.Context, userID uuid.UUID, targetType domain.LikeTargetType, targetID uuid.UUID) error {
	return nil
}

func (r *inboxLikeRepo) Count(ctx context.Context, targetType domain.LikeTargetType, targetID uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *inboxLikeRepo) ReviewLikesForCheckIns(ctx context.Context, checkInIDs []uuid.UUID, excludeUserID uuid.UUID) ([]domain.ReviewLikeActivity, error) {
	out := make([]domain.ReviewLikeActivity, 0)
	for _, activity := range r.reviewLikes {
		if containsID(checkInIDs, activity.CheckInID) && activity.ActorID != excludeUserID {
			out = append(out, activity)
		}
	}
	return out, nil
}

func (r *inboxLikeRepo) ListLikesForLists(ctx context.Context, listIDs []uuid.UUID, excludeUserID uuid.UUID) ([]domain.ListLikeActivity, error) {
	out := make([]domain.ListLikeActivity, 0)
	for _, activity := range r.listLikes {
		if containsID(listIDs, activity.ListID) && activity.ActorID != excludeUserID {
			out = append(out, activity)
		}
	}
	return out, nil
}

var _ ports.LikeRepository = (*inboxLikeRepo)(nil)

type inboxCheckInCommentRepo struct {
	comments []domain.CheckInCommentActivity
}

func (r *inboxCheckInCommentRepo) Create(ctx context.Context, comment *domain.CheckInComment) (*domain.CheckInComment, error) {
	return comment, nil
}

func (r *inboxCheckInCommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CheckInComment, error) {
	return nil, sql.ErrNoRows
}

func (r *inboxCheckInCommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return sql.ErrNoRows
}

func (r *inboxCheckInCommentRepo) ListByCheckIn(ctx context.Context, checkInID uuid.UUID, limit, offset int) ([]domain.CheckInComment, error) {
	return nil, nil
}

func (r *inboxCheckInCommentRepo) ActivityForCheckIns(ctx context.Context, checkInIDs []uuid.UUID, excludeUserID uuid.UUID) ([]domain.CheckInCommentActivity, error) {
	out := make([]domain.CheckInCommentActivity, 0)
	for _, activity := range r.comments {
		if containsID(checkInIDs, activity.CheckInID) && activity.ActorID != excludeUserID {
			out = append(out, activity)
		}
	}
	return out, nil
}

var _ ports.CheckInCommentRepository = (*inboxCheckInCommentRepo)(nil)

type inboxListCommentRepo struct {
	comments []domain.ListCommentActivity
}

func (r *inboxListCommentRepo) Create(ctx context.Context, comment *domain.ListComment) (*domain.ListComment, error) {
	return comment, nil
}

func (r *inboxListCommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ListComment, error) {
	return nil, sql.ErrNoRows
}

func (r *inboxListCommentRepo) Delete(ctx context.Context, id uuid.UUID) error { return sql.ErrNoRows }

func (r *inboxListCommentRepo) ListByList(ctx context.Context, listID uuid.UUID, limit, offset int) ([]domain.ListComment, error) {
	return nil, nil
}

func (r *inboxListCommentRepo) ActivityForLists(ctx context.Context, listIDs []uuid.UUID, excludeUserID uuid.UUID) ([]domain.ListCommentActivity, error) {
	out := make([]domain.ListCommentActivity, 0)
	for _, activity := range r.comments {
		if containsID(listIDs, activity.ListID) && activity.ActorID != excludeUserID {
			out = append(out, activity)
		}
	}
	return out, nil
}

var _ ports.ListCommentRepository = (*inboxListCommentRepo)(nil)

type inboxFollowRepo struct {
	byUser map[uuid.UUID][]domain.FollowActivity
}

func (r *inboxFollowRepo) Add(ctx context.Context, followerID, followingID uuid.UUID) (*domain.Follow, error) {
	return nil, nil
}

func (r *inboxFollowRepo) Remove(ctx context.Context, followerID, followingID uuid.UUID) error {
	return sql.ErrNoRows
}

func (r *inboxFollowRepo) Followers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.FollowEntry, error) {
	return nil, nil
}

func (r *inboxFollowRepo) Following(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.FollowEntry, error) {
	return nil, nil
}

func (r *inboxFollowRepo) RecentFollowers(ctx context.Context, userID uuid.UUID, limit int) ([]domain.FollowActivity, error) {
	activities := r.byUser[userID]
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

var _ ports.FollowRepository = (*inboxFollowRepo)(nil)

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func newInboxFixture() (*InboxService, *inboxCheckInRepo, *inboxListRepo, *inboxLikeRepo, *inboxCheckInCommentRepo, *inboxListCommentRepo, *inboxFollowRepo) {
	checkIns := &inboxCheckInRepo{byUser: make(map[uuid.UUID][]uuid.UUID)}
	lists := &inboxListRepo{byUser: make(map[uuid.UUID][]uuid.UUID)}
	likes := &inboxLikeRepo{}
	checkInComments := &inboxCheckInCommentRepo{}
	listComments := &inboxListCommentRepo{}
	follows := &inboxFollowRepo{byUser: make(map[uuid.UUID][]domain.FollowActivity)}

	svc := NewInboxService(checkIns, lists, likes, checkInComments, listComments, follows)
	return svc, checkIns, lists, likes, checkInComments, listComments, follows
}

func TestInboxService_MergesAndOrdersAllFiveKinds(t *testing.T) {
	ctx := context.Background()
	svc, checkIns, lists, likes, checkInComments, listComments, follows := newInboxFixture()

	owner := uuid.New()
	actor := uuid.New()
	checkInID := uuid.New()
	listID := uuid.New()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	checkIns.byUser[owner] = []uuid.UUID{checkInID}
	lists.byUser[owner] = []uuid.UUID{listID}

	rating := 4.5
	likes.reviewLikes = []domain.ReviewLikeActivity{{
		LikeID: uuid.New(), ActorID: actor, ActorUsername: "wanda",
		CheckInID: checkInID, AttractionID: uuid.New(), AttractionName: "Cadillac Ranch",
		CreatedAt: base.Add(1 * time.Minute),
	}}
	likes.listLikes = []domain.ListLikeActivity{{
		LikeID: uuid.New(), ActorID: actor, ActorUsername: "wanda",
		ListID: listID, ListTitle: "Route 66 Essentials",
		CreatedAt: base.Add(4 * time.Minute),
	}}
	checkInComments.comments = []domain.CheckInCommentActivity{{
		CommentID: uuid.New(), ActorID: actor, ActorUsername: "wanda",
		CheckInID: checkInID, AttractionID: uuid.New(), AttractionName: "Cadillac Ranch",
		Text: "Bring spray paint!", Rating: &rating,
		CreatedAt: base.Add(2 * time.Minute),
	}}
	listComments.comments = []domain.ListCommentActivity{{
		CommentID: uuid.New(), ActorID: actor, ActorUsername: "wanda",
		ListID: listID, ListTitle: "Route 66 Essentials",
		Text:      "Great picks",
		CreatedAt: base.Add(5 * time.Minute),
	}}
	follows.byUser[owner] = []domain.FollowActivity{{
		ActorID: actor, ActorUsername: "wanda",
		CreatedAt: base.Add(3 * time.Minute),
	}}

	items, err := svc.Inbox(ctx, owner, 50)
	if err != nil {
		t.Fatalf("Inbox returned error: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}

	if !sort.SliceIsSorted(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	}) {
		t.Fatalf("expected items in reverse chronological order")
	}

	wantTypes := []domain.InboxItemType{
		domain.InboxCommentList,
		domain.InboxLikeList,
		domain.InboxFollow,
		domain.InboxCommentReview,
		domain.InboxLikeReview,
	}
	for i, want := range wantTypes {
		if items[i].Type != want {
			t.Fatalf("position %d: expected type %s, got %s", i, want, items[i].Type)
		}
	}

	// The review comment carries its parent check-in's rating.
	reviewComment := items[3]
	if reviewComment.Rating == nil || *reviewComment.Rating != 4.5 {
		t.Fatalf("expected review comment to carry rating 4.5, got %v", reviewComment.Rating)
	}
	if reviewComment.AttractionName == nil || *reviewComment.AttractionName != "Cadillac Ranch" {
		t.Fatalf("expected attraction name on review comment")
	}
}

func TestInboxService_SynthesizedIDsAreDistinctAcrossKinds(t *testing.T) {
	ctx := context.Background()
	svc, checkIns, lists, likes, _, _, _ := newInboxFixture()

	owner := uuid.New()
	actor := uuid.New()
	checkInID := uuid.New()
	listID := uuid.New()
	sharedRowID := uuid.New()

	checkIns.byUser[owner] = []uuid.UUID{checkInID}
	lists.byUser[owner] = []uuid.UUID{listID}

	now := time.Now()
	likes.reviewLikes = []domain.ReviewLikeActivity{{
		LikeID: sharedRowID, ActorID: actor, ActorUsername: "wanda",
		CheckInID: checkInID, AttractionID: uuid.New(), AttractionName: "Blue Whale",
		CreatedAt: now,
	}}
	likes.listLikes = []domain.ListLikeActivity{{
		LikeID: sharedRowID, ActorID: actor, ActorUsername: "wanda",
		ListID: listID, ListTitle: "Oddities",
		CreatedAt: now,
	}}

	items, err := svc.Inbox(ctx, owner, 10)
	if err != nil {
		t.Fatalf("Inbox returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID == items[1].ID {
		t.Fatalf("expected distinct synthesized ids, both were %s", items[0].ID)
	}
	for _, item := range items {
		if !strings.HasPrefix(item.ID, "like-") {
			t.Fatalf("expected kind-prefixed id, got %s", item.ID)
		}
	}
}

func TestInboxService_ExcludesSelfActivity(t *testing.T) {
	ctx := context.Background()
	svc, checkIns, _, likes, checkInComments, _, _ := newInboxFixture()

	owner := uuid.New()
	other := uuid.New()
	checkInID := uuid.New()
	checkIns.byUser[owner] = []uuid.UUID{checkInID}

	now := time.Now()
	likes.reviewLikes = []domain.ReviewLikeActivity{
		{LikeID: uuid.New(), ActorID: owner, ActorUsername: "me", CheckInID: checkInID, CreatedAt: now},
		{LikeID: uuid.New(), ActorID: other, ActorUsername: "wanda", CheckInID: checkInID, CreatedAt: now},
	}
	checkInComments.comments = []domain.CheckInCommentActivity{
		{CommentID: uuid.New(), ActorID: owner, ActorUsername: "me", CheckInID: checkInID, Text: "my own note", CreatedAt: now},
	}

	items, err := svc.Inbox(ctx, owner, 10)
	if err != nil {
		t.Fatalf("Inbox returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected only the other user's like, got %d items", len(items))
	}
	if items[0].Actor.ID != other {
		t.Fatalf("expected actor %s, got %s", other, items[0].Actor.ID)
	}
}

func TestInboxService_CapsMergedResultAtLimit(t *testing.T) {
	ctx := context.Background()
	svc, checkIns, _, likes, _, _, follows := newInboxFixture()

	owner := uuid.New()
	checkInID := uuid.New()
	checkIns.byUser[owner] = []uuid.UUID{checkInID}

	base := time.Now()
	for i := 0; i < 6; i++ {
		likes.reviewLikes = append(likes.reviewLikes, domain.ReviewLikeActivity{
			LikeID: uuid.New(), ActorID: uuid.New(), ActorUsername: "fan",
			CheckInID: checkInID, CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
	}
	for i := 0; i < 6; i++ {
		follows.byUser[owner] = append(follows.byUser[owner], domain.FollowActivity{
			ActorID: uuid.New(), ActorUsername: "follower",
			CreatedAt: base.Add(time.Duration(i+10) * time.Second),
		})
	}

	items, err := svc.Inbox(ctx, owner, 4)
	if err != nil {
		t.Fatalf("Inbox returned error: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected cap at 4 items, got %d", len(items))
	}
	// The newest events are the follows; the cap must keep them.
	for _, item := range items {
		if item.Type != domain.InboxFollow {
			t.Fatalf("expected only the newest (follow) events within the cap, got %s", item.Type)
		}
	}
}

func TestInboxService_TruncatesLongComments(t *testing.T) {
	ctx := context.Background()
	svc, checkIns, _, _, checkInComments, _, _ := newInboxFixture()

	owner := uuid.New()
	checkInID := uuid.New()
	checkIns.byUser[owner] = []uuid.UUID{checkInID}

	long := strings.Repeat("x", 150)
	checkInComments.comments = []domain.CheckInCommentActivity{{
		CommentID: uuid.New(), ActorID: uuid.New(), ActorUsername: "wanda",
		CheckInID: checkInID, Text: long, CreatedAt: time.Now(),
	}}

	items, err := svc.Inbox(ctx, owner, 10)
	if err != nil {
		t.Fatalf("Inbox returned error: %v", err)
	}
	if len(items) != 1 || items[0].CommentSnippet == nil {
		t.Fatalf("expected one comment item with a snippet")
	}
	snippet := *items[0].CommentSnippet
	if !strings.HasSuffix(snippet, "…") {
		t.Fatalf("expected truncation marker, got %q", snippet)
	}
	if got := len([]rune(strings.TrimSuffix(snippet, "…"))); got != 100 {
		t.Fatalf("expected 100 runes before the marker, got %d", got)
	}
}

func TestInboxService_EmptyUserYieldsEmptyInbox(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, _, _, _ := newInboxFixture()

	items, err := svc.Inbox(ctx, uuid.New(), 10)
	if err != nil {
		t.Fatalf("Inbox returned error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty inbox, got %d items", len(items))
	}
}
