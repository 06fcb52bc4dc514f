package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
	"github.com/roadtrippi/roadtrippi-backend/internal/repository/ports"
)

// commentSnippetLimit is the display length of a comment in the inbox,
// counted in runes so multibyte text never splits mid-character.
const commentSnippetLimit = 100

// InboxService merges the five activity streams about a user's content into
// one reverse-chronological feed. Self-activity is already excluded in the
// repository queries, so the merge here is a plain fan-in and sort.
type InboxService struct {
	checkIns        ports.CheckInRepository
	lists           ports.ListRepository
	likes           ports.LikeRepository
	checkInComments ports.CheckInCommentRepository
	listComments    ports.ListCommentRepository
	follows         ports.FollowRepository
}

func NewInboxService(
	checkInRepo ports.CheckInRepository,
	listRepo ports.ListRepository,
	likeRepo ports.LikeRepository,
	checkInCommentRepo ports.CheckInCommentRepository,
	listCommentRepo ports.ListCommentRepository,
	followRepo ports.FollowRepository,
) *InboxService {
	return &InboxService{
		checkIns:        checkInRepo,
		lists:           listRepo,
		likes:           likeRepo,
		checkInComments: checkInCommentRepo,
		listComments:    listCommentRepo,
		follows:         followRepo,
	}
}

func (s *InboxService) Inbox(ctx context.Context, userID uuid.UUID, limit int) ([]domain.InboxItem, error) {
	limit = normalizeInboxLimit(limit)

	checkInIDs, err := s.checkIns.IDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	listIDs, err := s.lists.IDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	reviewLikes, err := s.likes.ReviewLikesForCheckIns(ctx, checkInIDs, userID)
	if err != nil {
		return nil, err
	}
	listLikes, err := s.likes.ListLikesForLists(ctx, listIDs, userID)
	if err != nil {
		return nil, err
	}
	reviewComments, err := s.checkInComments.ActivityForCheckIns(ctx, checkInIDs, userID)
	if err != nil {
		return nil, err
	}
	listComments, err := s.listComments.ActivityForLists(ctx, listIDs, userID)
	if err != nil {
		return nil, err
	}
	followers, err := s.follows.RecentFollowers(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]domain.InboxItem, 0,
		len(reviewLikes)+len(listLikes)+len(reviewComments)+len(listComments)+len(followers))

	for _, activity := range reviewLikes {
		checkInID := activity.CheckInID
		attractionID := activity.AttractionID
		attractionName := activity.AttractionName
		items = append(items, domain.InboxItem{
			ID:   fmt.Sprintf("like-review-%s", activity.LikeID),
			Type: domain.InboxLikeReview,
			Actor: domain.InboxActor{
				ID:        activity.ActorID,
				Username:  activity.ActorUsername,
				AvatarURL: activity.ActorAvatar,
			},
			CreatedAt:      activity.CreatedAt,
			CheckInID:      &checkInID,
			AttractionID:   &attractionID,
			AttractionName: &attractionName,
		})
	}

	for _, activity := range listLikes {
		listID := activity.ListID
		listTitle := activity.ListTitle
		items = append(items, domain.InboxItem{
			ID:   fmt.Sprintf("like-list-%s", activity.LikeID),
			Type: domain.InboxLikeList,
			Actor: domain.InboxActor{
				ID:        activity.ActorID,
				Username:  activity.ActorUsername,
				AvatarURL: activity.ActorAvatar,
			},
			CreatedAt: activity.CreatedAt,
			ListID:    &listID,
			ListTitle: &listTitle,
		})
	}

	for _, activity := range reviewComments {
		checkInID := activity.CheckInID
		attractionID := activity.AttractionID
		attractionName := activity.AttractionName
		commentSnippet := snippet(activity.Text)
		items = append(items, domain.InboxItem{
			ID:   fmt.Sprintf("comment-review-%s", activity.CommentID),
			Type: domain.InboxCommentReview,
			Actor: domain.InboxActor{
				ID:        activity.ActorID,
				Username:  activity.ActorUsername,
				AvatarURL: activity.ActorAvatar,
			},
			CreatedAt:      activity.CreatedAt,
			CheckInID:      &checkInID,
			AttractionID:   &attractionID,
			AttractionName: &attractionName,
			CommentSnippet: &commentSnippet,
			Rating:         activity.Rating,
		})
	}

	for _, activity := range listComments {
		listID := activity.ListID
		listTitle := activity.ListTitle
		commentSnippet := snippet(activity.Text)
		items = append(items, domain.InboxItem{
			ID:   fmt.Sprintf("comment-list-%s", activity.CommentID),
			Type: domain.InboxCommentList,
			Actor: domain.InboxActor{
				ID:        activity.ActorID,
				Username:  activity.ActorUsername,
				AvatarURL: activity.ActorAvatar,
			},
			CreatedAt:      activity.CreatedAt,
			ListID:         &listID,
			ListTitle:      &listTitle,
			CommentSnippet: &commentSnippet,
		})
	}

	for _, activity := range followers {
		items = append(items, domain.InboxItem{
			ID:   fmt.Sprintf("follow-%s", activity.ActorID),
			Type: domain.InboxFollow,
			Actor: domain.InboxActor{
				ID:        activity.ActorID,
				Username:  activity.ActorUsername,
				AvatarURL: activity.ActorAvatar,
			},
			CreatedAt: activity.CreatedAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= commentSnippetLimit {
		return text
	}
	return string(runes[:commentSnippetLimit]) + "…"
}

func normalizeInboxLimit(limit int) int {
	const (
		defaultLimit = 20
		maxLimit     = 100
	)

	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
