package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
)

type LikeRepository interface {
	Add(ctx context.Context, userID uuid.UUID, targetType domain.LikeTargetType, targetID uuid.UUID) (*domain.Like, error)
	Remove(ctx context.Context, userID uuid.UUID, targetType domain.LikeTargetType, targetID uuid.UUID) error
	Count(ctx context.Context, targetType domain.LikeTargetType, targetID uuid.UUID) (int64, error)
	ReviewLikesForCheckIns(ctx context.Context, checkInIDs []uuid.UUID, excludeUserID uuid.UUID) ([]domain.ReviewLikeActivity, error)
	ListLikesForLists(ctx context.Context, listIDs []uuid.UUID, excludeUserID uuid.UUID) ([]domain.ListLikeActivity, error)
}
