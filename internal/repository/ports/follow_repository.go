package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
)

type FollowRepository interface {
	Add(ctx context.Context, followerID, followingID uuid.UUID) (*domain.Follow, error)
	Remove(ctx context.Context, followerID, followingID uuid.UUID) error
	Followers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.FollowEntry, error)
	Following(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.FollowEntry, error)
	RecentFollowers(ctx context.Context, userID uuid.UUID, limit int) ([]domain.FollowActivity, error)
}
