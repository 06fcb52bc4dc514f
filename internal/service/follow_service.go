package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
	"github.com/roadtrippi/roadtrippi-backend/internal/repository/ports"
)

var (
	ErrFollowSelf          = errors.New("cannot follow yourself")
	ErrFollowAlreadyExists = errors.New("already following this user")
	ErrFollowNotFound      = errors.New("follow not found")
	ErrUserNotFound        = errors.New("user not found")
)

type FollowService struct {
	follows ports.FollowRepository
	users   ports.UserRepository
}

func NewFollowService(followRepo ports.FollowRepository, userRepo ports.UserRepository) *FollowService {
	return &FollowService{
		follows: followRepo,
		users:   userRepo,
	}
}

func (s *FollowService) Follow(ctx context.Context, followerID, followingID uuid.UUID) (*domain.Follow, error) {
	if followerID == followingID {
		return nil, ErrFollowSelf
	}
	if _, err := s.users.FindByID(ctx, followingID); err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	follow, err := s.follows.Add(ctx, followerID, followingID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrFollowAlreadyExists
		}
		return nil, err
	}
	return follow, nil
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	if err := s.follows.Remove(ctx, followerID, followingID); err != nil {
		if isNotFound(err) {
			return ErrFollowNotFound
		}
		return err
	}
	return nil
}

func (s *FollowService) Followers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.FollowEntry, error) {
	limit, offset = normalizeLimitOffset(limit, offset)
	return s.follows.Followers(ctx, userID, limit, offset)
}

func (s *FollowService) Following(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.FollowEntry, error) {
	limit, offset = normalizeLimitOffset(limit, offset)
	return s.follows.Following(ctx, userID, limit, offset)
}
