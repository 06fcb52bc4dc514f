package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
	"github.com/roadtrippi/roadtrippi-backend/internal/repository/ports"
)

var (
	ErrLikeAlreadyExists = errors.New("already liked")
	ErrLikeNotFound      = errors.New("like not found")
	ErrLikeTargetMissing = errors.New("like target not found")
)

type LikeService struct {
	likes    ports.LikeRepository
	checkIns ports.CheckInRepository
	lists    ports.ListRepository
}

func NewLikeService(likeRepo ports.LikeRepository, checkInRepo ports.CheckInRepository, listRepo ports.ListRepository) *LikeService {
	return &LikeService{
		likes:    likeRepo,
		checkIns: checkInRepo,
		lists:    listRepo,
	}
}

func (s *LikeService) Like(ctx context.Context, userID uuid.UUID, targetType domain.LikeTargetType, targetID uuid.UUID) (*domain.Like, error) {
	if err := s.resolveTarget(ctx, targetType, targetID); err != nil {
		return nil, err
	}

	like, err := s.likes.Add(ctx, userID, targetType, targetID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrLikeAlreadyExists
		}
		return nil, err
	}
	return like, nil
}

func (s *LikeService) Unlike(ctx context.Context, userID uuid.UUID, targetType domain.LikeTargetType, targetID uuid.UUID) error {
	if err := s.likes.Remove(ctx, userID, targetType, targetID); err != nil {
		if isNotFound(err) {
			return ErrLikeNotFound
		}
		return err
	}
	return nil
}

func (s *LikeService) Count(ctx context.Context, targetType domain.LikeTargetType, targetID uuid.UUID) (int64, error) {
	if err := s.resolveTarget(ctx, targetType, targetID); err != nil {
		return 0, err
	}
	return s.likes.Count(ctx, targetType, targetID)
}

// resolveTarget checks the like target against the table its type tag names.
// The switch is exhaustive over the two target kinds.
func (s *LikeService) resolveTarget(ctx context.Context, targetType domain.LikeTargetType, targetID uuid.UUID) error {
	var err error
	switch targetType {
	case domain.LikeTargetReview:
		_, err = s.checkIns.GetByID(ctx, targetID)
	case domain.LikeTargetList:
		_, err = s.lists.GetByID(ctx, targetID)
	default:
		return domain.ErrInvalidLikeTarget
	}
	if err != nil {
		if isNotFound(err) {
			return ErrLikeTargetMissing
		}
		return err
	}
	return nil
}
