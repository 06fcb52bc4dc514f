package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
)

type CheckInCommentRepository interface {
	Create(ctx context.Context, comment *domain.CheckInComment) (*domain.CheckInComment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CheckInComment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByCheckIn(ctx context.Context, checkInID uuid.UUID, limit, offset int) ([]domain.CheckInComment, error)
	ActivityForCheckIns(ctx context.Context, checkInIDs []uuid.UUID, excludeUserID uuid.UUID) ([]domain.CheckInCommentActivity, error)
}

type ListCommentRepository interface {
	Create(ctx context.Context, comment *domain.ListComment) (*domain.ListComment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ListComment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByList(ctx context.Context, listID uuid.UUID, limit, offset int) ([]domain.ListComment, error)
	ActivityForLists(ctx context.Context, listIDs []uuid.UUID, excludeUserID uuid.UUID) ([]domain.ListCommentActivity, error)
}
