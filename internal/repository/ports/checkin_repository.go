package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
)

type CheckInRepository interface {
	Create(ctx context.Context, checkIn *domain.CheckIn) (*domain.CheckIn, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CheckIn, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByAttraction(ctx context.Context, attractionID uuid.UUID, limit, offset int) ([]domain.CheckIn, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.CheckIn, error)
	IDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
