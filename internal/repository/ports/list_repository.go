package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
)

type ListRepository interface {
	Create(ctx context.Context, list *domain.List) (*domain.List, error)
	Update(ctx context.Context, list *domain.List) (*domain.List, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.List, error)
	ListByUser(ctx context.Context, userID uuid.UUID, publicOnly bool, limit, offset int) ([]domain.List, error)
	IDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	AddItem(ctx context.Context, item *domain.ListItem) (*domain.ListItem, error)
	RemoveItem(ctx context.Context, listID, attractionID uuid.UUID) error
	ItemsByList(ctx context.Context, listID uuid.UUID) ([]domain.ListItem, error)
}
