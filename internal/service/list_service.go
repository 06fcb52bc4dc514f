package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
	"github.com/roadtrippi/roadtrippi-backend/internal/geo"
	"github.com/roadtrippi/roadtrippi-backend/internal/repository/ports"
)

var (
	ErrListNotFound      = errors.New("list not found")
	ErrListForbidden     = errors.New("list belongs to another user")
	ErrListTitleRequired = errors.New("list title is required")
	ErrListItemExists    = errors.New("attraction already on the list")
	ErrListItemNotFound  = errors.New("attraction is not on the list")
)

type ListService struct {
	lists       ports.ListRepository
	attractions ports.AttractionRepository
}

func NewListService(listRepo ports.ListRepository, attractionRepo ports.AttractionRepository) *ListService {
	return &ListService{
		lists:       listRepo,
		attractions: attractionRepo,
	}
}

func (s *ListService) Create(ctx context.Context, list *domain.List) (*domain.List, error) {
	if strings.TrimSpace(list.Title) == "" {
		return nil, ErrListTitleRequired
	}
	return s.lists.Create(ctx, list)
}

func (s *ListService) Update(ctx context.Context, userID uuid.UUID, list *domain.List) (*domain.List, error) {
	if strings.TrimSpace(list.Title) == "" {
		return nil, ErrListTitleRequired
	}
	if _, err := s.ownedList(ctx, userID, list.ID); err != nil {
		return nil, err
	}
	return s.lists.Update(ctx, list)
}

func (s *ListService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.ownedList(ctx, userID, id); err != nil {
		return err
	}
	if err := s.lists.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrListNotFound
		}
		return err
	}
	return nil
}

// Get returns the list with its items, each item carrying the referenced
// attraction with resolved city/state. Private lists are visible only to
// their owner; viewerID is Nil for anonymous callers.
func (s *ListService) Get(ctx context.Context, viewerID, id uuid.UUID) (*domain.List, error) {
	list, err := s.lists.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	if !list.Public && list.UserID != viewerID {
		return nil, ErrListNotFound
	}

	items, err := s.lists.ItemsByList(ctx, id)
	if err != nil {
		return nil, err
	}

	attractionIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		attractionIDs = append(attractionIDs, item.AttractionID)
	}
	attractions, err := s.attractions.FindByIDs(ctx, attractionIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]domain.Attraction, len(attractions))
	for _, attraction := range attractions {
		attraction.City, attraction.State = geo.ResolveCityState(attraction.City, attraction.State, attraction.Address)
		byID[attraction.ID] = attraction
	}
	for i := range items {
		if attraction, ok := byID[items[i].AttractionID]; ok {
			items[i].Attraction = &attraction
		}
	}

	list.Items = items
	list.ItemCount = len(items)
	return list, nil
}

func (s *ListService) ListByUser(ctx context.Context, viewerID, userID uuid.UUID, limit, offset int) ([]domain.List, error) {
	limit, offset = normalizeLimitOffset(limit, offset)
	publicOnly := viewerID != userID
	return s.lists.ListByUser(ctx, userID, publicOnly, limit, offset)
}

func (s *ListService) AddItem(ctx context.Context, userID uuid.UUID, item *domain.ListItem) (*domain.ListItem, error) {
	if _, err := s.ownedList(ctx, userID, item.ListID); err != nil {
		return nil, err
	}
	if _, err := s.attractions.FindByID(ctx, item.AttractionID); err != nil {
		if isNotFound(err) {
			return nil, ErrAttractionNotFound
		}
		return nil, err
	}

	stored, err := s.lists.AddItem(ctx, item)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrListItemExists
		}
		return nil, err
	}
	return stored, nil
}

func (s *ListService) RemoveItem(ctx context.Context, userID, listID, attractionID uuid.UUID) error {
	if _, err := s.ownedList(ctx, userID, listID); err != nil {
		return err
	}
	if err := s.lists.RemoveItem(ctx, listID, attractionID); err != nil {
		if isNotFound(err) {
			return ErrListItemNotFound
		}
		return err
	}
	return nil
}

func (s *ListService) ownedList(ctx context.Context, userID, listID uuid.UUID) (*domain.List, error) {
	list, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	if list.UserID != userID {
		return nil, ErrListForbidden
	}
	return list, nil
}
