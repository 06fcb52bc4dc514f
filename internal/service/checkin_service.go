package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
	"github.com/roadtrippi/roadtrippi-backend/internal/repository/ports"
)

var (
	ErrCheckInNotFound      = errors.New("check-in not found")
	ErrCheckInInvalidRating = errors.New("rating must be between 1.0 and 5.0 in half-star steps")
	ErrCheckInForbidden     = errors.New("check-in belongs to another user")
)

type CheckInService struct {
	checkIns    ports.CheckInRepository
	attractions ports.AttractionRepository
}

func NewCheckInService(checkInRepo ports.CheckInRepository, attractionRepo ports.AttractionRepository) *CheckInService {
	return &CheckInService{
		checkIns:    checkInRepo,
		attractions: attractionRepo,
	}
}

func (s *CheckInService) Create(ctx context.Context, checkIn *domain.CheckIn) (*domain.CheckIn, error) {
	if err := validateRating(checkIn.Rating); err != nil {
		return nil, err
	}
	if _, err := s.attractions.FindByID(ctx, checkIn.AttractionID); err != nil {
		if isNotFound(err) {
			return nil, ErrAttractionNotFound
		}
		return nil, err
	}
	return s.checkIns.Create(ctx, checkIn)
}

func (s *CheckInService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CheckIn, error) {
	checkIn, err := s.checkIns.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCheckInNotFound
		}
		return nil, err
	}
	return checkIn, nil
}

func (s *CheckInService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	checkIn, err := s.checkIns.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrCheckInNotFound
		}
		return err
	}
	if checkIn.UserID != userID {
		return ErrCheckInForbidden
	}
	if err := s.checkIns.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrCheckInNotFound
		}
		return err
	}
	return nil
}

func (s *CheckInService) ListByAttraction(ctx context.Context, attractionID uuid.UUID, limit, offset int) ([]domain.CheckIn, error) {
	limit, offset = normalizeLimitOffset(limit, offset)
	if _, err := s.attractions.FindByID(ctx, attractionID); err != nil {
		if isNotFound(err) {
			return nil, ErrAttractionNotFound
		}
		return nil, err
	}
	return s.checkIns.ListByAttraction(ctx, attractionID, limit, offset)
}

func (s *CheckInService) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.CheckIn, error) {
	limit, offset = normalizeLimitOffset(limit, offset)
	return s.checkIns.ListByUser(ctx, userID, limit, offset)
}

// validateRating accepts a nil rating (visit without a score) or a value in
// [1.0, 5.0] on the half-star grid.
func validateRating(rating *float64) error {
	if rating == nil {
		return nil
	}
	value := *rating
	if value < 1.0 || value > 5.0 {
		return fmt.Errorf("%w: got %g", ErrCheckInInvalidRating, value)
	}
	if math.Mod(value*2, 1) != 0 {
		return fmt.Errorf("%w: got %g", ErrCheckInInvalidRating, value)
	}
	return nil
}

func normalizeLimitOffset(limit, offset int) (int, int) {
	const (
		defaultLimit = 20
		maxLimit     = 100
	)

	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
