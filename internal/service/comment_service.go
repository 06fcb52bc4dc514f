package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
	"github.com/roadtrippi/roadtrippi-backend/internal/repository/ports"
)

var (
	ErrCommentNotFound     = errors.New("comment not found")
	ErrCommentForbidden    = errors.New("comment belongs to another user")
	ErrCommentTextRequired = errors.New("comment text is required")
)

type CommentService struct {
	checkInComments ports.CheckInCommentRepository
	listComments    ports.ListCommentRepository
	checkIns        ports.CheckInRepository
	lists           ports.ListRepository
}

func NewCommentService(
	checkInCommentRepo ports.CheckInCommentRepository,
	listCommentRepo ports.ListCommentRepository,
	checkInRepo ports.CheckInRepository,
	listRepo ports.ListRepository,
) *CommentService {
	return &CommentService{
		checkInComments: checkInCommentRepo,
		listComments:    listCommentRepo,
		checkIns:        checkInRepo,
		lists:           listRepo,
	}
}

func (s *CommentService) CommentOnCheckIn(ctx context.Context, comment *domain.CheckInComment) (*domain.CheckInComment, error) {
	if strings.TrimSpace(comment.Text) == "" {
		return nil, ErrCommentTextRequired
	}
	if _, err := s.checkIns.GetByID(ctx, comment.CheckInID); err != nil {
		if isNotFound(err) {
			return nil, ErrCheckInNotFound
		}
		return nil, err
	}
	return s.checkInComments.Create(ctx, comment)
}

func (s *CommentService) CommentOnList(ctx context.Context, comment *domain.ListComment) (*domain.ListComment, error) {
	if strings.TrimSpace(comment.Text) == "" {
		return nil, ErrCommentTextRequired
	}
	if _, err := s.lists.GetByID(ctx, comment.ListID); err != nil {
		if isNotFound(err) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	return s.listComments.Create(ctx, comment)
}

func (s *CommentService) ListForCheckIn(ctx context.Context, checkInID uuid.UUID, limit, offset int) ([]domain.CheckInComment, error) {
	limit, offset = normalizeLimitOffset(limit, offset)
	return s.checkInComments.ListByCheckIn(ctx, checkInID, limit, offset)
}

func (s *CommentService) ListForList(ctx context.Context, listID uuid.UUID, limit, offset int) ([]domain.ListComment, error) {
	limit, offset = normalizeLimitOffset(limit, offset)
	return s.listComments.ListByList(ctx, listID, limit, offset)
}

func (s *CommentService) DeleteCheckInComment(ctx context.Context, userID, id uuid.UUID) error {
	comment, err := s.checkInComments.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.UserID != userID {
		return ErrCommentForbidden
	}
	return s.checkInComments.Delete(ctx, id)
}

func (s *CommentService) DeleteListComment(ctx context.Context, userID, id uuid.UUID) error {
	comment, err := s.listComments.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.UserID != userID {
		return ErrCommentForbidden
	}
	return s.listComments.Delete(ctx, id)
}
