package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LikeTargetType discriminates the polymorphic like target. A like row
// references either a check-in (review) or a list; the tag decides which
// table the id resolves against.
type LikeTargetType string

const (
	LikeTargetReview LikeTargetType = "review"
	LikeTargetList   LikeTargetType = "list"
)

var ErrInvalidLikeTarget = errors.New("invalid like target type")

func ParseLikeTargetType(raw string) (LikeTargetType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(LikeTargetReview):
		return LikeTargetReview, nil
	case string(LikeTargetList):
		return LikeTargetList, nil
	default:
		return "", ErrInvalidLikeTarget
	}
}

type Like struct {
	ID         uuid.UUID      `db:"id" json:"id"`
	UserID     uuid.UUID      `db:"user_id" json:"user_id"`
	TargetType LikeTargetType `db:"target_type" json:"target_type"`
	TargetID   uuid.UUID      `db:"target_id" json:"target_id"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
}
