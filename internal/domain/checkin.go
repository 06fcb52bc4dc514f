package domain

import (
	"time"

	"github.com/google/uuid"
)

type CheckIn struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	AttractionID uuid.UUID `db:"attraction_id" json:"attraction_id"`
	Rating       *float64  `db:"rating" json:"rating"`
	Review       *string   `db:"review" json:"review,omitempty"`
	VisitDate    time.Time `db:"visit_date" json:"visit_date"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`

	AuthorUsername *string `db:"author_username" json:"author_username,omitempty"`
	AuthorAvatar   *string `db:"author_avatar_url" json:"author_avatar_url,omitempty"`
	AttractionName *string `db:"attraction_name" json:"attraction_name,omitempty"`
}
