package domain

import (
	"time"

	"github.com/google/uuid"
)

type CheckInComment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	CheckInID uuid.UUID `db:"check_in_id" json:"check_in_id"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	AuthorUsername *string `db:"author_username" json:"author_username,omitempty"`
	AuthorAvatar   *string `db:"author_avatar_url" json:"author_avatar_url,omitempty"`
}

type ListComment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	ListID    uuid.UUID `db:"list_id" json:"list_id"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	AuthorUsername *string `db:"author_username" json:"author_username,omitempty"`
	AuthorAvatar   *string `db:"author_avatar_url" json:"author_avatar_url,omitempty"`
}
