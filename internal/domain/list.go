package domain

import (
	"time"

	"github.com/google/uuid"
)

type List struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	Public      bool      `db:"public" json:"public"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	ItemCount int        `db:"-" json:"item_count"`
	Items     []ListItem `db:"-" json:"items,omitempty"`
}

type ListItem struct {
	ID           uuid.UUID `db:"id" json:"id"`
	ListID       uuid.UUID `db:"list_id" json:"list_id"`
	AttractionID uuid.UUID `db:"attraction_id" json:"attraction_id"`
	Position     int       `db:"position" json:"position"`
	Notes        *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`

	Attraction *Attraction `db:"-" json:"attraction,omitempty"`
}
