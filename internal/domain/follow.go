package domain

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a directed edge; mutuality is derived, never stored.
type Follow struct {
	FollowerID  uuid.UUID `db:"follower_id" json:"follower_id"`
	FollowingID uuid.UUID `db:"following_id" json:"following_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type FollowEntry struct {
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Username  string    `db:"username" json:"username"`
	AvatarURL *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	Mutual    bool      `db:"mutual" json:"mutual"`
	CreatedAt time.Time `db:"created_at" json:"followed_at"`
}
