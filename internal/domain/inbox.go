package domain

import (
	"time"

	"github.com/google/uuid"
)

type InboxItemType string

const (
	InboxLikeReview    InboxItemType = "like_review"
	InboxLikeList      InboxItemType = "like_list"
	InboxCommentReview InboxItemType = "comment_review"
	InboxCommentList   InboxItemType = "comment_list"
	InboxFollow        InboxItemType = "follow"
)

type InboxActor struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
}

// InboxItem is one entry of the merged activity feed. ID is synthesized from
// the kind and the source row id so items of different kinds never collide.
type InboxItem struct {
	ID        string        `json:"id"`
	Type      InboxItemType `json:"type"`
	Actor     InboxActor    `json:"actor"`
	CreatedAt time.Time     `json:"created_at"`

	CheckInID      *uuid.UUID `json:"check_in_id,omitempty"`
	ListID         *uuid.UUID `json:"list_id,omitempty"`
	AttractionID   *uuid.UUID `json:"attraction_id,omitempty"`
	AttractionName *string    `json:"attraction_name,omitempty"`
	ListTitle      *string    `json:"list_title,omitempty"`
	CommentSnippet *string    `json:"comment_snippet,omitempty"`
	Rating         *float64   `json:"rating,omitempty"`
}

// Activity rows below are the enriched join results the repositories return
// for the aggregator; each carries the actor plus the display context the
// inbox needs for its kind.

type ReviewLikeActivity struct {
	LikeID         uuid.UUID `db:"like_id"`
	ActorID        uuid.UUID `db:"actor_id"`
	ActorUsername  string    `db:"actor_username"`
	ActorAvatar    *string   `db:"actor_avatar_url"`
	CheckInID      uuid.UUID `db:"check_in_id"`
	AttractionID   uuid.UUID `db:"attraction_id"`
	AttractionName string    `db:"attraction_name"`
	CreatedAt      time.Time `db:"created_at"`
}

type ListLikeActivity struct {
	LikeID        uuid.UUID `db:"like_id"`
	ActorID       uuid.UUID `db:"actor_id"`
	ActorUsername string    `db:"actor_username"`
	ActorAvatar   *string   `db:"actor_avatar_url"`
	ListID        uuid.UUID `db:"list_id"`
	ListTitle     string    `db:"list_title"`
	CreatedAt     time.Time `db:"created_at"`
}

type CheckInCommentActivity struct {
	CommentID      uuid.UUID `db:"comment_id"`
	ActorID        uuid.UUID `db:"actor_id"`
	ActorUsername  string    `db:"actor_username"`
	ActorAvatar    *string   `db:"actor_avatar_url"`
	CheckInID      uuid.UUID `db:"check_in_id"`
	AttractionID   uuid.UUID `db:"attraction_id"`
	AttractionName string    `db:"attraction_name"`
	Text           string    `db:"text"`
	Rating         *float64  `db:"rating"`
	CreatedAt      time.Time `db:"created_at"`
}

type ListCommentActivity struct {
	CommentID     uuid.UUID `db:"comment_id"`
	ActorID       uuid.UUID `db:"actor_id"`
	ActorUsername string    `db:"actor_username"`
	ActorAvatar   *string   `db:"actor_avatar_url"`
	ListID        uuid.UUID `db:"list_id"`
	ListTitle     string    `db:"list_title"`
	Text          string    `db:"text"`
	CreatedAt     time.Time `db:"created_at"`
}

type FollowActivity struct {
	ActorID       uuid.UUID `db:"actor_id"`
	ActorUsername string    `db:"actor_username"`
	ActorAvatar   *string   `db:"actor_avatar_url"`
	CreatedAt     time.Time `db:"created_at"`
}
