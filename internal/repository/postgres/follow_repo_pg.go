package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
	"github.com/roadtrippi/roadtrippi-backend/internal/repository/ports"
)

type FollowRepository struct {
	db *sqlx.DB
}

func NewFollowRepo(db *sqlx.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

func (r *FollowRepository) Add(ctx context.Context, followerID, followingID uuid.UUID) (*domain.Follow, error) {
	const query = `
		INSERT INTO follows (follower_id, following_id)
		VALUES ($1, $2)
		RETURNING follower_id, following_id, created_at
	`
	var follow domain.Follow
	if err := r.db.GetContext(ctx, &follow, query, followerID, followingID); err != nil {
		return nil, err
	}
	return &follow, nil
}

func (r *FollowRepository) Remove(ctx context.Context, followerID, followingID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`, followerID, followingID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *FollowRepository) Followers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.FollowEntry, error) {
	const query = `
		SELECT
			u.id AS user_id,
			u.username,
			u.avatar_url,
			f.created_at,
			EXISTS (
				SELECT 1 FROM follows b
				WHERE b.follower_id = $1 AND b.following_id = u.id
			) AS mutual
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.following_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3
	`
	entries := make([]domain.FollowEntry, 0)
	if err := r.db.SelectContext(ctx, &entries, query, userID, limit, offset); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *FollowRepository) Following(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.FollowEntry, error) {
	const query = `
		SELECT
			u.id AS user_id,
			u.username,
			u.avatar_url,
			f.created_at,
			EXISTS (
				SELECT 1 FROM follows b
				WHERE b.follower_id = u.id AND b.following_id = $1
			) AS mutual
		FROM follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3
	`
	entries := make([]domain.FollowEntry, 0)
	if err := r.db.SelectContext(ctx, &entries, query, userID, limit, offset); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *FollowRepository) RecentFollowers(ctx context.Context, userID uuid.UUID, limit int) ([]domain.FollowActivity, error) {
	const query = `
		SELECT
			u.id AS actor_id,
			u.username AS actor_username,
			u.avatar_url AS actor_avatar_url,
			f.created_at
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.following_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2
	`
	activity := make([]domain.FollowActivity, 0)
	if err := r.db.SelectContext(ctx, &activity, query, userID, limit); err != nil {
		return nil, err
	}
	return activity, nil
}

var _ ports.FollowRepository = (*FollowRepository)(nil)
