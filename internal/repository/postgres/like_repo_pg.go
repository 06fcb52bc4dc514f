package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
	"github.com/roadtrippi/roadtrippi-backend/internal/repository/ports"
)

type LikeRepository struct {
	db *sqlx.DB
}

func NewLikeRepo(db *sqlx.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) Add(ctx context.Context, userID uuid.UUID, targetType domain.LikeTargetType, targetID uuid.UUID) (*domain.Like, error) {
	const query = `
		INSERT INTO likes (user_id, target_type, target_id)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, target_type, target_id, created_at
	`
	var like domain.Like
	if err := r.db.GetContext(ctx, &like, query, userID, targetType, targetID); err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *LikeRepository) Remove(ctx context.Context, userID uuid.UUID, targetType domain.LikeTargetType, targetID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id = $1 AND target_type = $2 AND target_id = $3`,
		userID, targetType, targetID)
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

func (r *LikeRepository) Count(ctx context.Context, targetType domain.LikeTargetType, targetID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM likes WHERE target_type = $1 AND target_id = $2`, targetType, targetID)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ReviewLikesForCheckIns joins review-type likes against the owner's
// check-ins and resolves the attraction name each like is about. The
// target_type guard keeps list likes out even if a list shares an id.
func (r *LikeRepository) ReviewLikesForCheckIns(ctx context.Context, checkInIDs []uuid.UUID, excludeUserID uuid.UUID) ([]domain.ReviewLikeActivity, error) {
	if len(checkInIDs) == 0 {
		return []domain.ReviewLikeActivity{}, nil
	}
	const query = `
		SELECT
			lk.id AS like_id,
			u.id AS actor_id,
			u.username AS actor_username,
			u.avatar_url AS actor_avatar_url,
			ci.id AS check_in_id,
			a.id AS attraction_id,
			a.name AS attraction_name,
			lk.created_at
		FROM likes lk
		JOIN users u ON u.id = lk.user_id
		JOIN check_ins ci ON ci.id = lk.target_id
		JOIN attractions a ON a.id = ci.attraction_id
		WHERE lk.target_type = 'review'
		  AND lk.target_id = ANY($1)
		  AND lk.user_id <> $2
		ORDER BY lk.created_at DESC
	`
	activity := make([]domain.ReviewLikeActivity, 0)
	if err := r.db.SelectContext(ctx, &activity, query, pq.Array(checkInIDs), excludeUserID); err != nil {
		return nil, err
	}
	return activity, nil
}

func (r *LikeRepository) ListLikesForLists(ctx context.Context, listIDs []uuid.UUID, excludeUserID uuid.UUID) ([]domain.ListLikeActivity, error) {
	if len(listIDs) == 0 {
		return []domain.ListLikeActivity{}, nil
	}
	const query = `
		SELECT
			lk.id AS like_id,
			u.id AS actor_id,
			u.username AS actor_username,
			u.avatar_url AS actor_avatar_url,
			l.id AS list_id,
			l.title AS list_title,
			lk.created_at
		FROM likes lk
		JOIN users u ON u.id = lk.user_id
		JOIN lists l ON l.id = lk.target_id
		WHERE lk.target_type = 'list'
		  AND lk.target_id = ANY($1)
		  AND lk.user_id <> $2
		ORDER BY lk.created_at DESC
	`
	activity := make([]domain.ListLikeActivity, 0)
	if err := r.db.SelectContext(ctx, &activity, query, pq.Array(listIDs), excludeUserID); err != nil {
		return nil, err
	}
	return activity, nil
}

var _ ports.LikeRepository = (*LikeRepository)(nil)
