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

type CheckInCommentRepository struct {
	db *sqlx.DB
}

func NewCheckInCommentRepo(db *sqlx.DB) *CheckInCommentRepository {
	return &CheckInCommentRepository{db: db}
}

func (r *CheckInCommentRepository) Create(ctx context.Context, comment *domain.CheckInComment) (*domain.CheckInComment, error) {
	const query = `
		INSERT INTO check_in_comments (user_id, check_in_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, check_in_id, text, created_at
	`
	var stored domain.CheckInComment
	if err := r.db.GetContext(ctx, &stored, query, comment.UserID, comment.CheckInID, comment.Text); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *CheckInCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CheckInComment, error) {
	const query = `
		SELECT id, user_id, check_in_id, text, created_at
		FROM check_in_comments
		WHERE id = $1
	`
	var comment domain.CheckInComment
	if err := r.db.GetContext(ctx, &comment, query, id); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *CheckInCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM check_in_comments WHERE id = $1`, id)
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

func (r *CheckInCommentRepository) ListByCheckIn(ctx context.Context, checkInID uuid.UUID, limit, offset int) ([]domain.CheckInComment, error) {
	const query = `
		SELECT c.id, c.user_id, c.check_in_id, c.text, c.created_at,
		       u.username AS author_username, u.avatar_url AS author_avatar_url
		FROM check_in_comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.check_in_id = $1
		ORDER BY c.created_at ASC
		LIMIT $2 OFFSET $3
	`
	comments := make([]domain.CheckInComment, 0)
	if err := r.db.SelectContext(ctx, &comments, query, checkInID, limit, offset); err != nil {
		return nil, err
	}
	return comments, nil
}

// ActivityForCheckIns carries the parent check-in's rating alongside each
// comment so the inbox can render a star next to the snippet.
func (r *CheckInCommentRepository) ActivityForCheckIns(ctx context.Context, checkInIDs []uuid.UUID, excludeUserID uuid.UUID) ([]domain.CheckInCommentActivity, error) {
	if len(checkInIDs) == 0 {
		return []domain.CheckInCommentActivity{}, nil
	}
	const query = `
		SELECT
			c.id AS comment_id,
			u.id AS actor_id,
			u.username AS actor_username,
			u.avatar_url AS actor_avatar_url,
			ci.id AS check_in_id,
			a.id AS attraction_id,
			a.name AS attraction_name,
			c.text,
			ci.rating,
			c.created_at
		FROM check_in_comments c
		JOIN users u ON u.id = c.user_id
		JOIN check_ins ci ON ci.id = c.check_in_id
		JOIN attractions a ON a.id = ci.attraction_id
		WHERE c.check_in_id = ANY($1)
		  AND c.user_id <> $2
		ORDER BY c.created_at DESC
	`
	activity := make([]domain.CheckInCommentActivity, 0)
	if err := r.db.SelectContext(ctx, &activity, query, pq.Array(checkInIDs), excludeUserID); err != nil {
		return nil, err
	}
	return activity, nil
}

var _ ports.CheckInCommentRepository = (*CheckInCommentRepository)(nil)

type ListCommentRepository struct {
	db *sqlx.DB
}

func NewListCommentRepo(db *sqlx.DB) *ListCommentRepository {
	return &ListCommentRepository{db: db}
}

func (r *ListCommentRepository) Create(ctx context.Context, comment *domain.ListComment) (*domain.ListComment, error) {
	const query = `
		INSERT INTO list_comments (user_id, list_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, list_id, text, created_at
	`
	var stored domain.ListComment
	if err := r.db.GetContext(ctx, &stored, query, comment.UserID, comment.ListID, comment.Text); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *ListCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ListComment, error) {
	const query = `
		SELECT id, user_id, list_id, text, created_at
		FROM list_comments
		WHERE id = $1
	`
	var comment domain.ListComment
	if err := r.db.GetContext(ctx, &comment, query, id); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *ListCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM list_comments WHERE id = $1`, id)
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

func (r *ListCommentRepository) ListByList(ctx context.Context, listID uuid.UUID, limit, offset int) ([]domain.ListComment, error) {
	const query = `
		SELECT c.id, c.user_id, c.list_id, c.text, c.created_at,
		       u.username AS author_username, u.avatar_url AS author_avatar_url
		FROM list_comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.list_id = $1
		ORDER BY c.created_at ASC
		LIMIT $2 OFFSET $3
	`
	comments := make([]domain.ListComment, 0)
	if err := r.db.SelectContext(ctx, &comments, query, listID, limit, offset); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *ListCommentRepository) ActivityForLists(ctx context.Context, listIDs []uuid.UUID, excludeUserID uuid.UUID) ([]domain.ListCommentActivity, error) {
	if len(listIDs) == 0 {
		return []domain.ListCommentActivity{}, nil
	}
	const query = `
		SELECT
			c.id AS comment_id,
			u.id AS actor_id,
			u.username AS actor_username,
			u.avatar_url AS actor_avatar_url,
			l.id AS list_id,
			l.title AS list_title,
			c.text,
			c.created_at
		FROM list_comments c
		JOIN users u ON u.id = c.user_id
		JOIN lists l ON l.id = c.list_id
		WHERE c.list_id = ANY($1)
		  AND c.user_id <> $2
		ORDER BY c.created_at DESC
	`
	activity := make([]domain.ListCommentActivity, 0)
	if err := r.db.SelectContext(ctx, &activity, query, pq.Array(listIDs), excludeUserID); err != nil {
		return nil, err
	}
	return activity, nil
}

var _ ports.ListCommentRepository = (*ListCommentRepository)(nil)
