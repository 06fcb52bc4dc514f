package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
	"github.com/roadtrippi/roadtrippi-backend/internal/repository/ports"
)

type CheckInRepository struct {
	db *sqlx.DB
}

func NewCheckInRepo(db *sqlx.DB) *CheckInRepository {
	return &CheckInRepository{db: db}
}

func (r *CheckInRepository) Create(ctx context.Context, checkIn *domain.CheckIn) (*domain.CheckIn, error) {
	const query = `
		INSERT INTO check_ins (user_id, attraction_id, rating, review, visit_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, attraction_id, rating, review, visit_date, created_at
	`
	var stored domain.CheckIn
	err := r.db.GetContext(ctx, &stored, query,
		checkIn.UserID, checkIn.AttractionID, checkIn.Rating, checkIn.Review, checkIn.VisitDate)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *CheckInRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CheckIn, error) {
	const query = `
		SELECT ci.id, ci.user_id, ci.attraction_id, ci.rating, ci.review, ci.visit_date, ci.created_at,
		       u.username AS author_username, u.avatar_url AS author_avatar_url,
		       a.name AS attraction_name
		FROM check_ins ci
		JOIN users u ON u.id = ci.user_id
		JOIN attractions a ON a.id = ci.attraction_id
		WHERE ci.id = $1
	`
	var checkIn domain.CheckIn
	if err := r.db.GetContext(ctx, &checkIn, query, id); err != nil {
		return nil, err
	}
	return &checkIn, nil
}

func (r *CheckInRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM check_ins WHERE id = $1`, id)
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

func (r *CheckInRepository) ListByAttraction(ctx context.Context, attractionID uuid.UUID, limit, offset int) ([]domain.CheckIn, error) {
	const query = `
		SELECT ci.id, ci.user_id, ci.attraction_id, ci.rating, ci.review, ci.visit_date, ci.created_at,
		       u.username AS author_username, u.avatar_url AS author_avatar_url
		FROM check_ins ci
		JOIN users u ON u.id = ci.user_id
		WHERE ci.attraction_id = $1
		ORDER BY ci.created_at DESC, ci.id DESC
		LIMIT $2 OFFSET $3
	`
	checkIns := make([]domain.CheckIn, 0)
	if err := r.db.SelectContext(ctx, &checkIns, query, attractionID, limit, offset); err != nil {
		return nil, err
	}
	return checkIns, nil
}

func (r *CheckInRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.CheckIn, error) {
	const query = `
		SELECT ci.id, ci.user_id, ci.attraction_id, ci.rating, ci.review, ci.visit_date, ci.created_at,
		       a.name AS attraction_name
		FROM check_ins ci
		JOIN attractions a ON a.id = ci.attraction_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at DESC, ci.id DESC
		LIMIT $2 OFFSET $3
	`
	checkIns := make([]domain.CheckIn, 0)
	if err := r.db.SelectContext(ctx, &checkIns, query, userID, limit, offset); err != nil {
		return nil, err
	}
	return checkIns, nil
}

func (r *CheckInRepository) IDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM check_ins WHERE user_id = $1`, userID); err != nil {
		return nil, err
	}
	return ids, nil
}

var _ ports.CheckInRepository = (*CheckInRepository)(nil)
