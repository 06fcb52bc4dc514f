package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/roadtrippi/roadtrippi-backend/internal/domain"
	"github.com/roadtrippi/roadtrippi-backend/internal/repository/ports"
)

type ListRepository struct {
	db *sqlx.DB
}

func NewListRepo(db *sqlx.DB) *ListRepository {
	return &ListRepository{db: db}
}

func (r *ListRepository) Create(ctx context.Context, list *domain.List) (*domain.List, error) {
	const query = `
		INSERT INTO lists (user_id, title, description, public)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, title, description, public, created_at
	`
	var stored domain.List
	err := r.db.GetContext(ctx, &stored, query, list.UserID, list.Title, list.Description, list.Public)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *ListRepository) Update(ctx context.Context, list *domain.List) (*domain.List, error) {
	const query = `
		UPDATE lists
		SET title = $2, description = $3, public = $4
		WHERE id = $1
		RETURNING id, user_id, title, description, public, created_at
	`
	var stored domain.List
	err := r.db.GetContext(ctx, &stored, query, list.ID, list.Title, list.Description, list.Public)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *ListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM lists WHERE id = $1`, id)
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

func (r *ListRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.List, error) {
	const query = `
		SELECT l.id, l.user_id, l.title, l.description, l.public, l.created_at
		FROM lists l
		WHERE l.id = $1
	`
	var list domain.List
	if err := r.db.GetContext(ctx, &list, query, id); err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *ListRepository) ListByUser(ctx context.Context, userID uuid.UUID, publicOnly bool, limit, offset int) ([]domain.List, error) {
	query := `
		SELECT l.id, l.user_id, l.title, l.description, l.public, l.created_at
		FROM lists l
		WHERE l.user_id = $1
	`
	if publicOnly {
		query += ` AND l.public`
	}
	query += `
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $2 OFFSET $3
	`
	lists := make([]domain.List, 0)
	if err := r.db.SelectContext(ctx, &lists, query, userID, limit, offset); err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *ListRepository) IDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM lists WHERE user_id = $1`, userID); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *ListRepository) AddItem(ctx context.Context, item *domain.ListItem) (*domain.ListItem, error) {
	const query = `
		INSERT INTO list_items (list_id, attraction_id, position, notes)
		VALUES (
			$1, $2,
			COALESCE(NULLIF($3, 0), (SELECT COALESCE(MAX(position), 0) + 1 FROM list_items WHERE list_id = $1)),
			$4
		)
		RETURNING id, list_id, attraction_id, position, notes, created_at
	`
	var stored domain.ListItem
	err := r.db.GetContext(ctx, &stored, query, item.ListID, item.AttractionID, item.Position, item.Notes)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *ListRepository) RemoveItem(ctx context.Context, listID, attractionID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM list_items WHERE list_id = $1 AND attraction_id = $2`, listID, attractionID)
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

func (r *ListRepository) ItemsByList(ctx context.Context, listID uuid.UUID) ([]domain.ListItem, error) {
	const query = `
		SELECT li.id, li.list_id, li.attraction_id, li.position, li.notes, li.created_at
		FROM list_items li
		WHERE li.list_id = $1
		ORDER BY li.position, li.created_at
	`
	items := make([]domain.ListItem, 0)
	if err := r.db.SelectContext(ctx, &items, query, listID); err != nil {
		return nil, err
	}
	return items, nil
}

var _ ports.ListRepository = (*ListRepository)(nil)
