package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskgrove/taskgrove/internal/domain"
)

type ListRepo struct {
	pool *pgxpool.Pool
}

func NewListRepo(pool *pgxpool.Pool) *ListRepo {
	return &ListRepo{pool: pool}
}

func (r *ListRepo) Create(ctx context.Context, l *domain.List) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO lists (id, user_id, name, created_at)
		 VALUES ($1, $2, $3, $4)`,
		l.ID, l.UserID, l.Name, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("listRepo.Create: %w", err)
	}

	return nil
}

func (r *ListRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.List, error) {
	var l domain.List

	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, name, created_at
		 FROM lists WHERE user_id = $1 AND id = $2`,
		userID, id,
	).Scan(&l.ID, &l.UserID, &l.Name, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("listRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("listRepo.GetByID: %w", err)
	}

	return &l, nil
}

func (r *ListRepo) GetByName(ctx context.Context, userID uuid.UUID, name string) (*domain.List, error) {
	var l domain.List

	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, name, created_at
		 FROM lists WHERE user_id = $1 AND name = $2`,
		userID, name,
	).Scan(&l.ID, &l.UserID, &l.Name, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("listRepo.GetByName: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("listRepo.GetByName: %w", err)
	}

	return &l, nil
}

func (r *ListRepo) List(ctx context.Context, userID uuid.UUID) ([]*domain.List, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, name, created_at
		 FROM lists WHERE user_id = $1
		 ORDER BY created_at, id
		 LIMIT 500`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listRepo.List: %w", err)
	}
	defer rows.Close()

	var lists []*domain.List
	for rows.Next() {
		var l domain.List
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("listRepo.List: scan: %w", err)
		}
		lists = append(lists, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listRepo.List: rows: %w", err)
	}

	return lists, nil
}

func (r *ListRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM lists WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	if err != nil {
		return fmt.Errorf("listRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("listRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}
