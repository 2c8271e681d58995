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

type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

func (r *TaskRepo) Create(ctx context.Context, t *domain.Task) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tasks (id, list_id, parent_id, title, description, completed, collapsed, priority, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.ListID, t.ParentID, t.Title, t.Description,
		t.Completed, t.Collapsed, t.Priority, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.Create: %w", err)
	}

	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var t domain.Task

	err := r.pool.QueryRow(ctx,
		`SELECT id, list_id, parent_id, title, description, completed, collapsed, priority, created_at
		 FROM tasks WHERE id = $1`,
		id,
	).Scan(
		&t.ID, &t.ListID, &t.ParentID, &t.Title, &t.Description,
		&t.Completed, &t.Collapsed, &t.Priority, &t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("taskRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("taskRepo.GetByID: %w", err)
	}

	return &t, nil
}

func (r *TaskRepo) ListByList(ctx context.Context, listID uuid.UUID) ([]*domain.Task, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, list_id, parent_id, title, description, completed, collapsed, priority, created_at
		 FROM tasks WHERE list_id = $1
		 ORDER BY created_at, id
		 LIMIT 10000`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.ListByList: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows, "taskRepo.ListByList")
}

func (r *TaskRepo) Update(ctx context.Context, t *domain.Task) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tasks SET title = $1, description = $2, priority = $3
		 WHERE id = $4`,
		t.Title, t.Description, t.Priority, t.ID,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *TaskRepo) UpdateParent(ctx context.Context, id uuid.UUID, parentID *uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tasks SET parent_id = $1 WHERE id = $2`,
		parentID, id,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.UpdateParent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.UpdateParent: %w", domain.ErrNotFound)
	}

	return nil
}

// SetCompleted flips the completed state of every id in one statement, so
// a cascade's whole write set lands atomically.
func (r *TaskRepo) SetCompleted(ctx context.Context, ids []uuid.UUID, completed bool) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := r.pool.Exec(ctx,
		`UPDATE tasks SET completed = $1 WHERE id = ANY($2)`,
		completed, ids,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.SetCompleted: %w", err)
	}

	return nil
}

func (r *TaskRepo) SetCollapsed(ctx context.Context, id uuid.UUID, collapsed bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tasks SET collapsed = $1 WHERE id = $2`,
		collapsed, id,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.SetCollapsed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.SetCollapsed: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *TaskRepo) MoveToList(ctx context.Context, ids []uuid.UUID, listID uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := r.pool.Exec(ctx,
		`UPDATE tasks SET list_id = $1 WHERE id = ANY($2)`,
		listID, ids,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.MoveToList: %w", err)
	}

	return nil
}

func (r *TaskRepo) DeleteSubtree(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM tasks WHERE id = ANY($1)`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.DeleteSubtree: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.DeleteSubtree: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *TaskRepo) DeleteByList(ctx context.Context, listID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM tasks WHERE list_id = $1`,
		listID,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.DeleteByList: %w", err)
	}

	return nil
}

func (r *TaskRepo) Counts(ctx context.Context, listID uuid.UUID) (int, int, error) {
	var total, completed int

	err := r.pool.QueryRow(ctx,
		`SELECT count(*), count(*) FILTER (WHERE completed)
		 FROM tasks WHERE list_id = $1`,
		listID,
	).Scan(&total, &completed)
	if err != nil {
		return 0, 0, fmt.Errorf("taskRepo.Counts: %w", err)
	}

	return total, completed, nil
}

func scanTasks(rows pgx.Rows, caller string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(
			&t.ID, &t.ListID, &t.ParentID, &t.Title, &t.Description,
			&t.Completed, &t.Collapsed, &t.Priority, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	return tasks, nil
}
