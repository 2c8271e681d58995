package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/taskgrove/taskgrove/internal/domain"
)

type TaskRepo struct {
	s *Store
}

func (r *TaskRepo) Create(_ context.Context, t *domain.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cp := *t
	r.s.tasks[t.ID] = &cp
	r.s.seq[t.ID] = r.s.nextSeq
	r.s.nextSeq++
	return nil
}

func (r *TaskRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("taskRepo.GetByID: %w", domain.ErrNotFound)
	}
	cp := *t
	return &cp, nil
}

func (r *TaskRepo) ListByList(_ context.Context, listID uuid.UUID) ([]*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*domain.Task
	for _, t := range r.s.tasks {
		if t.ListID == listID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.s.seq[out[i].ID] < r.s.seq[out[j].ID] })
	return out, nil
}

func (r *TaskRepo) Update(_ context.Context, t *domain.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.tasks[t.ID]
	if !ok {
		return fmt.Errorf("taskRepo.Update: %w", domain.ErrNotFound)
	}
	cur.Title = t.Title
	cur.Description = t.Description
	cur.Priority = t.Priority
	return nil
}

func (r *TaskRepo) UpdateParent(_ context.Context, id uuid.UUID, parentID *uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.tasks[id]
	if !ok {
		return fmt.Errorf("taskRepo.UpdateParent: %w", domain.ErrNotFound)
	}
	if parentID == nil {
		cur.ParentID = nil
	} else {
		pid := *parentID
		cur.ParentID = &pid
	}
	return nil
}

func (r *TaskRepo) SetCompleted(_ context.Context, ids []uuid.UUID, completed bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, id := range ids {
		if t, ok := r.s.tasks[id]; ok {
			t.Completed = completed
		}
	}
	return nil
}

func (r *TaskRepo) SetCollapsed(_ context.Context, id uuid.UUID, collapsed bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tasks[id]
	if !ok {
		return fmt.Errorf("taskRepo.SetCollapsed: %w", domain.ErrNotFound)
	}
	t.Collapsed = collapsed
	return nil
}

func (r *TaskRepo) MoveToList(_ context.Context, ids []uuid.UUID, listID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, id := range ids {
		if t, ok := r.s.tasks[id]; ok {
			t.ListID = listID
		}
	}
	return nil
}

func (r *TaskRepo) DeleteSubtree(_ context.Context, ids []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, id := range ids {
		delete(r.s.tasks, id)
		delete(r.s.seq, id)
	}
	return nil
}

func (r *TaskRepo) DeleteByList(_ context.Context, listID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, t := range r.s.tasks {
		if t.ListID == listID {
			delete(r.s.tasks, id)
			delete(r.s.seq, id)
		}
	}
	return nil
}

func (r *TaskRepo) Counts(_ context.Context, listID uuid.UUID) (int, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var total, completed int
	for _, t := range r.s.tasks {
		if t.ListID == listID {
			total++
			if t.Completed {
				completed++
			}
		}
	}
	return total, completed, nil
}
