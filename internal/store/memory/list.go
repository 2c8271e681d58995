package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/taskgrove/taskgrove/internal/domain"
)

type ListRepo struct {
	s *Store
}

func (r *ListRepo) Create(_ context.Context, l *domain.List) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cp := *l
	r.s.lists[l.ID] = &cp
	return nil
}

func (r *ListRepo) GetByID(_ context.Context, userID, id uuid.UUID) (*domain.List, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.lists[id]
	if !ok || l.UserID != userID {
		return nil, fmt.Errorf("listRepo.GetByID: %w", domain.ErrNotFound)
	}
	cp := *l
	return &cp, nil
}

func (r *ListRepo) GetByName(_ context.Context, userID uuid.UUID, name string) (*domain.List, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, l := range r.s.lists {
		if l.UserID == userID && l.Name == name {
			cp := *l
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("listRepo.GetByName: %w", domain.ErrNotFound)
}

func (r *ListRepo) List(_ context.Context, userID uuid.UUID) ([]*domain.List, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*domain.List
	for _, l := range r.s.lists {
		if l.UserID == userID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Delete removes the list and, mirroring the postgres foreign-key cascade,
// every task under it.
func (r *ListRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.lists[id]
	if !ok || l.UserID != userID {
		return fmt.Errorf("listRepo.Delete: %w", domain.ErrNotFound)
	}
	delete(r.s.lists, id)
	for tid, t := range r.s.tasks {
		if t.ListID == id {
			delete(r.s.tasks, tid)
			delete(r.s.seq, tid)
		}
	}
	return nil
}
