// Package memory implements the repository contracts over an id-keyed arena
// guarded by a single mutex. It backs tests and small single-node
// deployments; the postgres store is the production implementation.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/taskgrove/taskgrove/internal/domain"
)

type Store struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*domain.User
	lists map[uuid.UUID]*domain.List
	tasks map[uuid.UUID]*domain.Task

	// seq preserves insertion order so task listings are stable even when
	// CreatedAt timestamps collide.
	seq     map[uuid.UUID]int
	nextSeq int
}

func New() *Store {
	return &Store{
		users: make(map[uuid.UUID]*domain.User),
		lists: make(map[uuid.UUID]*domain.List),
		tasks: make(map[uuid.UUID]*domain.Task),
		seq:   make(map[uuid.UUID]int),
	}
}

func (s *Store) Users() domain.UserRepository { return &UserRepo{s: s} }
func (s *Store) Lists() domain.ListRepository { return &ListRepo{s: s} }
func (s *Store) Tasks() domain.TaskRepository { return &TaskRepo{s: s} }
