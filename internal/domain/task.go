package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxDepth is the hard cap on task nesting. A top-level task has depth 1;
// creating a child under a task at depth MaxDepth is rejected.
const MaxDepth = 5

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the three allowed priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

type Task struct {
	ID          uuid.UUID
	ListID      uuid.UUID
	ParentID    *uuid.UUID // nil means top-level
	Title       string
	Description string
	Completed   bool
	Collapsed   bool
	Priority    Priority
	CreatedAt   time.Time
}

// NewTask creates a Task with validated required fields and defaults.
// The title is trimmed; an empty trimmed title or an unknown priority is
// rejected rather than coerced.
func NewTask(listID uuid.UUID, parentID *uuid.UUID, title, description string, priority Priority) (*Task, error) {
	if listID == uuid.Nil {
		return nil, fmt.Errorf("task: list: %w", ErrNotFound)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("task: %w", ErrInvalidTitle)
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("task: %w: %q", ErrInvalidPriority, priority)
	}
	return &Task{
		ID:          uuid.New(),
		ListID:      listID,
		ParentID:    parentID,
		Title:       title,
		Description: description,
		Priority:    priority,
		CreatedAt:   time.Now(),
	}, nil
}

// TaskUpdate carries a partial update. Nil fields are left unchanged, which
// keeps "not provided" distinct from "set to empty".
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    *Priority
}

// TaskRepository is the persisted tree-store contract. Children are always
// derived from parent pointers; implementations must not duplicate child
// lists as stored state. Batch writes (SetCompleted, MoveToList,
// DeleteSubtree) must apply atomically.
type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*Task, error)
	// ListByList returns every task in the list ordered by creation time.
	ListByList(ctx context.Context, listID uuid.UUID) ([]*Task, error)
	// Update persists title, description and priority.
	Update(ctx context.Context, t *Task) error
	UpdateParent(ctx context.Context, id uuid.UUID, parentID *uuid.UUID) error
	SetCompleted(ctx context.Context, ids []uuid.UUID, completed bool) error
	SetCollapsed(ctx context.Context, id uuid.UUID, collapsed bool) error
	MoveToList(ctx context.Context, ids []uuid.UUID, listID uuid.UUID) error
	DeleteSubtree(ctx context.Context, ids []uuid.UUID) error
	DeleteByList(ctx context.Context, listID uuid.UUID) error
	// Counts returns the total and completed task counts for a list.
	Counts(ctx context.Context, listID uuid.UUID) (total, completed int, err error)
}
