// Package todo is the mutation façade over the task tree. Transport,
// sessions and rendering live elsewhere; callers hand it pre-authenticated
// user ids and it enforces ownership, structural invariants and the
// completion cascade.
package todo

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/taskgrove/taskgrove/internal/domain"
	"github.com/taskgrove/taskgrove/internal/tree"
)

type Service struct {
	lists  domain.ListRepository
	tasks  domain.TaskRepository
	events Publisher // nil disables event fanout

	// locks serializes mutations per list (single writer per tree), so two
	// concurrent toggles cannot interleave their reads and miss a parent
	// auto-complete.
	locks sync.Map // uuid.UUID -> *sync.Mutex
}

func NewService(lists domain.ListRepository, tasks domain.TaskRepository, events Publisher) *Service {
	return &Service{
		lists:  lists,
		tasks:  tasks,
		events: events,
	}
}

// ListSummary is a list with its task statistics.
type ListSummary struct {
	*domain.List
	TaskCount      int
	CompletedCount int
}

// ListTree is a list with its tasks resolved into nested trees.
type ListTree struct {
	ListSummary
	Tasks []*tree.Node
}

// CreateTaskInput carries the fields for a new task. An empty Priority
// defaults to medium; a nil ParentID creates a top-level task.
type CreateTaskInput struct {
	ListID      uuid.UUID
	Title       string
	Description string
	Priority    domain.Priority
	ParentID    *uuid.UUID
}

// ToggleOutcome is the result of a completion toggle: the toggled task's
// resolved subtree after the cascade, plus every id whose completed state
// flipped (including auto-completed or force-uncompleted ancestors).
type ToggleOutcome struct {
	Task    *tree.Node
	Changed []uuid.UUID
}

func (s *Service) lockList(id uuid.UUID) func() {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// lockLists acquires two list locks in a stable order to avoid deadlock
// between concurrent cross-list moves.
func (s *Service) lockLists(a, b uuid.UUID) func() {
	if a == b {
		return s.lockList(a)
	}
	if strings.Compare(a.String(), b.String()) > 0 {
		a, b = b, a
	}
	ua := s.lockList(a)
	ub := s.lockList(b)
	return func() {
		ub()
		ua()
	}
}

// ---------------------------------------------------------------------------
// Lists
// ---------------------------------------------------------------------------

func (s *Service) CreateList(ctx context.Context, userID uuid.UUID, name string) (*domain.List, error) {
	l, err := domain.NewList(userID, name)
	if err != nil {
		return nil, fmt.Errorf("todo.CreateList: %w", err)
	}

	if _, err := s.lists.GetByName(ctx, userID, l.Name); err == nil {
		return nil, fmt.Errorf("todo.CreateList: %q: %w", l.Name, domain.ErrDuplicateName)
	}

	if err := s.lists.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("todo.CreateList: %w", err)
	}

	s.publish(ctx, userID, Event{Type: EventListCreated, ListID: l.ID})
	return l, nil
}

func (s *Service) Lists(ctx context.Context, userID uuid.UUID) ([]*ListSummary, error) {
	lists, err := s.lists.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("todo.Lists: %w", err)
	}

	out := make([]*ListSummary, 0, len(lists))
	for _, l := range lists {
		total, completed, err := s.tasks.Counts(ctx, l.ID)
		if err != nil {
			return nil, fmt.Errorf("todo.Lists: %w", err)
		}
		out = append(out, &ListSummary{List: l, TaskCount: total, CompletedCount: completed})
	}
	return out, nil
}

func (s *Service) GetList(ctx context.Context, userID, listID uuid.UUID) (*ListTree, error) {
	l, err := s.lists.GetByID(ctx, userID, listID)
	if err != nil {
		return nil, fmt.Errorf("todo.GetList: %w", err)
	}

	all, err := s.tasks.ListByList(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("todo.GetList: %w", err)
	}

	var completed int
	for _, t := range all {
		if t.Completed {
			completed++
		}
	}

	ix := tree.NewIndex(all)
	return &ListTree{
		ListSummary: ListSummary{List: l, TaskCount: len(all), CompletedCount: completed},
		Tasks:       ix.Forest(),
	}, nil
}

func (s *Service) DeleteList(ctx context.Context, userID, listID uuid.UUID) error {
	if _, err := s.lists.GetByID(ctx, userID, listID); err != nil {
		return fmt.Errorf("todo.DeleteList: %w", err)
	}

	unlock := s.lockList(listID)
	defer unlock()

	if err := s.tasks.DeleteByList(ctx, listID); err != nil {
		return fmt.Errorf("todo.DeleteList: %w", err)
	}
	if err := s.lists.Delete(ctx, userID, listID); err != nil {
		return fmt.Errorf("todo.DeleteList: %w", err)
	}

	s.publish(ctx, userID, Event{Type: EventListDeleted, ListID: listID})
	return nil
}

// ---------------------------------------------------------------------------
// Tasks
// ---------------------------------------------------------------------------

// resolveTask fetches a task and proves ownership by resolving its list
// under the given user. Tasks in other users' lists surface as not found.
func (s *Service) resolveTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.lists.GetByID(ctx, userID, t.ListID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) CreateTask(ctx context.Context, userID uuid.UUID, in CreateTaskInput) (*tree.Node, error) {
	if _, err := s.lists.GetByID(ctx, userID, in.ListID); err != nil {
		return nil, fmt.Errorf("todo.CreateTask: list: %w", err)
	}

	t, err := domain.NewTask(in.ListID, in.ParentID, in.Title, in.Description, in.Priority)
	if err != nil {
		return nil, fmt.Errorf("todo.CreateTask: %w", err)
	}

	unlock := s.lockList(in.ListID)
	defer unlock()

	all, err := s.tasks.ListByList(ctx, in.ListID)
	if err != nil {
		return nil, fmt.Errorf("todo.CreateTask: %w", err)
	}
	ix := tree.NewIndex(all)

	depth := 1
	if in.ParentID != nil {
		// The parent must exist in this list; a parent in another list is
		// indistinguishable from a missing one.
		if _, ok := ix.Task(*in.ParentID); !ok {
			return nil, fmt.Errorf("todo.CreateTask: parent: %w", domain.ErrNotFound)
		}
		if !ix.CanAddChildUnder(*in.ParentID) {
			return nil, fmt.Errorf("todo.CreateTask: %w", domain.ErrDepthLimitExceeded)
		}
		depth = ix.Depth(*in.ParentID) + 1
	}

	if ix.SiblingTitleTaken(t.Title, in.ParentID, uuid.Nil) {
		return nil, fmt.Errorf("todo.CreateTask: %q: %w", t.Title, domain.ErrDuplicateName)
	}

	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("todo.CreateTask: %w", err)
	}

	s.publish(ctx, userID, Event{Type: EventTaskCreated, ListID: in.ListID, TaskID: &t.ID})
	return &tree.Node{Task: t, Depth: depth, Subtasks: []*tree.Node{}}, nil
}

func (s *Service) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, upd domain.TaskUpdate) (*tree.Node, error) {
	t, err := s.resolveTask(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("todo.UpdateTask: %w", err)
	}

	unlock := s.lockList(t.ListID)
	defer unlock()

	all, err := s.tasks.ListByList(ctx, t.ListID)
	if err != nil {
		return nil, fmt.Errorf("todo.UpdateTask: %w", err)
	}
	ix := tree.NewIndex(all)
	cur, ok := ix.Task(taskID)
	if !ok {
		return nil, fmt.Errorf("todo.UpdateTask: %w", domain.ErrNotFound)
	}

	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return nil, fmt.Errorf("todo.UpdateTask: %w", domain.ErrInvalidTitle)
		}
		if ix.SiblingTitleTaken(title, cur.ParentID, cur.ID) {
			return nil, fmt.Errorf("todo.UpdateTask: %q: %w", title, domain.ErrDuplicateName)
		}
		cur.Title = title
	}
	if upd.Description != nil {
		cur.Description = *upd.Description
	}
	if upd.Priority != nil {
		if !upd.Priority.Valid() {
			return nil, fmt.Errorf("todo.UpdateTask: %w: %q", domain.ErrInvalidPriority, *upd.Priority)
		}
		cur.Priority = *upd.Priority
	}

	if err := s.tasks.Update(ctx, cur); err != nil {
		return nil, fmt.Errorf("todo.UpdateTask: %w", err)
	}

	s.publish(ctx, userID, Event{Type: EventTaskUpdated, ListID: cur.ListID, TaskID: &cur.ID})
	return ix.Node(taskID), nil
}

// ToggleCompletion flips the task's completed state and runs the cascade.
// The whole write set commits as one batch, so a concurrent reader never
// observes a half-applied cascade.
func (s *Service) ToggleCompletion(ctx context.Context, userID, taskID uuid.UUID) (*ToggleOutcome, error) {
	t, err := s.resolveTask(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("todo.ToggleCompletion: %w", err)
	}

	unlock := s.lockList(t.ListID)
	defer unlock()

	all, err := s.tasks.ListByList(ctx, t.ListID)
	if err != nil {
		return nil, fmt.Errorf("todo.ToggleCompletion: %w", err)
	}
	ix := tree.NewIndex(all)

	res, err := tree.Toggle(ix, taskID)
	if err != nil {
		return nil, fmt.Errorf("todo.ToggleCompletion: %w", err)
	}

	changed := res.Changed()
	if err := s.tasks.SetCompleted(ctx, changed, res.Target); err != nil {
		return nil, fmt.Errorf("todo.ToggleCompletion: %w", err)
	}

	// Reflect the committed writes in the snapshot before building the
	// response tree.
	for _, id := range changed {
		if ct, ok := ix.Task(id); ok {
			ct.Completed = res.Target
		}
	}

	s.publish(ctx, userID, Event{Type: EventTaskToggled, ListID: t.ListID, TaskID: &taskID, Changed: changed})
	return &ToggleOutcome{Task: ix.Node(taskID), Changed: changed}, nil
}

// SetCollapsed stores the UI collapse state. A nil collapsed flips the
// current value. No cascade, no validation beyond existence.
func (s *Service) SetCollapsed(ctx context.Context, userID, taskID uuid.UUID, collapsed *bool) (bool, error) {
	t, err := s.resolveTask(ctx, userID, taskID)
	if err != nil {
		return false, fmt.Errorf("todo.SetCollapsed: %w", err)
	}

	next := !t.Collapsed
	if collapsed != nil {
		next = *collapsed
	}
	if err := s.tasks.SetCollapsed(ctx, taskID, next); err != nil {
		return false, fmt.Errorf("todo.SetCollapsed: %w", err)
	}
	return next, nil
}

// MoveTask re-targets a top-level task and its whole subtree to another
// list owned by the same user. Depth and sibling names are not re-validated
// against the destination.
func (s *Service) MoveTask(ctx context.Context, userID, taskID, newListID uuid.UUID) (*tree.Node, error) {
	t, err := s.resolveTask(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("todo.MoveTask: %w", err)
	}
	if t.ParentID != nil {
		return nil, fmt.Errorf("todo.MoveTask: %w", domain.ErrInvalidMove)
	}
	if _, err := s.lists.GetByID(ctx, userID, newListID); err != nil {
		return nil, fmt.Errorf("todo.MoveTask: destination: %w", err)
	}

	unlock := s.lockLists(t.ListID, newListID)
	defer unlock()

	all, err := s.tasks.ListByList(ctx, t.ListID)
	if err != nil {
		return nil, fmt.Errorf("todo.MoveTask: %w", err)
	}
	ix := tree.NewIndex(all)

	sub := ix.Subtree(taskID)
	ids := make([]uuid.UUID, len(sub))
	for i, st := range sub {
		ids[i] = st.ID
	}
	if err := s.tasks.MoveToList(ctx, ids, newListID); err != nil {
		return nil, fmt.Errorf("todo.MoveTask: %w", err)
	}
	for _, st := range sub {
		st.ListID = newListID
	}

	s.publish(ctx, userID, Event{Type: EventTaskMoved, ListID: t.ListID, TaskID: &taskID})
	s.publish(ctx, userID, Event{Type: EventTaskMoved, ListID: newListID, TaskID: &taskID})
	return ix.Node(taskID), nil
}

// ReparentTask nests a task under a new parent in the same list (nil moves
// it to the top level). Rejects placements that would make the task its own
// ancestor or push its subtree past the depth cap; sibling names are not
// re-checked.
func (s *Service) ReparentTask(ctx context.Context, userID, taskID uuid.UUID, newParentID *uuid.UUID) (*tree.Node, error) {
	t, err := s.resolveTask(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("todo.ReparentTask: %w", err)
	}

	unlock := s.lockList(t.ListID)
	defer unlock()

	all, err := s.tasks.ListByList(ctx, t.ListID)
	if err != nil {
		return nil, fmt.Errorf("todo.ReparentTask: %w", err)
	}
	ix := tree.NewIndex(all)

	if err := ix.ValidateReparent(taskID, newParentID); err != nil {
		return nil, fmt.Errorf("todo.ReparentTask: %w", err)
	}
	if err := s.tasks.UpdateParent(ctx, taskID, newParentID); err != nil {
		return nil, fmt.Errorf("todo.ReparentTask: %w", err)
	}

	// Rebuild the index so the children map reflects the new shape.
	cur, _ := ix.Task(taskID)
	cur.ParentID = newParentID
	ix = tree.NewIndex(all)

	s.publish(ctx, userID, Event{Type: EventTaskReparent, ListID: t.ListID, TaskID: &taskID})
	return ix.Node(taskID), nil
}

// DeleteTask removes the task and its entire subtree. Deletion is not a
// completion event: former siblings and ancestors are left as they are.
func (s *Service) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	t, err := s.resolveTask(ctx, userID, taskID)
	if err != nil {
		return fmt.Errorf("todo.DeleteTask: %w", err)
	}

	unlock := s.lockList(t.ListID)
	defer unlock()

	all, err := s.tasks.ListByList(ctx, t.ListID)
	if err != nil {
		return fmt.Errorf("todo.DeleteTask: %w", err)
	}
	ix := tree.NewIndex(all)

	ids := ix.SubtreeIDs(taskID)
	if len(ids) == 0 {
		return fmt.Errorf("todo.DeleteTask: %w", domain.ErrNotFound)
	}
	if err := s.tasks.DeleteSubtree(ctx, ids); err != nil {
		return fmt.Errorf("todo.DeleteTask: %w", err)
	}

	s.publish(ctx, userID, Event{Type: EventTaskDeleted, ListID: t.ListID, TaskID: &taskID})
	return nil
}
