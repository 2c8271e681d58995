// Package tree implements the hierarchy engine: a parent-indexed view over
// one list's tasks, depth and name validation, and the completion cascade.
package tree

import (
	"strings"

	"github.com/google/uuid"

	"github.com/taskgrove/taskgrove/internal/domain"
)

// Index is an arena of tasks keyed by id with a derived parent -> children
// map. Child order follows the input order, which repositories guarantee to
// be creation order. An Index is a snapshot: it is built once per mutation
// from the list's rows and discarded afterwards.
type Index struct {
	byID     map[uuid.UUID]*domain.Task
	children map[uuid.UUID][]*domain.Task
	topLevel []*domain.Task
}

// NewIndex builds an Index from a list's tasks. Tasks whose parent is not in
// the input are treated as top-level; a consistent store never produces them.
func NewIndex(tasks []*domain.Task) *Index {
	ix := &Index{
		byID:     make(map[uuid.UUID]*domain.Task, len(tasks)),
		children: make(map[uuid.UUID][]*domain.Task),
	}
	for _, t := range tasks {
		ix.byID[t.ID] = t
	}
	for _, t := range tasks {
		if t.ParentID == nil {
			ix.topLevel = append(ix.topLevel, t)
			continue
		}
		if _, ok := ix.byID[*t.ParentID]; !ok {
			ix.topLevel = append(ix.topLevel, t)
			continue
		}
		ix.children[*t.ParentID] = append(ix.children[*t.ParentID], t)
	}
	return ix
}

// Task returns the task with the given id, if present.
func (ix *Index) Task(id uuid.UUID) (*domain.Task, bool) {
	t, ok := ix.byID[id]
	return t, ok
}

// Len returns the number of tasks in the index.
func (ix *Index) Len() int { return len(ix.byID) }

// TopLevel returns the list's top-level tasks in creation order.
func (ix *Index) TopLevel() []*domain.Task { return ix.topLevel }

// Children returns the direct children of a task in creation order.
func (ix *Index) Children(id uuid.UUID) []*domain.Task { return ix.children[id] }

// Parent returns the parent task, or nil for a top-level task.
func (ix *Index) Parent(t *domain.Task) *domain.Task {
	if t.ParentID == nil {
		return nil
	}
	return ix.byID[*t.ParentID]
}

// Siblings returns the tasks sharing t's parent (or the list's top level when
// t has no parent), excluding t itself.
func (ix *Index) Siblings(t *domain.Task) []*domain.Task {
	peers := ix.topLevel
	if t.ParentID != nil {
		peers = ix.children[*t.ParentID]
	}
	siblings := make([]*domain.Task, 0, len(peers))
	for _, p := range peers {
		if p.ID != t.ID {
			siblings = append(siblings, p)
		}
	}
	return siblings
}

// Subtree returns the task and all of its descendants. Traversal is an
// explicit worklist rather than recursion; the depth cap is a business rule,
// not a structural guarantee of the store.
func (ix *Index) Subtree(id uuid.UUID) []*domain.Task {
	root, ok := ix.byID[id]
	if !ok {
		return nil
	}
	out := make([]*domain.Task, 0, 1)
	stack := []*domain.Task{root}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, t)
		kids := ix.children[t.ID]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return out
}

// SubtreeIDs returns the ids of a task and all of its descendants.
func (ix *Index) SubtreeIDs(id uuid.UUID) []uuid.UUID {
	sub := ix.Subtree(id)
	ids := make([]uuid.UUID, len(sub))
	for i, t := range sub {
		ids[i] = t.ID
	}
	return ids
}

// Ancestors returns the chain of ancestors from parent up to the root.
// The walk is bounded by the arena size so a corrupted parent cycle cannot
// loop forever.
func (ix *Index) Ancestors(id uuid.UUID) []*domain.Task {
	t, ok := ix.byID[id]
	if !ok {
		return nil
	}
	var chain []*domain.Task
	for range ix.byID {
		p := ix.Parent(t)
		if p == nil {
			break
		}
		chain = append(chain, p)
		t = p
	}
	return chain
}

// Depth returns the 1-based depth of a task (top-level = 1), or 0 when the
// id is unknown.
func (ix *Index) Depth(id uuid.UUID) int {
	if _, ok := ix.byID[id]; !ok {
		return 0
	}
	return 1 + len(ix.Ancestors(id))
}

// CanAddChildUnder reports whether a new child of the given parent would stay
// within the depth cap.
func (ix *Index) CanAddChildUnder(parentID uuid.UUID) bool {
	d := ix.Depth(parentID)
	return d >= 1 && d < domain.MaxDepth
}

// height returns the number of levels in a task's subtree (leaf = 1).
func (ix *Index) height(id uuid.UUID) int {
	max := 0
	for _, c := range ix.children[id] {
		if h := ix.height(c.ID); h > max {
			max = h
		}
	}
	return max + 1
}

// ValidateReparent checks that moving a task under newParent (nil = top
// level) neither creates a cycle nor pushes any descendant past the depth
// cap. Name uniqueness is deliberately not re-checked on reparent.
func (ix *Index) ValidateReparent(id uuid.UUID, newParentID *uuid.UUID) error {
	if _, ok := ix.byID[id]; !ok {
		return domain.ErrNotFound
	}
	if newParentID == nil {
		return nil
	}
	if _, ok := ix.byID[*newParentID]; !ok {
		return domain.ErrNotFound
	}
	if *newParentID == id {
		return domain.ErrCyclicReparent
	}
	for _, t := range ix.Subtree(id) {
		if t.ID == *newParentID {
			return domain.ErrCyclicReparent
		}
	}
	if ix.Depth(*newParentID)+ix.height(id) > domain.MaxDepth {
		return domain.ErrDepthLimitExceeded
	}
	return nil
}

// SiblingTitleTaken reports whether another task under the same parent (or at
// the top level, for a nil parent) already carries the trimmed title. The
// comparison is case-sensitive; exclude skips the task being renamed.
func (ix *Index) SiblingTitleTaken(title string, parentID *uuid.UUID, exclude uuid.UUID) bool {
	title = strings.TrimSpace(title)
	peers := ix.topLevel
	if parentID != nil {
		peers = ix.children[*parentID]
	}
	for _, p := range peers {
		if p.ID != exclude && p.Title == title {
			return true
		}
	}
	return false
}
