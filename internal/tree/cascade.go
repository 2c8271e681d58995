package tree

import (
	"github.com/google/uuid"

	"github.com/taskgrove/taskgrove/internal/domain"
)

// ToggleResult is the exact write set produced by toggling one task. At most
// one of Completed/Uncompleted is non-empty, so the caller can commit the
// whole cascade as a single batch write.
type ToggleResult struct {
	// Target is the toggled task's new completed state.
	Target bool
	// Completed holds the ids transitioning to completed=true, in cascade
	// order (toggled task, its descendants, then auto-completed ancestors).
	Completed []uuid.UUID
	// Uncompleted holds the ids transitioning to completed=false (toggled
	// task, then ancestors forced incomplete).
	Uncompleted []uuid.UUID
}

// Changed returns every id whose completed state flips.
func (r ToggleResult) Changed() []uuid.UUID {
	if r.Target {
		return r.Completed
	}
	return r.Uncompleted
}

// Toggle computes the completion cascade for flipping one task's state.
// It never writes; the caller applies the result to the store.
//
// Completing a task completes its whole subtree, then walks up from the
// toggled task only: whenever every sibling at a level is complete, the
// parent auto-completes and the walk continues. Uncompleting a task touches
// no descendant but unconditionally uncompletes every ancestor, since a
// parent can never legitimately stay complete above an incomplete child.
func Toggle(ix *Index, id uuid.UUID) (ToggleResult, error) {
	t, ok := ix.Task(id)
	if !ok {
		return ToggleResult{}, domain.ErrNotFound
	}

	res := ToggleResult{Target: !t.Completed}

	if !res.Target {
		res.Uncompleted = append(res.Uncompleted, t.ID)
		for _, a := range ix.Ancestors(t.ID) {
			if a.Completed {
				res.Uncompleted = append(res.Uncompleted, a.ID)
			}
		}
		return res, nil
	}

	// Downward: the whole subtree becomes complete, regardless of prior
	// state.
	done := make(map[uuid.UUID]bool)
	for _, sub := range ix.Subtree(t.ID) {
		res.Completed = append(res.Completed, sub.ID)
		done[sub.ID] = true
	}

	// Upward: evaluated only from the toggled task's ancestor chain. Nodes
	// completed by the downward pass are counted as complete even though the
	// store has not been written yet.
	cur := t
	for {
		parent := ix.Parent(cur)
		if parent == nil || parent.Completed || done[parent.ID] {
			break
		}
		allDone := true
		for _, sib := range ix.Siblings(cur) {
			if !sib.Completed && !done[sib.ID] {
				allDone = false
				break
			}
		}
		if !allDone {
			break
		}
		res.Completed = append(res.Completed, parent.ID)
		done[parent.ID] = true
		cur = parent
	}

	return res, nil
}
