package todo_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskgrove/taskgrove/internal/domain"
	"github.com/taskgrove/taskgrove/internal/store/memory"
	redisstore "github.com/taskgrove/taskgrove/internal/store/redis"
	"github.com/taskgrove/taskgrove/internal/todo"
)

// capturePublisher records published channels so tests can assert fanout
// without a live Redis.
type capturePublisher struct {
	mu       sync.Mutex
	channels []string
}

func (p *capturePublisher) Publish(_ context.Context, channel string, _ []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.channels = append(p.channels, channel)
	return nil
}

func newService(t *testing.T) (*todo.Service, uuid.UUID) {
	t.Helper()
	store := memory.New()
	return todo.NewService(store.Lists(), store.Tasks(), nil), uuid.New()
}

func mustCreateList(t *testing.T, svc *todo.Service, userID uuid.UUID, name string) *domain.List {
	t.Helper()
	l, err := svc.CreateList(t.Context(), userID, name)
	require.NoError(t, err)
	return l
}

func mustCreateTask(t *testing.T, svc *todo.Service, userID, listID uuid.UUID, title string, parentID *uuid.UUID) uuid.UUID {
	t.Helper()
	n, err := svc.CreateTask(t.Context(), userID, todo.CreateTaskInput{
		ListID:   listID,
		Title:    title,
		ParentID: parentID,
	})
	require.NoError(t, err)
	return n.ID
}

// ---------------------------------------------------------------------------
// Lists
// ---------------------------------------------------------------------------

func TestServiceCreateList(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)

		l, err := svc.CreateList(t.Context(), userID, "Groceries")
		require.NoError(t, err)
		assert.Equal(t, "Groceries", l.Name)
		assert.Equal(t, userID, l.UserID)
	})

	t.Run("duplicate_name_rejected", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		mustCreateList(t, svc, userID, "Groceries")

		_, err := svc.CreateList(t.Context(), userID, "Groceries")
		assert.ErrorIs(t, err, domain.ErrDuplicateName)
	})

	t.Run("same_name_for_other_user_allowed", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		mustCreateList(t, svc, userID, "Groceries")

		_, err := svc.CreateList(t.Context(), uuid.New(), "Groceries")
		assert.NoError(t, err)
	})

	t.Run("blank_name_rejected", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)

		_, err := svc.CreateList(t.Context(), userID, "   ")
		assert.ErrorIs(t, err, domain.ErrInvalidTitle)
	})
}

func TestServiceLists(t *testing.T) {
	t.Parallel()

	svc, userID := newService(t)
	l := mustCreateList(t, svc, userID, "Work")
	mustCreateList(t, svc, userID, "Home")

	a := mustCreateTask(t, svc, userID, l.ID, "a", nil)
	mustCreateTask(t, svc, userID, l.ID, "b", nil)
	_, err := svc.ToggleCompletion(t.Context(), userID, a)
	require.NoError(t, err)

	lists, err := svc.Lists(t.Context(), userID)
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, "Work", lists[0].Name)
	assert.Equal(t, 2, lists[0].TaskCount)
	assert.Equal(t, 1, lists[0].CompletedCount)
	assert.Equal(t, 0, lists[1].TaskCount)
}

func TestServiceGetList(t *testing.T) {
	t.Parallel()

	t.Run("resolves_forest", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l := mustCreateList(t, svc, userID, "Work")
		root := mustCreateTask(t, svc, userID, l.ID, "root", nil)
		mustCreateTask(t, svc, userID, l.ID, "child", &root)

		lt, err := svc.GetList(t.Context(), userID, l.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, lt.TaskCount)
		require.Len(t, lt.Tasks, 1)
		assert.Equal(t, root, lt.Tasks[0].ID)
		require.Len(t, lt.Tasks[0].Subtasks, 1)
		assert.Equal(t, "child", lt.Tasks[0].Subtasks[0].Title)
		assert.Equal(t, 2, lt.Tasks[0].Subtasks[0].Depth)
	})

	t.Run("foreign_list_not_found", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l := mustCreateList(t, svc, userID, "Work")

		_, err := svc.GetList(t.Context(), uuid.New(), l.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestServiceDeleteList(t *testing.T) {
	t.Parallel()

	svc, userID := newService(t)
	l := mustCreateList(t, svc, userID, "Work")
	mustCreateTask(t, svc, userID, l.ID, "a", nil)

	require.NoError(t, svc.DeleteList(t.Context(), userID, l.ID))

	_, err := svc.GetList(t.Context(), userID, l.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// Task creation
// ---------------------------------------------------------------------------

func TestServiceCreateTask(t *testing.T) {
	t.Parallel()

	t.Run("nested_child_gets_depth", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l := mustCreateList(t, svc, userID, "Work")
		root := mustCreateTask(t, svc, userID, l.ID, "root", nil)

		n, err := svc.CreateTask(t.Context(), userID, todo.CreateTaskInput{
			ListID:   l.ID,
			Title:    "child",
			ParentID: &root,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, n.Depth)
	})

	t.Run("duplicate_sibling_title_rejected", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l := mustCreateList(t, svc, userID, "Work")
		mustCreateTask(t, svc, userID, l.ID, "Report", nil)

		_, err := svc.CreateTask(t.Context(), userID, todo.CreateTaskInput{ListID: l.ID, Title: "Report"})
		assert.ErrorIs(t, err, domain.ErrDuplicateName)
	})

	t.Run("same_title_under_other_parent_allowed", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l := mustCreateList(t, svc, userID, "Work")
		a := mustCreateTask(t, svc, userID, l.ID, "a", nil)
		b := mustCreateTask(t, svc, userID, l.ID, "b", nil)
		mustCreateTask(t, svc, userID, l.ID, "Draft", &a)

		_, err := svc.CreateTask(t.Context(), userID, todo.CreateTaskInput{ListID: l.ID, Title: "Draft", ParentID: &b})
		assert.NoError(t, err)
	})

	t.Run("same_title_in_other_list_allowed", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l1 := mustCreateList(t, svc, userID, "One")
		l2 := mustCreateList(t, svc, userID, "Two")
		mustCreateTask(t, svc, userID, l1.ID, "Groceries", nil)

		_, err := svc.CreateTask(t.Context(), userID, todo.CreateTaskInput{ListID: l2.ID, Title: "Groceries"})
		assert.NoError(t, err)
	})

	t.Run("depth_cap_enforced", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l := mustCreateList(t, svc, userID, "Work")

		parent := mustCreateTask(t, svc, userID, l.ID, "level-1", nil)
		for d := 2; d <= domain.MaxDepth; d++ {
			id := mustCreateTask(t, svc, userID, l.ID, "level", &parent)
			parent = id
		}

		_, err := svc.CreateTask(t.Context(), userID, todo.CreateTaskInput{
			ListID:   l.ID,
			Title:    "too deep",
			ParentID: &parent,
		})
		assert.ErrorIs(t, err, domain.ErrDepthLimitExceeded)
	})

	t.Run("unknown_parent_not_found", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l := mustCreateList(t, svc, userID, "Work")
		ghost := uuid.New()

		_, err := svc.CreateTask(t.Context(), userID, todo.CreateTaskInput{ListID: l.ID, Title: "x", ParentID: &ghost})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("parent_in_other_list_not_found", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l1 := mustCreateList(t, svc, userID, "One")
		l2 := mustCreateList(t, svc, userID, "Two")
		foreign := mustCreateTask(t, svc, userID, l1.ID, "foreign", nil)

		_, err := svc.CreateTask(t.Context(), userID, todo.CreateTaskInput{ListID: l2.ID, Title: "x", ParentID: &foreign})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("foreign_list_not_found", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l := mustCreateList(t, svc, userID, "Work")

		_, err := svc.CreateTask(t.Context(), uuid.New(), todo.CreateTaskInput{ListID: l.ID, Title: "x"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

// ---------------------------------------------------------------------------
// Task update
// ---------------------------------------------------------------------------

func TestServiceUpdateTask(t *testing.T) {
	t.Parallel()

	strPtr := func(s string) *string { return &s }

	t.Run("rename_and_reprioritize", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l := mustCreateList(t, svc, userID, "Work")
		id := mustCreateTask(t, svc, userID, l.ID, "Old", nil)

		p := domain.PriorityHigh
		n, err := svc.UpdateTask(t.Context(), userID, id, domain.TaskUpdate{
			Title:    strPtr("New"),
			Priority: &p,
		})
		require.NoError(t, err)
		assert.Equal(t, "New", n.Title)
		assert.Equal(t, domain.PriorityHigh, n.Priority)
	})

	t.Run("rename_to_sibling_title_rejected", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l := mustCreateList(t, svc, userID, "Work")
		mustCreateTask(t, svc, userID, l.ID, "Taken", nil)
		id := mustCreateTask(t, svc, userID, l.ID, "Free", nil)

		_, err := svc.UpdateTask(t.Context(), userID, id, domain.TaskUpdate{Title: strPtr("Taken")})
		assert.ErrorIs(t, err, domain.ErrDuplicateName)
	})

	t.Run("rename_to_own_title_allowed", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l := mustCreateList(t, svc, userID, "Work")
		id := mustCreateTask(t, svc, userID, l.ID, "Same", nil)

		_, err := svc.UpdateTask(t.Context(), userID, id, domain.TaskUpdate{Title: strPtr("Same")})
		assert.NoError(t, err)
	})

	t.Run("blank_title_rejected", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l := mustCreateList(t, svc, userID, "Work")
		id := mustCreateTask(t, svc, userID, l.ID, "x", nil)

		_, err := svc.UpdateTask(t.Context(), userID, id, domain.TaskUpdate{Title: strPtr("   ")})
		assert.ErrorIs(t, err, domain.ErrInvalidTitle)
	})

	t.Run("invalid_priority_rejected", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l := mustCreateList(t, svc, userID, "Work")
		id := mustCreateTask(t, svc, userID, l.ID, "x", nil)

		p := domain.Priority("urgent")
		_, err := svc.UpdateTask(t.Context(), userID, id, domain.TaskUpdate{Priority: &p})
		assert.ErrorIs(t, err, domain.ErrInvalidPriority)
	})
}

// ---------------------------------------------------------------------------
// Toggle
// ---------------------------------------------------------------------------

func TestServiceToggleCompletion(t *testing.T) {
	t.Parallel()

	t.Run("completing_last_sibling_completes_parent_persistently", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l := mustCreateList(t, svc, userID, "Work")
		root := mustCreateTask(t, svc, userID, l.ID, "root", nil)
		b := mustCreateTask(t, svc, userID, l.ID, "b", &root)
		c := mustCreateTask(t, svc, userID, l.ID, "c", &root)

		_, err := svc.ToggleCompletion(t.Context(), userID, b)
		require.NoError(t, err)

		out, err := svc.ToggleCompletion(t.Context(), userID, c)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{c, root}, out.Changed)

		// The cascade is visible on a fresh read.
		lt, err := svc.GetList(t.Context(), userID, l.ID)
		require.NoError(t, err)
		assert.True(t, lt.Tasks[0].Completed)
		assert.Equal(t, 3, lt.CompletedCount)
	})

	t.Run("completing_parent_completes_subtree", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l := mustCreateList(t, svc, userID, "Work")
		root := mustCreateTask(t, svc, userID, l.ID, "root", nil)
		mustCreateTask(t, svc, userID, l.ID, "b", &root)
		mustCreateTask(t, svc, userID, l.ID, "c", &root)

		out, err := svc.ToggleCompletion(t.Context(), userID, root)
		require.NoError(t, err)
		assert.Len(t, out.Changed, 3)
		assert.True(t, out.Task.Completed)
		assert.True(t, out.Task.Subtasks[0].Completed)
	})

	t.Run("uncompleting_child_unchecks_ancestors", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l := mustCreateList(t, svc, userID, "Work")
		root := mustCreateTask(t, svc, userID, l.ID, "root", nil)
		b := mustCreateTask(t, svc, userID, l.ID, "b", &root)

		_, err := svc.ToggleCompletion(t.Context(), userID, root)
		require.NoError(t, err)

		out, err := svc.ToggleCompletion(t.Context(), userID, b)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{b, root}, out.Changed)

		lt, err := svc.GetList(t.Context(), userID, l.ID)
		require.NoError(t, err)
		assert.False(t, lt.Tasks[0].Completed)
		assert.Equal(t, 0, lt.CompletedCount)
	})

	t.Run("foreign_task_not_found", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l := mustCreateList(t, svc, userID, "Work")
		id := mustCreateTask(t, svc, userID, l.ID, "x", nil)

		_, err := svc.ToggleCompletion(t.Context(), uuid.New(), id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("sibling_sequence", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l := mustCreateList(t, svc, userID, "Work")
		a := mustCreateTask(t, svc, userID, l.ID, "A", nil)
		b := mustCreateTask(t, svc, userID, l.ID, "B", &a)
		c := mustCreateTask(t, svc, userID, l.ID, "C", &a)

		completedState := func() map[uuid.UUID]bool {
			lt, err := svc.GetList(t.Context(), userID, l.ID)
			require.NoError(t, err)
			state := make(map[uuid.UUID]bool)
			state[lt.Tasks[0].ID] = lt.Tasks[0].Completed
			for _, sub := range lt.Tasks[0].Subtasks {
				state[sub.ID] = sub.Completed
			}
			return state
		}

		// Completing B alone leaves A incomplete.
		_, err := svc.ToggleCompletion(t.Context(), userID, b)
		require.NoError(t, err)
		state := completedState()
		assert.False(t, state[a])
		assert.True(t, state[b])

		// Completing C makes both siblings complete, so A auto-completes.
		_, err = svc.ToggleCompletion(t.Context(), userID, c)
		require.NoError(t, err)
		state = completedState()
		assert.True(t, state[a])

		// Uncompleting B un-completes A; C keeps its state.
		_, err = svc.ToggleCompletion(t.Context(), userID, b)
		require.NoError(t, err)
		state = completedState()
		assert.False(t, state[a])
		assert.False(t, state[b])
		assert.True(t, state[c])
	})
}

// ---------------------------------------------------------------------------
// Collapse
// ---------------------------------------------------------------------------

func TestServiceSetCollapsed(t *testing.T) {
	t.Parallel()

	svc, userID := newService(t)
	l := mustCreateList(t, svc, userID, "Work")
	id := mustCreateTask(t, svc, userID, l.ID, "x", nil)

	boolPtr := func(b bool) *bool { return &b }

	collapsed, err := svc.SetCollapsed(t.Context(), userID, id, boolPtr(true))
	require.NoError(t, err)
	assert.True(t, collapsed)

	// nil flips the stored value.
	collapsed, err = svc.SetCollapsed(t.Context(), userID, id, nil)
	require.NoError(t, err)
	assert.False(t, collapsed)

	collapsed, err = svc.SetCollapsed(t.Context(), userID, id, nil)
	require.NoError(t, err)
	assert.True(t, collapsed)
}

// ---------------------------------------------------------------------------
// Move
// ---------------------------------------------------------------------------

func TestServiceMoveTask(t *testing.T) {
	t.Parallel()

	t.Run("moves_subtree_between_lists", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		src := mustCreateList(t, svc, userID, "Src")
		dst := mustCreateList(t, svc, userID, "Dst")
		root := mustCreateTask(t, svc, userID, src.ID, "root", nil)
		mustCreateTask(t, svc, userID, src.ID, "child", &root)

		n, err := svc.MoveTask(t.Context(), userID, root, dst.ID)
		require.NoError(t, err)
		assert.Equal(t, dst.ID, n.ListID)

		srcTree, err := svc.GetList(t.Context(), userID, src.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, srcTree.TaskCount)

		dstTree, err := svc.GetList(t.Context(), userID, dst.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, dstTree.TaskCount)
		require.Len(t, dstTree.Tasks, 1)
		assert.Len(t, dstTree.Tasks[0].Subtasks, 1)
	})

	t.Run("nested_task_rejected", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		src := mustCreateList(t, svc, userID, "Src")
		dst := mustCreateList(t, svc, userID, "Dst")
		root := mustCreateTask(t, svc, userID, src.ID, "root", nil)
		child := mustCreateTask(t, svc, userID, src.ID, "child", &root)

		_, err := svc.MoveTask(t.Context(), userID, child, dst.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidMove)
	})

	t.Run("foreign_destination_not_found", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		src := mustCreateList(t, svc, userID, "Src")
		root := mustCreateTask(t, svc, userID, src.ID, "root", nil)

		otherUser := uuid.New()
		foreign := mustCreateList(t, svc, otherUser, "Theirs")

		_, err := svc.MoveTask(t.Context(), userID, root, foreign.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

// ---------------------------------------------------------------------------
// Reparent
// ---------------------------------------------------------------------------

func TestServiceReparentTask(t *testing.T) {
	t.Parallel()

	t.Run("nests_under_new_parent", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l := mustCreateList(t, svc, userID, "Work")
		a := mustCreateTask(t, svc, userID, l.ID, "a", nil)
		b := mustCreateTask(t, svc, userID, l.ID, "b", nil)

		n, err := svc.ReparentTask(t.Context(), userID, b, &a)
		require.NoError(t, err)
		assert.Equal(t, 2, n.Depth)

		lt, err := svc.GetList(t.Context(), userID, l.ID)
		require.NoError(t, err)
		require.Len(t, lt.Tasks, 1)
		require.Len(t, lt.Tasks[0].Subtasks, 1)
		assert.Equal(t, b, lt.Tasks[0].Subtasks[0].ID)
	})

	t.Run("nil_parent_moves_to_top_level", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l := mustCreateList(t, svc, userID, "Work")
		a := mustCreateTask(t, svc, userID, l.ID, "a", nil)
		b := mustCreateTask(t, svc, userID, l.ID, "b", &a)

		n, err := svc.ReparentTask(t.Context(), userID, b, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, n.Depth)

		lt, err := svc.GetList(t.Context(), userID, l.ID)
		require.NoError(t, err)
		assert.Len(t, lt.Tasks, 2)
	})

	t.Run("cycle_rejected", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l := mustCreateList(t, svc, userID, "Work")
		a := mustCreateTask(t, svc, userID, l.ID, "a", nil)
		b := mustCreateTask(t, svc, userID, l.ID, "b", &a)

		_, err := svc.ReparentTask(t.Context(), userID, a, &b)
		assert.ErrorIs(t, err, domain.ErrCyclicReparent)
	})
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestServiceDeleteTask(t *testing.T) {
	t.Parallel()

	t.Run("removes_subtree", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l := mustCreateList(t, svc, userID, "Work")
		root := mustCreateTask(t, svc, userID, l.ID, "root", nil)
		mustCreateTask(t, svc, userID, l.ID, "child", &root)
		keep := mustCreateTask(t, svc, userID, l.ID, "keep", nil)

		require.NoError(t, svc.DeleteTask(t.Context(), userID, root))

		lt, err := svc.GetList(t.Context(), userID, l.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, lt.TaskCount)
		assert.Equal(t, keep, lt.Tasks[0].ID)
	})

	t.Run("does_not_autocomplete_remaining_siblings_parent", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l := mustCreateList(t, svc, userID, "Work")
		root := mustCreateTask(t, svc, userID, l.ID, "root", nil)
		done := mustCreateTask(t, svc, userID, l.ID, "done", &root)
		open := mustCreateTask(t, svc, userID, l.ID, "open", &root)

		_, err := svc.ToggleCompletion(t.Context(), userID, done)
		require.NoError(t, err)

		// Deleting the only incomplete child is not a completion event.
		require.NoError(t, svc.DeleteTask(t.Context(), userID, open))

		lt, err := svc.GetList(t.Context(), userID, l.ID)
		require.NoError(t, err)
		assert.False(t, lt.Tasks[0].Completed)
	})

	t.Run("foreign_task_not_found", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		l := mustCreateList(t, svc, userID, "Work")
		id := mustCreateTask(t, svc, userID, l.ID, "x", nil)

		err := svc.DeleteTask(t.Context(), uuid.New(), id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

// ---------------------------------------------------------------------------
// Events
// ---------------------------------------------------------------------------

func TestServiceEvents(t *testing.T) {
	t.Parallel()

	t.Run("move_publishes_to_both_list_channels", func(t *testing.T) {
		t.Parallel()

		store := memory.New()
		pub := &capturePublisher{}
		svc := todo.NewService(store.Lists(), store.Tasks(), pub)
		userID := uuid.New()

		src := mustCreateList(t, svc, userID, "Src")
		dst := mustCreateList(t, svc, userID, "Dst")
		root := mustCreateTask(t, svc, userID, src.ID, "root", nil)

		pub.mu.Lock()
		pub.channels = nil
		pub.mu.Unlock()

		_, err := svc.MoveTask(t.Context(), userID, root, dst.ID)
		require.NoError(t, err)

		pub.mu.Lock()
		defer pub.mu.Unlock()
		assert.Contains(t, pub.channels, redisstore.ListChannel(userID, src.ID))
		assert.Contains(t, pub.channels, redisstore.ListChannel(userID, dst.ID))
	})

	t.Run("nil_publisher_is_safe", func(t *testing.T) {
		t.Parallel()
		svc, userID := newService(t)
		_, err := svc.CreateList(t.Context(), userID, "Quiet")
		assert.NoError(t, err)
	})
}
