package tree_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskgrove/taskgrove/internal/domain"
	"github.com/taskgrove/taskgrove/internal/tree"
)

func newTask(listID uuid.UUID, parent *domain.Task, title string) *domain.Task {
	t := &domain.Task{
		ID:       uuid.New(),
		ListID:   listID,
		Title:    title,
		Priority: domain.PriorityMedium,
	}
	if parent != nil {
		pid := parent.ID
		t.ParentID = &pid
	}
	return t
}

// chain builds a straight line of tasks, returning them root-first.
func chain(listID uuid.UUID, depth int) []*domain.Task {
	tasks := make([]*domain.Task, 0, depth)
	var parent *domain.Task
	for i := 0; i < depth; i++ {
		t := newTask(listID, parent, "level-"+string(rune('a'+i)))
		tasks = append(tasks, t)
		parent = t
	}
	return tasks
}

func TestIndexStructure(t *testing.T) {
	t.Parallel()

	listID := uuid.New()

	t.Run("top_level_and_children", func(t *testing.T) {
		t.Parallel()

		a := newTask(listID, nil, "a")
		b := newTask(listID, nil, "b")
		a1 := newTask(listID, a, "a1")
		a2 := newTask(listID, a, "a2")

		ix := tree.NewIndex([]*domain.Task{a, b, a1, a2})

		require.Equal(t, 4, ix.Len())
		top := ix.TopLevel()
		require.Len(t, top, 2)
		assert.Equal(t, a.ID, top[0].ID)
		assert.Equal(t, b.ID, top[1].ID)

		kids := ix.Children(a.ID)
		require.Len(t, kids, 2)
		assert.Equal(t, a1.ID, kids[0].ID)
		assert.Equal(t, a2.ID, kids[1].ID)
		assert.Empty(t, ix.Children(b.ID))
	})

	t.Run("orphan_parent_treated_as_top_level", func(t *testing.T) {
		t.Parallel()

		ghost := uuid.New()
		orphan := &domain.Task{ID: uuid.New(), ListID: listID, ParentID: &ghost, Title: "orphan"}

		ix := tree.NewIndex([]*domain.Task{orphan})

		require.Len(t, ix.TopLevel(), 1)
		assert.Equal(t, 1, ix.Depth(orphan.ID))
	})

	t.Run("siblings_exclude_self", func(t *testing.T) {
		t.Parallel()

		a := newTask(listID, nil, "a")
		a1 := newTask(listID, a, "a1")
		a2 := newTask(listID, a, "a2")
		a3 := newTask(listID, a, "a3")

		ix := tree.NewIndex([]*domain.Task{a, a1, a2, a3})

		sibs := ix.Siblings(a2)
		require.Len(t, sibs, 2)
		assert.Equal(t, a1.ID, sibs[0].ID)
		assert.Equal(t, a3.ID, sibs[1].ID)
	})

	t.Run("subtree_preorder", func(t *testing.T) {
		t.Parallel()

		a := newTask(listID, nil, "a")
		a1 := newTask(listID, a, "a1")
		a2 := newTask(listID, a, "a2")
		a1x := newTask(listID, a1, "a1x")

		ix := tree.NewIndex([]*domain.Task{a, a1, a2, a1x})

		sub := ix.Subtree(a.ID)
		require.Len(t, sub, 4)
		assert.Equal(t, a.ID, sub[0].ID)
		assert.Equal(t, a1.ID, sub[1].ID)
		assert.Equal(t, a1x.ID, sub[2].ID)
		assert.Equal(t, a2.ID, sub[3].ID)

		assert.Nil(t, ix.Subtree(uuid.New()))
	})

	t.Run("depth_and_ancestors", func(t *testing.T) {
		t.Parallel()

		line := chain(listID, 3)
		ix := tree.NewIndex(line)

		assert.Equal(t, 1, ix.Depth(line[0].ID))
		assert.Equal(t, 3, ix.Depth(line[2].ID))
		assert.Equal(t, 0, ix.Depth(uuid.New()))

		anc := ix.Ancestors(line[2].ID)
		require.Len(t, anc, 2)
		assert.Equal(t, line[1].ID, anc[0].ID)
		assert.Equal(t, line[0].ID, anc[1].ID)
	})
}

func TestDepthCap(t *testing.T) {
	t.Parallel()

	listID := uuid.New()

	t.Run("child_allowed_below_cap", func(t *testing.T) {
		t.Parallel()

		line := chain(listID, domain.MaxDepth-1)
		ix := tree.NewIndex(line)

		assert.True(t, ix.CanAddChildUnder(line[len(line)-1].ID))
	})

	t.Run("child_rejected_at_cap", func(t *testing.T) {
		t.Parallel()

		line := chain(listID, domain.MaxDepth)
		ix := tree.NewIndex(line)

		assert.False(t, ix.CanAddChildUnder(line[len(line)-1].ID))
	})

	t.Run("unknown_parent_rejected", func(t *testing.T) {
		t.Parallel()

		ix := tree.NewIndex(nil)
		assert.False(t, ix.CanAddChildUnder(uuid.New()))
	})
}

func TestValidateReparent(t *testing.T) {
	t.Parallel()

	listID := uuid.New()

	t.Run("to_top_level", func(t *testing.T) {
		t.Parallel()

		line := chain(listID, 2)
		ix := tree.NewIndex(line)

		assert.NoError(t, ix.ValidateReparent(line[1].ID, nil))
	})

	t.Run("under_sibling", func(t *testing.T) {
		t.Parallel()

		a := newTask(listID, nil, "a")
		b := newTask(listID, nil, "b")
		ix := tree.NewIndex([]*domain.Task{a, b})

		assert.NoError(t, ix.ValidateReparent(b.ID, &a.ID))
	})

	t.Run("self_cycle", func(t *testing.T) {
		t.Parallel()

		a := newTask(listID, nil, "a")
		ix := tree.NewIndex([]*domain.Task{a})

		assert.ErrorIs(t, ix.ValidateReparent(a.ID, &a.ID), domain.ErrCyclicReparent)
	})

	t.Run("descendant_cycle", func(t *testing.T) {
		t.Parallel()

		line := chain(listID, 3)
		ix := tree.NewIndex(line)

		// Moving the root under its grandchild would orphan the chain.
		assert.ErrorIs(t, ix.ValidateReparent(line[0].ID, &line[2].ID), domain.ErrCyclicReparent)
	})

	t.Run("subtree_height_overflows_cap", func(t *testing.T) {
		t.Parallel()

		// A 3-deep chain moved under a task at depth 3 would reach depth 6.
		line := chain(listID, 3)
		other := chain(listID, 3)
		all := append(append([]*domain.Task{}, line...), other...)
		ix := tree.NewIndex(all)

		err := ix.ValidateReparent(other[0].ID, &line[2].ID)
		assert.ErrorIs(t, err, domain.ErrDepthLimitExceeded)
	})

	t.Run("subtree_height_fits_cap", func(t *testing.T) {
		t.Parallel()

		// A 2-deep chain under a task at depth 3 lands exactly on the cap.
		line := chain(listID, 3)
		other := chain(listID, 2)
		all := append(append([]*domain.Task{}, line...), other...)
		ix := tree.NewIndex(all)

		assert.NoError(t, ix.ValidateReparent(other[0].ID, &line[2].ID))
	})

	t.Run("unknown_task", func(t *testing.T) {
		t.Parallel()

		ix := tree.NewIndex(nil)
		assert.ErrorIs(t, ix.ValidateReparent(uuid.New(), nil), domain.ErrNotFound)
	})

	t.Run("unknown_parent", func(t *testing.T) {
		t.Parallel()

		a := newTask(listID, nil, "a")
		ix := tree.NewIndex([]*domain.Task{a})
		ghost := uuid.New()

		assert.ErrorIs(t, ix.ValidateReparent(a.ID, &ghost), domain.ErrNotFound)
	})
}

func TestSiblingTitleTaken(t *testing.T) {
	t.Parallel()

	listID := uuid.New()

	a := newTask(listID, nil, "Groceries")
	b := newTask(listID, nil, "Chores")
	a1 := newTask(listID, a, "Milk")
	ix := tree.NewIndex([]*domain.Task{a, b, a1})

	t.Run("taken_at_top_level", func(t *testing.T) {
		t.Parallel()
		assert.True(t, ix.SiblingTitleTaken("Groceries", nil, uuid.Nil))
	})

	t.Run("trimmed_before_comparing", func(t *testing.T) {
		t.Parallel()
		assert.True(t, ix.SiblingTitleTaken("  Groceries  ", nil, uuid.Nil))
	})

	t.Run("case_sensitive", func(t *testing.T) {
		t.Parallel()
		assert.False(t, ix.SiblingTitleTaken("groceries", nil, uuid.Nil))
	})

	t.Run("scoped_to_parent", func(t *testing.T) {
		t.Parallel()
		assert.False(t, ix.SiblingTitleTaken("Milk", nil, uuid.Nil))
		assert.True(t, ix.SiblingTitleTaken("Milk", &a.ID, uuid.Nil))
		assert.False(t, ix.SiblingTitleTaken("Milk", &b.ID, uuid.Nil))
	})

	t.Run("exclude_allows_rename_to_own_title", func(t *testing.T) {
		t.Parallel()
		assert.False(t, ix.SiblingTitleTaken("Groceries", nil, a.ID))
	})
}

func TestNodeResolution(t *testing.T) {
	t.Parallel()

	listID := uuid.New()

	a := newTask(listID, nil, "a")
	a1 := newTask(listID, a, "a1")
	a2 := newTask(listID, a, "a2")
	b := newTask(listID, nil, "b")
	ix := tree.NewIndex([]*domain.Task{a, a1, a2, b})

	t.Run("node_carries_depth_and_subtasks", func(t *testing.T) {
		t.Parallel()

		n := ix.Node(a.ID)
		require.NotNil(t, n)
		assert.Equal(t, 1, n.Depth)
		assert.Equal(t, 2, n.SubtaskCount)
		require.Len(t, n.Subtasks, 2)
		assert.Equal(t, 2, n.Subtasks[0].Depth)
		assert.Empty(t, n.Subtasks[0].Subtasks)
	})

	t.Run("unknown_id_is_nil", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, ix.Node(uuid.New()))
	})

	t.Run("forest_covers_top_level", func(t *testing.T) {
		t.Parallel()

		forest := ix.Forest()
		require.Len(t, forest, 2)
		assert.Equal(t, a.ID, forest[0].ID)
		assert.Equal(t, b.ID, forest[1].ID)
	})
}
