package tree

import (
	"github.com/google/uuid"

	"github.com/taskgrove/taskgrove/internal/domain"
)

// Node is a task with its subtree resolved, as returned to API callers.
type Node struct {
	*domain.Task
	Depth        int
	SubtaskCount int
	Subtasks     []*Node
}

// Node builds the resolved subtree rooted at id, or nil when the id is
// unknown. Subtask order follows creation order.
func (ix *Index) Node(id uuid.UUID) *Node {
	t, ok := ix.byID[id]
	if !ok {
		return nil
	}
	return ix.buildNode(t, ix.Depth(id))
}

// Forest builds the resolved trees for every top-level task in the list.
func (ix *Index) Forest() []*Node {
	nodes := make([]*Node, 0, len(ix.topLevel))
	for _, t := range ix.topLevel {
		nodes = append(nodes, ix.buildNode(t, 1))
	}
	return nodes
}

func (ix *Index) buildNode(t *domain.Task, depth int) *Node {
	kids := ix.children[t.ID]
	n := &Node{
		Task:         t,
		Depth:        depth,
		SubtaskCount: len(kids),
		Subtasks:     make([]*Node, 0, len(kids)),
	}
	for _, c := range kids {
		n.Subtasks = append(n.Subtasks, ix.buildNode(c, depth+1))
	}
	return n
}
