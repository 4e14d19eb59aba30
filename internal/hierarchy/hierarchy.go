// Package hierarchy partitions a flat task list into root tasks and their
// direct children, and flattens the result into render rows.
package hierarchy

import (
	"github.com/felixgeelhaar/boardchart/internal/task"
)

// Hierarchy is the root/children partition of a task list.
type Hierarchy struct {
	Roots      []task.Task
	ChildrenOf map[string][]task.Task
}

// Resolve partitions tasks by parent reference. Roots and each child group keep
// their relative input order. Tasks whose parent is not a root of the set are
// still grouped under that parent id; callers decide whether to render them.
func Resolve(tasks []task.Task) *Hierarchy {
	h := &Hierarchy{
		Roots:      make([]task.Task, 0, len(tasks)),
		ChildrenOf: make(map[string][]task.Task),
	}
	for _, t := range tasks {
		if t.IsRoot() {
			h.Roots = append(h.Roots, t)
			continue
		}
		h.ChildrenOf[t.ParentID] = append(h.ChildrenOf[t.ParentID], t)
	}
	return h
}

// Children returns the direct children of the task with the given id.
func (h *Hierarchy) Children(id string) []task.Task {
	return h.ChildrenOf[id]
}

// TaskCount returns the number of tasks reachable as a root or a root's child.
func (h *Hierarchy) TaskCount() int {
	n := len(h.Roots)
	for _, r := range h.Roots {
		n += len(h.ChildrenOf[r.ID])
	}
	return n
}
