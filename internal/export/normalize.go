package export

import (
	"fmt"

	"github.com/felixgeelhaar/boardchart/internal/errors"
	"github.com/felixgeelhaar/boardchart/internal/log"
	"github.com/felixgeelhaar/boardchart/internal/task"
)

// normalize applies default-filling and checks every record before any
// geometry is computed. Parent references outside the set are cleared and
// chains deeper than one level are re-pointed at their root.
func normalize(tasks []task.Task, logger *log.Logger) ([]task.Task, error) {
	out := make([]task.Task, len(tasks))
	byID := make(map[string]int, len(tasks))
	for i, t := range tasks {
		t = t.WithDefaults()
		if t.ID == "" {
			return nil, errors.NewMalformedTaskError("", fmt.Sprintf("task at position %d (%q) has no id", i, t.Name))
		}
		if prev, dup := byID[t.ID]; dup {
			return nil, errors.NewMalformedTaskError(t.ID, fmt.Sprintf("duplicate id at positions %d and %d", prev, i))
		}
		if t.ParentID == t.ID {
			return nil, errors.NewMalformedTaskError(t.ID, "task is its own parent")
		}
		byID[t.ID] = i
		out[i] = t
	}

	for i := range out {
		t := &out[i]
		if t.ParentID == "" {
			continue
		}
		if _, ok := byID[t.ParentID]; !ok {
			logger.Warn("parent not in task set, charting as root", "task_id", t.ID, "parent_id", t.ParentID)
			t.ParentID = ""
			continue
		}
		root, err := rootOf(out, byID, t.ID)
		if err != nil {
			return nil, err
		}
		if root != t.ParentID {
			logger.Warn("flattening nested subtask under its root", "task_id", t.ID, "parent_id", t.ParentID, "root_id", root)
			t.ParentID = root
		}
	}
	return out, nil
}

// rootOf follows parent references from id to the topmost ancestor.
// References to unknown ids end the walk.
func rootOf(tasks []task.Task, byID map[string]int, id string) (string, error) {
	seen := map[string]bool{id: true}
	cur := id
	for {
		t := tasks[byID[cur]]
		if t.ParentID == "" {
			return cur, nil
		}
		next, ok := byID[t.ParentID]
		if !ok {
			return cur, nil
		}
		parentID := tasks[next].ID
		if seen[parentID] {
			return "", errors.NewMalformedTaskError(id, "parent references form a cycle")
		}
		seen[parentID] = true
		cur = parentID
	}
}
