package hierarchy

import (
	"strings"

	"github.com/felixgeelhaar/boardchart/internal/task"
)

// Row is one rendered line of the chart.
type Row struct {
	Task task.Task
	// Level is 0 for roots and 1 for children.
	Level int
	// Index is the position among siblings (roots among roots, children among
	// their parent's children). SiblingCount is the size of that group.
	Index        int
	SiblingCount int
	ParentID     string
}

// Selection decides which roots have their children rendered.
type Selection struct {
	all bool
	ids map[string]bool
}

// ExpandAll renders every root's children.
func ExpandAll() Selection {
	return Selection{all: true}
}

// ExpandNone renders roots only.
func ExpandNone() Selection {
	return Selection{}
}

// ExpandIDs renders the children of the listed roots only.
func ExpandIDs(ids ...string) Selection {
	s := Selection{ids: make(map[string]bool, len(ids))}
	for _, id := range ids {
		s.ids[id] = true
	}
	return s
}

// Expanded reports whether the root with id has its children rendered.
func (s Selection) Expanded(id string) bool {
	return s.all || s.ids[id]
}

// ParseSelection reads "all", "none" (or empty) or a comma-separated list of
// root ids.
func ParseSelection(expr string) Selection {
	switch strings.ToLower(strings.TrimSpace(expr)) {
	case "all", "*":
		return ExpandAll()
	case "", "none":
		return ExpandNone()
	}
	var ids []string
	for _, id := range strings.Split(expr, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ExpandIDs(ids...)
}

// Rows flattens h into render order: each root followed immediately by its
// children when sel expands it.
func (h *Hierarchy) Rows(sel Selection) []Row {
	rows := make([]Row, 0, h.TaskCount())
	for i, root := range h.Roots {
		rows = append(rows, Row{
			Task:         root,
			Level:        0,
			Index:        i,
			SiblingCount: len(h.Roots),
		})
		if !sel.Expanded(root.ID) {
			continue
		}
		children := h.ChildrenOf[root.ID]
		for j, child := range children {
			rows = append(rows, Row{
				Task:         child,
				Level:        1,
				Index:        j,
				SiblingCount: len(children),
				ParentID:     root.ID,
			})
		}
	}
	return rows
}
