// Package task defines the board task record consumed by the chart engine,
// its status vocabulary, and the default-filling applied before export.
package task

import (
	"strings"
)

// PlaceholderName is shown for tasks with an empty name.
const PlaceholderName = "Untitled task"

// Status is the workflow state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusBlocked    Status = "blocked"
)

// ParseStatus maps a board status string onto a Status.
// Unrecognized values are treated as todo.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "done", "completed", "complete", "closed":
		return StatusDone
	case "in_progress", "in-progress", "inprogress", "in progress", "doing", "active":
		return StatusInProgress
	case "blocked":
		return StatusBlocked
	default:
		return StatusTodo
	}
}

// Label returns the short text shown on a status badge.
func (s Status) Label() string {
	switch s {
	case StatusDone:
		return "Done"
	case StatusInProgress:
		return "In Progress"
	case StatusBlocked:
		return "Blocked"
	default:
		return "To Do"
	}
}

// Task is a single board task. The engine only reads it.
type Task struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	ParentID  string `json:"parentId,omitempty" yaml:"parent_id,omitempty"`
	Status    Status `json:"status" yaml:"status"`
	Progress  int    `json:"progress" yaml:"progress"`
	StartDate *Date  `json:"startDate,omitempty" yaml:"start_date,omitempty"`
	DueDate   *Date  `json:"dueDate,omitempty" yaml:"due_date,omitempty"`
}

// IsRoot reports whether t has no parent.
func (t Task) IsRoot() bool {
	return t.ParentID == ""
}

// HasStart reports whether an explicit start date is set.
func (t Task) HasStart() bool {
	return t.StartDate != nil && !t.StartDate.IsZero()
}

// HasDue reports whether an explicit due date is set.
func (t Task) HasDue() bool {
	return t.DueDate != nil && !t.DueDate.IsZero()
}

// ClampProgress limits p to [0, 100].
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// WithDefaults returns a copy of t with display defaults filled in:
// trimmed id and parent, placeholder name, canonical status, clamped progress.
func (t Task) WithDefaults() Task {
	out := t
	out.ID = strings.TrimSpace(t.ID)
	out.ParentID = strings.TrimSpace(t.ParentID)
	out.Name = strings.TrimSpace(t.Name)
	if out.Name == "" {
		out.Name = PlaceholderName
	}
	out.Status = ParseStatus(string(t.Status))
	out.Progress = ClampProgress(t.Progress)
	if !out.HasStart() {
		out.StartDate = nil
	}
	if !out.HasDue() {
		out.DueDate = nil
	}
	return out
}
