// Package schedule infers a charting interval for every task, filling in
// missing start and due dates from status, sibling position and parent timing.
//
// Inference is relative to a caller-supplied "today": the same task set
// exported on different days may legitimately produce different intervals.
package schedule

import (
	"github.com/felixgeelhaar/boardchart/internal/hierarchy"
	"github.com/felixgeelhaar/boardchart/internal/task"
)

// Inference offsets in days.
const (
	doneLeadDays    = 14
	doneStaggerDays = 2
	activeLeadDays  = 7
	rootDefaultDays = 7
	childBaseDays   = 3
	minimumSpanDays = 1
)

// Interval is the resolved [Start, End) span charted for one task.
// End is always after Start.
type Interval struct {
	TaskID string
	Start  task.Date
	End    task.Date
	Level  int

	StartInferred bool
	EndInferred   bool
	Clamped       bool
}

// Days returns the length of the interval in calendar days.
func (iv Interval) Days() int {
	return iv.End.DaysSince(iv.Start)
}

// Position locates a task among its siblings.
type Position struct {
	Index        int
	SiblingCount int
}

// Infer resolves the interval for t. parent is the resolved interval of t's
// root when t is a rendered child, and nil for roots.
func Infer(t task.Task, pos Position, parent *Interval, today task.Date) Interval {
	level := 0
	if parent != nil {
		level = 1
	}
	iv := Interval{TaskID: t.ID, Level: level}

	if t.HasStart() && t.HasDue() && t.DueDate.After(*t.StartDate) {
		iv.Start = *t.StartDate
		iv.End = *t.DueDate
		return iv
	}

	switch {
	case t.HasStart():
		iv.Start = *t.StartDate
	case parent != nil:
		iv.Start = childStart(*parent, pos)
		iv.StartInferred = true
	default:
		iv.Start = rootStart(t.Status, pos.Index, today)
		iv.StartInferred = true
	}

	switch {
	case t.HasDue():
		iv.End = *t.DueDate
	case parent != nil:
		iv.End = iv.Start.AddDays(childBaseDays + pos.Index)
		iv.EndInferred = true
	default:
		iv.End = iv.Start.AddDays(rootDefaultDays)
		iv.EndInferred = true
	}

	if !iv.End.After(iv.Start) {
		iv.End = iv.Start.AddDays(minimumSpanDays)
		iv.Clamped = true
	}
	return iv
}

func rootStart(status task.Status, index int, today task.Date) task.Date {
	switch status {
	case task.StatusDone:
		return today.AddDays(-(doneLeadDays + doneStaggerDays*index))
	case task.StatusInProgress:
		return today.AddDays(-(activeLeadDays + index))
	default:
		return today.AddDays(index)
	}
}

// childStart spreads children evenly across the parent interval, in whole days.
func childStart(parent Interval, pos Position) task.Date {
	n := pos.SiblingCount
	if n < pos.Index+1 {
		n = pos.Index + 1
	}
	offset := parent.Days() * (pos.Index + 1) / (n + 1)
	return parent.Start.AddDays(offset)
}

// InferRows resolves intervals for rows in render order. Each child is placed
// relative to the interval of the root row preceding it; a child whose root
// is not among rows is inferred as a root.
func InferRows(rows []hierarchy.Row, today task.Date) []Interval {
	out := make([]Interval, 0, len(rows))
	parents := make(map[string]Interval)
	for _, r := range rows {
		pos := Position{Index: r.Index, SiblingCount: r.SiblingCount}
		var parent *Interval
		if r.Level > 0 {
			if p, ok := parents[r.ParentID]; ok {
				parent = &p
			}
		}
		iv := Infer(r.Task, pos, parent, today)
		iv.Level = r.Level
		if r.Level == 0 {
			parents[r.Task.ID] = iv
		}
		out = append(out, iv)
	}
	return out
}
