package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/boardchart/internal/task"
)

func ids(tasks []task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func rowIDs(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Task.ID
	}
	return out
}

var board = []task.Task{
	{ID: "c1", ParentID: "r1"},
	{ID: "r1"},
	{ID: "r2"},
	{ID: "c2", ParentID: "r2"},
	{ID: "c3", ParentID: "r1"},
	{ID: "x1", ParentID: "missing"},
}

func TestResolve(t *testing.T) {
	h := Resolve(board)

	assert.Equal(t, []string{"r1", "r2"}, ids(h.Roots))
	assert.Equal(t, []string{"c1", "c3"}, ids(h.Children("r1")), "children keep input order")
	assert.Equal(t, []string{"c2"}, ids(h.Children("r2")))
	assert.Empty(t, h.Children("c1"))
	assert.Equal(t, []string{"x1"}, ids(h.ChildrenOf["missing"]))
	assert.Equal(t, 5, h.TaskCount(), "tasks under a missing parent are not reachable")
}

func TestResolveEmpty(t *testing.T) {
	h := Resolve(nil)
	assert.Empty(t, h.Roots)
	assert.Empty(t, h.Rows(ExpandAll()))
}

func TestRows(t *testing.T) {
	h := Resolve(board)

	tests := []struct {
		name string
		sel  Selection
		want []string
	}{
		{"expand all", ExpandAll(), []string{"r1", "c1", "c3", "r2", "c2"}},
		{"expand none", ExpandNone(), []string{"r1", "r2"}},
		{"expand one", ExpandIDs("r2"), []string{"r1", "r2", "c2"}},
		{"unknown id", ExpandIDs("nope"), []string{"r1", "r2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rowIDs(h.Rows(tt.sel)))
		})
	}
}

func TestRowPositions(t *testing.T) {
	rows := Resolve(board).Rows(ExpandAll())
	require.Len(t, rows, 5)

	r2 := rows[3]
	assert.Equal(t, 0, r2.Level)
	assert.Equal(t, 1, r2.Index)
	assert.Equal(t, 2, r2.SiblingCount)
	assert.Empty(t, r2.ParentID)

	c3 := rows[2]
	assert.Equal(t, 1, c3.Level)
	assert.Equal(t, 1, c3.Index)
	assert.Equal(t, 2, c3.SiblingCount)
	assert.Equal(t, "r1", c3.ParentID)
}

func TestRowsAreStable(t *testing.T) {
	h := Resolve(board)
	assert.Equal(t, rowIDs(h.Rows(ExpandAll())), rowIDs(Resolve(board).Rows(ExpandAll())))
}

func TestParseSelection(t *testing.T) {
	assert.True(t, ParseSelection("all").Expanded("anything"))
	assert.True(t, ParseSelection(" ALL ").Expanded("anything"))
	assert.False(t, ParseSelection("").Expanded("a"))
	assert.False(t, ParseSelection("none").Expanded("a"))

	sel := ParseSelection("a, b,,")
	assert.True(t, sel.Expanded("a"))
	assert.True(t, sel.Expanded("b"))
	assert.False(t, sel.Expanded("c"))
}
