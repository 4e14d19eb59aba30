package health

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/boardchart/internal/export"
	"github.com/felixgeelhaar/boardchart/internal/hierarchy"
	"github.com/felixgeelhaar/boardchart/internal/log"
	"github.com/felixgeelhaar/boardchart/internal/task"
)

// RenderChecker exports a fixed two-row chart to prove the pipeline works
// with the server's layout configuration.
type RenderChecker struct {
	opts []export.Option
}

// NewRenderChecker creates a checker. opts are applied after a discard logger
// and a fixed clock, so callers can pass the server's layout.
func NewRenderChecker(opts ...export.Option) *RenderChecker {
	return &RenderChecker{opts: opts}
}

// Name implements Checker.
func (c *RenderChecker) Name() string {
	return "chart-render"
}

var probeTasks = []task.Task{
	{ID: "probe-root", Name: "Probe", Status: task.StatusInProgress, Progress: 50},
	{ID: "probe-child", Name: "Probe child", ParentID: "probe-root"},
}

// Check implements Checker.
func (c *RenderChecker) Check(ctx context.Context) *Result {
	if err := ctx.Err(); err != nil {
		return Unhealthy(fmt.Sprintf("check cancelled: %v", err))
	}
	fixed := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	opts := append([]export.Option{
		export.WithLogger(log.Discard()),
		export.WithClock(func() time.Time { return fixed }),
	}, c.opts...)

	start := time.Now()
	a, err := export.New(opts...).Build(probeTasks, hierarchy.ExpandAll())
	if err != nil {
		return Unhealthy(fmt.Sprintf("sample export failed: %v", err))
	}
	r := Healthy("sample chart rendered").
		WithDetail("rows", a.Rows).
		WithDetail("bytes", len(a.Data))
	r.Latency = time.Since(start)
	return r
}
