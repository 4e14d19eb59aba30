// Package export runs the chart pipeline end to end: default-filling,
// hierarchy resolution, date inference, layout, rendering and serialization,
// then hands the artifact to a Sink.
//
// Every call recomputes everything from the given task snapshot. Inferred
// dates are relative to the exporter's clock, so the same tasks exported at
// different times can produce different charts; with a fixed clock the output
// is byte-identical.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/boardchart/internal/chart"
	"github.com/felixgeelhaar/boardchart/internal/errors"
	"github.com/felixgeelhaar/boardchart/internal/hierarchy"
	"github.com/felixgeelhaar/boardchart/internal/layout"
	"github.com/felixgeelhaar/boardchart/internal/log"
	"github.com/felixgeelhaar/boardchart/internal/metrics"
	"github.com/felixgeelhaar/boardchart/internal/schedule"
	"github.com/felixgeelhaar/boardchart/internal/task"
)

// DefaultLabel names the chart in the suggested filename.
const DefaultLabel = "gantt-chart"

// DefaultTitle is the header title when none is configured.
const DefaultTitle = "Project Timeline"

// Options configures the text around the chart.
type Options struct {
	Title    string
	SiteName string
	Label    string
	Theme    chart.Theme
}

// Exporter runs chart exports. It holds configuration only and is safe for
// concurrent use.
type Exporter struct {
	layout  layout.Config
	opts    Options
	clock   func() time.Time
	logger  *log.Logger
	metrics *metrics.Metrics
}

// Option customizes an Exporter.
type Option func(*Exporter)

// WithLayout sets the layout configuration.
func WithLayout(cfg layout.Config) Option {
	return func(e *Exporter) { e.layout = cfg }
}

// WithOptions sets title, site name, label and theme.
func WithOptions(o Options) Option {
	return func(e *Exporter) { e.opts = o }
}

// WithClock replaces the wall clock used for "today" and the generation timestamp.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.clock = now }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Exporter) { e.logger = l }
}

// WithMetrics records export metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Exporter) { e.metrics = m }
}

// New creates an Exporter.
func New(opts ...Option) *Exporter {
	e := &Exporter{
		layout: layout.DefaultConfig(),
		clock:  time.Now,
		logger: log.DefaultLogger(),
	}
	for _, o := range opts {
		o(e)
	}
	if e.opts.Title == "" {
		e.opts.Title = DefaultTitle
	}
	if e.opts.Label == "" {
		e.opts.Label = DefaultLabel
	}
	return e
}

// Timeline is the intermediate result of the pipeline up to layout.
type Timeline struct {
	Rows      []hierarchy.Row
	Intervals []schedule.Interval
	Geometry  layout.Geometry
	Now       time.Time
}

// Plan runs default-filling, resolution, inference and layout without
// rendering.
func (e *Exporter) Plan(tasks []task.Task, sel hierarchy.Selection) (*Timeline, error) {
	if len(tasks) == 0 {
		return nil, errors.NewEmptyInputError("")
	}
	if err := e.layout.Validate(); err != nil {
		return nil, errors.NewConfigInvalidError(err.Error())
	}

	normalized, err := normalize(tasks, e.logger)
	if err != nil {
		return nil, err
	}

	now := e.clock()
	today := task.DateOf(now)

	h := hierarchy.Resolve(normalized)
	rows := h.Rows(sel)
	e.logger.Debug("resolved hierarchy", "roots", len(h.Roots), "rows", len(rows))

	intervals := schedule.InferRows(rows, today)
	e.recordInference(intervals)

	window := layout.Window(intervals, e.layout.WeekStart)
	if days := window.Days(); days > e.layout.MaxSpanDays {
		return nil, errors.NewGeometryOverflowError(fmt.Sprintf(
			"timeline spans %d days (%s to %s), limit is %d", days, window.Start, window.End, e.layout.MaxSpanDays))
	}
	width := layout.CanvasWidth(window, e.layout)
	if width > e.layout.MaxCanvasWidthPx {
		return nil, errors.NewGeometryOverflowError(fmt.Sprintf(
			"canvas would be %.0fpx wide, limit is %.0fpx", width, e.layout.MaxCanvasWidthPx))
	}

	geo := layout.Compute(intervals, width, e.layout)
	e.logger.Debug("computed layout",
		"grid_start", geo.GridStart.String(), "grid_end", geo.GridEnd.String(),
		"day_width_px", geo.DayWidthPx, "canvas_width_px", geo.CanvasWidthPx)

	return &Timeline{Rows: rows, Intervals: intervals, Geometry: geo, Now: now}, nil
}

// Build runs the full pipeline and returns the artifact without saving it.
func (e *Exporter) Build(tasks []task.Task, sel hierarchy.Selection) (*Artifact, error) {
	start := time.Now()
	a, err := e.build(tasks, sel)
	if err != nil {
		e.metrics.RecordExport(time.Since(start), 0, 0, errorCode(err))
		return nil, err
	}
	e.metrics.RecordExport(time.Since(start), a.Rows, len(a.Data), "")
	return a, nil
}

func (e *Exporter) build(tasks []task.Task, sel hierarchy.Selection) (*Artifact, error) {
	tl, err := e.Plan(tasks, sel)
	if err != nil {
		return nil, err
	}

	meta := chart.Metadata{
		Title:       e.opts.Title,
		SiteName:    e.opts.SiteName,
		GeneratedAt: tl.Now,
		Theme:       e.opts.Theme,
	}
	doc := chart.Render(tl.Geometry, rowMeta(tl.Rows), meta, e.layout)
	data := chart.Serialize(doc)

	return &Artifact{
		Filename:    Filename(e.opts.Label, task.DateOf(tl.Now)),
		ContentType: chart.ContentType,
		Data:        data,
		Rows:        len(tl.Rows),
		GridStart:   tl.Geometry.GridStart,
		GridEnd:     tl.Geometry.GridEnd,
		GeneratedAt: tl.Now,
	}, nil
}

// Export builds the artifact and hands it to sink. Nothing reaches the sink
// when the build fails.
func (e *Exporter) Export(ctx context.Context, tasks []task.Task, sel hierarchy.Selection, sink Sink) (*Artifact, error) {
	a, err := e.Build(tasks, sel)
	if err != nil {
		e.logger.WithError(err).Warn("chart export failed")
		return nil, err
	}
	if err := sink.Save(ctx, a); err != nil {
		e.logger.LogError("saving chart failed", err)
		return nil, err
	}
	e.logger.InfoContext(ctx, "chart exported",
		"filename", a.Filename, "rows", a.Rows, "bytes", len(a.Data))
	return a, nil
}

func rowMeta(rows []hierarchy.Row) []chart.RowMeta {
	out := make([]chart.RowMeta, len(rows))
	for i, r := range rows {
		out[i] = chart.RowMeta{
			TaskID:   r.Task.ID,
			Name:     r.Task.Name,
			Status:   r.Task.Status,
			Progress: r.Task.Progress,
			Level:    r.Level,
		}
	}
	return out
}

func (e *Exporter) recordInference(intervals []schedule.Interval) {
	if e.metrics == nil {
		return
	}
	var starts, ends int
	clamped := make(map[int]int)
	for _, iv := range intervals {
		if iv.StartInferred {
			starts++
		}
		if iv.EndInferred {
			ends++
		}
		if iv.Clamped {
			clamped[iv.Level]++
		}
	}
	e.metrics.RecordInference(starts, ends, clamped)
}

func errorCode(err error) string {
	if code := errors.CodeOf(err); code != "" {
		return string(code)
	}
	return "unknown"
}
