// Package layout places resolved task intervals on a week-aligned grid and
// computes the pixel geometry of every bar and week gridline.
package layout

import (
	"math"
	"time"

	"github.com/felixgeelhaar/boardchart/internal/schedule"
	"github.com/felixgeelhaar/boardchart/internal/task"
)

// GridWindow is the inclusive, week-aligned calendar range of a chart.
type GridWindow struct {
	Start task.Date
	End   task.Date
}

// Days returns the number of calendar days in the window, both ends included.
func (w GridWindow) Days() int {
	if w.Start.IsZero() {
		return 0
	}
	return w.End.DaysSince(w.Start) + 1
}

// Bar is the geometry of one task row.
type Bar struct {
	TaskID   string
	Row      int
	Level    int
	X        float64
	Y        float64
	WidthPx  float64
	IndentPx float64
}

// WeekLine is a vertical gridline at the start of a 7-day bucket.
type WeekLine struct {
	Date      task.Date
	X         float64
	ShowLabel bool
}

// Geometry is the complete layout of a chart.
type Geometry struct {
	GridStart     task.Date
	GridEnd       task.Date
	TotalDays     int
	CanvasWidthPx float64
	DayWidthPx    float64
	RowHeightPx   float64
	RowSpacingPx  float64
	Bars          []Bar
	Weeks         []WeekLine
}

// Window returns the grid window covering all intervals: the earliest start
// snapped back to weekStart and the latest end snapped forward to the last
// day of its week.
func Window(intervals []schedule.Interval, weekStart time.Weekday) GridWindow {
	if len(intervals) == 0 {
		return GridWindow{}
	}
	minDate, maxDate := intervals[0].Start, intervals[0].End
	for _, iv := range intervals[1:] {
		minDate = task.MinDate(minDate, iv.Start)
		maxDate = task.MaxDate(maxDate, iv.End)
	}
	return GridWindow{
		Start: WeekFloor(minDate, weekStart),
		End:   WeekCeil(maxDate, weekStart),
	}
}

// WeekFloor returns the latest date on or before d that falls on weekStart.
func WeekFloor(d task.Date, weekStart time.Weekday) task.Date {
	back := (int(d.Weekday()) - int(weekStart) + 7) % 7
	return d.AddDays(-back)
}

// WeekCeil returns the earliest date on or after d that is the last day of a
// week beginning on weekStart.
func WeekCeil(d task.Date, weekStart time.Weekday) task.Date {
	weekEnd := (int(weekStart) + 6) % 7
	fwd := (weekEnd - int(d.Weekday()) + 7) % 7
	return d.AddDays(fwd)
}

// CanvasWidth is the canvas-sizing step: cfg.CanvasWidthPx, widened when the
// window is long enough to push the day width under cfg.MinDayWidthPx.
func CanvasWidth(w GridWindow, cfg Config) float64 {
	days := w.Days()
	if days == 0 || cfg.MinDayWidthPx <= 0 {
		return cfg.CanvasWidthPx
	}
	if cfg.PlotWidthPx(cfg.CanvasWidthPx)/float64(days) >= cfg.MinDayWidthPx {
		return cfg.CanvasWidthPx
	}
	return math.Ceil(cfg.LeftMarginPx + cfg.RightMarginPx + float64(days)*cfg.MinDayWidthPx)
}

// Compute lays out intervals in the given order, one row each.
func Compute(intervals []schedule.Interval, canvasWidthPx float64, cfg Config) Geometry {
	geo := Geometry{
		CanvasWidthPx: canvasWidthPx,
		RowHeightPx:   cfg.RowHeightPx,
		RowSpacingPx:  cfg.RowSpacingPx,
	}
	if len(intervals) == 0 {
		return geo
	}

	w := Window(intervals, cfg.WeekStart)
	geo.GridStart = w.Start
	geo.GridEnd = w.End
	geo.TotalDays = w.Days()
	geo.DayWidthPx = cfg.PlotWidthPx(canvasWidthPx) / float64(geo.TotalDays)

	geo.Bars = make([]Bar, len(intervals))
	for i, iv := range intervals {
		geo.Bars[i] = Bar{
			TaskID:   iv.TaskID,
			Row:      i,
			Level:    iv.Level,
			X:        cfg.LeftMarginPx + float64(iv.Start.DaysSince(w.Start))*geo.DayWidthPx,
			Y:        cfg.TopMarginPx() + float64(i)*cfg.RowSpacingPx,
			WidthPx:  math.Max(cfg.MinBarWidthPx, float64(iv.Days())*geo.DayWidthPx),
			IndentPx: float64(iv.Level) * cfg.LevelIndentPx,
		}
	}

	geo.Weeks = weekLines(w, geo.DayWidthPx, cfg)
	return geo
}

func weekLines(w GridWindow, dayWidth float64, cfg Config) []WeekLine {
	showLabels := 7*dayWidth >= cfg.WeekLabelMinWidthPx
	lines := make([]WeekLine, 0, w.Days()/7+1)
	for d := w.Start; !d.After(w.End); d = d.AddDays(7) {
		lines = append(lines, WeekLine{
			Date:      d,
			X:         cfg.LeftMarginPx + float64(d.DaysSince(w.Start))*dayWidth,
			ShowLabel: showLabels,
		})
	}
	return lines
}

// CanvasHeight is the chart height for the given number of rows, capped at
// cfg.MaxCanvasHeightPx. Rows past the cap keep their fixed spacing.
func CanvasHeight(rows int, cfg Config) float64 {
	h := cfg.TopMarginPx() + float64(rows)*cfg.RowSpacingPx + cfg.BottomMarginPx
	if cfg.MaxCanvasHeightPx > 0 && h > cfg.MaxCanvasHeightPx {
		return cfg.MaxCanvasHeightPx
	}
	return h
}
