package ux

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/felixgeelhaar/boardchart/internal/export"
	"github.com/felixgeelhaar/boardchart/internal/task"
)

// ExportSummary describes a written artifact.
type ExportSummary struct {
	Filename    string `json:"filename" yaml:"filename"`
	Destination string `json:"destination" yaml:"destination"`
	ContentType string `json:"contentType" yaml:"content_type"`
	Bytes       int    `json:"bytes" yaml:"bytes"`
	Rows        int    `json:"rows" yaml:"rows"`
	GridStart   string `json:"gridStart" yaml:"grid_start"`
	GridEnd     string `json:"gridEnd" yaml:"grid_end"`
	GeneratedAt string `json:"generatedAt" yaml:"generated_at"`
}

// NewExportSummary summarizes a, which was saved to destination.
func NewExportSummary(a *export.Artifact, destination string) *ExportSummary {
	return &ExportSummary{
		Filename:    a.Filename,
		Destination: destination,
		ContentType: a.ContentType,
		Bytes:       len(a.Data),
		Rows:        a.Rows,
		GridStart:   a.GridStart.String(),
		GridEnd:     a.GridEnd.String(),
		GeneratedAt: a.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// Render implements Renderer.
func (s *ExportSummary) Render(st Styles) string {
	var b strings.Builder
	b.WriteString(st.Success.Render("✓ Chart exported"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n", st.Key.Render("file:"), s.Destination)
	fmt.Fprintf(&b, "  %s %d\n", st.Key.Render("rows:"), s.Rows)
	fmt.Fprintf(&b, "  %s %s → %s\n", st.Key.Render("grid:"), s.GridStart, s.GridEnd)
	fmt.Fprintf(&b, "  %s %d bytes", st.Key.Render("size:"), s.Bytes)
	return b.String()
}

func (s *ExportSummary) String() string {
	return s.Render(NewStyles(true))
}

// TimelineRow is one resolved row with its interval and bar geometry.
type TimelineRow struct {
	ID            string  `json:"id" yaml:"id"`
	Name          string  `json:"name" yaml:"name"`
	Level         int     `json:"level" yaml:"level"`
	Status        string  `json:"status" yaml:"status"`
	Progress      int     `json:"progress" yaml:"progress"`
	Start         string  `json:"start" yaml:"start"`
	End           string  `json:"end" yaml:"end"`
	Days          int     `json:"days" yaml:"days"`
	StartInferred bool    `json:"startInferred" yaml:"start_inferred"`
	EndInferred   bool    `json:"endInferred" yaml:"end_inferred"`
	Clamped       bool    `json:"clamped,omitempty" yaml:"clamped,omitempty"`
	BarX          float64 `json:"barX" yaml:"bar_x"`
	BarWidth      float64 `json:"barWidth" yaml:"bar_width"`
}

// TimelineReport is the resolved timeline without the rendered chart.
type TimelineReport struct {
	GridStart   string        `json:"gridStart" yaml:"grid_start"`
	GridEnd     string        `json:"gridEnd" yaml:"grid_end"`
	TotalDays   int           `json:"totalDays" yaml:"total_days"`
	CanvasWidth float64       `json:"canvasWidth" yaml:"canvas_width"`
	DayWidth    float64       `json:"dayWidth" yaml:"day_width"`
	Rows        []TimelineRow `json:"rows" yaml:"rows"`

	gridStart task.Date
}

// NewTimelineReport flattens tl into report rows.
func NewTimelineReport(tl *export.Timeline) *TimelineReport {
	g := tl.Geometry
	r := &TimelineReport{
		GridStart:   g.GridStart.String(),
		GridEnd:     g.GridEnd.String(),
		TotalDays:   g.TotalDays,
		CanvasWidth: g.CanvasWidthPx,
		DayWidth:    g.DayWidthPx,
		Rows:        make([]TimelineRow, 0, len(tl.Rows)),
		gridStart:   g.GridStart,
	}
	for i, row := range tl.Rows {
		iv := tl.Intervals[i]
		bar := g.Bars[i]
		r.Rows = append(r.Rows, TimelineRow{
			ID:            row.Task.ID,
			Name:          row.Task.Name,
			Level:         row.Level,
			Status:        string(row.Task.Status),
			Progress:      row.Task.Progress,
			Start:         iv.Start.String(),
			End:           iv.End.String(),
			Days:          iv.Days(),
			StartInferred: iv.StartInferred,
			EndInferred:   iv.EndInferred,
			Clamped:       iv.Clamped,
			BarX:          bar.X,
			BarWidth:      bar.WidthPx,
		})
	}
	return r
}

const (
	nameColumn  = 28
	chartColumn = 56
)

// Render implements Renderer. Each row is drawn as a block bar scaled to a
// fixed terminal width; inferred dates are marked with '~'.
func (r *TimelineReport) Render(st Styles) string {
	var b strings.Builder
	b.WriteString(st.Title.Render(fmt.Sprintf("Timeline %s → %s", r.GridStart, r.GridEnd)))
	b.WriteString(st.Muted.Render(fmt.Sprintf("  (%d days, %d rows)", r.TotalDays, len(r.Rows))))
	b.WriteString("\n")

	for _, row := range r.Rows {
		name := row.Name
		if row.Level > 0 {
			name = "  └ " + name
		}
		b.WriteString(padRight(clip(name, nameColumn), nameColumn))
		b.WriteString(" ")
		b.WriteString(st.Bar(task.Status(row.Status), r.barCells(row)))
		b.WriteString(" ")

		dates := fmt.Sprintf("%s → %s", row.Start, row.End)
		if row.StartInferred || row.EndInferred {
			dates += " ~"
		}
		b.WriteString(st.Muted.Render(dates))
		if row.Progress > 0 {
			b.WriteString(fmt.Sprintf(" %d%%", row.Progress))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *TimelineReport) String() string {
	return r.Render(NewStyles(true))
}

func (r *TimelineReport) barCells(row TimelineRow) string {
	if r.TotalDays <= 0 {
		return strings.Repeat(" ", chartColumn)
	}
	start, err := task.ParseDate(row.Start)
	if err != nil {
		return strings.Repeat(" ", chartColumn)
	}
	offset := start.DaysSince(r.gridStart) * chartColumn / r.TotalDays
	width := row.Days * chartColumn / r.TotalDays
	if width < 1 {
		width = 1
	}
	if offset+width > chartColumn {
		offset = chartColumn - width
	}
	if offset < 0 {
		offset = 0
	}
	return strings.Repeat("·", offset) + strings.Repeat("█", width) + strings.Repeat("·", chartColumn-offset-width)
}

func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}

func padRight(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}
