package chart

import (
	"fmt"

	"github.com/felixgeelhaar/boardchart/internal/layout"
	"github.com/felixgeelhaar/boardchart/internal/task"
)

// Status colors.
const (
	ColorGreen = "#22c55e"
	ColorBlue  = "#3b82f6"
	ColorRed   = "#ef4444"
	ColorGray  = "#9ca3af"
)

const (
	labelPaddingPx  = 16
	badgeGapPx      = 8
	badgeHeightPx   = 18
	badgeCharWidth  = 6.5
	badgePaddingPx  = 16
	textBaselinePx  = 4
	childNamePrefix = "└ "
	ellipsis        = "…"
	weekLabelLayout = "Jan 2"
	generatedLayout = "2006-01-02 15:04"
)

// RowMeta is the task data drawn on a row, aligned with layout.Geometry.Bars.
type RowMeta struct {
	TaskID   string
	Name     string
	Status   task.Status
	Progress int
	Level    int
}

// StatusColor maps a status to its bar and badge color.
func StatusColor(s task.Status) string {
	switch s {
	case task.StatusDone:
		return ColorGreen
	case task.StatusInProgress:
		return ColorBlue
	case task.StatusBlocked:
		return ColorRed
	default:
		return ColorGray
	}
}

// ColorFor maps a raw board status string (including aliases such as
// "completed" or "pending") to a color.
func ColorFor(status string) string {
	return StatusColor(task.ParseStatus(status))
}

// Truncate shortens name to at most budget characters, ending cut names with
// an ellipsis.
func Truncate(name string, budget int) string {
	runes := []rune(name)
	if budget <= 0 || len(runes) <= budget {
		return name
	}
	if budget == 1 {
		return ellipsis
	}
	return string(runes[:budget-1]) + ellipsis
}

// NameBudget returns the truncation budget for a row level.
func NameBudget(level int, cfg layout.Config) int {
	if level > 0 {
		return cfg.ChildNameBudget
	}
	return cfg.RootNameBudget
}

// Render builds the drawing primitives for geo. rows must be aligned with
// geo.Bars.
func Render(geo layout.Geometry, rows []RowMeta, meta Metadata, cfg layout.Config) *Document {
	theme := meta.Theme
	if theme == (Theme{}) {
		theme = DefaultTheme()
	}
	doc := &Document{
		Width:  geo.CanvasWidthPx,
		Height: layout.CanvasHeight(len(geo.Bars), cfg),
		Title:  meta.Title,
		Theme:  theme,
		Rows:   len(geo.Bars),
	}

	doc.add(Rect{X: 0, Y: 0, W: doc.Width, H: doc.Height, Fill: theme.Background, Class: "background"})
	renderHeader(doc, meta)
	renderWeeks(doc, geo, cfg)

	for i, bar := range geo.Bars {
		var rm RowMeta
		if i < len(rows) {
			rm = rows[i]
		}
		renderRow(doc, bar, rm, cfg)
	}
	return doc
}

func (d *Document) add(p ...Primitive) {
	d.Primitives = append(d.Primitives, p...)
}

func renderHeader(doc *Document, meta Metadata) {
	doc.add(Text{X: 20, Y: 34, Content: meta.Title, Class: "title", Anchor: AnchorStart})
	if meta.SiteName != "" {
		doc.add(Text{X: 20, Y: 58, Content: meta.SiteName, Class: "subtitle", Anchor: AnchorStart})
	}
	generated := "Generated " + meta.GeneratedAt.Format(generatedLayout)
	doc.add(Text{X: doc.Width - 20, Y: 34, Content: generated, Class: "meta", Anchor: AnchorEnd})
}

func renderWeeks(doc *Document, geo layout.Geometry, cfg layout.Config) {
	if len(geo.Bars) == 0 {
		return
	}
	top := cfg.HeaderHeightPx
	bottom := cfg.TopMarginPx() + float64(len(geo.Bars))*cfg.RowSpacingPx
	for _, wl := range geo.Weeks {
		doc.add(Line{X1: wl.X, Y1: top, X2: wl.X, Y2: bottom, Class: "grid"})
		if wl.ShowLabel {
			doc.add(Text{
				X:       wl.X + 4,
				Y:       top + cfg.WeekHeaderHeightPx - 10,
				Content: wl.Date.Format(weekLabelLayout),
				Class:   "week",
				Anchor:  AnchorStart,
			})
		}
	}
	gridRight := cfg.LeftMarginPx + float64(geo.TotalDays)*geo.DayWidthPx
	doc.add(Line{X1: cfg.LeftMarginPx, Y1: cfg.TopMarginPx(), X2: gridRight, Y2: cfg.TopMarginPx(), Class: "axis"})
}

func renderRow(doc *Document, bar layout.Bar, rm RowMeta, cfg layout.Config) {
	color := StatusColor(rm.Status)
	barY := bar.Y + (cfg.RowSpacingPx-cfg.RowHeightPx)/2
	midY := barY + cfg.RowHeightPx/2 + textBaselinePx

	name := Truncate(rm.Name, NameBudget(bar.Level, cfg))
	class := "name"
	if bar.Level > 0 {
		name = childNamePrefix + name
		class = "name child"
	}
	doc.add(Text{X: labelPaddingPx + bar.IndentPx, Y: midY, Content: name, Class: class, Anchor: AnchorStart})

	doc.add(Rect{
		X: bar.X, Y: barY, W: bar.WidthPx, H: cfg.RowHeightPx, RX: 4,
		Stroke: color, StrokeWidth: 1.5, Class: "bar",
	})

	progress := task.ClampProgress(rm.Progress)
	if fill := bar.WidthPx * float64(progress) / 100; fill > 0 {
		doc.add(Rect{X: bar.X, Y: barY, W: fill, H: cfg.RowHeightPx, RX: 4, Fill: color, Class: "progress"})
	}
	if bar.WidthPx >= cfg.PercentLabelMinWidthPx {
		doc.add(Text{
			X:       bar.X + bar.WidthPx/2,
			Y:       midY,
			Content: fmt.Sprintf("%d%%", progress),
			Class:   "percent",
			Anchor:  AnchorMiddle,
		})
	}

	label := rm.Status.Label()
	doc.add(Badge{
		X:     bar.X + bar.WidthPx + badgeGapPx,
		Y:     barY + (cfg.RowHeightPx-badgeHeightPx)/2,
		W:     float64(len([]rune(label)))*badgeCharWidth + badgePaddingPx,
		H:     badgeHeightPx,
		Color: color,
		Label: label,
	})
}
