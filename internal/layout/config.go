package layout

import (
	"fmt"
	"time"
)

// Config collects every size, margin and legibility threshold used by the
// layout and render stages.
type Config struct {
	CanvasWidthPx    float64 `yaml:"canvas_width_px" json:"canvas_width_px"`
	MaxCanvasWidthPx float64 `yaml:"max_canvas_width_px" json:"max_canvas_width_px"`
	// MinDayWidthPx is the legibility floor; the canvas is widened to keep it.
	MinDayWidthPx float64 `yaml:"min_day_width_px" json:"min_day_width_px"`

	LeftMarginPx  float64 `yaml:"left_margin_px" json:"left_margin_px"`
	RightMarginPx float64 `yaml:"right_margin_px" json:"right_margin_px"`

	HeaderHeightPx     float64 `yaml:"header_height_px" json:"header_height_px"`
	WeekHeaderHeightPx float64 `yaml:"week_header_height_px" json:"week_header_height_px"`
	BottomMarginPx     float64 `yaml:"bottom_margin_px" json:"bottom_margin_px"`
	MaxCanvasHeightPx  float64 `yaml:"max_canvas_height_px" json:"max_canvas_height_px"`

	RowHeightPx   float64 `yaml:"row_height_px" json:"row_height_px"`
	RowSpacingPx  float64 `yaml:"row_spacing_px" json:"row_spacing_px"`
	MinBarWidthPx float64 `yaml:"min_bar_width_px" json:"min_bar_width_px"`
	LevelIndentPx float64 `yaml:"level_indent_px" json:"level_indent_px"`

	WeekLabelMinWidthPx    float64 `yaml:"week_label_min_width_px" json:"week_label_min_width_px"`
	PercentLabelMinWidthPx float64 `yaml:"percent_label_min_width_px" json:"percent_label_min_width_px"`

	// Name truncation budgets in characters.
	RootNameBudget  int `yaml:"root_name_budget" json:"root_name_budget"`
	ChildNameBudget int `yaml:"child_name_budget" json:"child_name_budget"`

	// MaxSpanDays bounds the grid window; larger spans are rejected.
	MaxSpanDays int `yaml:"max_span_days" json:"max_span_days"`

	WeekStart time.Weekday `yaml:"-" json:"-"`
}

// DefaultConfig returns the layout used by board exports.
func DefaultConfig() Config {
	return Config{
		CanvasWidthPx:          1200,
		MaxCanvasWidthPx:       16000,
		MinDayWidthPx:          2,
		LeftMarginPx:           260,
		RightMarginPx:          120,
		HeaderHeightPx:         80,
		WeekHeaderHeightPx:     30,
		BottomMarginPx:         40,
		MaxCanvasHeightPx:      4000,
		RowHeightPx:            24,
		RowSpacingPx:           36,
		MinBarWidthPx:          4,
		LevelIndentPx:          20,
		WeekLabelMinWidthPx:    48,
		PercentLabelMinWidthPx: 36,
		RootNameBudget:         32,
		ChildNameBudget:        26,
		MaxSpanDays:            3660,
		WeekStart:              time.Sunday,
	}
}

// TopMarginPx is where the first row starts.
func (c Config) TopMarginPx() float64 {
	return c.HeaderHeightPx + c.WeekHeaderHeightPx
}

// PlotWidthPx is the horizontal space left for bars at the given canvas width.
func (c Config) PlotWidthPx(canvasWidthPx float64) float64 {
	return canvasWidthPx - c.LeftMarginPx - c.RightMarginPx
}

// Validate rejects configurations that cannot produce a chart.
func (c Config) Validate() error {
	switch {
	case c.CanvasWidthPx <= 0:
		return fmt.Errorf("canvas_width_px must be positive")
	case c.PlotWidthPx(c.CanvasWidthPx) <= 0:
		return fmt.Errorf("margins (%v + %v) leave no room on a %vpx canvas", c.LeftMarginPx, c.RightMarginPx, c.CanvasWidthPx)
	case c.MaxCanvasWidthPx < c.CanvasWidthPx:
		return fmt.Errorf("max_canvas_width_px must be at least canvas_width_px")
	case c.RowSpacingPx < c.RowHeightPx:
		return fmt.Errorf("row_spacing_px must be at least row_height_px")
	case c.RowHeightPx <= 0:
		return fmt.Errorf("row_height_px must be positive")
	case c.MinDayWidthPx < 0 || c.MinBarWidthPx < 0 || c.LevelIndentPx < 0:
		return fmt.Errorf("widths and indents must not be negative")
	case c.RootNameBudget < 2 || c.ChildNameBudget < 2:
		return fmt.Errorf("name budgets must be at least 2 characters")
	case c.MaxSpanDays <= 0:
		return fmt.Errorf("max_span_days must be positive")
	case c.WeekStart < time.Sunday || c.WeekStart > time.Saturday:
		return fmt.Errorf("week start %d is not a weekday", c.WeekStart)
	}
	return nil
}
