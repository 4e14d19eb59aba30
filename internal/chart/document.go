// Package chart turns layout geometry and task metadata into an ordered list
// of drawing primitives and serializes that list as a standalone SVG document.
package chart

import (
	"time"
)

// ContentType is the MIME type of serialized documents.
const ContentType = "image/svg+xml"

// Primitive is a drawing instruction with absolute pixel coordinates.
type Primitive interface {
	primitive()
}

// Rect is a rectangle. An empty Fill draws an outline only.
type Rect struct {
	X, Y, W, H  float64
	RX          float64
	Fill        string
	Stroke      string
	StrokeWidth float64
	Class       string
}

// Line is a straight segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	Class          string
}

// Anchor is the horizontal text alignment.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Text is a single-line label. Content is raw text; escaping happens during
// serialization.
type Text struct {
	X, Y    float64
	Content string
	Class   string
	Anchor  Anchor
}

// Badge is a colored capsule with a short centered label.
type Badge struct {
	X, Y, W, H float64
	Color      string
	Label      string
}

func (Rect) primitive()  {}
func (Line) primitive()  {}
func (Text) primitive()  {}
func (Badge) primitive() {}

// Theme holds the stylesheet values embedded in the document.
type Theme struct {
	FontFamily string
	Background string
	Text       string
	Muted      string
	Grid       string
}

// DefaultTheme returns the export stylesheet.
func DefaultTheme() Theme {
	return Theme{
		FontFamily: "-apple-system, 'Segoe UI', Helvetica, Arial, sans-serif",
		Background: "#ffffff",
		Text:       "#111827",
		Muted:      "#6b7280",
		Grid:       "#e5e7eb",
	}
}

// Metadata is the header block of a chart.
type Metadata struct {
	Title       string
	SiteName    string
	GeneratedAt time.Time
	Theme       Theme
}

// Document is a rendered chart prior to serialization. It is not modified
// after Render returns.
type Document struct {
	Width      float64
	Height     float64
	Title      string
	Theme      Theme
	Rows       int
	Primitives []Primitive
}

// Count returns the number of primitives of the same concrete type as p.
func (d *Document) Count(p Primitive) int {
	n := 0
	for _, q := range d.Primitives {
		if sameKind(p, q) {
			n++
		}
	}
	return n
}

func sameKind(a, b Primitive) bool {
	switch a.(type) {
	case Rect:
		_, ok := b.(Rect)
		return ok
	case Line:
		_, ok := b.(Line)
		return ok
	case Text:
		_, ok := b.(Text)
		return ok
	case Badge:
		_, ok := b.(Badge)
		return ok
	}
	return false
}
