package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// documentNamespace seeds the name-based document ids.
var documentNamespace = uuid.MustParse("6f1c2b9e-4d0a-5b8e-9c3f-2a7d1e4b8c60")

// Serialize renders doc as a standalone SVG document. The output is a pure
// function of doc; the root element carries a UUID derived from the body.
func Serialize(doc *Document) []byte {
	var body strings.Builder
	writeStyle(&body, doc.Theme)
	for _, p := range doc.Primitives {
		writePrimitive(&body, p)
	}

	id := uuid.NewSHA1(documentNamespace, []byte(body.String()))

	var svg strings.Builder
	svg.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&svg, `<svg xmlns="http://www.w3.org/2000/svg" id="chart-%s" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		id, num(doc.Width), num(doc.Height), num(doc.Width), num(doc.Height))
	fmt.Fprintf(&svg, "<title>%s</title>\n", EscapeXML(doc.Title))
	svg.WriteString(body.String())
	svg.WriteString("</svg>\n")
	return []byte(svg.String())
}

// writeStyle emits the stylesheet. Theme values come from user config, so
// each one is escaped like text content.
func writeStyle(b *strings.Builder, t Theme) {
	muted := EscapeXML(t.Muted)
	fmt.Fprintf(b, `<defs>
<style>
text { font-family: %s; fill: %s; }
.title { font-size: 20px; font-weight: 600; }
.subtitle { font-size: 13px; fill: %s; }
.meta { font-size: 11px; fill: %s; }
.week { font-size: 11px; fill: %s; }
.grid { stroke: %s; stroke-width: 1; }
.axis { stroke: %s; stroke-width: 1; }
.name { font-size: 12px; }
.child { fill: %s; }
.bar { fill: none; }
.progress { fill-opacity: 0.35; }
.percent { font-size: 10px; font-weight: 600; }
.badge text { font-size: 10px; fill: #ffffff; }
</style>
</defs>
`, EscapeXML(t.FontFamily), EscapeXML(t.Text), muted, muted, muted, EscapeXML(t.Grid), muted, muted)
}

func writePrimitive(b *strings.Builder, p Primitive) {
	switch v := p.(type) {
	case Rect:
		fill := v.Fill
		if fill == "" {
			fill = "none"
		}
		fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s"`, num(v.X), num(v.Y), num(v.W), num(v.H))
		if v.RX > 0 {
			fmt.Fprintf(b, ` rx="%s"`, num(v.RX))
		}
		fmt.Fprintf(b, ` fill="%s"`, EscapeXML(fill))
		if v.Stroke != "" {
			fmt.Fprintf(b, ` stroke="%s" stroke-width="%s"`, EscapeXML(v.Stroke), num(v.StrokeWidth))
		}
		writeClass(b, v.Class)
		b.WriteString("/>\n")
	case Line:
		fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s"`, num(v.X1), num(v.Y1), num(v.X2), num(v.Y2))
		writeClass(b, v.Class)
		b.WriteString("/>\n")
	case Text:
		anchor := v.Anchor
		if anchor == "" {
			anchor = AnchorStart
		}
		fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="%s"`, num(v.X), num(v.Y), anchor)
		writeClass(b, v.Class)
		fmt.Fprintf(b, ">%s</text>\n", EscapeXML(v.Content))
	case Badge:
		b.WriteString(`<g class="badge">`)
		fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s"/>`,
			num(v.X), num(v.Y), num(v.W), num(v.H), num(v.H/2), EscapeXML(v.Color))
		fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle">%s</text>`,
			num(v.X+v.W/2), num(v.Y+v.H/2+3.5), EscapeXML(v.Label))
		b.WriteString("</g>\n")
	}
}

func writeClass(b *strings.Builder, class string) {
	if class != "" {
		fmt.Fprintf(b, ` class="%s"`, EscapeXML(class))
	}
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // normalize -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// EscapeXML escapes the XML special characters in s and drops characters
// that are not allowed in XML 1.0 documents.
func EscapeXML(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '&':
			b.WriteString("&amp;")
		case r == '<':
			b.WriteString("&lt;")
		case r == '>':
			b.WriteString("&gt;")
		case r == '"':
			b.WriteString("&quot;")
		case r == '\'':
			b.WriteString("&apos;")
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteRune(' ')
		case r < 0x20 || r == 0xFFFE || r == 0xFFFF:
			// not representable in XML 1.0
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
