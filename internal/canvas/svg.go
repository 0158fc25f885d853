package canvas

import (
	"fmt"
	"html"
	"image/color"
	"io"
	"strings"
)

// SVG accumulates drawing operations as SVG elements.
type SVG struct {
	W, H       float64
	Background color.Color

	body strings.Builder
}

// NewSVG creates an SVG surface with the default logical size.
func NewSVG() *SVG {
	return &SVG{W: Width, H: Height, Background: RGB(0xff, 0xff, 0xff)}
}

func (s *SVG) Size() (float64, float64) {
	return s.W, s.H
}

func (s *SVG) Clear() {
	s.body.Reset()
}

func paint(st Style) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, ` fill="%s" stroke="%s"`, Hex(st.Fill), Hex(st.Stroke))
	if st.Stroke != nil {
		w := st.Width
		if w <= 0 {
			w = 1
		}
		fmt.Fprintf(&sb, ` stroke-width="%.1f"`, w)
	}
	if op := st.Opacity(); op < 1 {
		fmt.Fprintf(&sb, ` opacity="%.3f"`, op)
	}
	return sb.String()
}

func (s *SVG) Line(x0, y0, x1, y1 float64, st Style) {
	if st.Stroke == nil {
		st.Stroke = st.Fill
	}
	st.Fill = nil
	fmt.Fprintf(&s.body, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"%s/>`+"\n", x0, y0, x1, y1, paint(st))
}

func (s *SVG) Polyline(pts []Point, st Style) {
	if len(pts) == 0 {
		return
	}
	var sb strings.Builder
	for i, p := range pts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", p.X, p.Y)
	}
	st.Fill = nil
	fmt.Fprintf(&s.body, `<polyline points="%s"%s/>`+"\n", sb.String(), paint(st))
}

func (s *SVG) Circle(cx, cy, r float64, st Style) {
	fmt.Fprintf(&s.body, `<circle cx="%.1f" cy="%.1f" r="%.1f"%s/>`+"\n", cx, cy, r, paint(st))
}

func (s *SVG) Rect(x, y, w, h float64, st Style) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	fmt.Fprintf(&s.body, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"%s/>`+"\n", x, y, w, h, paint(st))
}

func (s *SVG) Text(x, y float64, text string, st Style) {
	size := st.Size
	if size <= 0 {
		size = 14
	}
	fill := st.Fill
	if fill == nil {
		fill = st.Stroke
	}
	op := ""
	if o := st.Opacity(); o < 1 {
		op = fmt.Sprintf(` opacity="%.3f"`, o)
	}
	fmt.Fprintf(&s.body, `<text x="%.1f" y="%.1f" font-family="Arial, sans-serif" font-size="%.0f" fill="%s"%s>%s</text>`+"\n",
		x, y, size, Hex(fill), op, html.EscapeString(text))
}

// String returns the complete document.
func (s *SVG) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.W, s.H, s.W, s.H, Hex(s.Background))
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteTo writes the document to w.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}
