package canvas

import (
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Image is a raster surface backed by gonum/plot's vgimg canvas. One logical
// pixel maps to one point at 72 DPI, so the PNG has the logical size.
type Image struct {
	Background color.Color

	w, h float64
	c    *vgimg.Canvas
	dc   draw.Canvas
}

// NewImage creates a raster surface of w x h logical pixels.
func NewImage(w, h float64) *Image {
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(w), vg.Length(h)),
		vgimg.UseDPI(72),
	)
	img := &Image{
		Background: RGB(0xff, 0xff, 0xff),
		w:          w,
		h:          h,
		c:          c,
		dc:         draw.New(c),
	}
	img.Clear()
	return img
}

func (m *Image) Size() (float64, float64) {
	return m.w, m.h
}

// pt converts a top-left logical coordinate to vg's bottom-left space.
func (m *Image) pt(x, y float64) vg.Point {
	return vg.Point{X: vg.Length(x), Y: vg.Length(m.h - y)}
}

func (m *Image) Clear() {
	var p vg.Path
	p.Move(m.pt(0, 0))
	p.Line(m.pt(m.w, 0))
	p.Line(m.pt(m.w, m.h))
	p.Line(m.pt(0, m.h))
	p.Close()
	m.c.SetColor(m.Background)
	m.c.Fill(p)
}

func (m *Image) stroke(p vg.Path, st Style) {
	if st.Stroke == nil {
		return
	}
	w := st.Width
	if w <= 0 {
		w = 1
	}
	m.c.SetLineWidth(vg.Length(w))
	m.c.SetColor(faded(st.Stroke, st.Opacity()))
	m.c.Stroke(p)
}

func (m *Image) fill(p vg.Path, st Style) {
	if st.Fill == nil {
		return
	}
	m.c.SetColor(faded(st.Fill, st.Opacity()))
	m.c.Fill(p)
}

func (m *Image) Line(x0, y0, x1, y1 float64, st Style) {
	if st.Stroke == nil {
		st.Stroke = st.Fill
	}
	var p vg.Path
	p.Move(m.pt(x0, y0))
	p.Line(m.pt(x1, y1))
	m.stroke(p, st)
}

func (m *Image) Polyline(pts []Point, st Style) {
	if len(pts) < 2 {
		return
	}
	var p vg.Path
	p.Move(m.pt(pts[0].X, pts[0].Y))
	for _, q := range pts[1:] {
		p.Line(m.pt(q.X, q.Y))
	}
	m.stroke(p, st)
}

func (m *Image) Circle(cx, cy, r float64, st Style) {
	if r <= 0 {
		return
	}
	var p vg.Path
	p.Move(m.pt(cx+r, cy))
	p.Arc(m.pt(cx, cy), vg.Length(r), 0, 2*math.Pi)
	p.Close()
	m.fill(p, st)
	m.stroke(p, st)
}

func (m *Image) Rect(x, y, w, h float64, st Style) {
	var p vg.Path
	p.Move(m.pt(x, y))
	p.Line(m.pt(x+w, y))
	p.Line(m.pt(x+w, y+h))
	p.Line(m.pt(x, y+h))
	p.Close()
	m.fill(p, st)
	m.stroke(p, st)
}

func (m *Image) Text(x, y float64, s string, st Style) {
	size := st.Size
	if size <= 0 {
		size = 14
	}
	clr := st.Fill
	if clr == nil {
		clr = st.Stroke
	}
	if clr == nil {
		clr = color.Black
	}
	fnt := plot.DefaultFont
	fnt.Size = vg.Length(size)
	m.dc.FillText(draw.TextStyle{
		Color:   faded(clr, st.Opacity()),
		Font:    fnt,
		Handler: plot.DefaultTextHandler,
	}, m.pt(x, y), s)
}

// WriteTo encodes the surface as PNG.
func (m *Image) WriteTo(w io.Writer) (int64, error) {
	return vgimg.PngCanvas{Canvas: m.c}.WriteTo(w)
}
