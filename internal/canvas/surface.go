// Package canvas defines the drawing surface simulations render onto and
// the concrete surfaces the binary ships: a Braille terminal grid, SVG, PNG
// through gonum/plot's vgimg backend, and an in-memory recorder.
//
// All surfaces share one logical coordinate system: origin top-left, x to the
// right, y downwards, sized by [Surface.Size]. Scene code never needs to know
// the physical resolution.
package canvas

import (
	"fmt"
	"image/color"
)

// Default logical size shared by every scene.
const (
	Width  = 800
	Height = 450
)

// Point is a logical coordinate.
type Point struct {
	X, Y float64
}

// Style describes how a primitive is painted. A nil Stroke or Fill disables
// that half of the primitive.
type Style struct {
	Stroke color.Color
	Fill   color.Color
	Width  float64
	// Fade is the transparency in [0, 1]; 0 is fully opaque.
	Fade float64
	// Size is the text size in logical pixels.
	Size float64
}

// Surface is a fixed-size 2D drawing target.
type Surface interface {
	Size() (w, h float64)
	Clear()
	Line(x0, y0, x1, y1 float64, st Style)
	Polyline(pts []Point, st Style)
	Circle(cx, cy, r float64, st Style)
	Rect(x, y, w, h float64, st Style)
	Text(x, y float64, s string, st Style)
}

// Opacity returns 1-Fade clamped to [0, 1].
func (s Style) Opacity() float64 {
	o := 1 - s.Fade
	if o < 0 {
		return 0
	}
	if o > 1 {
		return 1
	}
	return o
}

// Hex formats c as #rrggbb. A nil color yields "none".
func Hex(c color.Color) string {
	if c == nil {
		return "none"
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// RGB builds an opaque color.
func RGB(r, g, b uint8) color.Color {
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// faded multiplies the alpha channel of c by opacity.
func faded(c color.Color, opacity float64) color.Color {
	if c == nil {
		return nil
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A) * opacity)
	return n
}
