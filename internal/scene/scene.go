// Package scene draws physical states onto a canvas.Surface.
package scene

import (
	"fmt"
	"image/color"

	"github.com/san-kum/visualearn/internal/canvas"
)

var (
	blue      = canvas.RGB(0x3b, 0x82, 0xf6)
	darkBlue  = canvas.RGB(0x1e, 0x40, 0xaf)
	navy      = canvas.RGB(0x1d, 0x4e, 0xd8)
	green     = canvas.RGB(0x10, 0xb9, 0x81)
	lime      = canvas.RGB(0x22, 0xc5, 0x5e)
	amber     = canvas.RGB(0xf5, 0x9e, 0x0b)
	darkAmber = canvas.RGB(0xd9, 0x77, 0x06)
	red       = canvas.RGB(0xef, 0x44, 0x44)
	salmon    = canvas.RGB(0xf8, 0x71, 0x71)
	charcoal  = canvas.RGB(0x33, 0x33, 0x33)
	slate     = canvas.RGB(0x44, 0x44, 0x44)
	grey      = canvas.RGB(0xcc, 0xcc, 0xcc)
	ink       = canvas.RGB(0, 0, 0)
)

func stroke(c color.Color, w float64) canvas.Style {
	return canvas.Style{Stroke: c, Width: w}
}

func fill(c color.Color) canvas.Style {
	return canvas.Style{Fill: c}
}

func text(size float64) canvas.Style {
	return canvas.Style{Fill: ink, Size: size}
}

func label(s canvas.Surface, x, y float64, format string, args ...interface{}) {
	s.Text(x, y, fmt.Sprintf(format, args...), text(14))
}
