package canvas

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// fades at or above this are not plotted; a dot has no alpha.
const brailleFadeCutoff = 0.75

// Label is text placed on a Braille grid cell.
type Label struct {
	Col, Row int
	Text     string
}

// Braille renders a logical surface onto a grid of Braille cells, each cell
// holding 2x4 sub-pixels.
type Braille struct {
	Cols, Rows int
	Grid       [][]rune

	logicalW, logicalH float64
	labels             []Label
}

// NewBraille creates a cols x rows character grid mapped onto the default
// logical size.
func NewBraille(cols, rows int) *Braille {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	b := &Braille{
		Cols:     cols,
		Rows:     rows,
		Grid:     make([][]rune, rows),
		logicalW: Width,
		logicalH: Height,
	}
	for i := range b.Grid {
		b.Grid[i] = make([]rune, cols)
	}
	b.Clear()
	return b
}

func (b *Braille) Size() (float64, float64) {
	return b.logicalW, b.logicalH
}

// Clear resets the grid and drops all labels.
func (b *Braille) Clear() {
	for i := range b.Grid {
		for j := range b.Grid[i] {
			b.Grid[i][j] = brailleBlank
		}
	}
	b.labels = b.labels[:0]
}

// Set sets a dot at sub-pixel (x, y). The grid is (Cols*2) x (Rows*4) dots.
func (b *Braille) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= b.Cols || row >= b.Rows {
		return
	}
	b.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Unset clears a dot.
func (b *Braille) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= b.Cols || row >= b.Rows {
		return
	}
	b.Grid[row][col] &= ^rune(pixelMap[y%4][x%2])
	if b.Grid[row][col] < brailleBlank {
		b.Grid[row][col] = brailleBlank
	}
}

// IsSet reports whether the dot at sub-pixel (x, y) is set.
func (b *Braille) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= b.Cols || y/4 >= b.Rows {
		return false
	}
	return b.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Dots returns the sub-pixel resolution.
func (b *Braille) Dots() (int, int) {
	return b.Cols * 2, b.Rows * 4
}

func (b *Braille) toDots(x, y float64) (int, int) {
	dw, dh := b.Dots()
	return int(math.Round(x / b.logicalW * float64(dw-1))),
		int(math.Round(y / b.logicalH * float64(dh-1)))
}

func (b *Braille) visible(st Style) bool {
	return st.Fade < brailleFadeCutoff
}

// drawLine draws a line between sub-pixels using Bresenham's algorithm.
func (b *Braille) drawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		b.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (b *Braille) Line(x0, y0, x1, y1 float64, st Style) {
	if !b.visible(st) {
		return
	}
	ax, ay := b.toDots(x0, y0)
	bx, by := b.toDots(x1, y1)
	b.drawLine(ax, ay, bx, by)
}

func (b *Braille) Polyline(pts []Point, st Style) {
	if !b.visible(st) || len(pts) == 0 {
		return
	}
	px, py := b.toDots(pts[0].X, pts[0].Y)
	b.Set(px, py)
	for _, p := range pts[1:] {
		x, y := b.toDots(p.X, p.Y)
		b.drawLine(px, py, x, y)
		px, py = x, y
	}
}

func (b *Braille) Circle(cx, cy, r float64, st Style) {
	if !b.visible(st) || r <= 0 {
		return
	}
	x0, y0 := b.toDots(cx-r, cy-r)
	x1, y1 := b.toDots(cx+r, cy+r)
	if st.Fill != nil {
		rx := float64(x1-x0) / 2
		ry := float64(y1-y0) / 2
		mx := float64(x0+x1) / 2
		my := float64(y0+y1) / 2
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				nx, ny := 0.0, 0.0
				if rx > 0 {
					nx = (float64(x) - mx) / rx
				}
				if ry > 0 {
					ny = (float64(y) - my) / ry
				}
				if nx*nx+ny*ny <= 1.0001 {
					b.Set(x, y)
				}
			}
		}
		return
	}
	const segments = 48
	pts := make([]Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		pts = append(pts, Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)})
	}
	b.Polyline(pts, st)
}

func (b *Braille) Rect(x, y, w, h float64, st Style) {
	if !b.visible(st) {
		return
	}
	x0, y0 := b.toDots(x, y)
	x1, y1 := b.toDots(x+w, y+h)
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	if st.Fill != nil {
		for yy := y0; yy <= y1; yy++ {
			for xx := x0; xx <= x1; xx++ {
				b.Set(xx, yy)
			}
		}
		return
	}
	b.drawLine(x0, y0, x1, y0)
	b.drawLine(x1, y0, x1, y1)
	b.drawLine(x1, y1, x0, y1)
	b.drawLine(x0, y1, x0, y0)
}

// Text records a label; labels are overlaid onto the grid by String.
func (b *Braille) Text(x, y float64, s string, st Style) {
	if !b.visible(st) || s == "" {
		return
	}
	dx, dy := b.toDots(x, y)
	b.labels = append(b.labels, Label{Col: dx / 2, Row: dy / 4, Text: s})
}

// Labels returns the labels placed since the last Clear.
func (b *Braille) Labels() []Label {
	out := make([]Label, len(b.labels))
	copy(out, b.labels)
	return out
}

func (b *Braille) String() string {
	rows := make([][]rune, len(b.Grid))
	for i, row := range b.Grid {
		rows[i] = append([]rune(nil), row...)
	}
	for _, l := range b.labels {
		if l.Row < 0 || l.Row >= b.Rows {
			continue
		}
		col := l.Col
		for _, r := range l.Text {
			if col >= b.Cols {
				break
			}
			if col >= 0 {
				rows[l.Row][col] = r
			}
			col++
		}
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
