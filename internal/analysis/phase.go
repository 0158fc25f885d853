package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/visualearn/internal/canvas"
	"github.com/san-kum/visualearn/internal/experiment"
)

// PhasePortrait2D holds one recorded field plotted against another.
type PhasePortrait2D struct {
	XField, YField string
	Points         []canvas.Point
}

func columns(res *experiment.Result, names ...string) ([][]float64, error) {
	out := make([][]float64, len(names))
	for i, name := range names {
		col, ok := res.Column(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
		out[i] = col
	}
	return out, nil
}

// NewPhasePortrait pairs the xField and yField values of every frame.
func NewPhasePortrait(res *experiment.Result, xField, yField string) (*PhasePortrait2D, error) {
	cols, err := columns(res, xField, yField)
	if err != nil {
		return nil, err
	}

	portrait := &PhasePortrait2D{
		XField: xField,
		YField: yField,
		Points: make([]canvas.Point, len(cols[0])),
	}
	for i := range cols[0] {
		portrait.Points[i] = canvas.Point{X: cols[0][i], Y: cols[1][i]}
	}
	return portrait, nil
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y

	for _, p := range portrait.Points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			grid[row][col] = '•'
		}
	}

	// axes, where they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && grid[row][col] == ' ' {
				grid[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && grid[row][col] == ' ' {
				grid[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// PoincareSection records points where a field crosses a threshold upward.
type PoincareSection struct {
	Points []canvas.Point
}

// NewPoincareSection samples (xField, yField) at each frame where
// crossField passes threshold going up.
func NewPoincareSection(res *experiment.Result, crossField string, threshold float64, xField, yField string) (*PoincareSection, error) {
	cols, err := columns(res, crossField, xField, yField)
	if err != nil {
		return nil, err
	}

	section := &PoincareSection{Points: make([]canvas.Point, 0)}
	cross := cols[0]
	for i := 1; i < len(cross); i++ {
		if cross[i-1] < threshold && cross[i] >= threshold {
			section.Points = append(section.Points, canvas.Point{X: cols[1][i], Y: cols[2][i]})
		}
	}
	return section, nil
}

// PoincareSectionToASCII converts section data to ASCII plot
func PoincareSectionToASCII(section *PoincareSection, width, height int) string {
	if section == nil || len(section.Points) == 0 {
		return "No crossings detected"
	}
	return PhasePortraitToASCII(&PhasePortrait2D{Points: section.Points}, width, height)
}
