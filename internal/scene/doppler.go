package scene

import (
	"github.com/san-kum/visualearn/internal/canvas"
	"github.com/san-kum/visualearn/internal/params"
	"github.com/san-kum/visualearn/internal/physics"
)

const sourceRadius = 15.0

// Doppler draws the source, its fading wavefronts, the listener and the
// frequency readouts.
func Doppler(s canvas.Surface, st physics.DopplerState, _ params.Values) {
	w, _ := s.Size()
	s.Line(0, st.CenterY, w, st.CenterY, stroke(grey, 1))

	s.Circle(st.SourceX, st.CenterY, sourceRadius, canvas.Style{Fill: blue, Stroke: darkBlue, Width: 2})

	ear := earOutline(st.ObserverX, st.CenterY)
	s.Polyline(ear, canvas.Style{Stroke: darkAmber, Width: 2})
	s.Line(ear[len(ear)-1].X, ear[len(ear)-1].Y, ear[0].X, ear[0].Y, stroke(amber, 2))

	for _, f := range st.Wavefronts {
		s.Circle(st.SourceX, st.CenterY, f.Radius, canvas.Style{Stroke: blue, Width: 2, Fade: 1 - f.Alpha})
	}

	label(s, 50, 50, "Source Frequency: %.1f Hz", st.Frequency)
	label(s, 50, 80, "Perceived Frequency: %.1f Hz", st.Perceived)
	label(s, 50, 110, "Effect: %s", st.Pitch())
}

// earOutline samples the quadratic curve from (x-10, y-20) through control
// point (x+15, y) to (x-10, y+20).
func earOutline(x, y float64) []canvas.Point {
	const n = 16
	p0 := canvas.Point{X: x - 10, Y: y - 20}
	c := canvas.Point{X: x + 15, Y: y}
	p1 := canvas.Point{X: x - 10, Y: y + 20}
	pts := make([]canvas.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / n
		u := 1 - t
		pts = append(pts, canvas.Point{
			X: u*u*p0.X + 2*u*t*c.X + t*t*p1.X,
			Y: u*u*p0.Y + 2*u*t*c.Y + t*t*p1.Y,
		})
	}
	return pts
}
