package scene

import (
	"github.com/san-kum/visualearn/internal/canvas"
	"github.com/san-kum/visualearn/internal/params"
	"github.com/san-kum/visualearn/internal/physics"
)

// Projectile draws the ground, the dotted path, the ball with its velocity
// components, the key points and the flight summary.
func Projectile(s canvas.Surface, st physics.ProjectileState, _ params.Values) {
	w, _ := s.Size()
	s.Line(0, physics.GroundY, w, physics.GroundY, stroke(charcoal, 2))

	for _, p := range st.Trace() {
		s.Circle(p.X, p.Y, 1, fill(grey))
	}

	if st.Y <= physics.GroundY {
		s.Circle(st.X, st.Y, 10, canvas.Style{Fill: blue, Stroke: navy, Width: 2})
		s.Line(st.X, st.Y, st.X+st.VX*physics.VectorScale, st.Y, stroke(lime, 2))
		s.Line(st.X, st.Y, st.X, st.Y-st.VYNow*physics.VectorScale, stroke(red, 2))
	}

	s.Circle(physics.LaunchX, physics.GroundY, 5, fill(ink))
	lx, ly := st.Landing()
	s.Circle(lx, ly, 5, fill(ink))
	ax, ay := st.Apex()
	s.Circle(ax, ay, 5, fill(ink))

	label(s, w-150, 30, "Range: %.1f m", st.Range)
	label(s, w-150, 55, "Max Height: %.1f m", st.MaxHeight)
	label(s, w-150, 80, "Flight Time: %.1f s", st.Flight)
	label(s, 20, 30, "Time: %.1f s", st.T)
}
