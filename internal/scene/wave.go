package scene

import (
	"github.com/san-kum/visualearn/internal/canvas"
	"github.com/san-kum/visualearn/internal/params"
	"github.com/san-kum/visualearn/internal/physics"
)

// Wave draws the centre line, the wave, and the amplitude markers.
func Wave(s canvas.Surface, st physics.WaveState, _ params.Values) {
	w, h := s.Size()
	s.Line(0, st.CenterY, w, st.CenterY, stroke(grey, 1))

	pts := make([]canvas.Point, len(st.Ys)+1)
	pts[0] = canvas.Point{X: 0, Y: st.CenterY}
	for x, y := range st.Ys {
		pts[x+1] = canvas.Point{X: float64(x), Y: y}
	}
	s.Polyline(pts, stroke(blue, 3))

	s.Line(50, 50, 50, h-50, stroke(grey, 1))
	top, bottom := st.CenterY-st.Amplitude, st.CenterY+st.Amplitude
	s.Line(40, top, 60, top, stroke(salmon, 1))
	s.Line(40, bottom, 60, bottom, stroke(salmon, 1))

	s.Text(65, top, "Amplitude", text(14))
	s.Text(200, st.CenterY+80, "Wavelength", text(14))
	s.Text(w-250, st.CenterY-30, "Direction of wave propagation →", text(14))
}
