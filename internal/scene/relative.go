package scene

import (
	"github.com/san-kum/visualearn/internal/canvas"
	"github.com/san-kum/visualearn/internal/params"
	"github.com/san-kum/visualearn/internal/physics"
)

const boxSize = 30.0

func Relative(s canvas.Surface, st physics.RelativeState, _ params.Values) {
	w, _ := s.Size()
	s.Line(0, physics.RelativeGround, w, physics.RelativeGround, stroke(slate, 1))

	s.Rect(st.ObjectX, physics.RelativeGround-boxSize, boxSize, boxSize, fill(blue))
	s.Text(st.ObjectX, physics.RelativeGround-35, "Object", text(12))

	obsY := physics.RelativeGround + 20
	s.Rect(st.ObserverX, obsY, boxSize, boxSize, fill(green))
	s.Text(st.ObserverX, obsY+50, "Observer", text(12))

	arrowX := st.ObserverX + boxSize/2
	s.Line(arrowX, obsY, arrowX+st.Relative*20, obsY, stroke(amber, 3))
	label(s, arrowX, obsY-10, "Relative Speed: %.1f m/s", st.Relative)
}
