package scene

import (
	"github.com/san-kum/visualearn/internal/canvas"
	"github.com/san-kum/visualearn/internal/params"
	"github.com/san-kum/visualearn/internal/physics"
)

const (
	energyBarX     = 50.0
	energyBarY     = 400.0
	energyBarH     = 20.0
	energyBarScale = 10.0
	bobRadius      = 20.0
)

// Pendulum draws the rod, the bob and the stacked KE/PE bars.
func Pendulum(s canvas.Surface, st physics.PendulumState, _ params.Values) {
	s.Line(physics.PendulumOriginX, physics.PendulumOriginY, st.BobX, st.BobY, stroke(charcoal, 3))
	s.Circle(physics.PendulumOriginX, physics.PendulumOriginY, 4, fill(charcoal))
	s.Circle(st.BobX, st.BobY, bobRadius, canvas.Style{Fill: blue, Stroke: charcoal, Width: 3})

	ke := st.KEBar * energyBarScale
	pe := st.PEBar * energyBarScale
	s.Rect(energyBarX, energyBarY, ke, energyBarH, fill(green))
	s.Rect(energyBarX+ke, energyBarY, pe, energyBarH, fill(amber))
	s.Rect(energyBarX, energyBarY, ke+pe, energyBarH, stroke(ink, 1))
	s.Text(energyBarX, energyBarY-10, "Energy Visualization (KE + PE)", text(14))
}
