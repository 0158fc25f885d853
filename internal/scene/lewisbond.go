package scene

import (
	"github.com/san-kum/visualearn/internal/canvas"
	"github.com/san-kum/visualearn/internal/params"
	"github.com/san-kum/visualearn/internal/physics"
)

func LewisBond(s canvas.Surface, st physics.LewisBondState, _ params.Values) {
	s.Text(st.LeftX-20, st.CenterY, "N: ••", text(22))
	s.Text(st.RightX-10, st.CenterY, ":N", text(22))
	s.Circle(st.PairX, st.CenterY, 6, canvas.Style{Fill: green, Fade: 1 - st.PairVisibility})
}
