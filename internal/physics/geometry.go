package physics

import (
	"math"

	"github.com/san-kum/visualearn/internal/canvas"
)

// Surface size every model lays itself out on.
const (
	Width  = canvas.Width
	Height = canvas.Height
)

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
