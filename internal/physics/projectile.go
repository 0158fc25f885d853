package physics

import (
	"math"

	"github.com/san-kum/visualearn/internal/canvas"
	"github.com/san-kum/visualearn/internal/params"
	"github.com/san-kum/visualearn/internal/sim"
)

// Screen layout of the launch.
const (
	GroundY         = 350.0
	LaunchX         = 50.0
	PixelsPerMeter  = 7.0
	traceInterval   = 0.1
	VectorScale     = 0.7
	projectileFrame = 0.016
)

// Launch holds the closed-form quantities of a drag-free launch.
type Launch struct {
	VX, VY    float64 // m/s
	Gravity   float64
	Flight    float64 // s
	MaxHeight float64 // m
	Range     float64 // m
}

// NewLaunch computes flight time, apex and range. Non-positive gravity gives
// a zero-length flight.
func NewLaunch(v0, angleDeg, g float64) Launch {
	a := radians(angleDeg)
	l := Launch{
		VX:      v0 * math.Cos(a),
		VY:      v0 * math.Sin(a),
		Gravity: g,
	}
	if g <= 0 {
		return l
	}
	l.Flight = 2 * l.VY / g
	l.MaxHeight = l.VY * l.VY / (2 * g)
	l.Range = v0 * v0 * math.Sin(2*a) / g
	return l
}

// Position returns the screen position at time t.
func (l Launch) Position(t float64) (x, y float64) {
	x = LaunchX + l.VX*t*PixelsPerMeter
	y = GroundY - (l.VY*t-0.5*l.Gravity*t*t)*PixelsPerMeter
	return x, y
}

// Apex returns the screen position of the highest point.
func (l Launch) Apex() (x, y float64) {
	if l.Gravity <= 0 {
		return LaunchX, GroundY
	}
	return LaunchX + l.VX*(l.VY/l.Gravity)*PixelsPerMeter, GroundY - l.MaxHeight*PixelsPerMeter
}

// Landing returns the screen position where the projectile lands.
func (l Launch) Landing() (x, y float64) {
	return LaunchX + l.Range*PixelsPerMeter, GroundY
}

// Trace samples the path every 0.1 s over the flight, keeping points at or
// above the ground.
func (l Launch) Trace() []canvas.Point {
	var pts []canvas.Point
	for i := 0; ; i++ {
		t := float64(i) * traceInterval
		if t > l.Flight {
			break
		}
		x, y := l.Position(t)
		if y <= GroundY {
			pts = append(pts, canvas.Point{X: x, Y: y})
		}
	}
	return pts
}

// ProjectileState is the projectile at one instant of its flight.
type ProjectileState struct {
	Launch
	T      float64
	X, Y   float64
	VYNow  float64 // vertical velocity at T, up positive
	Height float64 // m above ground
	Landed bool
}

func (s ProjectileState) Fields() []sim.Field {
	return []sim.Field{
		{Name: "x", Value: s.X, Unit: "px"},
		{Name: "y", Value: s.Y, Unit: "px"},
		{Name: "height", Value: s.Height, Unit: "m"},
		{Name: "vx", Value: s.VX, Unit: "m/s"},
		{Name: "vy", Value: s.VYNow, Unit: "m/s"},
		{Name: "range", Value: s.Range, Unit: "m"},
		{Name: "max_height", Value: s.MaxHeight, Unit: "m"},
		{Name: "flight_time", Value: s.Flight, Unit: "s"},
	}
}

// Projectile launches from the left edge and replays its flight once landed.
type Projectile struct{}

func (Projectile) Name() string { return "projectile" }

func (Projectile) Params() []params.Spec {
	return []params.Spec{
		{Name: "velocity", Label: "Initial Velocity", Unit: "m/s", Min: 10, Max: 50, Step: 1, Default: 30},
		{Name: "angle", Label: "Launch Angle", Unit: "°", Min: 5, Max: 85, Step: 1, Default: 45},
		{Name: "gravity", Label: "Gravity", Unit: "m/s²", Min: 1, Max: 20, Step: 0.1, Default: 9.8},
		{Name: "timeScale", Label: "Time Scale", Unit: "x", Min: 0.1, Max: 3, Step: 0.1, Default: 1},
	}
}

// Step is one 16 ms frame scaled by timeScale.
func (Projectile) Step(p params.Values) float64 {
	return projectileFrame * p.Get("timeScale")
}

// Wrap restarts the clock once the flight is over.
func (Projectile) Wrap(t float64, p params.Values) (float64, bool) {
	l := NewLaunch(p.Get("velocity"), p.Get("angle"), p.Get("gravity"))
	if t >= l.Flight {
		return 0, true
	}
	return t, false
}

func (Projectile) Evaluate(t float64, p params.Values) ProjectileState {
	l := NewLaunch(p.Get("velocity"), p.Get("angle"), p.Get("gravity"))
	s := ProjectileState{Launch: l, T: t}
	s.X, s.Y = l.Position(t)
	s.VYNow = l.VY - l.Gravity*t
	s.Height = (GroundY - s.Y) / PixelsPerMeter
	s.Landed = t >= l.Flight
	return s
}
