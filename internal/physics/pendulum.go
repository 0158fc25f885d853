package physics

import (
	"math"

	"github.com/san-kum/visualearn/internal/params"
	"github.com/san-kum/visualearn/internal/sim"
)

// Pivot of the pendulum on the surface.
const (
	PendulumOriginX = 400.0
	PendulumOriginY = 100.0
)

// PendulumState is the pendulum at one instant.
type PendulumState struct {
	T        float64
	Theta    float64 // rad
	ThetaDot float64 // rad/s
	Omega    float64 // natural angular frequency
	BobX     float64
	BobY     float64

	// KE and PE use the harmonic model the motion solves, so their sum is
	// constant when undamped.
	KE float64
	PE float64

	// Bar values sized for the stacked energy bars.
	KEBar float64
	PEBar float64
}

func (s PendulumState) Energy() float64 { return s.KE + s.PE }

func (s PendulumState) Fields() []sim.Field {
	return []sim.Field{
		{Name: "theta", Value: s.Theta, Unit: "rad"},
		{Name: "theta_deg", Value: degrees(s.Theta), Unit: "°"},
		{Name: "theta_dot", Value: s.ThetaDot, Unit: "rad/s"},
		{Name: "omega", Value: s.Omega, Unit: "rad/s"},
		{Name: "bob_x", Value: s.BobX, Unit: "px"},
		{Name: "bob_y", Value: s.BobY, Unit: "px"},
		{Name: "ke", Value: s.KE},
		{Name: "pe", Value: s.PE},
		{Name: "energy", Value: s.Energy()},
		{Name: "ke_bar", Value: s.KEBar},
		{Name: "pe_bar", Value: s.PEBar},
	}
}

// Pendulum swings with θ(t) = θ₀·e^(−damping·t)·cos(ω·t), ω = √(g/L).
type Pendulum struct{}

func (Pendulum) Name() string { return "pendulum" }

func (Pendulum) Params() []params.Spec {
	return []params.Spec{
		{Name: "angle", Label: "Initial Angle", Unit: "°", Min: 1, Max: 90, Step: 1, Default: 30},
		{Name: "length", Label: "Length", Unit: "px", Min: 50, Max: 300, Step: 5, Default: 150},
		{Name: "gravity", Label: "Gravity", Unit: "m/s²", Min: 1, Max: 20, Step: 0.1, Default: 9.8},
		{Name: "damping", Label: "Damping", Min: 0, Max: 0.1, Step: 0.001, Default: 0.01},
	}
}

func (Pendulum) Step(params.Values) float64 { return 0.016 }

func (Pendulum) Evaluate(t float64, p params.Values) PendulumState {
	length := p.Get("length")
	g := p.Get("gravity")
	d := p.Get("damping")

	s := PendulumState{T: t, BobX: PendulumOriginX, BobY: PendulumOriginY}
	if length <= 0 {
		return s
	}
	s.BobY += length

	theta0 := radians(p.Get("angle"))
	omega := math.Sqrt(math.Max(g, 0) / length)
	decay := math.Exp(-d * t)
	cos, sin := math.Cos(omega*t), math.Sin(omega*t)

	s.Omega = omega
	s.Theta = theta0 * decay * cos
	s.ThetaDot = theta0 * decay * (-d*cos - omega*sin)
	s.BobX = PendulumOriginX + length*math.Sin(s.Theta)
	s.BobY = PendulumOriginY + length*math.Cos(s.Theta)

	s.KE = 0.5 * length * length * s.ThetaDot * s.ThetaDot
	s.PE = 0.5 * g * length * s.Theta * s.Theta

	v := length * omega * math.Sin(s.Theta)
	s.KEBar = 0.5 * v * v
	s.PEBar = g * length * (1 - math.Cos(s.Theta))
	return s
}
