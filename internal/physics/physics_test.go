package physics

import (
	"math"
	"testing"

	"github.com/san-kum/visualearn/internal/params"
	"github.com/san-kum/visualearn/internal/sim"
)

func defaults(specs []params.Spec) params.Values {
	return params.NewSet(specs).Values()
}

func with(v params.Values, kv map[string]float64) params.Values {
	out := make(params.Values, len(v))
	for k, x := range v {
		out[k] = x
	}
	for k, x := range kv {
		out[k] = x
	}
	return out
}

func TestDefaultsWithinRange(t *testing.T) {
	models := []interface{ Params() []params.Spec }{
		Pendulum{}, Wave{}, Doppler{}, Projectile{}, Relative{}, LewisBond{},
	}
	for _, m := range models {
		for _, sp := range m.Params() {
			if !sp.Contains(sp.Default) {
				t.Errorf("%s default %v outside [%v, %v]", sp.Name, sp.Default, sp.Min, sp.Max)
			}
			if sp.Step <= 0 {
				t.Errorf("%s has no step", sp.Name)
			}
		}
	}
}

func TestEvaluatorsAreFinite(t *testing.T) {
	times := []float64{0, 0.016, 1, 37.5, 1000}
	check := func(name string, obs sim.Observation) {
		if err := sim.Validate(obs); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	for _, tm := range times {
		check("pendulum", Pendulum{}.Evaluate(tm, defaults(Pendulum{}.Params())))
		check("wave", Wave{}.Evaluate(tm, defaults(Wave{}.Params())))
		check("doppler", Doppler{}.Evaluate(tm, defaults(Doppler{}.Params())))
		check("projectile", Projectile{}.Evaluate(tm, defaults(Projectile{}.Params())))
		check("relative", Relative{}.Evaluate(tm, defaults(Relative{}.Params())))
		check("lewisbond", LewisBond{}.Evaluate(tm, defaults(LewisBond{}.Params())))
	}
}

func TestPendulumInitialState(t *testing.T) {
	s := Pendulum{}.Evaluate(0, defaults(Pendulum{}.Params()))

	if math.Abs(s.Theta-radians(30)) > 1e-12 {
		t.Errorf("expected theta %v, got %v", radians(30), s.Theta)
	}
	wantX := PendulumOriginX + 150*math.Sin(s.Theta)
	wantY := PendulumOriginY + 150*math.Cos(s.Theta)
	if math.Abs(s.BobX-wantX) > 1e-9 || math.Abs(s.BobY-wantY) > 1e-9 {
		t.Errorf("unexpected bob (%v, %v)", s.BobX, s.BobY)
	}
	if s.ThetaDot != -0.01*s.Theta {
		t.Errorf("expected damping-only velocity at t=0, got %v", s.ThetaDot)
	}
}

func TestPendulumEnergyConservedWithoutDamping(t *testing.T) {
	tests := []struct {
		name string
		kv   map[string]float64
	}{
		{"default", map[string]float64{"damping": 0}},
		{"long", map[string]float64{"damping": 0, "length": 300, "angle": 90}},
		{"strong gravity", map[string]float64{"damping": 0, "gravity": 20, "length": 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := with(defaults(Pendulum{}.Params()), tt.kv)
			e0 := Pendulum{}.Evaluate(0, p).Energy()
			for i := 1; i <= 2000; i++ {
				e := Pendulum{}.Evaluate(float64(i)*0.016, p).Energy()
				if math.Abs(e-e0) > 1e-9*e0 {
					t.Fatalf("energy drifted at frame %d: %v vs %v", i, e, e0)
				}
			}
		})
	}
}

func TestPendulumEnergyDecaysWithDamping(t *testing.T) {
	p := with(defaults(Pendulum{}.Params()), map[string]float64{"damping": 0.1})
	e0 := Pendulum{}.Evaluate(0, p).Energy()
	e := Pendulum{}.Evaluate(20, p).Energy()
	if e >= e0 {
		t.Errorf("expected energy loss, %v >= %v", e, e0)
	}
}

func TestPendulumDegenerateLength(t *testing.T) {
	p := with(defaults(Pendulum{}.Params()), map[string]float64{"length": 0})
	s := Pendulum{}.Evaluate(5, p)
	if s.Theta != 0 || s.ThetaDot != 0 || s.Energy() != 0 {
		t.Errorf("expected rest state, got %+v", s)
	}
	if s.BobX != PendulumOriginX || s.BobY != PendulumOriginY {
		t.Errorf("expected bob at pivot, got (%v, %v)", s.BobX, s.BobY)
	}
}

func TestWave(t *testing.T) {
	p := defaults(Wave{}.Params())
	s := Wave{}.Evaluate(0, p)

	if len(s.Ys) != Width {
		t.Fatalf("expected %d samples, got %d", Width, len(s.Ys))
	}
	if s.Ys[0] != Height/2 {
		t.Errorf("expected centre at x=0, got %v", s.Ys[0])
	}

	s = Wave{}.Evaluate(10, p)
	want := Height/2 - 50*math.Sin(100*0.01+10*5*0.02)
	if math.Abs(s.Ys[100]-want) > 1e-9 {
		t.Errorf("expected %v at x=100, got %v", want, s.Ys[100])
	}

	peak, _ := sim.Lookup(s, "peak")
	if peak > 50+1e-9 {
		t.Errorf("peak %v exceeds amplitude", peak)
	}
}

func TestWaveDamping(t *testing.T) {
	p := with(defaults(Wave{}.Params()), map[string]float64{"damping": 0.5})
	s := Wave{}.Evaluate(7, p)
	env := 50 * math.Exp(-0.5*700/100.0)
	if math.Abs(s.Displacement(700)) > env+1e-9 {
		t.Errorf("displacement %v exceeds envelope %v", s.Displacement(700), env)
	}
}

func TestDopplerShift(t *testing.T) {
	base := defaults(Doppler{}.Params())
	tests := []struct {
		name   string
		t      float64
		kv     map[string]float64
		higher bool
		lower  bool
	}{
		{"approaching from the left", 0, map[string]float64{"direction": 1}, true, false},
		{"receding to the left", 0, map[string]float64{"direction": -1}, false, true},
		{"receding after passing", 1800, map[string]float64{"direction": 1}, false, true},
		{"stationary source", 50, map[string]float64{"sourceSpeed": 0}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Doppler{}.Evaluate(tt.t, with(base, tt.kv))
			if got := s.Perceived > s.Frequency; got != tt.higher {
				t.Errorf("higher: expected %v, got %v (perceived %v, source %v)", tt.higher, got, s.Perceived, s.Frequency)
			}
			if got := s.Perceived < s.Frequency; got != tt.lower {
				t.Errorf("lower: expected %v, got %v (perceived %v, source %v)", tt.lower, got, s.Perceived, s.Frequency)
			}
		})
	}
}

func TestDopplerGeometry(t *testing.T) {
	s := Doppler{}.Evaluate(0, defaults(Doppler{}.Params()))
	if s.SourceX != -200 {
		t.Errorf("expected source at -200, got %v", s.SourceX)
	}
	if s.ObserverX != 640 {
		t.Errorf("expected observer at 640, got %v", s.ObserverX)
	}
	if len(s.Wavefronts) != 0 {
		t.Errorf("expected no fronts at t=0, got %d", len(s.Wavefronts))
	}
	if s.Pitch() != "Higher pitch" {
		t.Errorf("unexpected pitch %q", s.Pitch())
	}

	s = Doppler{}.Evaluate(100, defaults(Doppler{}.Params()))
	if len(s.Wavefronts) != 5 {
		t.Fatalf("expected 5 fronts, got %d", len(s.Wavefronts))
	}
	if s.Wavefronts[0].Radius != 50 || math.Abs(s.Wavefronts[0].Alpha-(1-50.0/300)) > 1e-12 {
		t.Errorf("unexpected first front %+v", s.Wavefronts[0])
	}
	for _, w := range s.Wavefronts {
		if w.Radius <= 0 || w.Radius >= 300 {
			t.Errorf("front radius %v out of range", w.Radius)
		}
	}
}

func TestProjectileLaunch(t *testing.T) {
	l := NewLaunch(20, 45, 9.8)
	if math.Abs(l.Range-40.8) > 0.05 {
		t.Errorf("expected range ~40.8, got %v", l.Range)
	}
	if math.Abs(l.Flight-2.88) > 0.01 {
		t.Errorf("expected flight ~2.88, got %v", l.Flight)
	}
	if math.Abs(l.MaxHeight-10.2) > 0.05 {
		t.Errorf("expected max height ~10.2, got %v", l.MaxHeight)
	}

	x, y := l.Landing()
	if math.Abs(x-(LaunchX+l.Range*PixelsPerMeter)) > 1e-9 || y != GroundY {
		t.Errorf("unexpected landing (%v, %v)", x, y)
	}
	px, py := l.Position(l.Flight)
	if math.Abs(px-x) > 1e-9 || math.Abs(py-GroundY) > 1e-9 {
		t.Errorf("position at flight end (%v, %v) should be the landing point", px, py)
	}
}

func TestProjectileTrace(t *testing.T) {
	l := NewLaunch(20, 45, 9.8)
	pts := l.Trace()
	if len(pts) != 29 {
		t.Errorf("expected 29 trace points, got %d", len(pts))
	}
	for _, p := range pts {
		if p.Y > GroundY+1e-9 {
			t.Errorf("trace point below ground: %+v", p)
		}
	}
}

func TestProjectileWrap(t *testing.T) {
	p := with(defaults(Projectile{}.Params()), map[string]float64{"velocity": 20, "angle": 45})

	if _, wrapped := (Projectile{}).Wrap(1, p); wrapped {
		t.Error("should not wrap mid-flight")
	}
	next, wrapped := Projectile{}.Wrap(3, p)
	if !wrapped || next != 0 {
		t.Errorf("expected wrap to 0, got %v %v", next, wrapped)
	}

	fast := with(p, map[string]float64{"timeScale": 2})
	if got := (Projectile{}).Step(fast); math.Abs(got-0.032) > 1e-12 {
		t.Errorf("expected step 0.032, got %v", got)
	}
}

func TestProjectileZeroGravity(t *testing.T) {
	p := with(defaults(Projectile{}.Params()), map[string]float64{"gravity": 0})
	s := Projectile{}.Evaluate(1, p)
	if s.Flight != 0 || s.Range != 0 {
		t.Errorf("expected zero-length flight, got %+v", s.Launch)
	}
	if err := sim.Validate(s); err != nil {
		t.Error(err)
	}
	if _, wrapped := (Projectile{}).Wrap(0, p); !wrapped {
		t.Error("zero-length flight should wrap immediately")
	}
}

func TestRelative(t *testing.T) {
	s := Relative{}.Evaluate(1, defaults(Relative{}.Params()))
	if s.ObjectX != 200 || s.ObserverX != 140 {
		t.Errorf("unexpected positions %v %v", s.ObjectX, s.ObserverX)
	}
	if math.Abs(s.Relative-3) > 1e-12 {
		t.Errorf("expected relative speed 3, got %v", s.Relative)
	}
}

func TestLewisBond(t *testing.T) {
	p := defaults(LewisBond{}.Params())
	s := LewisBond{}.Evaluate(0, p)
	if s.PairVisibility != 0.5 || s.PairX != Width/2 {
		t.Errorf("unexpected state %+v", s)
	}
	s = LewisBond{}.Evaluate(math.Pi/4, p)
	if math.Abs(s.PairVisibility-1) > 1e-12 {
		t.Errorf("expected full visibility, got %v", s.PairVisibility)
	}
}

func TestDeterminism(t *testing.T) {
	p := defaults(Pendulum{}.Params())
	a := Pendulum{}.Evaluate(3.3, p)
	b := Pendulum{}.Evaluate(3.3, p)
	if a != b {
		t.Errorf("pendulum not deterministic: %+v vs %+v", a, b)
	}

	w1 := Wave{}.Evaluate(42, defaults(Wave{}.Params()))
	w2 := Wave{}.Evaluate(42, defaults(Wave{}.Params()))
	for i := range w1.Ys {
		if w1.Ys[i] != w2.Ys[i] {
			t.Fatalf("wave differs at column %d", i)
		}
	}
}
