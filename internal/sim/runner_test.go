package sim

import (
	"bytes"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/visualearn/internal/canvas"
	"github.com/san-kum/visualearn/internal/logging"
)

var _ Simulation = (*Runner[lineState])(nil)

var _ = Describe("Runner", func() {
	var (
		sched    *ManualScheduler
		surface  *canvas.Recorder
		recorder *countingRecorder
		runner   *Runner[lineState]
	)

	BeforeEach(func() {
		sched = NewManualScheduler()
		surface = canvas.NewRecorder()
		recorder = &countingRecorder{}
		runner = NewRunner[lineState](lineModel{}, drawLine, sched, WithRecorder(recorder))
		runner.Attach(surface)
	})

	It("starts paused at zero with default parameters", func() {
		Expect(runner.Playing()).To(BeFalse())
		Expect(runner.Time()).To(BeZero())
		Expect(runner.Params().Values().Get("speed")).To(Equal(2.0))
		Expect(sched.Pending()).To(BeZero())
	})

	Describe("Play", func() {
		It("advances by the fixed step once per frame", func() {
			runner.Play()
			Expect(sched.Pending()).To(Equal(1))

			for i := 0; i < 4; i++ {
				Expect(sched.Fire()).To(Equal(1))
			}
			Expect(runner.Time()).To(Equal(2.0))
			Expect(runner.Frames()).To(Equal(4))
			Expect(surface.Clears).To(Equal(4))
			Expect(recorder.rendered).To(Equal(4))
		})

		It("keeps a single chain when called twice", func() {
			runner.Play()
			runner.Play()
			Expect(sched.Pending()).To(Equal(1))
			sched.Fire()
			Expect(runner.Time()).To(Equal(0.5))
		})

		It("applies parameter changes on the next frame", func() {
			runner.Play()
			sched.Fire()
			runner.Params().Set("speed", 4)
			sched.Fire()
			x, ok := Lookup(runner.State(), "x")
			Expect(ok).To(BeTrue())
			Expect(x).To(Equal(4.0))
			Expect(surface.Ops[0].Points[0].X).To(Equal(2.0))
		})
	})

	Describe("Pause", func() {
		It("freezes time and cancels the pending frame", func() {
			runner.Play()
			sched.Fire()
			sched.Fire()
			runner.Pause()

			Expect(sched.Pending()).To(BeZero())
			before := runner.Time()
			for i := 0; i < 10; i++ {
				sched.Fire()
			}
			Expect(runner.Time()).To(Equal(before))
			Expect(runner.Playing()).To(BeFalse())
		})

		It("resumes from the retained time", func() {
			runner.Play()
			sched.Fire()
			runner.Pause()
			runner.Play()
			sched.Fire()
			Expect(runner.Time()).To(Equal(1.0))
		})

		It("drops a stale callback after a quick pause and play", func() {
			runner.Play()
			runner.Pause()
			runner.Play()
			Expect(sched.Pending()).To(Equal(1))
			Expect(sched.Fire()).To(Equal(1))
			Expect(runner.Time()).To(Equal(0.5))
		})
	})

	Describe("Reset", func() {
		It("returns to zero and stops", func() {
			runner.Play()
			sched.Fire()
			sched.Fire()
			runner.Reset()

			Expect(runner.Time()).To(BeZero())
			Expect(runner.Playing()).To(BeFalse())
			Expect(sched.Pending()).To(BeZero())
		})

		It("is idempotent", func() {
			runner.Play()
			sched.Fire()
			runner.Reset()
			first := runner.Clock()
			runner.Reset()
			Expect(runner.Clock()).To(Equal(first))
		})

		It("keeps parameters", func() {
			runner.Params().Set("speed", 7)
			runner.Reset()
			Expect(runner.Params().Values().Get("speed")).To(Equal(7.0))
		})
	})

	Describe("missing surface", func() {
		It("skips the frame without advancing or re-arming", func() {
			runner.Detach()
			runner.Play()
			Expect(sched.Fire()).To(Equal(1))

			Expect(runner.Time()).To(BeZero())
			Expect(sched.Pending()).To(BeZero())
			Expect(recorder.skipped).To(Equal(1))
			Expect(runner.Playing()).To(BeTrue())
		})

		It("resumes when a surface is attached", func() {
			runner.Detach()
			runner.Play()
			sched.Fire()

			runner.Attach(surface)
			Expect(sched.Pending()).To(Equal(1))
			sched.Fire()
			Expect(runner.Time()).To(Equal(0.5))
		})

		It("reports no redraw", func() {
			runner.Detach()
			Expect(runner.Redraw()).To(BeFalse())
		})
	})

	Describe("Close", func() {
		It("cancels the chain and never renders again", func() {
			runner.Play()
			sched.Fire()
			runner.Close()

			Expect(sched.Pending()).To(BeZero())
			Expect(sched.Fire()).To(BeZero())

			runner.Play()
			runner.Attach(surface)
			Expect(sched.Pending()).To(BeZero())
			Expect(runner.Redraw()).To(BeFalse())
			Expect(runner.Frames()).To(Equal(1))
		})
	})

	It("wraps looping clocks", func() {
		runner.Params().Set("limit", 1)
		runner.Play()
		sched.Fire()
		sched.Fire()
		Expect(runner.Time()).To(BeZero())
		Expect(recorder.wraps).To(Equal(1))
	})

	It("notifies observers with the drawn state", func() {
		var times []float64
		runner.AddObserver(ObserverFunc(func(t float64, obs Observation) {
			times = append(times, t)
			Expect(obs.(lineState).T).To(Equal(t))
		}))
		runner.Play()
		sched.Fire()
		sched.Fire()
		Expect(times).To(Equal([]float64{0, 0.5}))
	})

	It("redraws without advancing", func() {
		runner.Seek(3)
		Expect(runner.Redraw()).To(BeTrue())
		Expect(runner.Time()).To(Equal(3.0))
		Expect(surface.Ops[0].Points[0].X).To(Equal(6.0))
	})

	It("reports the per-frame step", func() {
		Expect(runner.Step()).To(Equal(0.5))
	})

	It("clamps negative seeks", func() {
		runner.Seek(-5)
		Expect(runner.Time()).To(BeZero())
	})

	It("treats non-finite seeks as zero", func() {
		for _, t := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
			runner.Seek(4)
			runner.Seek(t)
			Expect(runner.Time()).To(BeZero())
		}
	})

	It("records playback transitions", func() {
		runner.Play()
		runner.Pause()
		runner.Reset()
		runner.Close()
		Expect(recorder.events).To(Equal([]string{"play", "pause", "reset", "close"}))
	})

	It("logs lifecycle events", func() {
		var buf bytes.Buffer
		r := NewRunner[lineState](lineModel{}, drawLine, sched, WithLogger(logging.New(&buf, "debug")))
		r.Play()
		Expect(buf.String()).To(ContainSubstring(`"event":"play"`))
		Expect(buf.String()).To(ContainSubstring(`"sim":"line"`))
	})
})

var _ = Describe("determinism", func() {
	It("renders the same state for the same time and parameters", func() {
		a := NewRunner[lineState](lineModel{}, drawLine, NewManualScheduler())
		b := NewRunner[lineState](lineModel{}, drawLine, NewManualScheduler())
		a.Seek(12.5)
		b.Seek(12.5)
		Expect(a.State()).To(Equal(b.State()))
	})
})
