package server

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/san-kum/visualearn/internal/telemetry"
)

var _ = Describe("Server", func() {
	var (
		srv Server
		reg *prometheus.Registry
	)

	BeforeEach(func() {
		reg = prometheus.NewRegistry()
		srv = NewServer(&Options{
			DisableReqLogs: true,
			Gatherer:       reg,
			Metrics:        telemetry.New(reg),
			Logger:         zerolog.Nop(),
		})
	})

	do := func(method, target, body string) *httptest.ResponseRecorder {
		var r io.Reader
		if body != "" {
			r = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, target, r)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		return rec
	}

	decode := func(rec *httptest.ResponseRecorder, v any) {
		ExpectWithOffset(1, json.Unmarshal(rec.Body.Bytes(), v)).To(Succeed())
	}

	It("greets on the root", func() {
		rec := do(http.MethodGet, "/", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("VisualEarn"))
	})

	Describe("simulations", func() {
		It("lists every registered simulation", func() {
			rec := do(http.MethodGet, "/v1/simulations", "")
			Expect(rec.Code).To(Equal(http.StatusOK))

			var out []simulationJSON
			decode(rec, &out)
			names := make([]string, 0, len(out))
			for _, s := range out {
				names = append(names, s.Name)
			}
			Expect(names).To(ContainElements("pendulum", "wave", "doppler", "projectile", "relative", "lewisbond"))
		})

		It("describes one simulation with its parameters", func() {
			rec := do(http.MethodGet, "/v1/simulations/pendulum/", "")
			Expect(rec.Code).To(Equal(http.StatusOK))

			var out simulationJSON
			decode(rec, &out)
			Expect(out.Name).To(Equal("pendulum"))
			Expect(out.Params).NotTo(BeEmpty())
			Expect(out.Params[0].Name).To(Equal("angle"))
			Expect(out.Topics).To(ContainElement("physics/mechanics/pendulum"))
		})

		It("returns 404 for an unknown simulation", func() {
			rec := do(http.MethodGet, "/v1/simulations/nope", "")
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(rec.Body.String()).To(ContainSubstring("error"))
		})
	})

	Describe("state", func() {
		It("evaluates the model at the requested time and parameters", func() {
			rec := do(http.MethodGet, "/v1/simulations/pendulum/state?t=0&angle=30", "")
			Expect(rec.Code).To(Equal(http.StatusOK))

			var out stateJSON
			decode(rec, &out)
			Expect(out.Simulation).To(Equal("pendulum"))
			Expect(out.Params).To(HaveKeyWithValue("angle", 30.0))
			Expect(out.Step).To(BeNumerically(">", 0))

			var theta float64
			for _, f := range out.Fields {
				if f.Name == "theta" {
					theta = f.Value
				}
			}
			Expect(theta).To(BeNumerically("~", 30*math.Pi/180, 1e-9))
		})

		It("rejects an out-of-range parameter", func() {
			rec := do(http.MethodGet, "/v1/simulations/pendulum/state?angle=500", "")
			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var out map[string]any
			decode(rec, &out)
			Expect(out).To(HaveKeyWithValue("param", "angle"))
		})

		It("rejects an unknown parameter", func() {
			rec := do(http.MethodGet, "/v1/simulations/pendulum/state?mass=2", "")
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		DescribeTable("rejects non-finite values",
			func(target string) {
				rec := do(http.MethodGet, target, "")
				Expect(rec.Code).To(Equal(http.StatusBadRequest))
				Expect(rec.Body.String()).To(ContainSubstring("finite"))
			},
			Entry("infinite time", "/v1/simulations/pendulum/state?t=Inf"),
			Entry("projectile time", "/v1/simulations/projectile/state?t=%2BInf"),
			Entry("NaN time", "/v1/simulations/wave/state?t=NaN"),
			Entry("NaN parameter", "/v1/simulations/pendulum/state?angle=NaN"),
			Entry("svg frame", "/v1/simulations/pendulum/frame.svg?t=Inf"),
			Entry("png frame", "/v1/simulations/doppler/frame.png?t=-Inf"),
		)

		It("rejects a non-numeric value", func() {
			rec := do(http.MethodGet, "/v1/simulations/pendulum/state?t=soon", "")
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("frames", func() {
		It("renders SVG", func() {
			rec := do(http.MethodGet, "/v1/simulations/wave/frame.svg?t=1", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(HavePrefix("image/svg+xml"))
			Expect(rec.Body.String()).To(ContainSubstring("<svg"))
		})

		It("renders PNG", func() {
			rec := do(http.MethodGet, "/v1/simulations/projectile/frame.png", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(Equal("image/png"))
			Expect(rec.Body.Bytes()[:4]).To(Equal([]byte("\x89PNG")))
		})
	})

	Describe("runs", func() {
		It("runs headless and returns the trace", func() {
			rec := do(http.MethodPost, "/v1/simulations/pendulum/runs", `{"frames": 20, "params": {"angle": 45}}`)
			Expect(rec.Code).To(Equal(http.StatusCreated))

			var out map[string]any
			decode(rec, &out)
			Expect(out).To(HaveKey("rows"))
			Expect(out["rows"]).To(HaveLen(20))
		})

		It("rejects zero frames", func() {
			rec := do(http.MethodPost, "/v1/simulations/pendulum/runs", `{"frames": 0}`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("caps the number of frames", func() {
			rec := do(http.MethodPost, "/v1/simulations/pendulum/runs", `{"frames": 50000}`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects malformed JSON", func() {
			rec := do(http.MethodPost, "/v1/simulations/pendulum/runs", `{"frames":`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("topics", func() {
		It("lists the catalog", func() {
			rec := do(http.MethodGet, "/v1/topics", "")
			Expect(rec.Code).To(Equal(http.StatusOK))

			var out []topicJSON
			decode(rec, &out)
			Expect(out).NotTo(BeEmpty())
		})

		It("resolves a topic path", func() {
			rec := do(http.MethodGet, "/v1/topics/physics/motion/projectile-motion", "")
			Expect(rec.Code).To(Equal(http.StatusOK))

			var out topicJSON
			decode(rec, &out)
			Expect(out.Simulation).To(Equal("projectile"))
		})

		It("returns 404 for a missing topic", func() {
			rec := do(http.MethodGet, "/v1/topics/physics/nothing/here", "")
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	It("exposes prometheus metrics", func() {
		Expect(do(http.MethodGet, "/v1/simulations/pendulum/state", "").Code).To(Equal(http.StatusOK))

		rec := do(http.MethodGet, "/metrics", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("visualearn_playback_transitions_total"))
	})
})
