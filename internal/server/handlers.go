package server

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/san-kum/visualearn/internal/canvas"
	"github.com/san-kum/visualearn/internal/catalog"
	"github.com/san-kum/visualearn/internal/config"
	"github.com/san-kum/visualearn/internal/experiment"
	"github.com/san-kum/visualearn/internal/params"
	"github.com/san-kum/visualearn/internal/sim"
	"github.com/san-kum/visualearn/internal/storage"
)

// maxRunFrames bounds headless runs requested over HTTP.
const maxRunFrames = 10000

type handlers struct {
	reg     *experiment.Registry
	cat     *catalog.Catalog
	simOpts []sim.Option
}

type simulationJSON struct {
	Name    string        `json:"name"`
	Title   string        `json:"title"`
	Params  []params.Spec `json:"params"`
	Presets []string      `json:"presets,omitempty"`
	Topics  []string      `json:"topics,omitempty"`
}

type stateJSON struct {
	Simulation string             `json:"simulation"`
	Time       float64            `json:"t"`
	Step       float64            `json:"step"`
	Params     map[string]float64 `json:"params"`
	Fields     []sim.Field        `json:"fields"`
}

type topicJSON struct {
	Path       string `json:"path"`
	Subject    string `json:"subject"`
	Chapter    string `json:"chapter"`
	Title      string `json:"title"`
	Summary    string `json:"description,omitempty"`
	Simulation string `json:"simulation,omitempty"`
}

func (h *handlers) describe(e experiment.Entry) simulationJSON {
	out := simulationJSON{
		Name:    e.Name,
		Title:   e.Title,
		Params:  e.Specs,
		Presets: config.ListPresets(e.Name),
	}
	for _, t := range h.cat.BySimulation(e.Name) {
		out.Topics = append(out.Topics, t.Path)
	}
	return out
}

func (h *handlers) listSimulations(ctx echo.Context) error {
	names := h.reg.Names()
	out := make([]simulationJSON, 0, len(names))
	for _, name := range names {
		e, _ := h.reg.Get(name)
		out = append(out, h.describe(e))
	}
	return ctx.JSON(http.StatusOK, out)
}

func (h *handlers) getSimulation(ctx echo.Context) error {
	e, err := h.reg.Get(ctx.Param("name"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, h.describe(e))
}

// instance builds a paused simulation at the time and parameters given in
// the query string: t=<time> plus one key per parameter.
func (h *handlers) instance(ctx echo.Context) (sim.Simulation, error) {
	e, err := h.reg.Get(ctx.Param("name"))
	if err != nil {
		return nil, err
	}

	t := 0.0
	vals := make(map[string]float64)
	for key, raw := range ctx.QueryParams() {
		if len(raw) == 0 {
			continue
		}
		v, err := strconv.ParseFloat(raw[0], 64)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s: not a number", key)).SetInternal(err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s: must be finite", key))
		}
		if key == "t" {
			t = v
			continue
		}
		vals[key] = v
	}
	if t < 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "t must not be negative")
	}

	s := e.New(sim.NewManualScheduler(), h.simOpts...)
	if err := s.Params().Apply(vals); err != nil {
		s.Close()
		return nil, err
	}
	s.Seek(t)
	return s, nil
}

func (h *handlers) getState(ctx echo.Context) error {
	s, err := h.instance(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	return ctx.JSON(http.StatusOK, stateJSON{
		Simulation: s.Name(),
		Time:       s.Time(),
		Step:       s.Step(),
		Params:     s.Params().Values(),
		Fields:     s.State().Fields(),
	})
}

func (h *handlers) getFrameSVG(ctx echo.Context) error {
	s, err := h.instance(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	svg := canvas.NewSVG()
	s.Attach(svg)
	s.Redraw()
	return ctx.Blob(http.StatusOK, "image/svg+xml", []byte(svg.String()))
}

func (h *handlers) getFramePNG(ctx echo.Context) error {
	s, err := h.instance(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	img := canvas.NewImage(canvas.Width, canvas.Height)
	s.Attach(img)
	s.Redraw()

	var buf bytes.Buffer
	if _, err := img.WriteTo(&buf); err != nil {
		return err
	}
	return ctx.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// createRun runs the simulation headless for the posted scene and returns
// the recorded trace.
func (h *handlers) createRun(ctx echo.Context) error {
	cfg := config.DefaultConfig()
	if err := ctx.Bind(cfg); err != nil {
		return err
	}
	cfg.Simulation = ctx.Param("name")

	if err := config.Validate(cfg, h.reg); err != nil {
		return err
	}
	if cfg.Frames > maxRunFrames {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("frames must be at most %d", maxRunFrames))
	}

	exp, err := experiment.New(h.reg, experiment.Config{
		Simulation: cfg.Simulation,
		Frames:     cfg.Frames,
		Start:      cfg.Start,
		Params:     cfg.Params,
	}, h.simOpts...)
	if err != nil {
		return err
	}
	result, err := exp.Run(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, storage.NewExportData(result))
}

func newTopicJSON(e catalog.Entry) topicJSON {
	return topicJSON{
		Path:       e.Path,
		Subject:    e.Subject,
		Chapter:    e.Chapter,
		Title:      e.Topic.Title,
		Summary:    e.Topic.Description,
		Simulation: e.Topic.Simulation,
	}
}

func (h *handlers) listTopics(ctx echo.Context) error {
	entries := h.cat.Entries()
	out := make([]topicJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, newTopicJSON(e))
	}
	return ctx.JSON(http.StatusOK, out)
}

func (h *handlers) getTopic(ctx echo.Context) error {
	e, err := h.cat.Resolve(ctx.Param("*"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, newTopicJSON(e))
}
