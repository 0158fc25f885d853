package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/san-kum/visualearn/internal/catalog"
	"github.com/san-kum/visualearn/internal/experiment"
	"github.com/san-kum/visualearn/internal/logging"
	"github.com/san-kum/visualearn/internal/sim"
	"github.com/san-kum/visualearn/internal/telemetry"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		Registry       *experiment.Registry
		Catalog        *catalog.Catalog
		// Gatherer backs /metrics; nil disables the endpoint.
		Gatherer prometheus.Gatherer
		Metrics  *telemetry.Metrics
		Logger   zerolog.Logger
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
		log  zerolog.Logger
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	if opts.Registry == nil {
		opts.Registry = experiment.NewRegistry()
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	s := &server{
		opts: opts,
		app:  echo.New(),
		log:  logging.NewPackageLogger(opts.Logger, "server"),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.HideBanner = true
	s.app.HidePort = true

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
			LogMethod:  true,
			LogURI:     true,
			LogStatus:  true,
			LogLatency: true,
			LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
				s.log.Info().
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Msg("request")
				return nil
			},
		}))
	}
	s.app.Use(middleware.Recover())

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.log)

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	h := &handlers{reg: s.opts.Registry, cat: s.opts.Catalog, simOpts: s.simOptions()}
	v1.GET("/simulations", h.listSimulations)
	v1.GET("/simulations/:name", h.getSimulation)
	v1.GET("/simulations/:name/state", h.getState)
	v1.GET("/simulations/:name/frame.svg", h.getFrameSVG)
	v1.GET("/simulations/:name/frame.png", h.getFramePNG)
	v1.POST("/simulations/:name/runs", h.createRun)
	v1.GET("/topics", h.listTopics)
	v1.GET("/topics/*", h.getTopic)

	if s.opts.Gatherer != nil {
		s.app.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{})))
	}
}

func (s *server) simOptions() []sim.Option {
	opts := []sim.Option{sim.WithLogger(s.log)}
	if s.opts.Metrics != nil {
		opts = append(opts, sim.WithRecorder(s.opts.Metrics))
	}
	return opts
}

func (s *server) Start() error {
	s.log.Info().Str(logging.ADDR, s.opts.Address).Msg("listening")
	if err := s.app.Start(s.opts.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to VisualEarn API!")
}
