package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/visualearn/internal/catalog"
	"github.com/san-kum/visualearn/internal/config"
	"github.com/san-kum/visualearn/internal/experiment"
	"github.com/san-kum/visualearn/internal/logging"
	"github.com/san-kum/visualearn/internal/sim"
)

var (
	v        = config.NewViper()
	settings config.Settings
	logger   zerolog.Logger
	registry = experiment.NewRegistry()
	topics   = catalog.Default()

	// Scene overrides
	configFile string
	preset     string
	frames     int
	start      float64
	setParams  map[string]string
	realtime   bool
	// Output
	field     string
	xField    string
	yField    string
	section   string
	threshold float64
	pngDir    string
	format    string
	outFile   string
	atTime    float64
	sound     bool
	// Batch
	trials      int
	trialFrames int
	seed        int64
	addr        string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "visualearn",
		Short:         "interactive science simulations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ReadSettingsFile(v); err != nil {
				return fmt.Errorf("reading settings: %w", err)
			}
			settings = config.LoadSettings(v)
			logger = logging.New(os.Stderr, settings.LogLevel)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// default to the topic menu when no command given
			return runLive(cmd, nil)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String("data", ".visualearn", "data directory")
	pf.String("log-level", "warn", "log level (debug, info, warn, error, disabled)")
	pf.Int("fps", config.DefaultFPS, "frame rate for live view")
	pf.String("theme", "default", "color theme")
	for _, name := range []string{"data", "log-level", "fps", "theme"} {
		_ = v.BindPFlag(name, pf.Lookup(name))
	}

	rootCmd.AddCommand(
		newLiveCmd(),
		newRunCmd(),
		newListCmd(),
		newPlotCmd(),
		newPhaseCmd(),
		newAnalyzeCmd(),
		newSweepCmd(),
		newExportCmd(),
		newExportCSVCmd(),
		newExportJSONCmd(),
		newSnapshotCmd(),
		newPresetsCmd(),
		newTopicsCmd(),
		newParamsCmd(),
		newBatchCmd(),
		newMonteCarloCmd(),
		newOptimizeCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func simOptions() []sim.Option {
	return []sim.Option{sim.WithLogger(logger)}
}

// addSceneFlags registers the flags that select a starting scene.
func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scene file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to run")
	cmd.Flags().Float64Var(&start, "start", 0, "seek to this time before the first frame")
	cmd.Flags().StringToStringVarP(&setParams, "set", "p", nil, "parameter override, e.g. -p angle=45")
}
