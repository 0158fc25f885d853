package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/visualearn/internal/audio"
	"github.com/san-kum/visualearn/internal/canvas"
	"github.com/san-kum/visualearn/internal/config"
	"github.com/san-kum/visualearn/internal/sim"
	"github.com/san-kum/visualearn/internal/viz"
)

func newLiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "live [simulation|topic-path]",
		Short: "run simulation with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSceneFlags(cmd)
	cmd.Flags().BoolVar(&sound, "sound", false, "play the doppler tone")
	return cmd
}

func runLive(cmd *cobra.Command, args []string) error {
	o := viz.Options{
		FPS:     settings.FPS,
		Theme:   settings.Theme,
		SimOpts: simOptions(),
	}

	if sound || settings.Sound {
		player := audio.NewPlayer()
		if err := player.Initialize(); err != nil {
			logger.Warn().Err(err).Msg("audio unavailable, continuing without sound")
		} else {
			defer player.Close()
			o.Sound = player
		}
	}

	if len(args) == 0 {
		return viz.RunInteractive(registry, topics, o)
	}

	name := args[0]
	if strings.Contains(name, "/") {
		topic, err := topics.Resolve(name)
		if err != nil {
			return err
		}
		if topic.Topic.Simulation == "" {
			return fmt.Errorf("topic %s has no simulation", topic.Path)
		}
		o.Topic = topic.Path
		name = topic.Topic.Simulation
	}

	cfg, err := resolveScene(cmd, name)
	if err != nil {
		return err
	}
	entry, err := registry.Get(cfg.Simulation)
	if err != nil {
		return err
	}
	o.FPS = cfg.FPS
	o.Theme = cfg.Theme
	o.Params = cfg.Params
	return viz.Run(entry, o)
}

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot [simulation]",
		Short: "render one frame to SVG or PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshot,
	}
	addSceneFlags(cmd)
	cmd.Flags().Float64Var(&atTime, "t", 0, "simulation time to render")
	cmd.Flags().StringVar(&format, "format", "svg", "output format (svg, png)")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")
	return cmd
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveScene(cmd, args[0])
	if err != nil {
		return err
	}
	s, err := registry.New(cfg.Simulation, sim.NewManualScheduler(), simOptions()...)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.Params().Apply(cfg.Params); err != nil {
		return err
	}

	out := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	s.Seek(atTime)
	switch format {
	case "svg":
		svg := canvas.NewSVG()
		s.Attach(svg)
		s.Redraw()
		_, err = svg.WriteTo(out)
	case "png":
		img := canvas.NewImage(canvas.Width, canvas.Height)
		s.Attach(img)
		s.Redraw()
		_, err = img.WriteTo(out)
	default:
		return fmt.Errorf("unknown format: %s (available: svg, png)", format)
	}
	return err
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [simulation]",
		Short: "list available presets for a simulation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := registry.Get(args[0]); err != nil {
				return err
			}
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for simulation: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "list catalog topics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PATH\tTITLE\tSIMULATION")
			for _, e := range topics.Entries() {
				simName := e.Topic.Simulation
				if simName == "" {
					simName = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Path, e.Topic.Title, simName)
			}
			return w.Flush()
		},
	}
}

func newParamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params [simulation]",
		Short: "list a simulation's parameters and their ranges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := registry.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s\n\n", entry.Title)
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLABEL\tMIN\tMAX\tSTEP\tDEFAULT\tUNIT")
			for _, sp := range entry.Specs {
				fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%g\t%s\n", sp.Name, sp.Label, sp.Min, sp.Max, sp.Step, sp.Default, sp.Unit)
			}
			return w.Flush()
		},
	}
}
