package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/visualearn/internal/analysis"
	"github.com/san-kum/visualearn/internal/automation"
	"github.com/san-kum/visualearn/internal/experiment"
	"github.com/san-kum/visualearn/internal/optim"
	"github.com/san-kum/visualearn/internal/storage"
)

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted sequence of simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(settings.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	save := func(step automation.ScenarioStep, result *experiment.Result) error {
		runID, err := st.Save(result)
		if err != nil {
			return err
		}
		label := step.SaveAs
		if label == "" {
			label = step.Simulation
		}
		fmt.Printf("  %-20s %s\n", label, runID)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("scenario: %s (%d steps)\n", scenario.Name, len(scenario.Steps))
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}
	_, err = automation.NewRunner(registry, save, logger).RunScenario(ctx, scenario)
	return err
}

func newMonteCarloCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "montecarlo [simulation]",
		Short: "run trials with random parameters",
		Args:  cobra.ExactArgs(1),
		RunE:  runMonteCarlo,
	}
	cmd.Flags().IntVar(&trials, "trials", 50, "number of trials")
	cmd.Flags().IntVar(&trialFrames, "frames", 300, "frames per trial")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 for time based)")
	return cmd
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.NewRunner(registry, nil, logger).RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Simulation: args[0],
		NumTrials:  trials,
		Frames:     trialFrames,
		Seed:       seed,
	})
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("trials: %d  stable: %d  unstable: %d\n\n", len(results), stable, unstable)

	summary := make(map[string][]float64)
	for _, r := range results {
		for name, val := range r.Metrics {
			summary[name] = append(summary[name], val)
		}
	}
	names := make([]string, 0, len(summary))
	for name := range summary {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMIN\tMEAN\tMAX")
	for _, name := range names {
		vals := summary[name]
		lo, hi, sum := vals[0], vals[0], 0.0
		for _, v := range vals {
			lo = min(lo, v)
			hi = max(hi, v)
			sum += v
		}
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.6f\n", name, lo, sum/float64(len(vals)), hi)
	}
	return w.Flush()
}

var sweepCfg analysis.SweepConfig

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep [simulation] [param]",
		Short: "sweep one parameter and plot the distinct values of a field",
		Args:  cobra.ExactArgs(2),
		RunE:  runSweep,
	}
	cmd.Flags().Float64Var(&sweepCfg.Min, "min", 0, "first parameter value (default range minimum)")
	cmd.Flags().Float64Var(&sweepCfg.Max, "max", 0, "last parameter value (default range maximum)")
	cmd.Flags().IntVar(&sweepCfg.Steps, "steps", 20, "number of parameter values")
	cmd.Flags().StringVarP(&sweepCfg.Field, "field", "f", "", "field to record")
	cmd.Flags().IntVar(&sweepCfg.Transient, "transient", 0, "frames to run before recording")
	cmd.Flags().IntVar(&sweepCfg.Record, "record", 300, "frames to record")
	_ = cmd.MarkFlagRequired("field")
	return cmd
}

func runSweep(cmd *cobra.Command, args []string) error {
	entry, err := registry.Get(args[0])
	if err != nil {
		return err
	}
	cfg := sweepCfg
	cfg.Simulation = args[0]
	cfg.Param = args[1]

	found := false
	for _, sp := range entry.Specs {
		if sp.Name != cfg.Param {
			continue
		}
		found = true
		if !cmd.Flags().Changed("min") {
			cfg.Min = sp.Min
		}
		if !cmd.Flags().Changed("max") {
			cfg.Max = sp.Max
		}
	}
	if !found {
		return fmt.Errorf("%s has no parameter %s", args[0], cfg.Param)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	points, err := analysis.Sweep(ctx, registry, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("sweep: %s %s in [%g, %g], field %s\n\n", cfg.Simulation, cfg.Param, cfg.Min, cfg.Max, cfg.Field)
	fmt.Print(analysis.SweepToASCII(points, 70, 20))
	return nil
}

var (
	gridAxes []string
	metric   string
	maximize bool
)

func newOptimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize [simulation]",
		Short: "grid search parameters for the best value of a run metric",
		Args:  cobra.ExactArgs(1),
		RunE:  runOptimize,
	}
	addSceneFlags(cmd)
	cmd.Flags().StringArrayVarP(&gridAxes, "grid", "g", nil, "axis to search, name=min:max:step or name=v1,v2")
	cmd.Flags().StringVarP(&metric, "metric", "m", "", "metric to optimize, e.g. peak_height")
	cmd.Flags().BoolVar(&maximize, "maximize", false, "maximize instead of minimize")
	_ = cmd.MarkFlagRequired("grid")
	_ = cmd.MarkFlagRequired("metric")
	return cmd
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := resolveScene(cmd, args[0])
	if err != nil {
		return err
	}

	g := &optim.GridSearch{
		Simulation: cfg.Simulation,
		Frames:     cfg.Frames,
		Params:     cfg.Params,
		Metric:     metric,
		Maximize:   maximize,
	}
	for _, s := range gridAxes {
		ax, err := optim.ParseAxis(s)
		if err != nil {
			return err
		}
		g.Axes = append(g.Axes, ax)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	best, err := g.Search(ctx, registry)
	if err != nil {
		return err
	}

	goal := "min"
	if maximize {
		goal = "max"
	}
	fmt.Printf("%s %s over %d runs: %.6f\n\n", goal, metric, best.Tried, best.Value)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARAM\tVALUE")
	for _, ax := range g.Axes {
		fmt.Fprintf(w, "%s\t%g\n", ax.Param, best.Params[ax.Param])
	}
	return w.Flush()
}
