package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/visualearn/internal/analysis"
	"github.com/san-kum/visualearn/internal/experiment"
	"github.com/san-kum/visualearn/internal/storage"
)

// maxPlots caps how many fields plot draws when none is named.
const maxPlots = 6

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [simulation]",
		Short: "run simulation headless and record the trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSceneFlags(cmd)
	cmd.Flags().BoolVar(&realtime, "realtime", false, "pace frames at --fps instead of running flat out")
	return cmd
}

func runSimulation(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	cfg, err := resolveScene(cmd, name)
	if err != nil {
		return err
	}

	st := storage.New(settings.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	expCfg := experiment.Config{
		Simulation: cfg.Simulation,
		Frames:     cfg.Frames,
		Params:     cfg.Params,
		Start:      cfg.Start,
	}
	var exp *experiment.Experiment
	if realtime {
		exp, err = experiment.NewRealtime(registry, expCfg, cfg.FPS, simOptions()...)
	} else {
		exp, err = experiment.New(registry, expCfg, simOptions()...)
	}
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if realtime {
		fmt.Printf("running %s simulation at %d fps...\n", cfg.Simulation, cfg.FPS)
	} else {
		fmt.Printf("running %s simulation...\n", cfg.Simulation)
	}
	begin := time.Now()

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(begin)

	runID, err := st.Save(result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", result.Frames)
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	if len(m) == 0 {
		return
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(settings.DataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSIMULATION\tTIME\tFRAMES\tFIELDS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			run.ID,
			run.Simulation,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			len(run.Fields),
		)
	}
	return w.Flush()
}

func loadRun(runID string) (*experiment.Result, error) {
	result, err := storage.New(settings.DataDir).LoadResult(runID)
	if err != nil {
		return nil, err
	}
	if len(result.Rows) == 0 {
		return nil, fmt.Errorf("run %s: no data", runID)
	}
	return result, nil
}

// plotFields returns the requested field, or the first few recorded ones.
func plotFields(result *experiment.Result) []string {
	if field != "" {
		return []string{field}
	}
	n := min(len(result.Fields), maxPlots)
	return result.Fields[:n]
}

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	cmd.Flags().StringVarP(&field, "field", "f", "", "plot only this field")
	cmd.Flags().StringVar(&pngDir, "png", "", "also write one PNG per field into this directory")
	return cmd
}

func plotRun(cmd *cobra.Command, args []string) error {
	result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", args[0])
	fmt.Printf("simulation: %s\n", result.Simulation)
	fmt.Printf("samples: %d\n\n", len(result.Rows))

	for _, name := range plotFields(result) {
		data, ok := result.Column(name)
		if !ok {
			return fmt.Errorf("%w: %s", analysis.ErrUnknownField, name)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()

		if pngDir != "" {
			path := filepath.Join(pngDir, fmt.Sprintf("%s_%s.png", args[0], name))
			if err := savePlot(path, name, result.Times, data); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n\n", path)
		}
	}
	return nil
}

// savePlot writes a field-against-time line chart as PNG.
func savePlot(path, name string, times, data []float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = name
	p.X.Label.Text = "t"
	p.Y.Label.Text = name

	pts := make(plotter.XYs, len(data))
	for i := range data {
		pts[i].X = times[i]
		pts[i].Y = data[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line, plotter.NewGrid())
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

func newPhaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	cmd.Flags().StringVar(&xField, "x", "", "field for the x-axis (default first field)")
	cmd.Flags().StringVar(&yField, "y", "", "field for the y-axis (default second field)")
	cmd.Flags().StringVar(&section, "section", "", "draw a Poincaré section where this field crosses --threshold upward")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "crossing threshold for --section")
	return cmd
}

func phasePlot(cmd *cobra.Command, args []string) error {
	result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(result.Fields) < 2 {
		return fmt.Errorf("run %s records fewer than two fields", args[0])
	}
	x, y := xField, yField
	if x == "" {
		x = result.Fields[0]
	}
	if y == "" {
		y = result.Fields[1]
	}

	fmt.Printf("phase space plot: %s\n", args[0])
	fmt.Printf("simulation: %s\n", result.Simulation)
	fmt.Printf("x-axis: %s, y-axis: %s\n\n", x, y)

	if section != "" {
		ps, err := analysis.NewPoincareSection(result, section, threshold, x, y)
		if err != nil {
			return err
		}
		fmt.Printf("section: %s ↑ %g (%d crossings)\n\n", section, threshold, len(ps.Points))
		fmt.Println(analysis.PoincareSectionToASCII(ps, 70, 20))
		return nil
	}

	portrait, err := analysis.NewPhasePortrait(result, x, y)
	if err != nil {
		return err
	}
	fmt.Print(analysis.PhasePortraitToASCII(portrait, 70, 20))
	return nil
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	cmd.Flags().StringVarP(&field, "field", "f", "", "field to analyze (default first field)")
	return cmd
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	name := field
	if name == "" {
		name = result.Fields[0]
	}
	data, ok := result.Column(name)
	if !ok {
		return fmt.Errorf("%w: %s", analysis.ErrUnknownField, name)
	}
	if len(result.Times) < 2 {
		return analysis.ErrTooFewSamples
	}
	dt := result.Times[1] - result.Times[0]

	fmt.Printf("frequency analysis: %s\n", args[0])
	fmt.Printf("simulation: %s\n\n", result.Simulation)

	ps := analysis.PowerSpectrum(data)
	if n := len(ps) / 4; n > 1 {
		ps = ps[:n]
	}
	graph := asciigraph.Plot(ps,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum ("+name+")"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq, _, err := analysis.DominantFrequency(data, dt)
	if err != nil {
		return err
	}
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	return nil
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := storage.New(settings.DataDir).Load(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(meta)
		},
	}
}

func newExportCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := loadRun(args[0])
			if err != nil {
				return err
			}
			return storage.WriteCSV(os.Stdout, result)
		},
	}
}

func newExportJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := loadRun(args[0])
			if err != nil {
				return err
			}
			return storage.ExportJSON(os.Stdout, result)
		},
	}
}
