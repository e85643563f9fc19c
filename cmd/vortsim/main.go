package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/vortsim/vortsim/internal/analysis"
	"github.com/vortsim/vortsim/internal/config"
	"github.com/vortsim/vortsim/internal/grid"
	"github.com/vortsim/vortsim/internal/metrics"
	"github.com/vortsim/vortsim/internal/solver"
	"github.com/vortsim/vortsim/internal/storage"
	"github.com/vortsim/vortsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	duration   float64
	seriesName string
	fieldName  string
	steps      int
	frameRate  int
	stepsPF    int
	themeName  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vortsim",
		Short: "smoke-ring vortex sheet simulation lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".vortsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "named preset configuration")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store the result",
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&duration, "time", 0, "simulated duration (overrides config)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", 0, "frame rate (overrides config)")
	liveCmd.Flags().IntVar(&stepsPF, "steps-per-frame", 0, "physics steps per frame (overrides config)")
	liveCmd.Flags().StringVar(&themeName, "theme", "", "color theme (overrides config)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored metric series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&seriesName, "series", "peak_vorticity", "series to plot")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&seriesName, "series", "peak_vorticity", "series to analyze")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "run a fixed number of steps and dump a field as CSV",
		RunE:  snapshotField,
	}
	snapshotCmd.Flags().StringVar(&fieldName, "field", "vorticity", "field to dump (vorticity, density, pressure, temperature)")
	snapshotCmd.Flags().IntVar(&steps, "steps", 200, "number of steps to advance")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark step throughput over grid sizes",
		RunE:  benchSolver,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, exportCmd, snapshotCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves preset, config file and defaults, in that order of
// increasing precedence.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	return cfg, cfg.Validate()
}

func buildSolver(cfg *config.Config) (*solver.Solver, error) {
	g, err := grid.New(cfg.Grid.NX, cfg.Grid.NY, grid.Bounds{
		XMin: cfg.Grid.XMin, XMax: cfg.Grid.XMax,
		YMin: cfg.Grid.YMin, YMax: cfg.Grid.YMax,
	})
	if err != nil {
		return nil, err
	}
	return solver.New(g, solver.Params{
		Gamma: cfg.Gas.Gamma,
		GasR:  cfg.Gas.GasR,
		Rho0:  cfg.Gas.Rho0,
		P0:    cfg.Gas.P0,
		Nu:    cfg.Gas.Nu,
		Kappa: cfg.Gas.Kappa,
		Forcing: solver.ForcingSpec{
			XMin: cfg.Forcing.XMin, XMax: cfg.Forcing.XMax,
			CenterY: cfg.Forcing.CenterY, Radius: cfg.Forcing.Radius,
			Magnitude: cfg.Forcing.Magnitude,
			TStart:    cfg.Forcing.TStart, TEnd: cfg.Forcing.TEnd,
		},
		CFLInterval: cfg.Run.CFLInterval,
		FixedDt:     cfg.Run.FixedDt,
	})
}

// progressPrinter reports progress on sampled steps, gocfd-style.
type progressPrinter struct {
	every int
	n     int
}

func (p *progressPrinter) OnStep(s *solver.Solver, t float64) {
	p.n++
	if p.every <= 0 || p.n%p.every != 0 {
		return
	}
	c := s.Clock()
	fmt.Printf("%8d  %10.6f  %10.3e  %10.3f\n", c.Step, t, c.Dt, s.MaxAbsVorticity())
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if duration > 0 {
		cfg.Run.Duration = duration
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sol, err := buildSolver(cfg)
	if err != nil {
		return err
	}

	name := preset
	if name == "" {
		name = "classic"
	}
	fmt.Printf("running %s for %.4fs of simulated time...\n", name, cfg.Run.Duration)
	fmt.Printf("%8s  %10s  %10s  %10s\n", "step", "time", "dt", "peak|ω|")

	start := time.Now()
	result, err := sol.Run(context.Background(), solver.RunConfig{
		Duration:    cfg.Run.Duration,
		SampleEvery: cfg.Run.SampleEvery,
	}, metrics.Default(), &progressPrinter{every: 20})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(name, cfg.Grid.NX, cfg.Grid.NY, cfg.Run.Duration, result)
	if err != nil {
		return err
	}

	fmt.Printf("\ncompleted %d steps in %v\n", result.StepsTaken, elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}
	if len(result.Warnings) > 0 {
		fmt.Printf("\nhealth warnings (%d):\n", len(result.Warnings))
		for i, w := range result.Warnings {
			if i >= 5 {
				fmt.Printf("  ... and %d more\n", len(result.Warnings)-5)
				break
			}
			fmt.Printf("  %s\n", w.Error())
		}
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if frameRate > 0 {
		cfg.View.FrameRate = frameRate
	}
	if stepsPF > 0 {
		cfg.View.StepsPerFrame = stepsPF
	}
	if themeName != "" {
		cfg.View.Theme = themeName
	}

	sol, err := buildSolver(cfg)
	if err != nil {
		return err
	}

	m := viz.NewModel(sol, cfg.View.StepsPerFrame, cfg.View.FrameRate, cfg.View.Theme)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tGRID\tDURATION\tSTEPS\tWARN")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.NX, run.NY,
			run.Duration,
			run.Steps,
			len(run.Warnings),
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, _, series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	data, ok := series[seriesName]
	if !ok {
		return fmt.Errorf("no series %q in run %s", seriesName, meta.ID)
	}
	if len(data) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\nsamples: %d\n\n", meta.ID, len(data))
	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s vs time (%.4fs span)", seriesName, times[len(times)-1]-times[0])),
	)
	fmt.Println(graph)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, _, series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	data, ok := series[seriesName]
	if !ok {
		return fmt.Errorf("no series %q in run %s", seriesName, meta.ID)
	}
	if len(data) < 4 || len(times) < 2 {
		return fmt.Errorf("not enough samples to analyze")
	}

	sampleDt := (times[len(times)-1] - times[0]) / float64(len(times)-1)
	ps := analysis.PowerSpectrum(data)
	freq, power := analysis.DominantFrequency(data, sampleDt)

	fmt.Printf("frequency analysis: %s (%s)\n\n", meta.ID, seriesName)
	graph := asciigraph.Plot(ps,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum"),
	)
	fmt.Println(graph)
	fmt.Printf("\ndominant frequency: %.3f hz (power %.3g)\n", freq, power)
	if freq > 0 {
		fmt.Printf("period: %.5f s\n", 1.0/freq)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, dts, series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, times, dts, series)
}

func snapshotField(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sol, err := buildSolver(cfg)
	if err != nil {
		return err
	}
	for i := 0; i < steps; i++ {
		sol.Advance()
	}

	var field *grid.Scalar
	switch fieldName {
	case "vorticity":
		field = sol.Vorticity()
	case "density":
		field = sol.Density()
	case "pressure":
		field = sol.Pressure()
	case "temperature":
		field = sol.Temperature()
	default:
		return fmt.Errorf("unknown field: %s", fieldName)
	}
	return storage.WriteFieldCSV(os.Stdout, field)
}

func benchSolver(cmd *cobra.Command, args []string) error {
	sizes := []int{34, 66, 130}
	benchSteps := 200

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tSTEPS\tTIME\tSTEPS/SEC")
	for _, n := range sizes {
		cfg := config.Default()
		cfg.Grid.NX, cfg.Grid.NY = n, n
		sol, err := buildSolver(cfg)
		if err != nil {
			return err
		}
		start := time.Now()
		for i := 0; i < benchSteps; i++ {
			sol.Advance()
		}
		elapsed := time.Since(start)
		fmt.Fprintf(w, "%dx%d\t%d\t%v\t%.0f\n",
			n, n, benchSteps, elapsed, float64(benchSteps)/elapsed.Seconds())
	}
	return w.Flush()
}
