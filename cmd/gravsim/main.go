package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravsim/internal/analysis"
	"github.com/san-kum/gravsim/internal/audio"
	"github.com/san-kum/gravsim/internal/automation"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/export"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/server"
	"github.com/san-kum/gravsim/internal/session"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	dt         float64
	duration   float64
	addr       string
	// Run metrics
	boundRadius float64
	// Plot and phase axes
	body   int
	field  string
	xField string
	yField string
	// Sweep
	massMin float64
	massMax float64
	steps   int
	// Audio
	sound   bool
	outFile string
	frameMs int
)

// main registers commands and flags and executes the root command.
// It exits the process with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "gravsim",
		Short: "n-body gravity experiment: server, runner and viewer",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravsim", "data directory")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the gravity experiment over HTTP",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	serveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store it",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().Float64Var(&boundRadius, "bound", 1000, "radius for the bound metric")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot one field of every body against time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&field, "field", "x", "field to plot (x, y, vx, vy)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency and chaos analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&body, "body", 0, "body index for the spectrum plot")
	analyzeCmd.Flags().StringVar(&field, "field", "x", "field to analyze (x, y, vx, vy)")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "plot two fields of one body against each other",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&body, "body", 0, "body index")
	phaseCmd.Flags().StringVar(&xField, "x-axis", "x", "field for the x-axis")
	phaseCmd.Flags().StringVar(&yField, "y-axis", "y", "field for the y-axis")

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch a simulation in the terminal",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().BoolVar(&sound, "sound", false, "play body tones while running")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in body sets",
		RunE:  listPresets,
	}

	sonifyCmd := &cobra.Command{
		Use:   "sonify",
		Short: "play or render the sound of a simulation",
		RunE:  sonify,
	}
	addSimFlags(sonifyCmd)
	sonifyCmd.Flags().StringVar(&outFile, "out", "", "write a WAV file instead of playing")
	sonifyCmd.Flags().IntVar(&frameMs, "frame-ms", 50, "milliseconds of audio per step")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure stepping throughput",
		RunE:  bench,
	}
	addSimFlags(benchCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [dt1] [dt2] ...",
		Short: "compare energy drift across time steps",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareSteps,
	}
	addSimFlags(compareCmd)

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw the orbits of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "rerun a body set across a range of masses for one body",
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&body, "body", 0, "body index whose mass is swept")
	sweepCmd.Flags().Float64Var(&massMin, "min", 1, "lowest mass")
	sweepCmd.Flags().Float64Var(&massMax, "max", 100, "highest mass")
	sweepCmd.Flags().IntVar(&steps, "steps", 5, "number of masses")

	initConfigCmd := &cobra.Command{
		Use:   "init-config [file]",
		Short: "write a config file with the resolved bodies spelled out",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	addSimFlags(initConfigCmd)

	rootCmd.AddCommand(serveCmd, runCmd, listCmd, showCmd, plotCmd, analyzeCmd, phaseCmd,
		exportJSONCmd, exportCSVCmd, exportSVGCmd, liveCmd, presetsCmd, sonifyCmd,
		benchCmd, compareCmd, scenarioCmd, sweepCmd, initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", config.DefaultPreset, "built-in body set")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
}

type setup struct {
	name     string
	specs    []gravity.Spec
	dt       float64
	duration float64
}

// resolveSetup layers the config file over the preset, and explicitly set
// flags over both.
func resolveSetup(cmd *cobra.Command) (*setup, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("preset") {
		cfg.Simulation.Preset = preset
		cfg.Simulation.Bodies = nil
	}

	specs, err := cfg.Specs()
	if err != nil {
		return nil, err
	}

	s := &setup{
		name:     cfg.Simulation.Preset,
		specs:    specs,
		dt:       cfg.Simulation.Dt,
		duration: cfg.Simulation.Duration,
	}
	if len(cfg.Simulation.Bodies) > 0 {
		s.name = "custom"
	} else if p := config.GetPreset(s.name); p != nil && configFile == "" && p.Dt > 0 {
		s.dt = p.Dt
	}

	if cmd.Flags().Changed("dt") {
		s.dt = dt
	}
	if cmd.Flags().Changed("time") {
		s.duration = duration
	}

	return s, nil
}

func serve(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("addr") || cfg.Server.Addr == "" {
		cfg.Server.Addr = addr
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg.Server, session.New(), logger).Run(ctx)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	s, err := resolveSetup(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	simulator := sim.New(nil)
	simulator.AddMetric(metrics.NewEnergy())
	simulator.AddMetric(metrics.NewEnergyDrift())
	simulator.AddMetric(metrics.NewMomentumDrift())
	simulator.AddMetric(metrics.NewBound(boundRadius))
	simulator.AddMetric(metrics.NewClosestApproach())

	cfg := sim.Config{Dt: s.dt, Duration: s.duration, ValidateState: true}

	fmt.Printf("running %s simulation (%d bodies)...\n", s.name, len(s.specs))
	start := time.Now()

	result, err := simulator.Run(context.Background(), s.specs, cfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(s.name, cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("energy drift: %.6f\n", result.EnergyDrift)
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tDURATION\tDT\tSTEPS\tBODIES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.4f\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
			len(run.Bodies),
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []sim.Frame, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}

	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("no data in run %s", runID)
	}
	return meta, frames, nil
}

func bodyLabel(i int, info storage.BodyInfo) string {
	if s := info.ID.String(); s != "" && s != "null" {
		return s
	}
	return fmt.Sprintf("#%d", i)
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	times := analysis.Times(frames)
	fmt.Printf("samples: %d (t=%.2f..%.2f)\n\n", len(frames), times[0], times[len(times)-1])

	maxPlots := 6
	for i, info := range meta.Bodies {
		if i >= maxPlots {
			break
		}

		data, err := analysis.Column(frames, i, field)
		if err != nil {
			return err
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s %s vs time", bodyLabel(i, info), field)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("preset: %s\n\n", meta.Preset)

	series, err := analysis.Column(frames, body, field)
	if err != nil {
		return err
	}

	ps := analysis.PowerSpectrum(series)
	plotData := ps[:len(ps)/4+1]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s %s)", bodyLabel(body, meta.Bodies[body]), field)),
	)
	fmt.Println(graph)
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tFREQ\tPERIOD")
	for i, info := range meta.Bodies {
		if info.Mass <= 0 {
			continue
		}
		xs, err := analysis.Column(frames, i, field)
		if err != nil {
			return err
		}
		freq, _ := analysis.DominantFrequency(xs, meta.Dt)
		period := "-"
		if freq > 0 {
			period = fmt.Sprintf("%.3f", 1/freq)
		}
		fmt.Fprintf(w, "%s\t%.4f\t%s\n", bodyLabel(i, info), freq, period)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	specs := make([]gravity.Spec, len(frames[0].Bodies))
	for i, r := range frames[0].Bodies {
		specs[i] = gravity.Spec{Mass: r.Mass, X: r.X, Y: r.Y, VX: r.VX, VY: r.VY, Tone: r.Tone, ID: r.ID}
	}
	lambda, err := analysis.LyapunovExponent(specs, body, meta.Dt, meta.Duration, 1e-6)
	if err != nil {
		return err
	}
	fmt.Printf("\nlyapunov exponent: %.4f", lambda)
	if lambda > 0 {
		fmt.Print(" (chaotic)")
	}
	fmt.Println()

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	portrait, err := analysis.GeneratePhasePortrait(frames, body, xField, yField)
	if err != nil {
		return err
	}

	fmt.Printf("phase space plot: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("body: %s, x-axis: %s, y-axis: %s\n\n", bodyLabel(body, meta.Bodies[body]), xField, yField)
	fmt.Print(analysis.PhasePortraitToASCII(portrait, 70, 20))

	return nil
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}
	return printJSON(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, frames)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, meta.Bodies, frames)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	svg := export.OrbitsToSVG(frames, 800, 800)
	if outFile == "" {
		_, err := fmt.Println(svg)
		return err
	}
	return os.WriteFile(outFile, []byte(svg), 0644)
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	results, ids, err := automation.RunScenario(context.Background(), scenario, st, os.Stdout)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nSTEP\tSTEPS\tENERGY_DRIFT\tRUN")
	for i, result := range results {
		id := ids[i]
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(w, "%d\t%d\t%.2e\t%s\n", i+1, result.StepsTaken, result.EnergyDrift, id)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	s, err := resolveSetup(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(context.Background(), &automation.MassSweep{
		Specs:    s.specs,
		Body:     body,
		MassMin:  massMin,
		MassMax:  massMax,
		NumSteps: steps,
		Duration: s.duration,
		Dt:       s.dt,
	})
	if err != nil {
		return err
	}

	fmt.Printf("mass sweep of body %d in %s\n\n", body, s.name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MASS\tMIN_ENERGY\tMAX_ENERGY\tDRIFT\tFINAL_X\tFINAL_Y")
	for _, r := range results {
		final := r.Final[body]
		fmt.Fprintf(w, "%.3f\t%.3f\t%.3f\t%.2e\t%.2f\t%.2f\n",
			r.Mass, r.MinEnergy, r.MaxEnergy, r.Drift, final.X, final.Y)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	s, err := resolveSetup(cmd)
	if err != nil {
		return err
	}

	var synth *audio.Synth
	if sound {
		synth = audio.NewSynth(audio.SampleRate)
		player := audio.NewPlayer(synth)
		if err := player.Start(); err != nil {
			return err
		}
		defer player.Stop()
	}

	m, err := viz.NewModel(s.name, s.specs, s.dt, synth)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tDT\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.3f\t%s\n", p.Name, len(p.Bodies), p.Dt, p.Description)
	}
	return w.Flush()
}

func sonify(cmd *cobra.Command, args []string) error {
	s, err := resolveSetup(cmd)
	if err != nil {
		return err
	}
	frameDuration := time.Duration(frameMs) * time.Millisecond
	if frameDuration <= 0 {
		return fmt.Errorf("frame-ms must be positive, got %d", frameMs)
	}

	if outFile != "" {
		result, err := sim.New(nil).Run(context.Background(), s.specs, sim.Config{Dt: s.dt, Duration: s.duration})
		if err != nil {
			return err
		}

		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := audio.RenderWAV(f, result.Frames, frameDuration); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d frames, %v)\n", outFile, len(result.Frames), time.Duration(len(result.Frames))*frameDuration)
		return nil
	}

	synth := audio.NewSynth(audio.SampleRate)
	player := audio.NewPlayer(synth)
	if err := player.Start(); err != nil {
		return err
	}
	defer player.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(frameDuration)
	defer ticker.Stop()

	fmt.Printf("playing %s (ctrl+c to stop)\n", s.name)
	err = sim.New(nil).RunWithCallback(ctx, s.specs, sim.Config{Dt: s.dt, Duration: s.duration}, func(f sim.Frame) bool {
		synth.SetVoices(audio.Voices(f.Bodies))
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			return true
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func bench(cmd *cobra.Command, args []string) error {
	s, err := resolveSetup(cmd)
	if err != nil {
		return err
	}

	durations := []float64{10.0, 50.0, 100.0}
	dts := []float64{0.01, 0.05, 0.1}

	fmt.Printf("benchmarking %s (%d bodies)\n\n", s.name, len(s.specs))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, d := range dts {
			start := time.Now()
			result, err := sim.New(nil).Run(context.Background(), s.specs, sim.Config{Dt: d, Duration: dur})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()

			fmt.Fprintf(w, "%.1f\t%.4f\t%d\t%v\t%.0f\n",
				dur, d, result.StepsTaken, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}

func compareSteps(cmd *cobra.Command, args []string) error {
	s, err := resolveSetup(cmd)
	if err != nil {
		return err
	}

	cfgs := make([]sim.Config, len(args))
	for i, arg := range args {
		d, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid dt %q: %w", arg, err)
		}
		cfgs[i] = sim.Config{Dt: d, Duration: s.duration, ValidateState: true}
	}

	ensemble := sim.NewEnsemble(func() []sim.Metric {
		return []sim.Metric{metrics.NewEnergyDrift(), metrics.NewMomentumDrift()}
	})

	start := time.Now()
	results, err := ensemble.Run(context.Background(), s.specs, cfgs)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("comparing time steps for %s (duration=%.1f)\n\n", s.name, s.duration)
	fmt.Printf("%-10s  %-8s  %-12s  %-12s  %-12s\n", "dt", "steps", "final_x0", "energy_drift", "max_drift")
	fmt.Println(strings.Repeat("-", 62))

	for i, result := range results {
		finalX0 := math.NaN()
		if n := len(result.Frames); n > 0 && len(result.Frames[n-1].Bodies) > 0 {
			finalX0 = result.Frames[n-1].Bodies[0].X
		}
		fmt.Printf("%-10g  %-8d  %12.4f  %12.2e  %12.2e\n",
			cfgs[i].Dt, result.StepsTaken, finalX0, result.EnergyDrift, result.Metrics["energy_drift"])
	}
	fmt.Printf("\ntotal %v\n", elapsed)

	return nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	s, err := resolveSetup(cmd)
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	cfg.Simulation.Preset = s.name
	cfg.Simulation.Dt = s.dt
	cfg.Simulation.Duration = s.duration
	for _, spec := range s.specs {
		cfg.Simulation.Bodies = append(cfg.Simulation.Bodies, gravity.RawFromSpec(spec))
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d bodies)\n", path, len(s.specs))
	return nil
}
