package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"time"

	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/config"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/integrators"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/telemetry"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/viz"
	"github.com/spf13/cobra"
)

const (
	plotWidth  = 80
	plotHeight = 30
)

var (
	dataDir     string
	logLevel    string
	logFormat   string
	metricsFile string
	themeName   string
	noColor     bool

	// Scenario overrides, applied only when the flag is given.
	configFile string
	preset     string
	mass       float64
	altitude   float64
	speed      float64
	angle      float64
	duration   float64
	method     string
	samples    int
	rtol       float64
	atol       float64
	maxSteps   int
	maxStep    float64
	firstStep  float64
	fixedStep  float64
	timeout    time.Duration

	showPlot      bool
	outFile       string
	scenarioFile  string
	workers       int
	sweepSpeeds   []float64
	sweepAngles   []float64
	comparePreset string
	sweepPreset   string

	logger   = slog.New(slog.DiscardHandler)
	recorder = telemetry.NewRecorder()
)

// main runs the orbitsim CLI. Without a subcommand it simulates the built-in
// default scenario and draws it in the terminal. Any error is printed once and
// the process exits with status 1.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if metricsFile != "" {
		if werr := recorder.WriteTextfile(metricsFile); werr != nil {
			fmt.Fprintf(os.Stderr, "error: write metrics: %v\n", werr)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "orbitsim",
		Short:             "planar two-body orbit simulator",
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE:              runDefault,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".orbitsim", "data directory")
	pf.StringVar(&logLevel, "log-level", "error", "log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	pf.StringVar(&metricsFile, "metrics-file", "", "write solver metrics in Prometheus text format to this file")
	pf.StringVar(&themeName, "theme", viz.ThemeNight.Name, fmt.Sprintf("color theme %v", viz.ThemeNames()))
	pf.BoolVar(&noColor, "no-color", false, "plain terminal output")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario and save it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd, &preset, "")
	runCmd.Flags().BoolVar(&showPlot, "plot", false, "draw the trajectory after the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a saved run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  svgRun,
	}
	svgCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run samples and metrics to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [preset]",
		Short: "write a scenario file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initScenario,
	}
	initCmd.Flags().StringVarP(&scenarioFile, "output", "o", "scenario.yaml", "output file")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run a scenario and replay it interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd, &preset, "")

	compareCmd := &cobra.Command{
		Use:   "compare [method...]",
		Short: "compare integration methods on one scenario",
		Args:  cobra.ArbitraryArgs,
		RunE:  compareMethods,
	}
	addScenarioFlags(compareCmd, &comparePreset, "leo-circular")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a grid of launch speeds and angles",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd, &sweepPreset, "leo-circular")
	sweepCmd.Flags().Float64SliceVar(&sweepSpeeds, "speeds", []float64{7000, 7500, 7800, 8500, 11000}, "launch speeds (m/s)")
	sweepCmd.Flags().Float64SliceVar(&sweepAngles, "angles", []float64{0, 45, 80, 90}, "launch angles (deg)")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (0 uses all CPUs)")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, svgCmd, exportCSVCmd, exportJSONCmd, presetsCmd, initCmd, liveCmd, compareCmd, sweepCmd)
	return rootCmd
}

func addScenarioFlags(cmd *cobra.Command, presetVar *string, presetDefault string) {
	opts := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "scenario file (yaml)")
	f.StringVar(presetVar, "preset", presetDefault, "built-in scenario")
	f.Float64Var(&mass, "mass", opts.Launch.Mass, "satellite mass (kg)")
	f.Float64Var(&altitude, "altitude", opts.Launch.Altitude, "launch altitude (m)")
	f.Float64Var(&speed, "speed", opts.Launch.Speed, "launch speed (m/s)")
	f.Float64Var(&angle, "angle", opts.Launch.AngleDeg, "launch angle from +x (deg)")
	f.Float64Var(&duration, "time", opts.Launch.Duration, "simulated duration (s)")
	f.StringVar(&method, "method", opts.Solver.Method, fmt.Sprintf("integration method %v", integrators.Names()))
	f.IntVar(&samples, "samples", opts.Solver.Samples, "number of output samples")
	f.Float64Var(&rtol, "rtol", opts.Solver.RTol, "relative tolerance")
	f.Float64Var(&atol, "atol", opts.Solver.ATol, "absolute tolerance")
	f.IntVar(&maxSteps, "max-steps", opts.Solver.MaxSteps, "solver step budget (0 for unlimited)")
	f.Float64Var(&maxStep, "max-step", opts.Solver.MaxStep, "largest adaptive step (s, 0 for unlimited)")
	f.Float64Var(&firstStep, "first-step", opts.Solver.FirstStep, "initial adaptive step (s, 0 to estimate)")
	f.Float64Var(&fixedStep, "dt", opts.Solver.FixedStep, "step for fixed-step methods (s)")
	f.DurationVar(&timeout, "timeout", 0, "wall-clock limit per run")
}

func setup(cmd *cobra.Command, args []string) error {
	l, err := newLogger(cmd.ErrOrStderr(), logLevel, logFormat)
	if err != nil {
		return err
	}
	logger = l

	if !slices.Contains(viz.ThemeNames(), themeName) {
		return fmt.Errorf("unknown theme: %s (available: %v)", themeName, viz.ThemeNames())
	}
	viz.SetTheme(themeName)
	return nil
}
