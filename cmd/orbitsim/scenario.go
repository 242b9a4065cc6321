package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/config"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/trajectory"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/viz"
	"github.com/spf13/cobra"
)

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format: %s (want text or json)", format)
	}
}

// resolveScenario builds the scenario for cmd and validates it. Later sources
// win: defaults, then the preset, then the config file, then explicitly set
// flags.
func resolveScenario(cmd *cobra.Command, presetName string) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "default"

	if presetName != "" {
		cfg = config.GetPreset(presetName)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
		}
		name = presetName
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		name = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	}

	f := cmd.Flags()
	if f.Changed("mass") {
		cfg.Launch.Mass = mass
	}
	if f.Changed("altitude") {
		cfg.Launch.Altitude = altitude
	}
	if f.Changed("speed") {
		cfg.Launch.Speed = speed
	}
	if f.Changed("angle") {
		cfg.Launch.AngleDeg = angle
	}
	if f.Changed("time") {
		cfg.Launch.Duration = duration
	}
	if f.Changed("method") {
		cfg.Solver.Method = method
	}
	if f.Changed("samples") {
		cfg.Solver.Samples = samples
	}
	if f.Changed("rtol") {
		cfg.Solver.RTol = rtol
	}
	if f.Changed("atol") {
		cfg.Solver.ATol = atol
	}
	if f.Changed("max-steps") {
		cfg.Solver.MaxSteps = maxSteps
	}
	if f.Changed("max-step") {
		cfg.Solver.MaxStep = maxStep
	}
	if f.Changed("first-step") {
		cfg.Solver.FirstStep = firstStep
	}
	if f.Changed("dt") {
		cfg.Solver.FixedStep = fixedStep
	}
	if f.Changed("timeout") {
		cfg.Solver.Timeout = config.Duration(timeout)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("%s: %w", name, err)
	}
	return cfg, name, nil
}

// simulate runs cfg once and records the outcome. A failed run comes back as
// the trajectory.Failure itself.
func simulate(ctx context.Context, cfg *config.Config) (*trajectory.Trajectory, error) {
	in := trajectory.New(cfg.Constants(), cfg.Options(), logger)
	res := in.Run(ctx, cfg.Params())
	recorder.Observe(res)

	return trajectory.Unpack(res)
}

func renderTerminal(w io.Writer, tr *trajectory.Trajectory) error {
	term := viz.NewTerminal(plotWidth, plotHeight)
	term.Plain = noColor
	return term.Render(w, tr.Positions(), tr.Constants.R)
}

func runDefault(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== Orbital Trajectory Simulator ===")
	fmt.Fprintln(out, "Simulating...")

	tr, err := simulate(cmd.Context(), config.DefaultConfig())
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Simulation complete. Rendering trajectory.")
	return renderTerminal(out, tr)
}
