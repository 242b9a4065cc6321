package main

import (
	"errors"
	"fmt"
	"math"
	"text/tabwriter"
	"time"

	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/integrators"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/metrics"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/physics"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/telemetry"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/trajectory"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/viz"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func runLive(cmd *cobra.Command, args []string) error {
	name := preset
	if len(args) > 0 {
		name = args[0]
	}
	cfg, title, err := resolveScenario(cmd, name)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "simulating %s...\n", title)
	tr, err := simulate(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		viz.NewReplay(title, tr, viz.CurrentTheme),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// compareMethods runs the same scenario with each method. The final position
// error is measured against the first method that succeeds.
func compareMethods(cmd *cobra.Command, args []string) error {
	methods := args
	if len(methods) == 0 {
		methods = []string{integrators.Default}
		for _, m := range integrators.Names() {
			if m != integrators.Default {
				methods = append(methods, m)
			}
		}
	}
	for _, m := range methods {
		if _, err := integrators.New(m); err != nil {
			return err
		}
	}

	base, name, err := resolveScenario(cmd, comparePreset)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "comparing %d methods on %s (%.0f s)\n\n", len(methods), name, base.Launch.Duration)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tOUTCOME\tSTEPS\tREJECTED\tEVALS\tELAPSED\tENERGY DRIFT\tMOMENTUM DRIFT\tFINAL ERROR (m)")

	var ref *trajectory.Trajectory
	for _, m := range methods {
		cfg := base.Clone()
		cfg.Solver.Method = m

		tr, err := simulate(cmd.Context(), cfg)
		if err != nil {
			fmt.Fprintf(w, "%s\t%s\t-\t-\t-\t-\t-\t-\t-\n", m, telemetry.Outcome(err))
			continue
		}
		if ref == nil {
			ref = tr
		}

		values := metrics.Evaluate(tr, metrics.NewEnergyDrift(physics.NewTwoBody(tr.Constants)), metrics.NewMomentumDrift())
		a, b := ref.Final(), tr.Final()
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%v\t%.3e\t%.3e\t%.3f\n",
			m,
			telemetry.Outcome(nil),
			tr.Stats.Steps,
			tr.Stats.Rejected,
			tr.Stats.Evaluations,
			tr.Stats.Elapsed.Round(time.Microsecond),
			values["energy_drift"],
			values["momentum_drift"],
			math.Hypot(b[0]-a[0], b[1]-a[1]),
		)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, name, err := resolveScenario(cmd, sweepPreset)
	if err != nil {
		return err
	}

	params := trajectory.SpeedAngleGrid(base.Params(), sweepSpeeds, sweepAngles)
	in := trajectory.New(base.Constants(), base.Options(), logger)
	results := trajectory.NewSweep(in, workers).Run(cmd.Context(), params)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "sweep of %s: %d runs\n\n", name, len(results))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SPEED\tANGLE\tOUTCOME\tORBIT\tMIN ALT (km)\tMAX ALT (km)\tSTEPS")

	for i, res := range results {
		recorder.Observe(res)
		p := params[i]

		tr, err := trajectory.Unpack(res)
		if err != nil {
			var f trajectory.Failure
			at := ""
			if errors.As(err, &f) && f.Time > 0 {
				at = fmt.Sprintf(" at t=%.0fs", f.Time)
			}
			fmt.Fprintf(w, "%.1f\t%.1f\t%s%s\t-\t-\t-\t%d\n", p.Speed, p.AngleDeg, telemetry.Outcome(err), at, f.Stats.Steps)
			continue
		}

		values := metrics.Evaluate(tr, metrics.Standard(tr.Constants)...)
		fmt.Fprintf(w, "%.1f\t%.1f\t%s\t%s\t%.1f\t%.1f\t%d\n",
			p.Speed,
			p.AngleDeg,
			telemetry.Outcome(nil),
			orbitKind(tr, values),
			values["min_altitude"]/1000,
			(values["apoapsis"]-tr.Constants.R)/1000,
			tr.Stats.Steps,
		)
	}
	return w.Flush()
}

func orbitKind(tr *trajectory.Trajectory, values map[string]float64) string {
	switch {
	case values["samples_below_surface"] > 0:
		return "impact"
	case tr.Energy(0) >= 0:
		return "escape"
	default:
		return "bound"
	}
}
