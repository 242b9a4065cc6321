package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/config"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/metrics"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/storage"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/viz"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveScenario(cmd, preset)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "running %s scenario...\n", name)
	start := time.Now()

	tr, err := simulate(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	values := metrics.Evaluate(tr, metrics.Standard(tr.Constants)...)
	runID, err := st.Save(name, tr, values)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "completed in %v\n", elapsed)
	fmt.Fprintf(out, "run id: %s\n", runID)
	fmt.Fprintf(out, "samples: %d\n", tr.Len())
	fmt.Fprintf(out, "solver: %s, %d steps, %d rejected, %d evaluations\n",
		tr.Stats.Method, tr.Stats.Steps, tr.Stats.Rejected, tr.Stats.Evaluations)
	fmt.Fprintln(out, "\nmetrics:")
	printMetrics(out, values)

	if showPlot {
		fmt.Fprintln(out)
		return renderTerminal(out, tr)
	}
	return nil
}

func printMetrics(w io.Writer, values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %.6g\n", name, values[name])
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tSPEED\tANGLE\tMETHOD\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0fs\t%.1f\t%.1f\t%s\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Params.Duration,
			run.Params.Speed,
			run.Params.AngleDeg,
			run.Stats.Method,
			run.Stats.Steps,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if tr.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "scenario: %s\n", meta.Scenario)
	fmt.Fprintf(out, "samples: %d\n\n", tr.Len())

	if err := renderTerminal(out, tr); err != nil {
		return err
	}

	altitudes := tr.Series(tr.Altitude)
	for i := range altitudes {
		altitudes[i] /= 1000
	}

	series := []struct {
		caption string
		data    []float64
	}{
		{"altitude (km)", altitudes},
		{"speed (m/s)", tr.Series(tr.Speed)},
		{"specific energy (J/kg)", tr.Series(tr.Energy)},
	}

	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(s.caption),
		)
		fmt.Fprintf(out, "\n%s\n", graph)
	}
	return nil
}

func svgRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	_, tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if err := viz.NewSVG(800, 800).Render(w, tr.Positions(), tr.Constants.R); err != nil {
		return err
	}
	if outFile != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", outFile)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	_, tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(cmd.OutOrStdout(), tr)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(cmd.OutOrStdout(), meta.Scenario, tr, meta.Metrics)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tALTITUDE\tSPEED\tANGLE\tDURATION\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		l := p.Config.Launch
		fmt.Fprintf(w, "%s\t%.0f km\t%.1f m/s\t%.0f\t%.0fs\t%s\n",
			name, l.Altitude/1000, l.Speed, l.AngleDeg, l.Duration, p.Description)
	}
	return w.Flush()
}

func initScenario(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
	}
	if err := config.Save(scenarioFile, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", scenarioFile)
	return nil
}
