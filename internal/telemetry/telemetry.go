// Package telemetry records solver activity as Prometheus metrics.
package telemetry

import (
	"errors"

	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/dynamo"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/integrators"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/trajectory"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder owns a private registry so several recorders can coexist in one
// process and in tests.
type Recorder struct {
	registry *prometheus.Registry

	runsTotal        *prometheus.CounterVec
	stepsPerRun      *prometheus.HistogramVec
	rejectedTotal    *prometheus.CounterVec
	evaluationsTotal *prometheus.CounterVec
	runDuration      *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orbitsim_runs_total",
				Help: "Total number of trajectory runs by outcome.",
			},
			[]string{"method", "outcome"},
		),
		stepsPerRun: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "orbitsim_solver_steps",
				Help:    "Accepted solver steps per run.",
				Buckets: prometheus.ExponentialBuckets(10, 4, 8),
			},
			[]string{"method"},
		),
		rejectedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orbitsim_solver_rejected_steps_total",
				Help: "Total number of rejected adaptive steps.",
			},
			[]string{"method"},
		),
		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orbitsim_rhs_evaluations_total",
				Help: "Total number of equation-of-motion evaluations.",
			},
			[]string{"method"},
		),
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "orbitsim_run_duration_seconds",
				Help:    "Wall-clock duration of a trajectory run in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}

	r.registry.MustRegister(
		r.runsTotal,
		r.stepsPerRun,
		r.rejectedTotal,
		r.evaluationsTotal,
		r.runDuration,
	)
	return r
}

func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Outcome classifies a run error into a low-cardinality label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, dynamo.ErrParameterBounds):
		return "invalid_input"
	case errors.Is(err, dynamo.ErrStepTooSmall):
		return "step_too_small"
	case errors.Is(err, dynamo.ErrStepBudget):
		return "step_budget"
	case errors.Is(err, dynamo.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, dynamo.ErrContextCanceled):
		return "canceled"
	default:
		return "error"
	}
}

// Observe records one run result.
func (r *Recorder) Observe(res trajectory.Result) {
	var (
		stats trajectory.Stats
		err   error
	)
	switch v := res.(type) {
	case trajectory.Success:
		stats = v.Trajectory.Stats
	case trajectory.Failure:
		stats, err = v.Stats, v.Reason
	default:
		return
	}

	method := methodLabel(stats.Method)
	r.runsTotal.WithLabelValues(method, Outcome(err)).Inc()
	r.stepsPerRun.WithLabelValues(method).Observe(float64(stats.Steps))
	r.rejectedTotal.WithLabelValues(method).Add(float64(stats.Rejected))
	r.evaluationsTotal.WithLabelValues(method).Add(float64(stats.Evaluations))
	r.runDuration.WithLabelValues(method).Observe(stats.Elapsed.Seconds())
}

// methodLabel keeps the method label to registered integrator names.
func methodLabel(name string) string {
	if _, err := integrators.New(name); err != nil {
		return "unknown"
	}
	if name == "" {
		return integrators.Default
	}
	return name
}

// WriteTextfile writes the current values in the text exposition format,
// for the node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
