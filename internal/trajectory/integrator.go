package trajectory

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/dynamo"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/integrators"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/physics"
	"gonum.org/v1/gonum/floats"
)

// Integrator turns launch parameters into a sampled trajectory. It keeps no
// state between runs and is safe for concurrent use.
type Integrator struct {
	c      physics.Constants
	opts   Options
	logger *slog.Logger
}

// New creates an Integrator for the given primary body. A nil logger discards
// output.
func New(c physics.Constants, opts Options, logger *slog.Logger) *Integrator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Integrator{c: c, opts: opts, logger: logger}
}

func (in *Integrator) Constants() physics.Constants { return in.c }

func (in *Integrator) Options() Options { return in.opts }

func (in *Integrator) method() string {
	if in.opts.Method == "" {
		return integrators.Default
	}
	return in.opts.Method
}

// InitialState places the satellite on the +x axis at the given altitude,
// with its velocity at AngleDeg from the +x axis.
func InitialState(c physics.Constants, p Params) dynamo.State {
	angle := p.AngleDeg * math.Pi / 180
	return dynamo.State{
		c.R + p.Altitude,
		0,
		p.Speed * math.Cos(angle),
		p.Speed * math.Sin(angle),
	}
}

// SampleTimes returns n evenly spaced times over [0, duration], both ends
// included. A zero duration yields the single time 0.
func SampleTimes(duration float64, n int) []float64 {
	if duration == 0 || n < 2 {
		return []float64{0}
	}
	times := floats.Span(make([]float64, n), 0, duration)
	times[n-1] = duration
	return times
}

// Run integrates one trajectory. Every failure, including invalid input, is
// reported as a Failure; no partial trajectory is returned.
func (in *Integrator) Run(ctx context.Context, p Params) Result {
	start := time.Now()
	stats := Stats{Method: in.method()}

	if err := in.validate(p); err != nil {
		in.logger.Warn("simulation rejected", "error", err)
		return newFailure(err, stats)
	}

	if in.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, in.opts.Timeout)
		defer cancel()
	}

	stepper, err := integrators.New(stats.Method)
	if err != nil {
		return newFailure(err, stats)
	}

	times := SampleTimes(p.Duration, in.opts.Samples)
	r := &run{
		sys:    &countingSystem{System: physics.NewTwoBody(in.c)},
		opts:   in.opts,
		times:  times,
		states: make([]dynamo.State, len(times)),
	}
	r.states[0] = InitialState(in.c, p)

	in.logger.Debug("simulation started",
		"method", stats.Method,
		"altitude", p.Altitude,
		"speed", p.Speed,
		"angle_deg", p.AngleDeg,
		"duration", p.Duration,
		"samples", len(times),
	)

	if adaptive, ok := stepper.(dynamo.AdaptiveIntegrator); ok {
		err = r.integrateAdaptive(ctx, adaptive)
	} else {
		err = r.integrateFixed(ctx, stepper)
	}

	stats.Steps = r.steps
	stats.Rejected = r.rejected
	stats.Evaluations = r.sys.evaluations
	stats.Elapsed = time.Since(start)

	if err != nil {
		in.logger.Warn("simulation failed",
			"error", err,
			"steps", stats.Steps,
			"rejected", stats.Rejected,
		)
		return newFailure(err, stats)
	}

	in.logger.Debug("simulation finished",
		"steps", stats.Steps,
		"rejected", stats.Rejected,
		"nfev", stats.Evaluations,
		"elapsed", stats.Elapsed,
	)

	return Success{Trajectory: &Trajectory{
		Params:    p,
		Constants: in.c,
		Times:     times,
		States:    r.states,
		Stats:     stats,
	}}
}

func (in *Integrator) validate(p Params) error {
	if err := in.c.Validate(); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return in.opts.Validate(p.Duration)
}

// countingSystem records the number of right-hand side evaluations.
type countingSystem struct {
	dynamo.System
	evaluations int
}

func (c *countingSystem) Derive(x dynamo.State, t float64) dynamo.State {
	c.evaluations++
	return c.System.Derive(x, t)
}

// initialStepper is implemented by integrators that can estimate a first step.
type initialStepper interface {
	InitialStep(dyn dynamo.System, x dynamo.State, t float64, tol dynamo.Tolerance) float64
}

// run holds the mutable state of a single integration.
type run struct {
	sys      *countingSystem
	opts     Options
	times    []float64
	states   []dynamo.State
	steps    int
	rejected int
}

func (r *run) fail(t float64, x dynamo.State, err error) error {
	return &dynamo.SimulationError{Step: r.steps, Time: t, State: x.Clone(), Wrapped: err}
}

func (r *run) checkBudget(ctx context.Context, t float64, x dynamo.State) error {
	select {
	case <-ctx.Done():
		return r.fail(t, x, fmt.Errorf("%w: %v", dynamo.ErrContextCanceled, ctx.Err()))
	default:
	}
	if r.opts.MaxSteps > 0 && r.steps+r.rejected >= r.opts.MaxSteps {
		return r.fail(t, x, fmt.Errorf("%w: %d attempts", dynamo.ErrStepBudget, r.opts.MaxSteps))
	}
	return nil
}

// integrateAdaptive advances sample to sample, truncating the step that would
// cross a sample time so every sample is a solver node.
func (r *run) integrateAdaptive(ctx context.Context, integ dynamo.AdaptiveIntegrator) error {
	tol := r.opts.Tolerance()
	x := r.states[0]
	t := 0.0

	if len(r.times) == 1 {
		return nil
	}

	h := r.opts.FirstStep
	if h <= 0 {
		if est, ok := integ.(initialStepper); ok {
			h = est.InitialStep(r.sys, x, t, tol)
		} else {
			h = r.times[1]
		}
	}

	for i := 1; i < len(r.times); i++ {
		target := r.times[i]
		rejectedHere := false

		for t < target {
			if err := r.checkBudget(ctx, t, x); err != nil {
				return err
			}

			if r.opts.MaxStep > 0 && h > r.opts.MaxStep {
				h = r.opts.MaxStep
			}
			minStep := 10 * (math.Nextafter(t, math.Inf(1)) - t)
			if !(h >= minStep) {
				return r.fail(t, x, fmt.Errorf("%w: h=%g at t=%g", dynamo.ErrStepTooSmall, h, t))
			}

			step, last := h, false
			if t+step >= target {
				step, last = target-t, true
			}

			xNew, next, ok := integ.StepAdaptive(r.sys, x, t, step, tol)
			if !ok {
				r.rejected++
				rejectedHere = true
				h = next
				continue
			}
			if !xNew.IsValid() {
				return r.fail(t+step, xNew, dynamo.ErrInvalidState)
			}

			r.steps++
			if rejectedHere {
				next = math.Min(next, step)
				rejectedHere = false
			}

			x = xNew
			if last {
				t = target
				h = math.Max(h, next)
			} else {
				t += step
				h = next
			}
		}

		r.states[i] = x
	}

	return nil
}

func (r *run) integrateFixed(ctx context.Context, integ dynamo.Integrator) error {
	h := r.opts.FixedStep
	x := r.states[0]
	t := 0.0

	for i := 1; i < len(r.times); i++ {
		target := r.times[i]
		for t < target {
			if err := r.checkBudget(ctx, t, x); err != nil {
				return err
			}

			step, last := h, false
			if t+step >= target {
				step, last = target-t, true
			}

			xNew := integ.Step(r.sys, x, t, step)
			if !xNew.IsValid() {
				return r.fail(t+step, xNew, dynamo.ErrInvalidState)
			}

			r.steps++
			x = xNew
			if last {
				t = target
			} else {
				t += step
			}
		}

		r.states[i] = x
	}

	return nil
}
