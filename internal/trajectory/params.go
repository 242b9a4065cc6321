package trajectory

import (
	"fmt"
	"math"
	"time"

	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/dynamo"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/integrators"
)

const (
	DefaultSamples   = 10000
	DefaultRTol      = 1e-8
	DefaultATol      = 1e-10
	DefaultMaxSteps  = 1000000
	DefaultFixedStep = 1.0
	DefaultDuration  = 86400.0
)

// Params are the launch conditions of one run, in SI units with the angle in
// degrees from the +x axis.
//
// Mass is carried through to results but never enters the dynamics: under the
// point-mass two-body model the satellite's acceleration does not depend on
// its own mass. Do not add a reduced-mass correction.
type Params struct {
	Mass     float64 `json:"mass" yaml:"mass"`
	Altitude float64 `json:"altitude" yaml:"altitude"`
	Speed    float64 `json:"speed" yaml:"speed"`
	AngleDeg float64 `json:"angle_deg" yaml:"angle_deg"`
	Duration float64 `json:"duration" yaml:"duration"`
}

// DefaultParams is the reference scenario: 1000 kg at 400 km, 7800 m/s,
// 0 degrees, one day.
func DefaultParams() Params {
	return Params{
		Mass:     1000,
		Altitude: 400000,
		Speed:    7800,
		AngleDeg: 0,
		Duration: DefaultDuration,
	}
}

func (p Params) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"mass", p.Mass},
		{"altitude", p.Altitude},
		{"speed", p.Speed},
		{"angle_deg", p.AngleDeg},
		{"duration", p.Duration},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return dynamo.Bounds(f.name, f.value, "must be finite")
		}
	}
	if p.Mass < 0 {
		return dynamo.Bounds("mass", p.Mass, "must be >= 0")
	}
	if p.Altitude < 0 {
		return dynamo.Bounds("altitude", p.Altitude, "must be >= 0 (start outside the primary)")
	}
	if p.Speed < 0 {
		return dynamo.Bounds("speed", p.Speed, "must be >= 0")
	}
	if p.Duration < 0 {
		return dynamo.Bounds("duration", p.Duration, "must be >= 0")
	}
	return nil
}

// Options configure the solver and the output grid.
type Options struct {
	Method    string        `json:"method" yaml:"method"`
	Samples   int           `json:"samples" yaml:"samples"`
	RTol      float64       `json:"rtol" yaml:"rtol"`
	ATol      float64       `json:"atol" yaml:"atol"`
	MaxSteps  int           `json:"max_steps" yaml:"max_steps"`   // accepted + rejected attempts, 0 = unlimited
	MaxStep   float64       `json:"max_step" yaml:"max_step"`     // 0 = unbounded
	FirstStep float64       `json:"first_step" yaml:"first_step"` // 0 = estimated
	FixedStep float64       `json:"fixed_step" yaml:"fixed_step"` // fixed-step methods only
	Timeout   time.Duration `json:"timeout" yaml:"timeout"`       // 0 = none
}

func DefaultOptions() Options {
	return Options{
		Method:    integrators.Default,
		Samples:   DefaultSamples,
		RTol:      DefaultRTol,
		ATol:      DefaultATol,
		MaxSteps:  DefaultMaxSteps,
		FixedStep: DefaultFixedStep,
	}
}

func (o Options) Tolerance() dynamo.Tolerance {
	return dynamo.Tolerance{Rel: o.RTol, Abs: o.ATol}
}

// Validate checks the options against a run of the given duration.
func (o Options) Validate(duration float64) error {
	if _, err := integrators.New(o.Method); err != nil {
		return fmt.Errorf("%w: %v", dynamo.ErrParameterBounds, err)
	}
	if o.Samples < 1 {
		return dynamo.Bounds("samples", float64(o.Samples), "must be >= 1")
	}
	if duration > 0 && o.Samples < 2 {
		return dynamo.Bounds("samples", float64(o.Samples), "must be >= 2 when duration > 0")
	}
	if !(o.RTol >= 100*epsilon) || math.IsInf(o.RTol, 0) {
		return dynamo.Bounds("rtol", o.RTol, fmt.Sprintf("must be finite and >= %g", 100*epsilon))
	}
	if !(o.ATol > 0) || math.IsInf(o.ATol, 0) {
		return dynamo.Bounds("atol", o.ATol, "must be finite and > 0")
	}
	if o.MaxSteps < 0 {
		return dynamo.Bounds("max_steps", float64(o.MaxSteps), "must be >= 0")
	}
	if o.MaxStep < 0 || math.IsNaN(o.MaxStep) {
		return dynamo.Bounds("max_step", o.MaxStep, "must be >= 0")
	}
	if o.FirstStep < 0 || math.IsNaN(o.FirstStep) || math.IsInf(o.FirstStep, 0) {
		return dynamo.Bounds("first_step", o.FirstStep, "must be finite and >= 0")
	}
	if !integrators.IsAdaptive(o.Method) && (!(o.FixedStep > 0) || math.IsInf(o.FixedStep, 0)) {
		return dynamo.Bounds("fixed_step", o.FixedStep, "must be finite and > 0")
	}
	if o.Timeout < 0 {
		return dynamo.Bounds("timeout", o.Timeout.Seconds(), "must be >= 0")
	}
	return nil
}

// machine epsilon for float64
const epsilon = 2.220446049250313e-16
