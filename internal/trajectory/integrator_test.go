package trajectory

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/dynamo"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/physics"
)

func circularParams(duration float64) Params {
	r := physics.Earth.R + 400e3
	return Params{
		Mass:     1000,
		Altitude: 400e3,
		Speed:    physics.Earth.CircularSpeed(r),
		AngleDeg: 90,
		Duration: duration,
	}
}

func mustSucceed(t *testing.T, res Result) *Trajectory {
	t.Helper()
	tr, err := Unpack(res)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	return tr
}

func mustFail(t *testing.T, res Result) Failure {
	t.Helper()
	f, ok := res.(Failure)
	if !ok {
		t.Fatalf("expected failure, got %T", res)
	}
	return f
}

func TestInitialState(t *testing.T) {
	x := InitialState(physics.Earth, DefaultParams())
	want := dynamo.State{6771000, 0, 7800, 0}
	for i := range want {
		if x[i] != want[i] {
			t.Errorf("component %d: expected %g, got %g", i, want[i], x[i])
		}
	}

	p := DefaultParams()
	p.AngleDeg = 90
	x = InitialState(physics.Earth, p)
	if math.Abs(x[2]) > 1e-9 || math.Abs(x[3]-7800) > 1e-9 {
		t.Errorf("90 degrees should launch along +y, got (%g, %g)", x[2], x[3])
	}
}

func TestSampleTimes(t *testing.T) {
	times := SampleTimes(86400, 10000)
	if len(times) != 10000 {
		t.Fatalf("expected 10000 samples, got %d", len(times))
	}
	if times[0] != 0 {
		t.Errorf("first sample should be 0, got %g", times[0])
	}
	if times[len(times)-1] != 86400 {
		t.Errorf("last sample should be exactly the duration, got %.17g", times[len(times)-1])
	}
	for i := 1; i < len(times); i++ {
		if !(times[i] > times[i-1]) {
			t.Fatalf("sample times not strictly increasing at %d", i)
		}
	}

	if got := SampleTimes(0, 10000); len(got) != 1 || got[0] != 0 {
		t.Errorf("zero duration should give the single time 0, got %v", got)
	}
}

func TestRunZeroDuration(t *testing.T) {
	p := DefaultParams()
	p.Duration = 0

	tr := mustSucceed(t, New(physics.Earth, DefaultOptions(), nil).Run(context.Background(), p))

	if tr.Len() != 1 {
		t.Fatalf("expected a single sample, got %d", tr.Len())
	}
	x0 := InitialState(physics.Earth, p)
	for i := range x0 {
		if tr.Initial()[i] != x0[i] {
			t.Errorf("sample differs from the initial state at %d", i)
		}
	}
	if tr.Stats.Steps != 0 {
		t.Errorf("expected no solver steps, got %d", tr.Stats.Steps)
	}
}

func TestRunRejectsInvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
	}{
		{"negative altitude", func(p *Params) { p.Altitude = -1 }},
		{"negative speed", func(p *Params) { p.Speed = -1 }},
		{"negative duration", func(p *Params) { p.Duration = -1 }},
		{"negative mass", func(p *Params) { p.Mass = -1 }},
		{"nan speed", func(p *Params) { p.Speed = math.NaN() }},
		{"inf angle", func(p *Params) { p.AngleDeg = math.Inf(1) }},
	}

	in := New(physics.Earth, DefaultOptions(), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)
			f := mustFail(t, in.Run(context.Background(), p))
			if !errors.Is(f, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", f.Reason)
			}
			if f.Stats.Steps != 0 {
				t.Errorf("rejected input should not step, got %d steps", f.Stats.Steps)
			}
		})
	}
}

func TestRunRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"unknown method", func(o *Options) { o.Method = "bogus" }},
		{"zero rtol", func(o *Options) { o.RTol = 0 }},
		{"zero atol", func(o *Options) { o.ATol = 0 }},
		{"one sample", func(o *Options) { o.Samples = 1 }},
		{"negative max step", func(o *Options) { o.MaxStep = -1 }},
		{"fixed step missing", func(o *Options) { o.Method = "rk4"; o.FixedStep = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			f := mustFail(t, New(physics.Earth, opts, nil).Run(context.Background(), circularParams(60)))
			if !errors.Is(f, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", f.Reason)
			}
		})
	}
}

func TestRunRejectsInvalidConstants(t *testing.T) {
	c := physics.Earth
	c.M = 0
	f := mustFail(t, New(c, DefaultOptions(), nil).Run(context.Background(), circularParams(60)))
	if !errors.Is(f, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", f.Reason)
	}
}

func TestRunStepBudget(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxSteps = 5

	f := mustFail(t, New(physics.Earth, opts, nil).Run(context.Background(), circularParams(5400)))

	if !errors.Is(f, dynamo.ErrStepBudget) {
		t.Fatalf("expected ErrStepBudget, got %v", f.Reason)
	}
	if attempts := f.Stats.Steps + f.Stats.Rejected; attempts != 5 {
		t.Errorf("expected 5 attempts, got %d", attempts)
	}
	if f.Step != f.Stats.Steps {
		t.Errorf("failure step %d does not match stats %d", f.Step, f.Stats.Steps)
	}
	if f.Time <= 0 {
		t.Errorf("failure should be located after t=0, got %g", f.Time)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := mustFail(t, New(physics.Earth, DefaultOptions(), nil).Run(ctx, circularParams(5400)))
	if !errors.Is(f, dynamo.ErrContextCanceled) {
		t.Errorf("expected ErrContextCanceled, got %v", f.Reason)
	}
}

func TestRunTimeout(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxSteps = 0
	opts.Timeout = time.Millisecond

	f := mustFail(t, New(physics.Earth, opts, nil).Run(context.Background(), circularParams(1e9)))
	if !errors.Is(f, dynamo.ErrContextCanceled) {
		t.Errorf("expected ErrContextCanceled, got %v", f.Reason)
	}
}

func TestRunDeterministic(t *testing.T) {
	in := New(physics.Earth, DefaultOptions(), nil)
	a := mustSucceed(t, in.Run(context.Background(), circularParams(3000)))
	b := mustSucceed(t, in.Run(context.Background(), circularParams(3000)))

	for i := range a.States {
		for j := range a.States[i] {
			if a.States[i][j] != b.States[i][j] {
				t.Fatalf("runs differ at sample %d component %d", i, j)
			}
		}
	}
	if a.Stats.Steps != b.Stats.Steps || a.Stats.Evaluations != b.Stats.Evaluations {
		t.Errorf("solver work differs: %+v vs %+v", a.Stats, b.Stats)
	}
}

func TestRunFixedStepMethods(t *testing.T) {
	r := physics.Earth.R + 400e3
	period := physics.Earth.CircularPeriod(r)

	tests := []struct {
		method    string
		evalsStep int
		tolerance float64
	}{
		{"rk4", 4, 1e-6},
		{"euler", 1, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Method = tt.method
			opts.FixedStep = 10
			opts.Samples = 100

			tr := mustSucceed(t, New(physics.Earth, opts, nil).Run(context.Background(), circularParams(period)))

			if tr.Stats.Method != tt.method {
				t.Errorf("expected method %s, got %s", tt.method, tr.Stats.Method)
			}
			if tr.Stats.Evaluations != tt.evalsStep*tr.Stats.Steps {
				t.Errorf("expected %d evaluations per step, got %d for %d steps",
					tt.evalsStep, tr.Stats.Evaluations, tr.Stats.Steps)
			}
			drift := math.Abs(tr.Radius(tr.Len()-1)-r) / r
			if drift > tt.tolerance {
				t.Errorf("radius drift %.3e exceeds %.1e", drift, tt.tolerance)
			}
		})
	}
}

func TestRunStats(t *testing.T) {
	tr := mustSucceed(t, New(physics.Earth, DefaultOptions(), nil).Run(context.Background(), circularParams(600)))

	if tr.Stats.Method != "rk45" {
		t.Errorf("expected rk45, got %s", tr.Stats.Method)
	}
	if tr.Stats.Steps < tr.Len()-1 {
		t.Errorf("every sample needs at least one step: %d steps for %d samples", tr.Stats.Steps, tr.Len())
	}
	if tr.Stats.Evaluations < 6*tr.Stats.Steps {
		t.Errorf("too few evaluations: %d for %d steps", tr.Stats.Evaluations, tr.Stats.Steps)
	}
	if tr.Params != circularParams(600) {
		t.Errorf("params not carried through: %+v", tr.Params)
	}
}

func TestRunMaxStep(t *testing.T) {
	opts := DefaultOptions()
	opts.Samples = 2
	opts.MaxStep = 1

	tr := mustSucceed(t, New(physics.Earth, opts, nil).Run(context.Background(), circularParams(100)))
	if tr.Stats.Steps < 100 {
		t.Errorf("max step of 1 s over 100 s needs at least 100 steps, got %d", tr.Stats.Steps)
	}
}

func TestUnpack(t *testing.T) {
	tr := &Trajectory{}
	got, err := Unpack(Success{Trajectory: tr})
	if err != nil || got != tr {
		t.Errorf("unexpected unpack of success: %v, %v", got, err)
	}

	f := Failure{Reason: &dynamo.SimulationError{Step: 3, Time: 1.5, Wrapped: dynamo.ErrStepTooSmall}}
	got, err = Unpack(f)
	if got != nil || !errors.Is(err, dynamo.ErrStepTooSmall) {
		t.Errorf("unexpected unpack of failure: %v, %v", got, err)
	}
}

func TestNewFailureLocatesStep(t *testing.T) {
	err := &dynamo.SimulationError{Step: 42, Time: 12.5, Wrapped: dynamo.ErrInvalidState}
	f := newFailure(err, Stats{})
	if f.Step != 42 || f.Time != 12.5 {
		t.Errorf("expected step 42 at t=12.5, got step %d at t=%g", f.Step, f.Time)
	}
	if !errors.Is(f, dynamo.ErrInvalidState) {
		t.Error("failure should unwrap to its reason")
	}
}

func TestColumnsMatchStates(t *testing.T) {
	tr := mustSucceed(t, New(physics.Earth, DefaultOptions(), nil).Run(context.Background(), circularParams(600)))

	x, y, vx, vy := tr.Columns()
	for _, col := range [][]float64{x, y, vx, vy} {
		if len(col) != tr.Len() {
			t.Fatalf("column length %d, expected %d", len(col), tr.Len())
		}
	}
	for i, s := range tr.States {
		if x[i] != s[0] || y[i] != s[1] || vx[i] != s[2] || vy[i] != s[3] {
			t.Fatalf("sample %d: columns (%g, %g, %g, %g) differ from state %v", i, x[i], y[i], vx[i], vy[i], s)
		}
	}
}
