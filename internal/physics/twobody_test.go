package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/dynamo"
)

func TestDerivativePointsToOrigin(t *testing.T) {
	r := Earth.R + 400e3
	x := dynamo.State{r, 0, 0, 7500}

	dx := Derivative(0, x, Earth)

	if dx[0] != 0 || dx[1] != 7500 {
		t.Errorf("position derivative should be the velocity, got (%f, %f)", dx[0], dx[1])
	}

	expected := -Earth.Mu() / (r * r)
	if math.Abs(dx[2]-expected) > 1e-12 {
		t.Errorf("expected ax %f, got %f", expected, dx[2])
	}
	if dx[3] != 0 {
		t.Errorf("expected zero ay on the x axis, got %f", dx[3])
	}
}

func TestDerivativeSurfaceGravity(t *testing.T) {
	// altitude 0, speed 0: r = R and |a| is the surface gravity
	x := dynamo.State{0, Earth.R, 0, 0}
	dx := Derivative(0, x, Earth)

	g := math.Hypot(dx[2], dx[3])
	if math.Abs(g-9.82) > 0.01 {
		t.Errorf("expected surface gravity ~9.82, got %f", g)
	}
	if dx[3] >= 0 {
		t.Errorf("acceleration should point toward the origin, got ay=%f", dx[3])
	}
}

func TestDerivativeIgnoresTime(t *testing.T) {
	x := dynamo.State{7e6, -1e6, 100, 7000}
	a := Derivative(0, x, Earth)
	b := Derivative(86400, x, Earth)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("derivative depends on time at index %d: %g vs %g", i, a[i], b[i])
		}
	}
}

func TestDerivativeDoesNotMutateInput(t *testing.T) {
	x := dynamo.State{7e6, 1e5, 10, 7000}
	orig := x.Clone()
	Derivative(0, x, Earth)
	for i := range x {
		if x[i] != orig[i] {
			t.Fatalf("input state modified at index %d", i)
		}
	}
}

func TestDerivativeSingularity(t *testing.T) {
	dx := Derivative(0, dynamo.State{0, 0, 0, 0}, Earth)
	if dx.IsValid() {
		t.Errorf("expected non-finite derivative at r = 0, got %v", dx)
	}
}

func TestTwoBodyDimensions(t *testing.T) {
	tb := NewTwoBody(Earth)
	if tb.StateDim() != 4 {
		t.Errorf("expected state dim 4, got %d", tb.StateDim())
	}
	if tb.Constants() != Earth {
		t.Errorf("constants not carried through")
	}
}

func TestTwoBodyEnergy(t *testing.T) {
	tb := NewTwoBody(Earth)
	r := Earth.R + 400e3

	circular := dynamo.State{r, 0, 0, Earth.CircularSpeed(r)}
	want := -Earth.Mu() / (2 * r)
	if got := tb.Energy(circular); math.Abs(got-want)/math.Abs(want) > 1e-12 {
		t.Errorf("circular energy = %g, want %g", got, want)
	}

	escape := dynamo.State{r, 0, 0, Earth.EscapeSpeed(r)}
	if got := tb.Energy(escape); math.Abs(got) > 1e-6 {
		t.Errorf("escape energy should be ~0, got %g", got)
	}
}

func TestAngularMomentum(t *testing.T) {
	tests := []struct {
		name string
		x    dynamo.State
		want float64
	}{
		{"tangential", dynamo.State{2, 0, 0, 3}, 6},
		{"radial", dynamo.State{2, 0, 3, 0}, 0},
		{"retrograde", dynamo.State{0, 2, 3, 0}, -6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AngularMomentum(tt.x); got != tt.want {
				t.Errorf("AngularMomentum(%v) = %g, want %g", tt.x, got, tt.want)
			}
		})
	}
}

func TestCircularPeriod(t *testing.T) {
	r := Earth.R + 400e3
	p := Earth.CircularPeriod(r)
	// ~92.4 minutes for a 400 km orbit
	if p < 5500 || p > 5600 {
		t.Errorf("unexpected 400 km period %f s", p)
	}
	if v := Earth.VisVivaSpeed(r, r); math.Abs(v-Earth.CircularSpeed(r)) > 1e-9 {
		t.Errorf("vis-viva with a = r should give the circular speed, got %f", v)
	}
}

func TestConstantsValidate(t *testing.T) {
	if err := Earth.Validate(); err != nil {
		t.Fatalf("Earth should be valid: %v", err)
	}

	bad := []Constants{
		{G: 0, M: 1, R: 1},
		{G: 1, M: -1, R: 1},
		{G: 1, M: 1, R: math.NaN()},
		{G: math.Inf(1), M: 1, R: 1},
	}
	for _, c := range bad {
		if err := c.Validate(); !errors.Is(err, dynamo.ErrParameterBounds) {
			t.Errorf("Validate(%+v) = %v, want ErrParameterBounds", c, err)
		}
	}
}
