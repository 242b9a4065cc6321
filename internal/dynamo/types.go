package dynamo

import (
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Add returns s + other. Components missing from other are copied from s.
func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

// System is the right-hand side f(X, t) of an ODE.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Hamiltonian is implemented by systems with a conserved energy.
type Hamiltonian interface {
	Energy(x State) float64
}

// Integrator advances a state by one fixed step.
type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

// AdaptiveIntegrator attempts a step of size dt and reports whether the local
// error estimate met tol. next is the step size to use for the following
// attempt: a retry when ok is false, the next step otherwise.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(dyn System, x State, t, dt float64, tol Tolerance) (xNew State, next float64, ok bool)
}

// Tolerance bounds the local truncation error of one step, per component:
// |err_i| <= Abs + Rel*max(|x_i|, |xNew_i|).
type Tolerance struct {
	Rel float64
	Abs float64
}

func DefaultTolerance() Tolerance {
	return Tolerance{Rel: 1e-8, Abs: 1e-10}
}

// Scale returns the admissible error for a component moving from a to b.
func (tol Tolerance) Scale(a, b float64) float64 {
	return tol.Abs + tol.Rel*math.Max(math.Abs(a), math.Abs(b))
}

// RMSNorm returns sqrt(mean((v_i/scale_i)^2)).
func RMSNorm(v, scale []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	sum := 0.0
	for i := range v {
		q := v[i] / scale[i]
		sum += q * q
	}
	return math.Sqrt(sum / float64(len(v)))
}
