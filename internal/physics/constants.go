package physics

import (
	"math"

	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/dynamo"
)

// Constants describes the primary body. All values are SI:
// G in m^3 kg^-1 s^-2, M in kg, R in m.
type Constants struct {
	G float64
	M float64
	R float64
}

// Earth is the spherical, non-rotating Earth used by default.
var Earth = Constants{
	G: 6.67430e-11,
	M: 5.972e24,
	R: 6371e3,
}

// Mu returns the gravitational parameter G*M.
func (c Constants) Mu() float64 { return c.G * c.M }

// Validate checks that G, M and R are finite and strictly positive.
func (c Constants) Validate() error {
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"G", c.G},
		{"M", c.M},
		{"R", c.R},
	} {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) || p.value <= 0 {
			return dynamo.Bounds(p.name, p.value, "must be finite and > 0")
		}
	}
	return nil
}

// CircularSpeed is the speed of a circular orbit of radius r.
func (c Constants) CircularSpeed(r float64) float64 {
	return math.Sqrt(c.Mu() / r)
}

// EscapeSpeed is the speed at radius r with zero specific orbital energy.
func (c Constants) EscapeSpeed(r float64) float64 {
	return math.Sqrt(2 * c.Mu() / r)
}

// CircularPeriod is the period of a circular orbit of radius r.
func (c Constants) CircularPeriod(r float64) float64 {
	return 2 * math.Pi * math.Sqrt(r*r*r/c.Mu())
}

// VisVivaSpeed is the speed at radius r on an orbit with semi-major axis a.
func (c Constants) VisVivaSpeed(r, a float64) float64 {
	return math.Sqrt(c.Mu() * (2/r - 1/a))
}
