package metrics

import (
	"math"

	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/dynamo"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/physics"
)

// Periapsis is the smallest sampled distance from the primary's center.
type Periapsis struct {
	name string
	min  float64
}

func NewPeriapsis() *Periapsis {
	return &Periapsis{name: "periapsis", min: math.Inf(1)}
}

func (p *Periapsis) Name() string { return p.name }

func (p *Periapsis) Observe(x dynamo.State, t float64) {
	p.min = math.Min(p.min, physics.Radius(x))
}

func (p *Periapsis) Value() float64 {
	if math.IsInf(p.min, 1) {
		return 0
	}
	return p.min
}

func (p *Periapsis) Reset() { p.min = math.Inf(1) }

// Apoapsis is the largest sampled distance from the primary's center.
type Apoapsis struct {
	name string
	max  float64
}

func NewApoapsis() *Apoapsis {
	return &Apoapsis{name: "apoapsis"}
}

func (a *Apoapsis) Name() string { return a.name }

func (a *Apoapsis) Observe(x dynamo.State, t float64) {
	a.max = math.Max(a.max, physics.Radius(x))
}

func (a *Apoapsis) Value() float64 { return a.max }

func (a *Apoapsis) Reset() { a.max = 0 }

// MinAltitude is the lowest sampled height above the surface. It goes
// negative when the trajectory passes through the primary, which the model
// does not prevent.
type MinAltitude struct {
	name   string
	radius float64
	peri   Periapsis
}

func NewMinAltitude(radius float64) *MinAltitude {
	return &MinAltitude{name: "min_altitude", radius: radius, peri: *NewPeriapsis()}
}

func (m *MinAltitude) Name() string { return m.name }

func (m *MinAltitude) Observe(x dynamo.State, t float64) { m.peri.Observe(x, t) }

func (m *MinAltitude) Value() float64 {
	if math.IsInf(m.peri.min, 1) {
		return 0
	}
	return m.peri.min - m.radius
}

func (m *MinAltitude) Reset() { m.peri.Reset() }

// Impacts counts the samples that lie inside the primary.
type Impacts struct {
	name   string
	radius float64
	inside int
}

func NewImpacts(radius float64) *Impacts {
	return &Impacts{name: "samples_below_surface", radius: radius}
}

func (im *Impacts) Name() string { return im.name }

func (im *Impacts) Observe(x dynamo.State, t float64) {
	if physics.Radius(x) < im.radius {
		im.inside++
	}
}

func (im *Impacts) Value() float64 { return float64(im.inside) }

func (im *Impacts) Reset() { im.inside = 0 }
