package trajectory

import (
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/dynamo"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/physics"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
)

// Trajectory is the sampled solution of one run. States[i] is (x, y, vx, vy)
// at Times[i]. The caller owns it; nothing else keeps a reference.
type Trajectory struct {
	Params    Params
	Constants physics.Constants
	Times     []float64
	States    []dynamo.State
	Stats     Stats
}

func (tr *Trajectory) Len() int { return len(tr.States) }

func (tr *Trajectory) Initial() dynamo.State { return tr.States[0] }

func (tr *Trajectory) Final() dynamo.State { return tr.States[len(tr.States)-1] }

// Positions returns the (x, y) samples in order.
func (tr *Trajectory) Positions() []r2.Vec {
	pts := make([]r2.Vec, len(tr.States))
	for i, s := range tr.States {
		pts[i] = r2.Vec{X: s[0], Y: s[1]}
	}
	return pts
}

// Columns returns the samples as four parallel slices.
func (tr *Trajectory) Columns() (x, y, vx, vy []float64) {
	n := len(tr.States)
	x, y, vx, vy = make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i, s := range tr.States {
		x[i], y[i], vx[i], vy[i] = s[0], s[1], s[2], s[3]
	}
	return x, y, vx, vy
}

func (tr *Trajectory) Radius(i int) float64 { return physics.Radius(tr.States[i]) }

func (tr *Trajectory) Altitude(i int) float64 { return tr.Radius(i) - tr.Constants.R }

func (tr *Trajectory) Speed(i int) float64 { return physics.Speed(tr.States[i]) }

func (tr *Trajectory) Energy(i int) float64 {
	return physics.SpecificEnergy(tr.States[i], tr.Constants)
}

func (tr *Trajectory) AngularMomentum(i int) float64 {
	return physics.AngularMomentum(tr.States[i])
}

// Series evaluates f at every sample.
func (tr *Trajectory) Series(f func(i int) float64) []float64 {
	out := make([]float64, len(tr.States))
	for i := range out {
		out[i] = f(i)
	}
	return out
}

func (tr *Trajectory) Radii() []float64 { return tr.Series(tr.Radius) }

// RadiusRange returns the smallest and largest sampled distance from the
// primary's center.
func (tr *Trajectory) RadiusRange() (lo, hi float64) {
	radii := tr.Radii()
	return floats.Min(radii), floats.Max(radii)
}
