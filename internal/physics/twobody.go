package physics

import (
	"math"

	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/dynamo"
)

// Derivative returns d/dt of the planar state (x, y, vx, vy) under inverse-square
// gravity toward the origin. t is unused: the field is time-invariant.
//
// The acceleration is undefined at r = 0 and the result is then non-finite;
// callers are expected to detect that.
func Derivative(_ float64, x dynamo.State, c Constants) dynamo.State {
	px, py, vx, vy := x[0], x[1], x[2], x[3]
	r := math.Sqrt(px*px + py*py)
	k := -c.G * c.M / (r * r * r)
	return dynamo.State{vx, vy, k * px, k * py}
}

// TwoBody implements a point mass orbiting a fixed primary.
// State: [x, y, vx, vy] relative to the primary's center.
//
// The orbiting body's own mass does not appear: its acceleration is
// independent of it, and no reduced-mass correction is applied.
type TwoBody struct {
	c Constants
}

func NewTwoBody(c Constants) *TwoBody {
	return &TwoBody{c: c}
}

func (tb *TwoBody) StateDim() int { return 4 }

func (tb *TwoBody) Derive(x dynamo.State, t float64) dynamo.State {
	return Derivative(t, x, tb.c)
}

func (tb *TwoBody) Constants() Constants { return tb.c }

// Energy implements dynamo.Hamiltonian: specific orbital energy v²/2 - GM/r.
func (tb *TwoBody) Energy(x dynamo.State) float64 {
	return SpecificEnergy(x, tb.c)
}

// SpecificEnergy is the kinetic plus potential energy per unit mass.
func SpecificEnergy(x dynamo.State, c Constants) float64 {
	v2 := x[2]*x[2] + x[3]*x[3]
	return 0.5*v2 - c.Mu()/Radius(x)
}

// AngularMomentum is the specific angular momentum x*vy - y*vx.
func AngularMomentum(x dynamo.State) float64 {
	return x[0]*x[3] - x[1]*x[2]
}

// Radius is the distance from the primary's center.
func Radius(x dynamo.State) float64 {
	return math.Hypot(x[0], x[1])
}

// Speed is the magnitude of the velocity.
func Speed(x dynamo.State) float64 {
	return math.Hypot(x[2], x[3])
}
