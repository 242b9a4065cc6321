package metrics

import (
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/dynamo"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/physics"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/trajectory"
)

// Metric accumulates a scalar over the samples of a trajectory.
type Metric interface {
	Name() string
	Observe(x dynamo.State, t float64)
	Value() float64
	Reset()
}

// Standard returns the metrics reported for every run around c.
func Standard(c physics.Constants) []Metric {
	return []Metric{
		NewEnergyDrift(physics.NewTwoBody(c)),
		NewMomentumDrift(),
		NewPeriapsis(),
		NewApoapsis(),
		NewMinAltitude(c.R),
		NewImpacts(c.R),
	}
}

// Evaluate resets each metric, feeds it every sample of tr and returns the
// values by name.
func Evaluate(tr *trajectory.Trajectory, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for i, x := range tr.States {
			m.Observe(x, tr.Times[i])
		}
		out[m.Name()] = m.Value()
	}
	return out
}
