package metrics

import (
	"math"

	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/dynamo"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/physics"
)

// drift tracks the largest relative deviation of a quantity from its first
// observed value.
type drift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func (d *drift) observe(v float64) {
	if d.samples == 0 {
		d.initial = v
	}
	d.samples++

	if d.initial != 0 {
		d.maxDrift = math.Max(d.maxDrift, math.Abs(v-d.initial)/math.Abs(d.initial))
	}
}

func (d *drift) reset() { *d = drift{} }

type EnergyDrift struct {
	name string
	dyn  dynamo.System
	drift
}

func NewEnergyDrift(dyn dynamo.System) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		dyn:  dyn,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, t float64) {
	ec, ok := e.dyn.(dynamo.Hamiltonian)
	if !ok {
		return
	}
	e.observe(ec.Energy(x))
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() { e.reset() }

// MomentumDrift is the worst relative change of the specific angular momentum.
// A radial trajectory has zero momentum throughout and reports zero drift.
type MomentumDrift struct {
	name string
	drift
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(x dynamo.State, t float64) {
	m.observe(physics.AngularMomentum(x))
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() { m.reset() }
