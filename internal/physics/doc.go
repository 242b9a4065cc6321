// Package physics provides the orbital motion model.
//
// [TwoBody] implements the [dynamo.System] interface for a point-mass
// satellite around a spherical, non-rotating primary described by
// [Constants]. The underlying right-hand side is the pure function
// [Derivative], which takes the constants explicitly.
//
// # Conserved quantities
//
// The force is central and conservative, so both [SpecificEnergy] and
// [AngularMomentum] are constant along exact trajectories and serve as
// accuracy checks for numerical ones:
//
//	dyn := physics.NewTwoBody(physics.Earth)
//	if h, ok := dyn.(dynamo.Hamiltonian); ok {
//	    energy := h.Energy(state)
//	}
package physics
