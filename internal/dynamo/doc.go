// Package dynamo provides the simulation primitives shared by the orbit
// propagator.
//
// The package defines the fundamental types for integrating ordinary
// differential equations (ODEs) of the form dX/dt = f(X, t):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE right-hand sides
//   - [Integrator]: fixed-step numerical integrator
//   - [AdaptiveIntegrator]: error-controlled integrator driven by a [Tolerance]
//
// # Example
//
//	dyn := physics.NewTwoBody(physics.Earth)
//	integ := integrators.NewRK45()
//	x, next, ok := integ.StepAdaptive(dyn, x0, 0, 10, dynamo.DefaultTolerance())
//
// # Errors
//
// Failures are reported with the sentinel errors in this package, usually
// wrapped in a [SimulationError] carrying the step and time at which the run
// stopped. Use [errors.Is] to classify them.
package dynamo
