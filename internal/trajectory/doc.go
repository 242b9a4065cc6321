// Package trajectory computes sampled planar orbits around a single primary.
//
// An [Integrator] takes launch [Params] (altitude, speed, angle, duration),
// builds the initial state on the +x axis and integrates the two-body
// equations on a grid of [Options.Samples] evenly spaced times. The outcome is
// a [Result], which is either a [Success] carrying the whole [Trajectory] or
// a [Failure] explaining why the run stopped:
//
//	in := trajectory.New(physics.Earth, trajectory.DefaultOptions(), logger)
//	switch r := in.Run(ctx, trajectory.DefaultParams()).(type) {
//	case trajectory.Success:
//	    fmt.Println(r.Trajectory.Final())
//	case trajectory.Failure:
//	    fmt.Println(r.Reason)
//	}
//
// [Sweep] runs many parameter sets concurrently and keeps results in input
// order.
package trajectory
