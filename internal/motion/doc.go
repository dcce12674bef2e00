// Package motion provides the core primitives for 1-D vertical ball motion.
//
// The package defines the fundamental types shared by the simulation
// pipeline:
//
//   - [State]: one (time, height, velocity) sample
//   - [Trajectory]: fixed-length ordered sample sequence
//   - [Params]: validated simulation inputs
//   - [Metric], [Observer]: per-sample instrumentation hooks
//
// # Example
//
//	p := motion.DefaultParams()
//	smp := sampler.New(p)
//	traj, _ := smp.Run()
//
// # Thread Safety
//
// States and trajectories are plain values; a trajectory is owned by the
// sampler run that produced it and is read-only downstream. Independent
// simulations share no state and may run concurrently.
package motion
