// Package vehicle implements the Ackermann bicycle-model kinematic
// integrator.
//
// A [Car] owns the vehicle state (position, heading, speed set-point, steer
// command) and advances it one sample interval per [Car.Step] given a
// resolved [input.Command]. The model steers only the front axle; the slip
// angle beta between body heading and velocity follows from the rear-axle
// geometry:
//
//	beta = atan2(Lb * tan(delta), Lf + Lb)
//
// Heading is always normalized into [0, 2pi). The update is a deterministic
// explicit-Euler step; degenerate geometry is rejected at construction, never
// per tick.
package vehicle
