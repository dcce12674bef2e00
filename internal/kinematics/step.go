package kinematics

import (
	"math"

	"github.com/san-kum/gravgen/internal/motion"
)

// Step advances a state by one fixed increment dt under constant gravity:
//
//	v' = v - g*dt
//	h' = h + v*dt - 0.5*g*dt^2
//
// The position update uses the pre-step velocity. The ordering is part of the
// output contract: identical parameters must reproduce trajectories
// bit-for-bit, so this is deliberately not symplectic Euler.
func Step(s motion.State, gravity, dt float64) motion.State {
	return motion.State{
		Time:     s.Time + dt,
		Height:   s.Height + s.Velocity*dt - 0.5*gravity*dt*dt,
		Velocity: s.Velocity - gravity*dt,
	}
}

// PeakTime returns the time at which an upward launch with speed v0 peaks.
// Zero for non-positive v0.
func PeakTime(v0, gravity float64) float64 {
	if v0 <= 0 {
		return 0
	}
	return v0 / gravity
}

// FallTime returns the free-fall time from rest through a drop of height h.
func FallTime(h, gravity float64) float64 {
	if h <= 0 {
		return 0
	}
	return math.Sqrt(2 * h / gravity)
}

// ApexHeight returns the height gained above the launch point by an upward
// launch with speed v0.
func ApexHeight(v0, gravity float64) float64 {
	if v0 <= 0 {
		return 0
	}
	return v0 * v0 / (2 * gravity)
}
