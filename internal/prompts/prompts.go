// Package prompts holds the instruction text attached to each generated
// task. Selection is deterministic given the caller's RNG.
package prompts

import "math/rand"

type Kind string

const (
	KindDrop       Kind = "drop"
	KindLaunchUp   Kind = "launch_up"
	KindLaunchDown Kind = "launch_down"
)

var pools = map[Kind][]string{
	KindDrop: {
		"Animate the ball falling from its starting height under gravity. It should accelerate downward, strike the ground, and bounce with reduced height until it comes to rest.",
		"Show the ball released from rest. Let it drop realistically, hitting the ground and rebounding lower on each bounce as energy is lost.",
		"Demonstrate free fall: the ball starts stationary at the marked height, speeds up as it falls, and bounces off the ground with diminishing rebounds.",
	},
	KindLaunchUp: {
		"Animate the ball thrown upward from its starting position. It should decelerate, reach its peak, then fall back down and bounce off the ground.",
		"Show the ball launched vertically with the indicated initial velocity. Gravity slows it to a momentary stop at the apex before it falls and rebounds.",
		"Demonstrate a vertical launch: the ball rises against gravity, peaks, then descends and bounces with each rebound lower than the last.",
	},
	KindLaunchDown: {
		"Animate the ball thrown downward from its starting height. It should gain speed quickly, hit the ground hard, and bounce back up before settling.",
		"Show the ball pushed toward the ground with the indicated initial velocity. It accelerates under gravity, impacts, and rebounds with reduced energy.",
		"Demonstrate a downward throw: the ball races to the ground, bounces sharply, and loses height with every subsequent rebound.",
	},
}

// KindFor classifies a task by its initial vertical velocity.
func KindFor(initialVelocity float64) Kind {
	switch {
	case initialVelocity > 0:
		return KindLaunchUp
	case initialVelocity < 0:
		return KindLaunchDown
	default:
		return KindDrop
	}
}

// Pick selects one prompt for the kind using the supplied RNG.
func Pick(rng *rand.Rand, kind Kind) string {
	pool, ok := pools[kind]
	if !ok {
		pool = pools[KindDrop]
	}
	return pool[rng.Intn(len(pool))]
}

// All returns every prompt for a kind.
func All(kind Kind) []string {
	pool, ok := pools[kind]
	if !ok {
		return pools[KindDrop]
	}
	return pool
}
