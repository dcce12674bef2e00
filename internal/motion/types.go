package motion

import (
	"math"
)

// State is one sampled point of the vertical trajectory.
// Positive velocity points up.
type State struct {
	Time     float64
	Height   float64
	Velocity float64
}

func (s State) IsValid() bool {
	return !math.IsNaN(s.Height) && !math.IsInf(s.Height, 0) &&
		!math.IsNaN(s.Velocity) && !math.IsInf(s.Velocity, 0)
}

// AtRest reports whether the state is the terminal settled micro-state
// relative to the given ground height.
func (s State) AtRest(ground, heightEps float64) bool {
	return s.Velocity == 0 && math.Abs(s.Height-ground) <= heightEps
}

// Energy returns specific mechanical energy relative to ground:
// (h - ground) + v^2/(2g). Units of meters.
func Energy(s State, gravity, ground float64) float64 {
	return (s.Height - ground) + s.Velocity*s.Velocity/(2*gravity)
}

type Trajectory []State

func (tr Trajectory) First() State   { return tr[0] }
func (tr Trajectory) Last() State    { return tr[len(tr)-1] }
func (tr Trajectory) At(i int) State { return tr[i] }

// Duration is the simulated time span covered by the trajectory.
func (tr Trajectory) Duration() float64 {
	if len(tr) == 0 {
		return 0
	}
	return tr.Last().Time - tr.First().Time
}

func (tr Trajectory) Clone() Trajectory {
	c := make(Trajectory, len(tr))
	copy(c, tr)
	return c
}

// Heights returns the height series, for plotting.
func (tr Trajectory) Heights() []float64 {
	hs := make([]float64, len(tr))
	for i, s := range tr {
		hs[i] = s.Height
	}
	return hs
}

type Bounce struct {
	Time         float64 // contact time within the trajectory
	ImpactSpeed  float64 // |velocity| at contact, before reflection
	ReboundSpeed float64 // |velocity| just after reflection and damping
	Settled      bool    // this bounce ended in the rest state
	Degenerate   bool    // contact time came from the clamp fallback
}

type Metric interface {
	Name() string
	Observe(s State)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s State)
}

// BounceListener receives collision events in addition to per-sample states.
// Metrics and observers may optionally implement it.
type BounceListener interface {
	OnBounce(b Bounce)
}
