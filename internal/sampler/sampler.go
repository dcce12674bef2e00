// Package sampler drives the integrator and collision resolver over a fixed
// simulated duration, producing the full trajectory for one task.
package sampler

import (
	"fmt"

	"github.com/san-kum/gravgen/internal/collision"
	"github.com/san-kum/gravgen/internal/kinematics"
	"github.com/san-kum/gravgen/internal/motion"
)

type Sampler struct {
	params    motion.Params
	metrics   []motion.Metric
	observers []motion.Observer
}

func New(p motion.Params) *Sampler {
	return &Sampler{params: p}
}

func (s *Sampler) AddMetric(m motion.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Sampler) AddObserver(o motion.Observer) { s.observers = append(s.observers, o) }

// Run simulates the configured parameters and returns the trajectory.
// The output length is always Steps()+1 for valid parameters; invalid
// parameters fail fast with no partial trajectory. Identical parameters
// always produce identical trajectories.
func (s *Sampler) Run() (motion.Trajectory, error) {
	p := s.params
	if err := p.Validate(); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	steps := p.Steps()
	dt := p.Dt()
	resolver := collision.NewResolver(p)

	traj := make(motion.Trajectory, 0, steps+1)
	state := motion.State{
		Height:   p.InitialHeight,
		Velocity: p.InitialVelocity,
	}
	traj = append(traj, state)
	s.observe(state)

	atRest := false
	for i := 1; i <= steps; i++ {
		// Times come from the tick index, not accumulation, so the grid
		// stays exact over long runs.
		t := float64(i) * dt

		if atRest {
			state = motion.State{Time: t, Height: p.GroundHeight}
			traj = append(traj, state)
			s.observe(state)
			continue
		}

		cand := kinematics.Step(state, p.Gravity, dt)
		cand.Time = t
		if !cand.IsValid() {
			return nil, fmt.Errorf("sampler: step %d: %w", i, motion.ErrInvalidState)
		}

		next, bounce, bounced := resolver.Resolve(state, cand, dt)
		if bounced {
			s.notifyBounce(bounce)
			if bounce.Settled {
				atRest = true
			}
		}

		state = next
		traj = append(traj, state)
		s.observe(state)
	}

	return traj, nil
}

// Metrics returns the current metric values by name.
func (s *Sampler) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Sampler) observe(state motion.State) {
	for _, m := range s.metrics {
		m.Observe(state)
	}
	for _, o := range s.observers {
		o.OnStep(state)
	}
}

func (s *Sampler) notifyBounce(b motion.Bounce) {
	for _, m := range s.metrics {
		if bl, ok := m.(motion.BounceListener); ok {
			bl.OnBounce(b)
		}
	}
	for _, o := range s.observers {
		if bl, ok := o.(motion.BounceListener); ok {
			bl.OnBounce(b)
		}
	}
}
