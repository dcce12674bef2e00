package metrics

import (
	"math"

	"github.com/san-kum/gravgen/internal/motion"
)

// BounceCount counts ground contacts over a trajectory.
type BounceCount struct {
	count int
}

func NewBounceCount() *BounceCount { return &BounceCount{} }

func (b *BounceCount) Name() string              { return "bounce_count" }
func (b *BounceCount) Observe(s motion.State)    {}
func (b *BounceCount) OnBounce(ev motion.Bounce) { b.count++ }
func (b *BounceCount) Value() float64            { return float64(b.count) }
func (b *BounceCount) Reset()                    { b.count = 0 }

// PeakHeight tracks the maximum height reached.
type PeakHeight struct {
	peak    float64
	samples int
}

func NewPeakHeight() *PeakHeight { return &PeakHeight{} }

func (p *PeakHeight) Name() string { return "peak_height" }

func (p *PeakHeight) Observe(s motion.State) {
	if p.samples == 0 || s.Height > p.peak {
		p.peak = s.Height
	}
	p.samples++
}

func (p *PeakHeight) Value() float64 { return p.peak }
func (p *PeakHeight) Reset()         { p.peak = 0; p.samples = 0 }

// ImpactSpeed tracks the fastest ground contact.
type ImpactSpeed struct {
	max float64
}

func NewImpactSpeed() *ImpactSpeed { return &ImpactSpeed{} }

func (m *ImpactSpeed) Name() string           { return "impact_speed" }
func (m *ImpactSpeed) Observe(s motion.State) {}

func (m *ImpactSpeed) OnBounce(ev motion.Bounce) {
	m.max = math.Max(m.max, ev.ImpactSpeed)
}

func (m *ImpactSpeed) Value() float64 { return m.max }
func (m *ImpactSpeed) Reset()         { m.max = 0 }

// EnergyDecay records the largest energy increase across consecutive
// bounces. For a correct resolver the value never exceeds zero: energy is
// non-increasing across bounces, strictly decreasing below restitution 1.
type EnergyDecay struct {
	gravity  float64
	ground   float64
	prev     float64
	havePrev bool
	maxGain  float64
}

func NewEnergyDecay(gravity, ground float64) *EnergyDecay {
	return &EnergyDecay{gravity: gravity, ground: ground, maxGain: math.Inf(-1)}
}

func (e *EnergyDecay) Name() string           { return "energy_max_gain" }
func (e *EnergyDecay) Observe(s motion.State) {}

func (e *EnergyDecay) OnBounce(ev motion.Bounce) {
	// Energy just after a bounce is purely kinetic at ground level.
	energy := ev.ReboundSpeed * ev.ReboundSpeed / (2 * e.gravity)
	if e.havePrev {
		gain := energy - e.prev
		if gain > e.maxGain {
			e.maxGain = gain
		}
	}
	e.prev = energy
	e.havePrev = true
}

func (e *EnergyDecay) Value() float64 {
	if math.IsInf(e.maxGain, -1) {
		return 0
	}
	return e.maxGain
}

func (e *EnergyDecay) Reset() {
	e.prev = 0
	e.havePrev = false
	e.maxGain = math.Inf(-1)
}
