package metrics

import (
	"testing"

	"github.com/san-kum/gravgen/internal/motion"
	"github.com/san-kum/gravgen/internal/sampler"
)

func TestBounceCount(t *testing.T) {
	m := NewBounceCount()
	m.OnBounce(motion.Bounce{})
	m.OnBounce(motion.Bounce{})

	if m.Value() != 2 {
		t.Errorf("got %v, want 2", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("reset should zero the count")
	}
}

func TestPeakHeight(t *testing.T) {
	m := NewPeakHeight()
	for _, h := range []float64{3, 7, 5, 2} {
		m.Observe(motion.State{Height: h})
	}
	if m.Value() != 7 {
		t.Errorf("got %v, want 7", m.Value())
	}
}

func TestPeakHeightNegativeStart(t *testing.T) {
	// A trajectory entirely below zero must still report its true peak.
	m := NewPeakHeight()
	m.Observe(motion.State{Height: -3})
	m.Observe(motion.State{Height: -1})
	if m.Value() != -1 {
		t.Errorf("got %v, want -1", m.Value())
	}
}

func TestImpactSpeed(t *testing.T) {
	m := NewImpactSpeed()
	m.OnBounce(motion.Bounce{ImpactSpeed: 4})
	m.OnBounce(motion.Bounce{ImpactSpeed: 9})
	m.OnBounce(motion.Bounce{ImpactSpeed: 6})

	if m.Value() != 9 {
		t.Errorf("got %v, want 9", m.Value())
	}
}

func TestEnergyDecayOnSimulatedRun(t *testing.T) {
	p := motion.DefaultParams()
	p.InitialHeight = 10
	p.Restitution = 0.6
	p.Duration = 6

	decay := NewEnergyDecay(p.Gravity, p.GroundHeight)
	bounces := NewBounceCount()

	smp := sampler.New(p)
	smp.AddMetric(decay)
	smp.AddMetric(bounces)

	if _, err := smp.Run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if bounces.Value() < 2 {
		t.Fatalf("expected multiple bounces, got %v", bounces.Value())
	}
	if decay.Value() > 0 {
		t.Errorf("energy gained across bounces: max gain %v", decay.Value())
	}
}

func TestEnergyDecayNoBounces(t *testing.T) {
	m := NewEnergyDecay(9.81, 0)
	if m.Value() != 0 {
		t.Errorf("no bounces should report 0, got %v", m.Value())
	}
}
