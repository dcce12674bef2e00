package collision

import (
	"math"
	"testing"

	"github.com/san-kum/gravgen/internal/kinematics"
	"github.com/san-kum/gravgen/internal/motion"
)

func testParams() motion.Params {
	p := motion.DefaultParams()
	p.InitialHeight = 1.0
	return p
}

func TestResolveNoContact(t *testing.T) {
	r := NewResolver(testParams())

	prev := motion.State{Height: 5, Velocity: -1}
	cand := motion.State{Time: 0.1, Height: 4.8, Velocity: -2}

	got, _, bounced := r.Resolve(prev, cand, 0.1)
	if bounced {
		t.Fatal("no penetration, expected pass-through")
	}
	if got != cand {
		t.Errorf("state altered without contact: %+v", got)
	}
}

func TestResolveReflectsWithRestitution(t *testing.T) {
	p := testParams()
	p.Restitution = 0.5
	r := NewResolver(p)

	dt := 1.0 / p.SampleRate
	prev := motion.State{Height: 0.05, Velocity: -4}
	cand := kinematics.Step(prev, p.Gravity, dt)
	if cand.Height >= 0 {
		t.Fatalf("test setup: candidate should penetrate, got height %v", cand.Height)
	}

	got, b, bounced := r.Resolve(prev, cand, dt)
	if !bounced {
		t.Fatal("expected a bounce")
	}
	if got.Height != 0 {
		t.Errorf("resolved height: got %v, want 0", got.Height)
	}
	if got.Velocity <= 0 {
		t.Errorf("resolved velocity should point up, got %v", got.Velocity)
	}
	if got.Velocity > 0.5*b.ImpactSpeed+1e-12 {
		t.Errorf("rebound %v exceeds restitution*impact %v", got.Velocity, 0.5*b.ImpactSpeed)
	}
	if b.Time <= prev.Time || b.Time > prev.Time+dt {
		t.Errorf("contact time %v outside step (%v, %v]", b.Time, prev.Time, prev.Time+dt)
	}
}

func TestResolveContactTimeQuadratic(t *testing.T) {
	// Drop from 1m at rest under g=10: contact at sqrt(0.2) ≈ 0.4472s.
	p := testParams()
	p.Gravity = 10
	r := NewResolver(p)

	dt := 0.5
	prev := motion.State{Height: 1, Velocity: 0}
	cand := kinematics.Step(prev, p.Gravity, dt)

	_, b, bounced := r.Resolve(prev, cand, dt)
	if !bounced {
		t.Fatal("expected a bounce")
	}
	want := math.Sqrt(0.2)
	if math.Abs(b.Time-want) > 1e-9 {
		t.Errorf("contact time: got %v, want %v", b.Time, want)
	}
	// Contact speed is g*tc for a drop from rest.
	if math.Abs(b.ImpactSpeed-10*want) > 1e-9 {
		t.Errorf("impact speed: got %v, want %v", b.ImpactSpeed, 10*want)
	}
}

func TestResolveGroundStartDownward(t *testing.T) {
	// Starting exactly on the ground moving down must bounce immediately.
	p := testParams()
	r := NewResolver(p)

	dt := 1.0 / p.SampleRate
	prev := motion.State{Height: 0, Velocity: -3}
	cand := kinematics.Step(prev, p.Gravity, dt)

	got, b, bounced := r.Resolve(prev, cand, dt)
	if !bounced {
		t.Fatal("expected an immediate bounce")
	}
	if b.Degenerate {
		t.Error("zero-time contact should resolve via the quadratic, not the fallback")
	}
	if got.Velocity <= 0 {
		t.Errorf("expected upward rebound, got %v", got.Velocity)
	}
}

func TestResolveEnergyNonIncreasing(t *testing.T) {
	cases := []struct {
		name        string
		restitution float64
		strict      bool
	}{
		{"lossy", 0.6, true},
		{"elastic", 1.0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := testParams()
			p.Restitution = tc.restitution
			r := NewResolver(p)

			dt := 1.0 / p.SampleRate
			prev := motion.State{Height: 0.02, Velocity: -6}
			cand := kinematics.Step(prev, p.Gravity, dt)

			before := motion.Energy(prev, p.Gravity, 0)
			got, _, bounced := r.Resolve(prev, cand, dt)
			if !bounced {
				t.Fatal("expected a bounce")
			}
			after := motion.Energy(got, p.Gravity, 0)

			if after > before+1e-12 {
				t.Errorf("energy increased across bounce: %v -> %v", before, after)
			}
			if tc.strict && after >= before {
				t.Errorf("energy should strictly decrease for restitution<1: %v -> %v", before, after)
			}
		})
	}
}

func TestResolveRestSnap(t *testing.T) {
	p := testParams()
	p.Restitution = 0.5
	p.RestVelocityEps = 0.05
	r := NewResolver(p)

	dt := 1.0 / p.SampleRate
	// Impact at 0.06 m/s reflects to 0.03 < eps: must settle.
	prev := motion.State{Height: 0.0001, Velocity: -0.06}
	cand := kinematics.Step(prev, p.Gravity, dt)

	got, b, bounced := r.Resolve(prev, cand, dt)
	if !bounced {
		t.Fatal("expected a bounce")
	}
	if !b.Settled {
		t.Error("expected rest detection")
	}
	if got.Velocity != 0 || got.Height != 0 {
		t.Errorf("rest state not clamped: %+v", got)
	}
}

func TestResolveFrictionDampsSmallBounces(t *testing.T) {
	p := testParams()
	p.Restitution = 1.0
	p.Friction = 0.5
	p.RestVelocityEps = 0.05
	r := NewResolver(p)

	dt := 1.0 / p.SampleRate

	// Small impact: rebound would be 0.3 m/s (< 10*eps band), friction
	// halves it.
	prev := motion.State{Height: 0.0001, Velocity: -0.3}
	cand := kinematics.Step(prev, p.Gravity, dt)
	got, _, _ := r.Resolve(prev, cand, dt)
	if math.Abs(got.Velocity-0.15*1.0) > 0.02 {
		t.Errorf("small bounce not friction-damped: got %v", got.Velocity)
	}

	// Large impact: rebound 5 m/s is outside the band, restitution only.
	prev = motion.State{Height: 0.01, Velocity: -5}
	cand = kinematics.Step(prev, p.Gravity, dt)
	got, b, _ := r.Resolve(prev, cand, dt)
	if math.Abs(got.Velocity-b.ImpactSpeed) > 1e-9 {
		t.Errorf("large elastic bounce altered by friction: rebound %v, impact %v", got.Velocity, b.ImpactSpeed)
	}
}

func TestResolveDegenerateFallback(t *testing.T) {
	// A previous state below ground with strong downward velocity has no
	// in-range crossing; the resolver must clamp instead of failing.
	p := testParams()
	r := NewResolver(p)

	dt := 1.0 / p.SampleRate
	prev := motion.State{Height: -0.01, Velocity: -1}
	cand := kinematics.Step(prev, p.Gravity, dt)

	got, b, bounced := r.Resolve(prev, cand, dt)
	if !bounced {
		t.Fatal("expected resolution")
	}
	if !b.Degenerate {
		t.Error("expected the clamp fallback to be flagged")
	}
	if got.Height != 0 {
		t.Errorf("fallback should clamp to ground, got height %v", got.Height)
	}
}
