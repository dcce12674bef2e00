package collision

import (
	"math"

	"github.com/san-kum/gravgen/internal/motion"
)

// smallBounceRatio scales RestVelocityEps into the rebound-speed band where
// friction damping applies. Rebounds faster than the band see restitution
// only; rebounds inside it lose an extra (1-Friction) factor, which
// accelerates settling without touching regular bounces.
const smallBounceRatio = 10.0

// Resolver detects and resolves ground penetration within one integration
// step. It is stateless per call and safe to share across trajectories with
// the same parameters.
type Resolver struct {
	Gravity         float64
	Ground          float64
	Restitution     float64
	Friction        float64
	RestVelocityEps float64
	RestHeightEps   float64
}

func NewResolver(p motion.Params) *Resolver {
	return &Resolver{
		Gravity:         p.Gravity,
		Ground:          p.GroundHeight,
		Restitution:     p.Restitution,
		Friction:        p.Friction,
		RestVelocityEps: p.RestVelocityEps,
		RestHeightEps:   p.RestHeightEps,
	}
}

// Resolve inspects the candidate state produced by the integrator for the
// step prev -> cand over dt. When the candidate penetrates the ground it
// returns the bounce-resolved state at the same tick time, the bounce event,
// and true. Otherwise cand passes through unchanged.
func (r *Resolver) Resolve(prev, cand motion.State, dt float64) (motion.State, motion.Bounce, bool) {
	if cand.Height >= r.Ground {
		return cand, motion.Bounce{}, false
	}

	tc, ok := r.contactTime(prev, dt)
	degenerate := !ok

	var vContact float64
	if ok {
		vContact = prev.Velocity - r.Gravity*tc
	} else {
		// No real root in range: floating-point degeneracy. Clamp to the
		// ground at the tick and take the integrated velocity as contact
		// velocity. Never surfaced to the caller.
		tc = dt
		vContact = cand.Velocity
	}

	vReflected := -r.Restitution * vContact
	if math.Abs(vReflected) < smallBounceRatio*r.RestVelocityEps {
		vReflected *= 1 - r.Friction
	}

	resolved := motion.State{
		Time:     cand.Time,
		Height:   r.Ground,
		Velocity: vReflected,
	}

	settled := false
	if math.Abs(vReflected) < r.RestVelocityEps {
		resolved.Velocity = 0
		settled = true
	}

	b := motion.Bounce{
		Time:         prev.Time + tc,
		ImpactSpeed:  math.Abs(vContact),
		ReboundSpeed: math.Abs(resolved.Velocity),
		Settled:      settled,
		Degenerate:   degenerate,
	}
	return resolved, b, true
}

// contactTime solves h0 + v0*t - 0.5*g*t^2 = ground for the downward
// crossing within [0, dt]. A zero root covers a step that starts exactly on
// the ground moving down.
func (r *Resolver) contactTime(prev motion.State, dt float64) (float64, bool) {
	v0 := prev.Velocity
	drop := prev.Height - r.Ground

	disc := v0*v0 + 2*r.Gravity*drop
	if disc < 0 {
		return 0, false
	}

	// The later root is the downward crossing; the earlier one is an upward
	// pass through ground level, impossible for a ball starting at or above
	// ground.
	tc := (v0 + math.Sqrt(disc)) / r.Gravity
	if tc < 0 || tc > dt {
		return 0, false
	}
	return tc, true
}
