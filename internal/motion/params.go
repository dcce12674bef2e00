package motion

import "math"

const (
	DefaultGravity         = 9.81
	DefaultDuration        = 3.0
	DefaultSampleRate      = 60.0
	DefaultRestitution     = 0.55
	DefaultFriction        = 0.2
	DefaultRestVelocityEps = 0.05
	DefaultRestHeightEps   = 0.01
)

// Params are the full inputs of one vertical-motion simulation.
// All heights are meters, velocities m/s (positive up), gravity m/s^2.
type Params struct {
	InitialHeight   float64
	InitialVelocity float64
	Gravity         float64
	Duration        float64
	SampleRate      float64
	Restitution     float64
	Friction        float64
	GroundHeight    float64
	RestVelocityEps float64
	RestHeightEps   float64
}

func DefaultParams() Params {
	return Params{
		InitialHeight:   15.0,
		Gravity:         DefaultGravity,
		Duration:        DefaultDuration,
		SampleRate:      DefaultSampleRate,
		Restitution:     DefaultRestitution,
		Friction:        DefaultFriction,
		RestVelocityEps: DefaultRestVelocityEps,
		RestHeightEps:   DefaultRestHeightEps,
	}
}

// Dt is the fixed integration step, 1/SampleRate.
func (p Params) Dt() float64 { return 1.0 / p.SampleRate }

// Steps is the number of integration steps; a trajectory holds Steps+1 states.
func (p Params) Steps() int {
	return int(math.Round(p.Duration * p.SampleRate))
}

func (p Params) Validate() error {
	switch {
	case p.Gravity <= 0:
		return &ParamError{Name: "gravity", Value: p.Gravity, Reason: "must be positive"}
	case p.SampleRate <= 0:
		return &ParamError{Name: "sample_rate", Value: p.SampleRate, Reason: "must be positive"}
	case p.Duration <= 0:
		return &ParamError{Name: "duration", Value: p.Duration, Reason: "must be positive"}
	case p.InitialHeight < p.GroundHeight:
		return &ParamError{Name: "initial_height", Value: p.InitialHeight, Reason: "below ground height"}
	case p.Restitution < 0 || p.Restitution > 1:
		return &ParamError{Name: "restitution", Value: p.Restitution, Reason: "must be in [0,1]"}
	case p.Friction < 0 || p.Friction > 1:
		return &ParamError{Name: "friction", Value: p.Friction, Reason: "must be in [0,1]"}
	case p.RestVelocityEps <= 0:
		return &ParamError{Name: "rest_velocity_eps", Value: p.RestVelocityEps, Reason: "must be positive"}
	case p.RestHeightEps <= 0:
		return &ParamError{Name: "rest_height_eps", Value: p.RestHeightEps, Reason: "must be positive"}
	case p.Steps() < 1:
		return &ParamError{Name: "duration", Value: p.Duration, Reason: "yields zero samples at this sample rate"}
	}
	return nil
}
