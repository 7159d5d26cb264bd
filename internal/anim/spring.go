package anim

import (
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SpringConfig describes a damped-harmonic-oscillator motion profile.
// DampingRatio < 1 is underdamped (overshoots and rings), 1 is critically
// damped, > 1 is overdamped.
type SpringConfig struct {
	DampingRatio float64
	Stiffness    float64
	Mass         float64
	From         float64
	To           float64
	StartFrame   float64
	// InitialVelocity is in value units per second. Zero for a spring
	// released from rest.
	InitialVelocity float64
}

// Validate rejects non-physical parameters. Called at construction so the
// per-frame path stays branch-free.
func (c SpringConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Mass, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&c.Stiffness, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&c.DampingRatio, validation.Required, validation.Min(0.0).Exclusive()),
	)
}

// Spring evaluates a spring profile as a closed-form function of the frame
// number. No state is advanced between calls, so any frame can be evaluated
// in any order with identical results.
type Spring struct {
	cfg SpringConfig
	fps float64
}

// NewSpring validates the config and binds the composition frame rate used
// to convert frame counts to seconds.
func NewSpring(cfg SpringConfig, fps float64) (*Spring, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if fps <= 0 {
		return nil, validation.NewError("validation_fps", "frame rate must be positive")
	}
	return &Spring{cfg: cfg, fps: fps}, nil
}

// MustSpring is NewSpring for statically authored scenes.
func MustSpring(cfg SpringConfig, fps float64) *Spring {
	s, err := NewSpring(cfg, fps)
	if err != nil {
		panic(err)
	}
	return s
}

// Value returns the spring position at the given frame. Before StartFrame it
// returns From; as the frame grows it settles at To.
func (s *Spring) Value(frame float64) float64 {
	t := (frame - s.cfg.StartFrame) / s.fps
	if t < 0 {
		t = 0
	}

	omega0 := math.Sqrt(s.cfg.Stiffness / s.cfg.Mass)
	zeta := s.cfg.DampingRatio
	x0 := s.cfg.From - s.cfg.To
	v0 := s.cfg.InitialVelocity

	var x float64
	switch {
	case zeta < 1:
		// Underdamped: decaying sinusoid.
		omegaD := omega0 * math.Sqrt(1-zeta*zeta)
		envelope := math.Exp(-zeta * omega0 * t)
		x = envelope * (x0*math.Cos(omegaD*t) + ((v0+zeta*omega0*x0)/omegaD)*math.Sin(omegaD*t))
	case zeta == 1:
		// Critically damped.
		x = math.Exp(-omega0*t) * (x0 + (v0+omega0*x0)*t)
	default:
		// Overdamped: sum of two decaying exponentials.
		disc := omega0 * math.Sqrt(zeta*zeta-1)
		r1 := -zeta*omega0 + disc
		r2 := -zeta*omega0 - disc
		c1 := (v0 - r2*x0) / (r1 - r2)
		c2 := x0 - c1
		x = c1*math.Exp(r1*t) + c2*math.Exp(r2*t)
	}

	return s.cfg.To + x
}
