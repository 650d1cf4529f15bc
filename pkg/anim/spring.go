// Package anim provides the damped spring used to settle values after a gesture.
package anim

import "math"

// Spring describes a damped harmonic oscillator pulling a value to its target
type Spring struct {
	Stiffness float64
	Damping   float64
	Mass      float64

	// RestDisplacement and RestSpeed decide when a moving value is considered settled
	RestDisplacement float64
	RestSpeed        float64
}

// DefaultSpring is slightly underdamped, giving a short visible bounce
var DefaultSpring = Spring{
	Stiffness:        100,
	Damping:          10,
	Mass:             1,
	RestDisplacement: 0.001,
	RestSpeed:        0.001,
}

// naturalFrequency returns the undamped angular frequency (rad/s)
func (s Spring) naturalFrequency() float64 {
	return math.Sqrt(s.Stiffness / s.Mass)
}

// DampingRatio returns zeta; below 1 the spring overshoots
func (s Spring) DampingRatio() float64 {
	return s.Damping / (2 * math.Sqrt(s.Stiffness*s.Mass))
}

// Progress returns the normalized position of a spring released from rest at 0
// towards 1 after t seconds
func (s Spring) Progress(t float64) float64 {
	if t <= 0 {
		return 0
	}
	w0 := s.naturalFrequency()
	zeta := s.DampingRatio()

	switch {
	case zeta < 1:
		wd := w0 * math.Sqrt(1-zeta*zeta)
		envelope := math.Exp(-zeta * w0 * t)
		return 1 - envelope*(math.Cos(wd*t)+(zeta*w0/wd)*math.Sin(wd*t))
	case zeta == 1:
		return 1 - math.Exp(-w0*t)*(1+w0*t)
	default:
		root := math.Sqrt(zeta*zeta - 1)
		r1 := -w0 * (zeta - root)
		r2 := -w0 * (zeta + root)
		return 1 - (r2*math.Exp(r1*t)-r1*math.Exp(r2*t))/(r2-r1)
	}
}

// SettleDuration returns the time after which the decay envelope falls below
// RestDisplacement
func (s Spring) SettleDuration() float64 {
	decay := s.DampingRatio() * s.naturalFrequency()
	if s.DampingRatio() > 1 {
		// the slow root dominates an overdamped spring
		root := math.Sqrt(s.DampingRatio()*s.DampingRatio() - 1)
		decay = s.naturalFrequency() * (s.DampingRatio() - root)
	}
	if decay <= 0 || s.RestDisplacement <= 0 {
		return 0
	}
	return math.Log(1/s.RestDisplacement) / decay
}

// step advances one value by dt seconds using semi-implicit Euler integration
func (s Spring) step(x, v, target, dt float64) (float64, float64) {
	a := (-s.Stiffness*(x-target) - s.Damping*v) / s.Mass
	v += a * dt
	x += v * dt
	return x, v
}

// atRest reports whether the value can be snapped onto its target
func (s Spring) atRest(x, v, target float64) bool {
	return math.Abs(x-target) <= s.RestDisplacement && math.Abs(v) <= s.RestSpeed
}
