package geometry

import "math"

// Scale limits applied to the label multiplier
const (
	MinScale = 0.5
	MaxScale = 3.0
)

// Bounds pairs the measured container and label sizes used for clamping
type Bounds struct {
	Container Size
	Label     Size
}

// NewBounds creates bounds from the two measurements, sanitizing both
func NewBounds(container, label Size) Bounds {
	return Bounds{
		Container: container.Sanitize(),
		Label:     label.Sanitize(),
	}
}

// Known reports whether the container and the label both have non-zero dimensions
func (b Bounds) Known() bool {
	return b.Container.Known() && b.Label.Known()
}

// MaxOffset returns the largest legal top-left offset on each axis.
// The range is floored at zero so a label larger than its container pins to the origin.
func (b Bounds) MaxOffset() Vector2 {
	return Vector2{
		X: math.Max(0, b.Container.Width-b.Label.Width),
		Y: math.Max(0, b.Container.Height-b.Label.Height),
	}
}

// Clamp returns the nearest point to p inside [0, maxX] x [0, maxY]
func (b Bounds) Clamp(p Vector2) Vector2 {
	limit := b.MaxOffset()
	return Vector2{
		X: clamp(p.X, 0, limit.X),
		Y: clamp(p.Y, 0, limit.Y),
	}
}

// Center returns the offset that centers the label in the container,
// clamped into the legal range
func (b Bounds) Center() Vector2 {
	return b.Clamp(Vector2{
		X: (b.Container.Width - b.Label.Width) / 2,
		Y: (b.Container.Height - b.Label.Height) / 2,
	})
}

// ClampScale limits a scale candidate to [MinScale, MaxScale]
func ClampScale(s float64) float64 {
	return clamp(s, MinScale, MaxScale)
}

// clamp limits v to [lo, hi]; NaN maps to lo
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
