package geometry

import "math"

// Vector2 represents a 2D point or offset in pixels
type Vector2 struct {
	X, Y float64
}

// NewVector2 creates a new 2D vector
func NewVector2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns the sum of two vectors
func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Sub returns the difference between two vectors
func (v Vector2) Sub(other Vector2) Vector2 {
	return Vector2{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Mul multiplies the vector by a scalar
func (v Vector2) Mul(scalar float64) Vector2 {
	return Vector2{
		X: v.X * scalar,
		Y: v.Y * scalar,
	}
}

// Length returns the magnitude of the vector
func (v Vector2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the distance between two points
func (v Vector2) Distance(other Vector2) float64 {
	return v.Sub(other).Length()
}

// Round returns the vector with both components rounded to the nearest integer pixel
func (v Vector2) Round() Vector2 {
	return Vector2{
		X: math.Round(v.X),
		Y: math.Round(v.Y),
	}
}

// Size is a width/height pair in pixels
type Size struct {
	Width, Height float64
}

// NewSize creates a new size
func NewSize(width, height float64) Size {
	return Size{Width: width, Height: height}
}

// Sanitize floors negative and NaN dimensions to zero
func (s Size) Sanitize() Size {
	return Size{
		Width:  nonNegative(s.Width),
		Height: nonNegative(s.Height),
	}
}

// Known reports whether both dimensions are non-zero
func (s Size) Known() bool {
	return s.Width > 0 && s.Height > 0
}

// Rect is an axis-aligned rectangle anchored at its top-left corner
type Rect struct {
	Position Vector2
	Size     Size
}

// NewRect creates a rectangle from its top-left corner and size
func NewRect(position Vector2, size Size) Rect {
	return Rect{Position: position, Size: size}
}

// Contains reports whether the point lies inside the rectangle (edges included)
func (r Rect) Contains(p Vector2) bool {
	return p.X >= r.Position.X && p.X <= r.Position.X+r.Size.Width &&
		p.Y >= r.Position.Y && p.Y <= r.Position.Y+r.Size.Height
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
