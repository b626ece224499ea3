package mathutil

import "math"

// Vec2 is a 2-component vector (value type, stack-allocated).
type Vec2 [2]float64

// Add returns v + b.
func (v Vec2) Add(b Vec2) Vec2 {
	return Vec2{v[0] + b[0], v[1] + b[1]}
}

// Sub returns v - b.
func (v Vec2) Sub(b Vec2) Vec2 {
	return Vec2{v[0] - b[0], v[1] - b[1]}
}

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v[0] * s, v[1] * s}
}

// Mul scales componentwise.
func (v Vec2) Mul(b Vec2) Vec2 {
	return Vec2{v[0] * b[0], v[1] * b[1]}
}

// Cross returns the z component of the 3D cross product of v and b.
func (v Vec2) Cross(b Vec2) float64 {
	return v[0]*b[1] - v[1]*b[0]
}

// Round returns the nearest integer coordinates.
func (v Vec2) Round() (int, int) {
	return int(math.Round(v[0])), int(math.Round(v[1]))
}

// Clamp returns v with each component limited to [lo, hi].
func (v Vec2) Clamp(lo, hi Vec2) Vec2 {
	return Vec2{clamp(v[0], lo[0], hi[0]), clamp(v[1], lo[1], hi[1])}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
