package mathutil

import (
	"image"
	"math"
)

// Epsilon is the tolerance used when classifying barycentric weights.
// Pixels on a triangle edge have a weight of exactly zero and are inside.
const Epsilon = 1e-6

// minArea is the smallest doubled triangle area treated as non-degenerate.
const minArea = 1e-9

// Barycentric holds the weights of a point relative to triangle (a, b, c).
type Barycentric [3]float64

// ToBarycentric decomposes p into weights relative to triangle (a, b, c)
// using the doubled signed area of the sub-triangles.
// Returns false for collinear or coincident vertices.
func ToBarycentric(p, a, b, c Vec2) (Barycentric, bool) {
	area := b.Sub(a).Cross(c.Sub(a))
	if math.Abs(area) < minArea {
		return Barycentric{}, false
	}
	inv := 1.0 / area

	w0 := c.Sub(b).Cross(p.Sub(b)) * inv
	w1 := a.Sub(c).Cross(p.Sub(c)) * inv
	return Barycentric{w0, w1, 1.0 - w0 - w1}, true
}

// Inside reports whether the weights describe a point inside the triangle
// or on its boundary.
func (w Barycentric) Inside() bool {
	if w[0] < -Epsilon || w[1] < -Epsilon || w[2] < -Epsilon {
		return false
	}
	return math.Abs(w[0]+w[1]+w[2]-1.0) <= Epsilon
}

// Sum returns w0+w1+w2.
func (w Barycentric) Sum() float64 {
	return w[0] + w[1] + w[2]
}

// Interpolate returns the affine combination w0·q0 + w1·q1 + w2·q2.
func (w Barycentric) Interpolate(q0, q1, q2 Vec2) Vec2 {
	return q0.Scale(w[0]).Add(q1.Scale(w[1])).Add(q2.Scale(w[2]))
}

// ToCartesian maps the weights onto triangle (q0, q1, q2) and rounds the
// result to the nearest pixel.
func (w Barycentric) ToCartesian(q0, q1, q2 Vec2) image.Point {
	x, y := w.Interpolate(q0, q1, q2).Round()
	return image.Pt(x, y)
}

// BoundingBox returns the integer box covering the three points.
// Max is exclusive, so the pixel holding the largest coordinate is covered.
func BoundingBox(p0, p1, p2 Vec2) image.Rectangle {
	minX := math.Floor(math.Min(math.Min(p0[0], p1[0]), p2[0]))
	minY := math.Floor(math.Min(math.Min(p0[1], p1[1]), p2[1]))
	maxX := math.Floor(math.Max(math.Max(p0[0], p1[0]), p2[0]))
	maxY := math.Floor(math.Max(math.Max(p0[1], p1[1]), p2[1]))
	return image.Rect(int(minX), int(minY), int(maxX)+1, int(maxY)+1)
}

// VertexToPoint maps a normalized local position into the pixel space of dst:
// dst.Min + pos ⊙ (dst width, dst height).
func VertexToPoint(pos Vec2, dst image.Rectangle) Vec2 {
	offset := Vec2{float64(dst.Min.X), float64(dst.Min.Y)}
	size := Vec2{float64(dst.Dx()), float64(dst.Dy())}
	return offset.Add(pos.Mul(size))
}

// VertexToSample maps a normalized UV coordinate to a pixel of a w×h image,
// clamped to the last valid row and column.
func VertexToSample(uv Vec2, w, h int) Vec2 {
	s := uv.Mul(Vec2{float64(w), float64(h)})
	return s.Clamp(Vec2{0, 0}, Vec2{float64(max(w-1, 0)), float64(max(h-1, 0))})
}
