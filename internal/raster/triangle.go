package raster

import (
	"image"
	"image/color"

	"avatar-texture-baker/internal/mathutil"
)

// Triangle holds three points in pixel space.
type Triangle [3]mathutil.Vec2

// Degenerate reports whether the triangle has (near) zero area.
func (t Triangle) Degenerate() bool {
	_, ok := mathutil.ToBarycentric(t[0], t[0], t[1], t[2])
	return !ok
}

// FillTriangle paints every pixel of dst inside tri with c.
// Returns the number of pixels painted.
func FillTriangle(dst *image.NRGBA, tri Triangle, c color.NRGBA) int {
	return scan(dst, tri, func(x, y int, _ mathutil.Barycentric) {
		BlendPixel(dst, x, y, c)
	})
}

// MapTriangle paints every pixel of dst inside tri with the texel of tex
// found at the same barycentric position inside the sample triangle st.
// st is in tex pixel space. Returns the number of pixels painted.
func MapTriangle(dst *image.NRGBA, tri Triangle, tex *image.NRGBA, st Triangle) int {
	return scan(dst, tri, func(x, y int, w mathutil.Barycentric) {
		sp := w.ToCartesian(st[0], st[1], st[2])
		BlendPixel(dst, x, y, SampleNearest(tex, sp.X, sp.Y))
	})
}

// scan visits the pixels of dst covered by tri.
//
// This is the hot path: the bounding box is clipped to dst once and
// degenerate triangles are rejected before the pixel loop.
func scan(dst *image.NRGBA, tri Triangle, fn func(x, y int, w mathutil.Barycentric)) int {
	if tri.Degenerate() {
		return 0
	}

	box := mathutil.BoundingBox(tri[0], tri[1], tri[2]).Intersect(dst.Rect)
	if box.Empty() {
		return 0
	}

	n := 0
	for y := box.Min.Y; y < box.Max.Y; y++ {
		fy := float64(y)
		for x := box.Min.X; x < box.Max.X; x++ {
			w, _ := mathutil.ToBarycentric(mathutil.Vec2{float64(x), fy}, tri[0], tri[1], tri[2])
			if !w.Inside() {
				continue
			}
			fn(x, y, w)
			n++
		}
	}
	return n
}
