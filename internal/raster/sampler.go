package raster

import (
	"image"
	"image/color"
)

// SampleNearest returns the texel at (x, y), clamping the coordinates to the
// bounds of tex. Accesses tex.Pix directly for performance.
func SampleNearest(tex *image.NRGBA, x, y int) color.NRGBA {
	b := tex.Rect
	if b.Empty() {
		return color.NRGBA{}
	}

	x = clampInt(x+b.Min.X, b.Min.X, b.Max.X-1)
	y = clampInt(y+b.Min.Y, b.Min.Y, b.Max.Y-1)

	i := tex.PixOffset(x, y)
	p := tex.Pix[i : i+4 : i+4]
	return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
