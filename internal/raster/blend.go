package raster

import (
	"image"
	"image/color"
)

// BlendPixel paints c over the pixel at (x, y) using source-over in
// non-premultiplied space. Opaque colors overwrite; transparent ones are
// skipped. Points outside dst are ignored.
func BlendPixel(dst *image.NRGBA, x, y int, c color.NRGBA) {
	if c.A == 0 || !(image.Point{x, y}).In(dst.Rect) {
		return
	}

	i := dst.PixOffset(x, y)
	p := dst.Pix[i : i+4 : i+4]
	if c.A == 255 || p[3] == 0 {
		p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
		return
	}

	sa := float64(c.A) / 255.0
	da := float64(p[3]) / 255.0
	outA := sa + da*(1.0-sa)

	blend := func(s, d uint8) uint8 {
		return clamp255((float64(s)*sa + float64(d)*da*(1.0-sa)) / outA)
	}
	p[0] = blend(c.R, p[0])
	p[1] = blend(c.G, p[1])
	p[2] = blend(c.B, p[2])
	p[3] = clamp255(outA * 255.0)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
