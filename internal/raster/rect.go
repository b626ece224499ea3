package raster

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
)

// FillRect paints r (clipped to dst) with c.
func FillRect(dst *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(dst.Rect)
	if r.Empty() || c.A == 0 {
		return
	}
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// Blit draws src into r with source-over. When r has the size of src the
// pixels are copied one to one, otherwise src is scaled with interp.
func Blit(dst *image.NRGBA, r image.Rectangle, src image.Image, interp draw.Interpolator) {
	if r.Empty() || src.Bounds().Empty() {
		return
	}
	sb := src.Bounds()
	if r.Size() == sb.Size() {
		if s, ok := src.(*image.NRGBA); ok {
			blitNRGBA(dst, r, s)
			return
		}
		draw.Copy(dst, r.Min, src, sb, draw.Over, nil)
		return
	}
	if interp == nil {
		interp = draw.BiLinear
	}
	interp.Scale(dst, r, src, sb, draw.Over, nil)
}

// blitNRGBA paints src over dst at r one pixel at a time in non-premultiplied
// space, so texels landing on transparent pixels keep their exact value.
func blitNRGBA(dst *image.NRGBA, r image.Rectangle, src *image.NRGBA) {
	in := r.Intersect(dst.Rect)
	off := src.Rect.Min.Sub(r.Min)
	for y := in.Min.Y; y < in.Max.Y; y++ {
		for x := in.Min.X; x < in.Max.X; x++ {
			BlendPixel(dst, x, y, src.NRGBAAt(x+off.X, y+off.Y))
		}
	}
}

// Crop copies the part of src inside r into a new image of r's size whose
// origin is r.Min. Parts of r outside src stay transparent.
func Crop(src *image.NRGBA, r image.Rectangle) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	in := r.Intersect(src.Rect)
	if in.Empty() {
		return dst
	}

	n := in.Dx() * 4
	for y := in.Min.Y; y < in.Max.Y; y++ {
		si := src.PixOffset(in.Min.X, y)
		di := dst.PixOffset(in.Min.X-r.Min.X, y-r.Min.Y)
		copy(dst.Pix[di:di+n], src.Pix[si:si+n])
	}
	return dst
}

// Clone returns a deep copy of img.
func Clone(img *image.NRGBA) *image.NRGBA {
	return Crop(img, img.Rect)
}

// ParseInterpolator maps a config name to a scaler. The empty name selects
// BiLinear.
func ParseInterpolator(name string) (draw.Interpolator, error) {
	switch strings.ToLower(name) {
	case "", "bilinear":
		return draw.BiLinear, nil
	case "nearest":
		return draw.NearestNeighbor, nil
	case "approx-bilinear":
		return draw.ApproxBiLinear, nil
	case "catmull-rom":
		return draw.CatmullRom, nil
	}
	return nil, fmt.Errorf("raster: unknown interpolator %q", name)
}
