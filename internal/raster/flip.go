package raster

import (
	"fmt"
	"image"
	"strings"
)

// RotateFlip names a clockwise rotation followed by an optional horizontal
// flip, in the order of the classic GDI+ enumeration.
type RotateFlip int

const (
	RotateNoneFlipNone RotateFlip = iota
	Rotate90FlipNone
	Rotate180FlipNone
	Rotate270FlipNone
	RotateNoneFlipX
	Rotate90FlipX
	Rotate180FlipX
	Rotate270FlipX
)

// Aliases for the vertical flips.
const (
	RotateNoneFlipY  = Rotate180FlipX
	Rotate90FlipY    = Rotate270FlipX
	Rotate180FlipY   = RotateNoneFlipX
	Rotate270FlipY   = Rotate90FlipX
	RotateNoneFlipXY = Rotate180FlipNone
)

var rotateFlipNames = [...]string{
	"RotateNoneFlipNone",
	"Rotate90FlipNone",
	"Rotate180FlipNone",
	"Rotate270FlipNone",
	"RotateNoneFlipX",
	"Rotate90FlipX",
	"Rotate180FlipX",
	"Rotate270FlipX",
}

func (f RotateFlip) String() string {
	if f < 0 || int(f) >= len(rotateFlipNames) {
		return fmt.Sprintf("RotateFlip(%d)", int(f))
	}
	return rotateFlipNames[f]
}

// Valid reports whether f is one of the eight defined values.
func (f RotateFlip) Valid() bool {
	return f >= 0 && int(f) < len(rotateFlipNames)
}

// ParseRotateFlip parses a RotateFlip name, case-insensitively. The short
// forms "", "none", "x", "y" and "xy" are accepted as well.
func ParseRotateFlip(s string) (RotateFlip, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return RotateNoneFlipNone, nil
	case "x", "h":
		return RotateNoneFlipX, nil
	case "y", "v":
		return RotateNoneFlipY, nil
	case "xy", "hv":
		return RotateNoneFlipXY, nil
	case "rotatenoneflipy":
		return RotateNoneFlipY, nil
	case "rotate90flipy":
		return Rotate90FlipY, nil
	case "rotate180flipy":
		return Rotate180FlipY, nil
	case "rotate270flipy":
		return Rotate270FlipY, nil
	case "rotatenoneflipxy":
		return RotateNoneFlipXY, nil
	}
	for i, name := range rotateFlipNames {
		if strings.EqualFold(name, s) {
			return RotateFlip(i), nil
		}
	}
	return 0, fmt.Errorf("raster: unknown rotate/flip %q", s)
}

// Orient returns img rotated clockwise and then flipped horizontally
// according to f. Pixels are moved, never resampled, so every texel keeps its
// exact value. The result is a new image with its origin at (0, 0), except for
// RotateNoneFlipNone which returns img as is. img itself is never modified.
func Orient(img *image.NRGBA, f RotateFlip) *image.NRGBA {
	if f == RotateNoneFlipNone || !f.Valid() {
		return img
	}

	b := img.Rect
	w, h := b.Dx(), b.Dy()
	dw, dh := w, h
	if f%2 == 1 {
		dw, dh = h, w
	}
	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))

	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			rx := x
			if f >= RotateNoneFlipX {
				rx = dw - 1 - x
			}
			var sx, sy int
			switch f % 4 {
			case 0:
				sx, sy = rx, y
			case 1:
				sx, sy = y, h-1-rx
			case 2:
				sx, sy = w-1-rx, h-1-y
			case 3:
				sx, sy = w-1-y, rx
			}
			si := img.PixOffset(b.Min.X+sx, b.Min.Y+sy)
			di := dst.PixOffset(x, y)
			copy(dst.Pix[di:di+4], img.Pix[si:si+4])
		}
	}
	return dst
}
