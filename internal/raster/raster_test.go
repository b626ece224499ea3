package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/draw"

	"avatar-texture-baker/internal/mathutil"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
)

func newGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 11), B: uint8(x ^ y), A: 255})
		}
	}
	return img
}

func TestFillTriangleExactPixels(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	tri := Triangle{{10, 10}, {30, 10}, {10, 30}}

	n := FillTriangle(dst, tri, red)

	want := 0
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			inside := x >= 10 && y >= 10 && x+y <= 40
			if inside {
				want++
				assert.Equal(t, red, dst.NRGBAAt(x, y), "pixel %d,%d", x, y)
			} else {
				assert.Equal(t, color.NRGBA{}, dst.NRGBAAt(x, y), "pixel %d,%d", x, y)
			}
		}
	}
	assert.Equal(t, want, n)
}

func TestFillTriangleDegenerate(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	n := FillTriangle(dst, Triangle{{0, 0}, {8, 8}, {15, 15}}, red)
	assert.Zero(t, n)
	for _, v := range dst.Pix {
		require.Zero(t, v)
	}
}

func TestFillTriangleClipsToCanvas(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	n := FillTriangle(dst, Triangle{{-100, -100}, {300, -100}, {-100, 300}}, green)
	assert.Equal(t, 64, n)
	assert.Equal(t, green, dst.NRGBAAt(7, 7))
}

func TestMapTriangleIdentity(t *testing.T) {
	tex := newGradient(32, 32)
	dst := image.NewNRGBA(image.Rect(0, 0, 32, 32))

	// The same triangle on both sides maps every pixel onto itself.
	tri := Triangle{{0, 0}, {31, 0}, {0, 31}}
	MapTriangle(dst, tri, tex, tri)

	for y := 0; y < 32; y++ {
		for x := 0; x+y <= 31; x++ {
			assert.Equal(t, tex.NRGBAAt(x, y), dst.NRGBAAt(x, y), "pixel %d,%d", x, y)
		}
	}
	assert.Equal(t, color.NRGBA{}, dst.NRGBAAt(31, 31))
}

func TestMapTriangleScalesSample(t *testing.T) {
	tex := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	tex.SetNRGBA(0, 0, red)
	tex.SetNRGBA(1, 0, green)
	tex.SetNRGBA(0, 1, blue)
	tex.SetNRGBA(1, 1, blue)

	dst := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	MapTriangle(dst, Triangle{{0, 0}, {39, 0}, {0, 39}}, tex, Triangle{{0, 0}, {1, 0}, {0, 1}})

	assert.Equal(t, red, dst.NRGBAAt(0, 0))
	assert.Equal(t, green, dst.NRGBAAt(39, 0))
	assert.Equal(t, blue, dst.NRGBAAt(0, 39))
}

func TestSampleNearestClamps(t *testing.T) {
	tex := newGradient(4, 4)
	assert.Equal(t, tex.NRGBAAt(0, 0), SampleNearest(tex, -5, -5))
	assert.Equal(t, tex.NRGBAAt(3, 3), SampleNearest(tex, 40, 40))
	assert.Equal(t, tex.NRGBAAt(2, 1), SampleNearest(tex, 2, 1))
	assert.Equal(t, color.NRGBA{}, SampleNearest(image.NewNRGBA(image.Rectangle{}), 0, 0))
}

func TestBlendPixel(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	dst.SetNRGBA(0, 0, blue)

	BlendPixel(dst, 0, 0, color.NRGBA{})
	assert.Equal(t, blue, dst.NRGBAAt(0, 0), "transparent source leaves pixel untouched")

	BlendPixel(dst, 0, 0, color.NRGBA{R: 255, A: 128})
	got := dst.NRGBAAt(0, 0)
	assert.Equal(t, uint8(255), got.A)
	assert.InDelta(t, 128, int(got.R), 1)
	assert.InDelta(t, 127, int(got.B), 1)

	BlendPixel(dst, 1, 0, color.NRGBA{G: 10, A: 99})
	assert.Equal(t, color.NRGBA{G: 10, A: 99}, dst.NRGBAAt(1, 0), "empty destination takes the source as is")

	BlendPixel(dst, 5, 5, red) // outside, no panic
}

func TestFillRect(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	FillRect(dst, image.Rect(5, 5, 20, 20), red)
	assert.Equal(t, red, dst.NRGBAAt(9, 9))
	assert.Equal(t, red, dst.NRGBAAt(5, 5))
	assert.Equal(t, color.NRGBA{}, dst.NRGBAAt(4, 5))
}

func TestBlitSameSizeIsExact(t *testing.T) {
	src := newGradient(16, 12)
	dst := image.NewNRGBA(image.Rect(0, 0, 16, 12))
	Blit(dst, dst.Rect, src, nil)
	assert.Equal(t, src.Pix, dst.Pix)
}

func TestBlitTranslucentIsExact(t *testing.T) {
	src := translucent(4, 3)
	dst := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	Blit(dst, dst.Rect, src, nil)
	assert.Equal(t, src.Pix, dst.Pix)

	offset := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	Blit(offset, image.Rect(8, 8, 12, 11), src, nil)
	assert.Equal(t, src.NRGBAAt(1, 1), offset.NRGBAAt(9, 9))
	assert.Equal(t, color.NRGBA{}, offset.NRGBAAt(7, 9))
}

func TestBlitScales(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < 4; i++ {
		src.SetNRGBA(i%2, i/2, green)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	Blit(dst, image.Rect(4, 4, 12, 12), src, nil)
	assert.Equal(t, green, dst.NRGBAAt(8, 8))
	assert.Equal(t, color.NRGBA{}, dst.NRGBAAt(2, 2))
	assert.Equal(t, color.NRGBA{}, dst.NRGBAAt(12, 12))
}

func TestCrop(t *testing.T) {
	src := newGradient(20, 20)
	got := Crop(src, image.Rect(5, 6, 15, 10))
	require.Equal(t, image.Rect(0, 0, 10, 4), got.Rect)
	for y := 0; y < 4; y++ {
		for x := 0; x < 10; x++ {
			assert.Equal(t, src.NRGBAAt(x+5, y+6), got.NRGBAAt(x, y))
		}
	}

	partial := Crop(src, image.Rect(15, 15, 25, 25))
	assert.Equal(t, src.NRGBAAt(19, 19), partial.NRGBAAt(4, 4))
	assert.Equal(t, color.NRGBA{}, partial.NRGBAAt(5, 5))
}

// translucent returns a w×h image where every pixel has its own color and
// alpha, starting at alpha 1.
func translucent(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(200 - x),
				G: uint8(100 + 10*y),
				B: uint8(50 + x*y),
				A: uint8(1 + 20*(y*w+x)),
			})
		}
	}
	return img
}

// rotateCW moves every pixel of img a quarter turn clockwise.
func rotateCW(img *image.NRGBA) *image.NRGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.SetNRGBA(h-1-y, x, img.NRGBAAt(x, y))
		}
	}
	return out
}

func mirrorX(img *image.NRGBA) *image.NRGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.SetNRGBA(w-1-x, y, img.NRGBAAt(x, y))
		}
	}
	return out
}

func TestOrientAllValues(t *testing.T) {
	src := translucent(3, 4)
	orig := Clone(src)

	for f := RotateNoneFlipNone; f <= Rotate270FlipX; f++ {
		t.Run(f.String(), func(t *testing.T) {
			want := Clone(src)
			for i := 0; i < int(f%4); i++ {
				want = rotateCW(want)
			}
			if f >= RotateNoneFlipX {
				want = mirrorX(want)
			}

			got := Orient(src, f)
			require.Equal(t, want.Rect, got.Rect)
			for y := 0; y < want.Rect.Dy(); y++ {
				for x := 0; x < want.Rect.Dx(); x++ {
					assert.Equal(t, want.NRGBAAt(x, y), got.NRGBAAt(x, y), "pixel (%d,%d)", x, y)
				}
			}
		})
	}

	assert.Same(t, src, Orient(src, RotateNoneFlipNone))
	assert.Equal(t, orig.Pix, src.Pix, "source must not be modified")
}

func TestOrientQuarterTurns(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(10*x + y), A: 255})
		}
	}
	row := func(img *image.NRGBA, y int) []uint8 {
		var r []uint8
		for x := 0; x < img.Rect.Dx(); x++ {
			r = append(r, img.NRGBAAt(x, y).R)
		}
		return r
	}

	cw := Orient(src, Rotate90FlipNone)
	require.Equal(t, image.Rect(0, 0, 3, 4), cw.Rect)
	assert.Equal(t, []uint8{2, 1, 0}, row(cw, 0))
	assert.Equal(t, []uint8{32, 31, 30}, row(cw, 3))

	ccw := Orient(src, Rotate270FlipNone)
	assert.Equal(t, []uint8{30, 31, 32}, row(ccw, 0))
	assert.Equal(t, []uint8{10, 11, 12}, row(ccw, 2))
}

func TestOrientVerticalAliases(t *testing.T) {
	src := translucent(3, 2)
	fy := Orient(src, RotateNoneFlipY)
	fxy := Orient(src, RotateNoneFlipXY)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, src.NRGBAAt(x, 1-y), fy.NRGBAAt(x, y))
			assert.Equal(t, src.NRGBAAt(2-x, 1-y), fxy.NRGBAAt(x, y))
		}
	}
}

func TestOrientKeepsTranslucentTexels(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 1})
	got := Orient(src, RotateNoneFlipX)
	assert.Equal(t, color.NRGBA{R: 200, G: 100, B: 50, A: 1}, got.NRGBAAt(1, 0))
}

func TestParseRotateFlip(t *testing.T) {
	tests := []struct {
		in   string
		want RotateFlip
	}{
		{"", RotateNoneFlipNone},
		{"x", RotateNoneFlipX},
		{"Y", RotateNoneFlipY},
		{"Rotate90FlipNone", Rotate90FlipNone},
		{"rotate270flipx", Rotate270FlipX},
		{"RotateNoneFlipY", Rotate180FlipX},
		{"Rotate90FlipY", Rotate270FlipX},
	}
	for _, tt := range tests {
		got, err := ParseRotateFlip(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseRotateFlip("sideways")
	assert.Error(t, err)
	assert.Equal(t, "Rotate180FlipX", RotateNoneFlipY.String())
	assert.Equal(t, "RotateFlip(12)", RotateFlip(12).String())
}

func TestTriangleDegenerate(t *testing.T) {
	assert.True(t, Triangle{{0, 0}, {1, 1}, {2, 2}}.Degenerate())
	assert.False(t, Triangle{mathutil.Vec2{0, 0}, {1, 0}, {0, 1}}.Degenerate())
}

func TestParseInterpolator(t *testing.T) {
	for name, want := range map[string]draw.Interpolator{
		"":                draw.BiLinear,
		"BiLinear":        draw.BiLinear,
		"nearest":         draw.NearestNeighbor,
		"approx-bilinear": draw.ApproxBiLinear,
		"catmull-rom":     draw.CatmullRom,
	} {
		got, err := ParseInterpolator(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseInterpolator("lanczos")
	assert.Error(t, err)
}
