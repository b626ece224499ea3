package composite

import (
	"errors"
	"fmt"
	"image"

	"avatar-texture-baker/internal/mathutil"
	"avatar-texture-baker/internal/mesh"
	"avatar-texture-baker/internal/raster"
)

// ErrUnknownLayer is returned when a bake meets a layer kind it cannot paint.
var ErrUnknownLayer = errors.New("unknown layer kind")

// paint draws l onto canvas and returns the number of pixels written by the
// triangle paths (rectangle paths report the clipped area).
func (c *Compositor) paint(canvas *image.NRGBA, l Layer) (int, error) {
	switch l := l.(type) {
	case RectColor:
		raster.FillRect(canvas, l.Rect, l.Color)
		return clippedArea(canvas, l.Rect), nil

	case RectTexture:
		img := raster.Orient(l.Image, l.Flip)
		raster.Blit(canvas, l.Rect, img, c.interp)
		return clippedArea(canvas, l.Rect), nil

	case GuideColor:
		n := 0
		for _, f := range l.Guide.Faces {
			n += raster.FillTriangle(canvas, placeFace(f, l.Rect), l.Color)
		}
		return n, nil

	case GuideTexture:
		w, h := l.Image.Rect.Dx(), l.Image.Rect.Dy()
		n := 0
		for _, f := range l.Guide.Faces {
			st := raster.Triangle{
				mathutil.VertexToSample(f[0].UV, w, h),
				mathutil.VertexToSample(f[1].UV, w, h),
				mathutil.VertexToSample(f[2].UV, w, h),
			}
			n += raster.MapTriangle(canvas, placeFace(f, l.Rect), l.Image, st)
		}
		return n, nil
	}
	return 0, fmt.Errorf("%T: %w", l, ErrUnknownLayer)
}

// placeFace maps the local positions of f into the pixel space of r.
func placeFace(f mesh.Face, r image.Rectangle) raster.Triangle {
	return raster.Triangle{
		mathutil.VertexToPoint(f[0].Pos, r),
		mathutil.VertexToPoint(f[1].Pos, r),
		mathutil.VertexToPoint(f[2].Pos, r),
	}
}

func clippedArea(canvas *image.NRGBA, r image.Rectangle) int {
	r = r.Intersect(canvas.Rect)
	return r.Dx() * r.Dy()
}
