package composite

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"avatar-texture-baker/internal/mesh"
	"avatar-texture-baker/internal/raster"
)

// ErrInvalidLayer is returned when a layer's payload does not match its kind.
var ErrInvalidLayer = errors.New("invalid layer")

// DrawMode is the geometry source of a layer.
type DrawMode int

const (
	Rect DrawMode = iota
	Guide
)

func (m DrawMode) String() string {
	switch m {
	case Rect:
		return "Rect"
	case Guide:
		return "Guide"
	}
	return fmt.Sprintf("DrawMode(%d)", int(m))
}

// DrawType is the payload kind of a layer.
type DrawType int

const (
	Color DrawType = iota
	Texture
)

func (t DrawType) String() string {
	switch t {
	case Color:
		return "Color"
	case Texture:
		return "Texture"
	}
	return fmt.Sprintf("DrawType(%d)", int(t))
}

// Layer is one paint instruction. The set of implementations is closed:
// RectColor, RectTexture, GuideColor and GuideTexture.
type Layer interface {
	// Order is the z-order key. Lower keys are painted first.
	Order() int
	Mode() DrawMode
	Type() DrawType
	// Validate reports whether the payload is usable.
	Validate() error

	layer()
}

// RectColor fills Rect with Color.
type RectColor struct {
	Key   int
	Rect  image.Rectangle
	Color color.NRGBA
}

// RectTexture blits Image, oriented by Flip, into Rect.
type RectTexture struct {
	Key   int
	Rect  image.Rectangle
	Image *image.NRGBA
	Flip  raster.RotateFlip
}

// GuideColor fills the faces of Guide, placed into Rect, with Color.
type GuideColor struct {
	Key   int
	Guide *mesh.Template
	Rect  image.Rectangle
	Color color.NRGBA
}

// GuideTexture maps Image onto the faces of Guide, placed into Rect, using
// the per-vertex UVs of the template.
type GuideTexture struct {
	Key   int
	Guide *mesh.Template
	Rect  image.Rectangle
	Image *image.NRGBA
}

func (l RectColor) Order() int    { return l.Key }
func (l RectTexture) Order() int  { return l.Key }
func (l GuideColor) Order() int   { return l.Key }
func (l GuideTexture) Order() int { return l.Key }

func (RectColor) Mode() DrawMode    { return Rect }
func (RectTexture) Mode() DrawMode  { return Rect }
func (GuideColor) Mode() DrawMode   { return Guide }
func (GuideTexture) Mode() DrawMode { return Guide }

func (RectColor) Type() DrawType    { return Color }
func (RectTexture) Type() DrawType  { return Texture }
func (GuideColor) Type() DrawType   { return Color }
func (GuideTexture) Type() DrawType { return Texture }

func (RectColor) layer()    {}
func (RectTexture) layer()  {}
func (GuideColor) layer()   {}
func (GuideTexture) layer() {}

func (l RectColor) Validate() error {
	return validateRect(l.Rect)
}

func (l RectTexture) Validate() error {
	if err := validateRect(l.Rect); err != nil {
		return err
	}
	if err := validateImage(l.Image); err != nil {
		return err
	}
	if !l.Flip.Valid() {
		return fmt.Errorf("composite: %v: %w", l.Flip, ErrInvalidLayer)
	}
	return nil
}

func (l GuideColor) Validate() error {
	if err := validateRect(l.Rect); err != nil {
		return err
	}
	return validateGuide(l.Guide)
}

func (l GuideTexture) Validate() error {
	if err := validateRect(l.Rect); err != nil {
		return err
	}
	if err := validateGuide(l.Guide); err != nil {
		return err
	}
	return validateImage(l.Image)
}

func validateRect(r image.Rectangle) error {
	if r.Empty() {
		return fmt.Errorf("composite: empty rect %v: %w", r, ErrInvalidLayer)
	}
	return nil
}

func validateImage(img *image.NRGBA) error {
	if img == nil {
		return fmt.Errorf("composite: texture layer without image: %w", ErrInvalidLayer)
	}
	if img.Rect.Empty() {
		return fmt.Errorf("composite: empty image: %w", ErrInvalidLayer)
	}
	return nil
}

func validateGuide(g *mesh.Template) error {
	if g == nil {
		return fmt.Errorf("composite: guide layer without template: %w", ErrInvalidLayer)
	}
	if g.FaceCount() == 0 {
		return fmt.Errorf("composite: guide %s has no faces: %w", g.Name, ErrInvalidLayer)
	}
	return nil
}

// NewRectColor returns a layer filling r with c.
func NewRectColor(r image.Rectangle, c color.NRGBA, key int) (RectColor, error) {
	l := RectColor{Key: key, Rect: r, Color: c}
	return l, l.Validate()
}

// NewRectTexture returns a layer blitting img, oriented by flip, into r.
func NewRectTexture(r image.Rectangle, img *image.NRGBA, flip raster.RotateFlip, key int) (RectTexture, error) {
	l := RectTexture{Key: key, Rect: r, Image: img, Flip: flip}
	return l, l.Validate()
}

// NewGuideColor returns a layer filling guide, placed into r, with c.
func NewGuideColor(guide *mesh.Template, r image.Rectangle, c color.NRGBA, key int) (GuideColor, error) {
	l := GuideColor{Key: key, Guide: guide, Rect: r, Color: c}
	return l, l.Validate()
}

// NewGuideTexture returns a layer mapping img onto guide, placed into r.
func NewGuideTexture(guide *mesh.Template, r image.Rectangle, img *image.NRGBA, key int) (GuideTexture, error) {
	l := GuideTexture{Key: key, Guide: guide, Rect: r, Image: img}
	return l, l.Validate()
}
