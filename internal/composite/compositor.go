package composite

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"golang.org/x/image/draw"

	"avatar-texture-baker/internal/mesh"
	"avatar-texture-baker/internal/raster"
)

// DefaultContext is the progress label used until SetContext is called.
const DefaultContext = "Humanoid Texture Map"

// errNoProvider is returned by the Append helpers when the collaborator they
// need was not configured.
var errNoProvider = errors.New("provider not configured")

// ImageProvider resolves a source image reference.
type ImageProvider interface {
	Image(ref string) (*image.NRGBA, error)
}

// Palette resolves a color id.
type Palette interface {
	Color(id int) (color.NRGBA, error)
}

// GuideProvider resolves a guide template for a character topology.
type GuideProvider interface {
	Guide(name string, topo mesh.Topology) (*mesh.Template, error)
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithImages sets the provider used by AppendTexture and AppendGuideTexture.
func WithImages(p ImageProvider) Option {
	return func(c *Compositor) { c.images = p }
}

// WithPalette sets the resolver used by AppendColor and AppendGuideColor.
func WithPalette(p Palette) Option {
	return func(c *Compositor) { c.palette = p }
}

// WithGuides sets the provider used by the guide Append helpers.
func WithGuides(p GuideProvider) Option {
	return func(c *Compositor) { c.guides = p }
}

// WithObserver sets the progress observer. nil restores the no-op default.
func WithObserver(o Observer) Option {
	return func(c *Compositor) {
		if o == nil {
			o = nopObserver{}
		}
		c.observer = o
	}
}

// WithInterpolator sets the scaler used when a texture is blitted into a
// rectangle of a different size. The default is draw.BiLinear.
func WithInterpolator(i draw.Interpolator) Option {
	return func(c *Compositor) { c.interp = i }
}

// Compositor paints a stack of layers onto a fresh canvas. A Compositor may
// bake any number of times; it is not safe for concurrent use.
type Compositor struct {
	topology mesh.Topology
	size     image.Point
	context  string
	layers   Store

	images   ImageProvider
	palette  Palette
	guides   GuideProvider
	observer Observer
	interp   draw.Interpolator
}

// New returns a compositor for a width×height canvas.
func New(topo mesh.Topology, width, height int, opts ...Option) *Compositor {
	c := &Compositor{
		topology: topo,
		size:     image.Pt(max(width, 0), max(height, 0)),
		context:  DefaultContext,
		observer: nopObserver{},
		interp:   draw.BiLinear,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewRect returns a compositor whose canvas has the size of r.
func NewRect(topo mesh.Topology, r image.Rectangle, opts ...Option) *Compositor {
	return New(topo, r.Dx(), r.Dy(), opts...)
}

// Topology returns the character topology used for guide lookups.
func (c *Compositor) Topology() mesh.Topology {
	return c.topology
}

// Size returns the canvas size.
func (c *Compositor) Size() image.Point {
	return c.size
}

// Len returns the number of layers appended so far.
func (c *Compositor) Len() int {
	return c.layers.Len()
}

// SetContext sets the label reported to the observer.
func (c *Compositor) SetContext(label string) {
	c.context = label
}

// Append adds a pre-built layer.
func (c *Compositor) Append(l Layer) error {
	return c.layers.Append(l)
}

// AppendColor adds a layer filling r with the palette color colorID.
func (c *Compositor) AppendColor(colorID int, r image.Rectangle, key int) error {
	col, err := c.resolveColor(colorID)
	if err != nil {
		return err
	}
	l, err := NewRectColor(r, col, key)
	if err != nil {
		return err
	}
	return c.layers.Append(l)
}

// AppendTexture adds a layer blitting the image ref, oriented by flip, into r.
func (c *Compositor) AppendTexture(ref string, r image.Rectangle, key int, flip raster.RotateFlip) error {
	img, err := c.resolveImage(ref)
	if err != nil {
		return err
	}
	l, err := NewRectTexture(r, img, flip, key)
	if err != nil {
		return err
	}
	return c.layers.Append(l)
}

// AppendGuideColor adds a layer filling the guide template, placed into r,
// with the palette color colorID.
func (c *Compositor) AppendGuideColor(colorID int, guide string, r image.Rectangle, key int) error {
	col, err := c.resolveColor(colorID)
	if err != nil {
		return err
	}
	g, err := c.resolveGuide(guide)
	if err != nil {
		return err
	}
	l, err := NewGuideColor(g, r, col, key)
	if err != nil {
		return err
	}
	return c.layers.Append(l)
}

// AppendGuideRGBA is AppendGuideColor for a color given directly instead of
// through the palette.
func (c *Compositor) AppendGuideRGBA(col color.NRGBA, guide string, r image.Rectangle, key int) error {
	g, err := c.resolveGuide(guide)
	if err != nil {
		return err
	}
	l, err := NewGuideColor(g, r, col, key)
	if err != nil {
		return err
	}
	return c.layers.Append(l)
}

// AppendGuideTexture adds a layer mapping the image ref onto the guide
// template placed into r.
func (c *Compositor) AppendGuideTexture(ref string, guide string, r image.Rectangle, key int) error {
	img, err := c.resolveImage(ref)
	if err != nil {
		return err
	}
	g, err := c.resolveGuide(guide)
	if err != nil {
		return err
	}
	l, err := NewGuideTexture(g, r, img, key)
	if err != nil {
		return err
	}
	return c.layers.Append(l)
}

func (c *Compositor) resolveColor(id int) (color.NRGBA, error) {
	if c.palette == nil {
		return color.NRGBA{}, fmt.Errorf("composite: color %d: palette %w", id, errNoProvider)
	}
	return c.palette.Color(id)
}

func (c *Compositor) resolveImage(ref string) (*image.NRGBA, error) {
	if c.images == nil {
		return nil, fmt.Errorf("composite: image %s: image %w", ref, errNoProvider)
	}
	return c.images.Image(ref)
}

func (c *Compositor) resolveGuide(name string) (*mesh.Template, error) {
	if c.guides == nil {
		return nil, fmt.Errorf("composite: guide %s: guide %w", name, errNoProvider)
	}
	return c.guides.Guide(name, c.topology)
}

// Bake paints every layer, in ascending key order, onto a new transparent
// canvas and returns it. The caller owns the result.
func (c *Compositor) Bake() (*image.NRGBA, error) {
	canvas := image.NewNRGBA(image.Rectangle{Max: c.size})
	layers := c.layers.Sorted()
	total := len(layers)
	log := Logger()

	log.Info("bake", "compositor", c)
	c.observer.Begin(c.context, total)

	for i, l := range layers {
		n, err := c.paint(canvas, l)
		if err != nil {
			return nil, fmt.Errorf("composite: layer %d: %w", i, err)
		}
		log.Debug("layer painted",
			"index", i, "key", l.Order(), "mode", l.Mode(), "type", l.Type(), "pixels", n)

		p := Progress{Label: c.context, Painted: i + 1, Total: total}
		if total > 2 {
			p.snapshot = func() *image.NRGBA { return raster.Clone(canvas) }
		}
		c.observer.LayerDone(p)
	}

	c.observer.End(c.context)
	log.Info("baked", "context", c.context)
	return canvas, nil
}

// BakeCrop bakes and returns only the part of the canvas inside r.
func (c *Compositor) BakeCrop(r image.Rectangle) (*image.NRGBA, error) {
	canvas, err := c.Bake()
	if err != nil {
		return nil, err
	}
	return Crop(canvas, r), nil
}

// Crop copies the part of img inside r into a new image of r's size, so that
// (x, y) lands at (x - r.Min.X, y - r.Min.Y). Parts of r outside img stay
// transparent.
func Crop(img *image.NRGBA, r image.Rectangle) *image.NRGBA {
	return raster.Crop(img, r)
}

// LogValue lets a Compositor be passed to slog directly.
func (c *Compositor) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("context", c.context),
		slog.String("topology", c.Topology().String()),
		slog.Int("width", c.size.X),
		slog.Int("height", c.size.Y),
		slog.Int("layers", c.layers.Len()),
	)
}
