package recipe

import (
	"fmt"
	"image"
	"image/color"

	"avatar-texture-baker/internal/composite"
	"avatar-texture-baker/internal/mesh"
	"avatar-texture-baker/internal/raster"
)

// Build creates a compositor for the recipe and appends every layer,
// resolving palette colors, images and guides through the options.
// Resolution failures are returned before any bake happens.
func (r *Recipe) Build(opts ...composite.Option) (*composite.Compositor, error) {
	topo, err := mesh.ParseTopology(r.Topology)
	if err != nil {
		return nil, err
	}

	c := composite.New(topo, r.Width, r.Height, opts...)
	if r.Context != "" {
		c.SetContext(r.Context)
	}

	for i, l := range r.Layers {
		if err := appendLayer(c, l); err != nil {
			return nil, fmt.Errorf("recipe: %s: layer %d: %w", r.Name, i, err)
		}
	}
	return c, nil
}

func appendLayer(c *composite.Compositor, l LayerSpec) error {
	if l.RGBA != nil {
		col := color.NRGBA{R: l.RGBA[0], G: l.RGBA[1], B: l.RGBA[2], A: l.RGBA[3]}
		if l.Guide == "" {
			layer, err := composite.NewRectColor(l.Rect, col, l.Key)
			if err != nil {
				return err
			}
			return c.Append(layer)
		}
		return c.AppendGuideRGBA(col, l.Guide, l.Rect, l.Key)
	}

	switch {
	case l.Guide == "" && l.ColorID != nil:
		return c.AppendColor(*l.ColorID, l.Rect, l.Key)
	case l.Guide == "":
		flip, err := raster.ParseRotateFlip(l.Flip)
		if err != nil {
			return err
		}
		return c.AppendTexture(l.Texture, l.Rect, l.Key, flip)
	case l.ColorID != nil:
		return c.AppendGuideColor(*l.ColorID, l.Guide, l.Rect, l.Key)
	default:
		return c.AppendGuideTexture(l.Texture, l.Guide, l.Rect, l.Key)
	}
}

// Bake builds the compositor, bakes it and applies the recipe's crop.
func (r *Recipe) Bake(opts ...composite.Option) (*image.NRGBA, error) {
	c, err := r.Build(opts...)
	if err != nil {
		return nil, err
	}
	if r.Crop.Empty() {
		return c.Bake()
	}
	return c.BakeCrop(r.Crop)
}
