package recipe

import (
	"image"
)

// Recipe describes one bake: canvas, topology and layer stack.
type Recipe struct {
	Name     string
	Context  string
	Topology string
	Width    int
	Height   int
	Crop     image.Rectangle // empty = no crop
	Output   string          // output file name, relative to the output dir
	Preview  int             // preview edge length in pixels, 0 = none
	Layers   []LayerSpec
}

// LayerSpec is one layer before its resources are resolved.
type LayerSpec struct {
	Key     int
	Rect    image.Rectangle
	Guide   string // non-empty selects guide mode
	ColorID *int
	RGBA    *[4]uint8
	Texture string
	Flip    string
}

// IsColor reports whether the layer paints a flat color.
func (l LayerSpec) IsColor() bool {
	return l.ColorID != nil || l.RGBA != nil
}
