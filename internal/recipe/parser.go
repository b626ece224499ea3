package recipe

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"avatar-texture-baker/internal/mesh"
	"avatar-texture-baker/internal/raster"
)

// ErrInvalid is wrapped by every recipe validation error.
var ErrInvalid = errors.New("invalid recipe")

// tomlRecipe matches the recipe file schema:
//
//	name = "shirt"
//	topology = "R15"
//	width = 585
//	height = 559
//	crop = [0, 0, 585, 559]   # x, y, w, h (optional)
//
//	[[layer]]
//	key = 0
//	rect = [0, 0, 585, 559]   # x, y, w, h
//	color = 194               # palette id, or rgba = [r, g, b, a]
//
//	[[layer]]
//	key = 1
//	guide = "Torso"
//	rect = [231, 74, 128, 128]
//	texture = "shirt_source"
type tomlRecipe struct {
	Name     string      `toml:"name"`
	Context  string      `toml:"context"`
	Topology string      `toml:"topology"`
	Width    int         `toml:"width"`
	Height   int         `toml:"height"`
	Crop     *[4]int     `toml:"crop"`
	Output   string      `toml:"output"`
	Preview  int         `toml:"preview"`
	Layers   []tomlLayer `toml:"layer"`
}

type tomlLayer struct {
	Key     int       `toml:"key"`
	Rect    [4]int    `toml:"rect"`
	Guide   string    `toml:"guide"`
	Color   *int      `toml:"color"`
	RGBA    *[4]uint8 `toml:"rgba"`
	Texture string    `toml:"texture"`
	Flip    string    `toml:"flip"`
}

// Load reads a recipe file. The file stem is the default recipe name.
func Load(path string) (*Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("recipe: read %s: %w", path, err)
	}
	defer f.Close()

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(f, stem)
}

// Parse decodes and validates a recipe.
func Parse(r io.Reader, fallbackName string) (*Recipe, error) {
	var tr tomlRecipe
	md, err := toml.NewDecoder(r).Decode(&tr)
	if err != nil {
		return nil, fmt.Errorf("recipe: parse %s: %w", fallbackName, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("recipe: %s: unknown key %s: %w", fallbackName, undecoded[0], ErrInvalid)
	}

	rec := &Recipe{
		Name:     tr.Name,
		Context:  tr.Context,
		Topology: tr.Topology,
		Width:    tr.Width,
		Height:   tr.Height,
		Output:   tr.Output,
		Preview:  tr.Preview,
	}
	if rec.Name == "" {
		rec.Name = fallbackName
	}
	if rec.Topology == "" {
		rec.Topology = mesh.R15.String()
	}
	if tr.Crop != nil {
		rec.Crop = xywh(*tr.Crop)
	}
	for _, l := range tr.Layers {
		rec.Layers = append(rec.Layers, LayerSpec{
			Key:     l.Key,
			Rect:    xywh(l.Rect),
			Guide:   l.Guide,
			ColorID: l.Color,
			RGBA:    l.RGBA,
			Texture: l.Texture,
			Flip:    l.Flip,
		})
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// Validate checks the recipe without resolving any resource.
func (r *Recipe) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("recipe: %s: canvas %dx%d: %w", r.Name, r.Width, r.Height, ErrInvalid)
	}
	if _, err := mesh.ParseTopology(r.Topology); err != nil {
		return fmt.Errorf("recipe: %s: %w: %w", r.Name, err, ErrInvalid)
	}
	if r.Crop != (image.Rectangle{}) && r.Crop.Empty() {
		return fmt.Errorf("recipe: %s: empty crop %v: %w", r.Name, r.Crop, ErrInvalid)
	}
	if r.Preview < 0 {
		return fmt.Errorf("recipe: %s: negative preview size: %w", r.Name, ErrInvalid)
	}
	for i, l := range r.Layers {
		if err := l.validate(); err != nil {
			return fmt.Errorf("recipe: %s: layer %d: %w", r.Name, i, err)
		}
	}
	return nil
}

func (l LayerSpec) validate() error {
	if l.ColorID != nil && l.RGBA != nil {
		return fmt.Errorf("both color and rgba set: %w", ErrInvalid)
	}
	if l.IsColor() == (l.Texture != "") {
		return fmt.Errorf("exactly one of color, rgba or texture is required: %w", ErrInvalid)
	}
	if l.Flip != "" {
		if l.Guide != "" || l.IsColor() {
			return fmt.Errorf("flip applies to rect texture layers only: %w", ErrInvalid)
		}
		if _, err := raster.ParseRotateFlip(l.Flip); err != nil {
			return fmt.Errorf("%w: %w", err, ErrInvalid)
		}
	}
	if l.Rect.Empty() {
		return fmt.Errorf("empty rect %v: %w", l.Rect, ErrInvalid)
	}
	return nil
}

// xywh converts [x, y, w, h] to a rectangle. Zero and negative sizes are
// kept so Validate can reject them.
func xywh(v [4]int) image.Rectangle {
	return image.Rectangle{Min: image.Pt(v[0], v[1]), Max: image.Pt(v[0]+v[2], v[1]+v[3])}
}
