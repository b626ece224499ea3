package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Output formats.
const (
	FormatWebP = "webp"
	FormatPNG  = "png"
)

// Config holds all configurable paths and bake settings.
type Config struct {
	// Paths
	BaseDir     string `json:"base_dir"`
	TextureDir  string `json:"texture_dir"`
	GuideDir    string `json:"guide_dir"`    // empty = built-in guides only
	PaletteFile string `json:"palette_file"` // optional TOML overrides
	RecipeDir   string `json:"recipe_dir"`
	OutputDir   string `json:"output_dir"`

	// Bake settings
	Format       string `json:"format"`
	Interpolator string `json:"interpolator"` // nearest, approx-bilinear, bilinear, catmull-rom
	Workers      int    `json:"workers"`
	PreviewSize  int    `json:"preview_size"` // default preview edge for recipes without one, 0 = none
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.BaseDir != "" {
		c.BaseDir = flags.BaseDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}

	// Resolve relative paths against base dir
	c.TextureDir = c.under(c.TextureDir, "textures")
	c.RecipeDir = c.under(c.RecipeDir, "recipes")
	c.OutputDir = c.under(c.OutputDir, "baked")
	if c.GuideDir != "" {
		c.GuideDir = c.under(c.GuideDir, "")
	}
	if c.PaletteFile != "" {
		c.PaletteFile = c.under(c.PaletteFile, "")
	}

	// Defaults for bake settings
	c.Format = strings.ToLower(c.Format)
	if c.Format != FormatPNG {
		c.Format = FormatWebP
	}
	if c.Interpolator == "" {
		c.Interpolator = "bilinear"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

func (c *Config) under(p, def string) string {
	if p == "" {
		p = def
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	BaseDir   string
	OutputDir string
	Format    string
	Workers   int
}
