package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAndResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	doc := `{"base_dir": "` + filepath.ToSlash(dir) + `", "texture_dir": "tex", "guide_dir": "/opt/guides", "format": "PNG", "workers": 3}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Resolve(Flags{Workers: 5})

	assert.Equal(t, filepath.Join(dir, "tex"), cfg.TextureDir)
	assert.Equal(t, "/opt/guides", cfg.GuideDir)
	assert.Equal(t, filepath.Join(dir, "recipes"), cfg.RecipeDir)
	assert.Equal(t, filepath.Join(dir, "baked"), cfg.OutputDir)
	assert.Equal(t, FormatPNG, cfg.Format)
	assert.Equal(t, 5, cfg.Workers, "flags override the file")
	assert.Empty(t, cfg.PaletteFile)
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{BaseDir: "/data", Format: "gif"})

	assert.Equal(t, "/data", cfg.BaseDir)
	assert.Equal(t, filepath.Join("/data", "textures"), cfg.TextureDir)
	assert.Equal(t, FormatWebP, cfg.Format)
	assert.Equal(t, "bilinear", cfg.Interpolator)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)
}
