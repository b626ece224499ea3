package texture

import (
	"os"
	"path/filepath"
	"strings"
)

// extPriority ranks decodable extensions. When two files share a stem the
// higher rank wins (formats with an alpha channel beat JPEG).
var extPriority = map[string]int{
	".jpg":  1,
	".jpeg": 1,
	".gif":  2,
	".bmp":  2,
	".tif":  3,
	".tiff": 3,
	".webp": 4,
	".tga":  5,
	".png":  6,
}

// Index maps lowercase texture stems to filesystem paths.
type Index struct {
	root    string
	entries map[string]string // stem.lower() → full path
}

// BuildIndex scans dir and all subdirectories for image files.
// A missing or empty dir yields an empty index.
func BuildIndex(dir string) *Index {
	idx := &Index{root: dir, entries: make(map[string]string)}
	if dir == "" {
		return idx
	}

	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		rank, ok := extPriority[ext]
		if !ok {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

		existing, exists := idx.entries[stem]
		if !exists || rank > extPriority[strings.ToLower(filepath.Ext(existing))] {
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

// ResolvePath returns the filesystem path for a texture reference, or
// ("", false). A reference is either a file path (absolute, or relative to
// the index root) or a bare name whose directory and extension are ignored.
func (idx *Index) ResolvePath(ref string) (string, bool) {
	ref = strings.ReplaceAll(ref, "\\", "/")
	if ref == "" {
		return "", false
	}

	if filepath.Ext(ref) != "" {
		candidates := []string{filepath.FromSlash(ref)}
		if !filepath.IsAbs(ref) && idx.root != "" {
			candidates = append([]string{filepath.Join(idx.root, filepath.FromSlash(ref))}, candidates...)
		}
		for _, c := range candidates {
			if info, err := os.Stat(c); err == nil && !info.IsDir() {
				return c, true
			}
		}
	}

	base := filepath.Base(ref)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.entries)
}
