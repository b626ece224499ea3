package mesh

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
)

// ErrGuideNotFound is returned when no template exists for a name/topology.
var ErrGuideNotFound = errors.New("guide not found")

//go:embed builtin
var builtinFS embed.FS

// Library resolves guide templates from a directory tree laid out as
// <topology>/<name>.toml, falling back to <name>.toml at the root for
// guides shared by every topology. Lookups are case-insensitive and parsed
// templates are cached; Library is safe for concurrent use.
type Library struct {
	fsys    fs.FS
	entries map[string]string // "r15/leftarm" or "leftarm" → path

	mu    sync.RWMutex
	cache map[string]*Template
}

// Builtin returns a library over the guides shipped with the binary.
func Builtin() *Library {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err)
	}
	lib, err := NewLibrary(sub)
	if err != nil {
		panic(err)
	}
	return lib
}

// NewLibrary indexes every .toml file under fsys.
func NewLibrary(fsys fs.FS) (*Library, error) {
	lib := &Library{
		fsys:    fsys,
		entries: make(map[string]string),
		cache:   make(map[string]*Template),
	}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.ToLower(path.Ext(p)) != ".toml" {
			return nil
		}
		stem := strings.TrimSuffix(path.Base(p), path.Ext(p))
		dir := path.Dir(p)
		key := strings.ToLower(stem)
		if dir != "." {
			key = strings.ToLower(path.Base(dir)) + "/" + key
		}
		lib.entries[key] = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("mesh: index guides: %w", err)
	}
	return lib, nil
}

// Len returns the number of indexed guide files.
func (l *Library) Len() int {
	return len(l.entries)
}

// Names returns the guide names available for topo, including shared ones.
func (l *Library) Names(topo Topology) []string {
	prefix := strings.ToLower(topo.String()) + "/"
	var names []string
	for key := range l.entries {
		if name, ok := strings.CutPrefix(key, prefix); ok {
			names = append(names, name)
		} else if !strings.Contains(key, "/") {
			if _, shadowed := l.entries[prefix+key]; !shadowed {
				names = append(names, key)
			}
		}
	}
	return names
}

// Guide returns the template called name for topo.
func (l *Library) Guide(name string, topo Topology) (*Template, error) {
	key := strings.ToLower(topo.String()) + "/" + strings.ToLower(name)
	p, ok := l.entries[key]
	if !ok {
		key = strings.ToLower(name)
		p, ok = l.entries[key]
	}
	if !ok {
		return nil, fmt.Errorf("mesh: %s/%s: %w", topo, name, ErrGuideNotFound)
	}
	cacheKey := topo.String() + "/" + p

	// Fast path: read lock
	l.mu.RLock()
	if t, exists := l.cache[cacheKey]; exists {
		l.mu.RUnlock()
		return t, nil
	}
	l.mu.RUnlock()

	// Slow path: parse
	f, err := l.fsys.Open(p)
	if err != nil {
		return nil, fmt.Errorf("mesh: open %s: %w", p, err)
	}
	t, err := Parse(f, strings.TrimSuffix(path.Base(p), path.Ext(p)), topo)
	f.Close()
	if err != nil {
		return nil, err
	}

	// Write lock with double-check
	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, exists := l.cache[cacheKey]; exists {
		return existing, nil
	}
	l.cache[cacheKey] = t
	return t, nil
}
