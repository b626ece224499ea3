package palette

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
)

// ErrUnknownColor is returned for ids missing from the palette.
var ErrUnknownColor = errors.New("unknown color id")

// Entry is one palette color.
type Entry struct {
	ID      int
	Name    string
	R, G, B uint8
}

// NRGBA returns the opaque color of e.
func (e Entry) NRGBA() color.NRGBA {
	return color.NRGBA{R: e.R, G: e.G, B: e.B, A: 255}
}

// Palette maps integer color ids to colors. The zero value is empty.
type Palette struct {
	entries map[int]Entry
}

// Default returns a palette holding the built-in BrickColor table.
func Default() *Palette {
	p := &Palette{entries: make(map[int]Entry, len(brickColors))}
	for _, e := range brickColors {
		p.entries[e.ID] = e
	}
	return p
}

// Color resolves id to an opaque RGBA value.
func (p *Palette) Color(id int) (color.NRGBA, error) {
	e, ok := p.entries[id]
	if !ok {
		return color.NRGBA{}, fmt.Errorf("palette: %d: %w", id, ErrUnknownColor)
	}
	return e.NRGBA(), nil
}

// ColorOrDefault resolves id, falling back to DefaultID.
func (p *Palette) ColorOrDefault(id int) color.NRGBA {
	if c, err := p.Color(id); err == nil {
		return c
	}
	return p.entries[DefaultID].NRGBA()
}

// Lookup returns the entry for id.
func (p *Palette) Lookup(id int) (Entry, bool) {
	e, ok := p.entries[id]
	return e, ok
}

// Set adds or replaces an entry.
func (p *Palette) Set(e Entry) {
	if p.entries == nil {
		p.entries = make(map[int]Entry)
	}
	p.entries[e.ID] = e
}

// Len returns the number of entries.
func (p *Palette) Len() int {
	return len(p.entries)
}

// IDs returns every id in ascending order.
func (p *Palette) IDs() []int {
	ids := make([]int, 0, len(p.entries))
	for id := range p.entries {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// tomlPalette matches the override file schema:
//
//	[[color]]
//	id = 1
//	name = "White"
//	rgb = [242, 243, 243]
type tomlPalette struct {
	Colors []struct {
		ID   int      `toml:"id"`
		Name string   `toml:"name"`
		RGB  [3]uint8 `toml:"rgb"`
	} `toml:"color"`
}

// LoadOverrides reads a TOML palette file and merges it into p.
func (p *Palette) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("palette: read %s: %w", path, err)
	}
	return p.MergeTOML(string(data))
}

// MergeTOML merges a TOML palette document into p.
func (p *Palette) MergeTOML(doc string) error {
	var tp tomlPalette
	if _, err := toml.Decode(doc, &tp); err != nil {
		return fmt.Errorf("palette: parse: %w", err)
	}
	for _, c := range tp.Colors {
		p.Set(Entry{ID: c.ID, Name: c.Name, R: c.RGB[0], G: c.RGB[1], B: c.RGB[2]})
	}
	return nil
}
