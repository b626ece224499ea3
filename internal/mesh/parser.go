package mesh

import (
	"fmt"
	"io"
	"math"

	"github.com/BurntSushi/toml"

	"avatar-texture-baker/internal/mathutil"
)

// tomlGuide matches the guide file schema:
//
//	name = "Torso"
//
//	[[face]]
//	vertices = [
//	  { pos = [0.0, 0.0], uv = [0.0, 0.0] },
//	  { pos = [1.0, 0.0], uv = [1.0, 0.0] },
//	  { pos = [0.0, 1.0], uv = [0.0, 1.0] },
//	]
type tomlGuide struct {
	Name  string     `toml:"name"`
	Faces []tomlFace `toml:"face"`
}

type tomlFace struct {
	Vertices []tomlVertex `toml:"vertices"`
}

type tomlVertex struct {
	Pos [2]float64 `toml:"pos"`
	UV  [2]float64 `toml:"uv"`
}

// Parse decodes one guide template. fallbackName is used when the file has
// no name key.
func Parse(r io.Reader, fallbackName string, topo Topology) (*Template, error) {
	var g tomlGuide
	if _, err := toml.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("mesh: parse %s: %w", fallbackName, err)
	}

	name := g.Name
	if name == "" {
		name = fallbackName
	}
	if len(g.Faces) == 0 {
		return nil, fmt.Errorf("mesh: guide %s has no faces", name)
	}

	t := &Template{Name: name, Topology: topo, Faces: make([]Face, len(g.Faces))}
	for i, f := range g.Faces {
		if len(f.Vertices) != 3 {
			return nil, fmt.Errorf("mesh: guide %s face %d: want 3 vertices, got %d", name, i, len(f.Vertices))
		}
		for j, v := range f.Vertices {
			for _, c := range [4]float64{v.Pos[0], v.Pos[1], v.UV[0], v.UV[1]} {
				if math.IsNaN(c) || math.IsInf(c, 0) {
					return nil, fmt.Errorf("mesh: guide %s face %d vertex %d: non-finite coordinate", name, i, j)
				}
			}
			t.Faces[i][j] = Vertex{Pos: mathutil.Vec2(v.Pos), UV: mathutil.Vec2(v.UV)}
		}
	}
	return t, nil
}
