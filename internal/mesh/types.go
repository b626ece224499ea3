package mesh

import (
	"fmt"
	"strings"

	"avatar-texture-baker/internal/mathutil"
)

// Topology selects the character rig a guide template was authored for.
type Topology int

const (
	R6 Topology = iota
	R15
)

func (t Topology) String() string {
	switch t {
	case R6:
		return "R6"
	case R15:
		return "R15"
	}
	return fmt.Sprintf("Topology(%d)", int(t))
}

// ParseTopology accepts "R6" or "R15" in any case.
func ParseTopology(s string) (Topology, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "R6":
		return R6, nil
	case "R15":
		return R15, nil
	}
	return 0, fmt.Errorf("mesh: unknown topology %q", s)
}

// Vertex holds a position in the template's local space and a UV into the
// source texture. Both are normalized to [0,1]×[0,1].
type Vertex struct {
	Pos mathutil.Vec2
	UV  mathutil.Vec2
}

// Face is one triangle of a template.
type Face [3]Vertex

// Positions returns the local positions of the three vertices.
func (f Face) Positions() [3]mathutil.Vec2 {
	return [3]mathutil.Vec2{f[0].Pos, f[1].Pos, f[2].Pos}
}

// Template is a named guide mesh: the texture layout of one body part.
type Template struct {
	Name     string
	Topology Topology
	Faces    []Face
}

// FaceCount returns the number of triangles.
func (t *Template) FaceCount() int {
	return len(t.Faces)
}
