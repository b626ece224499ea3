package mesh

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avatar-texture-baker/internal/mathutil"
)

const triangleGuide = `
name = "Corner"

[[face]]
vertices = [
  { pos = [0.0, 0.0], uv = [0.0, 0.0] },
  { pos = [1.0, 0.0], uv = [1.0, 0.0] },
  { pos = [0.0, 1.0], uv = [0.0, 1.0] },
]
`

func TestParse(t *testing.T) {
	tmpl, err := Parse(strings.NewReader(triangleGuide), "fallback", R15)
	require.NoError(t, err)
	assert.Equal(t, "Corner", tmpl.Name)
	assert.Equal(t, R15, tmpl.Topology)
	require.Equal(t, 1, tmpl.FaceCount())
	assert.Equal(t, Vertex{Pos: mathutil.Vec2{1, 0}, UV: mathutil.Vec2{1, 0}}, tmpl.Faces[0][1])
	assert.Equal(t, [3]mathutil.Vec2{{0, 0}, {1, 0}, {0, 1}}, tmpl.Faces[0].Positions())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no faces", `name = "Empty"`},
		{"two vertices", `
[[face]]
vertices = [ { pos = [0.0, 0.0], uv = [0.0, 0.0] }, { pos = [1.0, 0.0], uv = [1.0, 0.0] } ]
`},
		{"bad toml", `[[face]`},
		{"nan", `
[[face]]
vertices = [ { pos = [nan, 0.0], uv = [0.0, 0.0] }, { pos = [1.0, 0.0], uv = [1.0, 0.0] }, { pos = [0.0, 1.0], uv = [0.0, 1.0] } ]
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc), tt.name, R6)
			assert.Error(t, err)
		})
	}
}

func TestParseFallbackName(t *testing.T) {
	doc := strings.Replace(triangleGuide, `name = "Corner"`, "", 1)
	tmpl, err := Parse(strings.NewReader(doc), "Head", R6)
	require.NoError(t, err)
	assert.Equal(t, "Head", tmpl.Name)
}

func TestLibraryLookup(t *testing.T) {
	fsys := fstest.MapFS{
		"R6/Torso.toml":   {Data: []byte(triangleGuide)},
		"R15/Torso.toml":  {Data: []byte(strings.Replace(triangleGuide, "Corner", "R15Torso", 1))},
		"Shared.toml":     {Data: []byte(triangleGuide)},
		"R6/readme.txt":   {Data: []byte("ignored")},
		"R15/Broken.toml": {Data: []byte("[[face]]\nvertices = []\n")},
	}
	lib, err := NewLibrary(fsys)
	require.NoError(t, err)
	assert.Equal(t, 4, lib.Len())

	r6, err := lib.Guide("torso", R6)
	require.NoError(t, err)
	assert.Equal(t, "Corner", r6.Name)

	r15, err := lib.Guide("Torso", R15)
	require.NoError(t, err)
	assert.Equal(t, "R15Torso", r15.Name)

	shared, err := lib.Guide("shared", R15)
	require.NoError(t, err)
	assert.Equal(t, R15, shared.Topology)

	again, err := lib.Guide("TORSO", R6)
	require.NoError(t, err)
	assert.Same(t, r6, again, "templates are cached")

	_, err = lib.Guide("LeftLeg", R6)
	assert.ErrorIs(t, err, ErrGuideNotFound)

	_, err = lib.Guide("Broken", R15)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrGuideNotFound)

	assert.ElementsMatch(t, []string{"torso", "shared"}, lib.Names(R6))
	assert.ElementsMatch(t, []string{"torso", "broken", "shared"}, lib.Names(R15))
}

func TestBuiltin(t *testing.T) {
	lib := Builtin()

	quad, err := lib.Guide("Quad", R15)
	require.NoError(t, err)
	assert.Equal(t, 2, quad.FaceCount())

	for _, name := range []string{"Torso", "LeftArm", "RightArm"} {
		g, err := lib.Guide(name, R6)
		require.NoError(t, err, name)
		assert.Equal(t, 2, g.FaceCount(), name)
	}

	_, err = lib.Guide("UpperTorso", R6)
	assert.ErrorIs(t, err, ErrGuideNotFound)
	_, err = lib.Guide("UpperTorso", R15)
	assert.NoError(t, err)
}

func TestParseTopology(t *testing.T) {
	topo, err := ParseTopology("r15")
	require.NoError(t, err)
	assert.Equal(t, R15, topo)
	assert.Equal(t, "R6", R6.String())

	_, err = ParseTopology("rthro")
	assert.Error(t, err)
}
