package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"slices"

	"avatar-texture-baker/internal/batch"
	"avatar-texture-baker/internal/composite"
	"avatar-texture-baker/internal/config"
	"avatar-texture-baker/internal/mesh"
	"avatar-texture-baker/internal/palette"
)

// Colors cycled through when rendering faces.
var faceColors = []int{21, 23, 28, 24, 106, 37}

func main() {
	guideDir := flag.String("guides", "", "Guide directory (default: built-in guides)")
	topoName := flag.String("topology", "R15", "Character topology: R6 or R15")
	render := flag.String("render", "", "Render the named guides into this PNG file")
	size := flag.Int("size", 256, "Edge length of each rendered guide")
	flag.Parse()

	topo, err := mesh.ParseTopology(*topoName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	lib := mesh.Builtin()
	if *guideDir != "" {
		lib, err = mesh.NewLibrary(os.DirFS(*guideDir))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading guides: %v\n", err)
			os.Exit(1)
		}
	}

	names := flag.Args()
	if len(names) == 0 {
		names = lib.Names(topo)
		slices.Sort(names)
		fmt.Printf("%s guides (%d):\n", topo, len(names))
		for _, n := range names {
			fmt.Printf("  %s\n", n)
		}
		return
	}

	var guides []*mesh.Template
	for _, n := range names {
		g, err := lib.Guide(n, topo)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		guides = append(guides, g)
		printGuide(g)
	}

	if *render != "" {
		if err := renderGuides(*render, topo, guides, *size); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Rendered: %s\n", *render)
	}
}

func printGuide(g *mesh.Template) {
	fmt.Printf("\n=== %s (%s, faces=%d) ===\n", g.Name, g.Topology, g.FaceCount())
	for i, f := range g.Faces {
		fmt.Printf("  Face[%d]", i)
		for _, v := range f {
			fmt.Printf("  pos=(%.3f,%.3f) uv=(%.3f,%.3f)", v.Pos[0], v.Pos[1], v.UV[0], v.UV[1])
		}
		fmt.Println()
	}
}

// renderGuides paints each guide side by side, one palette color per face,
// so gaps and overlaps between faces are visible.
func renderGuides(path string, topo mesh.Topology, guides []*mesh.Template, size int) error {
	pal := palette.Default()
	c := composite.New(topo, size*len(guides), size)
	c.SetContext("Guide Preview")

	n := 0
	for gi, g := range guides {
		for fi, f := range g.Faces {
			col := pal.ColorOrDefault(faceColors[n%len(faceColors)])
			n++
			face := &mesh.Template{Name: fmt.Sprintf("%s[%d]", g.Name, fi), Topology: topo, Faces: []mesh.Face{f}}
			r := image.Rect(gi*size, 0, (gi+1)*size, size)
			l, err := composite.NewGuideColor(face, r, col, 0)
			if err != nil {
				return err
			}
			if err := c.Append(l); err != nil {
				return err
			}
		}
	}

	img, err := c.Bake()
	if err != nil {
		return err
	}
	return batch.WriteImage(path, img, config.FormatPNG)
}
