package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"avatar-texture-baker/internal/batch"
	"avatar-texture-baker/internal/composite"
	"avatar-texture-baker/internal/config"
	"avatar-texture-baker/internal/mesh"
	"avatar-texture-baker/internal/palette"
	"avatar-texture-baker/internal/raster"
	"avatar-texture-baker/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	recipeFile := flag.String("recipe", "", "Bake only this recipe file")
	testN := flag.Int("test", 0, "Bake only first N recipes for testing")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	dataDir := flag.String("data", "", "Path to base directory (default: current directory)")
	outputDir := flag.String("output", "", "Output directory (default: baked)")
	format := flag.String("format", "", "Output format: webp or png (default: webp)")
	preview := flag.Int("preview", 0, "Preview edge length for recipes without one (0 = none)")
	debugDir := flag.String("debug-dir", "", "Write per-layer snapshots into this directory")
	verbose := flag.Bool("v", false, "Log compositor progress to stderr")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		BaseDir:   *dataDir,
		OutputDir: *outputDir,
		Format:    *format,
		Workers:   *workers,
	})
	if *preview > 0 {
		cfg.PreviewSize = *preview
	}

	var logger *slog.Logger
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		composite.SetLogger(logger)
	}

	interp, err := raster.ParseInterpolator(cfg.Interpolator)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Collect recipes
	var recipes []string
	if *recipeFile != "" {
		recipes = []string{*recipeFile}
	} else {
		recipes, err = batch.FindRecipes(cfg.RecipeDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading recipes: %v\n", err)
			os.Exit(1)
		}
	}

	// Limit for testing
	if *testN > 0 && *testN < len(recipes) {
		recipes = recipes[:*testN]
	}

	if len(recipes) == 0 {
		fmt.Println("No recipes to bake.")
		os.Exit(0)
	}

	// Palette
	pal := palette.Default()
	if cfg.PaletteFile != "" {
		if err := pal.LoadOverrides(cfg.PaletteFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: palette overrides: %v\n", err)
		}
	}
	fmt.Printf("Palette: %d colors\n", pal.Len())

	// Guides
	guides := mesh.Builtin()
	if cfg.GuideDir != "" {
		guides, err = mesh.NewLibrary(os.DirFS(cfg.GuideDir))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading guides: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("Guides: %d templates\n", guides.Len())

	// Build texture index
	texIndex := texture.BuildIndex(cfg.TextureDir)
	texCache := texture.NewCache(texIndex)
	fmt.Printf("Textures: %d indexed\n", texIndex.Len())

	// Print summary
	mode := ""
	if *recipeFile != "" {
		mode = fmt.Sprintf(" (%s)", filepath.Base(*recipeFile))
	} else if *testN > 0 {
		mode = fmt.Sprintf(" (TEST: first %d)", *testN)
	}

	fmt.Printf("Avatar Texture Baker → %s%s\n", cfg.Format, mode)
	fmt.Printf("Recipes: %d, Workers: %d\n", len(recipes), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		Format:      cfg.Format,
		PreviewSize: cfg.PreviewSize,
		Workers:     cfg.Workers,
		Options: []composite.Option{
			composite.WithImages(texCache),
			composite.WithPalette(pal),
			composite.WithGuides(guides),
			composite.WithInterpolator(interp),
		},
	}
	if *debugDir != "" || logger != nil {
		batchCfg.Observer = func(name string) composite.Observer {
			return newDebugObserver(name, *debugDir, logger)
		}
	}

	results := batch.Run(batchCfg, recipes)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Baked: %d/%d\n", success, len(recipes))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(20, len(errors))
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
