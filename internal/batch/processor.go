package batch

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"avatar-texture-baker/internal/composite"
	"avatar-texture-baker/internal/config"
	"avatar-texture-baker/internal/postprocess"
	"avatar-texture-baker/internal/recipe"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Format      string // config.FormatWebP or config.FormatPNG
	PreviewSize int    // used for recipes that set no preview
	Workers     int

	// Options are passed to every compositor. The collaborators behind them
	// (texture cache, palette, guide library) are shared by all workers.
	Options []composite.Option

	// Observer, when set, returns the observer for one recipe's bake.
	Observer func(name string) composite.Observer

	// Quiet disables the periodic progress line.
	Quiet bool
}

// Result holds the outcome of baking one recipe.
type Result struct {
	Name     string
	Recipe   string
	Topology string
	Width    int
	Height   int
	Layers   int
	Output   string // relative to the output dir
	Preview  string // relative to the output dir, empty = none
	Success  bool
	Error    string
}

// FindRecipes returns the sorted paths of all .toml files under dir.
func FindRecipes(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".toml") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: scan %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// ErrBadOutput is reported for recipes whose output path escapes the output
// directory or collides with another recipe's output.
var ErrBadOutput = errors.New("bad output path")

type job struct {
	rec  *recipe.Recipe
	base string // output path without extension, relative to the output dir
}

// Run bakes all recipe files using a worker pool. Results keep the order of
// paths. Recipes are loaded up front so that output collisions are detected
// before any file is written: the first recipe in paths keeps the output.
func Run(cfg Config, paths []string) []Result {
	total := len(paths)
	results := make([]Result, total)
	jobs := make([]job, total)
	claimed := make(map[string]string)

	for i, path := range paths {
		results[i] = Result{
			Name:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			Recipe: path,
		}
		rec, err := recipe.Load(path)
		if err != nil {
			results[i].Error = err.Error()
			continue
		}
		results[i].Name = rec.Name
		results[i].Topology = rec.Topology
		results[i].Layers = len(rec.Layers)

		base, err := outputBase(rec)
		if err != nil {
			results[i].Error = err.Error()
			continue
		}
		key := strings.ToLower(base)
		if other, dup := claimed[key]; dup {
			results[i].Error = fmt.Errorf("batch: %s: output %s already used by %s: %w", rec.Name, base, other, ErrBadOutput).Error()
			continue
		}
		claimed[key] = path
		jobs[i] = job{rec: rec, base: base}
	}

	var processed atomic.Int64

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if !cfg.Quiet {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Printf("  [%d/%d] %.1f recipes/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	work := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				processRecipe(cfg, jobs[idx], &results[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		if jobs[i].rec == nil {
			processed.Add(1)
			continue
		}
		work <- i
	}
	close(work)

	wg.Wait()
	close(done)

	return results
}

// outputBase returns the recipe's output path without extension. It must
// stay inside the output directory.
func outputBase(rec *recipe.Recipe) (string, error) {
	base := rec.Output
	if base == "" {
		base = rec.Name
	}
	base = filepath.FromSlash(strings.TrimSuffix(base, filepath.Ext(base)))
	if !filepath.IsLocal(base) {
		return "", fmt.Errorf("batch: %s: output %q: %w", rec.Name, base, ErrBadOutput)
	}
	return filepath.Clean(base), nil
}

func processRecipe(cfg Config, j job, res *Result) {
	rec := j.rec

	opts := cfg.Options
	if cfg.Observer != nil {
		opts = append(opts[:len(opts):len(opts)], composite.WithObserver(cfg.Observer(rec.Name)))
	}

	img, err := rec.Bake(opts...)
	if err != nil {
		res.Error = err.Error()
		return
	}
	res.Width, res.Height = img.Rect.Dx(), img.Rect.Dy()

	ext := Ext(cfg.Format)
	res.Output = j.base + ext
	if err := WriteImage(filepath.Join(cfg.OutputDir, res.Output), img, cfg.Format); err != nil {
		res.Error = err.Error()
		return
	}

	size := rec.Preview
	if size == 0 {
		size = cfg.PreviewSize
	}
	if size > 0 {
		res.Preview = j.base + ".preview" + ext
		thumb := postprocess.Preview(img, size)
		if err := WriteImage(filepath.Join(cfg.OutputDir, res.Preview), thumb, cfg.Format); err != nil {
			res.Error = err.Error()
			return
		}
	}

	res.Success = true
}

// Ext returns the file extension for an output format.
func Ext(format string) string {
	if format == config.FormatPNG {
		return ".png"
	}
	return ".webp"
}

// Encode writes img to w in the given output format.
func Encode(w io.Writer, img image.Image, format string) error {
	if format == config.FormatPNG {
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("PNG encode: %w", err)
		}
		return nil
	}
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("WebP encode: %w", err)
	}
	return nil
}

// WriteImage creates path (and its directory) and encodes img into it.
func WriteImage(path string, img image.Image, format string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
