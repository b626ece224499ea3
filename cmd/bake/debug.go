package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"avatar-texture-baker/internal/batch"
	"avatar-texture-baker/internal/composite"
	"avatar-texture-baker/internal/config"
)

// debugObserver logs bake progress and, when dir is set, writes every
// snapshot the compositor offers as <dir>/<recipe>/<NN>.png.
type debugObserver struct {
	name string
	dir  string
	log  composite.Observer
}

func newDebugObserver(name, dir string, logger *slog.Logger) *debugObserver {
	o := &debugObserver{name: name}
	if dir != "" {
		o.dir = filepath.Join(dir, name)
	}
	if logger != nil {
		o.log = composite.LogObserver{Logger: logger.With("recipe", name)}
	}
	return o
}

func (o *debugObserver) Begin(label string, total int) {
	if o.log != nil {
		o.log.Begin(label, total)
	}
}

func (o *debugObserver) LayerDone(p composite.Progress) {
	if o.log != nil {
		o.log.LayerDone(p)
	}
	if o.dir == "" {
		return
	}
	snap := p.Snapshot()
	if snap == nil {
		return
	}
	path := filepath.Join(o.dir, fmt.Sprintf("%02d.png", p.Painted))
	if err := batch.WriteImage(path, snap, config.FormatPNG); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: snapshot %s: %v\n", path, err)
	}
}

func (o *debugObserver) End(label string) {
	if o.log != nil {
		o.log.End(label)
	}
}
