package composite

import (
	"image"
	"log/slog"
)

// Progress describes the state of a bake after one more layer was painted.
type Progress struct {
	Label   string
	Painted int
	Total   int

	snapshot func() *image.NRGBA
}

// Snapshot returns a copy of the canvas as painted so far, or nil when the
// bake does not offer snapshots (stacks of two layers or fewer).
func (p Progress) Snapshot() *image.NRGBA {
	if p.snapshot == nil {
		return nil
	}
	return p.snapshot()
}

// Observer is notified while a bake runs. Observers only watch; they cannot
// change the outcome of the bake.
type Observer interface {
	Begin(label string, total int)
	LayerDone(p Progress)
	End(label string)
}

type nopObserver struct{}

func (nopObserver) Begin(string, int)  {}
func (nopObserver) LayerDone(Progress) {}
func (nopObserver) End(string)         {}

// LogObserver reports progress through a slog.Logger.
type LogObserver struct {
	Logger *slog.Logger
}

func (o LogObserver) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o LogObserver) Begin(label string, total int) {
	o.logger().Info("composing "+label, "layers", total)
}

func (o LogObserver) LayerDone(p Progress) {
	o.logger().Info("layers composed", "label", p.Label, "painted", p.Painted, "total", p.Total)
}

func (o LogObserver) End(label string) {
	o.logger().Info("done", "label", label)
}
