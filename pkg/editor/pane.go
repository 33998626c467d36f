package editor

import "github.com/matt-steen/term-tracker/pkg/collection"

// Pane ties a Tracker to a Flusher: leaving a record flushes it, and a new current record is
// loaded into the view (or the view is cleared when nothing is selected).
type Pane[T any] struct {
	Tracker *Tracker[T]
	Flusher *Flusher[T]
}

// NewPane wires a tracker over seq and a flusher over view.
func NewPane[T any](
	name string,
	seq collection.Sequence[T],
	bindings Bindings[T],
	view View,
	dirty Dirtier,
	guard *LoadingGuard,
) *Pane[T] {
	p := &Pane[T]{
		Tracker: NewTracker(name, seq),
		Flusher: NewFlusher(name, bindings, view, dirty, guard),
	}

	p.Tracker.OnLeave(func(rec T) { p.Flusher.Flush(rec) })
	p.Tracker.OnChange(func(int) { p.Load() })

	return p
}

// Current returns the current record.
func (p *Pane[T]) Current() (T, bool) {
	return p.Tracker.Current()
}

// Load fills the view from the current record.
func (p *Pane[T]) Load() {
	if rec, ok := p.Tracker.Current(); ok {
		p.Flusher.Populate(rec)

		return
	}

	p.Flusher.Clear()
}

// Flush reconciles the view into the current record.
func (p *Pane[T]) Flush() int {
	if rec, ok := p.Tracker.Current(); ok {
		return p.Flusher.Flush(rec)
	}

	return 0
}

// Commit commits a single field of the current record.
func (p *Pane[T]) Commit(id string) error {
	if rec, ok := p.Tracker.Current(); ok {
		return p.Flusher.Commit(rec, id)
	}

	return nil
}

// Revert restores a single field of the current record on screen.
func (p *Pane[T]) Revert(id string) {
	if rec, ok := p.Tracker.Current(); ok {
		p.Flusher.Revert(rec, id)
	}
}
