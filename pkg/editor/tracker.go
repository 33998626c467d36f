package editor

import (
	"fmt"

	"github.com/matt-steen/term-tracker/pkg/collection"
	"github.com/rs/zerolog/log"
)

// Tracker keeps track of the current record of one collection. The current index is either -1
// or a valid index into the collection.
type Tracker[T any] struct {
	name    string
	seq     collection.Sequence[T]
	current int
	leave   []func(T)
	changed []func(int)
	moved   []func(int)
}

// NewTracker returns a Tracker over seq with nothing selected.
func NewTracker[T any](name string, seq collection.Sequence[T]) *Tracker[T] {
	return &Tracker[T]{
		name:    name,
		seq:     seq,
		current: -1,
	}
}

// OnLeave registers fn to be called with the current record before the current record changes.
func (t *Tracker[T]) OnLeave(fn func(T)) {
	t.leave = append(t.leave, fn)
}

// OnChange registers fn to be called with the new index whenever the current record changes.
func (t *Tracker[T]) OnChange(fn func(int)) {
	t.changed = append(t.changed, fn)
}

// OnMove registers fn to be called with the new index when the current record changes position.
func (t *Tracker[T]) OnMove(fn func(int)) {
	t.moved = append(t.moved, fn)
}

// Name returns the name the tracker logs under.
func (t *Tracker[T]) Name() string {
	return t.name
}

// Index returns the current index, or -1.
func (t *Tracker[T]) Index() int {
	return t.current
}

// Len returns the size of the tracked collection.
func (t *Tracker[T]) Len() int {
	return t.seq.Len()
}

// Sequence returns the tracked collection.
func (t *Tracker[T]) Sequence() collection.Sequence[T] {
	return t.seq
}

// Current returns the current record.
func (t *Tracker[T]) Current() (T, bool) {
	if t.current < 0 || t.current >= t.seq.Len() {
		var zero T

		return zero, false
	}

	return t.seq.At(t.current), true
}

// Select makes the record at index current; -1 selects nothing. Edits to the previous record are
// reconciled first. Selecting the current index again does nothing.
func (t *Tracker[T]) Select(index int) error {
	if index < -1 || index >= t.seq.Len() {
		return fmt.Errorf("error selecting %s %d (len %d): %w", t.name, index, t.seq.Len(), collection.ErrIndexOutOfRange)
	}

	if index == t.current {
		return nil
	}

	t.flush()

	t.current = index
	t.notify()

	return nil
}

// SelectLast selects the final record, typically right after one was appended.
func (t *Tracker[T]) SelectLast() error {
	return t.Select(t.seq.Len() - 1)
}

// MoveUp swaps the current record with the one before it and follows it. It reports whether
// anything moved; at the top, with nothing selected or with a single record it does nothing.
func (t *Tracker[T]) MoveUp() (bool, error) {
	return t.move(-1)
}

// MoveDown swaps the current record with the one after it and follows it.
func (t *Tracker[T]) MoveDown() (bool, error) {
	return t.move(1)
}

func (t *Tracker[T]) move(delta int) (bool, error) {
	target := t.current + delta

	if t.current < 0 || target < 0 || target >= t.seq.Len() {
		return false, nil
	}

	if err := t.seq.Swap(t.current, target); err != nil {
		return false, err
	}

	log.Debug().Str("tracker", t.name).Int("from", t.current).Int("to", target).Msg("moved record")

	t.current = target

	for _, fn := range t.moved {
		fn(t.current)
	}

	return true, nil
}

// RemoveCurrent removes the current record. The index then stays put, is clamped to the new last
// record, or becomes -1 for an empty collection, and the selection is reissued.
func (t *Tracker[T]) RemoveCurrent() (T, bool, error) {
	var zero T

	if t.current < 0 || t.current >= t.seq.Len() {
		return zero, false, nil
	}

	rec, err := t.seq.RemoveAt(t.current)
	if err != nil {
		return zero, false, err
	}

	log.Debug().Str("tracker", t.name).Int("index", t.current).Int("len", t.seq.Len()).Msg("removed record")

	t.Reset(t.current)

	return rec, true, nil
}

// Reset sets the current index without reconciling the previous record, which may no longer
// exist, and reissues the selection. The index is clamped into range.
func (t *Tracker[T]) Reset(index int) {
	n := t.seq.Len()

	switch {
	case n == 0 || index < -1:
		index = -1
	case index >= n:
		index = n - 1
	}

	t.current = index
	t.notify()
}

// Refresh clamps the current index after the collection changed shape and reissues the selection.
func (t *Tracker[T]) Refresh() {
	t.Reset(t.current)
}

// Rebind scopes the tracker to another collection. Edits to the current record are reconciled
// first; the first record of the new collection becomes current.
func (t *Tracker[T]) Rebind(seq collection.Sequence[T]) {
	t.flush()

	t.seq = seq
	t.current = -1

	t.Reset(0)
}

func (t *Tracker[T]) flush() {
	rec, ok := t.Current()
	if !ok {
		return
	}

	for _, fn := range t.leave {
		fn(rec)
	}
}

func (t *Tracker[T]) notify() {
	log.Debug().Str("tracker", t.name).Int("index", t.current).Msg("selection changed")

	for _, fn := range t.changed {
		fn(t.current)
	}
}
