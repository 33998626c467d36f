package editor

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// ErrUnknownField is returned when a commit names a field that is not bound.
var ErrUnknownField = errors.New("unknown field")

// Flusher reconciles the displayed values of a set of bound fields with a record.
type Flusher[T any] struct {
	name     string
	bindings Bindings[T]
	view     View
	dirty    Dirtier
	guard    *LoadingGuard
}

// NewFlusher returns a Flusher for the given bindings and view. The guard is shared by every
// flusher that writes into the same view tree.
func NewFlusher[T any](name string, bindings Bindings[T], view View, dirty Dirtier, guard *LoadingGuard) *Flusher[T] {
	return &Flusher[T]{
		name:     name,
		bindings: bindings,
		view:     view,
		dirty:    dirty,
		guard:    guard,
	}
}

// Flush writes every displayed value that differs from the record into the record and raises
// the needs-save flag if anything changed. It returns the number of fields written. Values
// that fail to parse are reverted on screen. Nothing happens while the view is loading.
func (f *Flusher[T]) Flush(rec T) int {
	if f.guard.Loading() {
		return 0
	}

	changed := 0

	for _, field := range f.bindings {
		ok, err := f.commit(rec, field)
		if err != nil {
			log.Debug().Err(err).Str("pane", f.name).Str("field", field.ID).Msg("reverted unparseable value")

			continue
		}

		if ok {
			changed++
		}
	}

	if changed > 0 {
		f.dirty.MarkDirty()

		log.Debug().Str("pane", f.name).Int("fields", changed).Msg("flushed edits")
	}

	return changed
}

// Commit handles a single field being committed (enter or blur). An unparseable value is
// reverted on screen and its error returned.
func (f *Flusher[T]) Commit(rec T, id string) error {
	if f.guard.Loading() {
		return nil
	}

	field, ok := f.bindings.Field(id)
	if !ok {
		return fmt.Errorf("error committing %s.%s: %w", f.name, id, ErrUnknownField)
	}

	if !field.enabled(rec) {
		// inert fields keep their stored value
		f.show(field.ID, field.Get(rec))

		return nil
	}

	changed, err := f.commit(rec, field)
	if err != nil {
		return err
	}

	if changed {
		f.dirty.MarkDirty()
	}

	return nil
}

// Revert puts the stored value back on screen without touching the record.
func (f *Flusher[T]) Revert(rec T, id string) {
	if field, ok := f.bindings.Field(id); ok {
		f.show(field.ID, field.Get(rec))
	}
}

// Populate loads every bound field from the record.
func (f *Flusher[T]) Populate(rec T) {
	f.guard.Push()
	defer f.guard.Pop()

	for _, field := range f.bindings {
		f.view.SetText(field.ID, field.Get(rec))
	}
}

// Clear blanks the view.
func (f *Flusher[T]) Clear() {
	f.guard.Push()
	defer f.guard.Pop()

	f.view.Clear()
}

// commit reconciles one field and reports whether the record changed.
func (f *Flusher[T]) commit(rec T, field Field[T]) (bool, error) {
	if !field.enabled(rec) {
		return false, nil
	}

	shown, ok := f.view.Text(field.ID)
	if !ok {
		return false, nil
	}

	stored := field.Get(rec)
	if shown == stored {
		return false, nil
	}

	if err := field.Set(rec, shown); err != nil {
		f.show(field.ID, stored)

		return false, fmt.Errorf("error setting %s.%s to %q: %w", f.name, field.ID, shown, err)
	}

	// show the canonical form so a second pass sees no difference
	normalized := field.Get(rec)
	if normalized != shown {
		f.show(field.ID, normalized)
	}

	return normalized != stored, nil
}

func (f *Flusher[T]) show(id, value string) {
	f.guard.Push()
	defer f.guard.Pop()

	f.view.SetText(id, value)
}
