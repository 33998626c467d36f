package collection

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// These errors are returned by Ordered when a request would break its invariants.
var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrNilKey          = errors.New("nil key")
)

// Keyed is implemented by records that carry a stable identifier independent of their position.
type Keyed interface {
	Key() uuid.UUID
}

// Sequence is the view of a list that a selection tracker needs. Ordered implements it, as do
// derived lists that are backed by several Ordered collections.
type Sequence[T any] interface {
	Len() int
	At(index int) T
	Swap(i, j int) error
	RemoveAt(index int) (T, error)
}

// Ordered is a mutable, order-preserving list of records with unique keys.
// The position of a record is its manual sort order.
type Ordered[T Keyed] struct {
	items []T
}

// New returns an Ordered collection holding the given records in order.
func New[T Keyed](records ...T) (*Ordered[T], error) {
	o := &Ordered[T]{items: make([]T, 0, len(records))}

	for _, r := range records {
		if _, err := o.Add(r); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// Add appends the record and returns its key.
func (o *Ordered[T]) Add(record T) (uuid.UUID, error) {
	key := record.Key()
	if key == uuid.Nil {
		return uuid.Nil, ErrNilKey
	}

	if o.IndexOf(key) >= 0 {
		return uuid.Nil, fmt.Errorf("error adding %s: %w", key, ErrDuplicateKey)
	}

	o.items = append(o.items, record)

	return key, nil
}

// RemoveAt removes and returns the record at index. The order of the remaining records is preserved.
func (o *Ordered[T]) RemoveAt(index int) (T, error) {
	var zero T

	if !o.valid(index) {
		return zero, fmt.Errorf("error removing index %d (len %d): %w", index, len(o.items), ErrIndexOutOfRange)
	}

	record := o.items[index]

	copy(o.items[index:], o.items[index+1:])
	o.items[len(o.items)-1] = zero
	o.items = o.items[:len(o.items)-1]

	return record, nil
}

// Remove removes the record with the given key, if present.
func (o *Ordered[T]) Remove(key uuid.UUID) (T, bool) {
	idx := o.IndexOf(key)
	if idx < 0 {
		var zero T

		return zero, false
	}

	record, _ := o.RemoveAt(idx)

	return record, true
}

// Swap exchanges the records at i and j.
func (o *Ordered[T]) Swap(i, j int) error {
	if !o.valid(i) || !o.valid(j) {
		return fmt.Errorf("error swapping %d and %d (len %d): %w", i, j, len(o.items), ErrIndexOutOfRange)
	}

	o.items[i], o.items[j] = o.items[j], o.items[i]

	return nil
}

// IndexOf returns the position of the record with the given key or -1.
func (o *Ordered[T]) IndexOf(key uuid.UUID) int {
	for i, r := range o.items {
		if r.Key() == key {
			return i
		}
	}

	return -1
}

// At returns the record at index. It panics if index is out of range, like a slice.
func (o *Ordered[T]) At(index int) T {
	return o.items[index]
}

// Get returns the record with the given key.
func (o *Ordered[T]) Get(key uuid.UUID) (T, bool) {
	if idx := o.IndexOf(key); idx >= 0 {
		return o.items[idx], true
	}

	var zero T

	return zero, false
}

// Len returns the number of records.
func (o *Ordered[T]) Len() int {
	if o == nil {
		return 0
	}

	return len(o.items)
}

// Items returns a copy of the records in display order.
func (o *Ordered[T]) Items() []T {
	if o == nil {
		return nil
	}

	out := make([]T, len(o.items))
	copy(out, o.items)

	return out
}

func (o *Ordered[T]) valid(index int) bool {
	return index >= 0 && index < len(o.items)
}

type empty[T any] struct{}

// Empty returns a Sequence with no records, used when a tracker has nothing to scope to.
func Empty[T any]() Sequence[T] {
	return empty[T]{}
}

func (empty[T]) Len() int { return 0 }

func (empty[T]) At(index int) T {
	panic(fmt.Sprintf("collection: index %d out of range for empty sequence", index))
}

func (empty[T]) Swap(i, j int) error {
	return fmt.Errorf("error swapping %d and %d in empty sequence: %w", i, j, ErrIndexOutOfRange)
}

func (empty[T]) RemoveAt(index int) (T, error) {
	var zero T

	return zero, fmt.Errorf("error removing index %d from empty sequence: %w", index, ErrIndexOutOfRange)
}
