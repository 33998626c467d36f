package editor

// Dirtier receives the needs-save signal when a flush writes into a record.
type Dirtier interface {
	MarkDirty()
}

// Field binds one editable attribute of a record type to a displayed text value.
type Field[T any] struct {
	ID string
	// Get renders the stored value.
	Get func(T) string
	// Set parses text and stores it. A returned error leaves the record untouched.
	Set func(T, string) error
	// Enabled reports whether the field is live for the record. Nil means always.
	Enabled func(T) bool
}

func (f Field[T]) enabled(rec T) bool {
	return f.Enabled == nil || f.Enabled(rec)
}

// Bindings is the ordered table of fields for a record type.
type Bindings[T any] []Field[T]

// Field returns the binding with the given id.
func (b Bindings[T]) Field(id string) (Field[T], bool) {
	for _, f := range b {
		if f.ID == id {
			return f, true
		}
	}

	return Field[T]{}, false
}

// IDs lists the field ids in order.
func (b Bindings[T]) IDs() []string {
	ids := make([]string, 0, len(b))
	for _, f := range b {
		ids = append(ids, f.ID)
	}

	return ids
}

// View is the presentation side of a set of bound fields.
type View interface {
	// Text returns the displayed value, and false if the view has no such field.
	Text(id string) (string, bool)
	SetText(id, value string)
	// Clear blanks every field, used when nothing is selected.
	Clear()
}

// MapView is a View without any toolkit behind it.
type MapView struct {
	values map[string]string
}

// NewMapView returns a MapView with the given fields, all blank.
func NewMapView(ids ...string) *MapView {
	v := &MapView{values: make(map[string]string, len(ids))}
	for _, id := range ids {
		v.values[id] = ""
	}

	return v
}

// Text implements View.
func (v *MapView) Text(id string) (string, bool) {
	s, ok := v.values[id]

	return s, ok
}

// SetText implements View. Unknown ids are ignored.
func (v *MapView) SetText(id, value string) {
	if _, ok := v.values[id]; ok {
		v.values[id] = value
	}
}

// Clear implements View.
func (v *MapView) Clear() {
	for id := range v.values {
		v.values[id] = ""
	}
}
