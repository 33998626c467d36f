package collection_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/matt-steen/term-tracker/pkg/collection"
	"github.com/stretchr/testify/assert"
)

type item struct {
	id   uuid.UUID
	name string
}

func (i *item) Key() uuid.UUID { return i.id }

func newItem(name string) *item {
	return &item{id: uuid.New(), name: name}
}

func names(o *collection.Ordered[*item]) []string {
	out := []string{}
	for _, i := range o.Items() {
		out = append(out, i.name)
	}

	return out
}

func TestAddPreservesOrder(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	o, err := collection.New(newItem("a"), newItem("b"))
	assert.Nil(err)

	c := newItem("c")
	key, err := o.Add(c)
	assert.Nil(err)
	assert.Equal(c.id, key)

	assert.Equal([]string{"a", "b", "c"}, names(o))
	assert.Equal(2, o.IndexOf(c.id))
	assert.Equal(3, o.Len())
}

func TestAddRejectsDuplicateAndNilKeys(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	a := newItem("a")
	o, err := collection.New(a)
	assert.Nil(err)

	_, err = o.Add(a)
	assert.True(errors.Is(err, collection.ErrDuplicateKey))

	_, err = o.Add(&item{name: "no id"})
	assert.True(errors.Is(err, collection.ErrNilKey))

	assert.Equal(1, o.Len())
}

func TestRemoveAt(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	o, _ := collection.New(newItem("a"), newItem("b"), newItem("c"))

	removed, err := o.RemoveAt(1)
	assert.Nil(err)
	assert.Equal("b", removed.name)
	assert.Equal([]string{"a", "c"}, names(o))
	assert.Equal(-1, o.IndexOf(removed.id))

	_, err = o.RemoveAt(2)
	assert.True(errors.Is(err, collection.ErrIndexOutOfRange))
}

func TestRemoveByKey(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	b := newItem("b")
	o, _ := collection.New(newItem("a"), b)

	removed, ok := o.Remove(b.id)
	assert.True(ok)
	assert.Same(b, removed)

	_, ok = o.Remove(b.id)
	assert.False(ok)
}

func TestSwap(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	o, _ := collection.New(newItem("a"), newItem("b"), newItem("c"))

	assert.Nil(o.Swap(1, 2))
	assert.Equal([]string{"a", "c", "b"}, names(o))

	err := o.Swap(2, 3)
	assert.True(errors.Is(err, collection.ErrIndexOutOfRange))
	assert.Equal([]string{"a", "c", "b"}, names(o))
}

func TestGetAndItemsCopy(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	a := newItem("a")
	o, _ := collection.New(a)

	got, ok := o.Get(a.id)
	assert.True(ok)
	assert.Same(a, got)

	items := o.Items()
	items[0] = newItem("z")
	assert.Equal("a", o.At(0).name)

	var nilOrdered *collection.Ordered[*item]
	assert.Equal(0, nilOrdered.Len())
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	e := collection.Empty[*item]()
	assert.Equal(0, e.Len())

	_, err := e.RemoveAt(0)
	assert.True(errors.Is(err, collection.ErrIndexOutOfRange))
	assert.True(errors.Is(e.Swap(0, 1), collection.ErrIndexOutOfRange))
}
