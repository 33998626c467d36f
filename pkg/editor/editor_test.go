package editor_test

import (
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/matt-steen/term-tracker/pkg/collection"
	"github.com/matt-steen/term-tracker/pkg/editor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	id      uuid.UUID
	name    string
	credits int
	lab     bool
	room    string
}

func (r *record) Key() uuid.UUID { return r.id }

type dirtyFlag struct {
	raised int
}

func (d *dirtyFlag) MarkDirty() { d.raised++ }

var bindings = editor.Bindings[*record]{
	{
		ID:  "name",
		Get: func(r *record) string { return r.name },
		Set: func(r *record, s string) error { r.name = s; return nil },
	},
	{
		ID:  "credits",
		Get: func(r *record) string { return strconv.Itoa(r.credits) },
		Set: func(r *record, s string) error {
			n, err := strconv.Atoi(s)
			if err != nil {
				return err
			}
			r.credits = n

			return nil
		},
	},
	{
		ID:      "room",
		Get:     func(r *record) string { return r.room },
		Set:     func(r *record, s string) error { r.room = s; return nil },
		Enabled: func(r *record) bool { return r.lab },
	},
}

type fixture struct {
	list  *collection.Ordered[*record]
	view  *editor.MapView
	dirty *dirtyFlag
	guard *editor.LoadingGuard
	pane  *editor.Pane[*record]
}

func newFixture(t *testing.T, names ...string) *fixture {
	t.Helper()

	f := &fixture{
		list:  &collection.Ordered[*record]{},
		view:  editor.NewMapView(bindings.IDs()...),
		dirty: &dirtyFlag{},
		guard: &editor.LoadingGuard{},
	}

	for _, n := range names {
		_, err := f.list.Add(&record{id: uuid.New(), name: n})
		require.NoError(t, err)
	}

	f.pane = editor.NewPane[*record]("records", f.list, bindings, f.view, f.dirty, f.guard)

	return f
}

func (f *fixture) names() []string {
	out := []string{}
	for _, r := range f.list.Items() {
		out = append(out, r.name)
	}

	return out
}

func (f *fixture) text(id string) string {
	s, _ := f.view.Text(id)

	return s
}

func TestSelectPopulatesView(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	f := newFixture(t, "T1", "T2")

	assert.Equal(-1, f.pane.Tracker.Index())
	assert.Nil(f.pane.Tracker.Select(1))
	assert.Equal("T2", f.text("name"))
	assert.Equal(0, f.dirty.raised)
	assert.False(f.guard.Loading())

	assert.NotNil(f.pane.Tracker.Select(2))
	assert.Equal(1, f.pane.Tracker.Index())

	assert.Nil(f.pane.Tracker.Select(-1))
	assert.Equal("", f.text("name"))
}

func TestMoveDownScenario(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	f := newFixture(t, "T1", "T2", "T3")
	assert.Nil(f.pane.Tracker.Select(1))

	moved, err := f.pane.Tracker.MoveDown()
	assert.Nil(err)
	assert.True(moved)
	assert.Equal([]string{"T1", "T3", "T2"}, f.names())
	assert.Equal(2, f.pane.Tracker.Index())

	current, _ := f.pane.Current()
	assert.Equal("T2", current.name)
}

func TestMoveRoundTrip(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	for start := 1; start < 3; start++ {
		f := newFixture(t, "T1", "T2", "T3")
		assert.Nil(f.pane.Tracker.Select(start))

		moved, err := f.pane.Tracker.MoveUp()
		assert.Nil(err)
		assert.True(moved)

		moved, err = f.pane.Tracker.MoveDown()
		assert.Nil(err)
		assert.True(moved)

		assert.Equal([]string{"T1", "T2", "T3"}, f.names())
		assert.Equal(start, f.pane.Tracker.Index())
	}
}

func TestMoveKeepsUnflushedEdits(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	f := newFixture(t, "T1", "T2")
	assert.Nil(f.pane.Tracker.Select(1))

	f.view.SetText("name", "edited")

	moved, _ := f.pane.Tracker.MoveUp()
	assert.True(moved)
	assert.Equal("edited", f.text("name"))
}

func TestMoveNoOps(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	f := newFixture(t, "T1")

	moved, err := f.pane.Tracker.MoveUp()
	assert.Nil(err)
	assert.False(moved)

	assert.Nil(f.pane.Tracker.Select(0))

	moved, _ = f.pane.Tracker.MoveUp()
	assert.False(moved)

	moved, _ = f.pane.Tracker.MoveDown()
	assert.False(moved)
	assert.Equal(0, f.pane.Tracker.Index())
}

func TestRemoveCurrentLastElement(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	f := newFixture(t, "C1")
	assert.Nil(f.pane.Tracker.Select(0))

	removed, ok, err := f.pane.Tracker.RemoveCurrent()
	assert.Nil(err)
	assert.True(ok)
	assert.Equal("C1", removed.name)
	assert.Equal(0, f.list.Len())
	assert.Equal(-1, f.pane.Tracker.Index())
	assert.Equal("", f.text("name"))

	_, ok, err = f.pane.Tracker.RemoveCurrent()
	assert.Nil(err)
	assert.False(ok)
}

func TestRemoveCurrentClamps(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	f := newFixture(t, "T1", "T2", "T3")

	assert.Nil(f.pane.Tracker.Select(2))
	_, _, _ = f.pane.Tracker.RemoveCurrent()
	assert.Equal(1, f.pane.Tracker.Index())
	assert.Equal("T2", f.text("name"))

	assert.Nil(f.pane.Tracker.Select(0))
	_, _, _ = f.pane.Tracker.RemoveCurrent()
	assert.Equal(0, f.pane.Tracker.Index())
	assert.Equal("T2", f.text("name"))

	for f.list.Len() > 0 {
		_, _, _ = f.pane.Tracker.RemoveCurrent()
		if f.list.Len() > 0 {
			assert.Less(f.pane.Tracker.Index(), f.list.Len())
		}
	}

	assert.Equal(-1, f.pane.Tracker.Index())
}

func TestSelectionChangeFlushesEdits(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	f := newFixture(t, "Algebra", "Biology")
	assert.Nil(f.pane.Tracker.Select(0))

	f.view.SetText("name", "Algebra II")
	assert.Nil(f.pane.Tracker.Select(1))

	assert.Equal("Algebra II", f.list.At(0).name)
	assert.Equal(1, f.dirty.raised)
	assert.Equal("Biology", f.text("name"))
}

func TestFlushIdempotent(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	f := newFixture(t, "Algebra")
	assert.Nil(f.pane.Tracker.Select(0))

	f.view.SetText("name", "Algebra II")
	f.view.SetText("credits", "04")

	assert.Equal(2, f.pane.Flush())
	assert.Equal(4, f.list.At(0).credits)
	assert.Equal("4", f.text("credits"))

	assert.Equal(0, f.pane.Flush())
	assert.Equal(1, f.dirty.raised)
}

func TestFlushRevertsUnparseableValue(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	f := newFixture(t, "Algebra")
	assert.Nil(f.pane.Tracker.Select(0))

	f.view.SetText("credits", "three")

	assert.Equal(0, f.pane.Flush())
	assert.Equal("0", f.text("credits"))
	assert.Equal(0, f.dirty.raised)
}

func TestFlushSkipsDisabledFields(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	f := newFixture(t, "Chemistry")
	assert.Nil(f.pane.Tracker.Select(0))

	f.view.SetText("room", "Lab 3")
	assert.Equal(0, f.pane.Flush())
	assert.Equal("", f.list.At(0).room)

	f.list.At(0).lab = true
	assert.Equal(1, f.pane.Flush())
	assert.Equal("Lab 3", f.list.At(0).room)
}

func TestFlushSuppressedWhileLoading(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	f := newFixture(t, "Algebra")
	assert.Nil(f.pane.Tracker.Select(0))

	f.view.SetText("name", "typed")

	f.guard.Push()
	f.guard.Push()
	f.guard.Pop()
	assert.True(f.guard.Loading())
	assert.Equal(0, f.pane.Flush())

	f.guard.Pop()
	f.guard.Pop()
	assert.Equal(0, f.guard.Depth())
	assert.Equal(1, f.pane.Flush())
}

func TestRevert(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	f := newFixture(t, "Algebra")
	assert.Nil(f.pane.Tracker.Select(0))

	f.view.SetText("name", "typo")
	f.pane.Revert("name")

	assert.Equal("Algebra", f.text("name"))
	assert.Equal("Algebra", f.list.At(0).name)
	assert.Equal(0, f.dirty.raised)
}

func TestCommit(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	f := newFixture(t, "Algebra")
	assert.Nil(f.pane.Tracker.Select(0))

	f.view.SetText("credits", "3")
	assert.Nil(f.pane.Commit("credits"))
	assert.Equal(3, f.list.At(0).credits)
	assert.Equal(1, f.dirty.raised)

	f.view.SetText("credits", "x")
	assert.NotNil(f.pane.Commit("credits"))
	assert.Equal("3", f.text("credits"))

	assert.ErrorIs(f.pane.Commit("nope"), editor.ErrUnknownField)
}

func TestRebind(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	f := newFixture(t, "Algebra")
	assert.Nil(f.pane.Tracker.Select(0))
	f.view.SetText("name", "Algebra II")

	other := &collection.Ordered[*record]{}
	f.pane.Tracker.Rebind(other)

	assert.Equal("Algebra II", f.list.At(0).name)
	assert.Equal(-1, f.pane.Tracker.Index())
	assert.Equal("", f.text("name"))

	_, _ = other.Add(&record{id: uuid.New(), name: "Physics"})
	f.pane.Tracker.Rebind(other)
	assert.Equal(0, f.pane.Tracker.Index())
	assert.Equal("Physics", f.text("name"))
}

func TestCommitDisabledFieldReverts(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	f := newFixture(t, "Chemistry")
	assert.Nil(f.pane.Tracker.Select(0))

	f.view.SetText("room", "Lab 3")
	assert.Nil(f.pane.Commit("room"))
	assert.Equal("", f.text("room"))
	assert.Equal(0, f.dirty.raised)
}
