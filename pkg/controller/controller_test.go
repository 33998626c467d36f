package controller

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/term-tracker/pkg/db"
	"github.com/matt-steen/term-tracker/pkg/dialog"
	"github.com/matt-steen/term-tracker/pkg/model"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, database *db.Database) (*Controller, *model.Document) {
	t.Helper()

	doc := model.NewDocument()

	c, err := NewController(context.Background(), database, doc)
	require.NoError(t, err)

	return c, doc
}

func press(c *Controller, r rune) {
	c.handleKeys(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

// send delivers a key to whatever has focus, the way the event loop would.
func send(c *Controller, key tcell.Key) {
	if handler := c.app.GetFocus().InputHandler(); handler != nil {
		handler(tcell.NewEventKey(key, 0, tcell.ModNone), func(tview.Primitive) {})
	}
}

func selectedRow(c *Controller, tab dialog.Tab) int {
	row, _ := c.tabs[tab].table.GetSelection()

	return row
}

func TestNewControllerNilDocument(t *testing.T) {
	t.Parallel()

	c, err := NewController(context.Background(), nil, nil)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, errNilDocument)
}

func TestListShortcuts(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	c, doc := newTestController(t, nil)
	c.showTab(dialog.TabTerms)

	press(c, 'a')
	press(c, 'a')
	assert.Equal(2, doc.Terms.Len())
	assert.Equal(2, selectedRow(c, dialog.TabTerms))

	second := doc.Terms.At(1)

	press(c, 'k')
	assert.Equal(second, doc.Terms.At(0))
	assert.Equal(1, selectedRow(c, dialog.TabTerms))

	c.showTab(dialog.TabCourses)
	assert.Equal(dialog.TabCourses, c.dlg.Tab())

	press(c, 'a')
	require.Len(t, doc.Courses(), 1)
	assert.Equal(second.ID, doc.Courses()[0].TermID)
	assert.Equal(1, selectedRow(c, dialog.TabCourses))
	assert.True(doc.NeedsSave())
}

func TestAddCourseWithoutTermWarns(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	c, doc := newTestController(t, nil)
	c.showTab(dialog.TabCourses)

	press(c, 'a')
	assert.Len(doc.Courses(), 0)
	assert.True(c.pages.HasPage(modalPage))

	// shortcuts are ignored while the modal is up
	press(c, 'a')
	assert.Len(doc.Courses(), 0)

	send(c, tcell.KeyEnter)
	assert.False(c.pages.HasPage(modalPage))
}

func TestRemoveConfirmed(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	c, doc := newTestController(t, nil)
	c.showTab(dialog.TabTerms)
	press(c, 'a')
	press(c, 'a')

	press(c, 'x')
	assert.True(c.pages.HasPage(modalPage))
	assert.Equal(2, doc.Terms.Len())

	send(c, tcell.KeyEnter)
	assert.False(c.pages.HasPage(modalPage))
	assert.Equal(1, doc.Terms.Len())
	assert.Equal(c.tabs[dialog.TabTerms].table, c.app.GetFocus())
	assert.Equal(1, selectedRow(c, dialog.TabTerms))
}

func TestFormCommitAndRevert(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	c, doc := newTestController(t, nil)
	c.showTab(dialog.TabTerms)
	press(c, 'a')
	doc.MarkSaved()

	input, ok := c.tabs[dialog.TabTerms].form.GetFormItemByLabel("Name").(*tview.InputField)
	require.True(t, ok)

	c.app.SetFocus(input)

	input.SetText("Fall 2025")
	send(c, tcell.KeyEnter)
	assert.Equal("Fall 2025", doc.Terms.At(0).Name)
	assert.True(doc.NeedsSave())

	input.SetText("oops")
	send(c, tcell.KeyEscape)
	assert.Equal("Fall 2025", input.GetText())
	assert.Equal("Fall 2025", doc.Terms.At(0).Name)

	starts, ok := c.tabs[dialog.TabTerms].form.GetFormItemByLabel("Starts").(*tview.InputField)
	require.True(t, ok)

	stored := starts.GetText()

	c.app.SetFocus(starts)
	starts.SetText("not a date")
	send(c, tcell.KeyEnter)
	assert.Equal(stored, starts.GetText())
	assert.Contains(c.status.GetText(true), "start_date")
}

func TestShortcutsIgnoredWhileEditing(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	c, doc := newTestController(t, nil)
	c.showTab(dialog.TabTerms)
	press(c, 'a')

	c.handleKeys(tcell.NewEventKey(tcell.KeyCtrlE, 0, tcell.ModNone))
	_, onList := c.app.GetFocus().(*tview.Table)
	assert.False(onList)

	press(c, 'a')
	assert.Equal(1, doc.Terms.Len())

	c.handleKeys(tcell.NewEventKey(tcell.KeyCtrlE, 0, tcell.ModNone))
	assert.Equal(c.tabs[dialog.TabTerms].table, c.app.GetFocus())
}

func TestSaveShortcut(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, err := db.NewDatabase(context.Background(), filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)

	t.Cleanup(func() { database.Close() })

	c, doc := newTestController(t, database)
	c.showTab(dialog.TabTerms)
	press(c, 'a')
	c.showTab(dialog.TabCourses)
	press(c, 'a')

	c.handleKeys(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModNone))
	assert.False(doc.NeedsSave())

	loaded, err := database.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(1, loaded.Terms.Len())
	assert.Len(loaded.Courses(), 1)
}

func TestChildTitlesFollowCourse(t *testing.T) {
	t.Parallel()

	c, _ := newTestController(t, nil)
	assert.Equal(t, "Textbooks: no course selected", c.childTitle(dialog.TabTextbooks))

	c.showTab(dialog.TabTerms)
	press(c, 'a')
	c.showTab(dialog.TabCourses)
	press(c, 'a')

	assert.Equal(t, "Textbooks: "+model.NewCourseName, c.childTitle(dialog.TabTextbooks))
}

func TestLabFieldsFollowHasLab(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	c, doc := newTestController(t, nil)
	c.showTab(dialog.TabTerms)
	press(c, 'a')
	c.showTab(dialog.TabCourses)
	press(c, 'a')

	form := c.tabs[dialog.TabCourses].form
	for _, id := range dialog.LabFields() {
		assert.False(form.Enabled(id), id)
	}

	assert.True(form.Enabled(dialog.FieldRoom))

	hasLab, ok := form.GetFormItemByLabel("Has lab").(*tview.Checkbox)
	require.True(t, ok)

	c.app.SetFocus(hasLab)
	c.app.GetFocus().InputHandler()(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), func(tview.Primitive) {})

	course := doc.Courses()[0]
	assert.True(course.HasLab)

	for _, id := range dialog.LabFields() {
		assert.True(form.Enabled(id), id)
	}

	press(c, 'a')
	assert.Len(doc.Courses(), 1)

	c.showTab(dialog.TabCourses)
	press(c, 'a')
	require.Len(t, doc.Courses(), 2)
	assert.False(form.Enabled(dialog.FieldLabRoom))

	assert.Nil(c.dlg.Courses.Tracker.Select(0))
	assert.True(form.Enabled(dialog.FieldLabRoom))
}
