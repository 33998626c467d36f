package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/term-tracker/pkg/db"
	"github.com/matt-steen/term-tracker/pkg/dialog"
	"github.com/matt-steen/term-tracker/pkg/editor"
	"github.com/matt-steen/term-tracker/pkg/model"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

var (
	errNoDatabase  = errors.New("no database to save to")
	errNilDocument = errors.New("nil document")
)

// Controller mediates between the editor and the terminal.
type Controller struct {
	ctx    context.Context
	db     *db.Database
	dlg    *dialog.Dialog
	app    *tview.Application
	pages  *tview.Pages
	status *tview.TextView
	tabs   map[dialog.Tab]*tabView
	events map[tcell.Key]KeyEvent
}

// KeyEvent defines an event associated with a keypress.
type KeyEvent struct {
	Description string
	Action      func(*tcell.EventKey) *tcell.EventKey
}

// tabView is the list and form shown for one tab, plus what the list shortcuts do there.
type tabView struct {
	title  string
	table  *tview.Table
	form   *FormView
	add    func()
	remove func()
	up     func()
	down   func()
	toTerm func()
}

// NewController creates a new Controller to edit doc. Saving writes to database.
func NewController(ctx context.Context, database *db.Database, doc *model.Document) (*Controller, error) {
	if doc == nil {
		return nil, fmt.Errorf("error creating controller: %w", errNilDocument)
	}

	c := Controller{
		ctx:    ctx,
		db:     database,
		app:    tview.NewApplication(),
		pages:  tview.NewPages(),
		status: tview.NewTextView().SetDynamicColors(true),
		tabs: map[dialog.Tab]*tabView{
			dialog.TabTerms:       {title: "Terms", form: NewFormView("Term", termFields()...)},
			dialog.TabCourses:     {title: "Courses", form: NewFormView("Course", courseFields()...)},
			dialog.TabTypes:       {title: "Assignment types", form: NewFormView("Assignment type", typeFields()...)},
			dialog.TabInstructors: {title: "Instructors", form: NewFormView("Instructor", instructorFields()...)},
			dialog.TabTextbooks:   {title: "Textbooks", form: NewFormView("Textbook", textbookFields()...)},
		},
	}

	c.dlg = dialog.New(doc, dialog.Views{
		Terms:       c.tabs[dialog.TabTerms].form,
		Courses:     c.tabs[dialog.TabCourses].form,
		Types:       c.tabs[dialog.TabTypes].form,
		Instructors: c.tabs[dialog.TabInstructors].form,
		Textbooks:   c.tabs[dialog.TabTextbooks].form,
	}, &c)

	c.initTabs()
	c.initEvents()
	c.initPages()

	c.dlg.OnCoursesChanged(c.refreshChildTitles)
	c.dlg.Courses.Tracker.OnChange(func(int) {
		c.refreshChildTitles()
		c.refreshLabFields()
	})
	c.tabs[dialog.TabCourses].form.OnCommit(func(id string) {
		if id == dialog.FieldHasLab {
			c.refreshLabFields()
		}
	})
	c.refreshChildTitles()
	c.refreshLabFields()

	return &c, nil
}

// Go starts the app and blocks until it quits.
func (c *Controller) Go() error {
	c.showTab(dialog.TabTerms)

	c.app.SetInputCapture(c.handleKeys)

	log.Info().Msg("starting ui")

	if err := c.app.SetRoot(c.pages, true).Run(); err != nil {
		return fmt.Errorf("error running ui: %w", err)
	}

	return nil
}

func (c *Controller) initTabs() {
	doc := c.dlg.Document()

	terms := c.tabs[dialog.TabTerms]
	terms.table = bindPane(c, terms.form, c.dlg.Terms, termColumns()...)
	terms.add = func() {
		_, err := c.dlg.AddTerm()
		c.report(err)
	}
	terms.remove = c.dlg.RemoveTerm
	terms.up = func() { c.dlg.MoveTermUp() }
	terms.down = func() { c.dlg.MoveTermDown() }

	courses := c.tabs[dialog.TabCourses]
	courses.table = bindPane(c, courses.form, c.dlg.Courses, courseColumns(doc)...)
	courses.add = func() {
		_, err := c.dlg.AddCourse()
		c.report(err)
	}
	courses.remove = c.dlg.RemoveCourse
	courses.up = func() { c.dlg.MoveCourseUp() }
	courses.down = func() { c.dlg.MoveCourseDown() }
	courses.toTerm = c.moveCourseToSelectedTerm

	types := c.tabs[dialog.TabTypes]
	types.table = bindPane(c, types.form, c.dlg.Types, typeColumns()...)
	types.add = func() { c.dlg.AddType() }
	types.remove = c.dlg.RemoveType
	types.up = func() { c.dlg.MoveTypeUp() }
	types.down = func() { c.dlg.MoveTypeDown() }

	instructors := c.tabs[dialog.TabInstructors]
	instructors.table = bindPane(c, instructors.form, c.dlg.Instructors, instructorColumns()...)
	instructors.add = func() { c.dlg.AddInstructor() }
	instructors.remove = c.dlg.RemoveInstructor
	instructors.up = func() { c.dlg.MoveInstructorUp() }
	instructors.down = func() { c.dlg.MoveInstructorDown() }

	textbooks := c.tabs[dialog.TabTextbooks]
	textbooks.table = bindPane(c, textbooks.form, c.dlg.Textbooks, textbookColumns()...)
	textbooks.add = func() { c.dlg.AddTextbook() }
	textbooks.remove = c.dlg.RemoveTextbook
	textbooks.up = func() { c.dlg.MoveTextbookUp() }
	textbooks.down = func() { c.dlg.MoveTextbookDown() }
}

// bindPane builds the list for a pane and keeps the list selection, the tracker and the form
// in step.
func bindPane[T any](c *Controller, form *FormView, pane *editor.Pane[T], columns ...Column[T]) *tview.Table {
	table := tview.NewTable().SetBorders(false).SetSelectable(true, false).SetFixed(1, 0)
	table.SetContent(NewCollectionContent(pane.Tracker.Sequence, columns...))

	table.SetSelectionChangedFunc(func(row, _ int) {
		if row < 1 || row-1 == pane.Tracker.Index() {
			return
		}

		if err := pane.Tracker.Select(row - 1); err != nil {
			log.Warn().Err(err).Str("pane", pane.Tracker.Name()).Int("row", row).Msg("error selecting row")
		}
	})

	table.SetSelectedFunc(func(int, int) { c.app.SetFocus(form) })

	follow := func(index int) {
		if index >= 0 {
			table.Select(index+1, 0)
		}
	}

	pane.Tracker.OnChange(follow)
	pane.Tracker.OnMove(follow)
	follow(pane.Tracker.Index())

	form.OnCommit(func(id string) {
		if err := pane.Commit(id); err != nil {
			c.setStatus(fmt.Sprintf("[red]%s", err))

			return
		}

		c.setStatus("")
	})
	form.OnRevert(pane.Revert)

	return table
}

func (c *Controller) report(err error) {
	if err == nil {
		return
	}

	log.Warn().Err(err).Msg("action failed")

	c.Warn(err.Error())
}

func (c *Controller) moveCourseToSelectedTerm() {
	term, ok := c.dlg.Terms.Current()
	if !ok {
		c.Warn("Select a term on the terms tab first.")

		return
	}

	c.report(c.dlg.ChangeCourseTerm(term.ID))
}

// refreshChildTitles names the current course on the child tabs.
func (c *Controller) refreshChildTitles() {
	for _, tab := range []dialog.Tab{dialog.TabTypes, dialog.TabInstructors, dialog.TabTextbooks} {
		c.tabs[tab].table.SetTitle(c.childTitle(tab))
	}
}

func (c *Controller) childTitle(tab dialog.Tab) string {
	course := "no course selected"
	if current, ok := c.dlg.Courses.Current(); ok {
		course = current.Name
	}

	return fmt.Sprintf("%s: %s", c.tabs[tab].title, course)
}

// refreshLabFields greys out the lab inputs unless the current course has a lab.
func (c *Controller) refreshLabFields() {
	form := c.tabs[dialog.TabCourses].form
	enabled := c.dlg.LabEnabled()

	for _, id := range dialog.LabFields() {
		form.SetEnabled(id, enabled)
	}
}

func (c *Controller) setStatus(msg string) {
	c.status.SetText(msg)
}

func (c *Controller) save() error {
	c.dlg.FlushAll()

	if c.db == nil {
		return errNoDatabase
	}

	if err := c.db.Save(c.ctx, c.dlg.Document()); err != nil {
		return fmt.Errorf("error saving: %w", err)
	}

	log.Info().Msg("saved document")

	c.setStatus("[green]saved")

	return nil
}

func (c *Controller) quit() {
	if !c.dlg.Close() {
		c.stop()

		return
	}

	c.Confirm("Save changes before quitting?", func(yes bool) {
		if yes {
			if err := c.save(); err != nil {
				c.report(err)

				return
			}
		}

		c.stop()
	})
}

func (c *Controller) stop() {
	log.Info().Msg("terminating application")

	c.app.Stop()
}
