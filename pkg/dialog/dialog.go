// Package dialog implements the terms and courses editor: one selection-bound pane per
// collection, the dirty-flush triggers and the confirm-then-cascade deletes.
package dialog

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/matt-steen/term-tracker/pkg/collection"
	"github.com/matt-steen/term-tracker/pkg/editor"
	"github.com/matt-steen/term-tracker/pkg/model"
	"github.com/rs/zerolog/log"
)

// ErrNoTerm is returned when a course is added before any term exists.
var ErrNoTerm = errors.New("add a term before adding courses")

// Tab identifies the part of the editor that has focus. Leaving a tab flushes its pane.
type Tab int

// These constants are the editor's tabs.
const (
	TabTerms Tab = iota
	TabCourses
	TabTypes
	TabInstructors
	TabTextbooks
)

func (t Tab) String() string {
	switch t {
	case TabTerms:
		return "terms"
	case TabCourses:
		return "courses"
	case TabTypes:
		return "types"
	case TabInstructors:
		return "instructors"
	case TabTextbooks:
		return "textbooks"
	}

	return fmt.Sprintf("tab(%d)", int(t))
}

// Prompter asks the user questions. Confirm may answer later, e.g. from a modal dialog, but
// must call answer exactly once.
type Prompter interface {
	Confirm(message string, answer func(bool))
	Warn(message string)
}

// Views holds one view per pane.
type Views struct {
	Terms       editor.View
	Courses     editor.View
	Types       editor.View
	Instructors editor.View
	Textbooks   editor.View
}

// NewMapViews returns headless views for every pane.
func NewMapViews() Views {
	return Views{
		Terms:       editor.NewMapView(TermFields().IDs()...),
		Courses:     editor.NewMapView(CourseFields().IDs()...),
		Types:       editor.NewMapView(TypeFields().IDs()...),
		Instructors: editor.NewMapView(InstructorFields().IDs()...),
		Textbooks:   editor.NewMapView(TextbookFields().IDs()...),
	}
}

// Option configures a Dialog.
type Option func(*Dialog)

// WithClock sets the source of "today" used for placeholder dates.
func WithClock(now func() time.Time) Option {
	return func(d *Dialog) {
		d.now = now
	}
}

// Dialog is the terms and courses editor session.
type Dialog struct {
	doc    *model.Document
	prompt Prompter
	guard  *editor.LoadingGuard
	now    func() time.Time
	tab    Tab
	// boundCourse is the course whose lists the child panes are scoped to.
	boundCourse uuid.UUID

	Terms       *editor.Pane[*model.Term]
	Courses     *editor.Pane[*model.Course]
	Types       *editor.Pane[*model.AssignmentType]
	Instructors *editor.Pane[*model.Instructor]
	Textbooks   *editor.Pane[*model.Textbook]

	coursesChanged []func()
}

// New opens an editor over doc and selects the first term and course, if any.
func New(doc *model.Document, views Views, prompt Prompter, opts ...Option) *Dialog {
	d := &Dialog{
		doc:    doc,
		prompt: prompt,
		guard:  &editor.LoadingGuard{},
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(d)
	}

	d.Terms = editor.NewPane[*model.Term]("terms", doc.Terms, TermFields(), views.Terms, doc, d.guard)
	d.Courses = editor.NewPane("courses", doc.CourseList(), CourseFields(), views.Courses, doc, d.guard)
	d.Types = editor.NewPane(
		"types", collection.Empty[*model.AssignmentType](), TypeFields(), views.Types, doc, d.guard,
	)
	d.Instructors = editor.NewPane(
		"instructors", collection.Empty[*model.Instructor](), InstructorFields(), views.Instructors, doc, d.guard,
	)
	d.Textbooks = editor.NewPane(
		"textbooks", collection.Empty[*model.Textbook](), TextbookFields(), views.Textbooks, doc, d.guard,
	)

	d.Courses.Tracker.OnChange(func(int) { d.bindChildren() })

	d.Terms.Tracker.Reset(0)
	d.Courses.Tracker.Reset(0)

	return d
}

// Document returns the document being edited.
func (d *Dialog) Document() *model.Document {
	return d.doc
}

// Tab returns the active tab.
func (d *Dialog) Tab() Tab {
	return d.tab
}

// OnCoursesChanged registers fn to be called whenever the flat course list changes shape or order.
func (d *Dialog) OnCoursesChanged(fn func()) {
	d.coursesChanged = append(d.coursesChanged, fn)
}

// LabEnabled reports whether the current course's lab fields are live.
func (d *Dialog) LabEnabled() bool {
	c, ok := d.Courses.Current()

	return ok && c.HasLab
}

// SwitchTab flushes the pane being left and activates another tab.
func (d *Dialog) SwitchTab(tab Tab) {
	if tab == d.tab {
		return
	}

	d.flushTab(d.tab)

	log.Debug().Stringer("from", d.tab).Stringer("to", tab).Msg("switching tab")

	d.tab = tab
}

// FlushAll flushes every pane, e.g. before saving.
func (d *Dialog) FlushAll() {
	for _, tab := range []Tab{TabTerms, TabCourses, TabTypes, TabInstructors, TabTextbooks} {
		d.flushTab(tab)
	}
}

// Close flushes every pane. It reports whether the document has unsaved changes.
func (d *Dialog) Close() bool {
	d.FlushAll()

	log.Debug().Bool("needsSave", d.doc.NeedsSave()).Msg("closing editor")

	return d.doc.NeedsSave()
}

func (d *Dialog) flushTab(tab Tab) {
	switch tab {
	case TabTerms:
		d.Terms.Flush()
	case TabCourses:
		d.Courses.Flush()
	case TabTypes:
		d.Types.Flush()
	case TabInstructors:
		d.Instructors.Flush()
	case TabTextbooks:
		d.Textbooks.Flush()
	}
}

// bindChildren scopes the child panes to the current course's lists.
func (d *Dialog) bindChildren() {
	course, ok := d.Courses.Current()

	id := uuid.Nil
	if ok {
		id = course.ID
	}

	if id == d.boundCourse && id != uuid.Nil {
		return
	}

	d.boundCourse = id

	if !ok {
		d.Types.Tracker.Rebind(collection.Empty[*model.AssignmentType]())
		d.Instructors.Tracker.Rebind(collection.Empty[*model.Instructor]())
		d.Textbooks.Tracker.Rebind(collection.Empty[*model.Textbook]())

		return
	}

	d.Types.Tracker.Rebind(course.Types)
	d.Instructors.Tracker.Rebind(course.Instructors)
	d.Textbooks.Tracker.Rebind(course.Textbooks)
}

// refreshChildren clamps the child panes after the current course's lists were emptied in place.
func (d *Dialog) refreshChildren() {
	d.Types.Tracker.Refresh()
	d.Instructors.Tracker.Refresh()
	d.Textbooks.Tracker.Refresh()
}

func (d *Dialog) notifyCourses() {
	for _, fn := range d.coursesChanged {
		fn()
	}
}

// reshapeCourses runs fn, which may reorder or resize the flat course list, and keeps the same
// course current if it survives. Otherwise the old index is clamped.
func (d *Dialog) reshapeCourses(fn func() error) error {
	d.Courses.Flush()

	prev, had := d.Courses.Current()
	index := d.Courses.Tracker.Index()

	if err := fn(); err != nil {
		return err
	}

	if had {
		if idx := d.doc.CourseIndex(prev.ID); idx >= 0 {
			index = idx
		}
	}

	d.Courses.Tracker.Reset(index)
	d.notifyCourses()

	return nil
}

func (d *Dialog) warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	log.Warn().Msg(msg)

	if d.prompt != nil {
		d.prompt.Warn(msg)
	}
}

func (d *Dialog) confirm(message string, answer func(bool)) {
	if d.prompt == nil {
		answer(true)

		return
	}

	d.prompt.Confirm(message, answer)
}
