package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/matt-steen/term-tracker/pkg/collection"
)

var (
	// ErrTermMismatch is returned when two courses of different terms would be reordered
	// against each other.
	ErrTermMismatch = errors.New("courses belong to different terms")
	ErrUnknownTerm  = errors.New("unknown term")
)

// Document is the in-memory session that the editor works on. It owns every record; the
// flat course list is derived from the terms' course lists.
type Document struct {
	Terms     *collection.Ordered[*Term]
	needsSave bool
}

// NewDocument returns an empty document that does not need saving.
func NewDocument() *Document {
	return &Document{Terms: &collection.Ordered[*Term]{}}
}

// MarkDirty records that the document has unsaved changes.
func (d *Document) MarkDirty() {
	d.needsSave = true
}

// NeedsSave reports whether there are unsaved changes.
func (d *Document) NeedsSave() bool {
	return d.needsSave
}

// MarkSaved clears the needs-save flag. Only the persistence layer calls it, after a successful save.
func (d *Document) MarkSaved() {
	d.needsSave = false
}

// Term returns the term with the given id.
func (d *Document) Term(id uuid.UUID) (*Term, bool) {
	return d.Terms.Get(id)
}

// AddCourse appends the course to the term's course list and points the course at the term.
func (d *Document) AddCourse(term *Term, course *Course) error {
	if d.Terms.IndexOf(term.ID) < 0 {
		return fmt.Errorf("error adding course %q: %w", course.Name, ErrUnknownTerm)
	}

	course.TermID = term.ID

	if _, err := term.Courses.Add(course); err != nil {
		return fmt.Errorf("error adding course %q to term %q: %w", course.Name, term.Name, err)
	}

	return nil
}

// DetachCourse removes the course from its term's list.
func (d *Document) DetachCourse(course *Course) bool {
	term, ok := d.Term(course.TermID)
	if !ok {
		return false
	}

	_, ok = term.Courses.Remove(course.ID)

	return ok
}

// ChangeTerm moves the course to the end of another term's course list.
func (d *Document) ChangeTerm(course *Course, to *Term) error {
	if course.TermID == to.ID {
		return nil
	}

	if d.Terms.IndexOf(to.ID) < 0 {
		return fmt.Errorf("error moving course %q: %w", course.Name, ErrUnknownTerm)
	}

	d.DetachCourse(course)

	return d.AddCourse(to, course)
}

// Courses returns every course, ordered by term and then by position within the term.
func (d *Document) Courses() []*Course {
	out := []*Course{}

	for _, t := range d.Terms.Items() {
		out = append(out, t.Courses.Items()...)
	}

	return out
}

// Course finds a course by id in any term.
func (d *Document) Course(id uuid.UUID) (*Course, bool) {
	for _, t := range d.Terms.Items() {
		if c, ok := t.Courses.Get(id); ok {
			return c, true
		}
	}

	return nil, false
}

// CourseIndex returns the position of the course in the flat course list, or -1.
func (d *Document) CourseIndex(id uuid.UUID) int {
	offset := 0

	for _, t := range d.Terms.Items() {
		if idx := t.Courses.IndexOf(id); idx >= 0 {
			return offset + idx
		}

		offset += t.Courses.Len()
	}

	return -1
}

// CourseList exposes the flat course list as a sequence that a selection tracker can drive.
// Swapping is only allowed between courses of the same term.
func (d *Document) CourseList() collection.Sequence[*Course] {
	return courseList{doc: d}
}

type courseList struct {
	doc *Document
}

func (l courseList) locate(index int) (*Term, int, bool) {
	if index < 0 {
		return nil, 0, false
	}

	for _, t := range l.doc.Terms.Items() {
		if index < t.Courses.Len() {
			return t, index, true
		}

		index -= t.Courses.Len()
	}

	return nil, 0, false
}

func (l courseList) Len() int {
	n := 0
	for _, t := range l.doc.Terms.Items() {
		n += t.Courses.Len()
	}

	return n
}

func (l courseList) At(index int) *Course {
	term, local, ok := l.locate(index)
	if !ok {
		panic(fmt.Sprintf("model: course index %d out of range", index))
	}

	return term.Courses.At(local)
}

func (l courseList) Swap(i, j int) error {
	ti, li, okI := l.locate(i)
	tj, lj, okJ := l.locate(j)

	if !okI || !okJ {
		return fmt.Errorf("error swapping courses %d and %d: %w", i, j, collection.ErrIndexOutOfRange)
	}

	if ti.ID != tj.ID {
		return fmt.Errorf(
			"error swapping %q (%s) and %q (%s): %w",
			ti.Courses.At(li).Name, ti.Name, tj.Courses.At(lj).Name, tj.Name, ErrTermMismatch,
		)
	}

	return ti.Courses.Swap(li, lj)
}

func (l courseList) RemoveAt(index int) (*Course, error) {
	term, local, ok := l.locate(index)
	if !ok {
		return nil, fmt.Errorf("error removing course %d: %w", index, collection.ErrIndexOutOfRange)
	}

	return term.Courses.RemoveAt(local)
}

// RemoveType removes the type from the course and clears every assignment's reference to it.
func (c *Course) RemoveType(id uuid.UUID) (*AssignmentType, bool) {
	t, ok := c.Types.Remove(id)
	if ok {
		c.DetachType(id)
	}

	return t, ok
}

// DetachType clears every assignment's reference to the type.
func (c *Course) DetachType(id uuid.UUID) {
	for _, a := range c.Assignments.Items() {
		if a.TypeID == id {
			a.TypeID = uuid.Nil
		}
	}
}

// RemoveTextbook removes the textbook from the course and clears every assignment's reference to it.
func (c *Course) RemoveTextbook(id uuid.UUID) (*Textbook, bool) {
	b, ok := c.Textbooks.Remove(id)
	if ok {
		c.DetachTextbook(id)
	}

	return b, ok
}

// DetachTextbook clears every assignment's reference to the textbook.
func (c *Course) DetachTextbook(id uuid.UUID) {
	for _, a := range c.Assignments.Items() {
		if a.TextbookID == id {
			a.TextbookID = uuid.Nil
		}
	}
}

// Clear removes every owned record of the course: assignments first, then types,
// instructors and textbooks.
func (c *Course) Clear() {
	for c.Assignments.Len() > 0 {
		_, _ = c.Assignments.RemoveAt(c.Assignments.Len() - 1)
	}

	for c.Types.Len() > 0 {
		c.RemoveType(c.Types.At(c.Types.Len() - 1).ID)
	}

	for c.Instructors.Len() > 0 {
		_, _ = c.Instructors.RemoveAt(c.Instructors.Len() - 1)
	}

	for c.Textbooks.Len() > 0 {
		c.RemoveTextbook(c.Textbooks.At(c.Textbooks.Len() - 1).ID)
	}
}
