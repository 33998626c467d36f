package dialog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/matt-steen/term-tracker/pkg/collection"
	"github.com/matt-steen/term-tracker/pkg/editor"
	"github.com/matt-steen/term-tracker/pkg/model"
	"github.com/rs/zerolog/log"
)

// AddTerm appends a placeholder term and selects it.
func (d *Dialog) AddTerm() (*model.Term, error) {
	term := model.NewTerm(d.now())

	err := d.reshapeCourses(func() error {
		_, err := d.doc.Terms.Add(term)

		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error adding term: %w", err)
	}

	d.doc.MarkDirty()

	if err := d.Terms.Tracker.SelectLast(); err != nil {
		return nil, err
	}

	return term, nil
}

// AddCourse appends a placeholder course to the current term, or to the last term when none is
// selected, and selects it.
func (d *Dialog) AddCourse() (*model.Course, error) {
	term, ok := d.Terms.Current()
	if !ok {
		if d.doc.Terms.Len() == 0 {
			return nil, ErrNoTerm
		}

		term = d.doc.Terms.At(d.doc.Terms.Len() - 1)
	}

	course := model.NewCourse(term)

	err := d.reshapeCourses(func() error {
		return d.doc.AddCourse(term, course)
	})
	if err != nil {
		return nil, err
	}

	d.doc.MarkDirty()
	d.Courses.Tracker.Reset(d.doc.CourseIndex(course.ID))

	return course, nil
}

// AddType appends a placeholder assignment type to the current course.
func (d *Dialog) AddType() (*model.AssignmentType, bool) {
	course, ok := d.Courses.Current()
	if !ok {
		return nil, false
	}

	return addChild(d, d.Types, course.Types.Add, model.NewAssignmentType())
}

// AddInstructor appends a placeholder instructor to the current course.
func (d *Dialog) AddInstructor() (*model.Instructor, bool) {
	course, ok := d.Courses.Current()
	if !ok {
		return nil, false
	}

	return addChild(d, d.Instructors, course.Instructors.Add, model.NewInstructor())
}

// AddTextbook appends a placeholder textbook to the current course.
func (d *Dialog) AddTextbook() (*model.Textbook, bool) {
	course, ok := d.Courses.Current()
	if !ok {
		return nil, false
	}

	return addChild(d, d.Textbooks, course.Textbooks.Add, model.NewTextbook())
}

// AddAssignment appends a placeholder assignment due today to the current course.
func (d *Dialog) AddAssignment() (*model.Assignment, bool) {
	course, ok := d.Courses.Current()
	if !ok {
		return nil, false
	}

	a := model.NewAssignment(d.now())
	if _, err := course.Assignments.Add(a); err != nil {
		log.Error().Err(err).Msg("error adding assignment")

		return nil, false
	}

	d.doc.MarkDirty()

	return a, true
}

func addChild[T any](d *Dialog, pane *editor.Pane[T], add func(T) (uuid.UUID, error), rec T) (T, bool) {
	var zero T

	if _, err := add(rec); err != nil {
		log.Error().Err(err).Str("pane", pane.Tracker.Name()).Msg("error adding record")

		return zero, false
	}

	d.doc.MarkDirty()

	if err := pane.Tracker.SelectLast(); err != nil {
		log.Error().Err(err).Str("pane", pane.Tracker.Name()).Msg("error selecting new record")
	}

	return rec, true
}

// MoveTermUp moves the current term one place up. Courses follow their term in the flat list.
func (d *Dialog) MoveTermUp() bool {
	return d.moveTerm((*editor.Tracker[*model.Term]).MoveUp)
}

// MoveTermDown moves the current term one place down.
func (d *Dialog) MoveTermDown() bool {
	return d.moveTerm((*editor.Tracker[*model.Term]).MoveDown)
}

func (d *Dialog) moveTerm(move func(*editor.Tracker[*model.Term]) (bool, error)) bool {
	var moved bool

	err := d.reshapeCourses(func() error {
		var err error
		moved, err = move(d.Terms.Tracker)

		return err
	})
	if err != nil {
		log.Error().Err(err).Msg("error moving term")

		return false
	}

	if moved {
		d.doc.MarkDirty()
	}

	return moved
}

// MoveCourseUp moves the current course one place up within its term. Moving it past a course of
// another term is refused with a warning.
func (d *Dialog) MoveCourseUp() bool {
	return d.moveCourse(d.Courses.Tracker.MoveUp)
}

// MoveCourseDown moves the current course one place down within its term.
func (d *Dialog) MoveCourseDown() bool {
	return d.moveCourse(d.Courses.Tracker.MoveDown)
}

func (d *Dialog) moveCourse(move func() (bool, error)) bool {
	moved, err := move()
	if errors.Is(err, model.ErrTermMismatch) {
		d.warn("Courses can only be reordered within the same term.")

		return false
	}

	if err != nil {
		log.Error().Err(err).Msg("error moving course")

		return false
	}

	if moved {
		d.doc.MarkDirty()
		d.notifyCourses()
	}

	return moved
}

// MoveTypeUp moves the current assignment type one place up.
func (d *Dialog) MoveTypeUp() bool { return moveChild(d, d.Types.Tracker.MoveUp) }

// MoveTypeDown moves the current assignment type one place down.
func (d *Dialog) MoveTypeDown() bool { return moveChild(d, d.Types.Tracker.MoveDown) }

// MoveInstructorUp moves the current instructor one place up.
func (d *Dialog) MoveInstructorUp() bool { return moveChild(d, d.Instructors.Tracker.MoveUp) }

// MoveInstructorDown moves the current instructor one place down.
func (d *Dialog) MoveInstructorDown() bool { return moveChild(d, d.Instructors.Tracker.MoveDown) }

// MoveTextbookUp moves the current textbook one place up.
func (d *Dialog) MoveTextbookUp() bool { return moveChild(d, d.Textbooks.Tracker.MoveUp) }

// MoveTextbookDown moves the current textbook one place down.
func (d *Dialog) MoveTextbookDown() bool { return moveChild(d, d.Textbooks.Tracker.MoveDown) }

func moveChild(d *Dialog, move func() (bool, error)) bool {
	moved, err := move()
	if err != nil {
		log.Error().Err(err).Msg("error moving record")

		return false
	}

	if moved {
		d.doc.MarkDirty()
	}

	return moved
}

// ChangeCourseTerm moves the current course to the end of another term and keeps it selected.
func (d *Dialog) ChangeCourseTerm(termID uuid.UUID) error {
	course, ok := d.Courses.Current()
	if !ok {
		return nil
	}

	term, ok := d.doc.Term(termID)
	if !ok {
		return fmt.Errorf("error changing term of %q: %w", course.Name, model.ErrUnknownTerm)
	}

	if course.TermID == term.ID {
		return nil
	}

	if err := d.reshapeCourses(func() error { return d.doc.ChangeTerm(course, term) }); err != nil {
		return err
	}

	d.doc.MarkDirty()

	return nil
}

// RemoveTerm asks for confirmation and then removes the current term. Every course of the term is
// marked deleted and detached first.
func (d *Dialog) RemoveTerm() {
	term, ok := d.Terms.Current()
	if !ok {
		return
	}

	msg := fmt.Sprintf("Remove the term %q?", term.Name)
	if n := term.Courses.Len(); n > 0 {
		msg = fmt.Sprintf("Remove the term %q and its %d course(s)?", term.Name, n)
	}

	d.confirm(msg, func(yes bool) {
		if !yes || !isCurrent(d.Terms, term.ID) {
			return
		}

		err := d.reshapeCourses(func() error {
			for _, c := range term.Courses.Items() {
				c.Deleted = true
			}

			for term.Courses.Len() > 0 {
				if _, err := term.Courses.RemoveAt(0); err != nil {
					return err
				}
			}

			_, _, err := d.Terms.Tracker.RemoveCurrent()

			return err
		})
		if err != nil {
			log.Error().Err(err).Str("term", term.Name).Msg("error removing term")

			return
		}

		d.doc.MarkDirty()

		log.Info().Str("term", term.Name).Msg("removed term")
	})
}

// RemoveCourse asks for confirmation and then removes the current course along with its
// assignments, types, instructors and textbooks.
func (d *Dialog) RemoveCourse() {
	course, ok := d.Courses.Current()
	if !ok {
		return
	}

	d.confirm(fmt.Sprintf("Remove the course %q?", course.Name), func(yes bool) {
		if !yes || !isCurrent(d.Courses, course.ID) {
			return
		}

		course.Clear()
		d.refreshChildren()

		if _, _, err := d.Courses.Tracker.RemoveCurrent(); err != nil {
			log.Error().Err(err).Str("course", course.Name).Msg("error removing course")

			return
		}

		course.Deleted = true
		d.doc.MarkDirty()
		d.notifyCourses()

		log.Info().Str("course", course.Name).Msg("removed course")
	})
}

// RemoveType asks for confirmation and then removes the current assignment type, clearing it
// from the course's assignments.
func (d *Dialog) RemoveType() {
	removeChild(d, d.Types, "assignment type",
		func(t *model.AssignmentType) string { return t.Name },
		func(c *model.Course, t *model.AssignmentType) { c.DetachType(t.ID) },
	)
}

// RemoveInstructor asks for confirmation and then removes the current instructor.
func (d *Dialog) RemoveInstructor() {
	removeChild(d, d.Instructors, "instructor",
		func(i *model.Instructor) string { return i.Name },
		nil,
	)
}

// RemoveTextbook asks for confirmation and then removes the current textbook, clearing it from
// the course's assignments.
func (d *Dialog) RemoveTextbook() {
	removeChild(d, d.Textbooks, "textbook",
		func(b *model.Textbook) string { return b.Name },
		func(c *model.Course, b *model.Textbook) { c.DetachTextbook(b.ID) },
	)
}

func removeChild[T collection.Keyed](
	d *Dialog,
	pane *editor.Pane[T],
	what string,
	name func(T) string,
	detach func(*model.Course, T),
) {
	rec, ok := pane.Current()
	if !ok {
		return
	}

	id := rec.Key()

	d.confirm(fmt.Sprintf("Remove the %s %q?", what, name(rec)), func(yes bool) {
		if !yes || !isCurrent(pane, id) {
			return
		}

		if course, ok := d.Courses.Current(); ok && detach != nil {
			detach(course, rec)
		}

		if _, _, err := pane.Tracker.RemoveCurrent(); err != nil {
			log.Error().Err(err).Str("pane", pane.Tracker.Name()).Msg("error removing record")

			return
		}

		d.doc.MarkDirty()
	})
}

// isCurrent reports whether the record with id is still current, e.g. once a confirmation
// has been answered.
func isCurrent[T collection.Keyed](pane *editor.Pane[T], id uuid.UUID) bool {
	rec, ok := pane.Current()

	return ok && rec.Key() == id
}
