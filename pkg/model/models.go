package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/matt-steen/term-tracker/pkg/collection"
)

// These constants are the roles an instructor can have in a course.
const (
	RoleLecture = "lecture"
	RoleLab     = "lab"
	RoleBoth    = "both"
)

// Placeholder values given to newly added records.
const (
	NewTermName       = "New Term"
	NewCourseName     = "New Course"
	NewTypeName       = "New Type"
	NewInstructorName = "New Instructor"
	NewTextbookName   = "New Textbook"
	NewAssignmentName = "New Assignment"
	DefaultColor      = "#6495ED"
	// termLength is how long a placeholder term runs.
	termLength = 16 * 7 * 24 * time.Hour
)

// Term is an academic term. Its Courses list is the authoritative home of its courses and
// determines their order.
type Term struct {
	ID        uuid.UUID
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Courses   *collection.Ordered[*Course]
}

// Key implements collection.Keyed.
func (t *Term) Key() uuid.UUID { return t.ID }

// Schedule is the meeting pattern shared by a course and its lab.
type Schedule struct {
	Number    string
	Days      Weekdays
	StartTime Clock
	EndTime   Clock
	Room      string
	Online    bool
	Credits   int
	Website   string
}

// Course belongs to exactly one term (TermID) and owns its types, instructors, textbooks and
// assignments.
type Course struct {
	ID        uuid.UUID
	TermID    uuid.UUID
	Name      string
	Color     string
	StartDate time.Time
	EndDate   time.Time
	Schedule
	// Lab is only meaningful while HasLab is set; it keeps its values otherwise.
	HasLab bool
	Lab    Schedule
	// Deleted is set when the course is removed as part of removing its term.
	Deleted bool

	Types       *collection.Ordered[*AssignmentType]
	Instructors *collection.Ordered[*Instructor]
	Textbooks   *collection.Ordered[*Textbook]
	Assignments *collection.Ordered[*Assignment]
}

// Key implements collection.Keyed.
func (c *Course) Key() uuid.UUID { return c.ID }

// AssignmentType is a grading-scale category of a course.
type AssignmentType struct {
	ID     uuid.UUID
	Name   string
	Weight float64
}

// Key implements collection.Keyed.
func (a *AssignmentType) Key() uuid.UUID { return a.ID }

// Instructor teaches a course's lecture, lab or both.
type Instructor struct {
	ID             uuid.UUID
	Name           string
	Email          string
	Phone          string
	OfficeHours    string
	OfficeLocation string
	Role           string
}

// Key implements collection.Keyed.
func (i *Instructor) Key() uuid.UUID { return i.ID }

// Textbook is a book used by a course.
type Textbook struct {
	ID           uuid.UUID
	Name         string
	Author       string
	Publisher    string
	ISBN         string
	SourceURL    string
	Price        float64
	Condition    string
	ContactEmail string
	Ordered      bool
	Received     bool
}

// Key implements collection.Keyed.
func (t *Textbook) Key() uuid.UUID { return t.ID }

// Assignment is a piece of course work. TypeID and TextbookID are optional references into
// the owning course's lists; uuid.Nil means none.
type Assignment struct {
	ID         uuid.UUID
	Name       string
	DueDate    time.Time
	TypeID     uuid.UUID
	TextbookID uuid.UUID
	Completed  bool
	Grade      float64
}

// Key implements collection.Keyed.
func (a *Assignment) Key() uuid.UUID { return a.ID }

// NewTerm returns a placeholder term starting on the given day.
func NewTerm(start time.Time) *Term {
	start = midnight(start)

	return &Term{
		ID:        uuid.New(),
		Name:      NewTermName,
		StartDate: start,
		EndDate:   start.Add(termLength),
		Courses:   &collection.Ordered[*Course]{},
	}
}

// NewCourse returns a placeholder course in the given term, spanning the term's dates.
func NewCourse(term *Term) *Course {
	return &Course{
		ID:          uuid.New(),
		TermID:      term.ID,
		Name:        NewCourseName,
		Color:       DefaultColor,
		StartDate:   term.StartDate,
		EndDate:     term.EndDate,
		Types:       &collection.Ordered[*AssignmentType]{},
		Instructors: &collection.Ordered[*Instructor]{},
		Textbooks:   &collection.Ordered[*Textbook]{},
		Assignments: &collection.Ordered[*Assignment]{},
	}
}

// NewAssignmentType returns a placeholder type with no weight.
func NewAssignmentType() *AssignmentType {
	return &AssignmentType{ID: uuid.New(), Name: NewTypeName}
}

// NewInstructor returns a placeholder lecture instructor.
func NewInstructor() *Instructor {
	return &Instructor{ID: uuid.New(), Name: NewInstructorName, Role: RoleLecture}
}

// NewTextbook returns a placeholder textbook.
func NewTextbook() *Textbook {
	return &Textbook{ID: uuid.New(), Name: NewTextbookName}
}

// NewAssignment returns a placeholder assignment due on the given day.
func NewAssignment(due time.Time) *Assignment {
	return &Assignment{ID: uuid.New(), Name: NewAssignmentName, DueDate: midnight(due)}
}

// midnight drops the time of day, keeping the calendar day in t's own location.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
