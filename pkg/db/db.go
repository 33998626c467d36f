package db

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/matt-steen/term-tracker/pkg/model"
	"github.com/rs/zerolog/log"

	// use the sqlite db driver.
	_ "github.com/mattn/go-sqlite3"
)

//go:embed base.sql
var baseSQL string

// Tables in the order their rows are deleted; children come before parents.
var tables = []string{"assignment", "textbook", "instructor", "assignment_type", "course", "term"}

const (
	insertTerm = `INSERT INTO term (id, rank, name, start_date, end_date)
		VALUES (:id, :rank, :name, :start_date, :end_date)`
	insertCourse = `INSERT INTO course (
			id, term_id, rank, name, color, start_date, end_date, number, days, start_time, end_time,
			room, online, credits, website, has_lab, lab_number, lab_days, lab_start_time, lab_end_time,
			lab_room, lab_online, lab_credits, lab_website
		) VALUES (
			:id, :term_id, :rank, :name, :color, :start_date, :end_date, :number, :days, :start_time, :end_time,
			:room, :online, :credits, :website, :has_lab, :lab_number, :lab_days, :lab_start_time, :lab_end_time,
			:lab_room, :lab_online, :lab_credits, :lab_website
		)`
	insertType = `INSERT INTO assignment_type (id, course_id, rank, name, weight)
		VALUES (:id, :course_id, :rank, :name, :weight)`
	insertInstructor = `INSERT INTO instructor
			(id, course_id, rank, name, email, phone, office_hours, office_location, role)
		VALUES (:id, :course_id, :rank, :name, :email, :phone, :office_hours, :office_location, :role)`
	insertTextbook = `INSERT INTO textbook (
			id, course_id, rank, name, author, publisher, isbn, source_url, price, condition,
			contact_email, ordered, received
		) VALUES (
			:id, :course_id, :rank, :name, :author, :publisher, :isbn, :source_url, :price, :condition,
			:contact_email, :ordered, :received
		)`
	insertAssignment = `INSERT INTO assignment
			(id, course_id, rank, name, due_date, type_id, textbook_id, completed, grade)
		VALUES (:id, :course_id, :rank, :name, :due_date, :type_id, :textbook_id, :completed, :grade)`
)

// Database persists documents to a sqlite file.
type Database struct {
	conn *sqlx.DB
}

// NewDatabase connects to the sqlite database at the given filename and initializes the structure
// if not present.
func NewDatabase(ctx context.Context, filename string) (*Database, error) {
	conn, err := sqlx.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("error connecting to sqlite db at %s: %w", filename, err)
	}

	database := Database{conn: conn}

	if err := database.initialize(ctx); err != nil {
		conn.Close()

		return nil, err
	}

	return &database, nil
}

func (d *Database) initialize(ctx context.Context) error {
	// run idempotent setup sql to create empty tables if they don't exist
	if _, err := d.conn.ExecContext(ctx, baseSQL); err != nil {
		return fmt.Errorf("error running base sql: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.conn.Close()
}

// Load reads the whole document. Records whose parent is missing are skipped with a warning.
func (d *Database) Load(ctx context.Context) (*model.Document, error) {
	doc := model.NewDocument()

	if err := d.loadTerms(ctx, doc); err != nil {
		return nil, err
	}

	courses, err := d.loadCourses(ctx, doc)
	if err != nil {
		return nil, err
	}

	if err := d.loadTypes(ctx, courses); err != nil {
		return nil, err
	}

	if err := d.loadInstructors(ctx, courses); err != nil {
		return nil, err
	}

	if err := d.loadTextbooks(ctx, courses); err != nil {
		return nil, err
	}

	if err := d.loadAssignments(ctx, courses); err != nil {
		return nil, err
	}

	log.Info().Int("terms", doc.Terms.Len()).Int("courses", len(courses)).Msg("loaded document")

	return doc, nil
}

func (d *Database) loadTerms(ctx context.Context, doc *model.Document) error {
	rows := []termRow{}
	if err := d.conn.SelectContext(ctx, &rows, `SELECT * FROM term ORDER BY rank`); err != nil {
		return fmt.Errorf("error loading terms: %w", err)
	}

	for _, r := range rows {
		term, err := r.term()
		if err != nil {
			return err
		}

		if _, err := doc.Terms.Add(term); err != nil {
			return fmt.Errorf("error loading term %s: %w", r.ID, err)
		}
	}

	return nil
}

func (d *Database) loadCourses(ctx context.Context, doc *model.Document) (map[uuid.UUID]*model.Course, error) {
	rows := []courseRow{}
	if err := d.conn.SelectContext(ctx, &rows, `SELECT * FROM course ORDER BY term_id, rank`); err != nil {
		return nil, fmt.Errorf("error loading courses: %w", err)
	}

	courses := make(map[uuid.UUID]*model.Course, len(rows))

	for _, r := range rows {
		course, err := r.course()
		if err != nil {
			return nil, err
		}

		term, ok := doc.Term(r.TermID)
		if !ok {
			log.Warn().Str("course", r.ID.String()).Str("term", r.TermID.String()).Msg("skipping course of unknown term")

			continue
		}

		if err := doc.AddCourse(term, course); err != nil {
			return nil, fmt.Errorf("error loading course %s: %w", r.ID, err)
		}

		courses[course.ID] = course
	}

	return courses, nil
}

func (d *Database) loadTypes(ctx context.Context, courses map[uuid.UUID]*model.Course) error {
	rows := []typeRow{}
	if err := d.conn.SelectContext(ctx, &rows, `SELECT * FROM assignment_type ORDER BY course_id, rank`); err != nil {
		return fmt.Errorf("error loading assignment types: %w", err)
	}

	for _, r := range rows {
		if course, ok := owner(courses, "assignment_type", r.ID, r.CourseID); ok {
			if _, err := course.Types.Add(&model.AssignmentType{ID: r.ID, Name: r.Name, Weight: r.Weight}); err != nil {
				return fmt.Errorf("error loading assignment type %s: %w", r.ID, err)
			}
		}
	}

	return nil
}

func (d *Database) loadInstructors(ctx context.Context, courses map[uuid.UUID]*model.Course) error {
	rows := []instructorRow{}
	if err := d.conn.SelectContext(ctx, &rows, `SELECT * FROM instructor ORDER BY course_id, rank`); err != nil {
		return fmt.Errorf("error loading instructors: %w", err)
	}

	for _, r := range rows {
		course, ok := owner(courses, "instructor", r.ID, r.CourseID)
		if !ok {
			continue
		}

		instructor := &model.Instructor{
			ID:             r.ID,
			Name:           r.Name,
			Email:          r.Email,
			Phone:          r.Phone,
			OfficeHours:    r.OfficeHours,
			OfficeLocation: r.OfficeLocation,
			Role:           r.Role,
		}

		if _, err := course.Instructors.Add(instructor); err != nil {
			return fmt.Errorf("error loading instructor %s: %w", r.ID, err)
		}
	}

	return nil
}

func (d *Database) loadTextbooks(ctx context.Context, courses map[uuid.UUID]*model.Course) error {
	rows := []textbookRow{}
	if err := d.conn.SelectContext(ctx, &rows, `SELECT * FROM textbook ORDER BY course_id, rank`); err != nil {
		return fmt.Errorf("error loading textbooks: %w", err)
	}

	for _, r := range rows {
		course, ok := owner(courses, "textbook", r.ID, r.CourseID)
		if !ok {
			continue
		}

		book := &model.Textbook{
			ID:           r.ID,
			Name:         r.Name,
			Author:       r.Author,
			Publisher:    r.Publisher,
			ISBN:         r.ISBN,
			SourceURL:    r.SourceURL,
			Price:        r.Price,
			Condition:    r.Condition,
			ContactEmail: r.ContactEmail,
			Ordered:      r.Ordered,
			Received:     r.Received,
		}

		if _, err := course.Textbooks.Add(book); err != nil {
			return fmt.Errorf("error loading textbook %s: %w", r.ID, err)
		}
	}

	return nil
}

func (d *Database) loadAssignments(ctx context.Context, courses map[uuid.UUID]*model.Course) error {
	rows := []assignmentRow{}
	if err := d.conn.SelectContext(ctx, &rows, `SELECT * FROM assignment ORDER BY course_id, rank`); err != nil {
		return fmt.Errorf("error loading assignments: %w", err)
	}

	for _, r := range rows {
		course, ok := owner(courses, "assignment", r.ID, r.CourseID)
		if !ok {
			continue
		}

		a, err := r.assignment()
		if err != nil {
			return err
		}

		if _, err := course.Assignments.Add(a); err != nil {
			return fmt.Errorf("error loading assignment %s: %w", r.ID, err)
		}
	}

	return nil
}

func owner(courses map[uuid.UUID]*model.Course, kind string, id, courseID uuid.UUID) (*model.Course, bool) {
	course, ok := courses[courseID]
	if !ok {
		log.Warn().Str(kind, id.String()).Str("course", courseID.String()).Msg("skipping record of unknown course")
	}

	return course, ok
}

// Save replaces the stored document with doc in a single transaction; each record's rank is its
// position in its list. The needs-save flag is cleared only once the transaction commits.
func (d *Database) Save(ctx context.Context, doc *model.Document) error {
	tx, err := d.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting save: %w", err)
	}

	if err := writeDocument(ctx, tx, doc); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("error rolling back save")
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing save: %w", err)
	}

	doc.MarkSaved()

	log.Info().Int("terms", doc.Terms.Len()).Msg("saved document")

	return nil
}

func writeDocument(ctx context.Context, tx *sqlx.Tx, doc *model.Document) error {
	for _, table := range tables {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("error clearing %s: %w", table, err)
		}
	}

	for rank, term := range doc.Terms.Items() {
		if _, err := tx.NamedExecContext(ctx, insertTerm, newTermRow(term, rank)); err != nil {
			return fmt.Errorf("error saving term %q: %w", term.Name, err)
		}

		for rank, course := range term.Courses.Items() {
			if err := writeCourse(ctx, tx, course, rank); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeCourse(ctx context.Context, tx *sqlx.Tx, course *model.Course, rank int) error {
	if _, err := tx.NamedExecContext(ctx, insertCourse, newCourseRow(course, rank)); err != nil {
		return fmt.Errorf("error saving course %q: %w", course.Name, err)
	}

	for rank, t := range course.Types.Items() {
		row := typeRow{ID: t.ID, CourseID: course.ID, Rank: rank, Name: t.Name, Weight: t.Weight}
		if _, err := tx.NamedExecContext(ctx, insertType, row); err != nil {
			return fmt.Errorf("error saving assignment type %q: %w", t.Name, err)
		}
	}

	for rank, i := range course.Instructors.Items() {
		row := instructorRow{
			ID:             i.ID,
			CourseID:       course.ID,
			Rank:           rank,
			Name:           i.Name,
			Email:          i.Email,
			Phone:          i.Phone,
			OfficeHours:    i.OfficeHours,
			OfficeLocation: i.OfficeLocation,
			Role:           i.Role,
		}
		if _, err := tx.NamedExecContext(ctx, insertInstructor, row); err != nil {
			return fmt.Errorf("error saving instructor %q: %w", i.Name, err)
		}
	}

	for rank, b := range course.Textbooks.Items() {
		row := textbookRow{
			ID:           b.ID,
			CourseID:     course.ID,
			Rank:         rank,
			Name:         b.Name,
			Author:       b.Author,
			Publisher:    b.Publisher,
			ISBN:         b.ISBN,
			SourceURL:    b.SourceURL,
			Price:        b.Price,
			Condition:    b.Condition,
			ContactEmail: b.ContactEmail,
			Ordered:      b.Ordered,
			Received:     b.Received,
		}
		if _, err := tx.NamedExecContext(ctx, insertTextbook, row); err != nil {
			return fmt.Errorf("error saving textbook %q: %w", b.Name, err)
		}
	}

	for rank, a := range course.Assignments.Items() {
		row := assignmentRow{
			ID:         a.ID,
			CourseID:   course.ID,
			Rank:       rank,
			Name:       a.Name,
			DueDate:    model.FormatDate(a.DueDate),
			TypeID:     a.TypeID,
			TextbookID: a.TextbookID,
			Completed:  a.Completed,
			Grade:      a.Grade,
		}
		if _, err := tx.NamedExecContext(ctx, insertAssignment, row); err != nil {
			return fmt.Errorf("error saving assignment %q: %w", a.Name, err)
		}
	}

	return nil
}
