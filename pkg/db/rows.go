package db

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/matt-steen/term-tracker/pkg/collection"
	"github.com/matt-steen/term-tracker/pkg/model"
)

type termRow struct {
	ID        uuid.UUID `db:"id"`
	Rank      int       `db:"rank"`
	Name      string    `db:"name"`
	StartDate string    `db:"start_date"`
	EndDate   string    `db:"end_date"`
}

type courseRow struct {
	ID           uuid.UUID `db:"id"`
	TermID       uuid.UUID `db:"term_id"`
	Rank         int       `db:"rank"`
	Name         string    `db:"name"`
	Color        string    `db:"color"`
	StartDate    string    `db:"start_date"`
	EndDate      string    `db:"end_date"`
	Number       string    `db:"number"`
	Days         int       `db:"days"`
	StartTime    int       `db:"start_time"`
	EndTime      int       `db:"end_time"`
	Room         string    `db:"room"`
	Online       bool      `db:"online"`
	Credits      int       `db:"credits"`
	Website      string    `db:"website"`
	HasLab       bool      `db:"has_lab"`
	LabNumber    string    `db:"lab_number"`
	LabDays      int       `db:"lab_days"`
	LabStartTime int       `db:"lab_start_time"`
	LabEndTime   int       `db:"lab_end_time"`
	LabRoom      string    `db:"lab_room"`
	LabOnline    bool      `db:"lab_online"`
	LabCredits   int       `db:"lab_credits"`
	LabWebsite   string    `db:"lab_website"`
}

type typeRow struct {
	ID       uuid.UUID `db:"id"`
	CourseID uuid.UUID `db:"course_id"`
	Rank     int       `db:"rank"`
	Name     string    `db:"name"`
	Weight   float64   `db:"weight"`
}

type instructorRow struct {
	ID             uuid.UUID `db:"id"`
	CourseID       uuid.UUID `db:"course_id"`
	Rank           int       `db:"rank"`
	Name           string    `db:"name"`
	Email          string    `db:"email"`
	Phone          string    `db:"phone"`
	OfficeHours    string    `db:"office_hours"`
	OfficeLocation string    `db:"office_location"`
	Role           string    `db:"role"`
}

type textbookRow struct {
	ID           uuid.UUID `db:"id"`
	CourseID     uuid.UUID `db:"course_id"`
	Rank         int       `db:"rank"`
	Name         string    `db:"name"`
	Author       string    `db:"author"`
	Publisher    string    `db:"publisher"`
	ISBN         string    `db:"isbn"`
	SourceURL    string    `db:"source_url"`
	Price        float64   `db:"price"`
	Condition    string    `db:"condition"`
	ContactEmail string    `db:"contact_email"`
	Ordered      bool      `db:"ordered"`
	Received     bool      `db:"received"`
}

type assignmentRow struct {
	ID         uuid.UUID `db:"id"`
	CourseID   uuid.UUID `db:"course_id"`
	Rank       int       `db:"rank"`
	Name       string    `db:"name"`
	DueDate    string    `db:"due_date"`
	TypeID     uuid.UUID `db:"type_id"`
	TextbookID uuid.UUID `db:"textbook_id"`
	Completed  bool      `db:"completed"`
	Grade      float64   `db:"grade"`
}

func newTermRow(t *model.Term, rank int) termRow {
	return termRow{
		ID:        t.ID,
		Rank:      rank,
		Name:      t.Name,
		StartDate: model.FormatDate(t.StartDate),
		EndDate:   model.FormatDate(t.EndDate),
	}
}

func (r termRow) term() (*model.Term, error) {
	start, err := model.ParseDate(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("error reading term %s: %w", r.ID, err)
	}

	end, err := model.ParseDate(r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("error reading term %s: %w", r.ID, err)
	}

	return &model.Term{
		ID:        r.ID,
		Name:      r.Name,
		StartDate: start,
		EndDate:   end,
		Courses:   &collection.Ordered[*model.Course]{},
	}, nil
}

func newCourseRow(c *model.Course, rank int) courseRow {
	return courseRow{
		ID:           c.ID,
		TermID:       c.TermID,
		Rank:         rank,
		Name:         c.Name,
		Color:        c.Color,
		StartDate:    model.FormatDate(c.StartDate),
		EndDate:      model.FormatDate(c.EndDate),
		Number:       c.Number,
		Days:         int(c.Days),
		StartTime:    int(c.StartTime),
		EndTime:      int(c.EndTime),
		Room:         c.Room,
		Online:       c.Online,
		Credits:      c.Credits,
		Website:      c.Website,
		HasLab:       c.HasLab,
		LabNumber:    c.Lab.Number,
		LabDays:      int(c.Lab.Days),
		LabStartTime: int(c.Lab.StartTime),
		LabEndTime:   int(c.Lab.EndTime),
		LabRoom:      c.Lab.Room,
		LabOnline:    c.Lab.Online,
		LabCredits:   c.Lab.Credits,
		LabWebsite:   c.Lab.Website,
	}
}

func (r courseRow) course() (*model.Course, error) {
	start, err := model.ParseDate(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("error reading course %s: %w", r.ID, err)
	}

	end, err := model.ParseDate(r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("error reading course %s: %w", r.ID, err)
	}

	return &model.Course{
		ID:        r.ID,
		TermID:    r.TermID,
		Name:      r.Name,
		Color:     r.Color,
		StartDate: start,
		EndDate:   end,
		Schedule: model.Schedule{
			Number:    r.Number,
			Days:      model.Weekdays(r.Days),
			StartTime: model.Clock(r.StartTime),
			EndTime:   model.Clock(r.EndTime),
			Room:      r.Room,
			Online:    r.Online,
			Credits:   r.Credits,
			Website:   r.Website,
		},
		HasLab: r.HasLab,
		Lab: model.Schedule{
			Number:    r.LabNumber,
			Days:      model.Weekdays(r.LabDays),
			StartTime: model.Clock(r.LabStartTime),
			EndTime:   model.Clock(r.LabEndTime),
			Room:      r.LabRoom,
			Online:    r.LabOnline,
			Credits:   r.LabCredits,
			Website:   r.LabWebsite,
		},
		Types:       &collection.Ordered[*model.AssignmentType]{},
		Instructors: &collection.Ordered[*model.Instructor]{},
		Textbooks:   &collection.Ordered[*model.Textbook]{},
		Assignments: &collection.Ordered[*model.Assignment]{},
	}, nil
}

func (r assignmentRow) assignment() (*model.Assignment, error) {
	due, err := model.ParseDate(r.DueDate)
	if err != nil {
		return nil, fmt.Errorf("error reading assignment %s: %w", r.ID, err)
	}

	return &model.Assignment{
		ID:         r.ID,
		Name:       r.Name,
		DueDate:    due,
		TypeID:     r.TypeID,
		TextbookID: r.TextbookID,
		Completed:  r.Completed,
		Grade:      r.Grade,
	}, nil
}
