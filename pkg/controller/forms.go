package controller

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/term-tracker/pkg/dialog"
	"github.com/matt-steen/term-tracker/pkg/model"
)

const (
	nameWidth  = 40
	dateWidth  = 12
	shortWidth = 10
	longWidth  = 50
)

func termFields() []FormField {
	return []FormField{
		{ID: dialog.FieldName, Label: "Name", Width: nameWidth},
		{ID: dialog.FieldStartDate, Label: "Starts", Width: dateWidth},
		{ID: dialog.FieldEndDate, Label: "Ends", Width: dateWidth},
	}
}

func courseFields() []FormField {
	return []FormField{
		{ID: dialog.FieldName, Label: "Name", Width: nameWidth},
		{ID: dialog.FieldNumber, Label: "Number", Width: shortWidth},
		{ID: dialog.FieldColor, Label: "Color", Width: shortWidth},
		{ID: dialog.FieldCredits, Label: "Credits", Width: 4},
		{ID: dialog.FieldDays, Label: "Days (MTWRFSU)", Width: 8},
		{ID: dialog.FieldStartTime, Label: "Starts at", Width: 6},
		{ID: dialog.FieldEndTime, Label: "Ends at", Width: 6},
		{ID: dialog.FieldStartDate, Label: "First day", Width: dateWidth},
		{ID: dialog.FieldEndDate, Label: "Last day", Width: dateWidth},
		{ID: dialog.FieldRoom, Label: "Room", Width: shortWidth},
		{ID: dialog.FieldOnline, Label: "Online", Check: true},
		{ID: dialog.FieldWebsite, Label: "Website", Width: longWidth},
		{ID: dialog.FieldHasLab, Label: "Has lab", Check: true},
		{ID: dialog.FieldLabNumber, Label: "Lab number", Width: shortWidth},
		{ID: dialog.FieldLabCredits, Label: "Lab credits", Width: 4},
		{ID: dialog.FieldLabDays, Label: "Lab days", Width: 8},
		{ID: dialog.FieldLabStartTime, Label: "Lab starts at", Width: 6},
		{ID: dialog.FieldLabEndTime, Label: "Lab ends at", Width: 6},
		{ID: dialog.FieldLabRoom, Label: "Lab room", Width: shortWidth},
		{ID: dialog.FieldLabOnline, Label: "Lab online", Check: true},
		{ID: dialog.FieldLabWebsite, Label: "Lab website", Width: longWidth},
	}
}

func typeFields() []FormField {
	return []FormField{
		{ID: dialog.FieldName, Label: "Name", Width: nameWidth},
		{ID: dialog.FieldWeight, Label: "Weight", Width: 6},
	}
}

func instructorFields() []FormField {
	return []FormField{
		{ID: dialog.FieldName, Label: "Name", Width: nameWidth},
		{ID: dialog.FieldEmail, Label: "Email", Width: nameWidth},
		{ID: dialog.FieldPhone, Label: "Phone", Width: 16},
		{ID: dialog.FieldOfficeHours, Label: "Office hours", Width: nameWidth},
		{ID: dialog.FieldOfficeLocation, Label: "Office", Width: 20},
		{ID: dialog.FieldRole, Label: "Teaches (lecture/lab/both)", Width: 8},
	}
}

func textbookFields() []FormField {
	return []FormField{
		{ID: dialog.FieldName, Label: "Title", Width: nameWidth},
		{ID: dialog.FieldAuthor, Label: "Author", Width: nameWidth},
		{ID: dialog.FieldPublisher, Label: "Publisher", Width: nameWidth},
		{ID: dialog.FieldISBN, Label: "ISBN", Width: 17},
		{ID: dialog.FieldSourceURL, Label: "Source", Width: longWidth},
		{ID: dialog.FieldPrice, Label: "Price", Width: shortWidth},
		{ID: dialog.FieldCondition, Label: "Condition", Width: 20},
		{ID: dialog.FieldContactEmail, Label: "Seller email", Width: nameWidth},
		{ID: dialog.FieldOrdered, Label: "Ordered", Check: true},
		{ID: dialog.FieldReceived, Label: "Received", Check: true},
	}
}

func termColumns() []Column[*model.Term] {
	return []Column[*model.Term]{
		{Title: "term", Expansion: 2, Text: func(t *model.Term) string { return t.Name }},
		{Title: "starts", Text: func(t *model.Term) string { return model.FormatDate(t.StartDate) }},
		{Title: "ends", Text: func(t *model.Term) string { return model.FormatDate(t.EndDate) }},
		{Title: "courses", Text: func(t *model.Term) string { return strconv.Itoa(t.Courses.Len()) }},
	}
}

func courseColumns(doc *model.Document) []Column[*model.Course] {
	return []Column[*model.Course]{
		{
			Title: "term",
			Text: func(c *model.Course) string {
				if term, ok := doc.Term(c.TermID); ok {
					return term.Name
				}

				return "?"
			},
			Color: func(*model.Course) tcell.Color { return tcell.ColorGray },
		},
		{
			Title:     "course",
			Expansion: 2,
			Text:      func(c *model.Course) string { return c.Name },
			Color:     func(c *model.Course) tcell.Color { return tcell.GetColor(c.Color) },
		},
		{Title: "number", Text: func(c *model.Course) string { return c.Number }},
		{Title: "days", Text: func(c *model.Course) string { return c.Days.String() }},
		{
			Title: "time",
			Text:  func(c *model.Course) string { return fmt.Sprintf("%s-%s", c.StartTime, c.EndTime) },
		},
		{
			Title: "lab",
			Text: func(c *model.Course) string {
				if !c.HasLab {
					return ""
				}

				return fmt.Sprintf("%s %s-%s", c.Lab.Days, c.Lab.StartTime, c.Lab.EndTime)
			},
			Color: func(*model.Course) tcell.Color { return tcell.ColorGreen },
		},
	}
}

func typeColumns() []Column[*model.AssignmentType] {
	return []Column[*model.AssignmentType]{
		{Title: "assignment type", Expansion: 2, Text: func(t *model.AssignmentType) string { return t.Name }},
		{
			Title: "weight",
			Text:  func(t *model.AssignmentType) string { return strconv.FormatFloat(t.Weight, 'f', -1, 64) },
		},
	}
}

func instructorColumns() []Column[*model.Instructor] {
	return []Column[*model.Instructor]{
		{Title: "instructor", Expansion: 2, Text: func(i *model.Instructor) string { return i.Name }},
		{Title: "role", Text: func(i *model.Instructor) string { return i.Role }},
		{Title: "email", Expansion: 2, Text: func(i *model.Instructor) string { return i.Email }},
	}
}

func textbookColumns() []Column[*model.Textbook] {
	return []Column[*model.Textbook]{
		{Title: "textbook", Expansion: 2, Text: func(b *model.Textbook) string { return b.Name }},
		{Title: "author", Text: func(b *model.Textbook) string { return b.Author }},
		{Title: "isbn", Text: func(b *model.Textbook) string { return b.ISBN }},
		{
			Title: "status",
			Text: func(b *model.Textbook) string {
				switch {
				case b.Received:
					return "received"
				case b.Ordered:
					return "ordered"
				}

				return ""
			},
			Color: func(*model.Textbook) tcell.Color { return tcell.ColorGreen },
		},
	}
}
