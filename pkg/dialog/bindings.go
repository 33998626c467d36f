package dialog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/matt-steen/term-tracker/pkg/editor"
	"github.com/matt-steen/term-tracker/pkg/model"
)

// Field ids shared by the record types.
const (
	FieldName      = "name"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
)

// Course field ids. The lab_ fields are only live while has_lab is set.
const (
	FieldNumber       = "number"
	FieldColor        = "color"
	FieldCredits      = "credits"
	FieldDays         = "days"
	FieldStartTime    = "start_time"
	FieldEndTime      = "end_time"
	FieldRoom         = "room"
	FieldOnline       = "online"
	FieldWebsite      = "website"
	FieldHasLab       = "has_lab"
	FieldLabNumber    = "lab_number"
	FieldLabCredits   = "lab_credits"
	FieldLabDays      = "lab_days"
	FieldLabStartTime = "lab_start_time"
	FieldLabEndTime   = "lab_end_time"
	FieldLabRoom      = "lab_room"
	FieldLabOnline    = "lab_online"
	FieldLabWebsite   = "lab_website"
)

// Assignment type, instructor and textbook field ids.
const (
	FieldWeight         = "weight"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldOfficeHours    = "office_hours"
	FieldOfficeLocation = "office_location"
	FieldRole           = "role"
	FieldAuthor         = "author"
	FieldPublisher      = "publisher"
	FieldISBN           = "isbn"
	FieldSourceURL      = "source_url"
	FieldPrice          = "price"
	FieldCondition      = "condition"
	FieldContactEmail   = "contact_email"
	FieldOrdered        = "ordered"
	FieldReceived       = "received"
)

var validate = validator.New()

func text[T any](id string, at func(T) *string) editor.Field[T] {
	return editor.Field[T]{
		ID:  id,
		Get: func(r T) string { return *at(r) },
		Set: func(r T, s string) error {
			*at(r) = s

			return nil
		},
	}
}

// checked is a text field whose value must pass the validator tag, e.g. "omitempty,email".
func checked[T any](id, tag string, at func(T) *string) editor.Field[T] {
	f := text(id, at)
	f.Set = func(r T, s string) error {
		s = strings.TrimSpace(s)
		if err := validate.Var(s, tag); err != nil {
			return fmt.Errorf("invalid %s: %w", id, err)
		}

		*at(r) = s

		return nil
	}

	return f
}

func date[T any](id string, at func(T) *time.Time) editor.Field[T] {
	return editor.Field[T]{
		ID:  id,
		Get: func(r T) string { return model.FormatDate(*at(r)) },
		Set: func(r T, s string) error {
			t, err := model.ParseDate(s)
			if err != nil {
				return err
			}

			*at(r) = t

			return nil
		},
	}
}

func clock[T any](id string, at func(T) *model.Clock) editor.Field[T] {
	return editor.Field[T]{
		ID:  id,
		Get: func(r T) string { return at(r).String() },
		Set: func(r T, s string) error {
			c, err := model.ParseClock(s)
			if err != nil {
				return err
			}

			*at(r) = c

			return nil
		},
	}
}

func weekdays[T any](id string, at func(T) *model.Weekdays) editor.Field[T] {
	return editor.Field[T]{
		ID:  id,
		Get: func(r T) string { return at(r).String() },
		Set: func(r T, s string) error {
			w, err := model.ParseWeekdays(s)
			if err != nil {
				return err
			}

			*at(r) = w

			return nil
		},
	}
}

func integer[T any](id string, at func(T) *int) editor.Field[T] {
	return editor.Field[T]{
		ID:  id,
		Get: func(r T) string { return strconv.Itoa(*at(r)) },
		Set: func(r T, s string) error {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return fmt.Errorf("invalid %s: %w", id, err)
			}

			*at(r) = n

			return nil
		},
	}
}

// decimal renders with the given precision; -1 means as many digits as needed.
func decimal[T any](id string, precision int, at func(T) *float64) editor.Field[T] {
	return editor.Field[T]{
		ID:  id,
		Get: func(r T) string { return strconv.FormatFloat(*at(r), 'f', precision, 64) },
		Set: func(r T, s string) error {
			f, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(s), "$"), 64)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", id, err)
			}

			*at(r) = f

			return nil
		},
	}
}

func boolean[T any](id string, at func(T) *bool) editor.Field[T] {
	return editor.Field[T]{
		ID:  id,
		Get: func(r T) string { return strconv.FormatBool(*at(r)) },
		Set: func(r T, s string) error {
			b, err := strconv.ParseBool(strings.TrimSpace(s))
			if err != nil {
				return fmt.Errorf("invalid %s: %w", id, err)
			}

			*at(r) = b

			return nil
		},
	}
}

func labOnly(f editor.Field[*model.Course]) editor.Field[*model.Course] {
	f.Enabled = func(c *model.Course) bool { return c.HasLab }

	return f
}

// TermFields binds the editable attributes of a term.
func TermFields() editor.Bindings[*model.Term] {
	return editor.Bindings[*model.Term]{
		text(FieldName, func(t *model.Term) *string { return &t.Name }),
		date(FieldStartDate, func(t *model.Term) *time.Time { return &t.StartDate }),
		date(FieldEndDate, func(t *model.Term) *time.Time { return &t.EndDate }),
	}
}

// CourseFields binds the editable attributes of a course, including its lab schedule.
func CourseFields() editor.Bindings[*model.Course] {
	return editor.Bindings[*model.Course]{
		text(FieldName, func(c *model.Course) *string { return &c.Name }),
		text(FieldNumber, func(c *model.Course) *string { return &c.Number }),
		checked(FieldColor, "omitempty,hexcolor", func(c *model.Course) *string { return &c.Color }),
		integer(FieldCredits, func(c *model.Course) *int { return &c.Credits }),
		weekdays(FieldDays, func(c *model.Course) *model.Weekdays { return &c.Days }),
		clock(FieldStartTime, func(c *model.Course) *model.Clock { return &c.StartTime }),
		clock(FieldEndTime, func(c *model.Course) *model.Clock { return &c.EndTime }),
		date(FieldStartDate, func(c *model.Course) *time.Time { return &c.StartDate }),
		date(FieldEndDate, func(c *model.Course) *time.Time { return &c.EndDate }),
		text(FieldRoom, func(c *model.Course) *string { return &c.Room }),
		boolean(FieldOnline, func(c *model.Course) *bool { return &c.Online }),
		checked(FieldWebsite, "omitempty,url", func(c *model.Course) *string { return &c.Website }),
		boolean(FieldHasLab, func(c *model.Course) *bool { return &c.HasLab }),
		labOnly(text(FieldLabNumber, func(c *model.Course) *string { return &c.Lab.Number })),
		labOnly(integer(FieldLabCredits, func(c *model.Course) *int { return &c.Lab.Credits })),
		labOnly(weekdays(FieldLabDays, func(c *model.Course) *model.Weekdays { return &c.Lab.Days })),
		labOnly(clock(FieldLabStartTime, func(c *model.Course) *model.Clock { return &c.Lab.StartTime })),
		labOnly(clock(FieldLabEndTime, func(c *model.Course) *model.Clock { return &c.Lab.EndTime })),
		labOnly(text(FieldLabRoom, func(c *model.Course) *string { return &c.Lab.Room })),
		labOnly(boolean(FieldLabOnline, func(c *model.Course) *bool { return &c.Lab.Online })),
		labOnly(checked(FieldLabWebsite, "omitempty,url", func(c *model.Course) *string { return &c.Lab.Website })),
	}
}

// LabFields lists the course fields that are only live while the course has a lab.
func LabFields() []string {
	ids := []string{}

	for _, f := range CourseFields() {
		if f.Enabled != nil {
			ids = append(ids, f.ID)
		}
	}

	return ids
}

// TypeFields binds the editable attributes of an assignment type.
func TypeFields() editor.Bindings[*model.AssignmentType] {
	return editor.Bindings[*model.AssignmentType]{
		text(FieldName, func(t *model.AssignmentType) *string { return &t.Name }),
		decimal(FieldWeight, -1, func(t *model.AssignmentType) *float64 { return &t.Weight }),
	}
}

// InstructorFields binds the editable attributes of an instructor.
func InstructorFields() editor.Bindings[*model.Instructor] {
	return editor.Bindings[*model.Instructor]{
		text(FieldName, func(i *model.Instructor) *string { return &i.Name }),
		checked(FieldEmail, "omitempty,email", func(i *model.Instructor) *string { return &i.Email }),
		text(FieldPhone, func(i *model.Instructor) *string { return &i.Phone }),
		text(FieldOfficeHours, func(i *model.Instructor) *string { return &i.OfficeHours }),
		text(FieldOfficeLocation, func(i *model.Instructor) *string { return &i.OfficeLocation }),
		checked(FieldRole, "oneof=lecture lab both", func(i *model.Instructor) *string { return &i.Role }),
	}
}

// TextbookFields binds the editable attributes of a textbook.
func TextbookFields() editor.Bindings[*model.Textbook] {
	return editor.Bindings[*model.Textbook]{
		text(FieldName, func(b *model.Textbook) *string { return &b.Name }),
		text(FieldAuthor, func(b *model.Textbook) *string { return &b.Author }),
		text(FieldPublisher, func(b *model.Textbook) *string { return &b.Publisher }),
		checked(FieldISBN, "omitempty,isbn", func(b *model.Textbook) *string { return &b.ISBN }),
		checked(FieldSourceURL, "omitempty,url", func(b *model.Textbook) *string { return &b.SourceURL }),
		decimal(FieldPrice, 2, func(b *model.Textbook) *float64 { return &b.Price }),
		text(FieldCondition, func(b *model.Textbook) *string { return &b.Condition }),
		checked(FieldContactEmail, "omitempty,email", func(b *model.Textbook) *string { return &b.ContactEmail }),
		boolean(FieldOrdered, func(b *model.Textbook) *bool { return &b.Ordered }),
		boolean(FieldReceived, func(b *model.Textbook) *bool { return &b.Received }),
	}
}
