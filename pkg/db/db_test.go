package db_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/matt-steen/term-tracker/pkg/db"
	"github.com/matt-steen/term-tracker/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, time.August, 26, 0, 0, 0, 0, time.UTC)

func getDB(t *testing.T) (*db.Database, string) {
	t.Helper()

	filename := filepath.Join(t.TempDir(), "test.sqlite")

	database, err := db.NewDatabase(context.Background(), filename)
	require.NoError(t, err)

	t.Cleanup(func() { database.Close() })

	return database, filename
}

// sampleDocument returns two terms; the first has a fully populated course with a lab.
func sampleDocument(t *testing.T) *model.Document {
	t.Helper()

	doc := model.NewDocument()

	fall := model.NewTerm(start)
	fall.Name = "Fall 2024"
	spring := model.NewTerm(start.AddDate(0, 5, 0))
	spring.Name = "Spring 2025"

	for _, term := range []*model.Term{fall, spring} {
		_, err := doc.Terms.Add(term)
		require.NoError(t, err)
	}

	chem := model.NewCourse(fall)
	chem.Name = "Chemistry"
	chem.Number = "CHEM 101"
	chem.Credits = 4
	chem.Days = model.Weekdays(0).With(time.Monday, true).With(time.Wednesday, true)
	chem.StartTime = model.NewClock(9, 0)
	chem.EndTime = model.NewClock(9, 50)
	chem.Website = "https://example.edu/chem"
	chem.HasLab = true
	chem.Lab = model.Schedule{Number: "CHEM 101L", Days: model.Weekdays(0).With(time.Friday, true), Room: "Lab 3", Credits: 1}
	require.NoError(t, doc.AddCourse(fall, chem))

	algebra := model.NewCourse(fall)
	algebra.Name = "Algebra"
	algebra.Online = true
	require.NoError(t, doc.AddCourse(fall, algebra))

	typ := &model.AssignmentType{ID: uuid.New(), Name: "Exams", Weight: 0.6}
	_, _ = chem.Types.Add(typ)
	_, _ = chem.Types.Add(&model.AssignmentType{ID: uuid.New(), Name: "Homework", Weight: 0.4})

	_, _ = chem.Instructors.Add(&model.Instructor{
		ID: uuid.New(), Name: "Dr. Curie", Email: "curie@example.edu", Role: model.RoleBoth, OfficeHours: "M 2-4",
	})

	book := &model.Textbook{
		ID: uuid.New(), Name: "Chemistry", Author: "Zumdahl", ISBN: "9781305957404", Price: 89.99, Ordered: true,
	}
	_, _ = chem.Textbooks.Add(book)

	hw := model.NewAssignment(start.AddDate(0, 0, 7))
	hw.TypeID = typ.ID
	hw.TextbookID = book.ID
	_, _ = chem.Assignments.Add(hw)
	_, _ = chem.Assignments.Add(model.NewAssignment(start.AddDate(0, 0, 14)))

	doc.MarkDirty()

	return doc
}

func TestNewDatabaseBadFile(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, err := db.NewDatabase(context.Background(), "/alwfkjasfd/asdflkjdsal.sqlite")
	assert.Nil(database)
	assert.NotNil(err)
	assert.Contains(err.Error(), "error running base sql: unable to open database file")
}

func TestNewDatabaseIdempotent(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, filename := getDB(t)

	doc, err := database.Load(context.Background())
	assert.Nil(err)
	assert.Equal(0, doc.Terms.Len())
	assert.Nil(database.Close())

	database2, err := db.NewDatabase(context.Background(), filename)
	assert.Nil(err)
	assert.NotNil(database2)
	assert.Nil(database2.Close())
}

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, _ := getDB(t)
	doc := sampleDocument(t)

	assert.Nil(database.Save(context.Background(), doc))
	assert.False(doc.NeedsSave())

	loaded, err := database.Load(context.Background())
	assert.Nil(err)
	assert.False(loaded.NeedsSave())

	assert.Equal(2, loaded.Terms.Len())
	assert.Equal("Fall 2024", loaded.Terms.At(0).Name)
	assert.True(start.Equal(loaded.Terms.At(0).StartDate))

	courses := loaded.Courses()
	require.Len(t, courses, 2)
	assert.Equal("Chemistry", courses[0].Name)
	assert.Equal("Algebra", courses[1].Name)
	assert.True(courses[1].Online)

	chem := courses[0]
	want := doc.Courses()[0]
	assert.Equal(want.ID, chem.ID)
	assert.Equal(want.TermID, chem.TermID)
	assert.Equal(want.Schedule, chem.Schedule)
	assert.Equal(want.Lab, chem.Lab)
	assert.True(chem.HasLab)

	assert.Equal([]string{"Exams", "Homework"}, []string{chem.Types.At(0).Name, chem.Types.At(1).Name})
	assert.Equal(0.6, chem.Types.At(0).Weight)
	assert.Equal("curie@example.edu", chem.Instructors.At(0).Email)
	assert.Equal(model.RoleBoth, chem.Instructors.At(0).Role)
	assert.Equal(89.99, chem.Textbooks.At(0).Price)
	assert.True(chem.Textbooks.At(0).Ordered)
	assert.False(chem.Textbooks.At(0).Received)

	require.Equal(t, 2, chem.Assignments.Len())
	assert.Equal(chem.Types.At(0).ID, chem.Assignments.At(0).TypeID)
	assert.Equal(chem.Textbooks.At(0).ID, chem.Assignments.At(0).TextbookID)
	assert.Equal(uuid.Nil, chem.Assignments.At(1).TypeID)
}

func TestSavePersistsOrderAndRemovals(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, _ := getDB(t)
	doc := sampleDocument(t)
	assert.Nil(database.Save(context.Background(), doc))

	fall := doc.Terms.At(0)
	assert.Nil(fall.Courses.Swap(0, 1))
	assert.Nil(doc.Terms.Swap(0, 1))

	chem := fall.Courses.At(1)
	chem.RemoveType(chem.Types.At(0).ID)

	assert.Nil(database.Save(context.Background(), doc))

	loaded, err := database.Load(context.Background())
	assert.Nil(err)

	assert.Equal("Spring 2025", loaded.Terms.At(0).Name)

	courses := loaded.Courses()
	require.Len(t, courses, 2)
	assert.Equal("Algebra", courses[0].Name)
	assert.Equal(1, courses[1].Types.Len())
	assert.Equal(uuid.Nil, courses[1].Assignments.At(0).TypeID)
}

func TestLoadSkipsOrphans(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, _ := getDB(t)
	doc := sampleDocument(t)

	fall := doc.Terms.At(0)
	orphan := model.NewCourse(fall)
	require.NoError(t, doc.AddCourse(fall, orphan))
	orphan.TermID = uuid.New()
	_, _ = orphan.Types.Add(model.NewAssignmentType())

	assert.Nil(database.Save(context.Background(), doc))

	loaded, err := database.Load(context.Background())
	assert.Nil(err)
	assert.Equal(2, loaded.Terms.Len())
	assert.Len(loaded.Courses(), 2)

	_, ok := loaded.Course(orphan.ID)
	assert.False(ok)
}
