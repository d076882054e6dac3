package services

import (
	"context"
	"errors"
	"testing"

	"studybuddy-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	id, err := store.CreateStudent(ctx, "Ana", "Lopez", "ana@example.com", 14, "secundaria", models.StudentOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	student, err := store.GetStudent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ana", student.FirstName)
	assert.Equal(t, "Lopez", student.LastName)
	assert.Equal(t, "ana@example.com", student.Email)
	assert.Equal(t, 14, student.Age)
	assert.Equal(t, "secundaria", student.EducationLevel)
	assert.True(t, student.Active)
	assert.Equal(t, "", student.BirthDate)

	ok, err := store.UpdateStudent(ctx, 1, models.StudentPatch{Age: intPtr(15)})
	require.NoError(t, err)
	assert.True(t, ok)

	student, err = store.GetStudent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 15, student.Age)
	assert.Equal(t, "Ana", student.FirstName)
}

func TestStudentBirthDateIsTrimmed(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	id, err := store.CreateStudent(ctx, "Ana", "Lopez", "ana@example.com", 14, "secundaria", models.StudentOptions{BirthDate: " 2011-05-04 "})
	require.NoError(t, err)
	student, err := store.GetStudent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2011-05-04", student.BirthDate)

	_, err = store.UpdateStudent(ctx, id, models.StudentPatch{BirthDate: strPtr("2011-06-01  ")})
	require.NoError(t, err)
	student, err = store.GetStudent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2011-06-01", student.BirthDate)
}

func TestGetStudentMissing(t *testing.T) {
	store := newTestStore(t)

	student, err := store.GetStudent(context.Background(), 42)
	assert.Nil(t, student)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStudent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	f := seed(t, store)

	t.Run("missing id returns false", func(t *testing.T) {
		ok, err := store.UpdateStudent(ctx, 999, models.StudentPatch{Age: intPtr(20)})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("empty patch is rejected", func(t *testing.T) {
		_, err := store.UpdateStudent(ctx, f.studentID, models.StudentPatch{})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("touches only supplied fields", func(t *testing.T) {
		ok, err := store.UpdateStudent(ctx, f.studentID, models.StudentPatch{
			EducationLevel: strPtr("bachillerato"),
			BirthDate:      strPtr("2010-05-04"),
		})
		require.NoError(t, err)
		assert.True(t, ok)

		student, err := store.GetStudent(ctx, f.studentID)
		require.NoError(t, err)
		assert.Equal(t, "bachillerato", student.EducationLevel)
		assert.Equal(t, "2010-05-04", student.BirthDate)
		assert.Equal(t, 14, student.Age)
		assert.Equal(t, "ana@example.com", student.Email)
	})

	t.Run("bad birth date", func(t *testing.T) {
		_, err := store.UpdateStudent(ctx, f.studentID, models.StudentPatch{BirthDate: strPtr("04/05/2010")})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("duplicate email is a constraint violation", func(t *testing.T) {
		other, err := store.CreateStudent(ctx, "Beto", "Ruiz", "beto@example.com", 12, "primaria", models.StudentOptions{})
		require.NoError(t, err)
		_, err = store.UpdateStudent(ctx, other, models.StudentPatch{Email: strPtr("ana@example.com")})
		assert.ErrorIs(t, err, ErrConstraintViolation)
	})
}

func TestCreateStudentDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seed(t, store)

	_, err := store.CreateStudent(ctx, "Otra", "Ana", "ana@example.com", 15, "secundaria", models.StudentOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConstraintViolation)

	var serr ServiceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 409, serr.Status)
}

func TestCreateStudentValidation(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.CreateStudent(ctx, "", "Lopez", "x@example.com", 10, "primaria", models.StudentOptions{})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = store.CreateStudent(ctx, "Ana", "Lopez", " ", 10, "primaria", models.StudentOptions{})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = store.CreateStudent(ctx, "Ana", "Lopez", "x@example.com", 10, "primaria", models.StudentOptions{BirthDate: "yesterday"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListStudentsActiveFilter(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	names := []string{"Ana", "Beto", "Carla", "Dario"}
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		id, err := store.CreateStudent(ctx, name, "Test", name+"@example.com", 13, "secundaria", models.StudentOptions{})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	ok, err := store.DeactivateStudent(ctx, ids[1])
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = store.DeactivateStudent(ctx, ids[3])
	require.NoError(t, err)
	require.True(t, ok)

	active, err := store.ListStudents(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	for _, s := range active {
		assert.True(t, s.Active, s.FirstName)
	}

	inactive, err := store.ListStudents(ctx, false)
	require.NoError(t, err)
	require.Len(t, inactive, 2)
	for _, s := range inactive {
		assert.False(t, s.Active, s.FirstName)
	}
}

func TestListStudentsEmpty(t *testing.T) {
	store := newTestStore(t)
	students, err := store.ListStudents(context.Background(), true)
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
}

func TestStudentSummary(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	f := seed(t, store)

	createClass(t, store, f, "2025-03-03", "09:00", "10:30", models.ClassCompleted)
	createClass(t, store, f, "2025-03-10", "09:00", "10:00", models.ClassScheduled)
	_, err := store.AddGrade(ctx, models.NewGrade{StudentID: f.studentID, SubjectID: f.subjectID, EvaluationType: "exam", Score: 18, MaxScore: 20, EvaluationDate: "2025-03-05"}, models.GradeOptions{})
	require.NoError(t, err)
	_, err = store.AddGrade(ctx, models.NewGrade{StudentID: f.studentID, SubjectID: f.subjectID, EvaluationType: "quiz", Score: 7, MaxScore: 10, EvaluationDate: "2025-03-06"}, models.GradeOptions{})
	require.NoError(t, err)
	_, err = store.RollupStudentHours(ctx, f.studentID)
	require.NoError(t, err)

	summary, err := store.GetStudentSummary(ctx, f.studentID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", summary.FirstName)
	assert.Equal(t, 2, summary.TotalClasses)
	assert.Equal(t, 1, summary.CompletedClasses)
	assert.Equal(t, 1.5, summary.TotalHours)
	assert.Equal(t, 2, summary.TotalGrades)
	assert.InDelta(t, 80.0, summary.AveragePercentage, 1e-9)

	_, err = store.GetStudentSummary(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfessorsAndSubjects(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	f := seed(t, store)

	professor, err := store.GetProfessor(ctx, f.professorID)
	require.NoError(t, err)
	assert.Equal(t, "Matematicas", professor.Specialty)
	assert.Equal(t, "", professor.ProfilePhoto)

	_, err = store.GetProfessor(ctx, 77)
	assert.ErrorIs(t, err, ErrNotFound)

	professors, err := store.ListProfessors(ctx)
	require.NoError(t, err)
	assert.Len(t, professors, 1)

	_, err = store.CreateSubject(ctx, "Matematicas", models.SubjectOptions{})
	assert.ErrorIs(t, err, ErrConstraintViolation)

	_, err = store.CreateSubject(ctx, "Fisica", models.SubjectOptions{})
	require.NoError(t, err)
	subjects, err := store.ListSubjects(ctx)
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "Fisica", subjects[0].Name)
}

func TestCheckSchema(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.CheckSchema(ctx))

	_, err := store.db.Exec(`DROP VIEW student_summary_view`)
	require.NoError(t, err)
	err = store.CheckSchema(ctx)
	assert.ErrorIs(t, err, ErrSchema)

	_, err = store.GetStudentSummary(ctx, 1)
	assert.ErrorIs(t, err, ErrSchema)
}
