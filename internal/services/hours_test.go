package services

import (
	"context"
	"testing"

	"studybuddy-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollupStudentHours(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	f := seed(t, store)
	physics, err := store.CreateSubject(ctx, "Fisica", models.SubjectOptions{})
	require.NoError(t, err)
	physicsClass := fixture{studentID: f.studentID, professorID: f.professorID, subjectID: physics}

	createClass(t, store, f, "2025-03-03", "09:00", "10:30", models.ClassCompleted)
	createClass(t, store, f, "2025-03-17", "09:00", "10:00", models.ClassCompleted)
	createClass(t, store, f, "2025-04-02", "09:00", "09:45", models.ClassCompleted)
	createClass(t, store, f, "2025-04-09", "09:00", "11:00", models.ClassScheduled)
	createClass(t, store, f, "2025-04-10", "09:00", "11:00", models.ClassCancelled)
	createClass(t, store, physicsClass, "2025-03-20", "14:00", "16:00", models.ClassCompleted)

	rollups, err := store.RollupStudentHours(ctx, f.studentID)
	require.NoError(t, err)
	require.Len(t, rollups, 3)

	stored, err := store.ListStudentHours(ctx, f.studentID)
	require.NoError(t, err)
	require.Len(t, stored, 3)

	totals := map[string]float64{}
	for _, row := range stored {
		key := row.Month
		if row.SubjectID == physics {
			key += "/fisica"
		}
		totals[key] = row.TotalHours
		assert.Equal(t, 2025, row.Year)
	}
	assert.Equal(t, map[string]float64{
		"2025-03":        2.5,
		"2025-03/fisica": 2,
		"2025-04":        0.75,
	}, totals)

	total, err := store.GetStudentTotalHours(ctx, f.studentID)
	require.NoError(t, err)
	assert.Equal(t, 5.25, total)
}

func TestRollupStudentHoursIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	f := seed(t, store)

	createClass(t, store, f, "2025-03-03", "09:00", "10:30", models.ClassCompleted)
	createClass(t, store, f, "2025-03-04", "09:00", "10:20", models.ClassCompleted)

	_, err := store.RollupStudentHours(ctx, f.studentID)
	require.NoError(t, err)
	first, err := store.ListStudentHours(ctx, f.studentID)
	require.NoError(t, err)

	_, err = store.RollupStudentHours(ctx, f.studentID)
	require.NoError(t, err)
	second, err := store.ListStudentHours(ctx, f.studentID)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].SubjectID, second[i].SubjectID)
		assert.Equal(t, first[i].Month, second[i].Month)
		assert.Equal(t, first[i].TotalHours, second[i].TotalHours)
	}
}

func TestRollupStudentHoursDropsStaleGroups(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	f := seed(t, store)

	id := createClass(t, store, f, "2025-05-05", "10:00", "11:00", models.ClassCompleted)
	_, err := store.RollupStudentHours(ctx, f.studentID)
	require.NoError(t, err)

	_, err = store.SetClassStatus(ctx, id, models.ClassCancelled)
	require.NoError(t, err)
	rollups, err := store.RollupStudentHours(ctx, f.studentID)
	require.NoError(t, err)
	assert.Empty(t, rollups)

	total, err := store.GetStudentTotalHours(ctx, f.studentID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestRollupLeavesOtherStudentsAlone(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	f := seed(t, store)
	otherID, err := store.CreateStudent(ctx, "Beto", "Ruiz", "beto@example.com", 12, "primaria", models.StudentOptions{})
	require.NoError(t, err)
	other := fixture{studentID: otherID, professorID: f.professorID, subjectID: f.subjectID}

	createClass(t, store, f, "2025-03-03", "09:00", "10:00", models.ClassCompleted)
	createClass(t, store, other, "2025-03-03", "11:00", "13:00", models.ClassCompleted)

	_, err = store.RollupStudentHours(ctx, otherID)
	require.NoError(t, err)
	_, err = store.RollupStudentHours(ctx, f.studentID)
	require.NoError(t, err)

	total, err := store.GetStudentTotalHours(ctx, otherID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, total)
}
