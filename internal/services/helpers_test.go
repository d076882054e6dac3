package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"studybuddy-backend/internal/db"
	"studybuddy-backend/internal/migrations"
	"studybuddy-backend/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *RecordStore {
	t.Helper()
	handle, err := db.Open("sqlite://" + filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = handle.Close() })
	require.NoError(t, migrations.Apply(context.Background(), handle))

	store := NewRecordStore(handle, zerolog.Nop())
	store.now = steppingClock(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC), time.Second)
	return store
}

// steppingClock returns a clock that advances by step on every call.
func steppingClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := current
		current = current.Add(step)
		return now
	}
}

type fixture struct {
	studentID   int64
	professorID int64
	subjectID   int64
}

func seed(t *testing.T, store *RecordStore) fixture {
	t.Helper()
	ctx := context.Background()
	studentID, err := store.CreateStudent(ctx, "Ana", "Lopez", "ana@example.com", 14, "secundaria", models.StudentOptions{})
	require.NoError(t, err)
	professorID, err := store.CreateProfessor(ctx, "Luis", "Perez", "luis@example.com", models.ProfessorOptions{Specialty: "Matematicas"})
	require.NoError(t, err)
	subjectID, err := store.CreateSubject(ctx, "Matematicas", models.SubjectOptions{Level: "secundaria"})
	require.NoError(t, err)
	return fixture{studentID: studentID, professorID: professorID, subjectID: subjectID}
}

func createClass(t *testing.T, store *RecordStore, f fixture, date, start, end, status string) int64 {
	t.Helper()
	id, err := store.CreateClass(context.Background(), models.NewClass{
		SubjectID:   f.subjectID,
		ProfessorID: f.professorID,
		StudentID:   f.studentID,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		Modality:    models.ModalityVirtual,
	}, models.ClassOptions{Status: status, VirtualLink: "https://meet.example.com/x"})
	require.NoError(t, err)
	return id
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
