package services

import (
	"context"
	"sort"
	"strconv"

	"studybuddy-backend/internal/models"
)

type hoursKey struct {
	subjectID int64
	month     string
}

// RollupStudentHours recomputes the per subject, per month totals of
// completed classes for one student and replaces the stored rollup rows.
// Repeated runs over unchanged classes store identical totals.
func (s *RecordStore) RollupStudentHours(ctx context.Context, studentID int64) ([]models.HoursRollup, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storageError(err, "rollup hours")
	}
	defer tx.Rollback()

	classes := []struct {
		SubjectID int64   `db:"subject_id"`
		Date      string  `db:"date"`
		Duration  float64 `db:"duration_hours"`
	}{}
	if err := tx.SelectContext(ctx, &classes, tx.Rebind(`
SELECT subject_id, date, duration_hours
FROM classes
WHERE student_id = ? AND status = ?
ORDER BY date, id`), studentID, models.ClassCompleted); err != nil {
		return nil, storageError(err, "rollup hours")
	}

	totals := map[hoursKey]float64{}
	for _, class := range classes {
		if len(class.Date) < 7 {
			continue
		}
		key := hoursKey{subjectID: class.SubjectID, month: class.Date[:7]}
		totals[key] += class.Duration
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM student_hours WHERE student_id = ?`), studentID); err != nil {
		return nil, storageError(err, "rollup hours")
	}

	keys := make([]hoursKey, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].month != keys[j].month {
			return keys[i].month < keys[j].month
		}
		return keys[i].subjectID < keys[j].subjectID
	})

	now := s.now()
	rollups := make([]models.HoursRollup, 0, len(keys))
	for _, key := range keys {
		year, _ := strconv.Atoi(key.month[:4])
		row := models.HoursRollup{
			StudentID:  studentID,
			SubjectID:  key.subjectID,
			Month:      key.month,
			Year:       year,
			TotalHours: totals[key],
			UpdatedAt:  now,
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(`
INSERT INTO student_hours (student_id, subject_id, month, year, total_hours, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`), row.StudentID, row.SubjectID, row.Month, row.Year, row.TotalHours, row.UpdatedAt); err != nil {
			return nil, storageError(err, "rollup hours")
		}
		rollups = append(rollups, row)
	}

	if err := tx.Commit(); err != nil {
		return nil, storageError(err, "rollup hours")
	}
	s.log.Debug().Int64("student_id", studentID).Int("groups", len(rollups)).Msg("hours rolled up")
	return rollups, nil
}

func (s *RecordStore) ListStudentHours(ctx context.Context, studentID int64) ([]models.HoursRollup, error) {
	rows := []models.HoursRollup{}
	err := s.selectMany(ctx, &rows, "list student hours", `
SELECT student_id, subject_id, month, year, total_hours, updated_at
FROM student_hours
WHERE student_id = ?
ORDER BY month, subject_id`, studentID)
	return rows, err
}

// GetStudentTotalHours sums every rollup row of the student; 0 when none exist.
func (s *RecordStore) GetStudentTotalHours(ctx context.Context, studentID int64) (float64, error) {
	var total float64
	err := s.db.GetContext(ctx, &total, s.db.Rebind(`
SELECT COALESCE(SUM(total_hours), 0) FROM student_hours WHERE student_id = ?`), studentID)
	if err != nil {
		return 0, storageError(err, "get student total hours")
	}
	return total, nil
}
