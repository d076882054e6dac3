package services

import (
	"context"
	"strings"

	"studybuddy-backend/internal/models"

	"github.com/jmoiron/sqlx"
)

const insertGrade = `
INSERT INTO grades (student_id, subject_id, evaluation_type, title, score, max_score,
                    percentage, evaluation_date, term, comments, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// AddGrade stores a grade with its percentage computed from score and maximum.
func (s *RecordStore) AddGrade(ctx context.Context, grade models.NewGrade, opts models.GradeOptions) (int64, error) {
	args, err := s.gradeArgs(grade, opts)
	if err != nil {
		return 0, err
	}
	return s.insert(ctx, "add grade", insertGrade, args...)
}

func (s *RecordStore) gradeArgs(grade models.NewGrade, opts models.GradeOptions) ([]interface{}, error) {
	if strings.TrimSpace(grade.EvaluationType) == "" {
		return nil, Validation("evaluation type is required")
	}
	evaluationDate, err := normalizeDate(grade.EvaluationDate)
	if err != nil {
		return nil, err
	}
	percentage, err := GradePercentage(grade.Score, grade.MaxScore)
	if err != nil {
		return nil, err
	}
	return []interface{}{
		grade.StudentID, grade.SubjectID, strings.TrimSpace(grade.EvaluationType), opts.Title,
		grade.Score, grade.MaxScore, percentage, evaluationDate,
		opts.Term, opts.Comments, s.now(),
	}, nil
}

// GetStudentGrades lists grades newest evaluation first. subjectID 0 means
// every subject.
func (s *RecordStore) GetStudentGrades(ctx context.Context, studentID, subjectID int64) ([]models.Grade, error) {
	query := `
SELECT id, student_id, subject_id, evaluation_type, title, score, max_score, percentage,
       evaluation_date, term, comments, created_at
FROM grades
WHERE student_id = ?`
	args := []interface{}{studentID}
	if subjectID != 0 {
		query += ` AND subject_id = ?`
		args = append(args, subjectID)
	}
	query += ` ORDER BY evaluation_date DESC, id DESC`

	grades := []models.Grade{}
	err := s.selectMany(ctx, &grades, "get student grades", query, args...)
	return grades, err
}

func (s *RecordStore) insertGrades(ctx context.Context, rows [][]interface{}) ([]int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storageError(err, "import grades")
	}
	defer tx.Rollback()

	ids := make([]int64, 0, len(rows))
	stmt, err := tx.PreparexContext(ctx, tx.Rebind(insertGrade+` RETURNING id`))
	if err != nil {
		return nil, storageError(err, "import grades")
	}
	defer stmt.Close()
	for _, args := range rows {
		id, err := scanID(ctx, stmt, args)
		if err != nil {
			return nil, storageError(err, "import grades")
		}
		ids = append(ids, id)
	}
	if err := tx.Commit(); err != nil {
		return nil, storageError(err, "import grades")
	}
	return ids, nil
}

func scanID(ctx context.Context, stmt *sqlx.Stmt, args []interface{}) (int64, error) {
	var id int64
	err := stmt.QueryRowxContext(ctx, args...).Scan(&id)
	return id, err
}
