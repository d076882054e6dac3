package services

import (
	"context"
	"strings"

	"studybuddy-backend/internal/models"
)

const defaultReportLimit = 10

func (s *RecordStore) CreateClassReport(ctx context.Context, report models.NewClassReport, opts models.ReportOptions) (int64, error) {
	if strings.TrimSpace(report.TopicCovered) == "" {
		return 0, Validation("topic covered is required")
	}
	if strings.TrimSpace(report.StudentPerformance) == "" {
		return 0, Validation("student performance is required")
	}
	return s.insert(ctx, "create class report", `
INSERT INTO class_reports (
  class_id, professor_id, student_id, topic_covered, student_performance,
  objectives_met, improvement_areas, assigned_tasks, observations, reported_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ClassID, report.ProfessorID, report.StudentID, report.TopicCovered, report.StudentPerformance,
		opts.ObjectivesMet, opts.ImprovementAreas, opts.AssignedTasks, opts.Observations, s.now())
}

// GetStudentReports returns the newest reports first; limit <= 0 means 10.
func (s *RecordStore) GetStudentReports(ctx context.Context, studentID int64, limit int) ([]models.StudentReport, error) {
	if limit <= 0 {
		limit = defaultReportLimit
	}
	reports := []models.StudentReport{}
	err := s.selectMany(ctx, &reports, "get student reports", `
SELECT r.id, r.class_id, r.professor_id, r.student_id, r.topic_covered, r.student_performance,
       r.objectives_met, r.improvement_areas, r.assigned_tasks, r.observations, r.reported_at,
       p.first_name || ' ' || p.last_name AS professor_name,
       c.date AS class_date
FROM class_reports r
JOIN professors p ON r.professor_id = p.id
JOIN classes c ON r.class_id = c.id
WHERE r.student_id = ?
ORDER BY r.reported_at DESC, r.id DESC
LIMIT ?`, studentID, limit)
	return reports, err
}
