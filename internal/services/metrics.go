package services

import (
	"context"

	"studybuddy-backend/internal/models"
)

// SaveMetrics stores a per-day metric snapshot. Omitted options are stored as 0.
func (s *RecordStore) SaveMetrics(ctx context.Context, snap models.NewMetricSnapshot, opts models.MetricOptions) (int64, error) {
	date, err := normalizeDate(snap.Date)
	if err != nil {
		return 0, err
	}
	return s.insert(ctx, "save metrics", `
INSERT INTO metric_snapshots (
  student_id, date, autonomy_pct, fluency_pct, resilience_pct, streak_days,
  help_requests, response_speed_seconds, precision_pct, attempts_before_success,
  session_minutes, exercises_completed, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.StudentID, date, snap.Autonomy, snap.Fluency, snap.Resilience, snap.StreakDays,
		opts.HelpRequests, opts.ResponseSpeed, opts.Precision, opts.AttemptsBeforeSuccess,
		opts.SessionMinutes, opts.ExercisesCompleted, s.now())
}

func (s *RecordStore) GetLatestMetrics(ctx context.Context, studentID int64) (*models.MetricSnapshot, error) {
	var snap models.MetricSnapshot
	if err := s.getOne(ctx, &snap, "get latest metrics", "no metrics for student", `
SELECT id, student_id, date, autonomy_pct, fluency_pct, resilience_pct, streak_days,
       help_requests, response_speed_seconds, precision_pct, attempts_before_success,
       session_minutes, exercises_completed, created_at
FROM metric_snapshots
WHERE student_id = ?
ORDER BY date DESC, id DESC
LIMIT 1`, studentID); err != nil {
		return nil, err
	}
	return &snap, nil
}
