package services

import (
	"context"

	"studybuddy-backend/internal/models"
)

const defaultScale = 3

func (s *RecordStore) SaveMetacognition(ctx context.Context, entry models.NewMetacognition, opts models.MetacognitionOptions) (int64, error) {
	date, err := normalizeDate(entry.Date)
	if err != nil {
		return 0, err
	}
	stress := defaultScale
	if opts.StressLevel != nil {
		stress = *opts.StressLevel
	}
	effort := defaultScale
	if opts.PerceivedEffort != nil {
		effort = *opts.PerceivedEffort
	}
	return s.insert(ctx, "save metacognition", `
INSERT INTO metacognition_entries (
  student_id, date, comprehension, perceived_difficulty, confidence,
  what_i_learned, what_was_hard, strategies_used, how_to_improve,
  mood, stress_level, study_hours, perceived_effort, class_id, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.StudentID, date, entry.Comprehension, entry.PerceivedDifficulty, entry.Confidence,
		opts.WhatILearned, opts.WhatWasHard, opts.StrategiesUsed, opts.HowToImprove,
		opts.Mood, stress, opts.StudyHours, effort, opts.ClassID, s.now())
}

func (s *RecordStore) GetMetacognition(ctx context.Context, id int64) (*models.MetacognitionEntry, error) {
	var entry models.MetacognitionEntry
	if err := s.getOne(ctx, &entry, "get metacognition", "metacognition entry not found", `
SELECT id, student_id, class_id, date, comprehension, perceived_difficulty, confidence,
       what_i_learned, what_was_hard, strategies_used, how_to_improve, mood,
       stress_level, study_hours, perceived_effort, created_at
FROM metacognition_entries WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &entry, nil
}
