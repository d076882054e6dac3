package services

import (
	"context"
	"strings"

	"studybuddy-backend/internal/models"
)

const professorColumns = `id, first_name, last_name, email, specialty, profile_photo, active, created_at`

func (s *RecordStore) CreateProfessor(ctx context.Context, firstName, lastName, email string, opts models.ProfessorOptions) (int64, error) {
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return 0, Validation("first and last name are required")
	}
	if strings.TrimSpace(email) == "" {
		return 0, Validation("email is required")
	}
	return s.insert(ctx, "create professor", `
INSERT INTO professors (first_name, last_name, email, specialty, profile_photo, active, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		strings.TrimSpace(firstName), strings.TrimSpace(lastName), strings.TrimSpace(email),
		strings.TrimSpace(opts.Specialty), opts.ProfilePhoto, true, s.now())
}

func (s *RecordStore) GetProfessor(ctx context.Context, id int64) (*models.Professor, error) {
	var professor models.Professor
	if err := s.getOne(ctx, &professor, "get professor", "professor not found",
		`SELECT `+professorColumns+` FROM professors WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &professor, nil
}

func (s *RecordStore) ListProfessors(ctx context.Context) ([]models.Professor, error) {
	professors := []models.Professor{}
	err := s.selectMany(ctx, &professors, "list professors",
		`SELECT `+professorColumns+` FROM professors WHERE active = ? ORDER BY last_name, first_name, id`, true)
	return professors, err
}

func (s *RecordStore) CreateSubject(ctx context.Context, name string, opts models.SubjectOptions) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, Validation("subject name is required")
	}
	return s.insert(ctx, "create subject", `
INSERT INTO subjects (name, description, level, created_at)
VALUES (?, ?, ?, ?)`,
		strings.TrimSpace(name), opts.Description, strings.TrimSpace(opts.Level), s.now())
}

func (s *RecordStore) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	subjects := []models.Subject{}
	err := s.selectMany(ctx, &subjects, "list subjects",
		`SELECT id, name, description, level, created_at FROM subjects ORDER BY name`)
	return subjects, err
}
