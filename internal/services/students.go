package services

import (
	"context"
	"fmt"
	"strings"

	"studybuddy-backend/internal/models"
)

const studentColumns = `id, first_name, last_name, email, age, education_level, birth_date, profile_photo, active, created_at`

func (s *RecordStore) CreateStudent(ctx context.Context, firstName, lastName, email string, age int, level string, opts models.StudentOptions) (int64, error) {
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return 0, Validation("first and last name are required")
	}
	if strings.TrimSpace(email) == "" {
		return 0, Validation("email is required")
	}
	birthDate := strings.TrimSpace(opts.BirthDate)
	if birthDate != "" {
		normalized, err := normalizeDate(birthDate)
		if err != nil {
			return 0, err
		}
		birthDate = normalized
	}
	return s.insert(ctx, "create student", `
INSERT INTO students (first_name, last_name, email, age, education_level, birth_date, profile_photo, active, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		strings.TrimSpace(firstName), strings.TrimSpace(lastName), strings.TrimSpace(email), age,
		strings.TrimSpace(level), birthDate, opts.ProfilePhoto, true, s.now())
}

func (s *RecordStore) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	var student models.Student
	if err := s.getOne(ctx, &student, "get student", "student not found",
		`SELECT `+studentColumns+` FROM students WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// ListStudents returns the students whose active flag equals active.
func (s *RecordStore) ListStudents(ctx context.Context, active bool) ([]models.Student, error) {
	students := []models.Student{}
	err := s.selectMany(ctx, &students, "list students",
		`SELECT `+studentColumns+` FROM students WHERE active = ? ORDER BY last_name, first_name, id`, active)
	return students, err
}

// UpdateStudent applies the non-nil fields of patch. It reports false without
// an error when no student has the given id.
func (s *RecordStore) UpdateStudent(ctx context.Context, id int64, patch models.StudentPatch) (bool, error) {
	sets := []string{}
	args := []interface{}{}
	add := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if patch.FirstName != nil {
		add("first_name", strings.TrimSpace(*patch.FirstName))
	}
	if patch.LastName != nil {
		add("last_name", strings.TrimSpace(*patch.LastName))
	}
	if patch.Email != nil {
		add("email", strings.TrimSpace(*patch.Email))
	}
	if patch.Age != nil {
		add("age", *patch.Age)
	}
	if patch.EducationLevel != nil {
		add("education_level", strings.TrimSpace(*patch.EducationLevel))
	}
	if patch.BirthDate != nil {
		birthDate := strings.TrimSpace(*patch.BirthDate)
		if birthDate != "" {
			normalized, err := normalizeDate(birthDate)
			if err != nil {
				return false, err
			}
			birthDate = normalized
		}
		add("birth_date", birthDate)
	}
	if patch.ProfilePhoto != nil {
		add("profile_photo", *patch.ProfilePhoto)
	}
	if patch.Active != nil {
		add("active", *patch.Active)
	}
	if len(sets) == 0 {
		return false, Validation("no fields to update")
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE students SET %s WHERE id = ?`, strings.Join(sets, ", "))
	return s.exec(ctx, "update student", query, args...)
}

// DeactivateStudent hides a student from the default listing.
func (s *RecordStore) DeactivateStudent(ctx context.Context, id int64) (bool, error) {
	inactive := false
	return s.UpdateStudent(ctx, id, models.StudentPatch{Active: &inactive})
}

func (s *RecordStore) GetStudentSummary(ctx context.Context, id int64) (*models.StudentSummary, error) {
	var summary models.StudentSummary
	if err := s.getOne(ctx, &summary, "get student summary", "student not found", `
SELECT id, first_name, last_name, email, education_level, active, total_classes,
       completed_classes, total_hours, average_percentage, total_grades
FROM student_summary_view
WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &summary, nil
}
