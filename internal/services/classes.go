package services

import (
	"context"
	"strings"

	"studybuddy-backend/internal/models"
)

var classStatuses = map[string]bool{
	models.ClassScheduled: true,
	models.ClassCompleted: true,
	models.ClassCancelled: true,
}

// CreateClass stores a session; duration_hours is derived from the clock times.
func (s *RecordStore) CreateClass(ctx context.Context, class models.NewClass, opts models.ClassOptions) (int64, error) {
	date, err := normalizeDate(class.Date)
	if err != nil {
		return 0, err
	}
	duration, err := ClassDuration(class.StartTime, class.EndTime)
	if err != nil {
		return 0, err
	}
	start, err := normalizeClock(class.StartTime)
	if err != nil {
		return 0, err
	}
	end, err := normalizeClock(class.EndTime)
	if err != nil {
		return 0, err
	}
	modality := strings.TrimSpace(class.Modality)
	if modality != models.ModalityInPerson && modality != models.ModalityVirtual {
		return 0, Validation("modality must be in_person or virtual")
	}
	status := opts.Status
	if status == "" {
		status = models.ClassScheduled
	}
	if !classStatuses[status] {
		return 0, Validation("unknown class status " + status)
	}
	return s.insert(ctx, "create class", `
INSERT INTO classes (subject_id, professor_id, student_id, date, start_time, end_time,
                     duration_hours, modality, address, virtual_link, status, notes, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		class.SubjectID, class.ProfessorID, class.StudentID, date, start, end, duration, modality,
		opts.Address, opts.VirtualLink, status, opts.Notes, s.now())
}

func (s *RecordStore) GetClass(ctx context.Context, id int64) (*models.Class, error) {
	var class models.Class
	if err := s.getOne(ctx, &class, "get class", "class not found", `
SELECT id, subject_id, professor_id, student_id, date, start_time, end_time, duration_hours,
       modality, address, virtual_link, status, notes, created_at
FROM classes WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &class, nil
}

// SetClassStatus moves a class between scheduled, completed and cancelled.
func (s *RecordStore) SetClassStatus(ctx context.Context, id int64, status string) (bool, error) {
	if !classStatuses[status] {
		return false, Validation("unknown class status " + status)
	}
	return s.exec(ctx, "set class status", `UPDATE classes SET status = ? WHERE id = ?`, status, id)
}

// GetStudentSchedule lists calendar entries of one student in [from, to].
func (s *RecordStore) GetStudentSchedule(ctx context.Context, studentID int64, from, to string) ([]models.CalendarEntry, error) {
	if _, err := parseDate(from); err != nil {
		return nil, err
	}
	if _, err := parseDate(to); err != nil {
		return nil, err
	}
	entries := []models.CalendarEntry{}
	err := s.selectMany(ctx, &entries, "get student schedule", `
SELECT class_id, student_id, date, start_time, end_time, duration_hours, modality,
       address, virtual_link, status, subject, professor, student
FROM calendar_view
WHERE student_id = ? AND date BETWEEN ? AND ?
ORDER BY date, start_time, class_id`, studentID, strings.TrimSpace(from), strings.TrimSpace(to))
	return entries, err
}
