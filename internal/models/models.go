package models

import "time"

const (
	ClassScheduled = "scheduled"
	ClassCompleted = "completed"
	ClassCancelled = "cancelled"

	ModalityInPerson = "in_person"
	ModalityVirtual  = "virtual"
)

type Student struct {
	ID             int64     `db:"id" json:"id"`
	FirstName      string    `db:"first_name" json:"firstName"`
	LastName       string    `db:"last_name" json:"lastName"`
	Email          string    `db:"email" json:"email"`
	Age            int       `db:"age" json:"age"`
	EducationLevel string    `db:"education_level" json:"educationLevel"`
	BirthDate      string    `db:"birth_date" json:"birthDate"`
	ProfilePhoto   string    `db:"profile_photo" json:"profilePhoto"`
	Active         bool      `db:"active" json:"active"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

type StudentOptions struct {
	BirthDate    string
	ProfilePhoto string
}

// StudentPatch updates exactly the non-nil fields.
type StudentPatch struct {
	FirstName      *string
	LastName       *string
	Email          *string
	Age            *int
	EducationLevel *string
	BirthDate      *string
	ProfilePhoto   *string
	Active         *bool
}

type Professor struct {
	ID           int64     `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"firstName"`
	LastName     string    `db:"last_name" json:"lastName"`
	Email        string    `db:"email" json:"email"`
	Specialty    string    `db:"specialty" json:"specialty"`
	ProfilePhoto string    `db:"profile_photo" json:"profilePhoto"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

type ProfessorOptions struct {
	Specialty    string
	ProfilePhoto string
}

type Subject struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Level       string    `db:"level" json:"level"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

type SubjectOptions struct {
	Description string
	Level       string
}

type Class struct {
	ID            int64     `db:"id" json:"id"`
	SubjectID     int64     `db:"subject_id" json:"subjectId"`
	ProfessorID   int64     `db:"professor_id" json:"professorId"`
	StudentID     int64     `db:"student_id" json:"studentId"`
	Date          string    `db:"date" json:"date"`
	StartTime     string    `db:"start_time" json:"startTime"`
	EndTime       string    `db:"end_time" json:"endTime"`
	DurationHours float64   `db:"duration_hours" json:"durationHours"`
	Modality      string    `db:"modality" json:"modality"`
	Address       string    `db:"address" json:"address"`
	VirtualLink   string    `db:"virtual_link" json:"virtualLink"`
	Status        string    `db:"status" json:"status"`
	Notes         string    `db:"notes" json:"notes"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// NewClass carries the required fields of a class. Duration is derived.
type NewClass struct {
	SubjectID   int64
	ProfessorID int64
	StudentID   int64
	Date        string
	StartTime   string
	EndTime     string
	Modality    string
}

type ClassOptions struct {
	Address     string
	VirtualLink string
	Status      string // defaults to scheduled
	Notes       string
}

type Grade struct {
	ID             int64     `db:"id" json:"id"`
	StudentID      int64     `db:"student_id" json:"studentId"`
	SubjectID      int64     `db:"subject_id" json:"subjectId"`
	EvaluationType string    `db:"evaluation_type" json:"evaluationType"`
	Title          string    `db:"title" json:"title"`
	Score          float64   `db:"score" json:"score"`
	MaxScore       float64   `db:"max_score" json:"maxScore"`
	Percentage     float64   `db:"percentage" json:"percentage"`
	EvaluationDate string    `db:"evaluation_date" json:"evaluationDate"`
	Term           string    `db:"term" json:"term"`
	Comments       string    `db:"comments" json:"comments"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

// NewGrade carries the raw score; the percentage is derived.
type NewGrade struct {
	StudentID      int64
	SubjectID      int64
	EvaluationType string
	Score          float64
	MaxScore       float64
	EvaluationDate string
}

type GradeOptions struct {
	Title    string
	Term     string
	Comments string
}

type MetricSnapshot struct {
	ID                    int64     `db:"id" json:"id"`
	StudentID             int64     `db:"student_id" json:"studentId"`
	Date                  string    `db:"date" json:"date"`
	Autonomy              float64   `db:"autonomy_pct" json:"autonomy"`
	Fluency               float64   `db:"fluency_pct" json:"fluency"`
	Resilience            float64   `db:"resilience_pct" json:"resilience"`
	StreakDays            int       `db:"streak_days" json:"streakDays"`
	HelpRequests          int       `db:"help_requests" json:"helpRequests"`
	ResponseSpeed         float64   `db:"response_speed_seconds" json:"responseSpeedSeconds"`
	Precision             float64   `db:"precision_pct" json:"precision"`
	AttemptsBeforeSuccess int       `db:"attempts_before_success" json:"attemptsBeforeSuccess"`
	SessionMinutes        int       `db:"session_minutes" json:"sessionMinutes"`
	ExercisesCompleted    int       `db:"exercises_completed" json:"exercisesCompleted"`
	CreatedAt             time.Time `db:"created_at" json:"createdAt"`
}

type NewMetricSnapshot struct {
	StudentID  int64
	Date       string
	Autonomy   float64
	Fluency    float64
	Resilience float64
	StreakDays int
}

// MetricOptions default to zero when omitted.
type MetricOptions struct {
	HelpRequests          int
	ResponseSpeed         float64
	Precision             float64
	AttemptsBeforeSuccess int
	SessionMinutes        int
	ExercisesCompleted    int
}

type ClassReport struct {
	ID                 int64     `db:"id" json:"id"`
	ClassID            int64     `db:"class_id" json:"classId"`
	ProfessorID        int64     `db:"professor_id" json:"professorId"`
	StudentID          int64     `db:"student_id" json:"studentId"`
	TopicCovered       string    `db:"topic_covered" json:"topicCovered"`
	StudentPerformance string    `db:"student_performance" json:"studentPerformance"`
	ObjectivesMet      string    `db:"objectives_met" json:"objectivesMet"`
	ImprovementAreas   string    `db:"improvement_areas" json:"improvementAreas"`
	AssignedTasks      string    `db:"assigned_tasks" json:"assignedTasks"`
	Observations       string    `db:"observations" json:"observations"`
	ReportedAt         time.Time `db:"reported_at" json:"reportedAt"`
}

// StudentReport is a class report joined with its professor and class date.
type StudentReport struct {
	ClassReport
	ProfessorName string `db:"professor_name" json:"professorName"`
	ClassDate     string `db:"class_date" json:"classDate"`
}

type NewClassReport struct {
	ClassID            int64
	ProfessorID        int64
	StudentID          int64
	TopicCovered       string
	StudentPerformance string
}

type ReportOptions struct {
	ObjectivesMet    string
	ImprovementAreas string
	AssignedTasks    string
	Observations     string
}

type MetacognitionEntry struct {
	ID                  int64     `db:"id" json:"id"`
	StudentID           int64     `db:"student_id" json:"studentId"`
	ClassID             *int64    `db:"class_id" json:"classId"`
	Date                string    `db:"date" json:"date"`
	Comprehension       int       `db:"comprehension" json:"comprehension"`
	PerceivedDifficulty int       `db:"perceived_difficulty" json:"perceivedDifficulty"`
	Confidence          int       `db:"confidence" json:"confidence"`
	WhatILearned        string    `db:"what_i_learned" json:"whatILearned"`
	WhatWasHard         string    `db:"what_was_hard" json:"whatWasHard"`
	StrategiesUsed      string    `db:"strategies_used" json:"strategiesUsed"`
	HowToImprove        string    `db:"how_to_improve" json:"howToImprove"`
	Mood                string    `db:"mood" json:"mood"`
	StressLevel         int       `db:"stress_level" json:"stressLevel"`
	StudyHours          float64   `db:"study_hours" json:"studyHours"`
	PerceivedEffort     int       `db:"perceived_effort" json:"perceivedEffort"`
	CreatedAt           time.Time `db:"created_at" json:"createdAt"`
}

type NewMetacognition struct {
	StudentID           int64
	Date                string
	Comprehension       int
	PerceivedDifficulty int
	Confidence          int
}

// MetacognitionOptions: StressLevel and PerceivedEffort default to 3 when nil.
type MetacognitionOptions struct {
	WhatILearned    string
	WhatWasHard     string
	StrategiesUsed  string
	HowToImprove    string
	Mood            string
	StressLevel     *int
	StudyHours      float64
	PerceivedEffort *int
	ClassID         *int64
}

type HoursRollup struct {
	StudentID  int64     `db:"student_id" json:"studentId"`
	SubjectID  int64     `db:"subject_id" json:"subjectId"`
	Month      string    `db:"month" json:"month"`
	Year       int       `db:"year" json:"year"`
	TotalHours float64   `db:"total_hours" json:"totalHours"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

type CalendarEntry struct {
	ClassID       int64   `db:"class_id" json:"classId"`
	StudentID     int64   `db:"student_id" json:"studentId"`
	Date          string  `db:"date" json:"date"`
	StartTime     string  `db:"start_time" json:"startTime"`
	EndTime       string  `db:"end_time" json:"endTime"`
	DurationHours float64 `db:"duration_hours" json:"durationHours"`
	Modality      string  `db:"modality" json:"modality"`
	Address       string  `db:"address" json:"address"`
	VirtualLink   string  `db:"virtual_link" json:"virtualLink"`
	Status        string  `db:"status" json:"status"`
	Subject       string  `db:"subject" json:"subject"`
	Professor     string  `db:"professor" json:"professor"`
	Student       string  `db:"student" json:"student"`
}

type StudentSummary struct {
	ID                int64   `db:"id" json:"id"`
	FirstName         string  `db:"first_name" json:"firstName"`
	LastName          string  `db:"last_name" json:"lastName"`
	Email             string  `db:"email" json:"email"`
	EducationLevel    string  `db:"education_level" json:"educationLevel"`
	Active            bool    `db:"active" json:"active"`
	TotalClasses      int     `db:"total_classes" json:"totalClasses"`
	CompletedClasses  int     `db:"completed_classes" json:"completedClasses"`
	TotalHours        float64 `db:"total_hours" json:"totalHours"`
	AveragePercentage float64 `db:"average_percentage" json:"averagePercentage"`
	TotalGrades       int     `db:"total_grades" json:"totalGrades"`
}
