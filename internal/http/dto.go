package httpapi

import "studybuddy-backend/internal/services"

type CreateStudentRequest struct {
	FirstName      string `json:"firstName" validate:"required"`
	LastName       string `json:"lastName" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Age            int    `json:"age" validate:"gte=0,lte=120"`
	EducationLevel string `json:"educationLevel" validate:"required"`
	BirthDate      string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	ProfilePhoto   string `json:"profilePhoto"`
}

type UpdateStudentRequest struct {
	FirstName      *string `json:"firstName" validate:"omitempty,min=1"`
	LastName       *string `json:"lastName" validate:"omitempty,min=1"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Age            *int    `json:"age" validate:"omitempty,gte=0,lte=120"`
	EducationLevel *string `json:"educationLevel"`
	BirthDate      *string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	ProfilePhoto   *string `json:"profilePhoto"`
	Active         *bool   `json:"active"`
}

type CreateProfessorRequest struct {
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Specialty    string `json:"specialty"`
	ProfilePhoto string `json:"profilePhoto"`
}

type CreateSubjectRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Level       string `json:"level"`
}

type CreateClassRequest struct {
	SubjectID   int64  `json:"subjectId" validate:"required,gt=0"`
	ProfessorID int64  `json:"professorId" validate:"required,gt=0"`
	StudentID   int64  `json:"studentId" validate:"required,gt=0"`
	Date        string `json:"date" validate:"required"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
	Modality    string `json:"modality" validate:"required,oneof=in_person virtual"`
	Address     string `json:"address"`
	VirtualLink string `json:"virtualLink" validate:"omitempty,url"`
	Status      string `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
	Notes       string `json:"notes"`
}

type ClassStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled completed cancelled"`
}

type AddGradeRequest struct {
	StudentID      int64   `json:"studentId" validate:"required,gt=0"`
	SubjectID      int64   `json:"subjectId" validate:"required,gt=0"`
	EvaluationType string  `json:"evaluationType" validate:"required"`
	Title          string  `json:"title"`
	Score          float64 `json:"score"`
	MaxScore       float64 `json:"maxScore"`
	EvaluationDate string  `json:"evaluationDate" validate:"required"`
	Term           string  `json:"term"`
	Comments       string  `json:"comments"`
}

type SaveMetricsRequest struct {
	StudentID             int64   `json:"studentId" validate:"required,gt=0"`
	Date                  string  `json:"date" validate:"required"`
	Autonomy              float64 `json:"autonomy" validate:"gte=0,lte=100"`
	Fluency               float64 `json:"fluency" validate:"gte=0,lte=100"`
	Resilience            float64 `json:"resilience" validate:"gte=0,lte=100"`
	StreakDays            int     `json:"streakDays" validate:"gte=0"`
	HelpRequests          int     `json:"helpRequests" validate:"gte=0"`
	ResponseSpeed         float64 `json:"responseSpeedSeconds" validate:"gte=0"`
	Precision             float64 `json:"precision" validate:"gte=0,lte=100"`
	AttemptsBeforeSuccess int     `json:"attemptsBeforeSuccess" validate:"gte=0"`
	SessionMinutes        int     `json:"sessionMinutes" validate:"gte=0"`
	ExercisesCompleted    int     `json:"exercisesCompleted" validate:"gte=0"`
}

type CreateReportRequest struct {
	ClassID            int64  `json:"classId" validate:"required,gt=0"`
	ProfessorID        int64  `json:"professorId" validate:"required,gt=0"`
	StudentID          int64  `json:"studentId" validate:"required,gt=0"`
	TopicCovered       string `json:"topicCovered" validate:"required"`
	StudentPerformance string `json:"studentPerformance" validate:"required"`
	ObjectivesMet      string `json:"objectivesMet"`
	ImprovementAreas   string `json:"improvementAreas"`
	AssignedTasks      string `json:"assignedTasks"`
	Observations       string `json:"observations"`
}

type SaveMetacognitionRequest struct {
	StudentID           int64   `json:"studentId" validate:"required,gt=0"`
	Date                string  `json:"date" validate:"required"`
	Comprehension       int     `json:"comprehension" validate:"gte=0"`
	PerceivedDifficulty int     `json:"perceivedDifficulty" validate:"gte=0"`
	Confidence          int     `json:"confidence" validate:"gte=0"`
	WhatILearned        string  `json:"whatILearned"`
	WhatWasHard         string  `json:"whatWasHard"`
	StrategiesUsed      string  `json:"strategiesUsed"`
	HowToImprove        string  `json:"howToImprove"`
	Mood                string  `json:"mood"`
	StressLevel         *int    `json:"stressLevel" validate:"omitempty,gte=0"`
	StudyHours          float64 `json:"studyHours" validate:"gte=0"`
	PerceivedEffort     *int    `json:"perceivedEffort" validate:"omitempty,gte=0"`
	ClassID             *int64  `json:"classId" validate:"omitempty,gt=0"`
}

type FileListResponse struct {
	Files []services.UploadedFile `json:"files"`
	Total int                     `json:"total"`
}

type UploadResponse struct {
	Message string                `json:"message"`
	File    services.UploadedFile `json:"file"`
}

type DeleteFileResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
}
