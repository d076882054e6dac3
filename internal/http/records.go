package httpapi

import (
	"net/http"

	"studybuddy-backend/internal/models"
)

func (s *Server) CreateProfessor(w http.ResponseWriter, r *http.Request) {
	var req CreateProfessorRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	id, err := s.Store.CreateProfessor(r.Context(), req.FirstName, req.LastName, req.Email, models.ProfessorOptions{
		Specialty:    req.Specialty,
		ProfilePhoto: req.ProfilePhoto,
	})
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

func (s *Server) ListProfessors(w http.ResponseWriter, r *http.Request) {
	professors, err := s.Store.ListProfessors(r.Context())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, professors)
}

func (s *Server) GetProfessor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "professorId")
	if !ok {
		return
	}
	professor, err := s.Store.GetProfessor(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, professor)
}

func (s *Server) CreateSubject(w http.ResponseWriter, r *http.Request) {
	var req CreateSubjectRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	id, err := s.Store.CreateSubject(r.Context(), req.Name, models.SubjectOptions{
		Description: req.Description,
		Level:       req.Level,
	})
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

func (s *Server) ListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := s.Store.ListSubjects(r.Context())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, subjects)
}

func (s *Server) CreateClass(w http.ResponseWriter, r *http.Request) {
	var req CreateClassRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	id, err := s.Store.CreateClass(r.Context(), models.NewClass{
		SubjectID:   req.SubjectID,
		ProfessorID: req.ProfessorID,
		StudentID:   req.StudentID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Modality:    req.Modality,
	}, models.ClassOptions{
		Address:     req.Address,
		VirtualLink: req.VirtualLink,
		Status:      req.Status,
		Notes:       req.Notes,
	})
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

func (s *Server) GetClass(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "classId")
	if !ok {
		return
	}
	class, err := s.Store.GetClass(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, class)
}

func (s *Server) SetClassStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "classId")
	if !ok {
		return
	}
	var req ClassStatusRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	updated, err := s.Store.SetClassStatus(r.Context(), id, req.Status)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if !updated {
		WriteError(w, http.StatusNotFound, "class not found")
		return
	}
	WriteJSON(w, http.StatusOK, UpdatedResponse{Updated: true})
}

func (s *Server) AddGrade(w http.ResponseWriter, r *http.Request) {
	var req AddGradeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	id, err := s.Store.AddGrade(r.Context(), models.NewGrade{
		StudentID:      req.StudentID,
		SubjectID:      req.SubjectID,
		EvaluationType: req.EvaluationType,
		Score:          req.Score,
		MaxScore:       req.MaxScore,
		EvaluationDate: req.EvaluationDate,
	}, models.GradeOptions{
		Title:    req.Title,
		Term:     req.Term,
		Comments: req.Comments,
	})
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

func (s *Server) SaveMetrics(w http.ResponseWriter, r *http.Request) {
	var req SaveMetricsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	id, err := s.Store.SaveMetrics(r.Context(), models.NewMetricSnapshot{
		StudentID:  req.StudentID,
		Date:       req.Date,
		Autonomy:   req.Autonomy,
		Fluency:    req.Fluency,
		Resilience: req.Resilience,
		StreakDays: req.StreakDays,
	}, models.MetricOptions{
		HelpRequests:          req.HelpRequests,
		ResponseSpeed:         req.ResponseSpeed,
		Precision:             req.Precision,
		AttemptsBeforeSuccess: req.AttemptsBeforeSuccess,
		SessionMinutes:        req.SessionMinutes,
		ExercisesCompleted:    req.ExercisesCompleted,
	})
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

func (s *Server) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req CreateReportRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	id, err := s.Store.CreateClassReport(r.Context(), models.NewClassReport{
		ClassID:            req.ClassID,
		ProfessorID:        req.ProfessorID,
		StudentID:          req.StudentID,
		TopicCovered:       req.TopicCovered,
		StudentPerformance: req.StudentPerformance,
	}, models.ReportOptions{
		ObjectivesMet:    req.ObjectivesMet,
		ImprovementAreas: req.ImprovementAreas,
		AssignedTasks:    req.AssignedTasks,
		Observations:     req.Observations,
	})
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

func (s *Server) SaveMetacognition(w http.ResponseWriter, r *http.Request) {
	var req SaveMetacognitionRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	id, err := s.Store.SaveMetacognition(r.Context(), models.NewMetacognition{
		StudentID:           req.StudentID,
		Date:                req.Date,
		Comprehension:       req.Comprehension,
		PerceivedDifficulty: req.PerceivedDifficulty,
		Confidence:          req.Confidence,
	}, models.MetacognitionOptions{
		WhatILearned:    req.WhatILearned,
		WhatWasHard:     req.WhatWasHard,
		StrategiesUsed:  req.StrategiesUsed,
		HowToImprove:    req.HowToImprove,
		Mood:            req.Mood,
		StressLevel:     req.StressLevel,
		StudyHours:      req.StudyHours,
		PerceivedEffort: req.PerceivedEffort,
		ClassID:         req.ClassID,
	})
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

func (s *Server) GetMetacognition(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "entryId")
	if !ok {
		return
	}
	entry, err := s.Store.GetMetacognition(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, entry)
}
