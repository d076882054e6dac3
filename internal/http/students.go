package httpapi

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"studybuddy-backend/internal/models"
)

func (s *Server) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req CreateStudentRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	id, err := s.Store.CreateStudent(r.Context(), req.FirstName, req.LastName, req.Email, req.Age, req.EducationLevel, models.StudentOptions{
		BirthDate:    req.BirthDate,
		ProfilePhoto: req.ProfilePhoto,
	})
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

// ListStudents defaults to active students; ?active=false lists the inactive ones.
func (s *Server) ListStudents(w http.ResponseWriter, r *http.Request) {
	active := true
	if value := r.URL.Query().Get("active"); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid active flag")
			return
		}
		active = parsed
	}
	students, err := s.Store.ListStudents(r.Context(), active)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, students)
}

func (s *Server) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "studentId")
	if !ok {
		return
	}
	student, err := s.Store.GetStudent(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, student)
}

func (s *Server) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "studentId")
	if !ok {
		return
	}
	var req UpdateStudentRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	updated, err := s.Store.UpdateStudent(r.Context(), id, models.StudentPatch{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Age:            req.Age,
		EducationLevel: req.EducationLevel,
		BirthDate:      req.BirthDate,
		ProfilePhoto:   req.ProfilePhoto,
		Active:         req.Active,
	})
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if !updated {
		WriteError(w, http.StatusNotFound, "student not found")
		return
	}
	WriteJSON(w, http.StatusOK, UpdatedResponse{Updated: true})
}

func (s *Server) DeactivateStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "studentId")
	if !ok {
		return
	}
	updated, err := s.Store.DeactivateStudent(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if !updated {
		WriteError(w, http.StatusNotFound, "student not found")
		return
	}
	WriteJSON(w, http.StatusOK, UpdatedResponse{Updated: true})
}

func (s *Server) StudentSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "studentId")
	if !ok {
		return
	}
	summary, err := s.Store.GetStudentSummary(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

func (s *Server) StudentSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "studentId")
	if !ok {
		return
	}
	query := r.URL.Query()
	entries, err := s.Store.GetStudentSchedule(r.Context(), id, query.Get("from"), query.Get("to"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, entries)
}

func (s *Server) StudentGrades(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "studentId")
	if !ok {
		return
	}
	var subjectID int64
	if value := r.URL.Query().Get("subject_id"); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil || parsed <= 0 {
			WriteError(w, http.StatusBadRequest, "Invalid subject_id")
			return
		}
		subjectID = parsed
	}
	grades, err := s.Store.GetStudentGrades(r.Context(), id, subjectID)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, grades)
}

// ImportGrades accepts an xlsx workbook either as the multipart field
// "file" or as the raw request body.
func (s *Server) ImportGrades(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "studentId")
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.Config.MaxUploadBytes)

	var body io.Reader = r.Body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(s.Config.MaxUploadBytes); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid multipart payload")
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			WriteError(w, http.StatusBadRequest, "No file part")
			return
		}
		defer file.Close()
		body = file
	}
	data, err := io.ReadAll(body)
	if err != nil || len(data) == 0 {
		WriteError(w, http.StatusBadRequest, "Empty workbook")
		return
	}
	ids, err := s.Store.ImportGrades(r.Context(), id, data)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]interface{}{"imported": len(ids), "ids": ids})
}

func (s *Server) StudentReports(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "studentId")
	if !ok {
		return
	}
	limit := parseInt(r.URL.Query().Get("limit"), 10)
	reports, err := s.Store.GetStudentReports(r.Context(), id, limit)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, reports)
}

func (s *Server) LatestMetrics(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "studentId")
	if !ok {
		return
	}
	snapshot, err := s.Store.GetLatestMetrics(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, snapshot)
}

func (s *Server) RollupHours(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "studentId")
	if !ok {
		return
	}
	rollups, err := s.Store.RollupStudentHours(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, rollups)
}

func (s *Server) StudentHours(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "studentId")
	if !ok {
		return
	}
	rows, err := s.Store.ListStudentHours(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	total, err := s.Store.GetStudentTotalHours(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"months": rows, "totalHours": total})
}
