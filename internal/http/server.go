package httpapi

import (
	"net/http"

	"studybuddy-backend/internal/config"
	"studybuddy-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type Server struct {
	Store    *services.RecordStore
	Uploads  *services.UploadRegistry
	Config   config.Config
	Log      zerolog.Logger
	validate *validator.Validate
}

func NewServer(store *services.RecordStore, uploads *services.UploadRegistry, cfg config.Config, logger zerolog.Logger) *Server {
	return &Server{
		Store:    store,
		Uploads:  uploads,
		Config:   cfg,
		Log:      logger,
		validate: validator.New(),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger(s.Log))
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", requestIDHeader},
			ExposedHeaders:   []string{requestIDHeader},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Get("/health", s.Health)
	r.Get("/uploads/{filename}", s.ServeUpload)

	r.Route("/api", func(api chi.Router) {
		api.Post("/upload", s.UploadFile)
		api.Get("/files", s.ListFiles)
		api.Delete("/files/{fileId}", s.DeleteFile)

		api.Route("/students", func(students chi.Router) {
			students.Post("/", s.CreateStudent)
			students.Get("/", s.ListStudents)
			students.Route("/{studentId}", func(student chi.Router) {
				student.Get("/", s.GetStudent)
				student.Patch("/", s.UpdateStudent)
				student.Delete("/", s.DeactivateStudent)
				student.Get("/summary", s.StudentSummary)
				student.Get("/schedule", s.StudentSchedule)
				student.Get("/grades", s.StudentGrades)
				student.Post("/grades/import", s.ImportGrades)
				student.Get("/reports", s.StudentReports)
				student.Get("/metrics/latest", s.LatestMetrics)
				student.Post("/hours/rollup", s.RollupHours)
				student.Get("/hours", s.StudentHours)
			})
		})

		api.Route("/professors", func(professors chi.Router) {
			professors.Post("/", s.CreateProfessor)
			professors.Get("/", s.ListProfessors)
			professors.Get("/{professorId}", s.GetProfessor)
		})
		api.Route("/subjects", func(subjects chi.Router) {
			subjects.Post("/", s.CreateSubject)
			subjects.Get("/", s.ListSubjects)
		})
		api.Route("/classes", func(classes chi.Router) {
			classes.Post("/", s.CreateClass)
			classes.Get("/{classId}", s.GetClass)
			classes.Put("/{classId}/status", s.SetClassStatus)
		})

		api.Post("/grades", s.AddGrade)
		api.Post("/metrics", s.SaveMetrics)
		api.Post("/reports", s.CreateReport)
		api.Post("/metacognition", s.SaveMetacognition)
		api.Get("/metacognition/{entryId}", s.GetMetacognition)
	})
	return r
}
