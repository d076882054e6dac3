package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"studybuddy-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

type CreatedResponse struct {
	ID int64 `json:"id"`
}

type UpdatedResponse struct {
	Updated bool `json:"updated"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Message: message})
}

// WriteServiceError maps the service error taxonomy onto HTTP statuses.
// Internal failures are logged and reported without their cause.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var serr services.ServiceError
	switch {
	case errors.Is(err, services.ErrNotFound):
		WriteError(w, http.StatusNotFound, messageOf(err))
	case errors.Is(err, services.ErrValidation):
		WriteError(w, http.StatusBadRequest, messageOf(err))
	case errors.Is(err, services.ErrConstraintViolation):
		WriteError(w, http.StatusConflict, messageOf(err))
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		if errors.As(err, &serr) && serr.Status >= 500 {
			WriteError(w, serr.Status, "Internal server error")
			return
		}
		WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func messageOf(err error) string {
	var serr services.ServiceError
	if errors.As(err, &serr) {
		return serr.Message
	}
	return err.Error()
}

// decodeJSON reads the body into dst and runs struct validation on it.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		WriteError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid payload"
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+" "+fe.Tag())
	}
	return "Invalid fields: " + strings.Join(fields, ", ")
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
