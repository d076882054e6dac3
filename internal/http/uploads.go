package httpapi

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"studybuddy-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

func (s *Server) UploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.Config.MaxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		WriteError(w, http.StatusBadRequest, "No file part")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "No file part")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	info, err := s.Uploads.Register(r.Context(), header.Filename, contentType, file)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, UploadResponse{Message: "File uploaded successfully", File: info})
}

func (s *Server) ListFiles(w http.ResponseWriter, r *http.Request) {
	files := s.Uploads.List()
	WriteJSON(w, http.StatusOK, FileListResponse{Files: files, Total: len(files)})
}

func (s *Server) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "fileId"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusNotFound, "File not found")
		return
	}
	info, err := s.Uploads.Remove(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, DeleteFileResponse{Message: "File deleted successfully", Filename: info.Filename})
}

// ServeUpload streams a stored file by its saved name. Seekable backends
// get range and conditional request support.
func (s *Server) ServeUpload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")
	rc, err := s.Uploads.Open(r.Context(), name)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			WriteError(w, http.StatusNotFound, "File not found")
			return
		}
		WriteServiceError(w, r, err)
		return
	}
	defer rc.Close()

	if rs, ok := rc.(io.ReadSeeker); ok {
		var modTime time.Time
		if info, found := s.Uploads.Lookup(name); found {
			modTime = info.UploadedAt
		}
		http.ServeContent(w, r, name, modTime, rs)
		return
	}
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, rc)
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, services.CaptureHealth(r.Context(), s.Store, s.Uploads, s.Config.UploadPath))
}
