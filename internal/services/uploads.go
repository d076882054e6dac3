package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"studybuddy-backend/internal/storage"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const uploadTimestampLayout = "20060102_150405"

type UploadedFile struct {
	ID          int64     `json:"file_id" yaml:"file_id"`
	Filename    string    `json:"filename" yaml:"filename"`
	SavedAs     string    `json:"saved_as" yaml:"saved_as"`
	FilePath    string    `json:"file_path" yaml:"file_path"`
	Size        int64     `json:"size" yaml:"size"`
	UploadedAt  time.Time `json:"uploaded_at" yaml:"uploaded_at"`
	ContentType string    `json:"type" yaml:"type"`
}

type registryManifest struct {
	NextID int64          `yaml:"next_id"`
	Files  []UploadedFile `yaml:"files"`
}

// UploadRegistry tracks uploaded files. A single mutex serialises id
// assignment, list changes and manifest writes.
type UploadRegistry struct {
	mu       sync.Mutex
	store    storage.Storage
	files    []UploadedFile
	nextID   int64
	manifest string
	log      zerolog.Logger
	now      func() time.Time
}

// NewUploadRegistry builds a registry over store. When manifestPath is not
// empty the metadata is loaded from and saved to that YAML file.
func NewUploadRegistry(store storage.Storage, manifestPath string, logger zerolog.Logger) (*UploadRegistry, error) {
	r := &UploadRegistry{
		store:    store,
		files:    []UploadedFile{},
		nextID:   1,
		manifest: manifestPath,
		log:      logger.With().Str("component", "uploads").Logger(),
		now:      time.Now,
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// Register stores body under a timestamp-prefixed name and records it. A
// second upload of the same name within the same second is rejected with
// ErrConstraintViolation and leaves the first file intact.
func (r *UploadRegistry) Register(ctx context.Context, filename, contentType string, body io.Reader) (UploadedFile, error) {
	name := cleanFilename(filename)
	if name == "" {
		return UploadedFile{}, Validation("No file selected")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	savedAs := now.Format(uploadTimestampLayout) + "_" + name
	size, err := r.store.Put(ctx, savedAs, body)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrExists):
			return UploadedFile{}, Conflict("file "+savedAs+" already exists", err)
		case errors.Is(err, storage.ErrInvalidKey):
			return UploadedFile{}, Validation("invalid filename")
		}
		return UploadedFile{}, IOFailure("save upload", err)
	}

	info := UploadedFile{
		ID:          r.nextID,
		Filename:    name,
		SavedAs:     savedAs,
		FilePath:    r.store.Location(savedAs),
		Size:        size,
		UploadedAt:  now,
		ContentType: contentType,
	}
	r.files = append(r.files, info)
	r.nextID++
	if err := r.save(); err != nil {
		r.files = r.files[:len(r.files)-1]
		r.nextID--
		_ = r.store.Delete(ctx, savedAs)
		return UploadedFile{}, IOFailure("save upload manifest", err)
	}

	r.log.Info().Str("path", info.FilePath).Int64("size", size).Int("total_files", len(r.files)).Msg("file saved")
	return info, nil
}

func (r *UploadRegistry) List() []UploadedFile {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]UploadedFile, len(r.files))
	copy(out, r.files)
	return out
}

func (r *UploadRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.files)
}

// Lookup finds a record by its saved name.
func (r *UploadRegistry) Lookup(savedAs string) (UploadedFile, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.files {
		if f.SavedAs == savedAs {
			return f, true
		}
	}
	return UploadedFile{}, false
}

// Remove deletes the backing object, tolerating one that is already gone,
// and then drops the record.
func (r *UploadRegistry) Remove(ctx context.Context, id int64) (UploadedFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, f := range r.files {
		if f.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return UploadedFile{}, NotFound("File not found")
	}
	info := r.files[idx]
	if err := r.store.Delete(ctx, info.SavedAs); err != nil {
		return UploadedFile{}, IOFailure("delete upload", err)
	}

	previous := r.files
	kept := make([]UploadedFile, 0, len(r.files)-1)
	for _, f := range r.files {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	r.files = kept
	if err := r.save(); err != nil {
		r.files = previous
		return UploadedFile{}, IOFailure("save upload manifest", err)
	}

	r.log.Info().Str("filename", info.Filename).Int64("file_id", id).Msg("file deleted")
	return info, nil
}

// Open streams a stored file by its on-disk name.
func (r *UploadRegistry) Open(ctx context.Context, savedAs string) (io.ReadCloser, error) {
	rc, err := r.store.Get(ctx, savedAs)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidKey):
			return nil, Validation("invalid filename")
		case errors.Is(err, storage.ErrNotExist):
			return nil, NotFound("File not found")
		}
		return nil, IOFailure("open upload", err)
	}
	return rc, nil
}

// Retrieve returns the raw bytes of a stored file.
func (r *UploadRegistry) Retrieve(ctx context.Context, savedAs string) ([]byte, error) {
	rc, err := r.Open(ctx, savedAs)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, IOFailure("read upload", err)
	}
	return data, nil
}

func cleanFilename(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, `\`, "/"))
	if name == "" {
		return ""
	}
	base := filepath.Base(name)
	if base == "." || base == ".." || base == "/" {
		return ""
	}
	return base
}

func (r *UploadRegistry) load() error {
	if r.manifest == "" {
		return nil
	}
	data, err := os.ReadFile(r.manifest)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return IOFailure("read upload manifest", err)
	}
	var m registryManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return IOFailure("parse upload manifest", err)
	}
	if m.Files != nil {
		r.files = m.Files
	}
	r.nextID = m.NextID
	for _, f := range r.files {
		if f.ID >= r.nextID {
			r.nextID = f.ID + 1
		}
	}
	if r.nextID < 1 {
		r.nextID = 1
	}
	return nil
}

func (r *UploadRegistry) save() error {
	if r.manifest == "" {
		return nil
	}
	data, err := yaml.Marshal(registryManifest{NextID: r.nextID, Files: r.files})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(r.manifest), 0o755); err != nil {
		return err
	}
	tmp := fmt.Sprintf("%s.tmp", r.manifest)
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.manifest)
}
