package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"studybuddy-backend/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T, manifest string) (*UploadRegistry, *storage.Local) {
	t.Helper()
	local, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = local.Close() })

	registry, err := NewUploadRegistry(local, manifest, zerolog.Nop())
	require.NoError(t, err)
	registry.now = steppingClock(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC), time.Second)
	return registry, local
}

func TestRegisterAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	registry, local := newTestRegistry(t, "")

	first, err := registry.Register(ctx, "notes.pdf", "application/pdf", strings.NewReader("pdf body"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "notes.pdf", first.Filename)
	assert.Equal(t, "20250301_080000_notes.pdf", first.SavedAs)
	assert.Equal(t, filepath.Join(local.Dir(), first.SavedAs), first.FilePath)
	assert.Equal(t, int64(8), first.Size)
	assert.Equal(t, "application/pdf", first.ContentType)

	second, err := registry.Register(ctx, "tarea.docx", "", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)

	files := registry.List()
	require.Len(t, files, 2)
	assert.Equal(t, first.ID, files[0].ID)
	assert.Equal(t, second.ID, files[1].ID)

	data, err := os.ReadFile(first.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "pdf body", string(data))
}

func TestRegisterDoesNotReuseIDs(t *testing.T) {
	ctx := context.Background()
	registry, _ := newTestRegistry(t, "")

	a, err := registry.Register(ctx, "a.txt", "text/plain", strings.NewReader("a"))
	require.NoError(t, err)
	_, err = registry.Register(ctx, "b.txt", "text/plain", strings.NewReader("b"))
	require.NoError(t, err)

	_, err = registry.Remove(ctx, a.ID)
	require.NoError(t, err)

	c, err := registry.Register(ctx, "c.txt", "text/plain", strings.NewReader("c"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.ID)

	ids := map[int64]bool{}
	for _, f := range registry.List() {
		assert.False(t, ids[f.ID], "duplicate id %d", f.ID)
		ids[f.ID] = true
	}
}

func TestRegisterRejectsEmptyName(t *testing.T) {
	ctx := context.Background()
	registry, local := newTestRegistry(t, "")

	for _, name := range []string{"", "   ", "..", "/"} {
		_, err := registry.Register(ctx, name, "", strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrValidation, name)
	}
	assert.Equal(t, 0, registry.Count())

	entries, err := os.ReadDir(local.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRegisterStripsDirectories(t *testing.T) {
	registry, _ := newTestRegistry(t, "")

	info, err := registry.Register(context.Background(), `..\..\secret\plan.txt`, "", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "plan.txt", info.Filename)
	assert.Equal(t, "20250301_080000_plan.txt", info.SavedAs)
}

func TestRegisterSameSecondCollision(t *testing.T) {
	ctx := context.Background()
	registry, _ := newTestRegistry(t, "")
	fixed := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	registry.now = func() time.Time { return fixed }

	first, err := registry.Register(ctx, "report.pdf", "", strings.NewReader("first"))
	require.NoError(t, err)

	_, err = registry.Register(ctx, "report.pdf", "", strings.NewReader("second"))
	assert.ErrorIs(t, err, ErrConstraintViolation)
	assert.Equal(t, 1, registry.Count())

	data, err := registry.Retrieve(ctx, first.SavedAs)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))
}

func TestRemoveUnknownID(t *testing.T) {
	ctx := context.Background()
	registry, _ := newTestRegistry(t, "")
	_, err := registry.Register(ctx, "a.txt", "", strings.NewReader("a"))
	require.NoError(t, err)

	_, err = registry.Remove(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, registry.Count())
}

func TestRemoveToleratesMissingFile(t *testing.T) {
	ctx := context.Background()
	registry, _ := newTestRegistry(t, "")
	info, err := registry.Register(ctx, "a.txt", "", strings.NewReader("a"))
	require.NoError(t, err)
	require.NoError(t, os.Remove(info.FilePath))

	removed, err := registry.Remove(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, "a.txt", removed.Filename)
	assert.Equal(t, 0, registry.Count())
}

func TestRetrieve(t *testing.T) {
	ctx := context.Background()
	registry, _ := newTestRegistry(t, "")

	_, err := registry.Retrieve(ctx, "../etc/passwd")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = registry.Retrieve(ctx, "20250301_080000_missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistryManifestPersists(t *testing.T) {
	ctx := context.Background()
	manifest := filepath.Join(t.TempDir(), "meta", "uploads.yaml")
	registry, local := newTestRegistry(t, manifest)

	a, err := registry.Register(ctx, "a.txt", "text/plain", strings.NewReader("a"))
	require.NoError(t, err)
	_, err = registry.Register(ctx, "b.txt", "text/plain", strings.NewReader("bb"))
	require.NoError(t, err)
	_, err = registry.Remove(ctx, a.ID)
	require.NoError(t, err)

	reloaded, err := NewUploadRegistry(local, manifest, zerolog.Nop())
	require.NoError(t, err)
	files := reloaded.List()
	require.Len(t, files, 1)
	assert.Equal(t, "b.txt", files[0].Filename)
	assert.Equal(t, int64(2), files[0].Size)
	assert.True(t, files[0].UploadedAt.Equal(time.Date(2025, 3, 1, 8, 0, 1, 0, time.UTC)))

	c, err := reloaded.Register(ctx, "c.txt", "", strings.NewReader("c"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.ID)
}

func TestRegistryCorruptManifest(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), "uploads.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte("files: [unterminated"), 0o644))
	local, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	defer local.Close()

	_, err = NewUploadRegistry(local, manifest, zerolog.Nop())
	assert.ErrorIs(t, err, ErrIO)
}

func TestRegisterConcurrent(t *testing.T) {
	ctx := context.Background()
	registry, _ := newTestRegistry(t, "")

	const workers = 16
	var wg sync.WaitGroup
	ids := make(chan int64, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			info, err := registry.Register(ctx, fmt.Sprintf("file-%d.txt", i), "", strings.NewReader("x"))
			if assert.NoError(t, err) {
				ids <- info.ID
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id])
		seen[id] = true
	}
	assert.Len(t, seen, workers)
	assert.Equal(t, workers, registry.Count())
}

func TestCaptureHealth(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	registry, local := newTestRegistry(t, "")
	_, err := registry.Register(ctx, "a.txt", "", strings.NewReader("a"))
	require.NoError(t, err)

	report := CaptureHealth(ctx, store, registry, local.Dir())
	assert.Equal(t, "running", report.Status)
	assert.Equal(t, "ok", report.Database)
	assert.Equal(t, 1, report.TotalFiles)
	assert.Equal(t, local.Dir(), report.UploadFolder)
	assert.Positive(t, report.DiskTotalBytes)
}
