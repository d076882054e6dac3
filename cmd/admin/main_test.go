package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"studybuddy-backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAdmin(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAdminCommands(t *testing.T) {
	url := "sqlite://" + filepath.Join(t.TempDir(), "admin.db")

	out, err := runAdmin(t, "migrate", "--database-url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "V1__core_tables.sql")
	assert.Contains(t, out, "V2__views.sql")

	out, err = runAdmin(t, "check-schema", "--database-url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "schema ok")

	out, err = runAdmin(t, "rollup-hours", "1", "--database-url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "[]")

	_, err = runAdmin(t, "summary", "1", "--database-url", url)
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = runAdmin(t, "summary", "abc", "--database-url", url)
	assert.Error(t, err)
}

func TestAdminMigrateFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "V1__notes.sql"),
		[]byte("CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT NOT NULL);"), 0o644))
	url := "sqlite://" + filepath.Join(t.TempDir(), "custom.db")

	out, err := runAdmin(t, "migrate", "--dir", dir, "--database-url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "V1__notes.sql")
	assert.NotContains(t, out, "V2__views.sql")

	_, err = runAdmin(t, "check-schema", "--database-url", url)
	assert.ErrorIs(t, err, services.ErrSchema)
}
