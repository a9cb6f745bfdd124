package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_indexes.sql", "001_initial.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o755))

	files, err := migrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "001_initial.sql"),
		filepath.Join(dir, "002_indexes.sql"),
	}, files)
}

func TestMigrationFilesEmpty(t *testing.T) {
	_, err := migrationFiles(t.TempDir())
	require.Error(t, err)

	_, err = migrationFiles(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestRepositoryMigrations(t *testing.T) {
	files, err := migrationFiles(filepath.Join("..", "..", "migrations"))
	require.NoError(t, err)
	assert.Equal(t, "001_initial.sql", filepath.Base(files[0]))
}
