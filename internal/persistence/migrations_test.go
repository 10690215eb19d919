package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFilesSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002_complaints.sql", "README.md", "0001_users.sql"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "0003_dir.sql"), 0o700))

	files, err := migrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_users.sql", "0002_complaints.sql"}, files)
}

func TestMigrationFilesMissingDir(t *testing.T) {
	_, err := migrationFiles(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestRepositoryMigrationsPresent(t *testing.T) {
	files, err := migrationFiles(filepath.Join("..", "..", migrationsDir))
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_users.sql", "0002_complaints.sql"}, files)
}
