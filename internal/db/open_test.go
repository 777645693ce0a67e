package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_WALAndForeignKeys(t *testing.T) {
	sqlDB, err := Open(filepath.Join(t.TempDir(), "px.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	var mode string
	require.NoError(t, sqlDB.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var fk int
	require.NoError(t, sqlDB.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestOpen_CascadesDeletes(t *testing.T) {
	sqlDB, err := Open(filepath.Join(t.TempDir(), "px.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	_, err = sqlDB.Exec(`INSERT INTO projects (id, name, created_at) VALUES ('p1', 'Shop', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = sqlDB.Exec(`INSERT INTO pages (id, name, project_id, created_at) VALUES ('pg1', 'Login', 'p1', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = sqlDB.Exec(`DELETE FROM projects WHERE id = 'p1'`)
	require.NoError(t, err)

	var count int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM pages`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestOpen_RejectsOrphanPage(t *testing.T) {
	sqlDB, err := Open(filepath.Join(t.TempDir(), "px.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	_, err = sqlDB.Exec(`INSERT INTO pages (id, name, project_id, created_at) VALUES ('pg1', 'Login', 'missing', '2024-01-01T00:00:00Z')`)
	assert.Error(t, err)
}
