package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(orig) })
	return dir
}

func TestLoadConfig_MissingFileGivesDefaults(t *testing.T) {
	dir := inTempDir(t)
	t.Setenv("PX_DB_PATH", "")
	t.Setenv("PX_LOG_LEVEL", "")

	cfg, err := LoadConfig(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ReadsYAML(t *testing.T) {
	dir := inTempDir(t)
	t.Setenv("PX_DB_PATH", "")
	t.Setenv("PX_LOG_LEVEL", "")

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`db_path: data/assets.db
log_level: debug
import:
  batch_size: 25
  include: ["**/*.feature"]
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "data/assets.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 25, cfg.Import.BatchSize)
	assert.Equal(t, []string{"**/*.feature"}, cfg.Import.Include)
	assert.Equal(t, []string{"**/.git/**"}, cfg.Import.Exclude)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := inTempDir(t)
	t.Setenv("PX_DB_PATH", "other.db")
	t.Setenv("PX_LOG_LEVEL", "warn")

	cfg, err := LoadConfig(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "other.db", cfg.DBPath)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	dir := inTempDir(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("import: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Import.BatchSize = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Import.Exclude = []string{"[unclosed"}
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.DBPath = ""
	assert.Error(t, cfg.Validate())

	assert.NoError(t, DefaultConfig().Validate())
}

func TestSave_RoundTrip(t *testing.T) {
	dir := inTempDir(t)
	t.Setenv("PX_DB_PATH", "")
	t.Setenv("PX_LOG_LEVEL", "")

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_MalformedDotEnv(t *testing.T) {
	dir := inTempDir(t)
	t.Setenv("PX_DB_PATH", "")
	t.Setenv("PX_LOG_LEVEL", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PX-DB-PATH=other.db\n"), 0o644))

	_, err := LoadConfig(filepath.Join(dir, "config.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load .env")
}
