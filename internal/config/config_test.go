package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, SourcePlaceholder, cfg.Settings.Source)
	assert.Equal(t, DefaultEndpoint, cfg.Settings.Endpoint)
	assert.Equal(t, DefaultPageSize, cfg.Settings.PageSize)
	assert.Equal(t, DefaultTimeout, cfg.Settings.Timeout)
	assert.Equal(t, DefaultNotify, cfg.Settings.Notify)
}

func TestLoad_SettingsFile(t *testing.T) {
	dir := t.TempDir()
	data := "source: Google\ngoogle_list: Groceries\npage_size: 50\ntimeout: 3s\nnotify: 1500ms\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsFile), []byte(data), 0600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, SourceGoogle, cfg.Settings.Source)
	assert.Equal(t, "Groceries", cfg.Settings.GoogleList)
	assert.Equal(t, 50, cfg.Settings.PageSize)
	assert.Equal(t, 3*time.Second, cfg.Settings.Timeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.Settings.Notify)
	assert.Equal(t, DefaultEndpoint, cfg.Settings.Endpoint)
}

func TestLoad_InvalidSettingsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsFile), []byte("page_size: [1"), 0600))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsFile), []byte("page_size: 50\n"), 0600))
	t.Setenv("TASKTABLE_PAGE_SIZE", "10")
	t.Setenv("TASKTABLE_ENDPOINT", "http://localhost:9999/todos")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Settings.PageSize)
	assert.Equal(t, "http://localhost:9999/todos", cfg.Settings.Endpoint)
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	t.Setenv("TASKTABLE_TIMEOUT", "soon")

	_, err := Load(t.TempDir())
	assert.EqualError(t, err, "invalid TASKTABLE_TIMEOUT: soon")
}

func TestLoad_LeavesValidationToCaller(t *testing.T) {
	t.Setenv("TASKTABLE_SOURCE", " Bogus ")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "bogus", cfg.Settings.Source)
	assert.EqualError(t, cfg.Settings.Validate(), "unknown source: bogus")

	cfg.Settings.Source = SourcePlaceholder
	assert.NoError(t, cfg.Settings.Validate())
}

func TestLoad_DotEnv(t *testing.T) {
	work := t.TempDir()
	chdir(t, work)
	t.Setenv("TASKTABLE_GOOGLE_LIST", "")
	os.Unsetenv("TASKTABLE_GOOGLE_LIST")
	require.NoError(t, os.WriteFile(filepath.Join(work, EnvFile), []byte("TASKTABLE_GOOGLE_LIST=Groceries\n"), 0600))

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "Groceries", cfg.Settings.GoogleList)
}

func TestLoad_MalformedDotEnv(t *testing.T) {
	work := t.TempDir()
	chdir(t, work)
	require.NoError(t, os.WriteFile(filepath.Join(work, EnvFile), []byte("TASKTABLE-SOURCE=google\n"), 0600))

	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse .env")
}

func TestLoad_MissingDotEnv(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load(t.TempDir())
	assert.NoError(t, err)
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		errMsg string
	}{
		{"unknown source", func(s *Settings) { s.Source = "ftp" }, "unknown source: ftp"},
		{"empty endpoint", func(s *Settings) { s.Endpoint = "" }, "endpoint required"},
		{"zero page size", func(s *Settings) { s.PageSize = 0 }, "invalid page size: 0"},
		{"zero timeout", func(s *Settings) { s.Timeout = 0 }, "invalid timeout: 0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			assert.EqualError(t, s.Validate(), tt.errMsg)
		})
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", AppName), DefaultConfigDir())
}

func TestTokenHelpers(t *testing.T) {
	cfg, err := New(t.TempDir())
	require.NoError(t, err)

	assert.False(t, cfg.HasToken())
	require.NoError(t, os.WriteFile(cfg.TokenPath(), []byte("{}"), 0600))
	assert.True(t, cfg.HasToken())
	require.NoError(t, cfg.RemoveToken())
	assert.False(t, cfg.HasToken())
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
