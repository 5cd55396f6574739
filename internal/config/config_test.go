package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every search path at an empty temporary directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	validConfig := `path: work.csv
color: never
pager: true
log_level: debug
blueprint: todo
truncate: 15
`
	err := os.WriteFile(configPath, []byte(validConfig), 0644)
	require.NoError(t, err)

	settings, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, &Settings{
		Path:      "work.csv",
		Color:     ColorNever,
		Pager:     true,
		LogLevel:  "debug",
		Blueprint: "todo",
		Truncate:  15,
	}, settings)
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(configPath, []byte("pager: true\n"), 0644))

	settings, err := Load(configPath)
	require.NoError(t, err)
	assert.True(t, settings.Pager)
	assert.Equal(t, Default().Path, settings.Path)
	assert.Equal(t, ColorAuto, settings.Color)
}

func TestLoad_FileNotFound(t *testing.T) {
	settings, err := Load("/nonexistent/tqb.yml")
	assert.Error(t, err)
	assert.Nil(t, settings)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolate(t)

	settings, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), settings)
}

func TestLoad_SearchPaths(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tqb"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tqb", FileName), []byte("blueprint: sprint\n"), 0644))

	settings, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sprint", settings.Blueprint)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("TQB_PATH", "env.csv")
	t.Setenv("TQB_TRUNCATE", "5")

	settings, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env.csv", settings.Path)
	assert.Equal(t, 5, settings.Truncate)
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(configPath, []byte("path: [unclosed\n"), 0644))

	settings, err := Load(configPath)
	assert.Error(t, err)
	assert.Nil(t, settings)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Settings)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(s *Settings) {}},
		{name: "empty path", mutate: func(s *Settings) { s.Path = "" }, wantErr: "path must not be empty"},
		{name: "bad color", mutate: func(s *Settings) { s.Color = "sometimes" }, wantErr: "invalid color"},
		{name: "bad log level", mutate: func(s *Settings) { s.LogLevel = "loud" }, wantErr: "invalid log_level"},
		{name: "log level any case", mutate: func(s *Settings) { s.LogLevel = "DEBUG" }},
		{name: "unknown blueprint", mutate: func(s *Settings) { s.Blueprint = "kanban" }, wantErr: "unknown blueprint"},
		{name: "negative truncate", mutate: func(s *Settings) { s.Truncate = -1 }, wantErr: "truncate must be >= 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
