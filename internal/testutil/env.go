package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Env is an isolated working directory with its own settings lookup.
type Env struct {
	T         *testing.T
	Dir       string
	QueuePath string
	ConfigDir string
}

// Setup creates a temp directory, points HOME and XDG_CONFIG_HOME at it,
// disables colour and changes into it for the duration of the test.
func Setup(t *testing.T) *Env {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("NO_COLOR", "1")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	return &Env{
		T:         t,
		Dir:       dir,
		QueuePath: filepath.Join(dir, "taskqueue.csv"),
		ConfigDir: filepath.Join(dir, "tqb"),
	}
}

// SettingsPath is where the settings file of this environment lives.
func (env *Env) SettingsPath() string {
	return filepath.Join(env.ConfigDir, "tqb.yml")
}

// WriteSettings replaces the settings file with yml.
func (env *Env) WriteSettings(yml string) {
	env.T.Helper()
	require.NoError(env.T, os.MkdirAll(env.ConfigDir, 0755))
	require.NoError(env.T, os.WriteFile(env.SettingsPath(), []byte(yml), 0644))
}

// WriteFile writes content to name inside the workspace and returns its path.
func (env *Env) WriteFile(name, content string) string {
	env.T.Helper()
	path := filepath.Join(env.Dir, name)
	require.NoError(env.T, os.WriteFile(path, []byte(content), 0644))
	return path
}

// VerifyFileExists checks that a file exists.
func (env *Env) VerifyFileExists(path string) {
	env.T.Helper()
	_, err := os.Stat(path)
	require.NoError(env.T, err, "File %s does not exist", path)
}

// VerifyFileMissing checks that nothing exists at path.
func (env *Env) VerifyFileMissing(path string) {
	env.T.Helper()
	_, err := os.Stat(path)
	require.ErrorIs(env.T, err, os.ErrNotExist, "File %s should not exist", path)
}

// VerifyFileContent checks that a file contains the expected text.
func (env *Env) VerifyFileContent(path, expected string) {
	env.T.Helper()
	content, err := os.ReadFile(path)
	require.NoError(env.T, err, "Failed to read file %s", path)
	require.Contains(env.T, string(content), expected, "File content mismatch")
}
