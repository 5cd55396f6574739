package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dyluth/tqb/internal/config"
	"github.com/dyluth/tqb/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name         string
		force        bool
		existing     bool
		wantErr      bool
		wantReplaced bool
	}{
		{name: "fresh initialization"},
		{name: "existing file without force", existing: true, wantErr: true},
		{name: "force replaces existing file", existing: true, force: true, wantReplaced: true},
		{name: "force on fresh path", force: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "taskqueue.csv")
			if tt.existing {
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
				require.NoError(t, os.WriteFile(path, []byte("old content"), 0644))
			}

			replaced, err := Initialize(path, queue.Default(), tt.force)
			if tt.wantErr {
				require.Error(t, err)
				content, readErr := os.ReadFile(path)
				require.NoError(t, readErr)
				assert.Equal(t, "old content", string(content))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantReplaced, replaced)

			c, err := queue.Load(path)
			require.NoError(t, err)
			assert.Equal(t, queue.DefaultColumns, c.Columns)
			assert.Empty(t, c.Records)
		})
	}
}

func TestWriteSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tqb", config.FileName)

	replaced, err := WriteSettings(path, false)
	require.NoError(t, err)
	assert.False(t, replaced)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var yamlData map[string]any
	require.NoError(t, yaml.Unmarshal(content, &yamlData))
	assert.Equal(t, "taskqueue.csv", yamlData["path"])

	settings, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), settings)

	_, err = WriteSettings(path, false)
	assert.Error(t, err)

	replaced, err = WriteSettings(path, true)
	require.NoError(t, err)
	assert.True(t, replaced)
}

func TestSettingsPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "tqb", config.FileName), SettingsPath())
}
