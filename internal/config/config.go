package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dyluth/tqb/pkg/queue"
	"github.com/spf13/viper"
)

// FileName is the settings file name searched for in the config directories.
const FileName = "tqb.yml"

// EnvPrefix prefixes environment overrides, e.g. TQB_PATH.
const EnvPrefix = "TQB"

// Colour modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Settings are the user preferences of tqb. Command-line flags override them.
type Settings struct {
	Path      string `mapstructure:"path" yaml:"path"`           // task queue file
	Color     string `mapstructure:"color" yaml:"color"`         // auto, always or never
	Pager     bool   `mapstructure:"pager" yaml:"pager"`         // pipe tables through less
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"` // debug, info, warn or error
	Blueprint string `mapstructure:"blueprint" yaml:"blueprint"` // used by create without columns
	Truncate  int    `mapstructure:"truncate" yaml:"truncate"`   // ls row limit, 0 = half the terminal height
}

// Default returns the settings used when no file or environment overrides exist.
func Default() *Settings {
	return &Settings{
		Path:      queue.DefaultPath,
		Color:     ColorAuto,
		LogLevel:  "warn",
		Blueprint: "default",
	}
}

// Validate performs strict validation on the settings
func (s *Settings) Validate() error {
	if s.Path == "" {
		return fmt.Errorf("path must not be empty")
	}

	if s.Color != ColorAuto && s.Color != ColorAlways && s.Color != ColorNever {
		return fmt.Errorf("invalid color: %s (must be 'auto', 'always' or 'never')", s.Color)
	}

	if !slices.Contains(logLevels, strings.ToLower(s.LogLevel)) {
		return fmt.Errorf("invalid log_level: %s (must be one of %s)", s.LogLevel, strings.Join(logLevels, ", "))
	}

	if !slices.Contains(queue.BlueprintNames(), strings.ToLower(s.Blueprint)) {
		return fmt.Errorf("unknown blueprint: %s (must be one of %s)", s.Blueprint, strings.Join(queue.BlueprintNames(), ", "))
	}

	if s.Truncate < 0 {
		return fmt.Errorf("truncate must be >= 0 (0 = half the terminal height), got %d", s.Truncate)
	}

	return nil
}

// SearchPaths returns the directories searched for FileName, most specific first.
func SearchPaths() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "tqb"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "tqb"))
	}
	return append(dirs, ".")
}

// Load reads settings from path, or from the first FileName found in
// SearchPaths when path is empty. A missing file in the search paths is not an
// error; a missing explicit path is. TQB_* environment variables override the file.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	defaults := Default()
	v.SetDefault("path", defaults.Path)
	v.SetDefault("color", defaults.Color)
	v.SetDefault("pager", defaults.Pager)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("blueprint", defaults.Blueprint)
	v.SetDefault("truncate", defaults.Truncate)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		for _, dir := range SearchPaths() {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &settings, nil
}
