package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/tqb/internal/config"
	"github.com/dyluth/tqb/pkg/queue"
)

//go:embed templates/*
var templatesFS embed.FS

// Initialize writes an empty task queue built from c to path.
// If force is false and path exists, it fails without touching the file.
// Returns true if an existing file was replaced.
func Initialize(path string, c *queue.Collection, force bool) (bool, error) {
	replaced, err := handleForce(path, "tqb create", force)
	if err != nil {
		return false, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := queue.Save(path, c); err != nil {
		return false, err
	}

	// Validate the created file decodes
	if _, err := queue.Load(path); err != nil {
		return false, fmt.Errorf("created task queue is not valid: %w", err)
	}

	return replaced, nil
}

// SettingsPath returns where WriteSettings puts the settings file by default.
func SettingsPath() string {
	return filepath.Join(config.SearchPaths()[0], config.FileName)
}

// WriteSettings writes the commented default settings file to path.
// Returns true if an existing file was replaced.
func WriteSettings(path string, force bool) (bool, error) {
	replaced, err := handleForce(path, "tqb settings init", force)
	if err != nil {
		return false, err
	}

	content, err := templatesFS.ReadFile("templates/tqb.yml.tmpl")
	if err != nil {
		return false, fmt.Errorf("failed to read settings template: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create directory %s: %w", filepath.Dir(path), err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}

	// Validate created file
	if _, err := config.Load(path); err != nil {
		return false, fmt.Errorf("created %s is not valid: %w", path, err)
	}

	return replaced, nil
}

// handleForce refuses to clobber path unless force is set.
func handleForce(path, command string, force bool) (bool, error) {
	if !force {
		return false, CheckExisting(path, command)
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, nil
	}
	if info.IsDir() {
		return false, fmt.Errorf("%s is a directory", path)
	}
	return true, nil
}
