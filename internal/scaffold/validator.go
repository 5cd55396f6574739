package scaffold

import (
	"fmt"
	"os"
)

// CheckExisting checks if a task queue or settings file already exists at path
// Returns an error if it does, nil otherwise
func CheckExisting(path, command string) error {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	errMsg := fmt.Sprintf("file already exists\n\nFound existing: %s", path)
	errMsg += fmt.Sprintf("\n\nUse '%s --force' to overwrite it", command)
	return fmt.Errorf("%s", errMsg)
}
