package config

import (
	"os"
	"path/filepath"
)

// GetUserConfigDir returns ~/.axlab, where the user-level lab.yaml
// lives.
func GetUserConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".axlab"), nil
}

// GetProjectDir walks up from the working directory looking for a
// .axlab or .git directory, returning the working directory unchanged
// if neither is found.
func GetProjectDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, ".axlab")); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return wd, nil
		}
		dir = parent
	}
}

// EnsureConfigDirs creates the user config directory and the project's
// .axlab directory if they don't already exist.
func EnsureConfigDirs(userConfigDir, projectDir string) error {
	if err := os.MkdirAll(userConfigDir, 0o755); err != nil {
		return err
	}
	return os.MkdirAll(filepath.Join(projectDir, ".axlab"), 0o755)
}
