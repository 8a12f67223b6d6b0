package system

import (
	"os"
	"path/filepath"
)

const appName = "ifreport"

// ConfigDir returns the ifreport config directory path.
// It is only a search location, so it is not created.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}

// LogDir returns the default directory for rotated log files,
// creating it if it does not already exist.
func LogDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(base, appName, "logs")

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", err
	}

	return dir, nil
}
