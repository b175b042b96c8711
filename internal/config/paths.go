package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "venue"

// GetStateDir returns the directory for persistent data (database, log).
func GetStateDir() string {
	return filepath.Join(xdg.StateHome, appName)
}

// GetConfigDir returns the directory holding config.yaml.
func GetConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// GetConfigPath returns the path to the user config file.
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// GetDatabasePath returns the default path to the SQLite database file.
func GetDatabasePath() string {
	return filepath.Join(GetStateDir(), "venue.db")
}

// GetLogPath returns the default path to the log file.
func GetLogPath() string {
	return filepath.Join(GetStateDir(), "venue.log")
}

// EnsureStateDir creates the state directory if it doesn't exist
func EnsureStateDir() (string, error) {
	stateDir := GetStateDir()
	if err := os.MkdirAll(stateDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create state directory: %w", err)
	}
	return stateDir, nil
}
