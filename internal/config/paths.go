package config

import (
	"os"
	"path/filepath"
)

// DefaultConfigDir returns the default Prakt config directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return DefaultConfigDirName
	}
	return filepath.Join(home, DefaultConfigDirName)
}

// DefaultConfigPath returns the default Prakt config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), DefaultConfigFileName)
}

// DefaultThemePath returns the default Prakt theme file path.
func DefaultThemePath() string {
	return filepath.Join(DefaultConfigDir(), DefaultThemeFileName)
}

// DefaultLogPath returns the default Prakt diagnostic log file path.
func DefaultLogPath() string {
	return filepath.Join(DefaultConfigDir(), DefaultLogFileName)
}
