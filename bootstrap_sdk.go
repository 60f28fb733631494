package prakt

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"pkt.systems/pslog"
)

// Bootstrap writes the default config and theme to the config directory.
func Bootstrap(cfg Config, logger pslog.Logger) (string, error) {
	if logger == nil {
		logger = pslog.LoggerFromEnv()
	}

	path := DefaultConfigPath()
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config already exists at %s", path)
	} else if !os.IsNotExist(err) {
		return "", err
	}

	if err := os.MkdirAll(DefaultConfigDir(), 0o700); err != nil {
		return "", err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}

	themePath := DefaultThemePath()
	if _, err := os.Stat(themePath); os.IsNotExist(err) {
		if err := os.WriteFile(themePath, []byte(DefaultTheme().Config()), 0o644); err != nil {
			return "", err
		}
		logger.Info("bootstrapped theme", "path", themePath)
	}

	logger.Info("bootstrapped config", "path", path)
	return path, nil
}
