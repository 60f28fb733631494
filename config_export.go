package prakt

import "pkt.systems/prakt/internal/config"

// Config mirrors the Prakt configuration.
type Config = config.Config

// RenderConfig configures rendering defaults.
type RenderConfig = config.RenderConfig

// ThemeConfig configures the style theme loaded at startup.
type ThemeConfig = config.ThemeConfig

// ServerConfig configures the render server.
type ServerConfig = config.ServerConfig

// LogConfig configures diagnostic logging.
type LogConfig = config.LogConfig

// Loader wraps configuration loading via Viper.
type Loader = config.Loader

const (
	// DefaultConfigDirName is the directory name under the home directory.
	DefaultConfigDirName = config.DefaultConfigDirName
	// DefaultConfigFileName is the default config file name.
	DefaultConfigFileName = config.DefaultConfigFileName
	// DefaultThemeFileName is the default theme file name.
	DefaultThemeFileName = config.DefaultThemeFileName
	// DefaultLogFileName is the default diagnostic log file name.
	DefaultLogFileName = config.DefaultLogFileName

	// DefaultListenAddr is the default render server listen address.
	DefaultListenAddr = config.DefaultListenAddr
	// DefaultBasePath is the default HTTP base path.
	DefaultBasePath = config.DefaultBasePath
	// DefaultColors is the default color system selection.
	DefaultColors = config.DefaultColors
	// DefaultTabSize is the default tab stop width in cells.
	DefaultTabSize = config.DefaultTabSize
	// DefaultWidth is the default render width, zero meaning detect.
	DefaultWidth = config.DefaultWidth
	// DefaultThemeInherit controls whether custom themes extend the built-in theme.
	DefaultThemeInherit = config.DefaultThemeInherit
)

// NewLoader returns a config loader with defaults wired.
func NewLoader() *config.Loader {
	return config.NewLoader()
}

// DefaultConfig returns default Prakt configuration.
func DefaultConfig() Config {
	return config.DefaultConfig()
}

// DefaultConfigDir returns the default config directory.
func DefaultConfigDir() string {
	return config.DefaultConfigDir()
}

// DefaultConfigPath returns the default config path.
func DefaultConfigPath() string {
	return config.DefaultConfigPath()
}

// DefaultThemePath returns the default theme file path.
func DefaultThemePath() string {
	return config.DefaultThemePath()
}

// DefaultLogPath returns the default diagnostic log path.
func DefaultLogPath() string {
	return config.DefaultLogPath()
}
