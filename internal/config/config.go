package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration for Prakt.
type Config struct {
	Render RenderConfig `mapstructure:"render" yaml:"render"`
	Theme  ThemeConfig  `mapstructure:"theme" yaml:"theme"`
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

// RenderConfig configures rendering defaults.
type RenderConfig struct {
	Colors  string `mapstructure:"colors" yaml:"colors"`
	Force   bool   `mapstructure:"force" yaml:"force"`
	Width   int    `mapstructure:"width" yaml:"width"`
	TabSize int    `mapstructure:"tab_size" yaml:"tab_size"`
}

// ThemeConfig configures the style theme loaded at startup.
type ThemeConfig struct {
	File    string `mapstructure:"file" yaml:"file"`
	Inherit bool   `mapstructure:"inherit" yaml:"inherit"`
}

// ServerConfig configures the render server mode.
type ServerConfig struct {
	Listen   string `mapstructure:"listen" yaml:"listen"`
	BasePath string `mapstructure:"base" yaml:"base"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// Loader wraps Viper configuration loading for Prakt.
type Loader struct {
	v          *viper.Viper
	configFile string
}

// NewLoader initializes a Loader with standard defaults.
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix("PRAKT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/prakt")
	v.AddConfigPath("$HOME/.prakt")

	return &Loader{v: v}
}

// Viper exposes the underlying Viper instance for flag binding and defaults.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// SetConfigFile sets an explicit config file path.
func (l *Loader) SetConfigFile(path string) {
	l.configFile = strings.TrimSpace(path)
}

// ReadInConfig reads configuration from file if available.
func (l *Loader) ReadInConfig() error {
	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

// Load reads configuration and unmarshals it into a Config struct.
func (l *Loader) Load() (Config, error) {
	if err := l.ReadInConfig(); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
