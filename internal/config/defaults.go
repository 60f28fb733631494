package config

// DefaultConfig returns the default configuration values.
func DefaultConfig() Config {
	return Config{
		Render: RenderConfig{
			Colors:  DefaultColors,
			Width:   DefaultWidth,
			TabSize: DefaultTabSize,
		},
		Theme: ThemeConfig{
			Inherit: DefaultThemeInherit,
		},
		Server: ServerConfig{
			Listen:   DefaultListenAddr,
			BasePath: DefaultBasePath,
		},
		Log: LogConfig{
			File: DefaultLogPath(),
		},
	}
}
