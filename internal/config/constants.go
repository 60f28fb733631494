package config

const (
	// DefaultConfigDirName is the directory name under the home directory.
	DefaultConfigDirName = ".prakt"
	// DefaultConfigFileName is the default config file name.
	DefaultConfigFileName = "config.yaml"
	// DefaultThemeFileName is the default theme file name.
	DefaultThemeFileName = "theme.yaml"
	// DefaultLogFileName is the default diagnostic log file name.
	DefaultLogFileName = "prakt.log"

	// DefaultListenAddr is the default render server listen address.
	DefaultListenAddr = "127.0.0.1:8321"
	// DefaultBasePath is the default HTTP base path.
	DefaultBasePath = "/v1"
	// DefaultColors is the default color system selection.
	DefaultColors = "auto"
	// DefaultTabSize is the default tab stop width in cells.
	DefaultTabSize = 8
	// DefaultWidth is the default render width, zero meaning detect from the terminal.
	DefaultWidth = 0
	// DefaultThemeInherit controls whether custom themes extend the built-in theme.
	DefaultThemeInherit = true
)
