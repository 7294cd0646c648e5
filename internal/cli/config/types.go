// Package config provides configuration management for the benchboard CLI.
package config

// UIConfig holds configuration for the dashboard server.
type UIConfig struct {
	Port          int    `koanf:"port"`
	AutoOpen      bool   `koanf:"auto_open"`
	Watch         bool   `koanf:"watch"`
	Theme         string `koanf:"theme"`
	Title         string `koanf:"title"`
	SessionSecret string `koanf:"session_secret"`
}

// DefaultUIConfig returns a UIConfig with default values.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Port:     DefaultPort,
		AutoOpen: true,
		Watch:    true,
		Title:    DefaultTitle,
	}
}

// GetUIConfig returns the UI config with defaults applied for any unset values.
func (c *Config) GetUIConfig() *UIConfig {
	if c.UI == nil {
		return DefaultUIConfig()
	}
	ui := c.UI
	if ui.Port == 0 {
		ui.Port = DefaultPort
	}
	if ui.Title == "" {
		ui.Title = DefaultTitle
	}
	return ui
}

// Config holds all CLI configuration options.
type Config struct {
	Dataset      string    `koanf:"dataset"`
	Verbose      bool      `koanf:"verbose"`
	OutputFormat string    `koanf:"output"`
	LogLevel     string    `koanf:"log_level"`
	LogFormat    string    `koanf:"log_format"`
	UI           *UIConfig `koanf:"ui"`

	// ConfigDir is the directory of the config file in use, or the working
	// directory when there is none. Not read from configuration.
	ConfigDir string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultDataset   = "results.json"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	DefaultPort      = 8765
	DefaultTitle     = "AI Benchmarks"
)

// ConfigFileNames are searched in order in each directory.
var ConfigFileNames = []string{"benchboard.yaml", "benchboard.yml"}
