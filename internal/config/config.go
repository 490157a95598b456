// Package config loads the show configuration file and locates the show
// home directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up inside the show home.
const FileName = "config.yaml"

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var validLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// WalkConfig holds the defaults for directory walks
type WalkConfig struct {
	// SkipHidden skips entries whose name starts with a dot
	SkipHidden bool `yaml:"skip_hidden"`

	// FollowSymlinks descends into symlinked directories
	FollowSymlinks bool `yaml:"follow_symlinks"`

	// IgnoreCase matches patterns case-insensitively
	IgnoreCase bool `yaml:"ignore_case"`

	// IgnoreErrors silences per-entry walk errors
	IgnoreErrors bool `yaml:"ignore_errors"`
}

// Config represents show configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Color is one of auto, always, never
	Color string `yaml:"color"`

	// Threads is the number of walk workers (0 = one per CPU, 1 = sequential)
	Threads int `yaml:"threads"`

	// PathStyle is native or posix
	PathStyle string `yaml:"path_style"`

	// Walk contains directory walk defaults
	Walk WalkConfig `yaml:"walk"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "warn",
		Color:     ColorAuto,
		Threads:   0,
		PathStyle: "native",
		Walk: WalkConfig{
			SkipHidden:     true,
			FollowSymlinks: false,
			IgnoreCase:     false,
			IgnoreErrors:   false,
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Pointer fields tell an explicit false or 0 apart from an absent key
	type yamlWalk struct {
		SkipHidden     *bool `yaml:"skip_hidden"`
		FollowSymlinks *bool `yaml:"follow_symlinks"`
		IgnoreCase     *bool `yaml:"ignore_case"`
		IgnoreErrors   *bool `yaml:"ignore_errors"`
	}
	type yamlConfig struct {
		LogLevel  string   `yaml:"log_level"`
		Color     string   `yaml:"color"`
		Threads   *int     `yaml:"threads"`
		PathStyle string   `yaml:"path_style"`
		Walk      yamlWalk `yaml:"walk"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.Color != "" {
		cfg.Color = yamlCfg.Color
	}
	if yamlCfg.Threads != nil {
		cfg.Threads = *yamlCfg.Threads
	}
	if yamlCfg.PathStyle != "" {
		cfg.PathStyle = yamlCfg.PathStyle
	}

	w := yamlCfg.Walk
	if w.SkipHidden != nil {
		cfg.Walk.SkipHidden = *w.SkipHidden
	}
	if w.FollowSymlinks != nil {
		cfg.Walk.FollowSymlinks = *w.FollowSymlinks
	}
	if w.IgnoreCase != nil {
		cfg.Walk.IgnoreCase = *w.IgnoreCase
	}
	if w.IgnoreErrors != nil {
		cfg.Walk.IgnoreErrors = *w.IgnoreErrors
	}

	return cfg, nil
}

// LoadConfigFromDir loads config.yaml from the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, FileName))
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
// This allows CLI flags to take precedence over config file settings
func (c *Config) MergeWithFlags(logLevel *string, color *string, threads *int, pathStyle *string) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if color != nil {
		c.Color = *color
	}
	if threads != nil {
		c.Threads = *threads
	}
	if pathStyle != nil {
		c.PathStyle = *pathStyle
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color %q, must be one of: auto, always, never", c.Color)
	}

	if c.Threads < 0 {
		return fmt.Errorf("threads must be >= 0, got %d", c.Threads)
	}

	switch c.PathStyle {
	case "native", "posix":
	default:
		return fmt.Errorf("invalid path_style %q, must be one of: native, posix", c.PathStyle)
	}

	return nil
}

// UseColor resolves the color mode for an output that may be a terminal
func (c *Config) UseColor(terminal bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return terminal
	}
}
