// Package config loads the dsn command's settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/OpenTraceLab/OpenTraceDSN/pkg/specctra/renderer"
)

// EnvVar names the environment variable that overrides the config path
const EnvVar = "DSN_CONFIG"

// Config holds the settings of the dsn command
type Config struct {
	Viewer ViewerConfig `toml:"viewer"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
}

// ViewerConfig configures the board viewer window
type ViewerConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Theme  string `toml:"theme"`
	Labels *bool  `toml:"labels"`
}

// OutputConfig configures document dumps
type OutputConfig struct {
	Format string `toml:"format"` // yaml or json
}

// LogConfig configures logging
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn or error
}

// Default returns a Config with every setting at its default
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the config file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes cfg to path, creating the directory if needed
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return f.Close()
}

// Path resolves the config file location: the flag value if set, then
// $DSN_CONFIG, then the per-user config directory.
func Path(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv(EnvVar); env != "" {
		return env, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "opentracedsn", "config.toml"), nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Viewer.Width <= 0 {
		c.Viewer.Width = 1000
	}
	if c.Viewer.Height <= 0 {
		c.Viewer.Height = 800
	}
	if c.Viewer.Theme == "" {
		c.Viewer.Theme = renderer.ThemeClassic.String()
	}
	if c.Viewer.Labels == nil {
		on := true
		c.Viewer.Labels = &on
	}
	if c.Output.Format == "" {
		c.Output.Format = "yaml"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if _, err := renderer.ParseTheme(c.Viewer.Theme); err != nil {
		return err
	}

	switch strings.ToLower(c.Output.Format) {
	case "yaml", "json":
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Theme returns the configured viewer color theme
func (c *Config) Theme() renderer.ColorTheme {
	theme, err := renderer.ParseTheme(c.Viewer.Theme)
	if err != nil {
		return renderer.ThemeClassic
	}
	return theme
}

// ShowLabels reports whether the viewer draws component labels
func (c *Config) ShowLabels() bool {
	return c.Viewer.Labels == nil || *c.Viewer.Labels
}

// SlogLevel maps the configured level name to a slog.Level
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return level, nil
}
