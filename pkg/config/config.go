// Package config handles loading and saving pb configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/playbook/config.yaml
//   - State:   ~/.local/state/playbook/ (log files)
//
// Precedence is flag > environment > file > default; flags are applied by
// the caller, ApplyEnv handles the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/playbook/pkg/content"
)

const appDir = "playbook"

// UIConfig holds presentation preferences.
type UIConfig struct {
	DefaultTopic      content.Topic `yaml:"default_topic,omitempty"`      // traffic, conversion, ticket-size
	ExpandedResponses bool          `yaml:"expanded_responses,omitempty"` // start with full objection responses
}

// ContentConfig selects the dataset.
type ContentConfig struct {
	Path string `yaml:"path,omitempty"` // alternate playbook YAML; empty = builtin
}

// SessionConfig tunes session rules.
type SessionConfig struct {
	PermissiveToggles bool `yaml:"permissive_toggles,omitempty"` // allow toggling items outside the active topic
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	Level      string `yaml:"level,omitempty"` // debug, info, warn, error
	File       string `yaml:"file,omitempty"`  // default: StateDir()/pb.log
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
}

// Config is the top-level configuration for pb.
type Config struct {
	UI      UIConfig      `yaml:"ui,omitempty"`
	Content ContentConfig `yaml:"content,omitempty"`
	Session SessionConfig `yaml:"session,omitempty"`
	Log     LogConfig     `yaml:"log,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			DefaultTopic: content.TopicTraffic,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
	}
}

// ConfigDir returns the XDG config directory for pb.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDir)
}

// StateDir returns the XDG state directory for pb.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", appDir)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// LogPath returns the configured log file, falling back to the state dir.
func (c Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	dir := StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "pb.log")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}

	cfg.Content.Path = expandHome(cfg.Content.Path)
	cfg.Log.File = expandHome(cfg.Log.File)
	return cfg, nil
}

// Validate rejects values the rest of the program cannot use.
func (c Config) Validate() error {
	if c.UI.DefaultTopic != "" && !c.UI.DefaultTopic.IsValid() {
		return fmt.Errorf("config: ui.default_topic %q is not one of traffic, conversion, ticket-size", c.UI.DefaultTopic)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		return fmt.Errorf("config: log sizes must not be negative")
	}
	return nil
}

// ApplyEnv overlays PB_CONTENT and PB_DEBUG onto the config.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("PB_CONTENT")); v != "" {
		c.Content.Path = expandHome(v)
	}
	if os.Getenv("PB_DEBUG") != "" {
		c.Log.Level = "debug"
	}
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
