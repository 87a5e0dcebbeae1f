package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Remote  RemoteConfig  `yaml:"remote"`
	Sync    SyncConfig    `yaml:"sync"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
}

// StorageConfig selects where quotes are persisted.
type StorageConfig struct {
	Backend string `yaml:"backend"` // json, sqlite
	Path    string `yaml:"path"`    // empty = backend default under ~/.config/quotes
}

// RemoteConfig points the sync client at the placeholder endpoint.
type RemoteConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// SyncConfig controls the periodic sync loop.
type SyncConfig struct {
	Enabled  *bool         `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // used by the TUI so logs don't draw over the screen
}

// ServerConfig configures the placeholder endpoint started by `quotes serve`.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// SyncEnabled reports whether the periodic sync loop should run.
func (c Config) SyncEnabled() bool {
	return c.Sync.Enabled == nil || *c.Sync.Enabled
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	enabled := true
	return Config{
		Storage: StorageConfig{
			Backend: "json",
		},
		Remote: RemoteConfig{
			URL:     "https://jsonplaceholder.typicode.com/posts",
			Timeout: 30 * time.Second,
		},
		Sync: SyncConfig{
			Enabled:  &enabled,
			Interval: 60 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load reads config from the YAML file.
// Creates the file with defaults if it doesn't exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = Save(path, &config)
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &config, nil
}

// applyDefaults fills fields missing from the file.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Remote.URL == "" {
		c.Remote.URL = defaults.Remote.URL
	}
	if c.Remote.Timeout == 0 {
		c.Remote.Timeout = defaults.Remote.Timeout
	}
	if c.Sync.Enabled == nil {
		c.Sync.Enabled = defaults.Sync.Enabled
	}
	if c.Sync.Interval == 0 {
		c.Sync.Interval = defaults.Sync.Interval
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("storage.backend must be json or sqlite, got %q", c.Storage.Backend)
	}
	if c.Sync.Interval < 0 {
		return fmt.Errorf("sync.interval must be positive, got %s", c.Sync.Interval)
	}
	if c.Remote.Timeout < 0 {
		return fmt.Errorf("remote.timeout must be positive, got %s", c.Remote.Timeout)
	}
	return nil
}

// Save writes config to the YAML file.
// Creates the directory if it doesn't exist.
func Save(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultPath returns the default config path: ~/.config/quotes/config.yaml
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "quotes", "config.yaml"), nil
}
