// Package config handles the XDG configuration directory, the optional
// config.yaml inside it, and the paths derived from both.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"todo/internal/logging"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional settings file in the config directory.
	ConfigFile = "config.yaml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// DefaultStorageKey is the key the task collection is stored under.
	DefaultStorageKey = "TodoData"

	// DefaultListen is the address `todo serve` binds to.
	DefaultListen = "127.0.0.1:8080"
)

// Backend names a storage implementation.
type Backend string

// Supported backends.
const (
	BackendBadger Backend = "badger"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// Settings is the content of config.yaml.
type Settings struct {
	Backend    Backend `yaml:"backend"`
	DataDir    string  `yaml:"data_dir"`
	StorageKey string  `yaml:"storage_key"`
	Listen     string  `yaml:"listen"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Logger is set by the dispatcher from Debug. Use Log to read it.
	Logger *slog.Logger

	Settings
}

// Log returns the configured logger, or one that discards.
func (c *Config) Log() *slog.Logger {
	if c.Logger == nil {
		return logging.Discard()
	}
	return c.Logger
}

// New creates a Config with default settings for the given directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir, Settings: DefaultSettings()}, nil
}

// Load is New followed by reading config.yaml, if present.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.ReadFile(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultSettings returns the settings used when config.yaml is absent.
func DefaultSettings() Settings {
	return Settings{
		Backend:    BackendBadger,
		StorageKey: DefaultStorageKey,
		Listen:     DefaultListen,
	}
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ReadFile merges config.yaml over the current settings. A missing file is
// not an error; keys absent from the file keep their current values.
func (c *Config) ReadFile() error {
	data, err := os.ReadFile(c.FilePath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", ConfigFile, err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	if s.Backend != "" {
		c.Backend = Backend(strings.ToLower(string(s.Backend)))
	}
	if s.DataDir != "" {
		c.DataDir = s.DataDir
	}
	if s.StorageKey != "" {
		c.StorageKey = s.StorageKey
	}
	if s.Listen != "" {
		c.Listen = s.Listen
	}
	return c.Validate()
}

// Validate checks the settings.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendBadger, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown backend: %s", c.Backend)
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		return errors.New("storage_key must not be empty")
	}
	return nil
}

// FilePath returns the path to config.yaml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DataPath returns the storage directory. Relative data_dir values are
// resolved against the config directory.
func (c *Config) DataPath() string {
	switch {
	case c.DataDir == "":
		return filepath.Join(c.Dir, "data")
	case filepath.IsAbs(c.DataDir):
		return c.DataDir
	default:
		return filepath.Join(c.Dir, c.DataDir)
	}
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
