// Package config handles persistent user configuration for zipporder.
//
// Configuration is stored as JSON at ~/.config/zipporder/config.json (or the
// platform-equivalent path returned by os.UserConfigDir).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	appDir   = "zipporder"
	fileName = "config.json"
)

// pathOverride, when non-empty, replaces the default config file path.
// Intended for testing. Use SetPath / ResetPath to manage.
var pathOverride string

// SetPath overrides the config file path. Intended for testing.
func SetPath(p string) { pathOverride = p }

// ResetPath clears the path override, reverting to the default. Intended for testing.
func ResetPath() { pathOverride = "" }

// Config holds user preferences that persist across invocations.
type Config struct {
	ThemeMode      string `json:"theme_mode,omitempty"`
	PasswordPolicy string `json:"password_policy,omitempty"`
	StorageBackend string `json:"storage_backend,omitempty"`
	AuthDelay      string `json:"auth_delay,omitempty"`
	LogWrite       string `json:"log_write,omitempty"`
	LogLevel       string `json:"log_level,omitempty"`
	LogJSON        string `json:"log_json,omitempty"`
}

// Defaults applied by the accessors when a field is unset.
const (
	DefaultThemeMode      = "system"
	DefaultPasswordPolicy = "basic"
	DefaultStorageBackend = "sqlite"
	DefaultAuthDelay      = time.Second
	DefaultLogLevel       = "info"
)

// ThemeModeOrDefault returns the configured start-up theme mode.
func (c *Config) ThemeModeOrDefault() string {
	return orDefault(c.ThemeMode, DefaultThemeMode)
}

// PasswordPolicyOrDefault returns the configured password policy.
func (c *Config) PasswordPolicyOrDefault() string {
	return orDefault(c.PasswordPolicy, DefaultPasswordPolicy)
}

// StorageBackendOrDefault returns the configured key-value backend.
func (c *Config) StorageBackendOrDefault() string {
	return orDefault(c.StorageBackend, DefaultStorageBackend)
}

// AuthDelayOrDefault parses the simulated authentication latency. Invalid
// or negative values fall back to DefaultAuthDelay.
func (c *Config) AuthDelayOrDefault() time.Duration {
	if c.AuthDelay == "" {
		return DefaultAuthDelay
	}
	d, err := time.ParseDuration(c.AuthDelay)
	if err != nil || d < 0 {
		return DefaultAuthDelay
	}
	return d
}

// LogWriteEnabled reports whether file logging is switched on.
func (c *Config) LogWriteEnabled() bool {
	b, _ := strconv.ParseBool(c.LogWrite)
	return b
}

// LogJSONEnabled reports whether log lines are written as JSON.
func (c *Config) LogJSONEnabled() bool {
	b, _ := strconv.ParseBool(c.LogJSON)
	return b
}

// LogLevelOrDefault returns the configured log level.
func (c *Config) LogLevelOrDefault() string {
	return orDefault(c.LogLevel, DefaultLogLevel)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Dir returns the directory holding the config file. Other local state
// (database, logs) lives next to it.
func Dir() (string, error) {
	p, err := Path()
	if err != nil {
		return "", err
	}
	return filepath.Dir(p), nil
}

// Path returns the absolute path to the config file.
// If SetPath has been called, that value is returned instead.
// Otherwise it uses os.UserConfigDir which resolves to
// ~/Library/Application Support on macOS, ~/.config on Linux, and
// %AppData% on Windows.
func Path() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: unable to determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, fileName), nil
}

// Load reads the config file from disk and returns the parsed Config.
// If the file does not exist, a zero-value Config is returned (not an error).
func Load() (*Config, error) {
	return loadFrom("")
}

// loadFrom reads the config from the given path. If path is empty, the
// default Path() is used. Exported only for testing via LoadFrom.
func loadFrom(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the parent directory if needed.
func (c *Config) Save() error {
	return c.saveTo("")
}

// saveTo writes the config to the given path. If path is empty, the
// default Path() is used.
func (c *Config) saveTo(path string) error {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}

	return nil
}

// LoadFrom reads the config from the given path. Intended for testing.
func LoadFrom(path string) (*Config, error) {
	return loadFrom(path)
}

// SaveTo writes the config to the given path. Intended for testing.
func (c *Config) SaveTo(path string) error {
	return c.saveTo(path)
}
