package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "default-provider").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value for this key to the given Config (in memory only;
	// the caller is responsible for calling Save).
	Set func(cfg *Config, value string)

	// Validate rejects values the application cannot use. Nil accepts
	// anything.
	Validate func(value string) error
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "theme-mode",
		Description: "Appearance at start-up: light, dark or system",
		Get:         func(cfg *Config) string { return cfg.ThemeMode },
		Set:         func(cfg *Config, v string) { cfg.ThemeMode = v },
		Validate:    oneOf("light", "dark", "system"),
	},
	{
		Name:        "password-policy",
		Description: "Password rules for sign-up: basic (6+ chars) or strong",
		Get:         func(cfg *Config) string { return cfg.PasswordPolicy },
		Set:         func(cfg *Config, v string) { cfg.PasswordPolicy = v },
		Validate:    oneOf("basic", "strong"),
	},
	{
		Name:        "storage-backend",
		Description: "Where session and theme are kept: sqlite, keyring or memory",
		Get:         func(cfg *Config) string { return cfg.StorageBackend },
		Set:         func(cfg *Config, v string) { cfg.StorageBackend = v },
		Validate:    oneOf("sqlite", "keyring", "memory"),
	},
	{
		Name:        "auth-delay",
		Description: "Simulated sign-in latency, e.g. 1s or 250ms",
		Get:         func(cfg *Config) string { return cfg.AuthDelay },
		Set:         func(cfg *Config, v string) { cfg.AuthDelay = v },
		Validate:    validDuration,
	},
	{
		Name:        "log-write",
		Description: "Write logs to the config directory (true/false)",
		Get:         func(cfg *Config) string { return cfg.LogWrite },
		Set:         func(cfg *Config, v string) { cfg.LogWrite = v },
		Validate:    validBool,
	},
	{
		Name:        "log-level",
		Description: "Minimum log level: trace, debug, info, warn, error",
		Get:         func(cfg *Config) string { return cfg.LogLevel },
		Set:         func(cfg *Config, v string) { cfg.LogLevel = v },
		Validate:    oneOf("trace", "debug", "info", "warn", "error"),
	},
	{
		Name:        "log-json",
		Description: "Write log lines as JSON (true/false)",
		Get:         func(cfg *Config) string { return cfg.LogJSON },
		Set:         func(cfg *Config, v string) { cfg.LogJSON = v },
		Validate:    validBool,
	},
}

func oneOf(allowed ...string) func(string) error {
	return func(v string) error {
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		return fmt.Errorf("invalid value %q (valid: %s)", v, strings.Join(allowed, ", "))
	}
}

func validDuration(v string) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", v, err)
	}
	if d < 0 {
		return fmt.Errorf("duration must not be negative, got %s", v)
	}
	return nil
}

func validBool(v string) error {
	if _, err := strconv.ParseBool(v); err != nil {
		return fmt.Errorf("invalid boolean %q", v)
	}
	return nil
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	// Find the longest key name for alignment.
	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
