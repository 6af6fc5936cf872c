// Package config provides configuration loading for saba using TOML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"saba/omnibox"
)

// Window placement on the screen, in pixels.
type Window struct {
	X     int    `toml:"x"`
	Y     int    `toml:"y"`
	Title string `toml:"title"`
}

// Home page settings
type Home struct {
	URL string `toml:"url"` // loaded at startup when no address is given
}

// HTTP fetching settings
type Fetcher struct {
	UserAgent      string `toml:"userAgent"`
	TimeoutSeconds int    `toml:"timeoutSeconds"`
	ChromePath     string `toml:"chromePath"`
	UseBrowser     bool   `toml:"useBrowser"` // render pages with headless Chrome
}

// SearchPrefix is an extra address-bar search shortcut, e.g. "gh cats".
type SearchPrefix struct {
	Names   []string `toml:"names"`
	URL     string   `toml:"url"` // %s is replaced by the escaped query
	Display string   `toml:"display"`
}

// Search settings
type Search struct {
	URLFormat string         `toml:"urlFormat"`
	Prefixes  []SearchPrefix `toml:"prefix"`
}

// Input polling settings
type Input struct {
	KeysPerIteration        int `toml:"keysPerIteration"`
	MouseEventsPerIteration int `toml:"mouseEventsPerIteration"`
	PollTimeoutMillis       int `toml:"pollTimeoutMillis"`
}

// Session settings
type Session struct {
	RestoreSession bool `toml:"restoreSession"`
}

// Log settings
type Log struct {
	File  string `toml:"file"` // empty discards log output
	Level string `toml:"level"`
}

// Config is the main configuration struct
type Config struct {
	Window  Window  `toml:"window"`
	Home    Home    `toml:"home"`
	Fetcher Fetcher `toml:"fetcher"`
	Search  Search  `toml:"search"`
	Input   Input   `toml:"input"`
	Session Session `toml:"session"`
	Log     Log     `toml:"log"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Window: Window{
			X:     0,
			Y:     0,
			Title: "saba",
		},
		Fetcher: Fetcher{
			UserAgent:      "saba/0.1",
			TimeoutSeconds: 30,
		},
		Search: Search{
			URLFormat: omnibox.DefaultSearch,
		},
		Input: Input{
			KeysPerIteration:        1,
			MouseEventsPerIteration: 1,
			PollTimeoutMillis:       10,
		},
		Session: Session{
			RestoreSession: true,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Dir returns the configuration directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "saba"), nil
}

// ConfigPath returns the path to the user's config file.
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the user's config file over the defaults.
// Returns the default config if no user config exists.
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return Default(), nil // Return defaults if we can't determine path
	}

	cfg, err := LoadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile loads a config file over the defaults. Keys missing from the
// file keep their default values; unknown keys are an error.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("loading config from %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values the decoder cannot.
func (c *Config) Validate() error {
	if c.Fetcher.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetcher.timeoutSeconds must be positive, got %d", c.Fetcher.TimeoutSeconds)
	}
	if c.Input.KeysPerIteration < 1 {
		return fmt.Errorf("input.keysPerIteration must be at least 1, got %d", c.Input.KeysPerIteration)
	}
	if c.Input.MouseEventsPerIteration < 1 {
		return fmt.Errorf("input.mouseEventsPerIteration must be at least 1, got %d", c.Input.MouseEventsPerIteration)
	}
	if c.Input.PollTimeoutMillis < 0 {
		return fmt.Errorf("input.pollTimeoutMillis must not be negative, got %d", c.Input.PollTimeoutMillis)
	}
	if c.Window.X < 0 || c.Window.Y < 0 {
		return fmt.Errorf("window position must not be negative, got (%d, %d)", c.Window.X, c.Window.Y)
	}
	if c.Search.URLFormat != "" && !strings.Contains(c.Search.URLFormat, "%s") {
		return fmt.Errorf("search.urlFormat must contain %%s, got %q", c.Search.URLFormat)
	}
	for _, p := range c.Search.Prefixes {
		if len(p.Names) == 0 || !strings.Contains(p.URL, "%s") {
			return fmt.Errorf("search prefix %q needs names and a url containing %%s", p.Display)
		}
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// Timeout returns the fetch timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Fetcher.TimeoutSeconds) * time.Second
}

// PollTimeout returns how long a keyboard poll may wait.
func (c *Config) PollTimeout() time.Duration {
	return time.Duration(c.Input.PollTimeoutMillis) * time.Millisecond
}

// LogLevel parses log.level ("debug", "info", "warn", "error").
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// OmniboxPrefixes converts the configured search prefixes.
func (c *Config) OmniboxPrefixes() []omnibox.Prefix {
	out := make([]omnibox.Prefix, 0, len(c.Search.Prefixes))
	for _, p := range c.Search.Prefixes {
		out = append(out, omnibox.Prefix{Names: p.Names, URLFmt: p.URL, Display: p.Display})
	}
	return out
}

// DefaultTOML returns the default configuration as a TOML string.
// Used for --init-config to generate a user config file.
func DefaultTOML() string {
	return `# saba configuration
# Save to ~/.config/saba/config.toml and customize
# Only include settings you want to change from defaults

# Window placement in screen pixels (one terminal cell is 8x16)
[window]
x = 0
y = 0
title = "saba"

# Page loaded at startup when no address is given
[home]
url = ""

# HTTP fetching settings
[fetcher]
userAgent = "saba/0.1"
timeoutSeconds = 30
chromePath = ""               # Path to Chrome/Chromium (empty = auto-detect)
useBrowser = false            # Render pages with headless Chrome

# Address-bar search
[search]
urlFormat = "` + omnibox.DefaultSearch + `"

# Extra search prefixes, typed as "<name> <query>"
# [[search.prefix]]
# names = ["gh"]
# url = "https://github.com/search?q=%s"
# display = "GitHub"

# Event loop
[input]
keysPerIteration = 1          # Keystrokes handled per loop iteration
mouseEventsPerIteration = 1   # Pointer events handled per loop iteration
pollTimeoutMillis = 10        # How long a keyboard poll waits

# Session settings
[session]
restoreSession = true         # Reopen the last page when started without an address

# Logging (the terminal belongs to the UI, so logs go to a file)
[log]
file = ""                     # Empty discards log output
level = "info"                # debug, info, warn or error
`
}

// FormatError formats a configuration error for user display.
func FormatError(err error) string {
	return fmt.Sprintf("Configuration error:\n\n%s", err.Error())
}
