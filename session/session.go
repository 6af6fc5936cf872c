// Package session handles saving and restoring browser session state.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// MaxHistory bounds how many visited URLs are kept on disk.
const MaxHistory = 200

// Session is the browsing state kept between runs.
type Session struct {
	LastURL string   `json:"lastURL"`
	History []string `json:"history"` // oldest first
}

// FromHistory builds a session whose last URL is the newest history entry.
func FromHistory(history []string) *Session {
	if len(history) > MaxHistory {
		history = history[len(history)-MaxHistory:]
	}
	s := &Session{History: append([]string(nil), history...)}
	if n := len(history); n > 0 {
		s.LastURL = history[n-1]
	}
	return s
}

// Path returns the session file path.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "saba", "session.json"), nil
}

// Load reads the session from disk.
func Load() (*Session, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads a session file.
func LoadFrom(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing session %s: %w", path, err)
	}
	return &s, nil
}

// Save writes the session to disk.
func Save(s *Session) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(path, s)
}

// SaveTo writes a session file, creating its directory.
func SaveTo(path string, s *Session) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Clear removes the session file.
func Clear() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
