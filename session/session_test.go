package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	in := FromHistory([]string{"http://a.com/", "http://b.com/"})

	if err := SaveTo(path, in); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}
	out, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if out.LastURL != "http://b.com/" || len(out.History) != 2 {
		t.Errorf("loaded %+v", out)
	}
}

func TestLoadFromMissing(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "none.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestLoadFromCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	os.WriteFile(path, []byte("{not json"), 0644)
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestFromHistory(t *testing.T) {
	if s := FromHistory(nil); s.LastURL != "" || len(s.History) != 0 {
		t.Errorf("empty history gave %+v", s)
	}

	var long []string
	for i := 0; i < MaxHistory+5; i++ {
		long = append(long, fmt.Sprintf("http://example.com/%d", i))
	}
	s := FromHistory(long)
	if len(s.History) != MaxHistory {
		t.Errorf("kept %d entries", len(s.History))
	}
	if s.History[0] != "http://example.com/5" || s.LastURL != long[len(long)-1] {
		t.Errorf("trimmed wrong end: first %q last %q", s.History[0], s.LastURL)
	}
}

func TestSaveUsesConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	if err := Save(FromHistory([]string{"http://x.com/"})); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	s, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.LastURL != "http://x.com/" {
		t.Errorf("LastURL = %q", s.LastURL)
	}
	if err := Clear(); err != nil {
		t.Errorf("Clear failed: %v", err)
	}
	if _, err := Load(); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("session still present after Clear: %v", err)
	}
	if err := Clear(); err != nil {
		t.Errorf("Clear without a session file: %v", err)
	}
}
