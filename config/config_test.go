package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultTOMLMatchesDefault(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, DefaultTOML()))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("DefaultTOML decodes to %+v, expected %+v", cfg, Default())
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default() is invalid: %v", err)
	}
}

func TestLoadFileOverridesOnlyGivenKeys(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, `
[home]
url = "http://example.com/"

[session]
restoreSession = false

[input]
keysPerIteration = 4
`))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Home.URL != "http://example.com/" {
		t.Errorf("Home.URL = %q", cfg.Home.URL)
	}
	if cfg.Session.RestoreSession {
		t.Error("restoreSession = false was not applied")
	}
	if cfg.Input.KeysPerIteration != 4 || cfg.Input.MouseEventsPerIteration != 1 {
		t.Errorf("Input = %+v", cfg.Input)
	}
	if cfg.Fetcher.TimeoutSeconds != 30 || cfg.Window.Title != "saba" {
		t.Error("defaults lost for keys not in the file")
	}
}

func TestLoadFileSearchPrefixes(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, `
[[search.prefix]]
names = ["gh"]
url = "https://github.com/search?q=%s"
display = "GitHub"
`))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	prefixes := cfg.OmniboxPrefixes()
	if len(prefixes) != 1 || prefixes[0].Names[0] != "gh" || prefixes[0].Display != "GitHub" {
		t.Errorf("prefixes = %+v", prefixes)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"malformed", "[window\nx = 1", "loading config"},
		{"unknown key", "[window]\nwidth = 800\n", "unknown keys: window.width"},
		{"zero keys", "[input]\nkeysPerIteration = 0\n", "keysPerIteration"},
		{"negative timeout", "[fetcher]\ntimeoutSeconds = -1\n", "timeoutSeconds"},
		{"bad search", "[search]\nurlFormat = \"https://x/\"\n", "urlFormat"},
		{"bad level", "[log]\nlevel = \"loud\"\n", "log.level"},
		{"negative position", "[window]\nx = -8\n", "window position"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected an error for an explicit missing file")
	}
}

func TestLoadWithoutUserConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestLoadReadsUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "saba")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[window]\ntitle = \"mine\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Window.Title != "mine" {
		t.Errorf("title = %q", cfg.Window.Title)
	}
}

func TestDurationsAndLevel(t *testing.T) {
	cfg := Default()
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Timeout() = %v", cfg.Timeout())
	}
	if cfg.PollTimeout() != 10*time.Millisecond {
		t.Errorf("PollTimeout() = %v", cfg.PollTimeout())
	}

	for in, want := range map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		cfg.Log.Level = in
		got, err := cfg.LogLevel()
		if err != nil || got != want {
			t.Errorf("LogLevel(%q) = %v, %v", in, got, err)
		}
	}
}

func TestFormatError(t *testing.T) {
	msg := FormatError(os.ErrNotExist)
	if !strings.HasPrefix(msg, "Configuration error:") {
		t.Errorf("FormatError = %q", msg)
	}
}
