// Saba is a minimal web browser with a windowed UI drawn in the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"saba/config"
	"saba/display"
	"saba/fetcher"
	"saba/page"
	"saba/session"
	"saba/ui"
	"saba/window"
)

func main() {
	url := ""
	configPath := ""
	initConfig := false
	clearSession := false

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "--config":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "error: --config needs a path")
				os.Exit(2)
			}
			i++
			configPath = args[i]
		case "--init-config":
			initConfig = true
		case "--clear-session":
			clearSession = true
		case "-h", "--help":
			printUsage()
			return
		default:
			if url == "" {
				url = arg
			}
		}
	}

	// Generate default config and exit
	if initConfig {
		fmt.Print(config.DefaultTOML())
		return
	}

	if clearSession {
		if err := session.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(url, configPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Saba - a minimal web browser

Usage: saba [options] [url]

Options:
  --config path     Read configuration from path
  --init-config     Output default config (redirect to ~/.config/saba/config.toml)
  --clear-session   Forget the saved history and last page
  -h, --help        Show this help

Click the address bar to type an address or a search, Enter to load it.
Click a link to follow it. Ctrl-C quits.

Examples:
  saba                                Open the home page or the last session
  saba http://example.com/            Open URL
  saba --init-config > ~/.config/saba/config.toml`)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// newLogger writes to the configured log file; the terminal belongs to the UI.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	if cfg.Log.File == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { f.Close() }, nil
}

// pageBrowser exposes a page.Browser through the ui boundary.
type pageBrowser struct {
	*page.Browser
}

func (b pageBrowser) CurrentPage() ui.Page {
	return b.Browser.CurrentPage()
}

func run(url, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return errors.New(config.FormatError(err))
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	browser := page.New()
	if cfg.Session.RestoreSession {
		s, err := session.Load()
		switch {
		case err == nil:
			browser.SetHistory(s.History)
			if url == "" {
				url = s.LastURL
			}
		case !errors.Is(err, fs.ErrNotExist):
			logger.Warn("session not restored", "err", err)
		}
	}
	if url == "" {
		url = cfg.Home.URL
	}

	f := fetcher.New(fetcher.Options{
		UserAgent:  cfg.Fetcher.UserAgent,
		Timeout:    cfg.Timeout(),
		ChromePath: cfg.Fetcher.ChromePath,
		UseBrowser: cfg.Fetcher.UseBrowser,
		SearchURL:  cfg.Search.URLFormat,
		Prefixes:   cfg.OmniboxPrefixes(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pos := display.Point{X: cfg.Window.X, Y: cfg.Window.Y}
	win, err := window.Open(os.Stdin, os.Stdout, window.Options{
		Position:    pos,
		Title:       cfg.Window.Title,
		PollTimeout: cfg.PollTimeout(),
		Interrupt:   cancel,
	})
	if err != nil {
		return err
	}

	s := ui.NewSession(pageBrowser{browser}, win, f, ui.Options{
		WindowPos: pos,
		Drain: ui.DrainPolicy{
			Keys:        cfg.Input.KeysPerIteration,
			MouseEvents: cfg.Input.MouseEventsPerIteration,
		},
		Logger: logger,
	})

	logger.Info("starting", "url", url)
	err = s.Start(ctx, url)
	win.Close()

	if cfg.Session.RestoreSession {
		if serr := session.Save(session.FromHistory(browser.History())); serr != nil {
			logger.Warn("session not saved", "err", serr)
		}
	}

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
