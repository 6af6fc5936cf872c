// Replay runs a scripted browsing session against an in-memory window and
// prints every drawing call. Useful for debugging layout and input handling
// without a terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"saba/config"
	"saba/display"
	"saba/fetcher"
	"saba/page"
	"saba/ui"
	"saba/window"
)

type pageBrowser struct {
	*page.Browser
}

func (b pageBrowser) CurrentPage() ui.Page {
	return b.Browser.CurrentPage()
}

func main() {
	var scriptPath, initial string
	verbose := false
	for _, arg := range os.Args[1:] {
		switch arg {
		case "-v":
			verbose = true
		default:
			if scriptPath == "" {
				scriptPath = arg
			} else if initial == "" {
				initial = arg
			}
		}
	}
	if scriptPath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay [-v] script.txt|- [url]")
		os.Exit(2)
	}

	if err := run(scriptPath, initial, verbose, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(scriptPath, initial string, verbose bool, out io.Writer) error {
	var in io.Reader = os.Stdin
	if scriptPath != "-" {
		f, err := os.Open(scriptPath)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	steps, err := parseScript(in)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.DiscardHandler)
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	f := fetcher.New(fetcher.Options{
		UserAgent: cfg.Fetcher.UserAgent,
		Timeout:   cfg.Timeout(),
		SearchURL: cfg.Search.URLFormat,
		Prefixes:  cfg.OmniboxPrefixes(),
	})

	origin := display.Point{}
	rec := window.NewRecorder()

	// Start paints the toolbar and loads initial; the loop stops as soon as
	// it finds no input.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.OnIdle = cancel

	s := ui.NewSession(pageBrowser{page.New()}, rec, f, ui.Options{WindowPos: origin, Logger: logger})
	err = s.Start(ctx, initial)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	rec.OnIdle = nil

	// steps run one at a time so keys typed after a click see its effect
	for i := 0; err == nil && i < len(steps); i++ {
		queue(rec, steps[i:i+1], origin)
		for err == nil && pending(rec) {
			err = s.Step()
		}
	}

	for _, c := range rec.Calls {
		if c.Op == window.OpFlushArea || c.Op == window.OpDrawPointer {
			continue
		}
		fmt.Fprintln(out, c)
	}
	fmt.Fprintf(out, "mode=%s address=%q\n", s.Mode(), s.Address())
	return err
}

func pending(rec *window.Recorder) bool {
	keys, mouse := rec.Pending()
	return keys+mouse > 0
}
