package ui

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"saba/display"
	"saba/lineedit"
)

// DrainPolicy bounds how many events each poll step consumes per loop
// iteration.
type DrainPolicy struct {
	Keys        int
	MouseEvents int
}

// DefaultDrainPolicy handles one key and one mouse event per iteration.
func DefaultDrainPolicy() DrainPolicy {
	return DrainPolicy{Keys: 1, MouseEvents: 1}
}

// maxUndo bounds the address bar's undo history.
const maxUndo = 100

// Options configures a Session.
type Options struct {
	// WindowPos is the window's top-left corner in screen pixels.
	WindowPos display.Point
	Drain     DrainPolicy
	Logger    *slog.Logger
}

// Session is the single owner of the UI state. It is not safe for
// concurrent use; everything happens on the goroutine running Run.
type Session struct {
	browser Browser
	surface Surface
	fetcher Fetcher
	log     *slog.Logger

	windowPos display.Point
	drain     DrainPolicy
	mode      InputMode
	address   *lineedit.Editor
	keys      lineedit.KeyScheme
	cursor    Cursor
}

// NewSession creates a session in Normal mode with an empty address bar.
func NewSession(browser Browser, surface Surface, f Fetcher, opts Options) *Session {
	if opts.Drain.Keys <= 0 {
		opts.Drain.Keys = 1
	}
	if opts.Drain.MouseEvents <= 0 {
		opts.Drain.MouseEvents = 1
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	address := lineedit.New()
	address.SetMaxHistory(maxUndo)
	return &Session{
		browser:   browser,
		surface:   surface,
		fetcher:   f,
		log:       opts.Logger,
		windowPos: opts.WindowPos,
		drain:     opts.Drain,
		address:   address,
		keys:      lineedit.NewEmacsScheme(),
	}
}

// Mode returns the current input mode.
func (s *Session) Mode() InputMode { return s.mode }

// Address returns the address-bar buffer.
func (s *Session) Address() string { return s.address.Text() }

// Cursor returns the pointer state.
func (s *Session) Cursor() Cursor { return s.cursor }

// Start paints the toolbar, loads initial when it is not empty and then
// runs the event loop until it fails or ctx is done.
func (s *Session) Start(ctx context.Context, initial string) error {
	s.log.Debug("session started", "keys", s.keys.Name(), "drain", s.drain)
	if err := s.setupToolbar(); err != nil {
		return err
	}
	if initial != "" {
		s.address.Set(initial)
		if err := s.updateAddressBar(); err != nil {
			return err
		}
		if err := s.Navigate(initial); err != nil {
			return err
		}
	}
	return s.Run(ctx)
}

// Run polls the keyboard and then the pointer, forever. It returns the
// first handler error, or ctx.Err() once ctx is done.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Step(); err != nil {
			return err
		}
	}
}

// Step runs one loop iteration: the keyboard poll, then the pointer poll.
func (s *Session) Step() error {
	for i := 0; i < s.drain.Keys; i++ {
		r, ok := s.surface.PollKey()
		if !ok {
			break
		}
		if err := s.HandleKey(r); err != nil {
			return err
		}
	}
	for i := 0; i < s.drain.MouseEvents; i++ {
		ev, ok := s.surface.PollMouse()
		if !ok {
			break
		}
		if err := s.HandleMouse(ev); err != nil {
			return err
		}
	}
	return nil
}

// HandleKey applies one keystroke. Outside Editing mode keys are dropped.
func (s *Session) HandleKey(r rune) error {
	if s.mode != Editing {
		return nil
	}

	ev := s.keys.HandleKey(s.address, r)
	if !ev.Consumed {
		return nil
	}
	if ev.Submit {
		if err := s.Navigate(s.address.Text()); err != nil {
			return err
		}
		s.address.Clear()
		s.setMode(Normal)
	}
	return s.updateAddressBar()
}

// HandleMouse moves the cursor and, for presses, switches focus or follows
// the link under the pointer.
func (s *Session) HandleMouse(ev MouseEvent) error {
	s.moveCursor(ev.Position)
	if !ev.Buttons.Pressed() {
		return nil
	}

	region, local := HitTest(ev.Position, s.windowPos)
	switch region {
	case OutsideWindow:
		s.log.Debug("press outside window", "position", ev.Position)
		return nil

	case Toolbar:
		if err := s.clearAddressBar(); err != nil {
			return err
		}
		s.address.Clear()
		s.setMode(Editing)
		return nil
	}

	s.setMode(Normal)
	dest, ok := s.browser.CurrentPage().Clicked(local)
	if !ok {
		return nil
	}
	s.address.Set(dest)
	if err := s.updateAddressBar(); err != nil {
		return err
	}
	return s.Navigate(dest)
}

// Navigate clears the content area, fetches destination, hands the response
// to the current page and repaints it. Fetch errors are returned unchanged.
func (s *Session) Navigate(destination string) error {
	log := s.log.With("nav", uuid.NewString(), "destination", destination)
	log.Info("navigation started")

	if err := s.clearContentArea(); err != nil {
		return err
	}

	resp, err := s.fetcher.Fetch(destination)
	if err != nil {
		log.Warn("fetch failed", "err", err)
		return err
	}

	if err := s.browser.CurrentPage().ReceiveResponse(resp); err != nil {
		log.Warn("page rejected response", "err", err)
		return err
	}

	if err := s.Redraw(); err != nil {
		return err
	}
	log.Info("navigation finished", "url", resp.URL, "status", resp.StatusCode)
	return nil
}

func (s *Session) setMode(m InputMode) {
	if s.mode != m {
		s.log.Debug("input mode changed", "from", s.mode, "to", m)
	}
	s.mode = m
}
