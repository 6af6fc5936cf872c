// Package ui is the interactive front end of the browser. A Session owns the
// event loop: it polls the host window for keys and pointer events, keeps
// the address bar, drives navigation and paints the page's display items.
package ui

import (
	"saba/display"
	"saba/fetcher"
)

// InputMode tells whether keystrokes go to the address bar.
type InputMode int

const (
	Normal InputMode = iota
	Editing
)

func (m InputMode) String() string {
	if m == Editing {
		return "editing"
	}
	return "normal"
}

// Buttons is the set of pointer buttons held during a mouse event.
type Buttons uint8

const (
	ButtonLeft Buttons = 1 << iota
	ButtonMiddle
	ButtonRight
)

// Pressed reports whether any button is held.
func (b Buttons) Pressed() bool { return b&(ButtonLeft|ButtonMiddle|ButtonRight) != 0 }

// MouseEvent is a pointer sample in absolute screen pixels.
type MouseEvent struct {
	Buttons  Buttons
	Position display.Point
}

// Rect is an area in pixels.
type Rect struct {
	X, Y, Width, Height int
}

// StringSize is the host's text size category.
type StringSize int

const (
	SizeMedium StringSize = iota
	SizeLarge
	SizeXLarge
)

func (s StringSize) String() string {
	switch s {
	case SizeLarge:
		return "large"
	case SizeXLarge:
		return "xlarge"
	}
	return "medium"
}

// Surface is the host window. Drawing coordinates are relative to the
// window's content origin, just below the host-drawn title bar; flush
// areas are absolute screen rectangles. Poll methods never block for long
// and report false when no event is pending.
type Surface interface {
	FillRect(color display.Color, x, y, width, height int) error
	DrawLine(color display.Color, x0, y0, x1, y1 int) error
	DrawString(color display.Color, x, y int, text string, size StringSize, underline bool) error
	Flush()
	FlushArea(r Rect)
	PollMouse() (MouseEvent, bool)
	PollKey() (rune, bool)
}

// PointerDrawer is implemented by hosts that paint the pointer themselves.
type PointerDrawer interface {
	DrawPointer(r Rect)
}

// Fetcher retrieves a destination typed or clicked by the user.
type Fetcher interface {
	Fetch(destination string) (*fetcher.Response, error)
}

// FetchFunc adapts a function to Fetcher.
type FetchFunc func(destination string) (*fetcher.Response, error)

func (f FetchFunc) Fetch(destination string) (*fetcher.Response, error) { return f(destination) }

// Browser exposes the page currently shown in the window.
type Browser interface {
	CurrentPage() Page
}

// Page is the document model behind the content area. Points passed to
// Clicked are content-area coordinates.
type Page interface {
	Clicked(p display.Point) (string, bool)
	ReceiveResponse(resp *fetcher.Response) error
	DisplayItems() []display.Item
}

// FontSizeToStringSize maps the page's font sizes onto the host's string sizes.
func FontSizeToStringSize(f display.FontSize) StringSize {
	switch f {
	case display.XLarge:
		return SizeLarge
	case display.XXLarge:
		return SizeXLarge
	}
	return SizeMedium
}
