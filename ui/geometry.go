package ui

import "saba/display"

// Window geometry in pixels.
const (
	WindowWidth      = 600
	WindowHeight     = 400
	WindowPadding    = 5
	TitleBarHeight   = 24
	ToolbarHeight    = 26
	AddressBarHeight = 20

	ContentAreaWidth  = WindowWidth
	ContentAreaHeight = WindowHeight - TitleBarHeight - ToolbarHeight

	CursorWidth  = 8
	CursorHeight = 16
)

// Region is the part of the window a pointer event landed in.
type Region int

const (
	OutsideWindow Region = iota
	Toolbar
	ContentArea
)

func (r Region) String() string {
	switch r {
	case Toolbar:
		return "toolbar"
	case ContentArea:
		return "content"
	}
	return "outside"
}

// HitTest classifies an absolute pointer position for a window whose
// top-left corner is at windowPos. For ContentArea the returned point is
// relative to the content area's origin; presses on the title bar land
// there with a negative y.
func HitTest(pointer, windowPos display.Point) (Region, display.Point) {
	rel := pointer.Sub(windowPos)
	if rel.X < 0 || rel.X >= WindowWidth || rel.Y < 0 || rel.Y >= WindowHeight {
		return OutsideWindow, display.Point{}
	}
	if rel.Y >= TitleBarHeight && rel.Y < TitleBarHeight+ToolbarHeight {
		return Toolbar, display.Point{}
	}
	return ContentArea, display.Point{X: rel.X, Y: rel.Y - TitleBarHeight - ToolbarHeight}
}

// Cursor is the pointer sprite: a fixed-size box at the last pointer position.
type Cursor struct {
	pos display.Point
}

// Position returns the pointer position in screen pixels.
func (c *Cursor) Position() display.Point { return c.pos }

// SetPosition moves the cursor.
func (c *Cursor) SetPosition(p display.Point) { c.pos = p }

// Rect returns the area covered by the cursor.
func (c *Cursor) Rect() Rect {
	return Rect{X: c.pos.X, Y: c.pos.Y, Width: CursorWidth, Height: CursorHeight}
}
